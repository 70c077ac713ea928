package api

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/polyhub/timetable-back/internal/auth"
	"github.com/polyhub/timetable-back/internal/excel"
	"github.com/polyhub/timetable-back/internal/models"
	"github.com/polyhub/timetable-back/internal/store"
)

// Pinger is implemented by storage backends that can report liveness.
type Pinger interface {
	Ping() error
}

type Handler struct {
	Timetable     *store.TimetableStore
	Notifications *store.NotificationStore
	Storage       Pinger
}

// Health godoc
// @Summary      Health check
// @Tags         ops
// @Produce      json
// @Success      200 {object} map[string]string
// @Failure      500 {object} map[string]string
// @Router       /health [get]
func (h *Handler) Health(c *gin.Context) {
	if h.Storage != nil {
		if err := h.Storage.Ping(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "db_ping_error"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetDepartments godoc
// @Summary      List departments
// @Description  Returns the static department catalog with valid levels
// @Tags         timetable
// @Produce      json
// @Success      200 {array} models.DepartmentInfo
// @Router       /departments [get]
func (h *Handler) GetDepartments(c *gin.Context) {
	c.JSON(http.StatusOK, models.Departments)
}

// GetMe godoc
// @Summary      Get current user profile
// @Tags         user
// @Produce      json
// @Success      200 {object} models.User
// @Security     BearerAuth
// @Router       /user/me [get]
func (h *Handler) GetMe(c *gin.Context) {
	c.JSON(http.StatusOK, auth.CurrentUser(c))
}

// GetClassSchedule godoc
// @Summary      Get a class schedule
// @Description  Returns slots matching level and department exactly. Students
// @Description  default to their own class when the query is omitted.
// @Tags         timetable
// @Produce      json
// @Param        level       query  string  false  "Class level (ND1, ND2, HND1, HND2)"
// @Param        department  query  string  false  "Department name"
// @Success      200 {array}  models.TimeSlot
// @Failure      400 {object} map[string]string
// @Security     BearerAuth
// @Router       /timetable/class [get]
func (h *Handler) GetClassSchedule(c *gin.Context) {
	user := auth.CurrentUser(c)

	level := models.ClassLevel(c.Query("level"))
	department := c.Query("department")
	if level == "" {
		level = user.Level
	}
	if department == "" {
		department = user.Department
	}
	if !level.Valid() || department == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing level or department"})
		return
	}

	c.JSON(http.StatusOK, h.Timetable.ClassSchedule(level, department))
}

// GetLecturerSchedule godoc
// @Summary      Get the authenticated lecturer's schedule
// @Tags         timetable
// @Produce      json
// @Success      200 {array} models.TimeSlot
// @Security     BearerAuth
// @Router       /timetable/lecturer [get]
func (h *Handler) GetLecturerSchedule(c *gin.Context) {
	user := auth.CurrentUser(c)
	c.JSON(http.StatusOK, h.Timetable.LecturerSchedule(user.ID))
}

// GetLecturerCourses godoc
// @Summary      Get the distinct course codes the lecturer teaches
// @Tags         courses
// @Produce      json
// @Success      200 {array} string
// @Security     BearerAuth
// @Router       /lecturer/courses [get]
func (h *Handler) GetLecturerCourses(c *gin.Context) {
	user := auth.CurrentUser(c)
	c.JSON(http.StatusOK, h.Timetable.LecturerCourses(user.ID))
}

// CreateTimeSlotRequest is the request body for adding a slot.
type CreateTimeSlotRequest struct {
	Day        models.DayOfWeek  `json:"day" binding:"required"`
	StartTime  string            `json:"startTime" binding:"required"`
	EndTime    string            `json:"endTime" binding:"required"`
	Course     models.Course     `json:"course" binding:"required"`
	Venue      string            `json:"venue"`
	Level      models.ClassLevel `json:"level" binding:"required"`
	Department string            `json:"department" binding:"required"`
}

// CreateTimeSlot godoc
// @Summary      Add a time slot
// @Tags         timetable
// @Accept       json
// @Produce      json
// @Param        body  body  CreateTimeSlotRequest  true  "Slot"
// @Success      201   {object} models.TimeSlot
// @Failure      400   {object} map[string]string
// @Security     BearerAuth
// @Router       /timetable/slots [post]
func (h *Handler) CreateTimeSlot(c *gin.Context) {
	var req CreateTimeSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if !req.Day.Valid() || !req.Level.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid day or level"})
		return
	}

	slot := h.Timetable.Add(c.Request.Context(), models.TimeSlot{
		Day:        req.Day,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Course:     req.Course,
		Venue:      req.Venue,
		Level:      req.Level,
		Department: req.Department,
	})
	c.JSON(http.StatusCreated, slot)
}

// UpdateTimeSlot godoc
// @Summary      Update a time slot
// @Description  Shallow-merges the given fields; unknown ids are a no-op
// @Tags         timetable
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "Slot ID"
// @Param        body  body  models.TimeSlotUpdate  true  "Fields to merge"
// @Success      200   {object} map[string]string
// @Failure      400   {object} map[string]string
// @Security     BearerAuth
// @Router       /timetable/slots/{id} [patch]
func (h *Handler) UpdateTimeSlot(c *gin.Context) {
	var req models.TimeSlotUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	h.Timetable.Update(c.Request.Context(), c.Param("id"), req)
	c.JSON(http.StatusOK, gin.H{"message": "Slot updated"})
}

// DeleteTimeSlot godoc
// @Summary      Remove a time slot
// @Tags         timetable
// @Produce      json
// @Param        id  path  string  true  "Slot ID"
// @Success      200 {object} map[string]string
// @Security     BearerAuth
// @Router       /timetable/slots/{id} [delete]
func (h *Handler) DeleteTimeSlot(c *gin.Context) {
	h.Timetable.Remove(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "Slot removed"})
}

// ConfirmLecture godoc
// @Summary      Confirm a lecture
// @Description  Marks the slot confirmed and notifies the class
// @Tags         timetable
// @Produce      json
// @Param        id  path  string  true  "Slot ID"
// @Success      200 {object} map[string]string
// @Security     BearerAuth
// @Router       /timetable/slots/{id}/confirm [post]
func (h *Handler) ConfirmLecture(c *gin.Context) {
	h.Timetable.Confirm(c.Request.Context(), c.Param("id"), auth.CurrentUser(c))
	c.JSON(http.StatusOK, gin.H{"message": "Lecture confirmed"})
}

// UnconfirmLecture godoc
// @Summary      Unconfirm a lecture
// @Tags         timetable
// @Produce      json
// @Param        id  path  string  true  "Slot ID"
// @Success      200 {object} map[string]string
// @Security     BearerAuth
// @Router       /timetable/slots/{id}/unconfirm [post]
func (h *Handler) UnconfirmLecture(c *gin.Context) {
	h.Timetable.Unconfirm(c.Request.Context(), c.Param("id"), auth.CurrentUser(c))
	c.JSON(http.StatusOK, gin.H{"message": "Lecture unconfirmed"})
}

// AssignCourseRequest is the request body for taking over a course.
type AssignCourseRequest struct {
	CourseID   string            `json:"courseId" binding:"required"`
	Department string            `json:"department"`
	Level      models.ClassLevel `json:"level"`
}

// AssignCourse godoc
// @Summary      Assign the lecturer to a course
// @Description  Propagates the assignment to every slot sharing the course id.
// @Description  A course id with no slots changes nothing and raises an error
// @Description  notification instead.
// @Tags         courses
// @Accept       json
// @Produce      json
// @Param        body  body  AssignCourseRequest  true  "Course"
// @Success      200   {object} map[string]string
// @Failure      400   {object} map[string]string
// @Security     BearerAuth
// @Router       /lecturer/courses [post]
func (h *Handler) AssignCourse(c *gin.Context) {
	var req AssignCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	h.Timetable.AssignLecturer(c.Request.Context(), auth.CurrentUser(c), req.CourseID, req.Department, req.Level)
	c.JSON(http.StatusOK, gin.H{"message": "Assignment processed"})
}

// UnassignCourse godoc
// @Summary      Remove the lecturer from a course
// @Tags         courses
// @Produce      json
// @Param        courseId  path  string  true  "Course ID"
// @Success      200 {object} map[string]string
// @Security     BearerAuth
// @Router       /lecturer/courses/{courseId} [delete]
func (h *Handler) UnassignCourse(c *gin.Context) {
	h.Timetable.UnassignLecturer(c.Request.Context(), auth.CurrentUser(c), c.Param("courseId"))
	c.JSON(http.StatusOK, gin.H{"message": "Removal processed"})
}

// ImportTimetable godoc
// @Summary      Import a timetable workbook
// @Description  Replaces the whole slot collection with the uploaded xlsx
// @Tags         timetable
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Workbook (.xlsx)"
// @Success      200   {object} map[string]interface{}
// @Failure      400   {object} map[string]string
// @Failure      500   {object} map[string]string
// @Security     BearerAuth
// @Router       /timetable/import [post]
func (h *Handler) ImportTimetable(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing workbook file"})
		return
	}

	path := filepath.Join(os.TempDir(), filepath.Base(file.Filename))
	if err := c.SaveUploadedFile(file, path); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save workbook"})
		return
	}
	defer os.Remove(path)

	slots, err := excel.ParseWorkbook(path)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse workbook"})
		return
	}

	count := h.Timetable.Replace(c.Request.Context(), slots)
	c.JSON(http.StatusOK, gin.H{"message": "Timetable imported", "count": count})
}

// ListNotifications godoc
// @Summary      List the user's notifications
// @Description  Newest first, with the live unread count
// @Tags         notifications
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Security     BearerAuth
// @Router       /notifications [get]
func (h *Handler) ListNotifications(c *gin.Context) {
	user := auth.CurrentUser(c)
	ctx := c.Request.Context()
	c.JSON(http.StatusOK, gin.H{
		"notifications": h.Notifications.List(ctx, user.ID),
		"unread":        h.Notifications.UnreadCount(ctx, user.ID),
	})
}

// AddNotificationRequest is the request body for a user-raised notification.
type AddNotificationRequest struct {
	Title   string                  `json:"title" binding:"required"`
	Message string                  `json:"message" binding:"required"`
	Type    models.NotificationType `json:"type" binding:"required,oneof=info warning success error"`
	Link    string                  `json:"link"`
}

// AddNotification godoc
// @Summary      Add a notification
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Param        body  body  AddNotificationRequest  true  "Notification"
// @Success      201   {object} models.Notification
// @Failure      400   {object} map[string]string
// @Security     BearerAuth
// @Router       /notifications [post]
func (h *Handler) AddNotification(c *gin.Context) {
	var req AddNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	user := auth.CurrentUser(c)
	n := h.Notifications.Add(c.Request.Context(), user.ID, req.Title, req.Message, req.Type, req.Link)
	c.JSON(http.StatusCreated, n)
}

// MarkNotificationRead godoc
// @Summary      Mark one notification as read
// @Tags         notifications
// @Produce      json
// @Param        id  path  string  true  "Notification ID"
// @Success      200 {object} map[string]string
// @Security     BearerAuth
// @Router       /notifications/{id}/read [patch]
func (h *Handler) MarkNotificationRead(c *gin.Context) {
	user := auth.CurrentUser(c)
	h.Notifications.MarkAsRead(c.Request.Context(), user.ID, c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "Notification read"})
}

// MarkAllNotificationsRead godoc
// @Summary      Mark every notification as read
// @Tags         notifications
// @Produce      json
// @Success      200 {object} map[string]string
// @Security     BearerAuth
// @Router       /notifications/read-all [post]
func (h *Handler) MarkAllNotificationsRead(c *gin.Context) {
	user := auth.CurrentUser(c)
	h.Notifications.MarkAllAsRead(c.Request.Context(), user.ID)
	c.JSON(http.StatusOK, gin.H{"message": "All notifications read"})
}

// ClearNotifications godoc
// @Summary      Clear the inbox
// @Tags         notifications
// @Produce      json
// @Success      200 {object} map[string]string
// @Security     BearerAuth
// @Router       /notifications [delete]
func (h *Handler) ClearNotifications(c *gin.Context) {
	user := auth.CurrentUser(c)
	h.Notifications.Clear(c.Request.Context(), user.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Notifications cleared"})
}
