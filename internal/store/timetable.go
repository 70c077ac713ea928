package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/polyhub/timetable-back/internal/models"
	"github.com/polyhub/timetable-back/internal/storage"
)

// DefaultConfirmTTL is how long a lecturer's confirmation stays meaningful
// before the sweep reverses it.
const DefaultConfirmTTL = 5 * time.Minute

// TimetableStore is the single source of truth for scheduled slots. Every
// read and write goes through its methods; mutations persist the whole
// collection before returning.
type TimetableStore struct {
	storage    storage.Store
	notifs     *NotificationStore
	now        func() time.Time
	confirmTTL time.Duration

	mu    sync.RWMutex
	slots []models.TimeSlot
}

// NewTimetableStore loads the persisted collection, falling back to the seed
// dataset when nothing is stored or the blob cannot be parsed. It never
// fails on bad data.
func NewTimetableStore(ctx context.Context, st storage.Store, notifs *NotificationStore, confirmTTL time.Duration) *TimetableStore {
	if confirmTTL <= 0 {
		confirmTTL = DefaultConfirmTTL
	}
	s := &TimetableStore{
		storage:    st,
		notifs:     notifs,
		now:        time.Now,
		confirmTTL: confirmTTL,
	}

	raw, found, err := st.Get(ctx, storage.TimetableKey)
	if err != nil {
		log.Println("failed to read timetable:", err)
	}
	if found && err == nil {
		if err := json.Unmarshal(raw, &s.slots); err != nil {
			log.Println("error parsing saved timetable:", err)
			s.slots = nil
		}
	}
	if s.slots == nil {
		s.slots = seedSlots()
		s.persist(ctx)
	}
	return s
}

// persist writes the whole collection as one blob. Callers must hold mu.
func (s *TimetableStore) persist(ctx context.Context) {
	raw, err := json.Marshal(s.slots)
	if err != nil {
		log.Println("failed to encode timetable:", err)
		return
	}
	if err := s.storage.Put(ctx, storage.TimetableKey, raw); err != nil {
		log.Println("failed to save timetable:", err)
	}
}

func (s *TimetableStore) index(id string) int {
	for i := range s.slots {
		if s.slots[i].ID == id {
			return i
		}
	}
	return -1
}

// All returns a copy of every slot.
func (s *TimetableStore) All() []models.TimeSlot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.TimeSlot, len(s.slots))
	copy(out, s.slots)
	return out
}

// ClassSchedule returns the slots matching both level and department exactly.
func (s *TimetableStore) ClassSchedule(level models.ClassLevel, department string) []models.TimeSlot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matched := []models.TimeSlot{}
	for _, slot := range s.slots {
		if slot.Level == level && slot.Department == department {
			matched = append(matched, slot)
		}
	}
	return matched
}

// LecturerSchedule returns the slots whose embedded course is taught by
// lecturerID.
func (s *TimetableStore) LecturerSchedule(lecturerID string) []models.TimeSlot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matched := []models.TimeSlot{}
	for _, slot := range s.slots {
		if slot.Course.LecturerID == lecturerID {
			matched = append(matched, slot)
		}
	}
	return matched
}

// LecturerCourses returns the distinct course codes taught by lecturerID in
// first-seen order.
func (s *TimetableStore) LecturerCourses(lecturerID string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]bool)
	codes := []string{}
	for _, slot := range s.slots {
		if slot.Course.LecturerID != lecturerID || seen[slot.Course.Code] {
			continue
		}
		seen[slot.Course.Code] = true
		codes = append(codes, slot.Course.Code)
	}
	return codes
}

// Confirm marks the slot as happening and stamps the confirmation time.
// Confirming an already-confirmed slot just refreshes the stamp. Lecturers
// get a success notification; anyone else mutates silently. No-op when the
// slot is absent.
func (s *TimetableStore) Confirm(ctx context.Context, id string, actor models.User) {
	s.mu.Lock()
	i := s.index(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	at := s.now().UTC()
	s.slots[i].Confirmed = true
	s.slots[i].ConfirmedAt = &at
	slot := s.slots[i]
	s.persist(ctx)
	s.mu.Unlock()

	if actor.IsLecturer() {
		s.notifs.Add(ctx, actor.ID,
			"Lecture Confirmed",
			fmt.Sprintf("%s has confirmed the %s lecture on %s from %s to %s in %s.",
				actor.Name, slot.Course.Name, slot.Day, slot.StartTime, slot.EndTime, slot.Venue),
			models.NotifySuccess, "")
	}
}

// Unconfirm clears a confirmation. No-op when the slot is absent.
func (s *TimetableStore) Unconfirm(ctx context.Context, id string, actor models.User) {
	s.mu.Lock()
	i := s.index(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.slots[i].Confirmed = false
	s.slots[i].ConfirmedAt = nil
	slot := s.slots[i]
	s.persist(ctx)
	s.mu.Unlock()

	if actor.IsLecturer() {
		s.notifs.Add(ctx, actor.ID,
			"Lecture Unconfirmed",
			fmt.Sprintf("%s has unconfirmed the %s lecture on %s from %s to %s.",
				actor.Name, slot.Course.Name, slot.Day, slot.StartTime, slot.EndTime),
			models.NotifyInfo, "")
	}
}

// Update shallow-merges the set fields into the slot. No-op when absent.
func (s *TimetableStore) Update(ctx context.Context, id string, updates models.TimeSlotUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return
	}
	slot := &s.slots[i]
	if updates.Day != nil {
		slot.Day = *updates.Day
	}
	if updates.StartTime != nil {
		slot.StartTime = *updates.StartTime
	}
	if updates.EndTime != nil {
		slot.EndTime = *updates.EndTime
	}
	if updates.Course != nil {
		slot.Course = *updates.Course
	}
	if updates.Venue != nil {
		slot.Venue = *updates.Venue
	}
	if updates.Level != nil {
		slot.Level = *updates.Level
	}
	if updates.Department != nil {
		slot.Department = *updates.Department
	}
	s.persist(ctx)
}

// Add assigns a fresh id, appends the slot and returns the stored copy.
func (s *TimetableStore) Add(ctx context.Context, slot models.TimeSlot) models.TimeSlot {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot.ID = uuid.NewString()
	s.slots = append(s.slots, slot)
	s.persist(ctx)
	return slot
}

// Remove deletes a slot by id. No-op when absent.
func (s *TimetableStore) Remove(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return
	}
	s.slots = append(s.slots[:i], s.slots[i+1:]...)
	s.persist(ctx)
}

// AssignLecturer puts the acting lecturer on every slot sharing courseID.
// When no slot carries that course the collection is left untouched and
// exactly one error notification is emitted: this store never creates a
// course from an assignment.
func (s *TimetableStore) AssignLecturer(ctx context.Context, actor models.User, courseID, department string, level models.ClassLevel) {
	s.mu.Lock()
	affected := 0
	for i := range s.slots {
		if s.slots[i].Course.ID == courseID {
			s.slots[i].Course.LecturerID = actor.ID
			s.slots[i].Course.LecturerName = actor.Name
			affected++
		}
	}
	if affected > 0 {
		s.persist(ctx)
	}
	s.mu.Unlock()

	if affected == 0 {
		s.notifs.Add(ctx, actor.ID,
			"Course Assignment Failed",
			"Cannot add lecturer to non-existent course.",
			models.NotifyError, "")
		return
	}
	s.notifs.Add(ctx, actor.ID,
		"Course Assigned",
		fmt.Sprintf("%s now teaches course %s (%s %s).", actor.Name, courseID, level, department),
		models.NotifySuccess, "")
}

// UnassignLecturer clears the lecturer from every slot matching both the
// course and the acting lecturer. Silent when nothing matched; an info
// notification only when at least one slot was affected.
func (s *TimetableStore) UnassignLecturer(ctx context.Context, actor models.User, courseID string) {
	s.mu.Lock()
	affected := 0
	for i := range s.slots {
		if s.slots[i].Course.ID == courseID && s.slots[i].Course.LecturerID == actor.ID {
			s.slots[i].Course.LecturerID = ""
			s.slots[i].Course.LecturerName = "Unassigned"
			affected++
		}
	}
	if affected > 0 {
		s.persist(ctx)
	}
	s.mu.Unlock()

	if affected > 0 {
		s.notifs.Add(ctx, actor.ID,
			"Course Removed",
			fmt.Sprintf("%s no longer teaches course %s.", actor.Name, courseID),
			models.NotifyInfo, "")
	}
}

// Replace swaps the whole collection, reassigning ids. Used by the workbook
// import.
func (s *TimetableStore) Replace(ctx context.Context, slots []models.TimeSlot) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots = make([]models.TimeSlot, 0, len(slots))
	for _, slot := range slots {
		slot.ID = uuid.NewString()
		slot.Confirmed = false
		slot.ConfirmedAt = nil
		s.slots = append(s.slots, slot)
	}
	s.persist(ctx)
	return len(s.slots)
}

// ExpireStale reverses confirmations strictly older than the TTL. A slot
// confirmed exactly TTL ago is not yet expired. Nothing is announced, which
// is what distinguishes expiry from an explicit unconfirm.
func (s *TimetableStore) ExpireStale(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	expired := 0
	for i := range s.slots {
		if !s.slots[i].Confirmed || s.slots[i].ConfirmedAt == nil {
			continue
		}
		if now.Sub(*s.slots[i].ConfirmedAt) > s.confirmTTL {
			s.slots[i].Confirmed = false
			s.slots[i].ConfirmedAt = nil
			expired++
		}
	}
	if expired > 0 {
		s.persist(ctx)
	}
	return expired
}
