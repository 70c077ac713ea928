package models

import "time"

type ClassLevel string

const (
	LevelND1  ClassLevel = "ND1"
	LevelND2  ClassLevel = "ND2"
	LevelHND1 ClassLevel = "HND1"
	LevelHND2 ClassLevel = "HND2"
)

var Levels = []ClassLevel{LevelND1, LevelND2, LevelHND1, LevelHND2}

func (l ClassLevel) Valid() bool {
	for _, known := range Levels {
		if l == known {
			return true
		}
	}
	return false
}

type DayOfWeek string

const (
	Monday    DayOfWeek = "Monday"
	Tuesday   DayOfWeek = "Tuesday"
	Wednesday DayOfWeek = "Wednesday"
	Thursday  DayOfWeek = "Thursday"
	Friday    DayOfWeek = "Friday"
)

var Days = []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday}

func (d DayOfWeek) Valid() bool {
	for _, known := range Days {
		if d == known {
			return true
		}
	}
	return false
}

// TimeBand is one of the fixed two-hour teaching bands slots are scheduled in.
type TimeBand struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

var TimeBands = []TimeBand{
	{Start: "08:00", End: "10:00"},
	{Start: "10:00", End: "12:00"},
	{Start: "12:00", End: "14:00"},
	{Start: "14:00", End: "16:00"},
	{Start: "16:00", End: "18:00"},
}

// Course is embedded in every slot that teaches it (denormalized on purpose:
// lecturer reassignment must touch every slot sharing the course id).
type Course struct {
	ID           string `json:"id"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	Department   string `json:"department"`
	LecturerID   string `json:"lecturerId"`
	LecturerName string `json:"lecturerName"`
}

// TimeSlot is one scheduled occurrence of a course.
// Confirmed and ConfirmedAt move together: a slot is confirmed exactly when
// ConfirmedAt carries the confirmation timestamp.
type TimeSlot struct {
	ID          string     `json:"id"`
	Day         DayOfWeek  `json:"day"`
	StartTime   string     `json:"startTime"`
	EndTime     string     `json:"endTime"`
	Course      Course     `json:"course"`
	Venue       string     `json:"venue"`
	Confirmed   bool       `json:"confirmed"`
	ConfirmedAt *time.Time `json:"confirmedAt,omitempty"`
	Level       ClassLevel `json:"level"`
	Department  string     `json:"department"`
}

// TimeSlotUpdate carries the optional fields of a partial slot edit.
// Nil fields are left untouched.
type TimeSlotUpdate struct {
	Day        *DayOfWeek  `json:"day,omitempty"`
	StartTime  *string     `json:"startTime,omitempty"`
	EndTime    *string     `json:"endTime,omitempty"`
	Course     *Course     `json:"course,omitempty"`
	Venue      *string     `json:"venue,omitempty"`
	Level      *ClassLevel `json:"level,omitempty"`
	Department *string     `json:"department,omitempty"`
}

type DepartmentInfo struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Levels []ClassLevel `json:"levels"`
}

// Departments is the static catalog; not mutable at runtime.
var Departments = []DepartmentInfo{
	{ID: "csc", Name: "Computer Science", Levels: Levels},
	{ID: "mc", Name: "Mass Communication", Levels: Levels},
	{ID: "ba", Name: "Business Administration", Levels: Levels},
	{ID: "acc", Name: "Accountancy", Levels: Levels},
}
