package store

import "github.com/polyhub/timetable-back/internal/models"

// seedSlots is the built-in dataset used when nothing has been persisted yet
// or the persisted blob cannot be parsed.
func seedSlots() []models.TimeSlot {
	return []models.TimeSlot{
		{
			ID:        "1",
			Day:       models.Monday,
			StartTime: "08:00",
			EndTime:   "10:00",
			Course: models.Course{
				ID:           "csc101",
				Code:         "CSC101",
				Name:         "Introduction to Computer Science",
				Department:   "Computer Science",
				LecturerID:   "STAFF001",
				LecturerName: "Dr. John Smith",
			},
			Venue:      "Room 101",
			Level:      models.LevelND1,
			Department: "Computer Science",
		},
		{
			ID:        "2",
			Day:       models.Tuesday,
			StartTime: "10:00",
			EndTime:   "12:00",
			Course: models.Course{
				ID:           "csc203",
				Code:         "CSC203",
				Name:         "Web Development",
				Department:   "Computer Science",
				LecturerID:   "STAFF001",
				LecturerName: "Dr. John Smith",
			},
			Venue:      "Lab 2",
			Level:      models.LevelND2,
			Department: "Computer Science",
		},
		{
			ID:        "3",
			Day:       models.Wednesday,
			StartTime: "14:00",
			EndTime:   "16:00",
			Course: models.Course{
				ID:           "com101",
				Code:         "COM101",
				Name:         "Introduction to Mass Communication",
				Department:   "Mass Communication",
				LecturerID:   "STAFF002",
				LecturerName: "Prof. Sarah Williams",
			},
			Venue:      "Lecture Hall A",
			Level:      models.LevelND1,
			Department: "Mass Communication",
		},
		{
			ID:        "4",
			Day:       models.Monday,
			StartTime: "12:00",
			EndTime:   "14:00",
			Course: models.Course{
				ID:           "com301",
				Code:         "COM301",
				Name:         "Digital Journalism",
				Department:   "Mass Communication",
				LecturerID:   "STAFF002",
				LecturerName: "Prof. Sarah Williams",
			},
			Venue:      "Media Lab",
			Level:      models.LevelHND1,
			Department: "Mass Communication",
		},
		{
			ID:        "5",
			Day:       models.Thursday,
			StartTime: "08:00",
			EndTime:   "10:00",
			Course: models.Course{
				ID:           "csc401",
				Code:         "CSC401",
				Name:         "Database Systems",
				Department:   "Computer Science",
				LecturerID:   "STAFF001",
				LecturerName: "Dr. John Smith",
			},
			Venue:      "Room 203",
			Level:      models.LevelHND1,
			Department: "Computer Science",
		},
	}
}
