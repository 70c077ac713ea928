package excel

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/polyhub/timetable-back/internal/models"
)

func writeWorkbook(t *testing.T, build func(f *excelize.File)) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	build(f)
	path := filepath.Join(t.TempDir(), "timetable.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestParseWorkbook(t *testing.T) {
	path := writeWorkbook(t, func(f *excelize.File) {
		f.SetSheetName("Sheet1", "Computer Science")
		f.SetCellValue("Computer Science", "A1", "Day")
		f.SetCellValue("Computer Science", "B1", "Time")
		f.SetCellValue("Computer Science", "C1", "ND1")
		f.SetCellValue("Computer Science", "D1", "HND1")

		f.SetCellValue("Computer Science", "A2", "Monday")
		f.SetCellValue("Computer Science", "B2", "08:00-10:00")
		f.SetCellValue("Computer Science", "C2", "CSC101 Introduction to Computer Science\nDr. John Smith\nRoom 101")
		f.SetCellValue("Computer Science", "D2", "CSC401 Database Systems\nDr. John Smith\nRoom 203")

		f.SetCellValue("Computer Science", "A3", "Tuesday")
		f.SetCellValue("Computer Science", "B3", "10:00-12:00")
		f.SetCellValue("Computer Science", "C3", "CSC203 Web Development")
	})

	slots, err := ParseWorkbook(path)
	require.NoError(t, err)
	require.Len(t, slots, 3)

	first := slots[0]
	require.Equal(t, models.Monday, first.Day)
	require.Equal(t, "08:00", first.StartTime)
	require.Equal(t, "10:00", first.EndTime)
	require.Equal(t, "csc101", first.Course.ID)
	require.Equal(t, "CSC101", first.Course.Code)
	require.Equal(t, "Introduction to Computer Science", first.Course.Name)
	require.Equal(t, "Dr. John Smith", first.Course.LecturerName)
	require.Equal(t, "Room 101", first.Venue)
	require.Equal(t, models.LevelND1, first.Level)
	require.Equal(t, "Computer Science", first.Department)

	require.Equal(t, models.LevelHND1, slots[1].Level)
	require.Equal(t, "CSC401", slots[1].Course.Code)

	// lecturer and venue lines are optional
	third := slots[2]
	require.Equal(t, "CSC203", third.Course.Code)
	require.Equal(t, "Unassigned", third.Course.LecturerName)
	require.Empty(t, third.Venue)
}

func TestParseWorkbookSkipsUnknownSheetsAndBadRows(t *testing.T) {
	path := writeWorkbook(t, func(f *excelize.File) {
		f.SetSheetName("Sheet1", "Mass Communication")
		f.SetCellValue("Mass Communication", "A1", "Day")
		f.SetCellValue("Mass Communication", "B1", "Time")
		f.SetCellValue("Mass Communication", "C1", "ND2")

		// good row
		f.SetCellValue("Mass Communication", "A2", "Wednesday")
		f.SetCellValue("Mass Communication", "B2", "14:00-16:00")
		f.SetCellValue("Mass Communication", "C2", "COM101 Introduction to Mass Communication")

		// bad day
		f.SetCellValue("Mass Communication", "A3", "Someday")
		f.SetCellValue("Mass Communication", "B3", "08:00-10:00")
		f.SetCellValue("Mass Communication", "C3", "COM999 Should Not Appear")

		// bad time band
		f.SetCellValue("Mass Communication", "A4", "Thursday")
		f.SetCellValue("Mass Communication", "B4", "morning")
		f.SetCellValue("Mass Communication", "C4", "COM998 Should Not Appear")

		// whole sheet ignored: not a department
		f.NewSheet("Notes")
		f.SetCellValue("Notes", "A1", "Monday")
		f.SetCellValue("Notes", "B1", "08:00-10:00")
	})

	slots, err := ParseWorkbook(path)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	require.Equal(t, "COM101", slots[0].Course.Code)
	require.Equal(t, models.LevelND2, slots[0].Level)
}

func TestParseWorkbookMissingFile(t *testing.T) {
	_, err := ParseWorkbook(filepath.Join(t.TempDir(), "nope.xlsx"))
	require.Error(t, err)
}
