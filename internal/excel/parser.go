package excel

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/polyhub/timetable-back/internal/models"
)

// Workbook layout: one sheet per department, named after it. Column A holds
// the day, column B the time band ("08:00-10:00"), and the header row maps
// the remaining columns to class levels. A populated cell reads
//
//	CODE Course Name
//	Lecturer Name
//	Venue
//
// with the lecturer and venue lines optional.

// Download fetches a published workbook and saves it next to the binary.
func Download(url string) (string, error) {
	log.Println("📥 Downloading timetable workbook from:", url)

	resp, err := http.Get(url)
	if err != nil {
		return "", fmt.Errorf("failed to fetch workbook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("bad status: %s", resp.Status)
	}

	filePath := "timetable.xlsx"
	out, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer out.Close()

	if _, err = io.Copy(out, resp.Body); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	log.Println("✅ Workbook saved to", filePath)
	return filePath, nil
}

// ParseWorkbook reads every department sheet into time slots.
func ParseWorkbook(path string) ([]models.TimeSlot, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var slots []models.TimeSlot
	for _, sheetName := range f.GetSheetList() {
		if !knownDepartment(sheetName) {
			log.Printf("⏭️ Skipping sheet %q: not a department\n", sheetName)
			continue
		}
		sheetSlots, err := parseSheet(f, sheetName)
		if err != nil {
			return nil, fmt.Errorf("error parsing sheet %s: %w", sheetName, err)
		}
		log.Printf("✅ Parsed %d slots from sheet %s\n", len(sheetSlots), sheetName)
		slots = append(slots, sheetSlots...)
	}
	return slots, nil
}

func knownDepartment(name string) bool {
	for _, d := range models.Departments {
		if d.Name == name {
			return true
		}
	}
	return false
}

func parseSheet(f *excelize.File, sheetName string) ([]models.TimeSlot, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	// Header row maps columns to levels; A and B are day and time band.
	colToLevel := make(map[int]models.ClassLevel)
	for colIndex, cellValue := range rows[0] {
		if colIndex < 2 {
			continue
		}
		level := models.ClassLevel(strings.TrimSpace(cellValue))
		if level.Valid() {
			colToLevel[colIndex] = level
		}
	}

	var slots []models.TimeSlot
	for rowIndex, row := range rows[1:] {
		if len(row) < 2 {
			continue
		}
		day := models.DayOfWeek(strings.TrimSpace(row[0]))
		if !day.Valid() {
			if strings.TrimSpace(row[0]) != "" {
				log.Printf("⚠️ Skipped row %d: unknown day %q\n", rowIndex+2, row[0])
			}
			continue
		}
		start, end, ok := splitBand(row[1])
		if !ok {
			log.Printf("⚠️ Skipped row %d: missing time band (%q)\n", rowIndex+2, row[1])
			continue
		}

		for colIndex, cellValue := range row {
			level, mapped := colToLevel[colIndex]
			if !mapped || strings.TrimSpace(cellValue) == "" {
				continue
			}
			slot, ok := parseCell(cellValue, sheetName, day, start, end, level)
			if !ok {
				log.Printf("⚠️ Skipped cell at row %d col %d (value: %q)\n", rowIndex+2, colIndex+1, cellValue)
				continue
			}
			slots = append(slots, slot)
		}
	}
	return slots, nil
}

func splitBand(band string) (start, end string, ok bool) {
	parts := strings.Split(band, "-")
	if len(parts) != 2 {
		return "", "", false
	}
	start = strings.TrimSpace(parts[0])
	end = strings.TrimSpace(parts[1])
	return start, end, start != "" && end != ""
}

func parseCell(cellValue, department string, day models.DayOfWeek, start, end string, level models.ClassLevel) (models.TimeSlot, bool) {
	lines := strings.Split(cellValue, "\n")
	head := strings.TrimSpace(lines[0])
	if head == "" {
		return models.TimeSlot{}, false
	}

	code, name, found := strings.Cut(head, " ")
	if !found || code == "" {
		return models.TimeSlot{}, false
	}

	slot := models.TimeSlot{
		Day:       day,
		StartTime: start,
		EndTime:   end,
		Course: models.Course{
			ID:           strings.ToLower(code),
			Code:         code,
			Name:         strings.TrimSpace(name),
			Department:   department,
			LecturerName: "Unassigned",
		},
		Level:      level,
		Department: department,
	}
	if len(lines) >= 2 && strings.TrimSpace(lines[1]) != "" {
		slot.Course.LecturerName = strings.TrimSpace(lines[1])
	}
	if len(lines) >= 3 {
		slot.Venue = strings.TrimSpace(lines[2])
	}
	return slot, true
}
