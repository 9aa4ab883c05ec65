package services

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"schedule-bot/models"
)

const exportSheet = "Schedule"

var exportHeader = []interface{}{"#", "Start", "End", "Location", "Course", "Event", "Type", "Lecturer", "Room", "Online"}

type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

// ExportDayXLSX выгружает разрешённые события дня в XLSX
func (s *ExportService) ExportDayXLSX(entry models.DayEntry, onlineLabel string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, ev := range entry.Events {
		location := ev.Room.BuildingNameShort
		if location == "" {
			location = ev.Room.NameShort
		}
		if ev.Online {
			location = onlineLabel
		}

		lecturer := ""
		if ev.Lecturer != nil {
			lecturer = ev.Lecturer.FullName
		}

		row := []interface{}{
			i + 1,
			ev.Start.Format(hourLayout),
			ev.End.Format(hourLayout),
			location,
			ev.Realization.Name,
			ev.Event.Name,
			ev.TypeName,
			lecturer,
			ev.Room.NameShort,
			strconv.FormatBool(ev.Online),
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := f.SetColWidth(exportSheet, "D", "H", 24); err != nil {
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
