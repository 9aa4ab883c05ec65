package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"schedule-bot/models"
)

func TestExportService_ExportDayXLSX(t *testing.T) {
	g := NewGraph(loadBundle(t, "testdata/day.json"), ResolverIndexes...)
	resolved, err := newTestRenderer(fakeTypes(testTypes)).ResolveDay(context.Background(), eventsOf(t, g), g)
	require.NoError(t, err)

	data, err := NewExportService().ExportDayXLSX(models.DayEntry{Date: "2024-03-01", Found: true, Events: resolved}, "Online")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 5)

	assert.Equal(t, []string{"1", "08:00", "09:30", "Online", "Physics", "Webinar", "Webinar", "", "Educon", "true"}, rows[1])
	assert.Equal(t, []string{"2", "10:00", "11:30", "A", "Mathematics", "Lecture 1", "Lecture", "Ivanov Ivan", "A-101", "false"}, rows[2])
}
