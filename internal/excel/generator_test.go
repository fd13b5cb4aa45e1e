package excel

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/nurpe/fieldops-docs/internal/model"
	"github.com/nurpe/fieldops-docs/internal/timecalc"
	"github.com/nurpe/fieldops-docs/internal/workday"
)

func TestWorkdaysExport(t *testing.T) {
	doc := model.OrderDocument{
		Order:     model.Order{Number: 41},
		Client:    model.Client{Name: "Hotel Mar"},
		Equipment: model.Equipment{Brand: "Daikin", Model: "FTX"},
		Sessions: []model.WorkSession{
			{Date: time.Date(2024, 5, 30, 0, 0, 0, 0, time.UTC), WorkStart: "08:00", WorkEnd: "17:00", Pause: "1:00", OutboundKm: "10", ReturnKm: "15"},
			{Date: time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC), WorkStart: "09:00", WorkEnd: "12:30"},
			{Date: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), OutboundDeparture: "07:30", OutboundArrival: "08:15", ReturnKm: "5,5"},
		},
	}
	totals, err := workday.Aggregate(doc.Sessions, timecalc.PauseClamp)
	require.NoError(t, err)

	content, err := NewGenerator().Workdays(doc, totals)
	require.NoError(t, err)

	file, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer file.Close()

	assert.Equal(t, []string{"Resumo", "Dias 2024-05", "Dias 2024-06"}, file.GetSheetList())

	client, err := file.GetCellValue("Resumo", "B1")
	require.NoError(t, err)
	assert.Equal(t, "Hotel Mar", client)

	equipment, err := file.GetCellValue("Resumo", "B3")
	require.NoError(t, err)
	assert.Equal(t, "Daikin FTX", equipment)

	work, err := file.GetCellValue("Resumo", "B5")
	require.NoError(t, err)
	assert.Equal(t, "11:30", work)

	date, err := file.GetCellValue("Dias 2024-05", "A5")
	require.NoError(t, err)
	assert.Equal(t, "30/05/2024", date)

	dayWork, err := file.GetCellValue("Dias 2024-05", "C5")
	require.NoError(t, err)
	assert.Equal(t, "8:00", dayWork)

	rows, err := file.GetRows("Dias 2024-06")
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "0:45", rows[4][1])
}

func TestWorkdaysExportEmpty(t *testing.T) {
	totals, err := workday.Aggregate(nil, timecalc.PauseClamp)
	require.NoError(t, err)

	content, err := NewGenerator().Workdays(model.OrderDocument{Client: model.Client{Name: "X"}}, totals)
	require.NoError(t, err)

	file, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer file.Close()
	assert.Equal(t, []string{"Resumo"}, file.GetSheetList())
}

func TestBuildSheetNameDeduplicates(t *testing.T) {
	used := map[string]struct{}{"Dias 2024-05": {}}
	assert.Equal(t, "Dias 2024-05-2", buildSheetName("2024-05", used))
	assert.Equal(t, "Dias a-b", buildSheetName("a/b", map[string]struct{}{}))
}
