package excel

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/nurpe/fieldops-docs/internal/format"
	"github.com/nurpe/fieldops-docs/internal/model"
	"github.com/nurpe/fieldops-docs/internal/workday"
)

const (
	summarySheet = "Resumo"
	maxSheetName = 31
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Workdays builds the workday export of an order: a summary sheet plus one
// detail sheet per calendar month.
func (g *Generator) Workdays(doc model.OrderDocument, totals workday.Totals) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if err := g.writeSummary(file, summarySheet, doc, totals); err != nil {
		return nil, err
	}

	usedNames := map[string]struct{}{summarySheet: {}}
	for _, month := range groupByMonth(totals.Rows) {
		sheetName := buildSheetName(month.label, usedNames)
		usedNames[sheetName] = struct{}{}

		if _, err := file.NewSheet(sheetName); err != nil {
			return nil, err
		}
		if err := g.writeDetail(file, sheetName, doc, month.rows); err != nil {
			return nil, err
		}
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, doc model.OrderDocument, totals workday.Totals) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Cliente")
	set("B1", doc.Client.Name)
	set("A2", "Ordem de serviço")
	set("B2", doc.Order.Number)
	set("A3", "Equipamento")
	set("B3", format.Value(doc.Equipment.Label()))
	set("A4", "Dias de trabalho")
	set("B4", totals.Days)
	set("A5", "Horas de trabalho")
	set("B5", format.Hours(totals.WorkHours))
	set("A6", "Horas de viagem")
	set("B6", format.Hours(totals.TravelHours))
	set("A7", "Distância total, km")
	set("B7", totals.DistanceKm)

	tableRow := 9
	set(fmt.Sprintf("A%d", tableRow), "Mês")
	set(fmt.Sprintf("B%d", tableRow), "Dias")
	set(fmt.Sprintf("C%d", tableRow), "Horas de trabalho")
	set(fmt.Sprintf("D%d", tableRow), "Horas de viagem")
	set(fmt.Sprintf("E%d", tableRow), "Km")

	for i, month := range groupByMonth(totals.Rows) {
		row := tableRow + 1 + i
		work, travel, km := sumRows(month.rows)
		set(fmt.Sprintf("A%d", row), month.label)
		set(fmt.Sprintf("B%d", row), len(month.rows))
		set(fmt.Sprintf("C%d", row), format.Hours(work))
		set(fmt.Sprintf("D%d", row), format.Hours(travel))
		set(fmt.Sprintf("E%d", row), km)
	}

	_ = file.SetColWidth(sheet, "A", "A", 24)
	_ = file.SetColWidth(sheet, "B", "B", 32)
	_ = file.SetColWidth(sheet, "C", "E", 18)
	return nil
}

func (g *Generator) writeDetail(file *excelize.File, sheet string, doc model.OrderDocument, rows []workday.Row) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Cliente")
	set("B1", doc.Client.Name)
	set("A2", "Ordem de serviço")
	set("B2", doc.Order.Number)

	tableRow := 4
	headers := []string{"Data", "Ida", "Trabalho", "Regresso", "Horas de trabalho", "Km"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, tableRow)
		set(cell, header)
	}

	for i, r := range rows {
		row := tableRow + 1 + i
		set(fmt.Sprintf("A%d", row), formatDate(r.Date))
		set(fmt.Sprintf("B%d", row), r.Outbound)
		set(fmt.Sprintf("C%d", row), r.Work)
		set(fmt.Sprintf("D%d", row), r.Return)
		set(fmt.Sprintf("E%d", row), r.WorkHours)
		set(fmt.Sprintf("F%d", row), r.DistanceKm)
	}

	_ = file.SetColWidth(sheet, "A", "A", 14)
	_ = file.SetColWidth(sheet, "B", "D", 12)
	_ = file.SetColWidth(sheet, "E", "F", 18)
	return nil
}

type monthRows struct {
	label string
	rows  []workday.Row
}

// groupByMonth keeps the first-seen order of months.
func groupByMonth(rows []workday.Row) []monthRows {
	var months []monthRows
	index := map[string]int{}
	for _, r := range rows {
		label := "Sem data"
		if !r.Date.IsZero() {
			label = r.Date.Format("2006-01")
		}
		i, ok := index[label]
		if !ok {
			i = len(months)
			index[label] = i
			months = append(months, monthRows{label: label})
		}
		months[i].rows = append(months[i].rows, r)
	}
	return months
}

func sumRows(rows []workday.Row) (work, travel, km float64) {
	for _, r := range rows {
		work += r.WorkHours
		travel += r.TravelHrs
		km += r.DistanceKm
	}
	return work, travel, km
}

func buildSheetName(label string, used map[string]struct{}) string {
	base := sanitizeSheetName("Dias " + label)
	if len(base) > maxSheetName {
		base = base[:maxSheetName]
	}

	nameCandidate := base
	counter := 2
	for {
		if _, exists := used[nameCandidate]; !exists {
			return nameCandidate
		}
		suffix := fmt.Sprintf("-%d", counter)
		trimmed := base
		if len(trimmed)+len(suffix) > maxSheetName {
			trimmed = trimmed[:maxSheetName-len(suffix)]
		}
		nameCandidate = trimmed + suffix
		counter++
	}
}

func sanitizeSheetName(value string) string {
	replacer := strings.NewReplacer(
		"[", "-",
		"]", "-",
		":", "-",
		"*", "-",
		"?", "-",
		"/", "-",
		"\\", "-",
	)
	value = strings.TrimSpace(replacer.Replace(value))
	if value == "" {
		return "Folha"
	}
	return value
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}
