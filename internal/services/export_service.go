package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/terraincognita07/wellnest/internal/models"
	"github.com/xuri/excelize/v2"
)

const exportSheetName = "Cycle"

var ExportCSVHeaders = []string{
	"Date",
	"Period status",
	"Flow",
	"Symptoms",
	"Notes",
	"Type",
}

type ExportDayReader interface {
	ListDaysInRange(ownerID uint, rawFrom string, rawTo string) ([]models.CycleDay, error)
}

type ExportService struct {
	days ExportDayReader
}

type ExportSummary struct {
	TotalEntries int
	HasData      bool
	DateFrom     string
	DateTo       string
}

type ExportRow struct {
	Date         string
	PeriodStatus string
	Flow         string
	Symptoms     []string
	Notes        string
	Type         string
}

func NewExportService(days ExportDayReader) *ExportService {
	return &ExportService{days: days}
}

func (service *ExportService) BuildRows(ownerID uint, rawFrom string, rawTo string) ([]ExportRow, error) {
	from, to, err := ParseExportRange(rawFrom, rawTo)
	if err != nil {
		return nil, err
	}
	days, err := service.days.ListDaysInRange(ownerID, from, to)
	if err != nil {
		return nil, err
	}

	rows := make([]ExportRow, 0, len(days))
	for _, day := range days {
		rows = append(rows, ExportRow{
			Date:         day.Date,
			PeriodStatus: exportPeriodStatus(day.PeriodStatus),
			Flow:         exportFlowLabel(day.Flow),
			Symptoms:     day.Symptoms,
			Notes:        day.Notes,
			Type:         day.Type,
		})
	}
	sortExportRows(rows)
	return rows, nil
}

func BuildExportSummary(rows []ExportRow) ExportSummary {
	if len(rows) == 0 {
		return ExportSummary{}
	}
	return ExportSummary{
		TotalEntries: len(rows),
		HasData:      true,
		DateFrom:     rows[0].Date,
		DateTo:       rows[len(rows)-1].Date,
	}
}

func (row ExportRow) Columns() []string {
	return []string{
		row.Date,
		row.PeriodStatus,
		row.Flow,
		strings.Join(row.Symptoms, "; "),
		row.Notes,
		row.Type,
	}
}

func WriteExportCSV(writer io.Writer, rows []ExportRow) error {
	csvWriter := csv.NewWriter(writer)
	if err := csvWriter.Write(ExportCSVHeaders); err != nil {
		return err
	}
	for _, row := range rows {
		if err := csvWriter.Write(row.Columns()); err != nil {
			return err
		}
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

func WriteExportXLSX(writer io.Writer, rows []ExportRow) error {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName(file.GetSheetName(0), exportSheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, 0, len(ExportCSVHeaders))
	for _, title := range ExportCSVHeaders {
		header = append(header, title)
	}
	if err := file.SetSheetRow(exportSheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for index, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, index+2)
		if err != nil {
			return err
		}
		columns := row.Columns()
		values := make([]interface{}, 0, len(columns))
		for _, column := range columns {
			values = append(values, column)
		}
		if err := file.SetSheetRow(exportSheetName, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", index+2, err)
		}
	}

	_, err := file.WriteTo(writer)
	return err
}

func sortExportRows(rows []ExportRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date < rows[j].Date
	})
}

func exportPeriodStatus(status string) string {
	if strings.TrimSpace(status) == "" {
		return models.PeriodStatusNone
	}
	return status
}

func exportFlowLabel(flow string) string {
	switch strings.ToLower(strings.TrimSpace(flow)) {
	case models.FlowLight:
		return "Light"
	case models.FlowMedium:
		return "Medium"
	case models.FlowHeavy:
		return "Heavy"
	case models.FlowSpotting:
		return "Spotting"
	default:
		return "None"
	}
}
