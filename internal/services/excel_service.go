package services

import (
	"bytes"
	"fmt"

	"content-tracker-report/internal/models"

	"github.com/xuri/excelize/v2"
)

// ExcelService renders the report document model as a flat spreadsheet:
// one row per task, with employee/client header rows interspersed.
type ExcelService struct{}

// NewExcelService creates a new excel service
func NewExcelService() *ExcelService {
	return &ExcelService{}
}

const sheetName = "Report"

// GenerateReportExcel renders a report into xlsx bytes
func (s *ExcelService) GenerateReportExcel(report *models.Report) ([]byte, error) {
	if report == nil || len(report.Sections) == 0 {
		return nil, fmt.Errorf("invalid report data")
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	groupStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"0066CC"}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}
	clientStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 10},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E9ECEF"}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 9},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}

	row := 1
	setRow := func(values []interface{}, style int) error {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return err
		}
		if style != 0 {
			end, err := excelize.CoordinatesToCellName(len(values), row)
			if err != nil {
				return err
			}
			if err := f.SetCellStyle(sheetName, cell, end, style); err != nil {
				return err
			}
		}
		row++
		return nil
	}

	title := report.Title
	if report.Month != "" {
		title = fmt.Sprintf("%s - %s", title, report.Month)
	}
	if err := setRow([]interface{}{title}, headerStyle); err != nil {
		return nil, fmt.Errorf("failed to write title row: %w", err)
	}
	if err := setRow([]interface{}{
		fmt.Sprintf("Generated %s", report.GeneratedAt),
		fmt.Sprintf("%d tasks", report.TotalTasks),
		fmt.Sprintf("%d groups", report.GroupCount),
	}, 0); err != nil {
		return nil, fmt.Errorf("failed to write summary row: %w", err)
	}
	row++ // blank spacer

	for _, section := range report.Sections {
		if err := setRow([]interface{}{
			section.Title,
			fmt.Sprintf("Total: %d", section.Counts.Total),
			fmt.Sprintf("Completed: %d", section.Counts.Completed),
			fmt.Sprintf("In Progress: %d", section.Counts.InProgress),
			fmt.Sprintf("Pending: %d", section.Counts.Pending),
		}, groupStyle); err != nil {
			return nil, fmt.Errorf("failed to write group row: %w", err)
		}

		for _, client := range section.Clients {
			// In by-client mode the top-level title already names the
			// client; skip the duplicate header row.
			if report.Mode != models.GroupByClient {
				if err := setRow([]interface{}{client.ClientName}, clientStyle); err != nil {
					return nil, fmt.Errorf("failed to write client row: %w", err)
				}
			}
			if err := setRow([]interface{}{"Task", "Department", "Post Date", "Status", "Posted At"}, headerStyle); err != nil {
				return nil, fmt.Errorf("failed to write header row: %w", err)
			}
			for _, r := range client.Rows {
				if err := setRow([]interface{}{r.TaskName, r.Department, r.PostDate, r.Status, r.PostedAt}, 0); err != nil {
					return nil, fmt.Errorf("failed to write task row: %w", err)
				}
			}
		}
		row++ // blank spacer between groups
	}

	for i, width := range []float64{44, 16, 14, 22, 20} {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve column: %w", err)
		}
		if err := f.SetColWidth(sheetName, name, name, width); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate spreadsheet: %w", err)
	}
	return buf.Bytes(), nil
}
