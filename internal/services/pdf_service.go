package services

import (
	"bytes"
	"fmt"

	"content-tracker-report/internal/models"

	"github.com/jung-kurt/gofpdf/v2"
)

// PDFService renders the report document model as a paginated PDF
type PDFService struct{}

// NewPDFService creates a new PDF service
func NewPDFService() *PDFService {
	return &PDFService{}
}

// GenerateReportPDF renders a report into PDF bytes
func (s *PDFService) GenerateReportPDF(report *models.Report) ([]byte, error) {
	if report == nil || len(report.Sections) == 0 {
		return nil, fmt.Errorf("invalid report data")
	}

	// A4 portrait
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 20, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AliasNbPages("{nb}")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "", 9)
		pdf.SetTextColor(108, 117, 125)
		pdf.SetX(15)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	// Title page header
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 22)
	pdf.SetTextColor(0, 102, 204)
	pdf.CellFormat(0, 16, report.Title, "", 0, "C", false, 0, "")
	pdf.Ln(14)

	pdf.SetFont("Arial", "", 11)
	pdf.SetTextColor(108, 117, 125)
	subtitle := fmt.Sprintf("Generated: %s", formatDateForPDF(report.GeneratedAt))
	if report.Month != "" {
		subtitle = fmt.Sprintf("%s  |  Month: %s", subtitle, report.Month)
	}
	pdf.CellFormat(0, 8, subtitle, "", 0, "C", false, 0, "")
	pdf.Ln(8)
	pdf.CellFormat(0, 8, fmt.Sprintf("%d tasks across %d groups", report.TotalTasks, report.GroupCount), "", 0, "C", false, 0, "")
	pdf.Ln(12)

	if report.Summary != "" {
		s.addSummaryBox(pdf, report.Summary)
	}

	for _, section := range report.Sections {
		s.addSection(pdf, section)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// addSummaryBox renders the optional summary paragraph in a bordered box
func (s *PDFService) addSummaryBox(pdf *gofpdf.Fpdf, summary string) {
	pdf.SetFillColor(248, 249, 250)
	pdf.SetDrawColor(0, 102, 204)
	pdf.SetLineWidth(0.5)
	startY := pdf.GetY()

	padding := 8.0
	textWidth := 180.0 - (padding * 2)

	pdf.SetFont("Arial", "", 9)
	lines := pdf.SplitText(summary, textWidth)
	boxHeight := float64(len(lines)*5 + 10)
	pdf.Rect(15, startY, 180, boxHeight, "FD")

	pdf.SetTextColor(33, 37, 41)
	currentY := startY + 5
	for _, line := range lines {
		pdf.SetXY(15+padding, currentY)
		pdf.CellFormat(0, 5, line, "", 0, "L", false, 0, "")
		currentY += 5
	}

	pdf.SetY(startY + boxHeight)
	pdf.Ln(10)
}

// addSection renders one top-level group with its nested client tables
func (s *PDFService) addSection(pdf *gofpdf.Fpdf, section models.ReportSection) {
	if pdf.GetY() > 240 {
		pdf.AddPage()
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 15)
	pdf.SetTextColor(33, 37, 41)
	pdf.CellFormat(0, 9, section.Title, "", 0, "L", false, 0, "")
	pdf.Ln(9)

	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(108, 117, 125)
	pdf.CellFormat(0, 6, fmt.Sprintf("Total: %d   Completed: %d   In Progress: %d   Pending: %d",
		section.Counts.Total, section.Counts.Completed, section.Counts.InProgress, section.Counts.Pending),
		"", 0, "L", false, 0, "")
	pdf.Ln(6)

	pdf.SetLineWidth(0.5)
	pdf.SetDrawColor(0, 102, 204)
	pdf.Line(15, pdf.GetY(), 195, pdf.GetY())
	pdf.Ln(5)

	for _, client := range section.Clients {
		s.addClientTable(pdf, client)
	}
}

// addClientTable renders one client sub-section as a row table
func (s *PDFService) addClientTable(pdf *gofpdf.Fpdf, client models.ClientSection) {
	if pdf.GetY() > 250 {
		pdf.AddPage()
	}

	pdf.SetFont("Arial", "B", 11)
	pdf.SetTextColor(33, 37, 41)
	pdf.CellFormat(0, 7, client.ClientName, "", 0, "L", false, 0, "")
	pdf.Ln(7)

	// Column widths sum to the 180mm working width
	col := []float64{62, 26, 28, 34, 30}
	headers := []string{"Task", "Department", "Post Date", "Status", "Posted At"}

	headerY := pdf.GetY()
	pdf.SetFillColor(0, 102, 204)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Arial", "B", 8)
	pdf.SetX(15)
	for i, h := range headers {
		pdf.CellFormat(col[i], 7, h, "1", 0, "L", true, 0, "")
	}
	pdf.SetY(headerY + 7)

	pdf.SetFont("Arial", "", 8)
	pdf.SetTextColor(33, 37, 41)
	for i, row := range client.Rows {
		if pdf.GetY() > 265 {
			pdf.AddPage()
		}
		if i%2 == 0 {
			pdf.SetFillColor(255, 255, 255)
		} else {
			pdf.SetFillColor(248, 249, 250)
		}
		pdf.SetX(15)
		cells := []string{row.TaskName, row.Department, row.PostDate, row.Status, row.PostedAt}
		for j, cell := range cells {
			pdf.CellFormat(col[j], 6, cell, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(6)
	}
	pdf.Ln(6)
}

// formatDateForPDF trims an ISO timestamp to its date part for display
func formatDateForPDF(dateStr string) string {
	if len(dateStr) >= 10 {
		return dateStr[:10]
	}
	return dateStr
}
