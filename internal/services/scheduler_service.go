package services

import (
	"fmt"
	"log"
	"time"

	"content-tracker-report/internal/models"
	"content-tracker-report/internal/utils"

	"github.com/robfig/cron/v3"
)

// SchedulerService sends the previous month's content report by email on a
// cron schedule.
type SchedulerService struct {
	reportService *ReportService
	emailService  *EmailService
	pdfService    *PDFService
	recipient     string
	cron          *cron.Cron
}

// NewSchedulerService creates a new scheduler service
func NewSchedulerService(
	reportService *ReportService,
	emailService *EmailService,
	pdfService *PDFService,
	recipient string,
) *SchedulerService {
	// Seconds precision to match the configured schedule format
	return &SchedulerService{
		reportService: reportService,
		emailService:  emailService,
		pdfService:    pdfService,
		recipient:     recipient,
		cron:          cron.New(cron.WithSeconds()),
	}
}

// Start registers the schedule and starts the cron scheduler
func (s *SchedulerService) Start(schedule string) error {
	_, err := s.cron.AddFunc(schedule, s.sendMonthlyReport)
	if err != nil {
		return fmt.Errorf("failed to schedule monthly report: %w", err)
	}
	s.cron.Start()
	log.Printf("Monthly report scheduler started (schedule: %s, recipient: %s)", schedule, s.recipient)
	return nil
}

// Stop stops the cron scheduler
func (s *SchedulerService) Stop() {
	s.cron.Stop()
	log.Printf("Monthly report scheduler stopped")
}

// sendMonthlyReport assembles and emails the previous month's report
func (s *SchedulerService) sendMonthlyReport() {
	now := time.Now()
	month := utils.PreviousMonthKey(now)
	log.Printf("Generating scheduled report for %s", month)

	if err := s.SendReportForMonth(month, s.recipient); err != nil {
		if _, ok := err.(*models.EmptyResultError); ok {
			log.Printf("WARNING: No tasks for %s, skipping scheduled report", month)
			return
		}
		log.Printf("ERROR: Failed to send scheduled report for %s: %v", month, err)
	}
}

// SendReportForMonth generates, renders, and emails one month's report.
// Also used by the manual send endpoint.
func (s *SchedulerService) SendReportForMonth(month, recipient string) error {
	cfg := models.FilterConfig{Month: month}
	report, err := s.reportService.GenerateReport(cfg, models.GroupByEmployeeThenClient, time.Now())
	if err != nil {
		return err
	}

	pdfData, err := s.pdfService.GenerateReportPDF(report)
	if err != nil {
		log.Printf("WARNING: Failed to render report PDF for %s: %v, sending without attachment", month, err)
		pdfData = nil
	}

	if err := s.emailService.SendReportEmail(recipient, report, pdfData); err != nil {
		return fmt.Errorf("failed to email report for %s: %w", month, err)
	}
	log.Printf("Sent report for %s to %s", month, recipient)
	return nil
}
