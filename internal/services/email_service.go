package services

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"content-tracker-report/internal/config"
	"content-tracker-report/internal/models"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailService handles email sending via SendGrid
type EmailService struct {
	fromEmail string
	client    *sendgrid.Client
}

// NewEmailService creates a new email service
func NewEmailService(cfg config.EmailConfig) *EmailService {
	return &EmailService{
		fromEmail: cfg.FromEmail,
		client:    sendgrid.NewSendClient(cfg.APIKey),
	}
}

// SendReportEmail sends a content report email with a PDF attachment
func (s *EmailService) SendReportEmail(toEmail string, report *models.Report, pdfData []byte) error {
	from := mail.NewEmail("Content Tracker", s.fromEmail)
	to := mail.NewEmail("", toEmail)
	subject := fmt.Sprintf("Social Media Content Report - %s", report.Month)

	htmlContent := s.buildReportEmailHTML(report)
	plainTextContent := s.buildReportEmailText(report)
	message := mail.NewSingleEmail(from, subject, to, plainTextContent, htmlContent)

	if len(pdfData) > 0 {
		attachment := mail.NewAttachment()
		attachment.SetContent(base64.StdEncoding.EncodeToString(pdfData))
		attachment.SetType("application/pdf")
		attachment.SetFilename(fmt.Sprintf("content-report-%s.pdf", report.Month))
		attachment.SetDisposition("attachment")
		message.AddAttachment(attachment)
	}

	response, err := s.client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email via SendGrid: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("SendGrid API error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

// buildReportEmailHTML builds the HTML content for the report email
func (s *EmailService) buildReportEmailHTML(report *models.Report) string {
	var html bytes.Buffer

	html.WriteString(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #0066cc; color: white; padding: 20px; border-radius: 8px 8px 0 0; }
        .content { background-color: #f8f9fa; padding: 20px; border-radius: 0 0 8px 8px; }
        .summary-box { background-color: white; padding: 15px; border-radius: 5px; margin: 15px 0; border-left: 4px solid #0066cc; }
        .footer { text-align: center; color: #666; font-size: 12px; margin-top: 30px; padding-top: 20px; border-top: 1px solid #eee; }
    </style>
</head>
<body>
    <div class="header">
        <h1 style="margin: 0;">Social Media Content Report</h1>
        <p style="margin: 5px 0 0 0; opacity: 0.9;">` + report.Month + `</p>
    </div>
    <div class="content">
        <p>Hello,</p>
        <p>The content report for <strong>` + report.Month + `</strong> is ready: ` +
		fmt.Sprintf("%d tasks across %d groups", report.TotalTasks, report.GroupCount) + `.</p>`)

	if report.Summary != "" {
		html.WriteString(`
        <div class="summary-box">
            <h3 style="margin-top: 0; color: #0066cc;">Summary</h3>
            <p>` + report.Summary + `</p>
        </div>`)
	}

	html.WriteString(`
        <p>The complete report is attached as a PDF document.</p>
        <p>Best regards,<br>Content Tracker</p>
    </div>
    <div class="footer">
        <p>This is an automated email. Please do not reply.</p>
        <p>Generated on ` + report.GeneratedAt + `</p>
    </div>
</body>
</html>`)

	return html.String()
}

// buildReportEmailText builds the plain text content for the report email
func (s *EmailService) buildReportEmailText(report *models.Report) string {
	var text bytes.Buffer

	text.WriteString(fmt.Sprintf(`Social Media Content Report
%s

Hello,

The content report for %s is ready: %d tasks across %d groups.

`, report.Month, report.Month, report.TotalTasks, report.GroupCount))

	if report.Summary != "" {
		text.WriteString(fmt.Sprintf(`Summary:
%s

`, report.Summary))
	}

	text.WriteString(`The complete report is attached as a PDF document.

Best regards,
Content Tracker

---
This is an automated email. Please do not reply.
Generated on ` + report.GeneratedAt)

	return text.String()
}
