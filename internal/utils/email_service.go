package utils

import (
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

// EmailService provides email delivery functionality
type EmailService struct {
	smtpHost     string
	smtpPort     int
	smtpUsername string
	smtpPassword string
}

// NewEmailService creates a new EmailService
func NewEmailService(smtpHost string, smtpPort int, smtpUsername, smtpPassword string) *EmailService {
	return &EmailService{
		smtpHost:     smtpHost,
		smtpPort:     smtpPort,
		smtpUsername: smtpUsername,
		smtpPassword: smtpPassword,
	}
}

// SendEmail sends an HTML email over SMTP with TLS.
func (s *EmailService) SendEmail(from, to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(from, "Correspondence Register"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(s.smtpHost, s.smtpPort, s.smtpUsername, s.smtpPassword)

	return d.DialAndSend(m)
}

// AssignmentEmailData carries the fields rendered into the assignment email.
type AssignmentEmailData struct {
	InwardNo               string
	Subject                string
	FromWhom               string
	AssignedTeam           string
	AssignmentInstructions string
	DueDate                *time.Time
}

// GenerateAssignmentEmailHTML creates the assignment notification body with
// inline styles for maximum client compatibility.
func (s *EmailService) GenerateAssignmentEmailHTML(data AssignmentEmailData) string {
	formattedDueDate := "Not specified"
	if data.DueDate != nil {
		formattedDueDate = data.DueDate.Format("Monday, 2 January 2006")
	}

	instructionsBlock := ""
	if data.AssignmentInstructions != "" {
		instructionsBlock = fmt.Sprintf(`
					<div style="background: #e0f2fe; border-left: 4px solid #0ea5e9; padding: 10px; margin: 15px 0;">
						<strong>Instructions:</strong><br/>
						%s
					</div>`, data.AssignmentInstructions)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
	<meta http-equiv="Content-Type" content="text/html; charset=UTF-8" />
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<div style="background: linear-gradient(135deg, #667eea 0%%, #764ba2 100%%); color: white; padding: 20px; border-radius: 8px 8px 0 0;">
			<h2 style="margin: 0;">New Assignment &mdash; %s Team</h2>
			<p style="margin: 6px 0 0;">Inward No: %s</p>
		</div>
		<div style="background: #f9fafb; padding: 20px; border: 1px solid #e5e7eb;">
			<div style="margin-bottom: 15px;">
				<div style="font-weight: bold; color: #4b5563;">Subject:</div>
				<div style="color: #1f2937; margin-top: 5px;">%s</div>
			</div>
			<div style="margin-bottom: 15px;">
				<div style="font-weight: bold; color: #4b5563;">From:</div>
				<div style="color: #1f2937; margin-top: 5px;">%s</div>
			</div>
			<div style="background: #fef3c7; border-left: 4px solid #f59e0b; padding: 10px; margin: 15px 0;">
				<strong>Due Date:</strong> %s
			</div>%s
			<p>Please log in to the team portal to process this assignment.</p>
		</div>
		<div style="background: #f3f4f6; padding: 15px; text-align: center; font-size: 12px; color: #6b7280; border-radius: 0 0 8px 8px;">
			<p style="margin: 0;">Automated notification from the Inward/Outward Register</p>
		</div>
	</div>
</body>
</html>`, data.AssignedTeam, data.InwardNo, data.Subject, data.FromWhom, formattedDueDate, instructionsBlock)
}

// GenerateAssignmentEmailSubject formats the subject line for an assignment
// notification the way the clients expect it.
func (s *EmailService) GenerateAssignmentEmailSubject(subject, inwardNo string) string {
	return fmt.Sprintf("New Assignment: %s [%s]", subject, inwardNo)
}
