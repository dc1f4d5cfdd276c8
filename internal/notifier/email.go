package notifier

import (
	"time"

	"register-server/internal/utils"
)

// EmailSender delivers notifications over SMTP.
type EmailSender struct {
	email       *utils.EmailService
	senderEmail string
}

// NewEmailSender creates an EmailSender on top of the shared EmailService.
func NewEmailSender(email *utils.EmailService, senderEmail string) *EmailSender {
	return &EmailSender{
		email:       email,
		senderEmail: senderEmail,
	}
}

// Send renders the assignment email and delivers it to the task recipient.
func (s *EmailSender) Send(task Task) error {
	data := utils.AssignmentEmailData{
		InwardNo: task.InwardNo,
		Subject:  task.Subject,
	}
	if v, ok := task.Payload["from_whom"].(string); ok {
		data.FromWhom = v
	}
	if v, ok := task.Payload["assigned_team"].(string); ok {
		data.AssignedTeam = v
	}
	if v, ok := task.Payload["assignment_instructions"].(string); ok {
		data.AssignmentInstructions = v
	}
	if v, ok := task.Payload["due_date"].(time.Time); ok {
		data.DueDate = &v
	}
	if v, ok := task.Payload["due_date"].(*time.Time); ok {
		data.DueDate = v
	}

	subject := s.email.GenerateAssignmentEmailSubject(task.Subject, task.InwardNo)
	htmlBody := s.email.GenerateAssignmentEmailHTML(data)

	return s.email.SendEmail(s.senderEmail, task.RecipientEmail, subject, htmlBody)
}
