package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateAssignmentEmailHTML(t *testing.T) {
	svc := NewEmailService("smtp.example.edu", 587, "user", "pass")

	due := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	html := svc.GenerateAssignmentEmailHTML(AssignmentEmailData{
		InwardNo:               "INW/2026/014",
		Subject:                "Transcript request",
		FromWhom:               "Registrar",
		AssignedTeam:           "UG",
		AssignmentInstructions: "Respond by post",
		DueDate:                &due,
	})

	assert.Contains(t, html, "INW/2026/014")
	assert.Contains(t, html, "Transcript request")
	assert.Contains(t, html, "UG Team")
	assert.Contains(t, html, "Monday, 16 March 2026")
	assert.Contains(t, html, "Respond by post")
}

func TestGenerateAssignmentEmailHTMLOptionalFields(t *testing.T) {
	svc := NewEmailService("smtp.example.edu", 587, "user", "pass")

	html := svc.GenerateAssignmentEmailHTML(AssignmentEmailData{
		InwardNo:     "INW/2026/015",
		Subject:      "No frills",
		AssignedTeam: "PhD",
	})

	assert.Contains(t, html, "Not specified")
	assert.NotContains(t, html, "Instructions:")
}

func TestGenerateAssignmentEmailSubject(t *testing.T) {
	svc := NewEmailService("smtp.example.edu", 587, "user", "pass")
	subject := svc.GenerateAssignmentEmailSubject("Transcript request", "INW/2026/014")
	assert.Equal(t, "New Assignment: Transcript request [INW/2026/014]", subject)
}
