package logics

import (
	"context"
	"testing"
	"time"

	"register-server/configs"
	"register-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubMailer struct {
	from, to, subject, body string
	sends                   int
}

func (m *stubMailer) SendEmail(from, to, subject, htmlBody string) error {
	m.from, m.to, m.subject, m.body = from, to, subject, htmlBody
	m.sends++
	return nil
}

func TestBuildReportHTMLCounts(t *testing.T) {
	entries := []pendingEntry{
		{Type: "Inward", EntryNo: "INW/2026/001", Subject: "A", Status: string(models.StatusUnassigned), Date: time.Now()},
		{Type: "Inward", EntryNo: "INW/2026/002", Subject: "B", Status: string(models.StatusPending), Team: "UG", Date: time.Now()},
		{Type: "Inward", EntryNo: "INW/2026/003", Subject: "C", Status: string(models.StatusInProgress), Team: "PhD", Date: time.Now()},
		{Type: "Outward", EntryNo: "OTW/2026/001", Subject: "D", Status: "Open", Team: "UG", Date: time.Now()},
	}

	html := buildReportHTML("Monday, 02 March 2026", entries)

	assert.Contains(t, html, "Total Pending: 4")
	assert.Contains(t, html, "INW/2026/001")
	assert.Contains(t, html, "OTW/2026/001")
	assert.Contains(t, html, "Detailed Report")
	assert.NotContains(t, html, "All entries are up to date!")
}

func TestBuildReportHTMLEmpty(t *testing.T) {
	html := buildReportHTML("Monday, 02 March 2026", nil)
	assert.Contains(t, html, "All entries are up to date!")
	assert.Contains(t, html, "Total Pending: 0")
}

func TestSendReportCollectsOpenEntries(t *testing.T) {
	db := newTestDB(t)
	inwardSvc := newInwardService(t, db, nil)
	outwardSvc := newOutwardService(t, db)

	open, err := inwardSvc.Create(context.Background(), validInwardInput())
	require.NoError(t, err)

	// Completed inward entries and closed cases stay out of the report.
	finished := validInwardInput()
	finished.AssignedTeam = "UG"
	finished.AssignedToEmail = "ug@example.edu"
	done, err := inwardSvc.Create(context.Background(), finished)
	require.NoError(t, err)
	_, err = inwardSvc.UpdateStatus(context.Background(), done.ID, string(models.StatusCompleted))
	require.NoError(t, err)

	outward, err := outwardSvc.Create(context.Background(), validOutwardInput())
	require.NoError(t, err)
	closedInput := validOutwardInput()
	closedEntry, err := outwardSvc.Create(context.Background(), closedInput)
	require.NoError(t, err)
	_, err = outwardSvc.CloseCase(context.Background(), closedEntry.ID)
	require.NoError(t, err)

	prevReport := configs.Configs.Report
	prevEmail := configs.Configs.Email
	configs.Configs.Report.RecipientEmail = "boss@example.edu"
	configs.Configs.Email.SenderEmail = "register@example.edu"
	t.Cleanup(func() {
		configs.Configs.Report = prevReport
		configs.Configs.Email = prevEmail
	})

	mailer := &stubMailer{}
	svc := NewReportService(db, mailer, zap.NewNop())
	require.NoError(t, svc.SendReport(context.Background()))

	assert.Equal(t, 1, mailer.sends)
	assert.Equal(t, "boss@example.edu", mailer.to)
	assert.Equal(t, "register@example.edu", mailer.from)
	assert.Contains(t, mailer.subject, "Weekly Pending Entries Report")
	assert.Contains(t, mailer.body, open.InwardNo)
	assert.Contains(t, mailer.body, outward.OutwardNo)
	assert.NotContains(t, mailer.body, done.InwardNo)
	assert.NotContains(t, mailer.body, closedEntry.OutwardNo)
}
