package logics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"register-server/configs"
	"register-server/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ReportMailer sends a rendered report. Satisfied by utils.EmailService.
type ReportMailer interface {
	SendEmail(from, to, subject, htmlBody string) error
}

// ReportService periodically mails a summary of everything still open in
// both registers to a configured recipient.
type ReportService struct {
	db     *gorm.DB
	mailer ReportMailer
	logger *zap.Logger
}

// NewReportService returns a new instance of ReportService.
func NewReportService(db *gorm.DB, mailer ReportMailer, logger *zap.Logger) *ReportService {
	return &ReportService{db: db, mailer: mailer, logger: logger}
}

// pendingEntry is one row of the report, drawn from either register.
type pendingEntry struct {
	Type    string
	EntryNo string
	Subject string
	Person  string
	Date    time.Time
	Team    string
	Status  string
}

// Run sends a report every interval until the context is cancelled. The
// first report goes out one full interval after startup, not immediately.
func (rs *ReportService) Run(ctx context.Context) {
	cfg := configs.Configs.Report
	if !cfg.Enabled || cfg.RecipientEmail == "" {
		rs.logger.Info("pending report disabled")
		return
	}

	interval := time.Duration(cfg.IntervalHours) * time.Hour
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	rs.logger.Info("pending report scheduler started",
		zap.String("recipient", cfg.RecipientEmail),
		zap.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			rs.logger.Info("pending report scheduler stopped")
			return
		case <-ticker.C:
			if err := rs.SendReport(ctx); err != nil {
				rs.logger.Error("failed to send pending report", zap.Error(err))
			}
		}
	}
}

// SendReport builds and mails one report from the current register state.
func (rs *ReportService) SendReport(ctx context.Context) error {
	entries, err := rs.collectPending(ctx)
	if err != nil {
		return err
	}

	generated := time.Now().Format("Monday, 02 January 2006")
	html := buildReportHTML(generated, entries)
	subject := fmt.Sprintf("Weekly Pending Entries Report - %s", generated)

	cfg := configs.Configs.Report
	if err := rs.mailer.SendEmail(configs.Configs.Email.SenderEmail, cfg.RecipientEmail, subject, html); err != nil {
		return err
	}

	rs.logger.Info("pending report sent",
		zap.String("recipient", cfg.RecipientEmail),
		zap.Int("entries", len(entries)))
	return nil
}

func (rs *ReportService) collectPending(ctx context.Context) ([]pendingEntry, error) {
	ctx, cancel := storageCtx(ctx)
	defer cancel()

	var inwards []models.Inward
	if err := rs.db.WithContext(ctx).
		Where("assignment_status <> ?", models.StatusCompleted).
		Order("created_at ASC").
		Find(&inwards).Error; err != nil {
		return nil, storageErr(err, "failed to load pending inward entries")
	}

	var outwards []models.Outward
	if err := rs.db.WithContext(ctx).
		Where("case_closed = ?", false).
		Order("created_at ASC").
		Find(&outwards).Error; err != nil {
		return nil, storageErr(err, "failed to load open outward entries")
	}

	entries := make([]pendingEntry, 0, len(inwards)+len(outwards))
	for _, in := range inwards {
		entries = append(entries, pendingEntry{
			Type:    "Inward",
			EntryNo: in.InwardNo,
			Subject: in.Subject,
			Person:  in.FromWhom,
			Date:    in.ReceivedAt,
			Team:    in.AssignedTeam,
			Status:  string(in.AssignmentStatus),
		})
	}
	for _, out := range outwards {
		entries = append(entries, pendingEntry{
			Type:    "Outward",
			EntryNo: out.OutwardNo,
			Subject: out.Subject,
			Person:  out.ToWhom,
			Date:    out.SentAt,
			Team:    out.CreatedByTeam,
			Status:  "Open",
		})
	}
	return entries, nil
}

func reportStatusColor(status string) string {
	switch status {
	case "Unassigned":
		return "#94a3b8"
	case "Pending":
		return "#f59e0b"
	case "In Progress":
		return "#3b82f6"
	case "Open":
		return "#10b981"
	default:
		return "#64748b"
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func buildReportHTML(generatedDate string, entries []pendingEntry) string {
	var unassigned, pending, inProgress, openOutward int
	for _, e := range entries {
		switch {
		case e.Type == "Outward":
			openOutward++
		case e.Status == string(models.StatusUnassigned):
			unassigned++
		case e.Status == string(models.StatusPending):
			pending++
		case e.Status == string(models.StatusInProgress):
			inProgress++
		}
	}
	total := len(entries)

	var rows strings.Builder
	for _, e := range entries {
		typeColor := "#5B7CFF"
		if e.Type == "Outward" {
			typeColor = "#10b981"
		}
		rows.WriteString(fmt.Sprintf(`
        <tr>
            <td style="padding:10px 12px;border-bottom:1px solid #e8edf5;font-weight:600;color:%s">%s</td>
            <td style="padding:10px 12px;border-bottom:1px solid #e8edf5;font-family:monospace;font-size:13px">%s</td>
            <td style="padding:10px 12px;border-bottom:1px solid #e8edf5">%s</td>
            <td style="padding:10px 12px;border-bottom:1px solid #e8edf5">%s</td>
            <td style="padding:10px 12px;border-bottom:1px solid #e8edf5;white-space:nowrap">%s</td>
            <td style="padding:10px 12px;border-bottom:1px solid #e8edf5">%s</td>
            <td style="padding:10px 12px;border-bottom:1px solid #e8edf5">
                <span style="background:%s;color:#fff;padding:3px 10px;border-radius:12px;font-size:12px;font-weight:600">%s</span>
            </td>
        </tr>`,
			typeColor, e.Type, e.EntryNo, orDash(e.Subject), orDash(e.Person),
			e.Date.Format("02 Jan 2006"), orDash(e.Team), reportStatusColor(e.Status), e.Status))
	}

	detail := `<p style="text-align:center;color:#10b981;font-weight:600;padding:20px">All entries are up to date!</p>`
	if total > 0 {
		detail = fmt.Sprintf(`
    <h3 style="font-size:13px;text-transform:uppercase;letter-spacing:0.1em;color:#5B7CFF;margin:0 0 14px">Detailed Report</h3>
    <table style="width:100%%;border-collapse:collapse;font-size:13px">
      <thead><tr>
        <th style="background:#f8fafc;padding:10px 12px;text-align:left;font-size:11px;text-transform:uppercase;letter-spacing:0.08em;color:#64748b;border-bottom:2px solid #e8edf5">Type</th>
        <th style="background:#f8fafc;padding:10px 12px;text-align:left;font-size:11px;text-transform:uppercase;letter-spacing:0.08em;color:#64748b;border-bottom:2px solid #e8edf5">Entry Number</th>
        <th style="background:#f8fafc;padding:10px 12px;text-align:left;font-size:11px;text-transform:uppercase;letter-spacing:0.08em;color:#64748b;border-bottom:2px solid #e8edf5">Subject</th>
        <th style="background:#f8fafc;padding:10px 12px;text-align:left;font-size:11px;text-transform:uppercase;letter-spacing:0.08em;color:#64748b;border-bottom:2px solid #e8edf5">Person</th>
        <th style="background:#f8fafc;padding:10px 12px;text-align:left;font-size:11px;text-transform:uppercase;letter-spacing:0.08em;color:#64748b;border-bottom:2px solid #e8edf5">Date</th>
        <th style="background:#f8fafc;padding:10px 12px;text-align:left;font-size:11px;text-transform:uppercase;letter-spacing:0.08em;color:#64748b;border-bottom:2px solid #e8edf5">Team</th>
        <th style="background:#f8fafc;padding:10px 12px;text-align:left;font-size:11px;text-transform:uppercase;letter-spacing:0.08em;color:#64748b;border-bottom:2px solid #e8edf5">Status</th>
      </tr></thead>
      <tbody>%s</tbody>
    </table>`, rows.String())
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"/></head>
<body style="margin:0;padding:0;font-family:'Segoe UI',Arial,sans-serif;background:#f4f6fb;color:#1e293b">
<div style="max-width:760px;margin:32px auto;background:#fff;border-radius:10px;overflow:hidden;box-shadow:0 4px 24px rgba(0,0,0,0.08)">
  <div style="background:linear-gradient(135deg,#1e293b 0%%,#334155 100%%);padding:28px 32px">
    <h1 style="margin:0;color:#fff;font-size:22px;font-weight:700">Weekly Pending Entries Report</h1>
    <p style="margin:6px 0 0;color:rgba(255,255,255,0.7);font-size:13px">Generated: %s &nbsp;|&nbsp; Total Pending: %d</p>
  </div>
  <div style="padding:28px 32px">
    <div style="background:#fff8e1;border:1px solid #fde68a;border-radius:8px;padding:16px 20px;margin-bottom:24px">
      <h3 style="margin:0 0 10px;font-size:14px;color:#92400e">Summary</h3>
      <p style="margin:0;font-size:13px;color:#78350f">The following entries require attention and are pending completion:</p>
      <div style="display:flex;gap:16px;flex-wrap:wrap;margin-top:16px">
        <div style="flex:1;min-width:120px;background:#fff;border:1px solid #e8edf5;border-radius:8px;padding:14px;text-align:center"><div style="font-size:28px;font-weight:700;color:#1e293b">%d</div><div style="font-size:11px;color:#64748b;text-transform:uppercase;letter-spacing:0.06em;margin-top:4px">Unassigned</div></div>
        <div style="flex:1;min-width:120px;background:#fff;border:1px solid #e8edf5;border-radius:8px;padding:14px;text-align:center"><div style="font-size:28px;font-weight:700;color:#1e293b">%d</div><div style="font-size:11px;color:#64748b;text-transform:uppercase;letter-spacing:0.06em;margin-top:4px">Pending</div></div>
        <div style="flex:1;min-width:120px;background:#fff;border:1px solid #e8edf5;border-radius:8px;padding:14px;text-align:center"><div style="font-size:28px;font-weight:700;color:#1e293b">%d</div><div style="font-size:11px;color:#64748b;text-transform:uppercase;letter-spacing:0.06em;margin-top:4px">In Progress</div></div>
        <div style="flex:1;min-width:120px;background:#fff;border:1px solid #e8edf5;border-radius:8px;padding:14px;text-align:center"><div style="font-size:28px;font-weight:700;color:#1e293b">%d</div><div style="font-size:11px;color:#64748b;text-transform:uppercase;letter-spacing:0.06em;margin-top:4px">Open Outward</div></div>
        <div style="flex:1;min-width:120px;background:#fff;border:1px solid #5B7CFF;border-radius:8px;padding:14px;text-align:center"><div style="font-size:28px;font-weight:700;color:#5B7CFF">%d</div><div style="font-size:11px;color:#64748b;text-transform:uppercase;letter-spacing:0.06em;margin-top:4px">Total Pending</div></div>
      </div>
    </div>
    %s
  </div>
  <div style="background:#f8fafc;padding:16px 32px;border-top:1px solid #e8edf5;font-size:12px;color:#94a3b8;text-align:center">
    <strong>Correspondence Register</strong> &nbsp;&middot;&nbsp; This is an automated weekly report. Please do not reply.
  </div>
</div>
</body>
</html>`, generatedDate, total, unassigned, pending, inProgress, openOutward, total, detail)
}
