package configs

type ReportConfig struct {
	Enabled        bool   `yaml:"enabled"`
	RecipientEmail string `yaml:"recipient_email"`
	IntervalHours  int    `yaml:"interval_hours"`
}
