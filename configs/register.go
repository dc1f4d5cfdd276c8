package configs

// RegisterConfig holds register-wide settings: the closed set of teams an
// inward entry may be assigned to, and the bound applied to storage calls.
type RegisterConfig struct {
	Teams                 []string `yaml:"teams"`
	StorageTimeoutSeconds int      `yaml:"storage_timeout_seconds"`
}
