package assets

import "time"

// Config points the client at an HTTP asset host. An empty UploadURL
// disables uploads.
type Config struct {
	// UploadURL receives multipart POSTs with a "file" part.
	UploadURL    string `yaml:"upload_url" json:"upload_url"`
	UploadPreset string `yaml:"upload_preset" json:"upload_preset"`
	APIKey       string `yaml:"api_key" json:"api_key"`
	// Timeout is the per-request timeout
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
	// MaxBytes caps a single upload
	MaxBytes int64 `yaml:"max_bytes" json:"max_bytes"`
}

// DefaultConfig returns the limits used when none are configured.
func DefaultConfig() Config {
	return Config{
		Timeout:  20 * time.Second,
		MaxBytes: 5 << 20,
	}
}
