// Package config handles configuration for the directory store CLI,
// including defaults, JSON overlay, and command-line flags.
package config

// Config holds runtime settings for the directory store.
//
// Fields:
//   - StorePath: path of the JSON snapshot file.
//   - HashMode: password digest algorithm, "argon2id" (default) or
//     "sha256" (legacy unsalted digest, kept for old snapshot parity).
//   - LogLevel: minimum log level ("debug", "info", "warn", "error").
type Config struct {
	StorePath string
	HashMode  string
	LogLevel  string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.StorePath = "directory.json"
	c.HashMode = "argon2id"
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
