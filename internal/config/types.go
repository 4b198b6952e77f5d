package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Defaults shared by DefaultConfig, viper defaults and the flag help text.
const (
	DefaultServerURL      = "http://localhost:5000"
	DefaultServerTimeout  = 10 * time.Second
	DefaultMonitorTimeout = 10 * time.Minute
	DefaultReloadDelay    = 2 * time.Second
	DefaultRefreshEvery   = 30 * time.Second
	DefaultNotifyDuration = 5 * time.Second
	DefaultCompanyLimit   = 10
	DefaultSourceLimit    = 8

	// MinRefreshInterval keeps a typo like "30ms" from hammering the backend.
	MinRefreshInterval = time.Second
)

// Config represents the complete .tracker.yaml configuration file.
type Config struct {
	Version    int              `yaml:"version" mapstructure:"version"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Refresh    RefreshConfig    `yaml:"refresh" mapstructure:"refresh"`
	Monitoring MonitoringConfig `yaml:"monitoring" mapstructure:"monitoring"`
	Charts     ChartsConfig     `yaml:"charts" mapstructure:"charts"`
	Notify     NotifyConfig     `yaml:"notify" mapstructure:"notify"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
	Output     OutputConfig     `yaml:"output" mapstructure:"output"`
}

// ServerConfig points at the dashboard backend.
type ServerConfig struct {
	// URL is the backend base URL; /api/stats etc. are appended to it.
	URL string `yaml:"url" mapstructure:"url"`

	// Timeout bounds every request except the monitoring trigger.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// RefreshConfig controls the periodic stats refresh.
type RefreshConfig struct {
	// Interval between ticks. Not drift-corrected.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`

	// DiscardStale drops responses that arrive after a newer one was applied.
	DiscardStale bool `yaml:"discard_stale" mapstructure:"discard_stale"`
}

// MonitoringConfig controls the monitoring trigger.
type MonitoringConfig struct {
	// Timeout for the long-running /api/run-monitoring call.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// ReloadDelay is how long the success notification stays before the reload.
	ReloadDelay time.Duration `yaml:"reload_delay" mapstructure:"reload_delay"`
}

// ChartsConfig controls how many entries each chart shows.
type ChartsConfig struct {
	CompanyLimit int `yaml:"company_limit" mapstructure:"company_limit"`
	SourceLimit  int `yaml:"source_limit" mapstructure:"source_limit"`
}

// NotifyConfig controls notification overlays.
type NotifyConfig struct {
	// Duration before a notification removes itself.
	Duration time.Duration `yaml:"duration" mapstructure:"duration"`
}

// LogConfig controls where logs go while the TUI owns the terminal.
type LogConfig struct {
	// File is the log path. Empty means ~/.config/company-tracker/tracker.log.
	File string `yaml:"file" mapstructure:"file"`
}

// OutputConfig controls terminal output formatting.
type OutputConfig struct {
	// Color mode: "auto", "always", or "never".
	// "auto" disables color when output is piped.
	Color string `yaml:"color" mapstructure:"color"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		Server: ServerConfig{
			URL:     DefaultServerURL,
			Timeout: DefaultServerTimeout,
		},
		Refresh: RefreshConfig{
			Interval: DefaultRefreshEvery,
		},
		Monitoring: MonitoringConfig{
			Timeout:     DefaultMonitorTimeout,
			ReloadDelay: DefaultReloadDelay,
		},
		Charts: ChartsConfig{
			CompanyLimit: DefaultCompanyLimit,
			SourceLimit:  DefaultSourceLimit,
		},
		Notify: NotifyConfig{
			Duration: DefaultNotifyDuration,
		},
		Output: OutputConfig{
			Color: "auto",
		},
	}
}
