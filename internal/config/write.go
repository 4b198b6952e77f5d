package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/0xpinara/company-tracker/internal/errors"
	"gopkg.in/yaml.v3"
)

// fileConfig mirrors Config for writing. yaml.v3 would encode time.Duration
// as nanoseconds, so durations are rendered as strings here.
type fileConfig struct {
	Version int `yaml:"version"`
	Server  struct {
		URL     string `yaml:"url"`
		Timeout string `yaml:"timeout"`
	} `yaml:"server"`
	Refresh struct {
		Interval     string `yaml:"interval"`
		DiscardStale bool   `yaml:"discard_stale"`
	} `yaml:"refresh"`
	Monitoring struct {
		Timeout     string `yaml:"timeout"`
		ReloadDelay string `yaml:"reload_delay"`
	} `yaml:"monitoring"`
	Charts struct {
		CompanyLimit int `yaml:"company_limit"`
		SourceLimit  int `yaml:"source_limit"`
	} `yaml:"charts"`
	Notify struct {
		Duration string `yaml:"duration"`
	} `yaml:"notify"`
	Log struct {
		File string `yaml:"file,omitempty"`
	} `yaml:"log,omitempty"`
	Output struct {
		Color string `yaml:"color"`
	} `yaml:"output"`
}

// Marshal renders cfg as YAML with human-readable durations.
func Marshal(cfg *Config) ([]byte, error) {
	var f fileConfig
	f.Version = cfg.Version
	f.Server.URL = cfg.Server.URL
	f.Server.Timeout = cfg.Server.Timeout.String()
	f.Refresh.Interval = cfg.Refresh.Interval.String()
	f.Refresh.DiscardStale = cfg.Refresh.DiscardStale
	f.Monitoring.Timeout = cfg.Monitoring.Timeout.String()
	f.Monitoring.ReloadDelay = cfg.Monitoring.ReloadDelay.String()
	f.Charts.CompanyLimit = cfg.Charts.CompanyLimit
	f.Charts.SourceLimit = cfg.Charts.SourceLimit
	f.Notify.Duration = cfg.Notify.Duration.String()
	f.Log.File = cfg.Log.File
	f.Output.Color = cfg.Output.Color

	out, err := yaml.Marshal(&f)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return out, nil
}

// Write saves cfg to path, creating parent directories. It refuses to
// overwrite an existing file unless force is set.
func Write(path string, cfg *Config, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.New(errors.ErrConfig,
				"Config already exists at "+path,
				"Use --force to overwrite it.")
		}
	}

	data, err := Marshal(cfg)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Couldn't build config file", "")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't create config directory",
			"Check permissions on "+filepath.Dir(path))
	}

	header := []byte("# company-tracker configuration\n")
	if err := os.WriteFile(path, append(header, data...), 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't write config file",
			"Check permissions on "+path)
	}
	return nil
}
