package config

import (
	"fmt"
	"net/url"

	"github.com/0xpinara/company-tracker/internal/errors"
)

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but tracker only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade tracker or lower the version field.")
	}

	if err := validateServerURL(cfg.Server.URL); err != nil {
		return err
	}

	if cfg.Server.Timeout <= 0 {
		return errors.New(errors.ErrConfig,
			"server.timeout must be positive",
			"Try something like 10s.")
	}

	if cfg.Refresh.Interval < MinRefreshInterval {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("refresh.interval %s is too short", cfg.Refresh.Interval),
			fmt.Sprintf("Minimum interval is %s to avoid overwhelming the backend.", MinRefreshInterval))
	}

	if cfg.Monitoring.Timeout <= 0 {
		return errors.New(errors.ErrConfig,
			"monitoring.timeout must be positive",
			"Monitoring scans are slow; something like 10m works.")
	}

	if cfg.Monitoring.ReloadDelay < 0 {
		return errors.New(errors.ErrConfig,
			"monitoring.reload_delay can't be negative",
			"Use 0 to reload right away, or a duration like 2s.")
	}

	if cfg.Notify.Duration <= 0 {
		return errors.New(errors.ErrConfig,
			"notify.duration must be positive",
			"Try something like 5s.")
	}

	if cfg.Charts.CompanyLimit < 0 || cfg.Charts.SourceLimit < 0 {
		return errors.New(errors.ErrConfig,
			"Chart limits can't be negative",
			"Use 0 for the default (10 companies, 8 sources).")
	}

	switch cfg.Output.Color {
	case "", "auto", "always", "never":
	default:
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown output.color %q", cfg.Output.Color),
			"Valid values: auto, always, never.")
	}

	return nil
}

func validateServerURL(raw string) error {
	if raw == "" {
		return errors.New(errors.ErrConfig,
			"server.url is empty",
			"Set it to the dashboard backend, e.g. "+DefaultServerURL)
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("server.url %q isn't an http(s) URL", raw),
			"Use a full URL like "+DefaultServerURL)
	}
	return nil
}
