package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/0xpinara/company-tracker/internal/errors"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the default config file name.
	ConfigFileName = ".tracker.yaml"
	// GlobalConfigDir is the directory for global config.
	GlobalConfigDir = ".config/company-tracker"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
	// DefaultLogFile is the log file name inside GlobalConfigDir.
	DefaultLogFile = "tracker.log"
	// EnvPrefix is the prefix for environment overrides (TRACKER_SERVER_URL, ...).
	EnvPrefix = "TRACKER"
)

// Load reads config from the specified path. An empty path means "no file":
// defaults plus environment overrides.
func Load(path string) (*Config, error) {
	loadDotEnv()

	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if os.IsNotExist(err) {
				return nil, errors.WrapWithCode(err, errors.ErrConfig,
					"Config file not found",
					"Run 'tracker init' to create a config file, or specify one with --config")
			}
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to read config file",
				"Check the file exists and is valid YAML")
		}
	}

	return parseConfig(v, path)
}

// LoadOrDefault finds the config file (see Find) and loads it, or returns
// defaults plus environment overrides when there is none.
func LoadOrDefault(explicit string) (*Config, string, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, "", err
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. .tracker.yaml in current directory
// 3. .tracker.yaml in parent directories (stops at git root or home)
// 4. ~/.config/company-tracker/config.yaml (global defaults)
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	localConfig := filepath.Join(cwd, ConfigFileName)
	if _, err := os.Stat(localConfig); err == nil {
		return localConfig, nil
	}

	home, _ := os.UserHomeDir()
	dir := cwd
	for {
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		if home != "" && parent == home {
			// Don't go above home directory
			break
		}
		dir = parent

		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		if isGitRoot(dir) {
			break
		}
	}

	if home != "" {
		globalConfig := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(globalConfig); err == nil {
			return globalConfig, nil
		}
	}

	return "", nil
}

// GlobalConfigPath returns ~/.config/company-tracker/config.yaml.
func GlobalConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine home directory",
			"Set HOME or pass an explicit --config path")
	}
	return filepath.Join(home, GlobalConfigDir, GlobalConfigFile), nil
}

// LogFilePath resolves the configured log file, falling back to the default
// location next to the global config.
func (c *Config) LogFilePath() string {
	if c.Log.File != "" {
		return ExpandTilde(c.Log.File)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), DefaultLogFile)
	}
	return filepath.Join(home, GlobalConfigDir, DefaultLogFile)
}

// newViper creates a viper instance with defaults and TRACKER_* env bindings.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// setDefaults registers every key so AutomaticEnv can override keys that
// aren't present in the file.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("version", d.Version)
	v.SetDefault("server.url", d.Server.URL)
	v.SetDefault("server.timeout", d.Server.Timeout)
	v.SetDefault("refresh.interval", d.Refresh.Interval)
	v.SetDefault("refresh.discard_stale", d.Refresh.DiscardStale)
	v.SetDefault("monitoring.timeout", d.Monitoring.Timeout)
	v.SetDefault("monitoring.reload_delay", d.Monitoring.ReloadDelay)
	v.SetDefault("charts.company_limit", d.Charts.CompanyLimit)
	v.SetDefault("charts.source_limit", d.Charts.SourceLimit)
	v.SetDefault("notify.duration", d.Notify.Duration)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("output.color", d.Output.Color)
}

// parseConfig converts viper config to our Config struct with defaults merged in.
func parseConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		where := "your environment"
		if path != "" {
			where = path
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+where)
	}

	cfg.Server.URL = strings.TrimRight(strings.TrimSpace(cfg.Server.URL), "/")
	return cfg, nil
}

// loadDotEnv loads a .env file from the working directory if one exists.
// Variables already set in the environment win.
func loadDotEnv() {
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load(".env")
	}
}

// ExpandTilde replaces ~ or ~/path with the user's home directory.
// Does not support ~username syntax - just ~ for the current user.
func ExpandTilde(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}
	return path
}

// isGitRoot checks if a directory is a git repository root.
func isGitRoot(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ".git"))
	if err != nil {
		return false
	}
	return info.IsDir()
}
