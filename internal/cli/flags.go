package cli

import (
	"fmt"
	"net"
	"time"

	"github.com/spf13/cobra"

	"github.com/0xpinara/company-tracker/internal/config"
	"github.com/0xpinara/company-tracker/internal/errors"
)

// ServerFlags holds the backend override flags shared by every command that
// talks to the server.
type ServerFlags struct {
	Server string
}

// AddServerFlags registers --server on a command.
func AddServerFlags(cmd *cobra.Command, flags *ServerFlags) {
	cmd.Flags().StringVar(&flags.Server, "server", "", "backend base URL (overrides server.url)")
}

// Apply copies non-empty flag values onto c and revalidates it.
func (f ServerFlags) Apply(c *config.Config) error {
	if f.Server == "" {
		return nil
	}
	c.Server.URL = f.Server
	return config.Validate(c)
}

// ParseInterval parses a refresh interval flag. Returns zero if the flag is
// empty, meaning "use the config value".
func ParseInterval(flag string) (time.Duration, error) {
	if flag == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(flag)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("'%s' doesn't look like a valid interval", flag),
			"Try something like 30s, 1m, or 5m.")
	}
	if d < config.MinRefreshInterval {
		return 0, errors.New(errors.ErrConfig,
			"Interval too short",
			fmt.Sprintf("Minimum interval is %s to avoid overwhelming the backend.", config.MinRefreshInterval))
	}
	return d, nil
}

// ValidateMetricsAddr checks a --metrics-addr value is host:port.
func ValidateMetricsAddr(addr string) error {
	if addr == "" {
		return nil
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("'%s' isn't a valid listen address", addr),
			"Use host:port, for example :9090 or 127.0.0.1:9090.")
	}
	return nil
}
