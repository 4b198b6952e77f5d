package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/0xpinara/company-tracker/internal/api"
	"github.com/0xpinara/company-tracker/internal/config"
	"github.com/0xpinara/company-tracker/internal/logger"
	"github.com/0xpinara/company-tracker/internal/ui"
)

// Global flags
var (
	cfgFile string
	verbose bool
	noColor bool
)

// Loaded by PersistentPreRunE for every command that needs it.
var (
	cfg     *config.Config
	cfgPath string
)

// skipConfig marks commands that run without loading the config.
const skipConfig = "skip-config"

// errSilentExit ends the process with status 1 after the command already
// reported the failure itself.
var errSilentExit = stderrors.New("silent exit")

// rootCmd is the base command. Without a subcommand it opens the dashboard.
var rootCmd = &cobra.Command{
	Use:   "tracker",
	Short: "Portfolio company mention dashboard",
	Long: `tracker watches the portfolio monitoring backend from the terminal.

It refreshes mention statistics every 30 seconds, charts the busiest
companies and sources, and triggers monitoring runs on demand.

Examples:
  tracker                      # open the dashboard
  tracker dashboard --plain    # line output, for logs and pipes
  tracker run-monitoring       # one-shot monitoring run
  tracker stats --json         # current numbers as JSON`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if noColor {
			ui.DisableColors()
		}
		if cmd.Annotations[skipConfig] == "true" {
			return nil
		}
		return initConfig()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashboardCommand(cmd.Context(), dashboardOpts)
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if !stderrors.Is(err, errSilentExit) {
			if machineMode {
				_ = WriteJSONFromError(os.Stdout, err)
			} else {
				fmt.Fprintln(os.Stderr, ui.ErrorStyle().Render(ui.SymbolFail)+" "+err.Error())
			}
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .tracker.yaml, then ~/.config/company-tracker/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// initConfig loads the config file (or defaults) and applies output.color.
func initConfig() error {
	loaded, path, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return err
	}
	if err := config.Validate(loaded); err != nil {
		return err
	}
	cfg, cfgPath = loaded, path

	if !noColor {
		ui.ApplyColorMode(cfg.Output.Color)
	}
	return nil
}

// currentConfig returns the loaded config, or defaults when the command ran
// without PersistentPreRunE (tests).
func currentConfig() *config.Config {
	if cfg == nil {
		return config.DefaultConfig()
	}
	return cfg
}

// newClient builds the backend client from the config.
func newClient(c *config.Config) *api.Client {
	return api.NewClient(api.Options{
		BaseURL:        c.Server.URL,
		Timeout:        c.Server.Timeout,
		MonitorTimeout: c.Monitoring.Timeout,
	})
}

// newLogger returns a stderr logger, with debug output when --verbose is set.
func newLogger(prefix string) logger.Logger {
	return newLoggerTo(os.Stderr, prefix)
}

func newLoggerTo(w io.Writer, prefix string) logger.Logger {
	if verbose {
		return logger.NewVerbose(w, prefix)
	}
	return logger.New(w, prefix)
}

// openLogFile opens the configured log file for the TUI, which owns the
// terminal. Falls back to a no-op logger when the file can't be opened.
func openLogFile(c *config.Config, prefix string) (logger.Logger, func()) {
	f, err := logger.OpenFile(c.LogFilePath())
	if err != nil {
		ui.PrintWarning(fmt.Sprintf("Couldn't open log file %s: %v", c.LogFilePath(), err))
		return logger.Noop(), func() {}
	}
	return newLoggerTo(f, prefix), func() { _ = f.Close() }
}
