package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/0xpinara/company-tracker/internal/config"
	"github.com/0xpinara/company-tracker/internal/dashboard"
	"github.com/0xpinara/company-tracker/internal/errors"
	"github.com/0xpinara/company-tracker/internal/ui"
)

var (
	initServerFlag string
	initGlobal     bool
	initForce      bool
)

// initCmd creates a new .tracker.yaml configuration
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .tracker.yaml configuration",
	Long: `Create a tracker config file pointing at your backend.

Writes .tracker.yaml in the current directory, or the global config with
--global. Asks for the server URL unless --server is given.

Examples:
  tracker init
  tracker init --server http://tracker.internal:5000
  tracker init --global --force`,
	Annotations: map[string]string{skipConfig: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return Init(cmd.Context(), InitOptions{
			ServerURL:      initServerFlag,
			Global:         initGlobal,
			Overwrite:      initForce,
			NonInteractive: initServerFlag != "" || !ui.IsTerminal(os.Stdin),
			Probe:          true,
		}, cmd.OutOrStdout())
	},
}

func init() {
	initCmd.Flags().StringVar(&initServerFlag, "server", "", "backend base URL")
	initCmd.Flags().BoolVar(&initGlobal, "global", false, "write ~/.config/company-tracker/config.yaml")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing config")
	rootCmd.AddCommand(initCmd)
}

// InitOptions holds options for the init command.
type InitOptions struct {
	ServerURL      string // Pre-specified backend URL
	Global         bool   // Write the global config instead of ./.tracker.yaml
	Overwrite      bool   // Overwrite existing config without asking
	NonInteractive bool   // Skip prompts, use flags and defaults
	// Path overrides the destination, mainly for tests.
	Path string
	// Probe fetches stats from the new server before saving.
	Probe bool
}

// Init writes a new config file.
func Init(ctx context.Context, opts InitOptions, w io.Writer) error {
	path, err := initPath(opts)
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil && !opts.Overwrite {
		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", path),
				"Use --force to overwrite")
		}

		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", path)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Fprintln(w, "Cancelled.")
			return nil
		}
	}

	cfg := config.DefaultConfig()
	cfg.Server.URL = strings.TrimRight(strings.TrimSpace(opts.ServerURL), "/")
	if cfg.Server.URL == "" {
		cfg.Server.URL = config.DefaultServerURL
	}

	if !opts.NonInteractive {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Backend URL").
					Description("Where the monitoring backend is listening").
					Placeholder(config.DefaultServerURL).
					Value(&cfg.Server.URL).
					Validate(validateServerInput),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Check terminal compatibility or pass --server")
		}
		cfg.Server.URL = strings.TrimRight(strings.TrimSpace(cfg.Server.URL), "/")
	}

	if err := config.Validate(cfg); err != nil {
		return err
	}

	if opts.Probe {
		probeServer(ctx, newClient(cfg), cfg.Server.URL, w)
	}

	// Existing files were confirmed above.
	if err := config.Write(path, cfg, true); err != nil {
		return err
	}

	fmt.Fprintf(w, "%s Wrote %s\n", ui.SuccessStyle().Render(ui.SymbolSuccess), path)
	return nil
}

// initPath resolves where init writes.
func initPath(opts InitOptions) (string, error) {
	if opts.Path != "" {
		return opts.Path, nil
	}
	if opts.Global {
		return config.GlobalConfigPath()
	}
	return filepath.Join(".", config.ConfigFileName), nil
}

// validateServerInput checks a URL typed into the init form.
func validateServerInput(s string) error {
	c := config.DefaultConfig()
	c.Server.URL = strings.TrimRight(strings.TrimSpace(s), "/")
	if c.Server.URL == "" {
		return fmt.Errorf("server URL is required")
	}
	if err := config.Validate(c); err != nil {
		return fmt.Errorf("%s", errors.Describe(err))
	}
	return nil
}

// probeServer fetches stats once so a typo in the URL shows up now rather
// than as an empty dashboard. The config is saved either way.
func probeServer(ctx context.Context, src dashboard.StatsSource, url string, w io.Writer) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	n := ui.NewPrinter(w).Notifier()
	if _, err := src.FetchStats(ctx); err != nil {
		n.Notify(dashboard.KindWarning, fmt.Sprintf("Couldn't reach %s: %s", url, errors.Describe(err)))
		return
	}
	n.Notify(dashboard.KindSuccess, "Connected to "+url)
}
