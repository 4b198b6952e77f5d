package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/0xpinara/company-tracker/internal/api"
	"github.com/0xpinara/company-tracker/internal/config"
	"github.com/0xpinara/company-tracker/internal/dashboard"
	"github.com/0xpinara/company-tracker/internal/errors"
	"github.com/0xpinara/company-tracker/internal/logger"
	"github.com/0xpinara/company-tracker/internal/metrics"
	"github.com/0xpinara/company-tracker/internal/tui"
	"github.com/0xpinara/company-tracker/internal/ui"
)

// DashboardOptions holds the dashboard command flags.
type DashboardOptions struct {
	ServerFlags
	Interval     string
	DiscardStale bool
	MetricsAddr  string
	Plain        bool
}

var dashboardOpts DashboardOptions

// dashboardCmd runs the live dashboard
var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash"},
	Short:   "Live mention dashboard",
	Long: `Open the live dashboard. Statistics refresh every 30 seconds by default.

Falls back to line output when stdout is not a terminal, or with --plain.

Keyboard shortcuts:
  m           Run monitoring
  r           Refresh now
  x           Dismiss the newest notification
  ?           Show help
  q / Ctrl+C  Quit

Examples:
  tracker dashboard
  tracker dash --interval 1m
  tracker dashboard --plain --metrics-addr :9090`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashboardCommand(cmd.Context(), dashboardOpts)
	},
}

func init() {
	AddServerFlags(dashboardCmd, &dashboardOpts.ServerFlags)
	dashboardCmd.Flags().StringVar(&dashboardOpts.Interval, "interval", "", "refresh interval (e.g. 30s, 1m)")
	dashboardCmd.Flags().BoolVar(&dashboardOpts.DiscardStale, "discard-stale", false, "ignore responses older than the last one shown")
	dashboardCmd.Flags().StringVar(&dashboardOpts.MetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9090)")
	dashboardCmd.Flags().BoolVar(&dashboardOpts.Plain, "plain", false, "line output instead of the full-screen dashboard")
	rootCmd.AddCommand(dashboardCmd)
}

// dashboardConfig applies the dashboard flags on top of the loaded config.
func dashboardConfig(opts DashboardOptions) (*config.Config, error) {
	c, err := configWith(opts.ServerFlags)
	if err != nil {
		return nil, err
	}

	interval, err := ParseInterval(opts.Interval)
	if err != nil {
		return nil, err
	}
	if interval > 0 {
		c.Refresh.Interval = interval
	}
	if opts.DiscardStale {
		c.Refresh.DiscardStale = true
	}
	if err := ValidateMetricsAddr(opts.MetricsAddr); err != nil {
		return nil, err
	}
	return c, nil
}

// dashboardCommand runs the controller until ctx is done or the user quits.
func dashboardCommand(ctx context.Context, opts DashboardOptions) error {
	c, err := dashboardConfig(opts)
	if err != nil {
		return err
	}
	client := newClient(c)

	plain := opts.Plain || !ui.IsTerminal(os.Stdout)

	var log logger.Logger
	if plain {
		log = newLogger("[dashboard]")
	} else {
		fileLog, closeLog := openLogFile(c, "[dashboard]")
		defer closeLog()
		log = fileLog
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var m *metrics.Metrics
	if opts.MetricsAddr != "" {
		m = metrics.New()
		go func() {
			if err := m.Serve(ctx, opts.MetricsAddr); err != nil {
				log.Error("Metrics server stopped: %v", err)
			}
		}()
		log.Info("Serving metrics on %s/metrics", opts.MetricsAddr)
	}

	if plain {
		return runPlainDashboard(ctx, client, c, m, log, os.Stdout)
	}
	return runTUIDashboard(ctx, client, c, m, log)
}

// controllerOptions maps the config onto controller options.
func controllerOptions(client *api.Client, c *config.Config, m *metrics.Metrics, log logger.Logger) dashboard.Options {
	return dashboard.Options{
		Stats:        client,
		Trigger:      client,
		Interval:     c.Refresh.Interval,
		ReloadDelay:  reloadDelay(c.Monitoring.ReloadDelay),
		DiscardStale: c.Refresh.DiscardStale,
		Logger:       log,
		Metrics:      m,
	}
}

// reloadDelay converts the config value, where 0 means "reload right away",
// to the controller's, where 0 means "use the default".
func reloadDelay(d time.Duration) time.Duration {
	if d == 0 {
		return -1
	}
	return d
}

// runTUIDashboard runs the full-screen dashboard.
func runTUIDashboard(ctx context.Context, client *api.Client, c *config.Config, m *metrics.Metrics, log logger.Logger) error {
	bridge := tui.NewBridge()
	presenter := dashboard.NewPresenter(dashboard.WithDuration(c.Notify.Duration))
	defer presenter.Clear()

	opts := controllerOptions(client, c, m, log)
	opts.Display = bridge.Display(c.Charts.CompanyLimit, c.Charts.SourceLimit)
	opts.Progress = bridge
	opts.Reloader = bridge
	opts.Notifier = presenter
	ctrl := dashboard.New(opts)
	defer ctrl.Close()

	model := tui.NewModel(ctx, ctrl, presenter, tui.Options{
		Server:  c.Server.URL,
		Version: formatVersion(version),
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	bridge.Attach(p)
	bridge.Watch(presenter)

	ctrl.Start()
	log.Info("Dashboard started against %s, refreshing every %s", c.Server.URL, ctrl.Interval())

	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return errors.WrapWithCode(err, errors.ErrDisplay,
			"Dashboard stopped unexpectedly",
			"Try --plain if your terminal doesn't support full-screen mode.")
	}
	return nil
}

// runPlainDashboard prints every refresh as labelled lines until ctx is done.
func runPlainDashboard(ctx context.Context, client *api.Client, c *config.Config, m *metrics.Metrics, log logger.Logger, w io.Writer) error {
	fmt.Fprint(w, ui.RenderHeader(ui.HeaderInfo{Version: formatVersion(version), Server: c.Server.URL}))

	p := ui.NewPrinter(w)
	opts := controllerOptions(client, c, m, log)
	opts.Display = printerDisplay(p, c)
	opts.Progress = p.Progress("Running monitoring")
	opts.Notifier = p.Notifier()

	var ctrl *dashboard.Controller
	opts.Reloader = dashboard.ReloadFunc(func() {
		go func() { _ = ctrl.Refresh(ctx) }()
	})
	ctrl = dashboard.New(opts)
	defer ctrl.Close()

	_ = ctrl.Refresh(ctx)
	ctrl.Start()

	<-ctx.Done()
	return nil
}
