package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"

	"github.com/spf13/cobra"

	"github.com/0xpinara/company-tracker/internal/api"
	"github.com/0xpinara/company-tracker/internal/config"
	"github.com/0xpinara/company-tracker/internal/dashboard"
	"github.com/0xpinara/company-tracker/internal/errors"
	"github.com/0xpinara/company-tracker/internal/ui"
)

// Command-specific flags
var (
	statsFlags        ServerFlags
	mentionsFlags     ServerFlags
	companiesFlags    ServerFlags
	monitorFlags      ServerFlags
	slackFlags        ServerFlags
	mentionsLimitFlag int
	statsTableFlag    bool
	jsonFlag          bool
)

// statsCmd prints the current statistics once
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print current mention statistics",
	Long: `Fetch the statistics snapshot once and print the three counters and
both charts.

Examples:
  tracker stats
  tracker stats --json
  tracker stats --table
  tracker stats --server http://tracker.internal:5000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := configWith(statsFlags)
		if err != nil {
			return err
		}
		return statsCommand(cmd.Context(), newClient(c), c, statsTableFlag, cmd.OutOrStdout())
	},
}

// mentionsCmd lists recent mentions
var mentionsCmd = &cobra.Command{
	Use:   "mentions",
	Short: "List recent mentions",
	Long: `List the most recent mentions across all portfolio companies, newest first.

Examples:
  tracker mentions
  tracker mentions --limit 20
  tracker mentions --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := configWith(mentionsFlags)
		if err != nil {
			return err
		}
		return mentionsCommand(cmd.Context(), newClient(c), mentionsLimitFlag, cmd.OutOrStdout())
	},
}

// companiesCmd lists the tracked companies
var companiesCmd = &cobra.Command{
	Use:   "companies",
	Short: "List tracked portfolio companies",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := configWith(companiesFlags)
		if err != nil {
			return err
		}
		return companiesCommand(cmd.Context(), newClient(c), cmd.OutOrStdout())
	},
}

// runMonitoringCmd triggers one monitoring run
var runMonitoringCmd = &cobra.Command{
	Use:   "run-monitoring",
	Short: "Run monitoring once and report the result",
	Long: `Ask the backend to scan all sources for new mentions and wait for it
to finish. Scans can take several minutes.

Exits with status 1 when the run fails or can't be started.

Examples:
  tracker run-monitoring
  tracker run-monitoring --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := configWith(monitorFlags)
		if err != nil {
			return err
		}
		return runMonitoringCommand(cmd.Context(), newClient(c), cmd.OutOrStdout())
	},
}

// slackTestCmd asks the backend to post a test Slack message
var slackTestCmd = &cobra.Command{
	Use:   "slack-test",
	Short: "Send a test Slack notification through the backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := configWith(slackFlags)
		if err != nil {
			return err
		}
		return slackTestCommand(cmd.Context(), newClient(c), cmd.OutOrStdout())
	},
}

// completionCmd generates shell completion scripts
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for tracker.

Examples:
  # Bash
  tracker completion bash > /etc/bash_completion.d/tracker

  # Zsh
  tracker completion zsh > "${fpath[1]}/_tracker"

  # Fish
  tracker completion fish > ~/.config/fish/completions/tracker.fish`,
	ValidArgs:   []string{"bash", "zsh", "fish", "powershell"},
	Args:        cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Annotations: map[string]string{skipConfig: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(os.Stdout)
		default:
			return errors.New(errors.ErrConfig,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}

func init() {
	AddServerFlags(statsCmd, &statsFlags)
	AddServerFlags(mentionsCmd, &mentionsFlags)
	AddServerFlags(companiesCmd, &companiesFlags)
	AddServerFlags(runMonitoringCmd, &monitorFlags)
	AddServerFlags(slackTestCmd, &slackFlags)

	statsCmd.Flags().BoolVar(&statsTableFlag, "table", false, "print counts as tables instead of bar charts")
	mentionsCmd.Flags().IntVar(&mentionsLimitFlag, "limit", 0, "show at most this many mentions (0 = all)")

	for _, c := range []*cobra.Command{statsCmd, mentionsCmd, companiesCmd, runMonitoringCmd} {
		c.Flags().BoolVar(&jsonFlag, "json", false, "output in JSON format")
		c.PreRun = func(cmd *cobra.Command, args []string) {
			machineMode = jsonFlag
		}
	}

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(mentionsCmd)
	rootCmd.AddCommand(companiesCmd)
	rootCmd.AddCommand(runMonitoringCmd)
	rootCmd.AddCommand(slackTestCmd)
	rootCmd.AddCommand(completionCmd)
}

// configWith returns the loaded config with the command's server override applied.
func configWith(flags ServerFlags) (*config.Config, error) {
	c := *currentConfig()
	if err := flags.Apply(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// statsCommand fetches one snapshot and prints it, as bar charts or, with
// table set, as count tables.
func statsCommand(ctx context.Context, client dashboard.StatsSource, c *config.Config, table bool, w io.Writer) error {
	snap, err := client.FetchStats(ctx)
	if err != nil {
		return err
	}

	if machineMode {
		return WriteJSONSuccess(w, snap)
	}

	p := ui.NewPrinter(w)
	if !table {
		printerDisplay(p, c).Apply(snap)
		return nil
	}

	p.Card("Total Mentions").SetText(strconv.Itoa(snap.TotalMentions))
	p.Card("Recent Mentions (24h)").SetText(strconv.Itoa(snap.RecentMentions))
	p.Card("Active Companies").SetText(strconv.Itoa(snap.ActiveCompanies()))

	labels, values := dashboard.TopCompanies(snap.CompanyMentions, c.Charts.CompanyLimit)
	fmt.Fprintln(w, ui.RenderCountTable("Company", labels, values))
	labels, values = dashboard.TopSources(snap.SourceMentions, c.Charts.SourceLimit)
	fmt.Fprintln(w, ui.RenderCountTable("Source", labels, values))
	return nil
}

// printerDisplay routes the dashboard display to labelled lines on p.
func printerDisplay(p *ui.Printer, c *config.Config) *dashboard.Display {
	chartOpts := chartOptions()
	return &dashboard.Display{
		Total:        p.Card("Total Mentions"),
		Recent:       p.Card("Recent Mentions (24h)"),
		Companies:    p.Card("Active Companies"),
		CompanyChart: p.Chart("Mentions by Company", chartOpts),
		SourceChart:  p.Chart("Mentions by Source", chartOpts),
		CompanyLimit: c.Charts.CompanyLimit,
		SourceLimit:  c.Charts.SourceLimit,
	}
}

// chartOptions sizes line-output bar charts to the terminal, capped at 30 cells.
func chartOptions() ui.BarChartOptions {
	const labelWidth = 20
	bar := ui.TerminalWidth(os.Stdout, 80) - labelWidth - 12
	if bar > 30 {
		bar = 30
	}
	if bar < 10 {
		bar = 10
	}
	return ui.BarChartOptions{LabelWidth: labelWidth, BarWidth: bar}
}

// mentionsCommand prints the mentions table.
func mentionsCommand(ctx context.Context, client *api.Client, limit int, w io.Writer) error {
	mentions, err := client.Mentions(ctx)
	if err != nil {
		return err
	}
	if limit > 0 && len(mentions) > limit {
		mentions = mentions[:limit]
	}

	if machineMode {
		return WriteJSONSuccess(w, mentions)
	}
	fmt.Fprintln(w, ui.RenderMentionsTable(mentions))
	return nil
}

// companiesCommand prints the companies table.
func companiesCommand(ctx context.Context, client *api.Client, w io.Writer) error {
	companies, err := client.Companies(ctx)
	if err != nil {
		return err
	}

	if machineMode {
		return WriteJSONSuccess(w, companies)
	}
	fmt.Fprintln(w, ui.RenderCompaniesTable(companies))
	return nil
}

// MonitoringReport is the --json output of run-monitoring.
type MonitoringReport struct {
	Outcome       string   `json:"outcome"`
	Notifications []Notice `json:"notifications"`
}

// Notice is one notification raised during a command.
type Notice struct {
	Kind    dashboard.Kind `json:"kind"`
	Message string         `json:"message"`
}

// noticeLog collects notifications instead of printing them.
type noticeLog struct {
	mu    sync.Mutex
	items []Notice
}

func (l *noticeLog) Notify(kind dashboard.Kind, message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append(l.items, Notice{Kind: kind, Message: message})
}

func (l *noticeLog) Notices() []Notice {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Notice, len(l.items))
	copy(out, l.items)
	return out
}

// runMonitoringCommand runs the monitoring invoker once with line output.
func runMonitoringCommand(ctx context.Context, trigger dashboard.MonitoringTrigger, w io.Writer) error {
	p := ui.NewPrinter(w)

	var notifier dashboard.Notifier = p.Notifier()
	collected := &noticeLog{}
	if machineMode {
		notifier = collected
	}

	var progress dashboard.Progress = nopProgress{}
	switch {
	case machineMode:
	case ui.IsTerminal(os.Stderr):
		progress = ui.NewSpinner(os.Stderr, "Running monitoring")
	default:
		progress = p.Progress("Running monitoring")
	}

	ctrl := dashboard.New(dashboard.Options{
		Trigger:  trigger,
		Progress: progress,
		Notifier: notifier,
		Logger:   newLogger("[monitoring]"),
	})
	defer ctrl.Close()

	outcome := ctrl.RunMonitoring(ctx)

	if machineMode {
		if !outcome.OK() {
			if err := WriteJSONError(w, ErrCodeMonitoringFailed, monitoringFailure(outcome, collected.Notices()),
				"Check the backend logs, then run it again."); err != nil {
				return err
			}
			return errSilentExit
		}
		if err := WriteJSONSuccess(w, MonitoringReport{
			Outcome:       outcome.String(),
			Notifications: collected.Notices(),
		}); err != nil {
			return err
		}
	}
	if !outcome.OK() {
		return errSilentExit
	}
	return nil
}

// monitoringFailure picks the message for a failed run: the last notification
// raised, or the outcome name when there was none.
func monitoringFailure(outcome dashboard.Outcome, notices []Notice) string {
	if len(notices) == 0 {
		return "Monitoring " + outcome.String()
	}
	return notices[len(notices)-1].Message
}

// slackTestCommand triggers the Slack test message and prints the result.
func slackTestCommand(ctx context.Context, client *api.Client, w io.Writer) error {
	n := ui.NewPrinter(w).Notifier()

	res, err := client.SlackTest(ctx)
	if err != nil {
		n.Notify(dashboard.KindDanger, "Error sending Slack test: "+errors.Describe(err))
		return errSilentExit
	}
	if !res.Success {
		n.Notify(dashboard.KindDanger, "Error: "+res.Message)
		return errSilentExit
	}

	msg := res.Message
	if msg == "" {
		msg = "Slack test message sent."
	}
	n.Notify(dashboard.KindSuccess, msg)
	return nil
}

type nopProgress struct{}

func (nopProgress) Show() {}
func (nopProgress) Hide() {}
