// Package cli implements the tracker command-line interface.
//
// Commands are Cobra commands that load the config, build an api.Client and
// hand off to the dashboard controller or print a one-off result.
//
// # Command Structure
//
// The root command is "tracker". Run without a subcommand it opens the
// dashboard.
//
//	tracker dashboard       - Live dashboard (alias: dash)
//	tracker run-monitoring  - Trigger one monitoring run
//	tracker stats           - Print the current statistics
//	tracker mentions        - List recent mentions
//	tracker companies       - List tracked companies
//	tracker clean           - Remove false-positive mentions
//	tracker slack-test      - Send a test Slack message
//	tracker init            - Create .tracker.yaml
//
// # Output Modes
//
// The dashboard uses the full-screen TUI when stdout is a terminal and line
// output otherwise (or with --plain). While the TUI owns the terminal, logs
// go to the configured log file.
//
// stats, mentions, companies and run-monitoring accept --json and write a
// JSONEnvelope. Errors in that mode are written as an envelope too.
//
// # Flag Handling
//
// Global flags (--config, --verbose, --no-color) live on the root command.
// Commands that talk to the backend take --server, which overrides
// server.url for that invocation only.
package cli
