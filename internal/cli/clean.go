package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/0xpinara/company-tracker/internal/api"
	"github.com/0xpinara/company-tracker/internal/errors"
	"github.com/0xpinara/company-tracker/internal/ui"
)

var (
	cleanFlags ServerFlags
	cleanYes   bool
)

// cleanCmd removes mentions the backend classifies as false positives
var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove false-positive mentions",
	Long: `Ask the backend to delete mentions that don't actually refer to a
portfolio company. Deleted mentions are gone for good.

Examples:
  tracker clean
  tracker clean --yes`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := configWith(cleanFlags)
		if err != nil {
			return err
		}
		return cleanCommand(cmd.Context(), newClient(c), CleanOptions{
			Yes:            cleanYes,
			NonInteractive: !ui.IsTerminal(os.Stdin),
		}, cmd.OutOrStdout())
	},
}

func init() {
	AddServerFlags(cleanCmd, &cleanFlags)
	cleanCmd.Flags().BoolVarP(&cleanYes, "yes", "y", false, "skip the confirmation prompt")
	rootCmd.AddCommand(cleanCmd)
}

// CleanOptions holds options for the clean command.
type CleanOptions struct {
	Yes            bool // Skip the confirmation prompt
	NonInteractive bool // No terminal to prompt on
}

// cleanCommand confirms, then calls the cleanup endpoint.
func cleanCommand(ctx context.Context, client *api.Client, opts CleanOptions, w io.Writer) error {
	if !opts.Yes {
		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				"Refusing to delete mentions without confirmation",
				"Re-run with --yes to skip the prompt.")
		}

		var confirm bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Remove false-positive mentions?").
					Description("This cannot be undone").
					Value(&confirm),
			),
		)
		if err := form.Run(); err != nil {
			return nil
		}
		if !confirm {
			fmt.Fprintln(w, "Cancelled.")
			return nil
		}
	}

	res, err := client.CleanFalsePositives(ctx)
	if err != nil {
		return err
	}
	if !res.Success {
		return errors.New(errors.ErrMonitor,
			"Cleanup failed: "+res.Message,
			"Check the backend logs for details.")
	}

	fmt.Fprintf(w, "%s Removed %d false positive%s\n",
		ui.SuccessStyle().Render(ui.SymbolSuccess), res.DeletedCount, pluralize(res.DeletedCount))
	return nil
}

func pluralize(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
