package cmd

import (
	"github.com/shotwatch/shotwatch/internal/output"
	"github.com/shotwatch/shotwatch/internal/platform"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List open windows and running applications",
	Long:  "List open windows with their title, owning app, PID, and bounds, or running application names with --apps, to help pick a monitor target.",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().Bool("apps", false, "List running application names instead of windows")
}

func runList(cmd *cobra.Command, args []string) error {
	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}

	apps, _ := cmd.Flags().GetBool("apps")
	if apps {
		names, err := provider.Locator.ListApplications()
		if err != nil {
			return err
		}
		if names == nil {
			names = []string{}
		}
		return output.Print(names)
	}

	windows, err := provider.Locator.ListWindows()
	if err != nil {
		return err
	}
	return output.Print(windows)
}
