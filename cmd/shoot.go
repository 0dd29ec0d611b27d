package cmd

import (
	"fmt"

	"github.com/shotwatch/shotwatch/internal/output"
	"github.com/spf13/cobra"
)

var shootCmd = &cobra.Command{
	Use:   "shoot",
	Short: "Capture one screenshot and deliver it to the webhook",
	Long:  "Run a single capture+deliver cycle for the configured application, printing each step of the cycle.",
	RunE:  runShoot,
}

func init() {
	rootCmd.AddCommand(shootCmd)
	shootCmd.Flags().String("app", "", "Override the configured application name")
	shootCmd.Flags().String("webhook", "", "Override the configured webhook URL")
	shootCmd.Flags().Bool("keep", false, "Keep the local file even if delete-after-send is configured")
}

func runShoot(cmd *cobra.Command, args []string) error {
	st, err := newAppState(configPath(cmd))
	if err != nil {
		return err
	}

	cfg := st.snapshot()
	if app, _ := cmd.Flags().GetString("app"); app != "" {
		cfg.AppName = app
	}
	if hook, _ := cmd.Flags().GetString("webhook"); hook != "" {
		cfg.WebhookURL = hook
	}
	if keep, _ := cmd.Flags().GetBool("keep"); keep {
		cfg.DeleteAfterSend = false
	}
	st.setConfig(cfg)

	rep := st.session.RunOnce()
	if err := output.Print(rep); err != nil {
		return err
	}
	if !rep.OK {
		return fmt.Errorf("%s", lastStep(rep))
	}
	return nil
}
