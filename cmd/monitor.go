package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Monitor the configured application until interrupted",
	Long: `Start the monitor loop: capture and deliver a screenshot of the
configured application every interval. Runs until Ctrl+C.`,
	RunE: runMonitor,
}

func init() {
	rootCmd.AddCommand(monitorCmd)
	monitorCmd.Flags().String("app", "", "Override the configured application name")
	monitorCmd.Flags().Int("interval", 0, "Override the configured interval in seconds")
}

func runMonitor(cmd *cobra.Command, args []string) error {
	st, err := newAppState(configPath(cmd))
	if err != nil {
		return err
	}

	cfg := st.snapshot()
	if app, _ := cmd.Flags().GetString("app"); app != "" {
		cfg.AppName = app
	}
	if interval, _ := cmd.Flags().GetInt("interval"); interval > 0 {
		cfg.Interval = interval
	}
	st.setConfig(cfg)

	if err := st.session.Start(); err != nil {
		return err
	}
	st.logger.Printf("monitoring %q every %d seconds; Ctrl+C to stop", cfg.AppName, cfg.Interval)

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	if err := st.session.Stop(); err != nil {
		return err
	}
	st.logger.Print("stopped monitoring")
	return nil
}
