package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shotwatch/shotwatch/internal/config"
	"github.com/shotwatch/shotwatch/internal/output"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the persisted configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value and save it",
	Long: `Set one configuration value. Keys:

  webhook   webhook URL screenshots are posted to
  app       application name fragment to monitor (lowercase substring match)
  interval  seconds between captures (positive integer)
  delete    delete the local file after a successful send (true/false)
  message   message template; supports {app_name}, {timestamp}, {date},
            {time}, {day}, {month}, {year}; empty for an image-only post`,
	Args: cobra.MinimumNArgs(2),
	RunE: runConfigSet,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	svc := config.NewService(configPath(cmd))
	cfg, _, err := svc.Load()
	if err != nil {
		return err
	}
	return output.Print(cfg)
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	svc := config.NewService(configPath(cmd))
	cfg, _, err := svc.Load()
	if err != nil {
		return err
	}

	key := strings.ToLower(args[0])
	value := strings.Join(args[1:], " ")
	if err := applyConfigValue(&cfg, key, value); err != nil {
		return err
	}
	if err := svc.Save(cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", svc.Path())
	return nil
}

// applyConfigValue sets one field by key, validating the value.
func applyConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "webhook", "webhook_url":
		cfg.WebhookURL = value
	case "app", "app_name":
		cfg.AppName = strings.ToLower(strings.TrimSpace(value))
	case "interval":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("interval must be a positive integer, got %q", value)
		}
		cfg.Interval = n
	case "delete", "delete_after_send":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("delete must be true or false, got %q", value)
		}
		cfg.DeleteAfterSend = b
	case "message", "custom_message":
		cfg.CustomMessage = value
	default:
		return fmt.Errorf("unknown config key %q (use webhook, app, interval, delete, or message)", key)
	}
	return nil
}
