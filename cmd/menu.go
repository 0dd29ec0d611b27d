package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/shotwatch/shotwatch/internal/webhook"
	"github.com/spf13/cobra"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Interactive console menu",
	Long:  "An interactive prompt with every shotwatch operation: configure the target, list windows and applications, take single screenshots, and start or stop the monitor loop.",
	RunE:  runMenu,
}

func init() {
	rootCmd.AddCommand(menuCmd)
}

func menuCompleter() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem("help"),
		readline.PcItem("show"),
		readline.PcItem("windows"),
		readline.PcItem("apps"),
		readline.PcItem("set",
			readline.PcItem("webhook"),
			readline.PcItem("app"),
			readline.PcItem("interval"),
			readline.PcItem("delete"),
			readline.PcItem("message"),
		),
		readline.PcItem("preview"),
		readline.PcItem("shoot"),
		readline.PcItem("start"),
		readline.PcItem("stop"),
		readline.PcItem("status"),
		readline.PcItem("save"),
		readline.PcItem("exit"),
	)
}

func runMenu(cmd *cobra.Command, args []string) error {
	st, err := newAppState(configPath(cmd))
	if err != nil {
		return err
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "[shotwatch] > ",
		HistoryFile:     filepath.Join(os.TempDir(), "shotwatch_history"),
		AutoComplete:    menuCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	fmt.Println("shotwatch - application screenshot monitor")
	fmt.Println("Type 'help' for available commands")
	fmt.Println()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		parts := strings.Fields(strings.TrimSpace(line))
		if len(parts) == 0 {
			continue
		}
		if parts[0] == "exit" || parts[0] == "quit" {
			break
		}
		if err := handleMenuCommand(st, parts[0], parts[1:]); err != nil {
			fmt.Printf("error: %v\n", err)
		}
	}

	// Leaving the menu with the worker still up would orphan it.
	if st.session.Running() {
		st.session.Stop()
		fmt.Println("stopped monitoring")
	}
	return nil
}

func handleMenuCommand(st *appState, cmd string, args []string) error {
	switch cmd {
	case "help", "h", "?":
		printMenuHelp()
	case "show":
		printConfigTable(st)
	case "windows", "w":
		return printWindowsTable(st)
	case "apps", "a":
		return printApps(st)
	case "set":
		if len(args) < 2 {
			return fmt.Errorf("usage: set <webhook|app|interval|delete|message> <value>")
		}
		cfg := st.snapshot()
		if err := applyConfigValue(&cfg, args[0], strings.Join(args[1:], " ")); err != nil {
			return err
		}
		st.setConfig(cfg)
		fmt.Println("ok (use 'save' to persist)")
	case "preview":
		cfg := st.snapshot()
		if strings.TrimSpace(cfg.CustomMessage) == "" {
			fmt.Println("(image-only post, no message)")
		} else {
			fmt.Println(webhook.Render(cfg.CustomMessage, cfg.AppName, time.Now()))
		}
	case "shoot":
		rep := st.session.RunOnce()
		for _, step := range rep.Steps {
			fmt.Println(step)
		}
	case "start":
		if err := st.session.Start(); err != nil {
			return err
		}
		cfg := st.snapshot()
		fmt.Printf("started monitoring %q every %d seconds\n", cfg.AppName, cfg.Interval)
	case "stop":
		if err := st.session.Stop(); err != nil {
			return err
		}
		fmt.Println("stopped monitoring")
	case "status":
		if st.session.Running() {
			fmt.Println("monitoring active")
		} else {
			fmt.Println("monitoring stopped")
		}
	case "save":
		if err := st.save(); err != nil {
			return err
		}
		fmt.Printf("saved %s\n", st.svc.Path())
	default:
		return fmt.Errorf("unknown command %q (try 'help')", cmd)
	}
	return nil
}

func printMenuHelp() {
	fmt.Println(`Commands:
  show                      current configuration
  windows                   list open windows
  apps                      list running applications
  set webhook <url>         set the webhook URL
  set app <name>            set the application name fragment to monitor
  set interval <seconds>    set the capture interval
  set delete <true|false>   delete local files after a successful send
  set message <template>    message template ({app_name}, {timestamp}, ...)
  preview                   render the message template now
  shoot                     capture and deliver one screenshot
  start / stop / status     control the monitor loop
  save                      persist the configuration
  exit                      leave the menu`)
}

func printConfigTable(st *appState) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Setting", "Value"})
	cfg := st.snapshot()
	rows := [][2]string{
		{"webhook URL", cfg.WebhookURL},
		{"application", cfg.AppName},
		{"interval", fmt.Sprintf("%ds", cfg.Interval)},
		{"delete after send", fmt.Sprintf("%t", cfg.DeleteAfterSend)},
		{"message", cfg.CustomMessage},
	}
	for _, r := range rows {
		v := r[1]
		if v == "" {
			v = "(not set)"
		}
		t.AppendRow(table.Row{r[0], v})
	}
	t.Render()
}

func printWindowsTable(st *appState) error {
	windows, err := st.provider.Locator.ListWindows()
	if err != nil {
		return err
	}
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Title", "App", "PID", "Bounds", "Minimized"})
	for _, w := range windows {
		t.AppendRow(table.Row{
			w.Title, w.App, w.PID,
			fmt.Sprintf("%d,%d %dx%d", w.Bounds[0], w.Bounds[1], w.Bounds[2], w.Bounds[3]),
			w.Minimized,
		})
	}
	t.Render()
	return nil
}

func printApps(st *appState) error {
	names, err := st.provider.Locator.ListApplications()
	if err != nil {
		return err
	}
	for _, n := range names {
		fmt.Println(n)
	}
	return nil
}
