package cmd

import (
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/shotwatch/shotwatch/internal/capture"
	"github.com/shotwatch/shotwatch/internal/config"
	"github.com/shotwatch/shotwatch/internal/model"
	"github.com/shotwatch/shotwatch/internal/monitor"
	"github.com/shotwatch/shotwatch/internal/platform"
	"github.com/shotwatch/shotwatch/internal/webhook"
)

// appState bundles the config service, the current config, and the monitor
// session shared by the front ends. Config mutations from the foreground
// (menu, MCP configure) go through setConfig; the session reads snapshots.
type appState struct {
	svc      *config.Service
	provider *platform.Provider
	session  *monitor.Session
	logger   *log.Logger

	mu  sync.RWMutex
	cfg config.Config
}

// newAppState loads the config and wires locator, capturer, pipeline, and
// session together.
func newAppState(cfgPath string) (*appState, error) {
	svc := config.NewService(cfgPath)
	cfg, _, err := svc.Load()
	if err != nil {
		return nil, err
	}

	provider, err := platform.NewProvider()
	if err != nil {
		return nil, err
	}

	st := &appState{
		svc:      svc,
		provider: provider,
		cfg:      cfg,
		logger:   log.New(os.Stdout, "", log.Ltime),
	}
	st.session = monitor.New(
		st.snapshot,
		capture.New(provider.Locator),
		webhook.NewPipeline(),
		st.reportCycle,
	)
	return st, nil
}

// snapshot returns the current config by value.
func (st *appState) snapshot() config.Config {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.cfg
}

// setConfig replaces the current config. The running worker picks it up on
// its next cycle.
func (st *appState) setConfig(cfg config.Config) {
	st.mu.Lock()
	st.cfg = cfg
	st.mu.Unlock()
}

// save persists the current config.
func (st *appState) save() error {
	return st.svc.Save(st.snapshot())
}

// reportCycle prints every step of a cycle report as a timestamped line.
func (st *appState) reportCycle(rep model.CycleReport) {
	for _, step := range rep.Steps {
		st.logger.Print(step)
	}
	if !rep.OK {
		st.logger.Print("cycle failed; monitoring continues")
	}
}

// lastStep returns the final step message of a report, for error returns.
func lastStep(rep model.CycleReport) string {
	if len(rep.Steps) == 0 {
		return "no steps reported"
	}
	return rep.Steps[len(rep.Steps)-1]
}

// describeConfig renders the config for display, masking nothing but
// flagging unset required fields.
func describeConfig(cfg config.Config) []string {
	set := func(v, unset string) string {
		if v == "" {
			return unset
		}
		return v
	}
	return []string{
		fmt.Sprintf("webhook URL: %s", set(cfg.WebhookURL, "(not set)")),
		fmt.Sprintf("application: %s", set(cfg.AppName, "(not set)")),
		fmt.Sprintf("interval: %ds", cfg.Interval),
		fmt.Sprintf("delete after send: %t", cfg.DeleteAfterSend),
		fmt.Sprintf("message: %s", set(cfg.CustomMessage, "(image only)")),
	}
}
