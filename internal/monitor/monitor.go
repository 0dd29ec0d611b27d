// Package monitor drives repeated capture+deliver cycles on an interval
// with a start/stop lifecycle.
package monitor

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shotwatch/shotwatch/internal/capture"
	"github.com/shotwatch/shotwatch/internal/config"
	"github.com/shotwatch/shotwatch/internal/model"
	"github.com/shotwatch/shotwatch/internal/webhook"
)

var (
	// ErrConfigIncomplete is returned by Start when the webhook URL or the
	// application name is unset.
	ErrConfigIncomplete = errors.New("webhook URL and application name must be configured first")

	// ErrAlreadyRunning is returned by Start while a worker is active.
	ErrAlreadyRunning = errors.New("monitoring is already running")

	// ErrNotRunning is returned by Stop when no worker is active.
	ErrNotRunning = errors.New("monitoring is not running")
)

const (
	// pollGranularity is how often the worker re-checks the running flag
	// while sleeping out the interval, so a stop request is honored within
	// about a second.
	pollGranularity = 1 * time.Second

	// stopTimeout bounds how long Stop waits for the worker to exit. The
	// worker is expected to observe the flag promptly; the timeout is a
	// safety bound, not a guarantee.
	stopTimeout = 2 * time.Second
)

// Session owns the monitor lifecycle: at most one background worker at a
// time, started and stopped explicitly. Config is re-read each cycle
// without locking; changes made while running are picked up by the next
// cycle, and a cycle may observe a half-updated config. Accepted: the
// fields are plain scalars and one stale cycle does not matter.
type Session struct {
	cfg      func() config.Config
	capturer *capture.Capturer
	pipeline *webhook.Pipeline
	report   func(model.CycleReport)

	running atomic.Bool
	mu      sync.Mutex // serializes Start/Stop transitions
	done    chan struct{}

	// overridable in tests
	cycle    func() model.CycleReport
	sleep    func(time.Duration)
	poll     time.Duration
	stopWait time.Duration
	now      func() time.Time
}

// New creates a stopped Session. cfg is called at every point a config
// value is needed; report receives every cycle outcome and may be nil.
func New(cfg func() config.Config, capturer *capture.Capturer, pipeline *webhook.Pipeline, report func(model.CycleReport)) *Session {
	s := &Session{
		cfg:      cfg,
		capturer: capturer,
		pipeline: pipeline,
		report:   report,
		sleep:    time.Sleep,
		poll:     pollGranularity,
		stopWait: stopTimeout,
		now:      time.Now,
	}
	s.cycle = s.RunOnce
	return s
}

// Running reports whether a worker is active.
func (s *Session) Running() bool { return s.running.Load() }

// RunOnce performs a single capture+deliver cycle and returns its report.
// Failures are reported in the steps, never raised.
func (s *Session) RunOnce() model.CycleReport {
	cfg := s.cfg()
	ts := s.now().Unix()
	if !cfg.Complete() {
		return model.CycleReport{OK: false, Steps: []string{ErrConfigIncomplete.Error()}, TS: ts}
	}

	res, _ := s.capturer.Capture(cfg.AppName)
	ok, steps := s.pipeline.Deliver(res, cfg)
	return model.CycleReport{
		OK:     ok,
		Method: res.Method,
		File:   res.Path,
		Steps:  steps,
		TS:     ts,
	}
}

// Start transitions Stopped -> Running and spawns the worker. It returns
// immediately; cycle outcomes flow through the report callback.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.cfg().Complete() {
		return ErrConfigIncomplete
	}
	if s.running.Load() {
		return ErrAlreadyRunning
	}

	s.running.Store(true)
	s.done = make(chan struct{})
	go s.loop(s.done)
	return nil
}

// loop is the worker body: one cycle per tick, then sleep out the interval
// in poll-sized slices so a stop request lands within one slice. Cycle
// failures never break the loop.
func (s *Session) loop(done chan struct{}) {
	defer close(done)
	for s.running.Load() {
		rep := s.cycle()
		if s.report != nil {
			s.report(rep)
		}

		interval := s.cfg().Interval
		for i := 0; i < interval; i++ {
			if !s.running.Load() {
				return
			}
			s.sleep(s.poll)
		}
	}
}

// Stop transitions Running -> Stopped and waits for the worker to exit,
// bounded by the stop timeout.
func (s *Session) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running.Load() {
		return ErrNotRunning
	}
	s.running.Store(false)

	select {
	case <-s.done:
	case <-time.After(s.stopWait):
	}
	return nil
}
