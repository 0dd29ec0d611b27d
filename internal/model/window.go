package model

// Window describes one top-level application window for listing and reports.
type Window struct {
	App       string `yaml:"app,omitempty"       json:"app,omitempty"`
	PID       int    `yaml:"pid,omitempty"       json:"pid,omitempty"`
	Title     string `yaml:"title"               json:"title"`
	ID        int    `yaml:"id,omitempty"        json:"id,omitempty"`
	Bounds    [4]int `yaml:"bounds"              json:"bounds"`
	Minimized bool   `yaml:"minimized,omitempty" json:"minimized,omitempty"`
}
