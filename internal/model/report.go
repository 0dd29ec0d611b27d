package model

// CycleReport is the outcome of one capture+deliver cycle.
// Steps carries the discrete per-stage messages (capture method, delivery
// result, cleanup result) in the order they happened.
type CycleReport struct {
	OK     bool     `yaml:"ok"               json:"ok"`
	Method string   `yaml:"method,omitempty" json:"method,omitempty"`
	File   string   `yaml:"file,omitempty"   json:"file,omitempty"`
	Steps  []string `yaml:"steps"            json:"steps"`
	TS     int64    `yaml:"ts"               json:"ts"`
}
