package cmd

import (
	"strings"
	"testing"

	"github.com/shotwatch/shotwatch/internal/config"
	"github.com/shotwatch/shotwatch/internal/model"
)

func TestStringParam(t *testing.T) {
	params := map[string]interface{}{"app": "notepad", "n": 7}
	if got := stringParam(params, "app", "x"); got != "notepad" {
		t.Errorf("got %q", got)
	}
	if got := stringParam(params, "missing", "fallback"); got != "fallback" {
		t.Errorf("got %q", got)
	}
	if got := stringParam(params, "n", ""); got != "7" {
		t.Errorf("non-string coercion: got %q", got)
	}
}

func TestIntParam(t *testing.T) {
	// JSON decoding hands numbers over as float64.
	params := map[string]interface{}{"a": float64(30), "b": 5, "c": int64(9)}
	if got := intParam(params, "a", 0); got != 30 {
		t.Errorf("float64: got %d", got)
	}
	if got := intParam(params, "b", 0); got != 5 {
		t.Errorf("int: got %d", got)
	}
	if got := intParam(params, "c", 0); got != 9 {
		t.Errorf("int64: got %d", got)
	}
	if got := intParam(params, "missing", 42); got != 42 {
		t.Errorf("default: got %d", got)
	}
}

func TestBoolParam(t *testing.T) {
	params := map[string]interface{}{"on": true, "off": false, "junk": "yes"}
	if !boolParam(params, "on", false) {
		t.Error("on should be true")
	}
	if boolParam(params, "off", true) {
		t.Error("off should be false")
	}
	if !boolParam(params, "junk", true) {
		t.Error("non-bool should fall back to the default")
	}
	if boolParam(params, "missing", false) {
		t.Error("missing should fall back to the default")
	}
}

func TestLastStep(t *testing.T) {
	rep := model.CycleReport{Steps: []string{"first", "second", "last"}}
	if got := lastStep(rep); got != "last" {
		t.Errorf("got %q", got)
	}
	if got := lastStep(model.CycleReport{}); got != "no steps reported" {
		t.Errorf("empty report: got %q", got)
	}
}

func TestDescribeConfig(t *testing.T) {
	lines := describeConfig(config.Config{
		WebhookURL: "https://hooks.example.com/x",
		Interval:   60,
	})
	joined := strings.Join(lines, "\n")
	if !strings.Contains(joined, "https://hooks.example.com/x") {
		t.Error("webhook URL should be shown")
	}
	if !strings.Contains(joined, "(not set)") {
		t.Error("unset application should be flagged")
	}
	if !strings.Contains(joined, "interval: 60s") {
		t.Errorf("interval missing from:\n%s", joined)
	}
	if !strings.Contains(joined, "(image only)") {
		t.Error("empty message should read as image only")
	}
}
