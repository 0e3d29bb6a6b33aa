package utils

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestLoggerLevels(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewLoggerTo(&out, &errOut, false)
	l.now = func() time.Time { return time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC) }

	l.Info("loaded %d rows", 10)
	l.Warn("retrying")
	l.Debug("hidden")
	l.Error("failed: %v", "boom")

	if !strings.Contains(out.String(), "[2024-03-05 09:00:00]") || !strings.Contains(out.String(), "loaded 10 rows") {
		t.Errorf("info line missing: %q", out.String())
	}
	if strings.Contains(out.String(), "hidden") {
		t.Errorf("debug should be suppressed when not verbose")
	}
	if !strings.Contains(errOut.String(), "failed: boom") {
		t.Errorf("error should go to errOut: %q", errOut.String())
	}
	if strings.Contains(out.String(), "failed") {
		t.Errorf("error should not go to out")
	}
}

func TestLoggerVerbose(t *testing.T) {
	var out bytes.Buffer
	l := NewLoggerTo(&out, &out, true)
	l.Debug("row %q", "x")
	if !strings.Contains(out.String(), `row "x"`) {
		t.Errorf("debug line missing: %q", out.String())
	}
}

func TestLoggerFormatsPercentInArgs(t *testing.T) {
	var out bytes.Buffer
	l := NewLoggerTo(&out, &out, false)
	l.Info("share %s", "10.0%")
	if !strings.Contains(out.String(), "share 10.0%") {
		t.Errorf("got %q", out.String())
	}
}
