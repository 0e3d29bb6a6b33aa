package browser

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestIsTimeout(t *testing.T) {
	te := &TimeoutError{URL: "https://example.com", Selector: "#tbody_0 tr td", Elapsed: 1500 * time.Millisecond}

	if !IsTimeout(te) {
		t.Error("direct TimeoutError should be detected")
	}
	if !IsTimeout(fmt.Errorf("ranking: %w", te)) {
		t.Error("wrapped TimeoutError should be detected")
	}
	if IsTimeout(errors.New("boom")) {
		t.Error("plain error is not a timeout")
	}
	if IsTimeout(nil) {
		t.Error("nil is not a timeout")
	}
}

func TestTimeoutErrorMessage(t *testing.T) {
	te := &TimeoutError{URL: "https://example.com", Selector: "#tbody_0 tr td", Elapsed: 1500 * time.Millisecond}
	msg := te.Error()
	for _, want := range []string{"1.5s", "https://example.com", "#tbody_0 tr td"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q should contain %q", msg, want)
		}
	}
}

func TestDisplayBinary(t *testing.T) {
	if got := displayBinary(""); !strings.Contains(got, "default") {
		t.Errorf("empty binary: got %q", got)
	}
	if got := displayBinary("/usr/bin/chromium"); got != "/usr/bin/chromium" {
		t.Errorf("got %q", got)
	}
}
