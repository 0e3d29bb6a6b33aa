package browser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	"boxoffice-report/utils"
)

// ReadyCondition is satisfied once an element matching Selector exists in the
// rendered document, e.g. "#tbody_0 tr td" for "at least one data cell".
type ReadyCondition struct {
	Selector string
}

// Session is one exclusively owned browser page. Collectors share it and
// never open or close it themselves.
type Session interface {
	// Load navigates to url and blocks until ready holds or timeout elapses.
	// A missed deadline is reported as *TimeoutError.
	Load(ctx context.Context, url string, ready ReadyCondition, timeout time.Duration) error
	// HTML returns the current rendered document.
	HTML(ctx context.Context) (string, error)
	Close() error
}

// TimeoutError reports a ready condition that never held within its deadline.
type TimeoutError struct {
	URL      string
	Selector string
	Elapsed  time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("page load timeout after %v: %s never matched %q", e.Elapsed.Round(time.Millisecond), e.URL, e.Selector)
}

// IsTimeout reports whether err is, or wraps, a *TimeoutError.
func IsTimeout(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te)
}

// Options controls how Chrome is launched.
type Options struct {
	ChromeBin   string
	Headless    bool
	UserAgent   string
	SettleDelay time.Duration
}

// ChromeSession is a Session backed by a single chromedp tab.
type ChromeSession struct {
	ctx         context.Context
	cancelTab   context.CancelFunc
	cancelAlloc context.CancelFunc
	settle      time.Duration
	logger      *utils.Logger
	closeOnce   sync.Once
}

// NewChromeSession launches Chrome and opens the page every load reuses.
// The browser is started here so later per-load deadlines only bound their own
// call and never take the browser down with them.
func NewChromeSession(parent context.Context, opts Options, logger *utils.Logger) (*ChromeSession, error) {
	chromeBin := opts.ChromeBin
	if chromeBin == "" {
		chromeBin = findChromeBinary()
	}
	logger.Info("[browser] Using browser binary: %s", displayBinary(chromeBin))

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.WindowSize(1920, 1080),
	)
	if opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(opts.UserAgent))
	}
	if chromeBin != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(parent, allocOpts...)

	// Suppress chromedp log noise
	tabCtx, cancelTab := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))

	if err := chromedp.Run(tabCtx); err != nil {
		cancelTab()
		cancelAlloc()
		return nil, fmt.Errorf("browser: start chrome: %w", err)
	}

	return &ChromeSession{
		ctx:         tabCtx,
		cancelTab:   cancelTab,
		cancelAlloc: cancelAlloc,
		settle:      opts.SettleDelay,
		logger:      logger,
	}, nil
}

// Load implements Session. After the ready condition holds it waits the
// settle delay, because the table fills in over several render passes.
func (s *ChromeSession) Load(ctx context.Context, url string, ready ReadyCondition, timeout time.Duration) error {
	start := time.Now()

	runCtx, cancel := s.bind(ctx, timeout)
	defer cancel()

	err := chromedp.Run(runCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady(ready.Selector, chromedp.ByQuery),
	)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return &TimeoutError{URL: url, Selector: ready.Selector, Elapsed: time.Since(start)}
		}
		return fmt.Errorf("browser: load %s: %w", url, err)
	}

	s.logger.Debug("[browser] %s ready after %v, settling %v", url, time.Since(start).Round(time.Millisecond), s.settle)
	return utils.Sleep(ctx, s.settle)
}

// HTML implements Session.
func (s *ChromeSession) HTML(ctx context.Context) (string, error) {
	runCtx, cancel := s.bind(ctx, 0)
	defer cancel()

	var html string
	if err := chromedp.Run(runCtx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("browser: read document: %w", err)
	}
	return html, nil
}

// Close releases the tab and the browser process. Safe to call more than once.
func (s *ChromeSession) Close() error {
	s.closeOnce.Do(func() {
		s.cancelTab()
		s.cancelAlloc()
	})
	return nil
}

// bind derives a context from the tab context that also ends when ctx does,
// optionally bounded by timeout.
func (s *ChromeSession) bind(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	runCtx, cancel := context.WithCancel(s.ctx)
	stop := context.AfterFunc(ctx, cancel)

	cancelAll := func() {
		stop()
		cancel()
	}
	if timeout <= 0 {
		return runCtx, cancelAll
	}

	timed, cancelTimeout := context.WithTimeout(runCtx, timeout)
	return timed, func() {
		cancelTimeout()
		cancelAll()
	}
}

// findChromeBinary locates a Chrome/Chromium binary.
func findChromeBinary() string {
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

func displayBinary(bin string) string {
	if bin == "" {
		return "(chromedp default lookup)"
	}
	return bin
}
