// Package browsertest provides an in-memory browser.Session for tests.
package browsertest

import (
	"context"
	"errors"
	"sync"
	"time"

	"boxoffice-report/scraper/browser"
)

// Response is what the fake serves for one Load call.
type Response struct {
	HTML    string
	LoadErr error
	HTMLErr error
}

// Session serves queued responses per URL. Each Load consumes the next
// response for that URL; the last one repeats once the queue is exhausted.
type Session struct {
	mu        sync.Mutex
	responses map[string][]Response
	current   Response
	loads     []string
	closed    int
}

// New creates an empty fake session.
func New() *Session {
	return &Session{responses: make(map[string][]Response)}
}

// Serve queues responses for url.
func (s *Session) Serve(url string, responses ...Response) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses[url] = append(s.responses[url], responses...)
	return s
}

// Load implements browser.Session.
func (s *Session) Load(ctx context.Context, url string, ready browser.ReadyCondition, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loads = append(s.loads, url)
	queue := s.responses[url]
	if len(queue) == 0 {
		s.current = Response{}
		return &browser.TimeoutError{URL: url, Selector: ready.Selector, Elapsed: timeout}
	}
	resp := queue[0]
	if len(queue) > 1 {
		s.responses[url] = queue[1:]
	}
	s.current = resp
	return resp.LoadErr
}

// HTML implements browser.Session.
func (s *Session) HTML(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current.HTMLErr != nil {
		return "", s.current.HTMLErr
	}
	if s.current.LoadErr != nil {
		return "", errors.New("browsertest: no page loaded")
	}
	return s.current.HTML, nil
}

// Close implements browser.Session.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed++
	return nil
}

// Loads returns the URLs passed to Load, in call order.
func (s *Session) Loads() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.loads...)
}

// Closed reports how many times Close was called.
func (s *Session) Closed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
