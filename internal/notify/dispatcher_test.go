package notify

import (
	"errors"
	"sync"
	"testing"
	"time"

	"zoneguard/internal/logger"
)

type fakeTransport struct {
	mu        sync.Mutex
	sent      []Notification
	err       error
	delivered chan struct{}
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{delivered: make(chan struct{}, 16)}
}

func (t *fakeTransport) Send(n Notification) error {
	t.mu.Lock()
	t.sent = append(t.sent, n)
	err := t.err
	t.mu.Unlock()
	t.delivered <- struct{}{}
	return err
}

func (t *fakeTransport) sentCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.sent)
}

func (t *fakeTransport) waitDelivery(tb testing.TB) {
	tb.Helper()
	select {
	case <-t.delivered:
	case <-time.After(time.Second):
		tb.Fatal("timed out waiting for delivery")
	}
}

func TestDispatcherRateLimitsPerClass(t *testing.T) {
	transport := newFakeTransport()
	d := NewDispatcher(transport, 60*time.Second, 1, 16, logger.NewLogger(t.TempDir()))
	defer d.Close()

	start := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	clock := start
	d.now = func() time.Time { return clock }

	d.Send("person", 0.9, "")
	transport.waitDelivery(t)

	// Inside the window: silently dropped, no delivery attempt.
	clock = start.Add(30 * time.Second)
	d.Send("person", 0.8, "")

	// Past the window: delivered again.
	clock = start.Add(61 * time.Second)
	d.Send("person", 0.7, "")
	transport.waitDelivery(t)

	if got := transport.sentCount(); got != 2 {
		t.Errorf("transport received %d notifications, want 2", got)
	}
}

func TestDispatcherThrottleIsPerClass(t *testing.T) {
	transport := newFakeTransport()
	d := NewDispatcher(transport, 60*time.Second, 1, 16, logger.NewLogger(t.TempDir()))
	defer d.Close()

	start := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return start }

	d.Send("person", 0.9, "")
	transport.waitDelivery(t)
	d.Send("dog", 0.8, "")
	transport.waitDelivery(t)

	if got := transport.sentCount(); got != 2 {
		t.Errorf("transport received %d notifications, want 2", got)
	}
}

func TestDispatcherFailedDeliveryDoesNotAdvanceThrottle(t *testing.T) {
	transport := newFakeTransport()
	transport.err = errors.New("smtp unreachable")
	d := NewDispatcher(transport, 60*time.Second, 1, 16, logger.NewLogger(t.TempDir()))
	defer d.Close()

	start := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	clock := start
	d.now = func() time.Time { return clock }

	d.Send("person", 0.9, "")
	transport.waitDelivery(t)

	// Transport recovers; the very next violation retries without waiting
	// out the window.
	transport.mu.Lock()
	transport.err = nil
	transport.mu.Unlock()

	clock = start.Add(time.Second)
	d.Send("person", 0.9, "")
	transport.waitDelivery(t)

	if got := transport.sentCount(); got != 2 {
		t.Errorf("transport received %d notifications, want 2", got)
	}
}

func TestDispatcherDropsWhenQueueFull(t *testing.T) {
	transport := newFakeTransport()
	// No workers, so nothing drains the queue.
	d := NewDispatcher(transport, 60*time.Second, 0, 1, logger.NewLogger(t.TempDir()))

	d.Send("person", 0.9, "")
	d.Send("dog", 0.8, "") // queue full, dropped

	if got := len(d.queue); got != 1 {
		t.Errorf("queue holds %d notifications, want 1", got)
	}
	d.Close()
}
