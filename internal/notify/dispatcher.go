package notify

import (
	"sync"
	"time"

	"zoneguard/internal/logger"
)

// Notification is one queued alert delivery.
type Notification struct {
	Class        string
	Confidence   float64
	Timestamp    time.Time
	SnapshotPath string
}

// Transport delivers a composed notification to its recipients.
type Transport interface {
	Send(n Notification) error
}

// Dispatcher delivers violation alerts asynchronously through a bounded
// worker pool. Alerts for a class are rate limited to one per window; the
// throttle only advances on successful delivery, so a failed send can be
// retried by the next qualifying violation.
type Dispatcher struct {
	transport Transport
	window    time.Duration
	queue     chan Notification
	logger    *logger.Logger
	wg        sync.WaitGroup

	mu       sync.Mutex
	lastSent map[string]time.Time

	now func() time.Time
}

func NewDispatcher(transport Transport, window time.Duration, workers, queueLen int, log *logger.Logger) *Dispatcher {
	d := &Dispatcher{
		transport: transport,
		window:    window,
		queue:     make(chan Notification, queueLen),
		lastSent:  make(map[string]time.Time),
		logger:    log,
		now:       time.Now,
	}

	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.worker(i)
	}

	return d
}

// Send queues an alert for delivery unless the class was already notified
// within the rate-limit window. When the queue is full the alert is dropped
// rather than blocking the frame loop.
func (d *Dispatcher) Send(class string, confidence float64, snapshotPath string) {
	now := d.now()

	d.mu.Lock()
	last, ok := d.lastSent[class]
	d.mu.Unlock()

	if ok && now.Sub(last) < d.window {
		d.logger.Info("⏰ Rate limited: skipping notification for %s", class)
		return
	}

	n := Notification{
		Class:        class,
		Confidence:   confidence,
		Timestamp:    now,
		SnapshotPath: snapshotPath,
	}

	select {
	case d.queue <- n:
	default:
		d.logger.Warning("⚠️  Notification queue full - dropping alert for %s", class)
	}
}

func (d *Dispatcher) worker(id int) {
	defer d.wg.Done()

	d.logger.Info("🔧 Notification worker %d started", id)

	for n := range d.queue {
		if err := d.transport.Send(n); err != nil {
			// Throttle untouched so the next violation retries immediately.
			d.logger.Error("Notification delivery failed for %s: %v", n.Class, err)
			continue
		}

		d.mu.Lock()
		if n.Timestamp.After(d.lastSent[n.Class]) {
			d.lastSent[n.Class] = n.Timestamp
		}
		d.mu.Unlock()

		d.logger.Info("✅ Notification sent for %s violation", n.Class)
	}
}

// Close stops accepting new alerts and waits for in-flight deliveries to
// finish, so an already-triggered alert is not lost on shutdown.
func (d *Dispatcher) Close() {
	close(d.queue)
	d.wg.Wait()
}
