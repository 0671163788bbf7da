package alarm

import (
	"errors"
	"sync"
	"testing"
	"time"

	"zoneguard/internal/logger"
)

type fakePlayer struct {
	mu      sync.Mutex
	loaded  string
	plays   int
	stops   int
	loadErr error
	playErr error
}

func (p *fakePlayer) Load(path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loaded = path
	return p.loadErr
}

func (p *fakePlayer) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.plays++
	return p.playErr
}

func (p *fakePlayer) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stops++
}

func (p *fakePlayer) counts() (int, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.plays, p.stops
}

func TestControllerStartAndStop(t *testing.T) {
	player := &fakePlayer{}
	controller := NewController(player, "alert.wav", time.Millisecond, logger.NewLogger(t.TempDir()))

	controller.SetActive(true)
	if !controller.Active() {
		t.Fatal("Active() = false after SetActive(true)")
	}

	controller.Stop()
	if controller.Active() {
		t.Fatal("Active() = true after Stop")
	}
	if controller.Playing() {
		t.Fatal("Playing() = true after Stop")
	}

	plays, stops := player.counts()
	if plays != 1 {
		t.Errorf("player.Play called %d times, want 1", plays)
	}
	if stops != 1 {
		t.Errorf("player.Stop called %d times, want 1", stops)
	}
}

func TestControllerClearingFlagStopsWorker(t *testing.T) {
	player := &fakePlayer{}
	controller := NewController(player, "alert.wav", time.Millisecond, logger.NewLogger(t.TempDir()))

	controller.SetActive(true)
	controller.SetActive(false)

	// The worker observes the cleared flag on its next poll.
	deadline := time.Now().Add(time.Second)
	for controller.Playing() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if controller.Playing() {
		t.Fatal("worker still running after flag cleared")
	}
}

func TestControllerSingleWorker(t *testing.T) {
	player := &fakePlayer{}
	controller := NewController(player, "alert.wav", 5*time.Millisecond, logger.NewLogger(t.TempDir()))

	// Repeated raises while the worker runs must not spawn another one.
	for i := 0; i < 10; i++ {
		controller.SetActive(true)
	}
	controller.Stop()

	plays, _ := player.counts()
	if plays != 1 {
		t.Errorf("player.Play called %d times, want 1", plays)
	}
}

func TestControllerRespawnsWhenRaiseRacesWorkerExit(t *testing.T) {
	player := &fakePlayer{}
	controller := NewController(player, "alert.wav", time.Millisecond, logger.NewLogger(t.TempDir()))

	// Hammer raise/clear cycles so some raises land inside the exiting
	// worker's shutdown window, then leave the flag raised.
	for i := 0; i < 100; i++ {
		controller.SetActive(true)
		controller.SetActive(false)
		time.Sleep(time.Millisecond)
	}
	controller.SetActive(true)

	deadline := time.Now().Add(time.Second)
	for !controller.Playing() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if !controller.Playing() {
		t.Fatal("raised flag left without a running worker")
	}
	controller.Stop()
}

func TestControllerAudioFailureIsNonFatal(t *testing.T) {
	player := &fakePlayer{loadErr: errors.New("no audio device")}
	controller := NewController(player, "alert.wav", time.Millisecond, logger.NewLogger(t.TempDir()))

	controller.SetActive(true)
	if !controller.Active() {
		t.Fatal("logical alarm state must be tracked even without audio")
	}

	controller.Stop()
	_, stops := player.counts()
	if stops != 0 {
		t.Errorf("player.Stop called %d times after failed load, want 0", stops)
	}
}
