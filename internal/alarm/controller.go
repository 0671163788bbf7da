package alarm

import (
	"sync"
	"sync/atomic"
	"time"

	"zoneguard/internal/logger"
)

// Player loops an audio resource until stopped. Load and Play failures are
// treated as non-fatal by the controller.
type Player interface {
	Load(path string) error
	Play() error
	Stop()
}

// Controller owns the audible alarm lifecycle. The frame loop writes the
// shared active flag once per frame; a single worker goroutine reads it and
// keeps the alarm sound looping while it stays set.
type Controller struct {
	active  atomic.Bool // written by the frame loop, read by the worker
	playing atomic.Bool // guards against spawning a second worker

	player       Player
	soundPath    string
	pollInterval time.Duration
	logger       *logger.Logger
	wg           sync.WaitGroup
}

func NewController(player Player, soundPath string, pollInterval time.Duration, log *logger.Logger) *Controller {
	return &Controller{
		player:       player,
		soundPath:    soundPath,
		pollInterval: pollInterval,
		logger:       log,
	}
}

// SetActive updates the shared flag. Raising it spawns the alarm worker if
// one is not already playing; clearing it lets the worker observe the change
// on its next poll and exit.
func (c *Controller) SetActive(active bool) {
	c.active.Store(active)
	if active {
		c.startWorker()
	}
}

// Active reports the logical alarm state. It is tracked correctly even when
// audio playback is unavailable.
func (c *Controller) Active() bool {
	return c.active.Load()
}

// Playing reports whether the alarm worker is running.
func (c *Controller) Playing() bool {
	return c.playing.Load()
}

// Stop clears the flag and waits for the worker to exit.
func (c *Controller) Stop() {
	c.active.Store(false)
	c.wg.Wait()
}

func (c *Controller) startWorker() {
	if !c.playing.CompareAndSwap(false, true) {
		return
	}

	c.wg.Add(1)
	go c.run()
}

func (c *Controller) run() {
	defer c.wg.Done()

	audioReady := true
	if err := c.player.Load(c.soundPath); err != nil {
		c.logger.Warning("Alarm audio unavailable: %v", err)
		audioReady = false
	} else if err := c.player.Play(); err != nil {
		c.logger.Warning("Alarm playback failed: %v", err)
		audioReady = false
	}

	if audioReady {
		c.logger.Info("🔊 Alarm playing")
	}

	for c.active.Load() {
		time.Sleep(c.pollInterval)
	}

	if audioReady {
		c.player.Stop()
	}

	// A raise can land between the loop observing a cleared flag and the
	// store below; re-check so the flag is never left set without a worker.
	c.playing.Store(false)
	if c.active.Load() {
		c.startWorker()
	}
}
