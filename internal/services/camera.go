package services

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"gocv.io/x/gocv"

	"zoneguard/internal/alarm"
	"zoneguard/internal/dto"
	"zoneguard/internal/logger"
	"zoneguard/internal/record"
	"zoneguard/internal/services/websocket"
	"zoneguard/internal/video"
)

// CameraService owns the capture device and the frame loop. The loop is
// single-threaded: all frame processing happens sequentially inside it, with
// alarm and notification workers running independently.
type CameraService struct {
	processor *FrameProcessor
	recorder  *record.Session
	alarm     *alarm.Controller
	hub       *websocket.HubService
	logger    *logger.Logger

	cameraIndex   int
	frameInterval time.Duration

	mu      sync.Mutex
	capture *gocv.VideoCapture
	running bool
	stop    chan struct{}
	wg      sync.WaitGroup
}

func NewCameraService(
	processor *FrameProcessor,
	recorder *record.Session,
	alarmController *alarm.Controller,
	hub *websocket.HubService,
	cameraIndex int,
	frameInterval time.Duration,
	log *logger.Logger,
) *CameraService {
	return &CameraService{
		processor:     processor,
		recorder:      recorder,
		alarm:         alarmController,
		hub:           hub,
		cameraIndex:   cameraIndex,
		frameInterval: frameInterval,
		logger:        log,
	}
}

// Start opens the capture device and launches the frame loop.
func (c *CameraService) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return fmt.Errorf("camera already running")
	}

	capture, err := gocv.VideoCaptureDevice(c.cameraIndex)
	if err != nil {
		return fmt.Errorf("failed to open camera %d: %w", c.cameraIndex, err)
	}
	capture.Set(gocv.VideoCaptureFrameWidth, 640)
	capture.Set(gocv.VideoCaptureFrameHeight, 480)

	c.capture = capture
	c.running = true
	c.stop = make(chan struct{})

	c.wg.Add(1)
	go c.loop()

	c.logger.Info("📹 Camera %d started", c.cameraIndex)
	return nil
}

// Stop shuts the pipeline down in order: the frame loop exits first, then
// the alarm worker is signalled, any active recording is flushed, and dwell
// state is cleared. In-flight notifications are left to run to completion.
func (c *CameraService) Stop() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	c.running = false
	close(c.stop)
	c.mu.Unlock()

	c.wg.Wait()

	c.alarm.Stop()

	if c.recorder.Active() {
		if _, err := c.recorder.Stop(); err != nil {
			c.logger.Error("Failed to stop recording: %v", err)
		}
	}

	c.processor.ResetDwell()

	c.mu.Lock()
	if c.capture != nil {
		c.capture.Close()
		c.capture = nil
	}
	c.mu.Unlock()

	c.logger.Info("📹 Camera %d stopped", c.cameraIndex)
}

// Running reports whether the frame loop is active.
func (c *CameraService) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

func (c *CameraService) loop() {
	defer c.wg.Done()

	mat := gocv.NewMat()
	defer mat.Close()

	ticker := time.NewTicker(c.frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
		}

		if ok := c.capture.Read(&mat); !ok || mat.Empty() {
			c.logger.Warning("Failed to read frame from camera %d", c.cameraIndex)
			continue
		}

		frame := &video.Frame{
			Mat:    mat,
			Width:  mat.Cols(),
			Height: mat.Rows(),
			Time:   time.Now(),
		}

		result := c.processor.Process(frame)
		if result.Skipped {
			continue
		}

		c.recorder.Write(frame)
		c.broadcast(frame.Time, result)
	}
}

func (c *CameraService) broadcast(ts time.Time, result Result) {
	status := dto.LiveStatus{
		Timestamp:      ts,
		Detected:       result.Detected,
		ActiveViolator: result.ActiveViolator,
		AlarmActive:    c.alarm.Active(),
		Recording:      c.recorder.Active(),
	}

	message, err := json.Marshal(status)
	if err != nil {
		c.logger.Error("Failed to marshal live status: %v", err)
		return
	}

	c.hub.Broadcast(message)
}
