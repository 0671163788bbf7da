package services

import (
	"zoneguard/internal/config"
	"zoneguard/internal/dto"
	"zoneguard/internal/logger"
	"zoneguard/internal/record"
	"zoneguard/internal/repository"
	"zoneguard/internal/services/websocket"
	"zoneguard/internal/storage"
)

// Manager is the facade the HTTP layer talks to. It groups the camera
// pipeline, recording session and stores behind one object.
type Manager struct {
	camera     *CameraService
	processor  *FrameProcessor
	recorder   *record.Session
	violations repository.ViolationRepository
	snapshots  *storage.SnapshotStore
	hub        *websocket.HubService
	config     *config.Config
	logger     *logger.Logger
}

func NewManager(
	camera *CameraService,
	processor *FrameProcessor,
	recorder *record.Session,
	violations repository.ViolationRepository,
	snapshots *storage.SnapshotStore,
	hub *websocket.HubService,
	cfg *config.Config,
	log *logger.Logger,
) *Manager {
	return &Manager{
		camera:     camera,
		processor:  processor,
		recorder:   recorder,
		violations: violations,
		snapshots:  snapshots,
		hub:        hub,
		config:     cfg,
		logger:     log,
	}
}

// StartCamera launches the frame loop.
func (m *Manager) StartCamera() error {
	return m.camera.Start()
}

// StopCamera shuts the pipeline down in order.
func (m *Manager) StopCamera() {
	m.camera.Stop()
}

// StartRecording begins a recording with the named quality preset. An empty
// quality or fps falls back to the configured defaults.
func (m *Manager) StartRecording(quality string, fps float64) (string, error) {
	if quality == "" {
		quality = m.config.RecordingQuality
	}
	if fps <= 0 {
		fps = m.config.RecordingFPS
	}

	return m.recorder.Start(record.PresetFor(quality), fps)
}

// StopRecording flushes and releases the active recording.
func (m *Manager) StopRecording() (string, error) {
	duration, err := m.recorder.Stop()
	if err != nil {
		return "", err
	}
	return record.FormatDuration(duration), nil
}

// Recordings lists saved recording files, newest first.
func (m *Manager) Recordings() ([]record.Info, error) {
	return record.List(m.config.RecordingDirectory)
}

// DeleteRecording removes a saved recording by name.
func (m *Manager) DeleteRecording(name string) error {
	return record.Delete(m.config.RecordingDirectory, name)
}

// Status assembles the pollable pipeline snapshot.
func (m *Manager) Status() dto.SystemStatus {
	status := dto.SystemStatus{
		CameraActive:    m.camera.Running(),
		AlarmActive:     m.camera.alarm.Active(),
		LatestViolation: m.processor.Latest(),
		UnloggedEvents:  m.processor.FailedAppends(),
		SnapshotCount:   m.snapshots.Count(),
	}

	if status.LatestViolation == nil {
		// Nothing seen this run; fall back to the durable log.
		if latest, err := m.violations.GetLatest(); err == nil {
			status.LatestViolation = latest
		}
	}

	if rec := m.recorder.Status(); rec.Recording {
		status.Recording = true
		status.RecordingFile = rec.Filename
		status.RecordingTime = record.FormatDuration(rec.Duration)
	}

	return status
}

// Violations exposes the event log for the alert listing handlers.
func (m *Manager) Violations() repository.ViolationRepository {
	return m.violations
}

// Hub returns the websocket hub for viewer registration.
func (m *Manager) Hub() *websocket.HubService {
	return m.hub
}
