package dto

import (
	"time"

	"zoneguard/internal/model"
)

// LiveStatus is pushed to websocket viewers after every processed frame.
type LiveStatus struct {
	Timestamp      time.Time `json:"timestamp"`
	Detected       []string  `json:"detected"`
	ActiveViolator string    `json:"active_violator,omitempty"`
	AlarmActive    bool      `json:"alarm_active"`
	Recording      bool      `json:"recording"`
}

// SystemStatus is the pollable snapshot of the whole pipeline.
type SystemStatus struct {
	CameraActive    bool             `json:"camera_active"`
	AlarmActive     bool             `json:"alarm_active"`
	Recording       bool             `json:"recording"`
	RecordingFile   string           `json:"recording_file,omitempty"`
	RecordingTime   string           `json:"recording_time,omitempty"`
	LatestViolation *model.Violation `json:"latest_violation,omitempty"`
	UnloggedEvents  int64            `json:"unlogged_events"`
	SnapshotCount   int              `json:"snapshot_count"`
}
