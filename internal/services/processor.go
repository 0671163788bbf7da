package services

import (
	"sync"
	"sync/atomic"
	"time"

	"zoneguard/internal/alarm"
	"zoneguard/internal/config"
	"zoneguard/internal/detection"
	"zoneguard/internal/dwell"
	"zoneguard/internal/logger"
	"zoneguard/internal/model"
	"zoneguard/internal/video"
	"zoneguard/internal/zone"
)

// Notifier dispatches a violation alert asynchronously.
type Notifier interface {
	Send(class string, confidence float64, snapshotPath string)
}

// ViolationWriter appends violations to the durable event log.
type ViolationWriter interface {
	Insert(v *model.Violation) (int64, error)
}

// SnapshotSaver persists the annotated frame and returns its path.
type SnapshotSaver interface {
	Save(frame *video.Frame) (string, error)
}

// Result summarizes one processed frame.
type Result struct {
	Detected       []string
	ActiveViolator string
	Escalations    int
	Skipped        bool
}

// FrameProcessor runs the per-frame detection, zone test, dwell evaluation
// and escalation policy. It owns all pipeline state that used to be shared
// between stages: the dwell tracker, the alarm flag and the latest violation.
type FrameProcessor struct {
	detector   detection.Detector
	dwell      *dwell.Tracker
	alarm      *alarm.Controller
	notifier   Notifier
	violations ViolationWriter
	snapshots  SnapshotSaver
	annotator  video.Annotator
	logger     *logger.Logger

	confidenceThreshold float64
	detectSet           map[string]bool
	alertSet            map[string]bool
	zoneMargin          float64

	// failedAppends counts violations that could not be written to the event
	// log, for later reconciliation.
	failedAppends atomic.Int64

	latestMu sync.RWMutex
	latest   *model.Violation

	now func() time.Time
}

func NewFrameProcessor(
	detector detection.Detector,
	tracker *dwell.Tracker,
	alarmController *alarm.Controller,
	notifier Notifier,
	violations ViolationWriter,
	snapshots SnapshotSaver,
	annotator video.Annotator,
	cfg *config.Config,
	log *logger.Logger,
) *FrameProcessor {
	return &FrameProcessor{
		detector:            detector,
		dwell:               tracker,
		alarm:               alarmController,
		notifier:            notifier,
		violations:          violations,
		snapshots:           snapshots,
		annotator:           annotator,
		logger:              log,
		confidenceThreshold: cfg.ConfidenceThreshold,
		detectSet:           toSet(cfg.DetectClasses),
		alertSet:            toSet(cfg.AlertClasses),
		zoneMargin:          cfg.ZoneMargin,
		now:                 time.Now,
	}
}

// Process runs one frame through the pipeline. A detector failure skips the
// frame without mutating any state. The alarm flag tracks presence in the
// zone this frame, independent of whether an escalation fired.
func (p *FrameProcessor) Process(frame *video.Frame) Result {
	detections, err := p.detector.Detect(frame)
	if err != nil {
		p.logger.Error("Detection failed - skipping frame: %v", err)
		return Result{Skipped: true}
	}

	z := zone.Compute(frame.Width, frame.Height)
	now := p.now()

	var detected []string
	var violator string
	var violatorConfidence float64
	anyInside := false
	escalations := 0

	for _, det := range detections {
		if det.Confidence < p.confidenceThreshold || !p.detectSet[det.Label] {
			continue
		}

		detected = append(detected, det.Label)
		p.annotator.DrawDetection(frame, det.Label, det.Confidence, det.Box())

		if !p.alertSet[det.Label] || !z.Contains(det.Box(), p.zoneMargin) {
			continue
		}

		anyInside = true
		p.annotator.DrawViolationBanner(frame, det.Label)

		if !p.dwell.Evaluate(det.Label, now) {
			continue
		}

		escalations++
		p.escalate(frame, det, now)

		// Highest confidence wins when several classes escalate together.
		if violator == "" || det.Confidence > violatorConfidence {
			violator = det.Label
			violatorConfidence = det.Confidence
		}
	}

	p.alarm.SetActive(anyInside)
	p.annotator.DrawZone(frame, z)

	return Result{
		Detected:       detected,
		ActiveViolator: violator,
		Escalations:    escalations,
	}
}

// escalate turns sustained dwell into a logged violation with side effects.
// The event append and snapshot strictly precede the notification dispatch,
// since the snapshot path must point at a real file before handoff.
func (p *FrameProcessor) escalate(frame *video.Frame, det detection.Detection, now time.Time) {
	p.logger.Warning("🚨 Violation detected: %s with %.2f%% confidence", det.Label, det.Confidence*100)

	v := &model.Violation{
		Timestamp:  now,
		Class:      det.Label,
		Confidence: det.Confidence,
	}

	snapshotPath, err := p.snapshots.Save(frame)
	if err != nil {
		p.logger.Error("Failed to save snapshot: %v", err)
	} else {
		v.Snapshot = snapshotPath
	}

	if _, err := p.violations.Insert(v); err != nil {
		// Recoverable: remaining side effects still run, but the miss is
		// counted so the log can be reconciled later.
		unlogged := p.failedAppends.Add(1)
		p.logger.Error("Failed to log violation (%d unlogged): %v", unlogged, err)
	}

	p.setLatest(v)
	p.notifier.Send(det.Label, det.Confidence, snapshotPath)
}

func (p *FrameProcessor) setLatest(v *model.Violation) {
	p.latestMu.Lock()
	p.latest = v
	p.latestMu.Unlock()
}

// Latest returns the most recent violation seen by this processor, or nil.
func (p *FrameProcessor) Latest() *model.Violation {
	p.latestMu.RLock()
	defer p.latestMu.RUnlock()
	return p.latest
}

// FailedAppends returns the number of violations lost to event log failures.
func (p *FrameProcessor) FailedAppends() int64 {
	return p.failedAppends.Load()
}

// ResetDwell clears all dwell state, used when the camera stops.
func (p *FrameProcessor) ResetDwell() {
	p.dwell.Reset()
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
