package record

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gocv.io/x/gocv"

	"zoneguard/internal/logger"
	"zoneguard/internal/video"
)

// Session owns at most one active video writer at a time. Start, Write and
// Stop are serialized behind a single mutex so the encoder handle never
// sees concurrent access.
type Session struct {
	directory string
	codecs    []string
	logger    *logger.Logger

	mu         sync.Mutex
	writer     *gocv.VideoWriter
	filename   string
	width      int
	height     int
	startTime  time.Time
	frameCount int64
}

func NewSession(directory string, codecs []string, log *logger.Logger) *Session {
	if len(codecs) == 0 {
		codecs = DefaultCodecs
	}
	return &Session{
		directory: directory,
		codecs:    codecs,
		logger:    log,
	}
}

// Start opens a writer using the first codec in the fallback chain that
// initializes. It returns an error if a recording is already active or if
// every codec fails, carrying all per-codec failures.
func (s *Session) Start(preset QualityPreset, fps float64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.writer != nil {
		return "", fmt.Errorf("recording already in progress: %s", s.filename)
	}

	if err := os.MkdirAll(s.directory, 0755); err != nil {
		return "", fmt.Errorf("failed to create recordings directory: %w", err)
	}

	filename := fmt.Sprintf("recording_%s.avi", time.Now().Format("20060102_150405"))
	path := filepath.Join(s.directory, filename)

	var attempts []string
	for _, codec := range s.codecs {
		writer, err := gocv.VideoWriterFile(path, codec, fps, preset.Width, preset.Height, true)
		if err != nil {
			attempts = append(attempts, fmt.Sprintf("%s: %v", codec, err))
			continue
		}
		if !writer.IsOpened() {
			writer.Close()
			attempts = append(attempts, fmt.Sprintf("%s: writer did not open", codec))
			continue
		}

		s.writer = writer
		s.filename = filename
		s.width = preset.Width
		s.height = preset.Height
		s.startTime = time.Now()
		s.frameCount = 0

		s.logger.Info("⏺ Recording started: %s (%dx%d @ %.0f fps, %s)", filename, preset.Width, preset.Height, fps, codec)
		return path, nil
	}

	return "", fmt.Errorf("failed to initialize video writer: %s", strings.Join(attempts, "; "))
}

// Write appends a frame to the active recording, resizing only when the
// frame dimensions differ from the target resolution. It is a no-op when no
// recording is active.
func (s *Session) Write(frame *video.Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.writer == nil {
		return
	}

	if frame.Width != s.width || frame.Height != s.height {
		resized := gocv.NewMat()
		defer resized.Close()
		gocv.Resize(frame.Mat, &resized, image.Pt(s.width, s.height), 0, 0, gocv.InterpolationLinear)
		if err := s.writer.Write(resized); err != nil {
			s.logger.Error("Failed to write recording frame: %v", err)
			return
		}
	} else {
		if err := s.writer.Write(frame.Mat); err != nil {
			s.logger.Error("Failed to write recording frame: %v", err)
			return
		}
	}

	s.frameCount++
}

// Stop releases the writer and returns the elapsed recording duration. All
// subsequent Write calls become no-ops until the next Start.
func (s *Session) Stop() (time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.writer == nil {
		return 0, fmt.Errorf("no recording in progress")
	}

	err := s.writer.Close()
	duration := time.Since(s.startTime)
	filename := s.filename

	s.writer = nil
	s.filename = ""

	if err != nil {
		return duration, fmt.Errorf("failed to release video writer: %w", err)
	}

	s.logger.Info("⏹ Recording saved: %s (%s, %d frames)", filename, FormatDuration(duration), s.frameCount)
	return duration, nil
}

// Active reports whether a recording is in progress.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writer != nil
}

// Status describes the current recording state.
type Status struct {
	Recording  bool          `json:"recording"`
	Filename   string        `json:"filename,omitempty"`
	Duration   time.Duration `json:"duration,omitempty"`
	FrameCount int64         `json:"frame_count,omitempty"`
}

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.writer == nil {
		return Status{}
	}

	return Status{
		Recording:  true,
		Filename:   s.filename,
		Duration:   time.Since(s.startTime),
		FrameCount: s.frameCount,
	}
}
