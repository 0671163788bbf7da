package record

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"zoneguard/internal/logger"
	"zoneguard/internal/video"
)

func TestPresetFor(t *testing.T) {
	tests := []struct {
		name      string
		quality   string
		wantWidth int
	}{
		{"low", "low", 640},
		{"medium", "medium", 1280},
		{"high", "high", 1920},
		{"mixed case", "HIGH", 1920},
		{"padded", " low ", 640},
		{"unknown falls back to medium", "ultra", 1280},
		{"empty falls back to medium", "", 1280},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PresetFor(tt.quality); got.Width != tt.wantWidth {
				t.Errorf("PresetFor(%q).Width = %d, want %d", tt.quality, got.Width, tt.wantWidth)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{45 * time.Second, "45s"},
		{5*time.Minute + 12*time.Second, "5m 12s"},
		{time.Hour + 3*time.Minute, "1h 3m"},
		{0, "0s"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestSessionInactive(t *testing.T) {
	session := NewSession(t.TempDir(), nil, logger.NewLogger(t.TempDir()))

	if session.Active() {
		t.Fatal("new session should not be active")
	}

	// Writing with no active recording is a no-op, not a panic.
	session.Write(&video.Frame{Width: 640, Height: 480})

	if _, err := session.Stop(); err == nil {
		t.Fatal("Stop without an active recording should return an error")
	}

	if status := session.Status(); status.Recording {
		t.Fatal("Status().Recording = true for inactive session")
	}
}

func TestListRecordings(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, "recording_20260830_120000.avi")
	writeFile(t, dir, "recording_20260830_130000.mp4")
	writeFile(t, dir, "notes.txt")

	recordings, err := List(dir)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(recordings) != 2 {
		t.Fatalf("List() returned %d entries, want 2", len(recordings))
	}
	for _, rec := range recordings {
		if rec.Name == "notes.txt" {
			t.Error("List() included a non-video file")
		}
	}
}

func TestListMissingDirectory(t *testing.T) {
	recordings, err := List(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatalf("List() on missing directory should not error, got: %v", err)
	}
	if len(recordings) != 0 {
		t.Fatalf("List() on missing directory returned %d entries", len(recordings))
	}
}

func TestDeleteRecording(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "recording_20260830_120000.avi")

	if err := Delete(dir, "recording_20260830_120000.avi"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "recording_20260830_120000.avi")); !os.IsNotExist(err) {
		t.Fatal("recording still exists after Delete")
	}
}

func TestDeleteRejectsBadNames(t *testing.T) {
	dir := t.TempDir()

	tests := []string{
		"",
		"../escape.avi",
		"sub/dir.avi",
		"back\\slash.avi",
		"recording.txt",
		"missing.avi",
	}

	for _, name := range tests {
		if err := Delete(dir, name); err == nil {
			t.Errorf("Delete(%q) should have failed", name)
		}
	}
}

func writeFile(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}
