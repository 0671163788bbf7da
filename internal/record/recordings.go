package record

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Info describes one saved recording file.
type Info struct {
	Name    string    `json:"name"`
	Path    string    `json:"path"`
	Size    int64     `json:"size"`
	SizeMB  float64   `json:"size_mb"`
	Created time.Time `json:"created"`
}

// List returns saved recordings, newest first.
func List(directory string) ([]Info, error) {
	entries, err := os.ReadDir(directory)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read recordings directory: %w", err)
	}

	var recordings []Info
	for _, entry := range entries {
		if entry.IsDir() || !isVideoFile(entry.Name()) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		recordings = append(recordings, Info{
			Name:    entry.Name(),
			Path:    filepath.Join(directory, entry.Name()),
			Size:    info.Size(),
			SizeMB:  float64(info.Size()) / (1024 * 1024),
			Created: info.ModTime(),
		})
	}

	sort.Slice(recordings, func(i, j int) bool {
		return recordings[i].Created.After(recordings[j].Created)
	})

	return recordings, nil
}

// Delete removes a recording by name. The name must be a bare filename,
// never a path.
func Delete(directory, name string) error {
	if !isValidRecordingName(name) {
		return fmt.Errorf("invalid recording name: %s", name)
	}

	path := filepath.Join(directory, name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("recording not found: %s", name)
	}

	return os.Remove(path)
}

func isVideoFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".avi", ".mp4", ".mov":
		return true
	}
	return false
}

func isValidRecordingName(name string) bool {
	if name == "" || strings.ContainsAny(name, "/\\\x00") || strings.HasPrefix(name, "..") {
		return false
	}
	return isVideoFile(name)
}

// FormatDuration renders a duration for status output, e.g. "45s", "5m 12s",
// "1h 3m".
func FormatDuration(d time.Duration) string {
	seconds := int(d.Seconds())
	switch {
	case seconds < 60:
		return fmt.Sprintf("%ds", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%dm %ds", seconds/60, seconds%60)
	default:
		return fmt.Sprintf("%dh %dm", seconds/3600, (seconds%3600)/60)
	}
}
