package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gocv.io/x/gocv"

	"zoneguard/internal/logger"
	"zoneguard/internal/video"
)

// SnapshotStore persists annotated violation frames as JPEG files.
type SnapshotStore struct {
	directory string
	logger    *logger.Logger
}

func NewSnapshotStore(directory string, log *logger.Logger) *SnapshotStore {
	return &SnapshotStore{
		directory: directory,
		logger:    log,
	}
}

// Save writes the frame to disk and returns the file path. The file must
// exist before the path is handed to the notification dispatcher.
func (s *SnapshotStore) Save(frame *video.Frame) (string, error) {
	if err := os.MkdirAll(s.directory, 0755); err != nil {
		return "", fmt.Errorf("failed to create snapshots directory: %w", err)
	}

	filename := fmt.Sprintf("frame_%s.jpg", time.Now().Format("20060102_150405.000000"))
	path := filepath.Join(s.directory, filename)

	if ok := gocv.IMWrite(path, frame.Mat); !ok {
		return "", fmt.Errorf("failed to encode snapshot %s", filename)
	}

	return path, nil
}

// Count returns the number of stored snapshots.
func (s *SnapshotStore) Count() int {
	entries, err := os.ReadDir(s.directory)
	if err != nil {
		return 0
	}

	count := 0
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".jpg") {
			count++
		}
	}
	return count
}
