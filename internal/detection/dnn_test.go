package detection

import "testing"

func TestDetectionFromRow(t *testing.T) {
	// Rows come from the model's DetectionOutput blob:
	// [batchId classId confidence x1 y1 x2 y2], corners normalized.
	row := [7]float32{0, 1, 0.9, 0.25, 0.25, 0.75, 0.75}

	det, ok := detectionFromRow(row, 640, 480)
	if !ok {
		t.Fatal("detectionFromRow() rejected a confident detection")
	}
	if det.Label != "person" {
		t.Errorf("Label = %q, want person (class ID from column 1)", det.Label)
	}
	if det.Confidence != 0.9 {
		t.Errorf("Confidence = %v, want 0.9 (from column 2)", det.Confidence)
	}
	if det.X != 160 || det.Y != 120 || det.Width != 320 || det.Height != 240 {
		t.Errorf("box = (%d,%d,%d,%d), want (160,120,320,240)", det.X, det.Y, det.Width, det.Height)
	}
}

func TestDetectionFromRowFiltersLowConfidence(t *testing.T) {
	row := [7]float32{0, 1, 0.4, 0.25, 0.25, 0.75, 0.75}

	if _, ok := detectionFromRow(row, 640, 480); ok {
		t.Fatal("detectionFromRow() accepted a detection below the threshold")
	}
}

func TestDetectionFromRowClampsToFrame(t *testing.T) {
	// Corners can fall slightly outside 0-1 for objects at the frame edge.
	row := [7]float32{0, 3, 0.8, -0.1, -0.1, 1.2, 1.2}

	det, ok := detectionFromRow(row, 640, 480)
	if !ok {
		t.Fatal("detectionFromRow() rejected an edge detection")
	}
	if det.X != 0 || det.Y != 0 {
		t.Errorf("origin = (%d,%d), want (0,0)", det.X, det.Y)
	}
	if det.X+det.Width > 640 || det.Y+det.Height > 480 {
		t.Errorf("box (%d,%d,%d,%d) exceeds the frame", det.X, det.Y, det.Width, det.Height)
	}
	if det.Label != "car" {
		t.Errorf("Label = %q, want car", det.Label)
	}
}

func TestLabelFor(t *testing.T) {
	tests := []struct {
		classID int
		want    string
	}{
		{1, "person"},
		{8, "truck"},
		{18, "dog"},
		{99, "unknown_99"},
	}

	for _, tt := range tests {
		if got := labelFor(tt.classID); got != tt.want {
			t.Errorf("labelFor(%d) = %q, want %q", tt.classID, got, tt.want)
		}
	}
}
