package zone

import (
	"image"
	"testing"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name       string
		width      int
		height     int
		wantCenter image.Point
		wantAxes   image.Point
	}{
		{"vga", 640, 480, image.Pt(320, 240), image.Pt(160, 60)},
		{"hd", 1280, 720, image.Pt(640, 360), image.Pt(320, 90)},
		{"full hd", 1920, 1080, image.Pt(960, 540), image.Pt(480, 135)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			z := Compute(tt.width, tt.height)
			if z.Center != tt.wantCenter {
				t.Errorf("Compute(%d, %d) center = %v, want %v", tt.width, tt.height, z.Center, tt.wantCenter)
			}
			if z.Axes != tt.wantAxes {
				t.Errorf("Compute(%d, %d) axes = %v, want %v", tt.width, tt.height, z.Axes, tt.wantAxes)
			}
		})
	}
}

func TestContains(t *testing.T) {
	z := Compute(640, 480) // center (320,240), radius min(160,60)+margin

	tests := []struct {
		name   string
		box    image.Rectangle
		margin float64
		want   bool
	}{
		{"box at zone center", image.Rect(270, 190, 370, 290), DefaultMargin, true},
		{"box in corner", image.Rect(0, 0, 20, 20), DefaultMargin, false},
		{"box just inside radius", image.Rect(270, 85, 370, 185), DefaultMargin, true},   // center (320,135), dist 105 < 110
		{"box just outside radius", image.Rect(270, 75, 370, 175), DefaultMargin, false}, // center (320,125), dist 115 > 110
		{"zero margin shrinks radius", image.Rect(270, 85, 370, 185), 0, false},          // dist 105 > 60
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := z.Contains(tt.box, tt.margin); got != tt.want {
				t.Errorf("Contains(%v, %.0f) = %v, want %v", tt.box, tt.margin, got, tt.want)
			}
		})
	}
}
