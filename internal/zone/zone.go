package zone

import (
	"image"
	"math"
)

// DefaultMargin is the extra radius in pixels added around the zone when
// testing detections against it.
const DefaultMargin = 50.0

// Zone is the restricted region: an ellipse centered in the frame.
type Zone struct {
	Center image.Point
	Axes   image.Point
}

// Compute derives the restricted zone from the current frame dimensions.
// The zone is recomputed every frame and never persisted.
func Compute(width, height int) Zone {
	return Zone{
		Center: image.Pt(width/2, height/2),
		Axes:   image.Pt(width/4, height/8),
	}
}

// Contains reports whether the bounding box center lies within the zone's
// proximity radius, min(axes) plus margin.
func (z Zone) Contains(box image.Rectangle, margin float64) bool {
	center := image.Pt((box.Min.X+box.Max.X)/2, (box.Min.Y+box.Max.Y)/2)
	dx := float64(z.Center.X - center.X)
	dy := float64(z.Center.Y - center.Y)
	radius := math.Min(float64(z.Axes.X), float64(z.Axes.Y)) + margin
	return math.Hypot(dx, dy) < radius
}
