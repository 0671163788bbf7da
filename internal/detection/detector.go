package detection

import (
	"image"

	"zoneguard/internal/video"
)

// Detection is one detected object in a frame.
type Detection struct {
	Label      string
	Confidence float64
	X          int
	Y          int
	Width      int
	Height     int
}

// Box returns the detection bounding box as an image.Rectangle.
func (d Detection) Box() image.Rectangle {
	return image.Rect(d.X, d.Y, d.X+d.Width, d.Y+d.Height)
}

// Detector produces object detections for a frame. Implementations may fail
// on any frame (unreadable image, model unavailable); callers are expected to
// skip such frames and continue.
type Detector interface {
	Detect(frame *video.Frame) ([]Detection, error)
	Close()
}
