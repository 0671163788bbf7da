package video

import (
	"time"

	"gocv.io/x/gocv"
)

// Frame carries one captured image through the pipeline together with its
// dimensions, so downstream stages do not need to query the Mat for them.
type Frame struct {
	Mat    gocv.Mat
	Width  int
	Height int
	Time   time.Time
}
