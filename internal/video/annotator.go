package video

import (
	"fmt"
	"image"
	"image/color"
	"math/rand"

	"gocv.io/x/gocv"

	"zoneguard/internal/zone"
)

// Annotator draws detection overlays on a frame. The frame loop is the only
// caller, so implementations do not need to be safe for concurrent use.
type Annotator interface {
	DrawDetection(f *Frame, label string, confidence float64, box image.Rectangle)
	DrawViolationBanner(f *Frame, label string)
	DrawZone(f *Frame, z zone.Zone)
}

var zoneColor = color.RGBA{R: 255, G: 0, B: 0, A: 0}

// GocvAnnotator renders overlays directly onto the frame Mat.
type GocvAnnotator struct {
	classColors map[string]color.RGBA
}

func NewGocvAnnotator() *GocvAnnotator {
	return &GocvAnnotator{
		classColors: make(map[string]color.RGBA),
	}
}

// DrawDetection draws the bounding box and a "label confidence" caption.
func (a *GocvAnnotator) DrawDetection(f *Frame, label string, confidence float64, box image.Rectangle) {
	c := a.colorFor(label)
	gocv.Rectangle(&f.Mat, box, c, 3)

	caption := fmt.Sprintf("%s %.2f", label, confidence)
	gocv.PutText(&f.Mat, caption, image.Pt(box.Min.X, box.Min.Y-10), gocv.FontHersheySimplex, 0.5, c, 2)
}

// DrawViolationBanner draws the in-zone warning text at the top of the frame.
func (a *GocvAnnotator) DrawViolationBanner(f *Frame, label string) {
	text := fmt.Sprintf("%s in Restricted Area!", label)
	gocv.PutText(&f.Mat, text, image.Pt(50, 50), gocv.FontHersheySimplex, 1, zoneColor, 2)
}

// DrawZone outlines the restricted zone ellipse.
func (a *GocvAnnotator) DrawZone(f *Frame, z zone.Zone) {
	gocv.Ellipse(&f.Mat, z.Center, z.Axes, 0, 0, 360, zoneColor, 2)
}

// colorFor returns a stable random color per class.
func (a *GocvAnnotator) colorFor(label string) color.RGBA {
	if c, ok := a.classColors[label]; ok {
		return c
	}
	c := color.RGBA{
		R: uint8(rand.Intn(256)),
		G: uint8(rand.Intn(256)),
		B: uint8(rand.Intn(256)),
	}
	a.classColors[label] = c
	return c
}
