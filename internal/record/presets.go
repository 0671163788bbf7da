package record

import "strings"

// QualityPreset maps a named recording quality to a target resolution.
type QualityPreset struct {
	Name   string
	Width  int
	Height int
}

var presets = map[string]QualityPreset{
	"low":    {Name: "low", Width: 640, Height: 480},
	"medium": {Name: "medium", Width: 1280, Height: 720},
	"high":   {Name: "high", Width: 1920, Height: 1080},
}

// PresetFor resolves a quality name, falling back to medium for unknown names.
func PresetFor(name string) QualityPreset {
	if preset, ok := presets[strings.ToLower(strings.TrimSpace(name))]; ok {
		return preset
	}
	return presets["medium"]
}

// DefaultCodecs is the ordered fallback chain for the video writer. MJPG in
// an AVI container is the most portable, so it goes first.
var DefaultCodecs = []string{"MJPG", "XVID", "MP4V"}
