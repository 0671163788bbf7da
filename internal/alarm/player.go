package alarm

import (
	"fmt"
	"os"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

// BeepPlayer plays a WAV file in an endless loop through the system speaker.
type BeepPlayer struct {
	streamer    beep.StreamSeekCloser
	ctrl        *beep.Ctrl
	initialized bool
}

func NewBeepPlayer() *BeepPlayer {
	return &BeepPlayer{}
}

// Load decodes the WAV file and initializes the speaker on first use.
func (p *BeepPlayer) Load(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open alarm sound: %w", err)
	}

	streamer, format, err := wav.Decode(file)
	if err != nil {
		file.Close()
		return fmt.Errorf("failed to decode alarm sound: %w", err)
	}

	if !p.initialized {
		if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
			streamer.Close()
			return fmt.Errorf("failed to initialize speaker: %w", err)
		}
		p.initialized = true
	}

	p.streamer = streamer
	return nil
}

// Play starts looped playback of the loaded sound.
func (p *BeepPlayer) Play() error {
	if p.streamer == nil {
		return fmt.Errorf("no alarm sound loaded")
	}

	p.ctrl = &beep.Ctrl{Streamer: beep.Loop(-1, p.streamer)}
	speaker.Play(p.ctrl)
	return nil
}

// Stop halts playback and releases the decoded stream.
func (p *BeepPlayer) Stop() {
	if p.ctrl != nil {
		speaker.Lock()
		p.ctrl.Paused = true
		speaker.Unlock()
		speaker.Clear()
		p.ctrl = nil
	}

	if p.streamer != nil {
		p.streamer.Close()
		p.streamer = nil
	}
}
