package audio

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// SpeakerOptions configures a SpeakerPlayer.
type SpeakerOptions struct {
	SoundsDir  string  // directory holding <cue>.wav files; empty means tones only
	Volume     float64 // linear gain, 1 is unchanged and 0 is silent
	SampleRate int     // 0 means DefaultSampleRate
	Logger     *log.Logger
}

// SpeakerPlayer plays cues on the system sound device.
type SpeakerPlayer struct {
	mu      sync.Mutex
	bank    *bank
	mixer   *beep.Mixer
	logger  *log.Logger
	warned  map[string]bool
	started bool
}

// NewSpeakerPlayer opens the sound device and loads cue assets.
// An error means no device is available; callers fall back to Nop.
func NewSpeakerPlayer(opts SpeakerOptions) (*SpeakerPlayer, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	rate := DefaultSampleRate
	if opts.SampleRate > 0 {
		rate = beep.SampleRate(opts.SampleRate)
	}

	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("audio: init speaker: %w", err)
	}

	p := &SpeakerPlayer{
		bank:   loadBank(opts.SoundsDir, rate, opts.Volume, logger),
		mixer:  &beep.Mixer{},
		logger: logger,
		warned: make(map[string]bool),
	}
	speaker.Play(p.mixer)
	p.started = true
	return p, nil
}

// Play queues cue on the mixer and returns immediately.
func (p *SpeakerPlayer) Play(cue string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}

	s, err := p.bank.streamer(cue)
	if err != nil {
		if !p.warned[cue] {
			p.logger.Warn("cannot play cue", "cue", cue, "error", err)
			p.warned[cue] = true
		}
		return
	}

	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Close stops playback.
func (p *SpeakerPlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.started = false
}
