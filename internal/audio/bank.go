package audio

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/wav"
)

// DefaultSampleRate is the speaker sample rate.
const DefaultSampleRate = beep.SampleRate(44100)

// note is one synthesized tone.
type note struct {
	freq float64
	dur  time.Duration
}

// fallbackTones are played when a cue has no WAV asset.
var fallbackTones = map[string][]note{
	CueWall:      {{freq: 110, dur: 120 * time.Millisecond}},
	CueCorrect:   {{freq: 660, dur: 80 * time.Millisecond}, {freq: 880, dur: 140 * time.Millisecond}},
	CueIncorrect: {{freq: 330, dur: 90 * time.Millisecond}, {freq: 220, dur: 160 * time.Millisecond}},
}

// bank holds decoded cue audio, all at one sample rate.
type bank struct {
	rate    beep.SampleRate
	volume  float64
	buffers map[string]*beep.Buffer
}

// loadBank decodes <dir>/<cue>.wav for every cue.
// Cues without a usable file fall back to synthesized tones; each failure is
// logged once here rather than on every play.
func loadBank(dir string, rate beep.SampleRate, volume float64, logger *log.Logger) *bank {
	b := &bank{
		rate:    rate,
		volume:  volume,
		buffers: make(map[string]*beep.Buffer),
	}
	if dir == "" {
		return b
	}

	for _, cue := range Cues {
		path := filepath.Join(dir, cue+".wav")
		buf, err := decodeWAV(path, rate)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				logger.Debug("sound asset missing, using tone", "cue", cue, "path", path)
			} else {
				logger.Warn("sound asset unusable, using tone", "cue", cue, "path", path, "error", err)
			}
			continue
		}
		b.buffers[cue] = buf
	}
	return b
}

// decodeWAV reads a WAV file into memory at the given rate.
func decodeWAV(path string, rate beep.SampleRate) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	streamer, format, err := wav.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("audio: decode %s: %w", path, err)
	}
	defer streamer.Close()

	var s beep.Streamer = streamer
	if format.SampleRate != rate {
		s = beep.Resample(4, format.SampleRate, rate, streamer)
	}

	format.SampleRate = rate
	buf := beep.NewBuffer(format)
	buf.Append(s)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("audio: read %s: %w", path, err)
	}
	return buf, nil
}

// streamer returns a fresh stream for cue.
func (b *bank) streamer(cue string) (beep.Streamer, error) {
	var s beep.Streamer
	if buf, ok := b.buffers[cue]; ok {
		s = buf.Streamer(0, buf.Len())
	} else {
		notes, ok := fallbackTones[cue]
		if !ok {
			return nil, fmt.Errorf("audio: unknown cue %q", cue)
		}
		seq := make([]beep.Streamer, 0, len(notes))
		for _, n := range notes {
			tone, err := generators.SineTone(b.rate, n.freq)
			if err != nil {
				return nil, fmt.Errorf("audio: tone %q: %w", cue, err)
			}
			seq = append(seq, beep.Take(b.rate.N(n.dur), tone))
		}
		s = beep.Seq(seq...)
	}
	return withVolume(s, b.volume), nil
}

// hasAsset reports whether cue plays from a WAV file.
func (b *bank) hasAsset(cue string) bool {
	_, ok := b.buffers[cue]
	return ok
}

// withVolume scales s linearly; zero or less is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	if vol == 1 {
		return s
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
