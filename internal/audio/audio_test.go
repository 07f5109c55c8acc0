package audio

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/wav"
)

func TestRecorder(t *testing.T) {
	var r Recorder
	r.Play(CueWall)
	r.Play(CueCorrect)
	r.Play(CueWall)

	got := r.Cues()
	if len(got) != 3 || got[0] != CueWall || got[1] != CueCorrect {
		t.Errorf("Cues() = %v", got)
	}
	if r.Count(CueWall) != 2 {
		t.Errorf("Count(wall) = %d, expected 2", r.Count(CueWall))
	}

	r.Reset()
	if len(r.Cues()) != 0 {
		t.Error("Reset should clear cues")
	}
}

func TestToggle(t *testing.T) {
	rec := &Recorder{}
	tg := NewToggle(rec, true)

	tg.Play(CueWall)
	if len(rec.Cues()) != 0 {
		t.Error("muted toggle should drop cues")
	}

	tg.SetMuted(false)
	tg.Play(CueCorrect)
	if got := rec.Cues(); len(got) != 1 || got[0] != CueCorrect {
		t.Errorf("Cues() = %v", got)
	}
	if tg.Muted() {
		t.Error("Muted() should be false")
	}

	NewToggle(nil, false).Play(CueWall) // must not panic
}

// drain counts the samples a streamer yields.
func drain(s beep.Streamer) int {
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			return total
		}
	}
}

func TestBankFallbackTones(t *testing.T) {
	b := loadBank("", DefaultSampleRate, 1, log.New(os.Stderr))

	for _, cue := range Cues {
		t.Run(cue, func(t *testing.T) {
			s, err := b.streamer(cue)
			if err != nil {
				t.Fatalf("streamer failed: %v", err)
			}

			want := 0
			for _, n := range fallbackTones[cue] {
				want += DefaultSampleRate.N(n.dur)
			}
			if got := drain(s); got != want {
				t.Errorf("tone length = %d samples, expected %d", got, want)
			}
		})
	}
}

func TestBankUnknownCue(t *testing.T) {
	b := loadBank("", DefaultSampleRate, 1, log.New(os.Stderr))
	if _, err := b.streamer("fanfare"); err == nil {
		t.Error("expected error for unknown cue")
	}
}

func writeWAV(t *testing.T, path string, rate beep.SampleRate, d time.Duration) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()

	tone, err := generators.SineTone(rate, 440)
	if err != nil {
		t.Fatalf("SineTone: %v", err)
	}
	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	if err := wav.Encode(f, beep.Take(rate.N(d), tone), format); err != nil {
		t.Fatalf("wav.Encode: %v", err)
	}
}

func TestBankLoadsWAV(t *testing.T) {
	dir := t.TempDir()
	writeWAV(t, filepath.Join(dir, "wall.wav"), DefaultSampleRate, 50*time.Millisecond)

	b := loadBank(dir, DefaultSampleRate, 0.5, log.New(os.Stderr))
	if !b.hasAsset(CueWall) {
		t.Fatal("wall.wav should be loaded")
	}
	if b.hasAsset(CueCorrect) {
		t.Error("correct has no file and should use a tone")
	}

	s, err := b.streamer(CueWall)
	if err != nil {
		t.Fatalf("streamer failed: %v", err)
	}
	if got, want := drain(s), DefaultSampleRate.N(50*time.Millisecond); got != want {
		t.Errorf("wav length = %d samples, expected %d", got, want)
	}
}

func TestBankResamplesWAV(t *testing.T) {
	dir := t.TempDir()
	writeWAV(t, filepath.Join(dir, "correct.wav"), beep.SampleRate(22050), 100*time.Millisecond)

	b := loadBank(dir, DefaultSampleRate, 1, log.New(os.Stderr))
	if !b.hasAsset(CueCorrect) {
		t.Fatal("correct.wav should be loaded")
	}

	s, _ := b.streamer(CueCorrect)
	got := drain(s)
	want := DefaultSampleRate.N(100 * time.Millisecond)
	if got < want-64 || got > want+64 {
		t.Errorf("resampled length = %d, expected about %d", got, want)
	}
}

func TestBankCorruptWAVFallsBack(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "incorrect.wav"), []byte("not a wav"), 0644); err != nil {
		t.Fatal(err)
	}

	b := loadBank(dir, DefaultSampleRate, 1, log.New(os.Stderr))
	if b.hasAsset(CueIncorrect) {
		t.Error("corrupt file should not be loaded")
	}
	if _, err := b.streamer(CueIncorrect); err != nil {
		t.Errorf("fallback tone failed: %v", err)
	}
}
