// Package audio plays an audio file and exposes its live frequency spectrum
// for the visualizer strip.
package audio

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/ncruces/zenity"
)

// ErrUnsupportedFormat is returned for files other than wav, mp3 and flac.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Decode opens a stream for path based on its extension.
func Decode(f *os.File, path string) (beep.StreamSeekCloser, beep.Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return wav.Decode(f)
	case ".mp3":
		return mp3.Decode(f)
	case ".flac":
		return flac.Decode(f)
	}
	return nil, beep.Format{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
}

// Player owns the speaker, the current stream and the tap feeding the
// analyser. Speaker callbacks run on the audio goroutine, so mutable state is
// guarded by mu.
type Player struct {
	ringSize int

	mu          sync.Mutex
	currentFile *os.File
	streamer    beep.StreamSeekCloser
	format      beep.Format
	ctrl        *beep.Ctrl
	tap         *Tap
	paused      bool
	initDone    bool
}

// NewPlayer creates an idle player whose tap keeps ringSize samples.
func NewPlayer(ringSize int) *Player {
	return &Player{ringSize: ringSize}
}

// OpenDialog asks the user for a file and plays it. Cancelling is not an error.
func (p *Player) OpenDialog() error {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Audio File"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return fmt.Errorf("select audio file: %w", err)
	}
	return p.Load(filename)
}

// Load stops any current playback and starts playing path.
func (p *Player) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open audio file: %w", err)
	}
	streamer, format, err := Decode(f, path)
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}

	p.stop()

	p.mu.Lock()
	defer p.mu.Unlock()

	bufferSize := format.SampleRate.N(time.Second / 20)
	if !p.initDone || p.format.SampleRate != format.SampleRate {
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			_ = f.Close()
			return fmt.Errorf("init speaker: %w", err)
		}
		p.initDone = true
	}

	tap := NewTap(streamer, p.ringSize)
	ctrl := &beep.Ctrl{Streamer: tap}

	p.currentFile = f
	p.streamer = streamer
	p.format = format
	p.ctrl = ctrl
	p.tap = tap
	p.paused = false

	// The callback runs on the speaker goroutine with the speaker locked.
	speaker.Play(beep.Seq(ctrl, beep.Callback(func() {
		go p.finished(streamer)
	})))
	log.Printf("[Audio] Playing %s (%d Hz)", filepath.Base(path), format.SampleRate)
	return nil
}

// finished releases a stream that played to its end, unless it has already
// been replaced.
func (p *Player) finished(s beep.StreamSeekCloser) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer != s {
		return
	}
	p.closeLocked()
}

func (p *Player) stop() {
	p.mu.Lock()
	active := p.initDone
	p.mu.Unlock()
	if active {
		speaker.Clear()
	}

	p.mu.Lock()
	p.closeLocked()
	p.mu.Unlock()
}

func (p *Player) closeLocked() {
	if p.streamer != nil {
		_ = p.streamer.Close()
		p.streamer = nil
	}
	if p.currentFile != nil {
		_ = p.currentFile.Close()
		p.currentFile = nil
	}
	p.ctrl = nil
	p.tap = nil
}

// TogglePause pauses or resumes the current stream.
func (p *Player) TogglePause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.paused = !p.paused
	p.ctrl.Paused = p.paused
	speaker.Unlock()
}

// Playing reports whether a stream is loaded and not paused.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ctrl != nil && !p.paused
}

// Tap returns the current tap, or nil when nothing is loaded.
func (p *Player) Tap() *Tap {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tap
}

// Progress returns the playback position and length of the current stream.
// Both are zero when nothing is loaded.
func (p *Player) Progress() (pos, total time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer == nil {
		return 0, 0
	}
	speaker.Lock()
	n, length := p.streamer.Position(), p.streamer.Len()
	speaker.Unlock()
	return p.format.SampleRate.D(n), p.format.SampleRate.D(length)
}

// Seek jumps to a fraction of the current stream, clamped to [0,1].
func (p *Player) Seek(fraction float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer == nil {
		return nil
	}
	fraction = min(max(fraction, 0), 1)
	speaker.Lock()
	defer speaker.Unlock()
	pos := int(fraction * float64(p.streamer.Len()))
	if pos >= p.streamer.Len() {
		pos = p.streamer.Len() - 1
	}
	if err := p.streamer.Seek(max(pos, 0)); err != nil {
		return fmt.Errorf("seek: %w", err)
	}
	return nil
}

// Close stops playback and releases the stream.
func (p *Player) Close() {
	p.stop()
}
