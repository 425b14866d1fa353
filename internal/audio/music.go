// Package audio plays the looping background track.
package audio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
)

// ErrUnsupportedFormat is returned for music files that are neither WAV nor MP3.
var ErrUnsupportedFormat = errors.New("audio: unsupported format")

// Player controls background music. Implementations must be safe for concurrent use.
type Player interface {
	// Play starts the track, or resumes it where it was paused.
	Play()
	// Pause stops output and keeps the position.
	Pause()
	// Rewind moves back to the start of the track without changing play state.
	Rewind()
	// Close releases the track.
	Close() error
}

// Nop is a silent Player.
type Nop struct{}

func (Nop) Play()        {}
func (Nop) Pause()       {}
func (Nop) Rewind()      {}
func (Nop) Close() error { return nil }

// device is the output the music is mixed into.
type device interface {
	Lock()
	Unlock()
	Play(s ...beep.Streamer)
}

type speakerDevice struct{}

func (speakerDevice) Lock()                   { speaker.Lock() }
func (speakerDevice) Unlock()                 { speaker.Unlock() }
func (speakerDevice) Play(s ...beep.Streamer) { speaker.Play(s...) }

// Music loops one decoded track forever.
type Music struct {
	mu      sync.Mutex
	dev     device
	track   beep.StreamSeeker
	closer  io.Closer
	ctrl    *beep.Ctrl
	logger  *log.Logger
	started bool
	closed  bool
}

// Open decodes a WAV or MP3 file and prepares the speaker for it. Playback does
// not begin until Play is called.
func Open(path string, volume float64) (*Music, error) {
	track, format, err := decode(path)
	if err != nil {
		return nil, err
	}
	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		track.Close()
		return nil, fmt.Errorf("audio: init speaker: %w", err)
	}
	return newMusic(speakerDevice{}, track, track, volume), nil
}

func newMusic(dev device, track beep.StreamSeeker, closer io.Closer, volume float64) *Music {
	ctrl := &beep.Ctrl{
		Streamer: newVolume(beep.Loop(-1, track), volume),
		Paused:   true,
	}
	return &Music{dev: dev, track: track, closer: closer, ctrl: ctrl, logger: log.Default()}
}

// newVolume maps a linear 0..1 volume onto a base-2 volume effect.
// math.Log2(0) is -Inf, so zero volume is made silent instead.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

func decode(path string) (beep.StreamSeekCloser, beep.Format, error) {
	var decoder func(io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		decoder = func(r io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) { return wav.Decode(r) }
	case ".mp3":
		decoder = mp3.Decode
	default:
		return nil, beep.Format{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("audio: open %s: %w", path, err)
	}
	s, format, err := decoder(f)
	if err != nil {
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("audio: decode %s: %w", path, err)
	}
	return s, format, nil
}

// Play starts or resumes the loop.
func (m *Music) Play() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}

	if !m.started {
		m.ctrl.Paused = false
		m.dev.Play(m.ctrl)
		m.started = true
		return
	}
	m.dev.Lock()
	m.ctrl.Paused = false
	m.dev.Unlock()
}

// Pause silences the loop at its current position.
func (m *Music) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}

	m.dev.Lock()
	m.ctrl.Paused = true
	m.dev.Unlock()
}

// Rewind seeks back to the first sample.
func (m *Music) Rewind() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}

	m.dev.Lock()
	err := m.track.Seek(0)
	m.dev.Unlock()
	if err != nil {
		m.logger.Warn("Failed to rewind music", "err", err)
	}
}

// Playing reports whether the loop is currently audible.
func (m *Music) Playing() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.started || m.closed {
		return false
	}
	m.dev.Lock()
	defer m.dev.Unlock()
	return !m.ctrl.Paused
}

// Close stops the loop and releases the decoder.
func (m *Music) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true

	m.dev.Lock()
	m.ctrl.Paused = true
	m.ctrl.Streamer = nil
	m.dev.Unlock()

	if m.closer != nil {
		return m.closer.Close()
	}
	return nil
}

// Settings selects the background track.
type Settings struct {
	Enabled bool
	Path    string
	Volume  float64
}

// New returns a Player for the settings. Music is optional: when it is disabled,
// unset or cannot be opened the game runs silently and the failure is logged.
func New(s Settings, logger *log.Logger) Player {
	if !s.Enabled || s.Path == "" {
		logger.Debug("Music disabled")
		return Nop{}
	}
	m, err := Open(s.Path, s.Volume)
	if err != nil {
		logger.Warn("Music unavailable, continuing without sound", "path", s.Path, "err", err)
		return Nop{}
	}
	logger.Debug("Music loaded", "path", s.Path)
	m.logger = logger
	return m
}
