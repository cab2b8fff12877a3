package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"strconv"
	"time"

	"cliplayer/internal/media"
	"cliplayer/internal/playlist"
)

// Default transport steps.
const (
	DefaultVolumeStep = 0.1
	DefaultSeekStep   = 10 * time.Second
)

// ErrStart is returned when the first track cannot be started.
var ErrStart = errors.New("failed to start playback")

// Options tune a Session.
type Options struct {
	VolumeStep float64
	SeekStep   time.Duration
	// InitialVolume is applied before the first track starts. Negative
	// values leave the engine's volume untouched.
	InitialVolume float64
	// Loop restarts the playlist after the last track ends.
	Loop bool
}

// DefaultOptions returns the stock key step sizes.
func DefaultOptions() Options {
	return Options{
		VolumeStep:    DefaultVolumeStep,
		SeekStep:      DefaultSeekStep,
		InitialVolume: -1,
	}
}

// Session plays a playlist through an Engine. All playback state is owned
// by the goroutine running Run; keystrokes and reloads are delivered to it
// over channels.
type Session struct {
	engine Engine
	list   *playlist.Playlist
	opts   Options
	out    io.Writer
	// loaded is the URI last handed to the engine.
	loaded string
}

// NewSession creates a session writing status lines to out.
func NewSession(engine Engine, list *playlist.Playlist, opts Options, out io.Writer) *Session {
	if opts.VolumeStep <= 0 {
		opts.VolumeStep = DefaultVolumeStep
	}
	if opts.SeekStep <= 0 {
		opts.SeekStep = DefaultSeekStep
	}
	return &Session{
		engine: engine,
		list:   list,
		opts:   opts,
		out:    out,
	}
}

// Run starts the first track and processes engine events, keystrokes and
// playlist reloads until the playlist finishes, the user quits, the engine
// reports an error or ctx is cancelled. A nil keys or reloads channel is
// never selected.
func (s *Session) Run(ctx context.Context, keys <-chan byte, reloads <-chan []string) error {
	if s.opts.InitialVolume >= 0 {
		if err := s.engine.SetVolume(clampVolume(s.opts.InitialVolume)); err != nil {
			log.Printf("[player] set initial volume: %v", err)
		}
	}
	if err := s.start(); err != nil {
		return fmt.Errorf("%w: %w", ErrStart, err)
	}

	events := s.engine.Events()
	for {
		select {
		case <-ctx.Done():
			s.printf("Quitting...")
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			done, err := s.handleEvent(ev)
			if done || err != nil {
				return err
			}

		case key, ok := <-keys:
			if !ok {
				log.Println("[player] keyboard input closed")
				keys = nil
				continue
			}
			if s.Dispatch(ParseKey(key)) {
				return nil
			}

		case uris := <-reloads:
			if err := s.list.Replace(uris); err != nil {
				log.Printf("[player] reload ignored: %v", err)
				continue
			}
			log.Printf("[player] playlist reloaded: %d entries, now at %d", s.list.Len(), s.list.Index()+1)
		}
	}
}

func (s *Session) handleEvent(ev Event) (done bool, err error) {
	// Events queued for a track the user already switched away from.
	if ev.URI != "" && ev.URI != s.loaded {
		log.Printf("[player] dropping stale %s for %s", ev.Kind, ev.URI)
		return false, nil
	}
	switch ev.Kind {
	case EndOfStream:
		s.printf("End of stream.")
		if !s.list.Advance(s.opts.Loop) {
			return true, nil
		}
		if err := s.start(); err != nil {
			s.printf("ERROR: %v", err)
			return true, err
		}
	case Error:
		err := ev.Err
		if err == nil {
			err = errors.New("playback error")
		}
		s.printf("ERROR: %v", err)
		return true, err
	}
	return false, nil
}

// Dispatch executes cmd and reports whether the session should end.
func (s *Session) Dispatch(cmd Command) bool {
	switch cmd {
	case TogglePause:
		s.togglePause()
	case VolumeUp:
		s.adjustVolume(s.opts.VolumeStep, "increased")
	case VolumeDown:
		s.adjustVolume(-s.opts.VolumeStep, "decreased")
	case SeekForward:
		s.seek(s.opts.SeekStep, "forward")
	case SeekBackward:
		s.seek(-s.opts.SeekStep, "backward")
	case NextTrack:
		if s.list.Next() {
			s.switchTrack("Next track.")
		}
	case PreviousTrack:
		if s.list.Previous() {
			s.switchTrack("Previous track.")
		}
	case Quit:
		s.printf("Quitting...")
		return true
	}
	return false
}

func (s *Session) togglePause() {
	var err error
	if s.engine.Playing() {
		err = s.engine.Pause()
	} else {
		err = s.engine.Play()
	}
	if err != nil {
		log.Printf("[player] play/pause: %v", err)
		return
	}
	s.printf("Play/Pause toggled.")
}

func (s *Session) adjustVolume(delta float64, verb string) {
	vol, err := s.engine.Volume()
	if err != nil {
		log.Printf("[player] read volume: %v", err)
		return
	}
	vol = clampVolume(vol + delta)
	if err := s.engine.SetVolume(vol); err != nil {
		log.Printf("[player] set volume: %v", err)
		return
	}
	s.printf("Volume %s: %s", verb, strconv.FormatFloat(vol, 'f', -1, 64))
}

// seek moves relative to the current position. Nothing happens when the
// position cannot be queried.
func (s *Session) seek(delta time.Duration, direction string) {
	pos, err := s.engine.Position()
	if err != nil {
		return
	}
	target := max(pos+delta, 0)
	if err := s.engine.Seek(target); err != nil {
		log.Printf("[player] seek %s: %v", direction, err)
		return
	}
	s.printf("Seeked %s.", direction)
}

func (s *Session) switchTrack(msg string) {
	if err := s.start(); err != nil {
		log.Printf("[player] %v", err)
		return
	}
	s.printf("%s", msg)
}

// start loads the playlist's current entry and plays it.
func (s *Session) start() error {
	uri := s.list.Current()
	if err := s.engine.Load(uri); err != nil {
		return fmt.Errorf("load %s: %w", uri, err)
	}
	s.loaded = uri
	if err := s.engine.Play(); err != nil {
		return fmt.Errorf("play %s: %w", uri, err)
	}
	s.printf("Now playing [%d/%d]: %s (%s)",
		s.list.Index()+1, s.list.Len(), media.DisplayName(uri), media.Detect(uri))
	return nil
}

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format+"\n", args...)
}

// clampVolume bounds v to [0, 1] and rounds to hundredths so repeated
// steps do not accumulate floating point drift.
func clampVolume(v float64) float64 {
	v = math.Round(v*100) / 100
	return min(max(v, 0), 1)
}
