//go:build cgo

package vlc

import (
	"fmt"
	"log"
	"sync"
	"time"

	"cliplayer/internal/player"

	libvlc "github.com/adrg/libvlc-go/v3"
)

// Engine wraps a single libVLC media player.
type Engine struct {
	mu       sync.Mutex
	player   *libvlc.Player
	manager  *libvlc.EventManager
	eventIDs []libvlc.EventID
	events   chan player.Event
	uri      string
	released bool
}

// New initializes libVLC with the default flags followed by args and
// creates a media player.
func New(args []string) (*Engine, error) {
	flags := append(append([]string{}, defaultArgs...), args...)
	if err := libvlc.Init(flags...); err != nil {
		return nil, fmt.Errorf("libvlc init failed: %w", err)
	}

	p, err := libvlc.NewPlayer()
	if err != nil {
		libvlc.Release()
		return nil, fmt.Errorf("player creation failed: %w", err)
	}

	e := &Engine{
		player: p,
		events: make(chan player.Event, eventBuffer),
	}

	manager, err := p.EventManager()
	if err != nil {
		e.Release()
		return nil, fmt.Errorf("event manager: %w", err)
	}
	e.manager = manager

	for _, ev := range []libvlc.Event{libvlc.MediaPlayerEndReached, libvlc.MediaPlayerEncounteredError} {
		id, err := manager.Attach(ev, e.onEvent, nil)
		if err != nil {
			e.Release()
			return nil, fmt.Errorf("attach event %d: %w", ev, err)
		}
		e.eventIDs = append(e.eventIDs, id)
	}

	log.Printf("[vlc] libVLC %s initialized", libvlc.Version())
	return e, nil
}

// onEvent runs on a libVLC thread. libVLC must not be called from here, so
// the event is only forwarded to the player's loop, tagged with the media
// that was loaded when it fired.
func (e *Engine) onEvent(ev libvlc.Event, _ interface{}) {
	e.mu.Lock()
	uri := e.uri
	e.mu.Unlock()

	var out player.Event
	switch ev {
	case libvlc.MediaPlayerEndReached:
		out = player.Event{Kind: player.EndOfStream, URI: uri}
	case libvlc.MediaPlayerEncounteredError:
		out = player.Event{Kind: player.Error, URI: uri, Err: fmt.Errorf("libvlc could not play %s", uri)}
	default:
		return
	}

	select {
	case e.events <- out:
	default:
		log.Printf("[vlc] event queue full, dropping %s", out.Kind)
	}
}

func (e *Engine) Load(uri string) error {
	e.mu.Lock()
	e.uri = uri
	e.mu.Unlock()

	if _, err := e.player.LoadMediaFromURL(uri); err != nil {
		return fmt.Errorf("load media: %w", err)
	}
	return nil
}

func (e *Engine) Play() error {
	return e.player.Play()
}

func (e *Engine) Pause() error {
	return e.player.SetPause(true)
}

func (e *Engine) Playing() bool {
	return e.player.IsPlaying()
}

func (e *Engine) Volume() (float64, error) {
	v, err := e.player.Volume()
	if err != nil {
		return 0, err
	}
	return fromLibVLCVolume(v), nil
}

func (e *Engine) SetVolume(v float64) error {
	return e.player.SetVolume(toLibVLCVolume(v))
}

func (e *Engine) Position() (time.Duration, error) {
	ms, err := e.player.MediaTime()
	if err != nil {
		return 0, err
	}
	if ms < 0 {
		return 0, fmt.Errorf("position unavailable")
	}
	return fromMillis(ms), nil
}

func (e *Engine) Seek(pos time.Duration) error {
	return e.player.SetMediaTime(toMillis(pos))
}

func (e *Engine) Events() <-chan player.Event {
	return e.events
}

func (e *Engine) Stop() error {
	return e.player.Stop()
}

// Release detaches event handlers and frees the player and libVLC.
func (e *Engine) Release() {
	e.mu.Lock()
	if e.released {
		e.mu.Unlock()
		return
	}
	e.released = true
	e.mu.Unlock()

	if e.manager != nil && len(e.eventIDs) > 0 {
		e.manager.Detach(e.eventIDs...)
	}
	if e.player != nil {
		e.player.Stop()
		e.player.Release()
	}
	libvlc.Release()
	log.Println("[vlc] released")
}

// Version initializes libVLC just long enough to report its version.
func Version() (string, error) {
	if err := libvlc.Init("--quiet"); err != nil {
		return "", fmt.Errorf("libvlc init failed: %w", err)
	}
	defer libvlc.Release()
	return libvlc.Version().String(), nil
}
