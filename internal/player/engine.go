// Package player drives sequential playback of a playlist through an
// Engine and maps single keystrokes onto transport commands.
package player

import "time"

// Engine is the media pipeline the player controls. Decoding, clock
// synchronisation and rendering all happen behind it.
//
// Implementations deliver asynchronous notifications on Events and must not
// block the caller of any other method on them.
type Engine interface {
	// Load replaces the current media with uri without starting it.
	Load(uri string) error
	Play() error
	Pause() error
	Playing() bool
	// Volume and SetVolume use a linear 0.0-1.0 scale.
	Volume() (float64, error)
	SetVolume(v float64) error
	Position() (time.Duration, error)
	Seek(pos time.Duration) error
	Events() <-chan Event
	Stop() error
	Release()
}

// EventKind identifies an asynchronous engine notification.
type EventKind int

const (
	EndOfStream EventKind = iota
	Error
)

func (k EventKind) String() string {
	switch k {
	case EndOfStream:
		return "end-of-stream"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Event is emitted by an Engine. Err is set for Error events. URI names the
// media the event belongs to; engines that cannot tell leave it empty.
type Event struct {
	Kind EventKind
	URI  string
	Err  error
}
