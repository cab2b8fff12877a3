//go:build !cgo

package vlc

import (
	"time"

	"cliplayer/internal/player"
)

// Engine is a placeholder in builds without cgo; New always fails.
type Engine struct{}

// New reports ErrUnavailable.
func New(args []string) (*Engine, error) {
	return nil, ErrUnavailable
}

func (e *Engine) Load(uri string) error { return ErrUnavailable }
func (e *Engine) Play() error { return ErrUnavailable }
func (e *Engine) Pause() error { return ErrUnavailable }
func (e *Engine) Playing() bool { return false }
func (e *Engine) Volume() (float64, error) { return 0, ErrUnavailable }
func (e *Engine) SetVolume(v float64) error { return ErrUnavailable }
func (e *Engine) Position() (time.Duration, error) { return 0, ErrUnavailable }
func (e *Engine) Seek(pos time.Duration) error { return ErrUnavailable }
func (e *Engine) Events() <-chan player.Event { return nil }
func (e *Engine) Stop() error { return ErrUnavailable }
func (e *Engine) Release() {}

// Version reports ErrUnavailable.
func Version() (string, error) {
	return "", ErrUnavailable
}
