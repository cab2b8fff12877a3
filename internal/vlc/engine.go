// Package vlc implements the player's media engine on top of libVLC.
// libVLC's media player does all demuxing, decoding, clock synchronisation
// and audio/video output; this package only adapts it to player.Engine.
// Builds without cgo cannot link libVLC and report ErrUnavailable.
package vlc

import (
	"errors"
	"math"
	"time"

	"cliplayer/internal/player"
)

// ErrUnavailable is returned when libVLC cannot be used in this build.
var ErrUnavailable = errors.New("libvlc unavailable: binary was built without cgo")

// defaultArgs are passed to libVLC before any user-supplied flags.
var defaultArgs = []string{
	"--no-video-title-show", // No filename overlay
	"--no-osd",              // Status goes to the terminal instead
	"--quiet",
}

// eventBuffer bounds the number of undelivered engine events.
const eventBuffer = 16

var _ player.Engine = (*Engine)(nil)

// toLibVLCVolume maps the player's 0.0-1.0 scale onto libVLC's 0-100.
func toLibVLCVolume(v float64) int {
	return int(math.Round(min(max(v, 0), 1) * 100))
}

func fromLibVLCVolume(v int) float64 {
	return float64(v) / 100
}

func toMillis(d time.Duration) int {
	return int(d / time.Millisecond)
}

func fromMillis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
