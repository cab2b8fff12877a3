// Package playlist turns command-line arguments and playlist files into an
// ordered list of playable URIs, tracks the current position in that list,
// and watches playlist sources for live changes.
package playlist

import (
	"errors"
	"slices"
)

// ErrEmpty is returned when a source yields no playable entries.
var ErrEmpty = errors.New("playlist is empty or failed to load")

// Playlist is an ordered list of URIs with a cursor on the current track.
// It is not safe for concurrent use; the player's event loop owns it.
type Playlist struct {
	uris  []string
	index int
}

// New returns a playlist positioned on the first entry.
func New(uris []string) (*Playlist, error) {
	if len(uris) == 0 {
		return nil, ErrEmpty
	}
	return &Playlist{uris: slices.Clone(uris)}, nil
}

// Len returns the number of entries.
func (p *Playlist) Len() int { return len(p.uris) }

// Index returns the zero-based position of the current entry.
func (p *Playlist) Index() int { return p.index }

// Current returns the URI of the current entry.
func (p *Playlist) Current() string { return p.uris[p.index] }

// URIs returns a copy of all entries.
func (p *Playlist) URIs() []string { return slices.Clone(p.uris) }

// Next moves to the following entry. It reports false at the last entry.
func (p *Playlist) Next() bool {
	if p.index+1 >= len(p.uris) {
		return false
	}
	p.index++
	return true
}

// Previous moves to the preceding entry. It reports false at the first entry.
func (p *Playlist) Previous() bool {
	if p.index == 0 {
		return false
	}
	p.index--
	return true
}

// Advance moves past the current entry after it finished playing. With loop
// set, the last entry wraps around to the first.
func (p *Playlist) Advance(loop bool) bool {
	if p.Next() {
		return true
	}
	if loop {
		p.index = 0
		return true
	}
	return false
}

// Replace swaps in a reloaded list. The cursor follows the current URI if it
// survived the reload and is clamped to the new bounds otherwise.
func (p *Playlist) Replace(uris []string) error {
	if len(uris) == 0 {
		return ErrEmpty
	}
	current := p.Current()
	p.uris = slices.Clone(uris)
	if i := slices.Index(p.uris, current); i >= 0 {
		p.index = i
		return nil
	}
	p.index = min(p.index, len(p.uris)-1)
	return nil
}
