package playlist

import (
	"errors"
	"testing"
)

func mustNew(t *testing.T, uris ...string) *Playlist {
	t.Helper()
	p, err := New(uris)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestNewRejectsEmpty(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

// TestNextPreviousBounds verifies navigation never leaves the list.
func TestNextPreviousBounds(t *testing.T) {
	p := mustNew(t, "a", "b", "c")

	if p.Previous() {
		t.Fatal("Previous at first entry should report false")
	}
	if !p.Next() || !p.Next() {
		t.Fatal("expected two successful Next calls")
	}
	if p.Current() != "c" {
		t.Fatalf("expected c, got %s", p.Current())
	}
	if p.Next() {
		t.Fatal("Next at last entry should report false")
	}
	if p.Index() != 2 {
		t.Fatalf("index moved past the end: %d", p.Index())
	}
	if !p.Previous() || p.Current() != "b" {
		t.Fatalf("expected b after Previous, got %s", p.Current())
	}
}

func TestAdvanceStopsOrWraps(t *testing.T) {
	p := mustNew(t, "a", "b")

	if !p.Advance(false) || p.Current() != "b" {
		t.Fatal("expected to advance to b")
	}
	if p.Advance(false) {
		t.Fatal("Advance past the last entry without loop should report false")
	}
	if !p.Advance(true) || p.Current() != "a" {
		t.Fatalf("expected loop to wrap to a, got %s", p.Current())
	}
}

func TestSingleEntry(t *testing.T) {
	p := mustNew(t, "only")
	if p.Next() || p.Previous() || p.Advance(false) {
		t.Fatal("single entry playlist should not move")
	}
	if !p.Advance(true) || p.Current() != "only" {
		t.Fatal("looping a single entry should replay it")
	}
}

func TestReplaceFollowsCurrent(t *testing.T) {
	p := mustNew(t, "a", "b", "c")
	p.Next() // b

	if err := p.Replace([]string{"x", "y", "b"}); err != nil {
		t.Fatal(err)
	}
	if p.Index() != 2 || p.Current() != "b" {
		t.Fatalf("expected cursor on b at 2, got %s at %d", p.Current(), p.Index())
	}
}

func TestReplaceClampsWhenCurrentRemoved(t *testing.T) {
	p := mustNew(t, "a", "b", "c")
	p.Next()
	p.Next() // c

	if err := p.Replace([]string{"x"}); err != nil {
		t.Fatal(err)
	}
	if p.Index() != 0 || p.Current() != "x" {
		t.Fatalf("expected clamp to x at 0, got %s at %d", p.Current(), p.Index())
	}
}

func TestReplaceRejectsEmpty(t *testing.T) {
	p := mustNew(t, "a")
	if err := p.Replace(nil); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
	if p.Current() != "a" {
		t.Fatal("rejected replace must keep the old contents")
	}
}

func TestURIsReturnsCopy(t *testing.T) {
	p := mustNew(t, "a", "b")
	got := p.URIs()
	got[0] = "mutated"
	if p.Current() != "a" {
		t.Fatal("URIs must not expose internal storage")
	}
}
