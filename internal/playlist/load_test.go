package playlist

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cliplayer/internal/media"
)

// tempDir returns a temp directory with symlinks resolved, matching the
// paths the loader produces.
func tempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

// TestLoadFileNormalizesEntries covers remote pass-through, relative and
// absolute paths, comments, blank lines and missing files.
func TestLoadFileNormalizesEntries(t *testing.T) {
	dir := tempDir(t)
	os.Mkdir(filepath.Join(dir, "music"), 0755)
	writeFile(t, filepath.Join(dir, "music", "one.mp3"), "x")
	writeFile(t, filepath.Join(dir, "two file.ogg"), "x")

	list := strings.Join([]string{
		"#EXTM3U",
		"music/one.mp3",
		"",
		"   ",
		"http://radio.example/stream",
		"missing.mp3",
		filepath.Join(dir, "two file.ogg") + "\r",
		"rtsp://camera.local/live",
		"https://example.com/a.mp4",
		"file:///already/a/uri.mkv",
	}, "\n")
	path := filepath.Join(dir, "list.txt")
	writeFile(t, path, list)

	got, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	expected := []string{
		media.FileURI(filepath.Join(dir, "music", "one.mp3")),
		"http://radio.example/stream",
		media.FileURI(filepath.Join(dir, "two file.ogg")),
		"rtsp://camera.local/live",
		"https://example.com/a.mp4",
		"file:///already/a/uri.mkv",
	}
	if len(got) != len(expected) {
		t.Fatalf("expected %d entries, got %d: %v", len(expected), len(got), got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("index %d: expected %s, got %s", i, expected[i], got[i])
		}
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatal("expected error for missing playlist")
	}
}

// TestLoadFileLongLines checks that lines past bufio's default token size
// are skipped without losing the rest of the playlist.
func TestLoadFileLongLines(t *testing.T) {
	dir := tempDir(t)
	writeFile(t, filepath.Join(dir, "a.mp4"), "x")
	writeFile(t, filepath.Join(dir, "b.mp4"), "x")

	long := strings.Repeat("x", 100*1024)
	list := strings.Join([]string{
		"a.mp4",
		"#EXTINF:-1," + long,
		long + ".mp4",
		"b.mp4",
	}, "\n")
	path := filepath.Join(dir, "list.m3u")
	writeFile(t, path, list)

	got, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 ||
		got[0] != media.FileURI(filepath.Join(dir, "a.mp4")) ||
		got[1] != media.FileURI(filepath.Join(dir, "b.mp4")) {
		t.Fatalf("unexpected entries: %v", got)
	}
}

func TestResolveEmptyPlaylist(t *testing.T) {
	dir := tempDir(t)
	path := filepath.Join(dir, "empty.txt")
	writeFile(t, path, "\n\n# nothing\nmissing.mp4\n")

	if _, err := Resolve(path); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestResolveSingleFile(t *testing.T) {
	dir := tempDir(t)
	path := filepath.Join(dir, "clip.mp4")
	writeFile(t, path, "x")

	p, err := Resolve(path)
	if err != nil {
		t.Fatal(err)
	}
	if p.Len() != 1 || p.Current() != media.FileURI(path) {
		t.Fatalf("unexpected playlist: %v", p.URIs())
	}
}

// TestResolveSingleFileAnyExtension keeps files the engine may still play.
func TestResolveSingleFileAnyExtension(t *testing.T) {
	dir := tempDir(t)
	path := filepath.Join(dir, "recording.raw")
	writeFile(t, path, "x")

	p, err := Resolve(path)
	if err != nil {
		t.Fatal(err)
	}
	if p.Current() != media.FileURI(path) {
		t.Fatalf("unexpected uri %s", p.Current())
	}
}

func TestResolveInvalidPath(t *testing.T) {
	_, err := Resolve(filepath.Join(t.TempDir(), "does-not-exist.mp4"))
	if !errors.Is(err, ErrInvalidPath) {
		t.Fatalf("expected ErrInvalidPath, got %v", err)
	}
}

func TestResolveRemote(t *testing.T) {
	for _, uri := range []string{
		"https://example.com/video.mp4",
		// Remote playlists are a single stream for libVLC to expand.
		"https://example.com/live/list.m3u8",
		"http://radio.example/channels.txt",
	} {
		p, err := Resolve(uri)
		if err != nil {
			t.Fatalf("%s: %v", uri, err)
		}
		if p.Len() != 1 || p.Current() != uri {
			t.Fatalf("remote URI changed: %v", p.URIs())
		}
	}
}

// TestResolveDirectory verifies supported files are picked up, sorted, and
// that subdirectories and other files are ignored.
func TestResolveDirectory(t *testing.T) {
	dir := tempDir(t)
	for _, f := range []string{"charlie.mp4", "alpha.flac", "notes.md", "bravo.png"} {
		writeFile(t, filepath.Join(dir, f), "x")
	}
	os.Mkdir(filepath.Join(dir, "sub.mp4"), 0755)

	p, err := Resolve(dir)
	if err != nil {
		t.Fatal(err)
	}
	expected := []string{
		media.FileURI(filepath.Join(dir, "alpha.flac")),
		media.FileURI(filepath.Join(dir, "bravo.png")),
		media.FileURI(filepath.Join(dir, "charlie.mp4")),
	}
	got := p.URIs()
	if len(got) != len(expected) {
		t.Fatalf("expected %d files, got %d: %v", len(expected), len(got), got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("index %d: expected %s, got %s", i, expected[i], got[i])
		}
	}
}

func TestIsPlaylistFile(t *testing.T) {
	for _, s := range []string{"a.txt", "B.TXT", "list.m3u", "list.M3U8"} {
		if !IsPlaylistFile(s) {
			t.Errorf("IsPlaylistFile(%q) = false", s)
		}
	}
	for _, s := range []string{"a.mp4", "txt", "a.txt.mp3"} {
		if IsPlaylistFile(s) {
			t.Errorf("IsPlaylistFile(%q) = true", s)
		}
	}
}

func TestResolveSymlinkedEntry(t *testing.T) {
	dir := tempDir(t)
	target := filepath.Join(dir, "real.mp3")
	writeFile(t, target, "x")
	link := filepath.Join(dir, "link.mp3")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	p, err := Resolve(link)
	if err != nil {
		t.Fatal(err)
	}
	if p.Current() != media.FileURI(target) {
		t.Fatalf("expected symlink resolved to %s, got %s", media.FileURI(target), p.Current())
	}
}
