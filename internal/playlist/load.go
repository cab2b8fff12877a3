package playlist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cliplayer/internal/media"
)

// ErrInvalidPath is returned when a single media argument cannot be resolved.
var ErrInvalidPath = errors.New("invalid media path")

// playlistExts are the argument suffixes treated as playlist files.
var playlistExts = []string{".txt", ".m3u", ".m3u8"}

// IsPlaylistFile reports whether the argument names a playlist file.
func IsPlaylistFile(arg string) bool {
	lower := strings.ToLower(arg)
	for _, ext := range playlistExts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// Resolve turns the player's command-line argument into a playlist.
func Resolve(arg string) (*Playlist, error) {
	uris, err := Load(arg)
	if err != nil {
		return nil, err
	}
	return New(uris)
}

// Load returns the URIs described by arg: a playlist file, a remote URI, a
// media directory or a single media file.
func Load(arg string) ([]string, error) {
	if media.IsRemote(arg) {
		return []string{arg}, nil
	}
	if IsPlaylistFile(arg) {
		return LoadFile(arg)
	}

	abs, err := absolute(arg, "")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPath, arg)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPath, arg)
	}
	if info.IsDir() {
		return ScanDir(abs)
	}
	return []string{media.FileURI(abs)}, nil
}

// LoadFile reads a newline-delimited playlist. Blank lines and '#' comments
// are skipped, remote URIs are kept verbatim and filesystem paths (relative
// ones resolved against the playlist's directory) become file:// URIs.
// Entries that do not exist are dropped.
func LoadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open playlist: %w", err)
	}
	defer f.Close()

	base := filepath.Dir(path)
	var uris []string

	// Lines have no length limit; an oversized entry is skipped like any
	// other unresolvable path.
	r := bufio.NewReader(f)
	lineNo := 0
	for done := false; !done; {
		raw, err := r.ReadString('\n')
		switch {
		case errors.Is(err, io.EOF):
			done = true
		case err != nil:
			return nil, fmt.Errorf("read playlist: %w", err)
		}
		lineNo++
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if media.IsRemote(line) {
			uris = append(uris, line)
			continue
		}
		abs, err := absolute(line, base)
		if err != nil {
			log.Printf("[playlist] %s:%d: skipping %q: %v", path, lineNo, line, err)
			continue
		}
		uris = append(uris, media.FileURI(abs))
	}

	log.Printf("[playlist] loaded %d entries from %s", len(uris), path)
	return uris, nil
}

// ScanDir returns file:// URIs for the supported media files directly
// inside dir, sorted by name.
func ScanDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if media.IsSupported(entry.Name()) {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)

	uris := make([]string, len(files))
	for i, f := range files {
		uris[i] = media.FileURI(f)
	}

	log.Printf("[playlist] scanned %d media files in %s", len(uris), dir)
	return uris, nil
}

// absolute resolves p to an existing absolute path with symlinks evaluated.
// Relative paths are joined onto base when base is set.
func absolute(p, base string) (string, error) {
	if !filepath.IsAbs(p) && base != "" {
		p = filepath.Join(base, p)
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
