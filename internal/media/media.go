// Package media provides centralized media type detection and URI helpers
// for the player, distinguishing between video, audio and image content.
package media

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// Type represents the kind of media file.
type Type int

const (
	Unknown Type = iota
	Video
	Audio
	Image
)

func (t Type) String() string {
	switch t {
	case Video:
		return "video"
	case Audio:
		return "audio"
	case Image:
		return "image"
	default:
		return "unknown"
	}
}

// Video file extensions.
var videoExts = map[string]bool{
	".mp4":  true,
	".mkv":  true,
	".avi":  true,
	".mov":  true,
	".webm": true,
	".ts":   true,
	".m4v":  true,
	".hevc": true,
	".flv":  true,
	".wmv":  true,
	".mpg":  true,
	".mpeg": true,
	".ogv":  true,
}

// Audio file extensions.
var audioExts = map[string]bool{
	".mp3":  true,
	".flac": true,
	".ogg":  true,
	".oga":  true,
	".opus": true,
	".wav":  true,
	".m4a":  true,
	".aac":  true,
	".wma":  true,
	".aiff": true,
}

// Image file extensions.
var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".gif":  true,
	".webp": true,
}

// RemotePrefixes are the URI prefixes that are handed to the engine verbatim.
var RemotePrefixes = []string{"file://", "http://", "https://", "rtsp://"}

// Detect returns the media type for a path or URI based on its extension.
func Detect(s string) Type {
	if IsRemote(s) {
		if u, err := url.Parse(s); err == nil {
			s = u.Path
		}
	}
	ext := strings.ToLower(filepath.Ext(s))
	switch {
	case videoExts[ext]:
		return Video
	case audioExts[ext]:
		return Audio
	case imageExts[ext]:
		return Image
	}
	return Unknown
}

// IsSupported returns true if the file has a recognized media extension.
func IsSupported(path string) bool {
	return Detect(path) != Unknown
}

// IsRemote reports whether s already carries one of the RemotePrefixes.
func IsRemote(s string) bool {
	for _, p := range RemotePrefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// FileURI builds an escaped file:// URI from an absolute path.
func FileURI(abs string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String()
}

// DisplayName returns the unescaped base name of a URI for status output.
func DisplayName(uri string) string {
	u, err := url.Parse(uri)
	if err != nil || u.Path == "" {
		return uri
	}
	name := path.Base(u.Path)
	if name == "/" || name == "." {
		return uri
	}
	return name
}
