// Package system reports whether the host can run the player: libVLC
// availability, terminal capabilities and the configuration in use.
package system

import (
	"log"
	"os"
	"os/exec"
	"runtime"

	"golang.org/x/term"
)

var lookPath = exec.LookPath

// HealthStatus represents the current environment snapshot.
type HealthStatus struct {
	LibVLCVersion  string
	LibVLCError    string
	VLCBinary      string
	StdinTerminal  bool
	StdoutTerminal bool
	ConfigFile     string
	OS             string
	Arch           string
}

// Ready reports whether playback with keyboard control is possible.
func (s HealthStatus) Ready() bool {
	return s.LibVLCError == "" && s.StdinTerminal
}

// ProbeFunc returns the libVLC version or why it cannot be loaded.
type ProbeFunc func() (string, error)

// RunHealthCheck performs a full environment snapshot.
func RunHealthCheck(probe ProbeFunc, configFile string) HealthStatus {
	status := HealthStatus{
		StdinTerminal:  term.IsTerminal(int(os.Stdin.Fd())),
		StdoutTerminal: term.IsTerminal(int(os.Stdout.Fd())),
		ConfigFile:     configFile,
		OS:             runtime.GOOS,
		Arch:           runtime.GOARCH,
		VLCBinary:      FindVLC(),
	}

	if version, err := probe(); err == nil {
		status.LibVLCVersion = version
	} else {
		status.LibVLCError = err.Error()
		log.Printf("[system] health: libvlc error: %v", err)
	}

	log.Printf("[system] health: libvlc=%q stdin_tty=%v stdout_tty=%v",
		status.LibVLCVersion, status.StdinTerminal, status.StdoutTerminal)

	return status
}

// FindVLC locates a VLC executable. Its presence usually means the libVLC
// runtime and plugins are installed too. It returns "" when none is found.
func FindVLC() string {
	for _, name := range []string{"cvlc", "vlc"} {
		if path, err := lookPath(name); err == nil {
			return path
		}
	}

	var candidates []string
	switch runtime.GOOS {
	case "windows":
		candidates = []string{
			`C:\Program Files\VideoLAN\VLC\vlc.exe`,
			`C:\Program Files (x86)\VideoLAN\VLC\vlc.exe`,
		}
	case "darwin":
		candidates = []string{
			"/Applications/VLC.app/Contents/MacOS/VLC",
		}
	default:
		candidates = []string{
			"/usr/bin/cvlc",
			"/usr/bin/vlc",
			"/snap/bin/vlc",
		}
	}

	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}
