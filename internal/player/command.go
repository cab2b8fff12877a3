package player

// Command is a transport action triggered by a keystroke.
type Command int

const (
	None Command = iota
	TogglePause
	VolumeUp
	VolumeDown
	SeekForward
	SeekBackward
	NextTrack
	PreviousTrack
	Quit
)

var commandNames = map[Command]string{
	None:          "none",
	TogglePause:   "play/pause",
	VolumeUp:      "volume up",
	VolumeDown:    "volume down",
	SeekForward:   "seek forward",
	SeekBackward:  "seek backward",
	NextTrack:     "next track",
	PreviousTrack: "previous track",
	Quit:          "quit",
}

func (c Command) String() string {
	if s, ok := commandNames[c]; ok {
		return s
	}
	return "unknown"
}

// ctrlC arrives as a plain byte while the terminal is in raw mode.
const ctrlC = 0x03

// keyBindings maps keystrokes to commands.
var keyBindings = map[byte]Command{
	'p':   TogglePause,
	'+':   VolumeUp,
	'-':   VolumeDown,
	'f':   SeekForward,
	'r':   SeekBackward,
	'n':   NextTrack,
	'b':   PreviousTrack,
	'q':   Quit,
	ctrlC: Quit,
}

// ParseKey returns the command bound to key, or None.
func ParseKey(key byte) Command {
	return keyBindings[key]
}

// Help is the one-line key reference printed at startup.
const Help = "Keys: [p] play/pause  [+/-] volume  [f/r] seek  [n/b] next/previous  [q] quit"
