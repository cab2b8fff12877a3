// Package keyboard delivers single keystrokes from the controlling terminal
// without waiting for a newline.
package keyboard

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/muesli/cancelreader"
	"golang.org/x/term"
)

// Keyboard reads bytes from a file, switching it to raw mode when it is a
// terminal. Each byte read is forwarded on Keys.
type Keyboard struct {
	fd     int
	state  *term.State
	reader cancelreader.CancelReader
	keys   chan byte
	done   chan struct{}
	exited chan struct{}
	once   sync.Once
}

// Open starts reading keystrokes from f.
func Open(f *os.File) (*Keyboard, error) {
	k := &Keyboard{
		fd:     int(f.Fd()),
		keys:   make(chan byte, 16),
		done:   make(chan struct{}),
		exited: make(chan struct{}),
	}

	if term.IsTerminal(k.fd) {
		state, err := term.MakeRaw(k.fd)
		if err != nil {
			return nil, fmt.Errorf("raw mode: %w", err)
		}
		k.state = state
	}

	r, err := cancelreader.NewReader(f)
	if err != nil {
		k.restore()
		return nil, fmt.Errorf("input reader: %w", err)
	}
	k.reader = r

	go k.loop()
	return k, nil
}

// Keys returns the channel of keystrokes. It is closed when input ends or
// the keyboard is closed.
func (k *Keyboard) Keys() <-chan byte {
	return k.keys
}

// Raw reports whether the terminal was switched to raw mode.
func (k *Keyboard) Raw() bool {
	return k.state != nil
}

func (k *Keyboard) loop() {
	defer close(k.exited)
	defer close(k.keys)

	buf := make([]byte, 1)
	for {
		n, err := k.reader.Read(buf)
		if n == 1 {
			select {
			case k.keys <- buf[0]:
			case <-k.done:
				return
			}
		}
		if err != nil {
			if !errors.Is(err, cancelreader.ErrCanceled) && !errors.Is(err, io.EOF) {
				log.Printf("[keyboard] read error: %v", err)
			}
			return
		}
	}
}

// Close stops reading and restores the terminal state.
func (k *Keyboard) Close() error {
	var err error
	k.once.Do(func() {
		close(k.done)
		// The reader's descriptors stay open until the pending Read has
		// returned. Cancel reports false where reads cannot be interrupted.
		if k.reader.Cancel() {
			<-k.exited
		}
		err = k.reader.Close()
		k.restore()
	})
	return err
}

func (k *Keyboard) restore() {
	if k.state == nil {
		return
	}
	if err := term.Restore(k.fd, k.state); err != nil {
		log.Printf("[keyboard] restore terminal: %v", err)
	}
}

// Writer adapts w for output while the terminal is in raw mode, where the
// terminal no longer translates "\n" into "\r\n".
func (k *Keyboard) Writer(w io.Writer) io.Writer {
	if !k.Raw() {
		return w
	}
	return NewCRLFWriter(w)
}

// CRLFWriter rewrites bare line feeds as carriage return + line feed.
type CRLFWriter struct {
	w io.Writer
}

// NewCRLFWriter wraps w.
func NewCRLFWriter(w io.Writer) *CRLFWriter {
	return &CRLFWriter{w: w}
}

func (c *CRLFWriter) Write(p []byte) (int, error) {
	if bytes.IndexByte(p, '\n') < 0 {
		return c.w.Write(p)
	}
	out := bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))
	if _, err := c.w.Write(out); err != nil {
		return 0, err
	}
	return len(p), nil
}
