// @lixen: #focus{sys[term,display]}
// Package display provides the terminal surfaces frames are played onto.
package display

import (
	"io"
	"os"

	"github.com/lixenwraith/vidascii/render"
	"github.com/lixenwraith/vidascii/terminal"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

// ANSI writes each frame to a stream after clearing the screen
type ANSI struct {
	w      io.Writer
	fd     int
	tty    bool
	buf    []byte
	done   chan struct{}
	closed bool
}

// NewANSI wraps w; the cursor is hidden while w is a terminal
func NewANSI(w io.Writer) *ANSI {
	a := &ANSI{
		w:    w,
		fd:   -1,
		done: make(chan struct{}),
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		a.fd = int(f.Fd())
		a.tty = true
		io.WriteString(w, terminal.SeqCursorHide)
	}
	return a
}

// CheckWidth warns when the terminal is narrower than cols
// Returns the terminal width, or 0 when w is not a terminal
func (a *ANSI) CheckWidth(cols int) int {
	if !a.tty {
		return 0
	}
	width, height, err := term.GetSize(a.fd)
	if err != nil {
		logrus.WithError(err).Debug("Terminal size unavailable")
		return 0
	}
	if width < cols {
		logrus.WithFields(logrus.Fields{
			"columns":  cols,
			"terminal": width,
		}).Warn("Terminal narrower than frame, rows will wrap")
	}
	logrus.WithFields(logrus.Fields{"width": width, "height": height}).Debug("Terminal size")
	return width
}

// Show clears the screen and writes the frame in one write
func (a *ANSI) Show(tf render.TextFrame) error {
	a.buf = append(a.buf[:0], terminal.SeqClear...)
	for _, row := range tf.Rows() {
		a.buf = append(a.buf, row...)
		a.buf = append(a.buf, '\n')
	}
	_, err := a.w.Write(a.buf)
	return err
}

// Done never fires; the plain stream has no input of its own
func (a *ANSI) Done() <-chan struct{} { return a.done }

// Close restores the cursor and attributes
func (a *ANSI) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	if !a.tty {
		return nil
	}
	_, err := io.WriteString(a.w, terminal.SeqReset+terminal.SeqCursorShow)
	return err
}
