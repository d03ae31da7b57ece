// @lixen: #focus{sys[term,display]}
package display

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/vidascii/render"
	"github.com/lixenwraith/vidascii/terminal"
	"github.com/sirupsen/logrus"
)

// Screen plays frames on a full-screen tcell surface
// q, Esc and Ctrl-C close Done
type Screen struct {
	screen tcell.Screen
	done   chan struct{}
	quit   sync.Once
	fini   sync.Once
	polled chan struct{}
}

// NewScreen takes over the controlling terminal
func NewScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	return newScreen(s)
}

func newScreen(s tcell.Screen) (*Screen, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	s.HideCursor()
	s.Clear()

	sc := &Screen{
		screen: s,
		done:   make(chan struct{}),
		polled: make(chan struct{}),
	}
	go sc.poll()
	return sc, nil
}

// poll runs until Fini makes PollEvent return nil
func (s *Screen) poll() {
	defer close(s.polled)
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
				(ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q')) {
				logrus.Debug("Playback interrupted from keyboard")
				s.quit.Do(func() { close(s.done) })
			}
		case *tcell.EventResize:
			s.screen.Sync()
		}
	}
}

// Show draws the frame from the top-left corner, clipped to the screen
func (s *Screen) Show(tf render.TextFrame) error {
	s.screen.Clear()
	w, h := s.screen.Size()

	for y, row := range tf.Rows() {
		if y >= h {
			break
		}
		cells, err := terminal.ParseSGRRow(row)
		if err != nil {
			return fmt.Errorf("row %d: %w", y, err)
		}
		for x, c := range cells {
			if x >= w {
				break
			}
			style := tcell.StyleDefault
			if c.Colored {
				style = style.Foreground(tcell.NewRGBColor(int32(c.Fg.R), int32(c.Fg.G), int32(c.Fg.B)))
			}
			s.screen.SetContent(x, y, c.Rune, nil, style)
		}
	}

	s.screen.Show()
	return nil
}

// Done closes on a quit key
func (s *Screen) Done() <-chan struct{} { return s.done }

// Close restores the terminal and waits for the event poller to exit
func (s *Screen) Close() error {
	s.fini.Do(func() {
		s.screen.Fini()
		<-s.polled
	})
	return nil
}
