// Package sound plays the desktop's UI sounds. Playback is best effort: a
// failing player is logged and otherwise ignored.
package sound

import (
	"io"
	"sync"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/log"
)

// Effect is a UI sound.
type Effect int

const (
	Startup Effect = iota
	Open
	Close
	Minimize
	Maximize
	Shutdown
)

func (e Effect) String() string {
	switch e {
	case Startup:
		return "startup"
	case Open:
		return "open"
	case Close:
		return "close"
	case Minimize:
		return "minimize"
	case Maximize:
		return "maximize"
	case Shutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// Player plays an effect.
type Player interface {
	Play(Effect) error
}

// Nop plays nothing.
type Nop struct{}

// Play implements Player.
func (Nop) Play(Effect) error { return nil }

// Bell rings the terminal bell for the effects a terminal can express.
type Bell struct {
	mu sync.Mutex
	w  io.Writer
}

// NewBell rings on w, usually the terminal or SSH session.
func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

// Play implements Player.
func (b *Bell) Play(e Effect) error {
	switch e {
	case Startup, Open, Shutdown:
	default:
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	_, err := io.WriteString(b.w, "\a")
	return err
}

// Cmd plays e off the update loop. Errors and panics from the player are
// logged at debug level and never reach the caller.
func Cmd(p Player, e Effect, logger *log.Logger) tea.Cmd {
	if p == nil {
		return nil
	}
	return func() tea.Msg {
		Play(p, e, logger)
		return nil
	}
}

// Play runs the player synchronously, swallowing failures.
func Play(p Player, e Effect, logger *log.Logger) {
	defer func() {
		if r := recover(); r != nil && logger != nil {
			logger.Debug("sound player panicked", "effect", e, "panic", r)
		}
	}()
	if err := p.Play(e); err != nil && logger != nil {
		logger.Debug("sound failed", "effect", e, "err", err)
	}
}
