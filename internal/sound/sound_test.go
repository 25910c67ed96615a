package sound_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/Gaurav-Gosain/deskfolio/internal/sound"
	"github.com/charmbracelet/log"
)

type failingPlayer struct{ calls int }

func (f *failingPlayer) Play(sound.Effect) error {
	f.calls++
	return errors.New("no audio device")
}

type panickingPlayer struct{}

func (panickingPlayer) Play(sound.Effect) error { panic("driver crashed") }

func TestBellRingsForAudibleEffects(t *testing.T) {
	var buf bytes.Buffer
	bell := sound.NewBell(&buf)

	for _, e := range []sound.Effect{sound.Startup, sound.Open, sound.Close, sound.Minimize, sound.Shutdown} {
		if err := bell.Play(e); err != nil {
			t.Fatalf("Play(%v): %v", e, err)
		}
	}
	if got := buf.String(); got != "\a\a\a" {
		t.Errorf("got %q, want three bells", got)
	}
}

func TestCmdSwallowsFailures(t *testing.T) {
	logger := log.New(io.Discard)

	f := &failingPlayer{}
	if msg := sound.Cmd(f, sound.Open, logger)(); msg != nil {
		t.Errorf("expected nil message, got %v", msg)
	}
	if f.calls != 1 {
		t.Errorf("expected one attempt, got %d", f.calls)
	}

	if msg := sound.Cmd(panickingPlayer{}, sound.Close, logger)(); msg != nil {
		t.Errorf("expected nil message, got %v", msg)
	}
	sound.Play(panickingPlayer{}, sound.Close, nil)
}

func TestCmdWithoutPlayer(t *testing.T) {
	if sound.Cmd(nil, sound.Open, nil) != nil {
		t.Error("expected no command without a player")
	}
	if err := (sound.Nop{}).Play(sound.Open); err != nil {
		t.Error(err)
	}
}
