// Package web serves deskfolio sessions to the browser through sip.
package web

import (
	"context"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/deskfolio/internal/server"
	"github.com/Gaurav-Gosain/sip"
	"github.com/charmbracelet/colorprofile"
	"github.com/google/uuid"
)

// Config holds configuration for the web server.
type Config struct {
	Host           string
	Port           string
	ReadOnly       bool
	MaxConnections int
	Debug          bool
}

// DefaultConfig listens on localhost:7681.
func DefaultConfig() Config {
	return Config{Host: "localhost", Port: "7681"}
}

// Serve runs the web server until ctx is done. Browser sessions have no sound.
func Serve(ctx context.Context, cfg Config, sessions *server.Sessions) error {
	// stdout is not a TTY here, so lipgloss would otherwise strip all colors.
	lipgloss.Writer.Profile = colorprofile.TrueColor
	_ = os.Setenv("TERM", "xterm-256color")
	_ = os.Setenv("COLORTERM", "truecolor")

	sipConfig := sip.DefaultConfig()
	sipConfig.Host = cfg.Host
	sipConfig.Port = cfg.Port
	sipConfig.ReadOnly = cfg.ReadOnly
	sipConfig.MaxConnections = cfg.MaxConnections
	sipConfig.Debug = cfg.Debug

	sessions.Logger.Info("starting web server", "host", cfg.Host, "port", cfg.Port, "read_only", cfg.ReadOnly)
	return sip.NewServer(sipConfig).Serve(ctx, Handler(sessions))
}

// Handler creates a desktop for each browser session.
func Handler(sessions *server.Sessions) func(sip.Session) (tea.Model, []tea.ProgramOption) {
	return func(sess sip.Session) (tea.Model, []tea.ProgramOption) {
		pty := sess.Pty()
		id := uuid.New().String()
		sessions.Logger.Info("web session started", "session", id[:8], "width", pty.Width, "height", pty.Height)
		return sessions.Desktop(id, pty.Width, pty.Height, nil), server.ProgramOptions()
	}
}
