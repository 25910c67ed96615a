// Package server serves deskfolio sessions over SSH.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/wish/v2"
	"charm.land/wish/v2/bubbletea"
	"charm.land/wish/v2/logging"
	"github.com/Gaurav-Gosain/deskfolio/internal/sound"
	"github.com/charmbracelet/ssh"
	"github.com/google/uuid"
)

const shutdownTimeout = 5 * time.Second

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	Host    string
	Port    string
	KeyPath string
}

// DefaultHostKeyPath is where the host key lives when none is given.
func DefaultHostKeyPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".ssh", "deskfolio_host_key"), nil
}

// StartSSHServer serves a desktop to every SSH connection until ctx is done.
func StartSSHServer(ctx context.Context, cfg *SSHServerConfig, sessions *Sessions) error {
	hostKeyPath := cfg.KeyPath
	if hostKeyPath == "" {
		var err error
		if hostKeyPath, err = DefaultHostKeyPath(); err != nil {
			return err
		}
	}

	server, err := wish.NewServer(
		wish.WithAddress(net.JoinHostPort(cfg.Host, cfg.Port)),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(teaHandler(sessions)),
			logging.Middleware(),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create SSH server: %w", err)
	}

	logger := sessions.Logger
	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting SSH server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("SSH server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down SSH server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// teaHandler creates a desktop for each SSH session.
func teaHandler(sessions *Sessions) bubbletea.Handler {
	return func(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
		pty, _, active := sshSession.Pty()
		if !active {
			sessions.Logger.Warn("rejecting session without a pty", "user", sshSession.User())
			return nil, nil
		}

		id := uuid.New().String()
		sessions.Logger.Info("session started",
			"session", id[:8],
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr(),
			"size", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height),
		)

		desktop := sessions.Desktop(id, pty.Window.Width, pty.Window.Height, sound.NewBell(sshSession.Stderr()))
		return desktop, ProgramOptions()
	}
}
