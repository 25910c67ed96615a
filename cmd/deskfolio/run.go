package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/deskfolio/internal/app"
	"github.com/Gaurav-Gosain/deskfolio/internal/catalog"
	"github.com/Gaurav-Gosain/deskfolio/internal/config"
	"github.com/Gaurav-Gosain/deskfolio/internal/input"
	"github.com/Gaurav-Gosain/deskfolio/internal/server"
	"github.com/Gaurav-Gosain/deskfolio/internal/sound"
	"github.com/Gaurav-Gosain/deskfolio/internal/theme"
	"github.com/Gaurav-Gosain/deskfolio/internal/web"
	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"golang.org/x/term"
)

const logRelativePath = "deskfolio/deskfolio.log"

// setup is everything a desktop needs, resolved from flags and files.
type setup struct {
	settings    config.Settings
	keys        *config.KeybindRegistry
	catalog     *catalog.Catalog
	configPath  string
	catalogPath string
}

func overrides() config.Overrides {
	return config.Overrides{
		Theme:        themeName,
		BorderStyle:  borderStyle,
		ASCIIOnly:    asciiOnly,
		HideClock:    hideClock,
		Clock24h:     clock24h,
		NoBootSplash: noBootSplash,
		Sound:        soundOn,
		Activation:   activation,
		CatalogPath:  catalogFile,
		Debug:        debugMode,
	}
}

// loadSetup resolves configuration, theme and catalog. A broken config file
// falls back to defaults with a warning; a broken catalog is an error.
func loadSetup(logger *log.Logger) (*setup, error) {
	var userConfig *config.UserConfig
	var err error
	configPath := configFile
	if configPath != "" {
		userConfig, err = config.LoadConfigFile(configPath)
	} else {
		configPath, _ = config.GetConfigPath()
		userConfig, err = config.LoadUserConfig()
	}
	if err != nil {
		logger.Warn("failed to load config, using defaults", "err", err)
		userConfig = config.DefaultConfig()
	}

	settings := config.ApplyOverrides(overrides(), userConfig)
	if !theme.Initialize(settings.Theme) {
		logger.Warn("unknown theme, using default", "theme", settings.Theme)
	}

	cat, catalogPath, err := catalog.LoadUser(settings.CatalogPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("configuration loaded", "config", configPath, "catalog", catalogPath)

	return &setup{
		settings:    settings,
		keys:        config.NewKeybindRegistry(userConfig),
		catalog:     cat,
		configPath:  configPath,
		catalogPath: catalogPath,
	}, nil
}

// newFileLogger logs to the xdg state directory when debugging; the terminal
// belongs to the desktop so nothing may be written to stderr.
func newFileLogger() (*log.Logger, func(), error) {
	if !debugMode {
		return log.New(io.Discard), func() {}, nil
	}
	path, err := xdg.StateFile(logRelativePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve log path: %w", err)
	}
	// #nosec G304 - path comes from xdg
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           log.DebugLevel,
		Prefix:          "deskfolio",
	})
	return logger, func() { _ = f.Close() }, nil
}

// newServerLogger logs to stderr for the SSH and web servers.
func newServerLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "deskfolio",
	})
	if debugMode {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// filterMouseMotion drops motion events that neither drag a window nor hover
// the start menu.
func filterMouseMotion(model tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.MouseMotionMsg); !ok {
		return msg
	}
	d, ok := model.(*app.Desktop)
	if !ok {
		return msg
	}
	if d.Drag != nil || d.StartMenuOpen {
		return msg
	}
	return nil
}

func runLocal(ctx context.Context) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("deskfolio needs a terminal; use `deskfolio ssh` or `deskfolio web` to serve it")
	}

	logger, closeLog, err := newFileLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	s, err := loadSetup(logger)
	if err != nil {
		return err
	}

	var player sound.Player
	if s.settings.Sound {
		player = sound.NewBell(os.Stderr)
	}

	app.SetInputHandler(input.HandleInput)
	desktop := app.New(app.Options{
		Settings:    s.settings,
		Keys:        s.keys,
		Catalog:     s.catalog,
		Logger:      logger,
		Player:      player,
		ConfigPath:  s.configPath,
		CatalogPath: s.catalogPath,
	})

	p := tea.NewProgram(
		desktop,
		tea.WithFPS(config.NormalFPS),
		tea.WithoutSignalHandler(),
		tea.WithFilter(filterMouseMotion),
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if s.catalogPath != "" {
		err := catalog.Watch(ctx, s.catalogPath, func(c *catalog.Catalog, err error) {
			p.Send(app.CatalogReloadMsg{Catalog: c, Err: err})
		})
		if err != nil {
			logger.Warn("catalog reload disabled", "err", err)
		}
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			p.Send(tea.QuitMsg{})
		case <-ctx.Done():
		}
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

// newSessions builds the shared session factory for the servers and keeps
// its catalog in sync with the file on disk.
func newSessions(ctx context.Context, logger *log.Logger) (*server.Sessions, error) {
	s, err := loadSetup(logger)
	if err != nil {
		return nil, err
	}
	sessions := server.NewSessions(s.settings, s.keys, s.catalog, logger)
	sessions.ConfigPath = s.configPath
	sessions.CatalogPath = s.catalogPath

	if s.catalogPath != "" {
		err := catalog.Watch(ctx, s.catalogPath, func(c *catalog.Catalog, err error) {
			if err != nil {
				logger.Error("catalog reload failed", "err", err)
				return
			}
			sessions.SetCatalog(c)
			logger.Info("catalog reloaded", "path", s.catalogPath)
		})
		if err != nil {
			logger.Warn("catalog reload disabled", "err", err)
		}
	}
	return sessions, nil
}

// signalContext is cancelled on interrupt or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func runSSHServer(ctx context.Context, host, port, keyPath string) error {
	logger := newServerLogger()
	ctx, cancel := signalContext(ctx)
	defer cancel()

	sessions, err := newSessions(ctx, logger)
	if err != nil {
		return err
	}

	cfg := &server.SSHServerConfig{Host: host, Port: port, KeyPath: keyPath}
	if err := server.StartSSHServer(ctx, cfg, sessions); err != nil {
		return fmt.Errorf("SSH server error: %w", err)
	}
	return nil
}

func runWebServer(ctx context.Context, host, port string, readOnly bool, maxConnections int) error {
	logger := newServerLogger()
	ctx, cancel := signalContext(ctx)
	defer cancel()

	sessions, err := newSessions(ctx, logger)
	if err != nil {
		return err
	}

	cfg := web.Config{
		Host:           host,
		Port:           port,
		ReadOnly:       readOnly,
		MaxConnections: maxConnections,
		Debug:          debugMode,
	}
	if err := web.Serve(ctx, cfg, sessions); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("web server error: %w", err)
	}
	return nil
}
