package server

import (
	"io"
	"sync"
	"sync/atomic"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/deskfolio/internal/app"
	"github.com/Gaurav-Gosain/deskfolio/internal/catalog"
	"github.com/Gaurav-Gosain/deskfolio/internal/config"
	"github.com/Gaurav-Gosain/deskfolio/internal/input"
	"github.com/Gaurav-Gosain/deskfolio/internal/sound"
	"github.com/charmbracelet/log"
)

// Sessions builds one desktop per connection from shared settings. Every
// desktop gets its own window manager; only the catalog is shared. Replacing
// it wakes every running desktop, which then picks up the new catalog.
type Sessions struct {
	Settings    config.Settings
	Keys        *config.KeybindRegistry
	Logger      *log.Logger
	ConfigPath  string
	CatalogPath string

	catalog atomic.Pointer[catalog.Catalog]

	mu      sync.Mutex
	changed chan struct{}
}

// NewSessions creates a session factory serving cat. It installs the input
// handler once, before any session runs.
func NewSessions(settings config.Settings, keys *config.KeybindRegistry, cat *catalog.Catalog, logger *log.Logger) *Sessions {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	app.SetInputHandler(input.HandleInput)
	s := &Sessions{
		Settings: settings,
		Keys:     keys,
		Logger:   logger,
		changed:  make(chan struct{}),
	}
	s.SetCatalog(cat)
	return s
}

// SetCatalog replaces the catalog of new and running sessions.
func (s *Sessions) SetCatalog(c *catalog.Catalog) {
	if c == nil {
		c = catalog.Default()
	}
	s.catalog.Store(c)

	s.mu.Lock()
	close(s.changed)
	s.changed = make(chan struct{})
	s.mu.Unlock()
}

// Catalog returns the current catalog.
func (s *Sessions) Catalog() *catalog.Catalog {
	return s.catalog.Load()
}

// Changed returns a channel closed by the next SetCatalog.
func (s *Sessions) Changed() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.changed
}

// Desktop creates the model for one session.
func (s *Sessions) Desktop(id string, width, height int, player sound.Player) *app.Desktop {
	d := app.New(app.Options{
		Settings:      s.Settings,
		Keys:          s.Keys,
		CatalogSource: s,
		Logger:        s.Logger,
		Player:        player,
		SessionID:     id,
		ConfigPath:    s.ConfigPath,
		CatalogPath:   s.CatalogPath,
	})
	d.Width = width
	d.Height = height
	return d
}

// ProgramOptions are the options every remote session runs with.
func ProgramOptions() []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithFPS(config.RemoteFPS),
	}
}
