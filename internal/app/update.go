package app

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/deskfolio/internal/catalog"
	"github.com/Gaurav-Gosain/deskfolio/internal/config"
	"github.com/Gaurav-Gosain/deskfolio/internal/sound"
)

const sysinfoTimeout = 3 * time.Second

// ClockMsg updates the taskbar clock.
type ClockMsg time.Time

// BootDoneMsg ends the boot splash.
type BootDoneMsg struct{}

// ShutdownMsg quits after the shutdown screen has shown.
type ShutdownMsg struct{}

// CatalogReloadMsg carries a catalog reloaded from disk.
// This is exported so the catalog watcher can send it into a running program.
type CatalogReloadMsg struct {
	Catalog *catalog.Catalog
	Err     error
}

// catalogChangedMsg is delivered when the shared CatalogSource swaps catalogs.
type catalogChangedMsg struct {
	catalog *catalog.Catalog
}

// SysinfoMsg carries a fresh system snapshot for a sysinfo window.
type SysinfoMsg struct {
	ID   string
	Body string
	Err  error
}

// InputHandler is a function type that handles input messages.
// This allows the Update method to delegate to the input package without creating a circular dependency.
type InputHandler func(msg tea.Msg, d *Desktop) (tea.Model, tea.Cmd)

var inputHandler InputHandler

// SetInputHandler registers the input handler function.
// This must be called during initialization before the Update loop runs.
func SetInputHandler(handler InputHandler) {
	inputHandler = handler
}

// Init starts the boot splash and the clock.
func (m *Desktop) Init() tea.Cmd {
	cmds := []tea.Cmd{m.clockCmd()}
	if m.Booting {
		cmds = append(cmds, BootCmd())
	} else {
		m.playStartup()
	}
	cmds = append(cmds, m.watchCatalog(), m.flushSounds())
	return tea.Batch(cmds...)
}

// watchCatalog waits for the shared source to replace its catalog. The
// channel is taken now so a swap that lands before the command runs is not
// missed.
func (m *Desktop) watchCatalog() tea.Cmd {
	if m.source == nil || m.ShuttingDown {
		return nil
	}
	src := m.source
	changed := src.Changed()
	return func() tea.Msg {
		<-changed
		return catalogChangedMsg{catalog: src.Catalog()}
	}
}

func (m *Desktop) applyCatalog(c *catalog.Catalog) {
	if c == nil {
		return
	}
	m.Catalog = c
	if m.MenuSelection >= len(m.Catalog.StartMenu) {
		m.MenuSelection = 0
	}
	for _, rec := range m.WM.Windows() {
		m.ScrollWindow(rec.ID, 0)
	}
	m.LogInfo("catalog reloaded: %d icons", len(m.Catalog.Icons))
}

// BootCmd ends the boot splash after config.BootDuration.
func BootCmd() tea.Cmd {
	return tea.Tick(config.BootDuration, func(time.Time) tea.Msg {
		return BootDoneMsg{}
	})
}

// clockCmd ticks on the next minute boundary so the clock flips on time.
func (m *Desktop) clockCmd() tea.Cmd {
	return tea.Tick(untilNextTick(m.clock(), config.ClockInterval), func(t time.Time) tea.Msg {
		return ClockMsg(t)
	})
}

func untilNextTick(now time.Time, interval time.Duration) time.Duration {
	next := now.Truncate(interval).Add(interval)
	return next.Sub(now)
}

// FinishBoot leaves the boot splash early or on schedule.
func (m *Desktop) FinishBoot() {
	if !m.Booting {
		return
	}
	m.Booting = false
	m.LogInfo("boot complete")
	m.playStartup()
}

func (m *Desktop) playStartup() {
	m.playSound(sound.Startup)
}

// Shutdown shows the shutdown screen and quits after config.ShutdownDelay.
func (m *Desktop) Shutdown() tea.Cmd {
	if m.ShuttingDown {
		return nil
	}
	m.ShuttingDown = true
	m.StartMenuOpen = false
	m.ShowHelp = false
	m.ShowLogs = false
	m.LogInfo("shutting down")
	m.playSound(sound.Shutdown)
	return tea.Tick(config.ShutdownDelay, func(time.Time) tea.Msg {
		return ShutdownMsg{}
	})
}

func (m *Desktop) sysinfoCmd(id string) tea.Cmd {
	collect := m.collect
	return func() tea.Msg {
		body, err := collect()
		return SysinfoMsg{ID: id, Body: body, Err: err}
	}
}

// Update handles all incoming messages and updates the desktop state.
func (m *Desktop) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := m.update(msg)
	return model, tea.Batch(cmd, m.flushSounds())
}

func (m *Desktop) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ClockMsg:
		m.Now = time.Time(msg)
		return m, m.clockCmd()

	case BootDoneMsg:
		m.FinishBoot()
		return m, nil

	case ShutdownMsg:
		return m, tea.Quit

	case SysinfoMsg:
		if msg.Err != nil {
			m.LogWarn("system information incomplete: %v", msg.Err)
		}
		if msg.Body != "" {
			m.dynamic[msg.ID] = msg.Body
		}
		m.ScrollWindow(msg.ID, 0)
		return m, nil

	case CatalogReloadMsg:
		if msg.Err != nil {
			m.LogError("catalog reload failed: %v", msg.Err)
			return m, nil
		}
		m.applyCatalog(msg.Catalog)
		return m, nil

	case catalogChangedMsg:
		if msg.catalog != m.Catalog {
			m.applyCatalog(msg.catalog)
		}
		return m, m.watchCatalog()

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.WM.Reflow(m.Viewport())
		for _, rec := range m.WM.Windows() {
			m.ScrollWindow(rec.ID, 0)
		}
		return m, nil

	case tea.KeyPressMsg, tea.MouseClickMsg, tea.MouseMotionMsg, tea.MouseReleaseMsg, tea.MouseWheelMsg:
		if inputHandler == nil {
			return m, nil
		}
		return inputHandler(msg, m)
	}
	return m, nil
}
