// Package app provides the deskfolio desktop model: icons, windows, taskbar
// and start menu on top of the window manager.
package app

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"charm.land/bubbles/v2/help"
	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/deskfolio/internal/catalog"
	"github.com/Gaurav-Gosain/deskfolio/internal/config"
	"github.com/Gaurav-Gosain/deskfolio/internal/sound"
	"github.com/Gaurav-Gosain/deskfolio/internal/sysinfo"
	"github.com/Gaurav-Gosain/deskfolio/internal/wm"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Desktop is the application state of one deskfolio session.
type Desktop struct {
	WM       *wm.Manager
	Catalog  *catalog.Catalog
	Settings config.Settings
	Keys     *config.KeybindRegistry

	// SessionID identifies the session in logs.
	SessionID string

	Width  int
	Height int

	Booting      bool
	ShuttingDown bool

	StartMenuOpen bool
	MenuSelection int

	ShowHelp bool
	ShowLogs bool

	// SelectedIcon is the id of the highlighted desktop icon.
	SelectedIcon string
	// LastClickID and LastClickTime track the previous click for
	// double-click detection on icons and title bars.
	LastClickID   string
	LastClickTime time.Time

	// Drag is the in-progress title bar drag, if any.
	Drag *wm.Drag

	// ConfigPath and CatalogPath are shown by the settings window.
	ConfigPath  string
	CatalogPath string

	LogMessages []LogMessage

	// Now is the time shown by the taskbar clock.
	Now time.Time

	scroll  map[string]int
	dynamic map[string]string
	sounds  []sound.Effect
	help    help.Model
	logger  *log.Logger
	player  sound.Player
	clock   func() time.Time
	collect func() (string, error)
	source  CatalogSource
}

// LogMessage represents a log entry with timestamp and level.
type LogMessage struct {
	Time    time.Time
	Level   string
	Message string
}

// CatalogSource is a catalog shared between desktops. Changed returns a
// channel that is closed when the catalog is replaced.
type CatalogSource interface {
	Catalog() *catalog.Catalog
	Changed() <-chan struct{}
}

// Options configures a new desktop.
type Options struct {
	Settings config.Settings
	Keys     *config.KeybindRegistry
	Catalog  *catalog.Catalog
	// CatalogSource, when set, supplies the catalog and pushes replacements
	// into the running desktop. It takes precedence over Catalog.
	CatalogSource CatalogSource
	Logger   *log.Logger
	// Player plays desktop sounds. Nil is silent.
	Player sound.Player

	SessionID   string
	ConfigPath  string
	CatalogPath string

	// Clock overrides time.Now.
	Clock func() time.Time
	// Sysinfo overrides the system snapshot shown by sysinfo windows.
	Sysinfo func() (string, error)
}

func createID() string {
	return uuid.New().String()
}

// New creates a desktop. Zero options give the default catalog, settings and
// keys.
func New(opts Options) *Desktop {
	if opts.CatalogSource != nil {
		opts.Catalog = opts.CatalogSource.Catalog()
	}
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	if opts.Keys == nil {
		opts.Keys = config.NewKeybindRegistry(config.DefaultConfig())
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Sysinfo == nil {
		opts.Sysinfo = collectSysinfo
	}
	if opts.SessionID == "" {
		opts.SessionID = createID()
	}
	if opts.Settings.Layout == (wm.Layout{}) {
		opts.Settings = config.DefaultSettings()
	}

	m := &Desktop{
		Catalog:     opts.Catalog,
		Settings:    opts.Settings,
		Keys:        opts.Keys,
		SessionID:   opts.SessionID,
		ConfigPath:  opts.ConfigPath,
		CatalogPath: opts.CatalogPath,
		Booting:     opts.Settings.BootSplash,
		scroll:      make(map[string]int),
		dynamic:     make(map[string]string),
		help:        help.New(),
		logger:      opts.Logger.With("session", shortID(opts.SessionID)),
		player:      opts.Player,
		clock:       opts.Clock,
		collect:     opts.Sysinfo,
		source:      opts.CatalogSource,
	}
	m.help.ShowAll = true
	m.Now = m.clock()
	m.WM = wm.New(
		wm.WithLayout(opts.Settings.Layout),
		wm.WithRetention(opts.Settings.Retention),
		wm.WithLogger(m.logger),
		wm.WithObserver(m.onWindowEvent),
	)
	return m
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Log adds a new log message to the log buffer and forwards it to the logger.
func (m *Desktop) Log(level, format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	m.LogMessages = append(m.LogMessages, LogMessage{
		Time:    m.clock(),
		Level:   level,
		Message: message,
	})
	if over := len(m.LogMessages) - config.MaxLogMessages; over > 0 {
		m.LogMessages = m.LogMessages[over:]
	}

	switch level {
	case "ERROR":
		m.logger.Error(message)
	case "WARN":
		m.logger.Warn(message)
	default:
		m.logger.Info(message)
	}
}

// LogInfo logs an informational message.
func (m *Desktop) LogInfo(format string, args ...any) {
	m.Log("INFO", format, args...)
}

// LogWarn logs a warning message.
func (m *Desktop) LogWarn(format string, args ...any) {
	m.Log("WARN", format, args...)
}

// LogError logs an error message.
func (m *Desktop) LogError(format string, args ...any) {
	m.Log("ERROR", format, args...)
}

func (m *Desktop) onWindowEvent(ev wm.Event) {
	m.LogInfo("window %s %s", ev.ID, ev.Type)
	switch ev.Type {
	case wm.EventOpened:
		m.playSound(sound.Open)
	case wm.EventClosed:
		delete(m.scroll, ev.ID)
		m.playSound(sound.Close)
	case wm.EventMinimized:
		m.playSound(sound.Minimize)
	case wm.EventMaximized:
		m.playSound(sound.Maximize)
	}
}

// playSound queues an effect for the next Update to play.
func (m *Desktop) playSound(e sound.Effect) {
	if m.player == nil || !m.Settings.Sound {
		return
	}
	m.sounds = append(m.sounds, e)
}

func (m *Desktop) flushSounds() tea.Cmd {
	if len(m.sounds) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(m.sounds))
	for _, e := range m.sounds {
		cmds = append(cmds, sound.Cmd(m.player, e, m.logger))
	}
	m.sounds = m.sounds[:0]
	return tea.Batch(cmds...)
}

// Viewport returns the viewport the window manager lays windows out in.
func (m *Desktop) Viewport() wm.Viewport {
	return wm.Viewport{
		Width:          m.Width,
		Height:         m.Height,
		ReservedBottom: config.TaskbarHeight,
	}
}

// Clock returns the current time as the desktop sees it.
func (m *Desktop) Clock() time.Time {
	return m.clock()
}

// OpenIcon opens the window backed by a catalog icon. Unknown ids are
// ignored.
func (m *Desktop) OpenIcon(id string) tea.Cmd {
	icon, ok := m.Catalog.Lookup(id)
	if !ok {
		m.LogWarn("no icon %q in catalog", id)
		return nil
	}
	m.StartMenuOpen = false
	m.SelectedIcon = icon.ID
	m.WM.Open(icon.ID, icon.Spawn(), m.Viewport())

	switch icon.Source {
	case catalog.SourceSysinfo:
		if _, ok := m.dynamic[icon.ID]; !ok {
			m.dynamic[icon.ID] = "# " + icon.Title + "\n\nGathering system information..."
		}
		return m.sysinfoCmd(icon.ID)
	case catalog.SourceSettings:
		m.dynamic[icon.ID] = m.settingsBody()
	}
	return nil
}

// OpenIconAt opens the n-th visible desktop icon, counting from zero.
func (m *Desktop) OpenIconAt(n int) tea.Cmd {
	icons := m.Catalog.DesktopIcons()
	if n < 0 || n >= len(icons) {
		return nil
	}
	return m.OpenIcon(icons[n].ID)
}

// CloseWindow closes a window.
func (m *Desktop) CloseWindow(id string) {
	m.endDragOn(id)
	m.WM.Close(id)
}

// MinimizeWindow minimizes a window.
func (m *Desktop) MinimizeWindow(id string) {
	m.endDragOn(id)
	m.WM.Minimize(id)
}

// ToggleMaximize maximizes or restores a window.
func (m *Desktop) ToggleMaximize(id string) {
	m.endDragOn(id)
	m.WM.ToggleMaximize(id, m.Viewport())
}

// FocusWindow raises a window, restoring it when minimized.
func (m *Desktop) FocusWindow(id string) {
	m.WM.Focus(id)
}

// CycleWindows moves focus through the open windows.
func (m *Desktop) CycleWindows(delta int) {
	m.StartMenuOpen = false
	m.WM.Cycle(delta)
}

// MoveActive shifts the active window by dx, dy cells.
func (m *Desktop) MoveActive(dx, dy int) {
	id, ok := m.WM.ActiveWindowID()
	if !ok {
		return
	}
	rec, _ := m.WM.Window(id)
	m.WM.Reposition(id, wm.Point{X: rec.Position.X + dx, Y: rec.Position.Y + dy}, m.Viewport())
}

func (m *Desktop) endDragOn(id string) {
	if m.Drag != nil && m.Drag.ID() == id {
		m.Drag.End()
		m.Drag = nil
	}
}

// ToggleStartMenu opens or closes the start menu.
func (m *Desktop) ToggleStartMenu() {
	m.StartMenuOpen = !m.StartMenuOpen
	m.MenuSelection = 0
}

// MoveMenuSelection moves the start menu highlight, wrapping around.
func (m *Desktop) MoveMenuSelection(delta int) {
	n := len(m.Catalog.StartMenu)
	if n == 0 {
		return
	}
	m.MenuSelection = ((m.MenuSelection+delta)%n + n) % n
}

// RunMenuItem runs the i-th start menu item and closes the menu.
func (m *Desktop) RunMenuItem(i int) tea.Cmd {
	m.StartMenuOpen = false
	if i < 0 || i >= len(m.Catalog.StartMenu) {
		return nil
	}
	item := m.Catalog.StartMenu[i]
	action := item.Parsed()
	m.LogInfo("start menu: %s", item.Label)
	switch action.Kind {
	case catalog.ActionOpen:
		return m.OpenIcon(action.Target)
	case catalog.ActionHelp:
		m.ShowHelp = true
	case catalog.ActionShutdown:
		return m.Shutdown()
	}
	return nil
}

// ScrollWindow scrolls a window's content by delta lines, clamped to the
// content.
func (m *Desktop) ScrollWindow(id string, delta int) {
	rec, ok := m.WM.Window(id)
	if !ok || !rec.Visible() {
		return
	}
	w, h := contentSize(rec)
	maxOffset := max(len(m.contentLines(rec, w))-h, 0)
	m.scroll[id] = min(max(m.scroll[id]+delta, 0), maxOffset)
}

// ScrollOffset returns how far a window's content is scrolled.
func (m *Desktop) ScrollOffset(id string) int {
	return m.scroll[id]
}

// PageSize returns the number of content rows a window shows.
func (m *Desktop) PageSize(id string) int {
	rec, ok := m.WM.Window(id)
	if !ok {
		return 0
	}
	_, h := contentSize(rec)
	return h
}

// Body returns the markup shown inside a window.
func (m *Desktop) Body(rec wm.Record) string {
	id, _ := rec.Content.(string)
	if body, ok := m.dynamic[id]; ok {
		return body
	}
	icon, ok := m.Catalog.Lookup(id)
	if !ok {
		return "# " + rec.Title + "\n\nThis file is no longer available."
	}
	return icon.Body
}

func collectSysinfo() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), sysinfoTimeout)
	defer cancel()
	snap, err := sysinfo.Collect(ctx)
	return snap.Body(), err
}

func (m *Desktop) settingsBody() string {
	s := m.Settings
	onOff := func(b bool) string {
		if b {
			return "on"
		}
		return "off"
	}
	activation := "double-click"
	if !s.DoubleClick {
		activation = "single click"
	}
	clock := "12 hour"
	if s.Clock24h {
		clock = "24 hour"
	}
	theme := s.Theme
	if theme == "" {
		theme = "classic"
	}

	var b strings.Builder
	b.WriteString("# Display Properties\n\n")
	fmt.Fprintf(&b, "Theme: %s\n", theme)
	fmt.Fprintf(&b, "Border: %s\n", s.BorderStyle)
	fmt.Fprintf(&b, "Icons open on: %s\n", activation)
	fmt.Fprintf(&b, "Clock: %s\n", clock)
	fmt.Fprintf(&b, "ASCII only: %s\n", onOff(s.ASCIIOnly))
	fmt.Fprintf(&b, "Sound: %s\n", onOff(s.Sound))
	fmt.Fprintf(&b, "Boot splash: %s\n", onOff(s.BootSplash))
	b.WriteString("\n## Files\n")
	fmt.Fprintf(&b, "- Config: %s\n", orNone(m.ConfigPath))
	fmt.Fprintf(&b, "- Catalog: %s\n", orNone(m.CatalogPath))
	b.WriteString("\nEdit the config file and restart to apply changes.")
	return b.String()
}

func orNone(s string) string {
	if s == "" {
		return "(built in)"
	}
	return s
}
