package input

import (
	"strconv"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/deskfolio/internal/app"
	"github.com/Gaurav-Gosain/deskfolio/internal/config"
)

// ActionHandler is a function that handles a specific action
type ActionHandler func(msg tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd)

// ActionDispatcher maps action names to handler functions
type ActionDispatcher struct {
	handlers map[string]ActionHandler
}

// NewActionDispatcher creates a new action dispatcher with all handlers registered
func NewActionDispatcher() *ActionDispatcher {
	d := &ActionDispatcher{
		handlers: make(map[string]ActionHandler),
	}
	d.registerHandlers()
	return d
}

func (d *ActionDispatcher) registerHandlers() {
	// Windows
	d.Register("next_window", handleNextWindow)
	d.Register("prev_window", handlePrevWindow)
	d.Register("close_window", handleCloseWindow)
	d.Register("minimize_window", handleMinimizeWindow)
	d.Register("maximize_window", handleMaximizeWindow)

	// Moving
	d.Register("move_left", makeMoveHandler(-2*config.MoveStep, 0))
	d.Register("move_right", makeMoveHandler(2*config.MoveStep, 0))
	d.Register("move_up", makeMoveHandler(0, -1))
	d.Register("move_down", makeMoveHandler(0, 1))

	// Content
	d.Register("scroll_up", makeScrollHandler(-1))
	d.Register("scroll_down", makeScrollHandler(1))
	d.Register("page_up", makePageHandler(-1))
	d.Register("page_down", makePageHandler(1))

	// Desktop
	d.Register("toggle_start_menu", handleToggleStartMenu)
	d.Register("toggle_help", handleToggleHelp)
	d.Register("toggle_logs", handleToggleLogs)
	d.Register("quit", handleQuit)
	for i := 1; i <= 9; i++ {
		d.Register("open_icon_"+strconv.Itoa(i), makeOpenIconHandler(i-1))
	}

	// Start menu
	d.Register("menu_up", handleMenuUp)
	d.Register("menu_down", handleMenuDown)
	d.Register("menu_select", handleMenuSelect)
	d.Register("menu_close", handleMenuClose)
}

// Register adds an action handler
func (d *ActionDispatcher) Register(action string, handler ActionHandler) {
	d.handlers[action] = handler
}

// Dispatch executes the handler for a given action
func (d *ActionDispatcher) Dispatch(action string, msg tea.KeyPressMsg, desk *app.Desktop) (*app.Desktop, tea.Cmd) {
	if handler, ok := d.handlers[action]; ok {
		return handler(msg, desk)
	}
	return desk, nil
}

// HasAction checks if an action is registered
func (d *ActionDispatcher) HasAction(action string) bool {
	_, ok := d.handlers[action]
	return ok
}

var globalDispatcher = NewActionDispatcher()

// GetDispatcher returns the global action dispatcher
func GetDispatcher() *ActionDispatcher {
	return globalDispatcher
}

// ============================================================================
// Window Action Handlers
// ============================================================================

func handleNextWindow(_ tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	d.CycleWindows(1)
	return d, nil
}

func handlePrevWindow(_ tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	d.CycleWindows(-1)
	return d, nil
}

func handleCloseWindow(_ tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	if id, ok := d.WM.ActiveWindowID(); ok {
		d.CloseWindow(id)
	}
	return d, nil
}

func handleMinimizeWindow(_ tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	if id, ok := d.WM.ActiveWindowID(); ok {
		d.MinimizeWindow(id)
	}
	return d, nil
}

func handleMaximizeWindow(_ tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	if id, ok := d.WM.ActiveWindowID(); ok {
		d.ToggleMaximize(id)
	}
	return d, nil
}

func makeMoveHandler(dx, dy int) ActionHandler {
	return func(_ tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
		d.MoveActive(dx, dy)
		return d, nil
	}
}

func makeScrollHandler(delta int) ActionHandler {
	return func(_ tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
		if id, ok := d.WM.ActiveWindowID(); ok {
			d.ScrollWindow(id, delta)
		}
		return d, nil
	}
}

func makePageHandler(direction int) ActionHandler {
	return func(_ tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
		if id, ok := d.WM.ActiveWindowID(); ok {
			d.ScrollWindow(id, direction*max(d.PageSize(id)-1, 1))
		}
		return d, nil
	}
}

// ============================================================================
// Desktop Action Handlers
// ============================================================================

func handleToggleStartMenu(_ tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	d.ToggleStartMenu()
	return d, nil
}

func handleToggleHelp(_ tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	d.ShowHelp = !d.ShowHelp
	return d, nil
}

func handleToggleLogs(_ tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	d.ShowLogs = !d.ShowLogs
	return d, nil
}

func handleQuit(_ tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	return d, tea.Quit
}

func makeOpenIconHandler(n int) ActionHandler {
	return func(_ tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
		return d, d.OpenIconAt(n)
	}
}

// ============================================================================
// Start Menu Action Handlers
// ============================================================================

func handleMenuUp(_ tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	d.MoveMenuSelection(-1)
	return d, nil
}

func handleMenuDown(_ tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	d.MoveMenuSelection(1)
	return d, nil
}

func handleMenuSelect(_ tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	return d, d.RunMenuItem(d.MenuSelection)
}

func handleMenuClose(_ tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	d.StartMenuOpen = false
	return d, nil
}
