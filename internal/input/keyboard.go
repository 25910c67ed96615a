// Package input routes keyboard and mouse events to the desktop.
package input

import (
	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/deskfolio/internal/app"
)

// HandleInput is the app.InputHandler for deskfolio. Nothing reacts while the
// shutdown screen is up, and any key or click dismisses the boot splash.
func HandleInput(msg tea.Msg, d *app.Desktop) (tea.Model, tea.Cmd) {
	if d.ShuttingDown {
		return d, nil
	}
	if d.Booting {
		switch msg.(type) {
		case tea.KeyPressMsg, tea.MouseClickMsg:
			d.FinishBoot()
		}
		return d, nil
	}

	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return handleKeyPress(msg, d)
	case tea.MouseClickMsg:
		return handleMouseClick(msg, d)
	case tea.MouseMotionMsg:
		return handleMouseMotion(msg, d)
	case tea.MouseReleaseMsg:
		return handleMouseRelease(msg, d)
	case tea.MouseWheelMsg:
		return handleMouseWheel(msg, d)
	}
	return d, nil
}

// handleKeyPress resolves a key to an action in the current context: open
// overlays swallow the key and close, the start menu takes its own bindings,
// and everything else goes through the desktop bindings.
func handleKeyPress(msg tea.KeyPressMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	key := msg.String()
	dispatcher := GetDispatcher()

	if d.ShowHelp || d.ShowLogs {
		action := d.Keys.GetAction(key)
		d.ShowHelp = false
		d.ShowLogs = false
		if action == "quit" {
			return dispatcher.Dispatch(action, msg, d)
		}
		return d, nil
	}

	if d.StartMenuOpen {
		if action := d.Keys.GetMenuAction(key); action != "" {
			return dispatcher.Dispatch(action, msg, d)
		}
		// Desktop bindings still work with the menu open; the menu closes
		// first so the action lands on the desktop.
		if action := d.Keys.GetAction(key); action != "" && action != "toggle_start_menu" {
			d.StartMenuOpen = false
			return dispatcher.Dispatch(action, msg, d)
		}
		return d, nil
	}

	if action := d.Keys.GetAction(key); action != "" {
		return dispatcher.Dispatch(action, msg, d)
	}
	return d, nil
}
