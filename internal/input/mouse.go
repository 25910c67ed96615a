package input

import (
	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/deskfolio/internal/app"
	"github.com/Gaurav-Gosain/deskfolio/internal/config"
	"github.com/Gaurav-Gosain/deskfolio/internal/wm"
)

// handleMouseClick hit-tests from the top of the stack down: overlays, start
// menu, taskbar, windows, icons and finally the bare desktop.
func handleMouseClick(msg tea.MouseClickMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	mouse := msg.Mouse()
	X, Y := mouse.X, mouse.Y

	if d.ShowHelp || d.ShowLogs {
		d.ShowHelp = false
		d.ShowLogs = false
		return d, nil
	}

	if mouse.Button != tea.MouseLeft {
		d.StartMenuOpen = false
		return d, nil
	}

	if d.StartMenuOpen {
		if i := d.MenuItemAt(X, Y); i >= 0 {
			return d, d.RunMenuItem(i)
		}
		if d.StartMenuRect().Contains(X, Y) {
			return d, nil
		}
		if d.StartButtonRect().Contains(X, Y) {
			d.StartMenuOpen = false
			return d, nil
		}
		// Clicking elsewhere closes the menu and the click carries on.
		d.StartMenuOpen = false
	}

	if Y == d.TaskbarY() {
		return handleTaskbarClick(X, Y, d)
	}

	if rec, ok := d.WM.WindowAt(X, Y); ok {
		return handleWindowClick(rec, X, Y, d)
	}

	if icon, ok := d.IconAt(X, Y); ok {
		d.SelectedIcon = icon.ID
		if !d.Settings.DoubleClick || isDoubleClick(d, "icon:"+icon.ID) {
			return d, d.OpenIcon(icon.ID)
		}
		return d, nil
	}

	d.SelectedIcon = ""
	d.LastClickID = ""
	return d, nil
}

func handleTaskbarClick(X, Y int, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	if d.StartButtonRect().Contains(X, Y) {
		d.ToggleStartMenu()
		return d, nil
	}
	if id, ok := d.TaskbarEntryAt(X, Y); ok {
		d.FocusWindow(id)
	}
	return d, nil
}

func handleWindowClick(rec wm.Record, X, Y int, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	control := d.ControlAt(rec, X, Y)
	d.SelectedIcon = ""
	d.FocusWindow(rec.ID)

	switch control {
	case app.ControlClose:
		d.CloseWindow(rec.ID)
	case app.ControlMinimize:
		d.MinimizeWindow(rec.ID)
	case app.ControlMaximize:
		d.ToggleMaximize(rec.ID)
	case app.ControlTitle:
		if isDoubleClick(d, "title:"+rec.ID) {
			d.ToggleMaximize(rec.ID)
			return d, nil
		}
		if drag, ok := d.WM.BeginDrag(rec.ID, wm.Point{X: X, Y: Y}); ok {
			d.Drag = drag
		}
	}
	return d, nil
}

// isDoubleClick records a click on target and reports whether it completes a
// double-click.
func isDoubleClick(d *app.Desktop, target string) bool {
	now := d.Clock()
	double := d.LastClickID == target && now.Sub(d.LastClickTime) <= config.DoubleClickWindow
	if double {
		d.LastClickID = ""
		d.LastClickTime = now
		return true
	}
	d.LastClickID = target
	d.LastClickTime = now
	return false
}

func handleMouseMotion(msg tea.MouseMotionMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	mouse := msg.Mouse()
	if d.Drag != nil && d.Drag.Active() {
		d.Drag.Move(wm.Point{X: mouse.X, Y: mouse.Y}, d.Viewport())
		return d, nil
	}
	if d.StartMenuOpen {
		if i := d.MenuItemAt(mouse.X, mouse.Y); i >= 0 {
			d.MenuSelection = i
		}
	}
	return d, nil
}

func handleMouseRelease(_ tea.MouseReleaseMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	if d.Drag != nil {
		d.Drag.End()
		d.Drag = nil
	}
	return d, nil
}

func handleMouseWheel(msg tea.MouseWheelMsg, d *app.Desktop) (*app.Desktop, tea.Cmd) {
	mouse := msg.Mouse()
	rec, ok := d.WM.WindowAt(mouse.X, mouse.Y)
	if !ok {
		return d, nil
	}
	switch mouse.Button {
	case tea.MouseWheelUp:
		d.ScrollWindow(rec.ID, -config.ScrollStep)
	case tea.MouseWheelDown:
		d.ScrollWindow(rec.ID, config.ScrollStep)
	}
	return d, nil
}
