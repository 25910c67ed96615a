package app

import (
	"github.com/Gaurav-Gosain/deskfolio/internal/catalog"
	"github.com/Gaurav-Gosain/deskfolio/internal/config"
	"github.com/Gaurav-Gosain/deskfolio/internal/wm"
	"github.com/charmbracelet/x/ansi"
)

// Control is the part of a window under the pointer.
type Control int

const (
	ControlNone Control = iota
	ControlTitle
	ControlMinimize
	ControlMaximize
	ControlClose
	ControlBody
)

// buttonWidth is the width of one title bar button.
const buttonWidth = 3

// ControlAt returns the part of a window at x, y. The title bar is the first
// row; its three buttons sit at the right edge, one cell in.
func (m *Desktop) ControlAt(rec wm.Record, x, y int) Control {
	b := rec.Bounds()
	if !b.Contains(x, y) {
		return ControlNone
	}
	if y != b.Y {
		return ControlBody
	}
	if m.Settings.HideWindowButtons || b.Width <= 3*buttonWidth+1 {
		return ControlTitle
	}
	right := b.X + b.Width - 1
	switch {
	case x >= right-buttonWidth && x < right:
		return ControlClose
	case x >= right-2*buttonWidth && x < right-buttonWidth:
		return ControlMaximize
	case x >= right-3*buttonWidth && x < right-2*buttonWidth:
		return ControlMinimize
	}
	return ControlTitle
}

func rect(x, y, w, h int) wm.Rect {
	return wm.Rect{Point: wm.Point{X: x, Y: y}, Size: wm.Size{Width: w, Height: h}}
}

// contentSize is the area inside a window's title bar and border.
func contentSize(rec wm.Record) (w, h int) {
	return max(rec.Size.Width-2, 0), max(rec.Size.Height-2, 0)
}

// TaskbarY returns the row of the taskbar.
func (m *Desktop) TaskbarY() int {
	return max(m.Height-config.TaskbarHeight, 0)
}

// IconRect returns the cell of the n-th desktop icon. Icons fill columns top
// to bottom from the left edge.
func (m *Desktop) IconRect(n int) wm.Rect {
	rows := max((m.TaskbarY()-1)/config.IconRowHeight, 1)
	col, row := n/rows, n%rows
	return rect(
		1+col*(config.IconColumnWidth+1),
		1+row*config.IconRowHeight,
		config.IconColumnWidth,
		config.IconRowHeight-1,
	)
}

// IconAt returns the desktop icon at x, y.
func (m *Desktop) IconAt(x, y int) (catalog.Icon, bool) {
	for i, icon := range m.Catalog.DesktopIcons() {
		if m.IconRect(i).Contains(x, y) {
			return icon, true
		}
	}
	return catalog.Icon{}, false
}

// StartButtonRect returns the start button on the taskbar.
func (m *Desktop) StartButtonRect() wm.Rect {
	return rect(0, m.TaskbarY(), config.StartButtonWidth, 1)
}

// TaskbarButton is one window entry laid out on the taskbar.
type TaskbarButton struct {
	Entry wm.TaskbarEntry
	Rect  wm.Rect
}

func (m *Desktop) clockText() string {
	if m.Settings.HideClock {
		return ""
	}
	return " " + m.Now.Format(m.Settings.ClockLayout()) + " "
}

// TaskbarButtons lays out the taskbar entries between the start button and
// the clock. Entries that do not fit are dropped from the right.
func (m *Desktop) TaskbarButtons() []TaskbarButton {
	entries := m.WM.TaskbarEntries()
	if len(entries) == 0 {
		return nil
	}
	start := config.StartButtonWidth + 1
	available := m.Width - start - ansi.StringWidth(m.clockText())
	width := min(config.TaskbarEntryWidth, available/len(entries))
	const minWidth = 6
	if width < minWidth {
		width = minWidth
	}

	buttons := make([]TaskbarButton, 0, len(entries))
	for i, e := range entries {
		x := start + i*width
		if x+width > start+available {
			break
		}
		buttons = append(buttons, TaskbarButton{
			Entry: e,
			Rect:  rect(x, m.TaskbarY(), width-1, 1),
		})
	}
	return buttons
}

// TaskbarEntryAt returns the id of the taskbar entry at x, y.
func (m *Desktop) TaskbarEntryAt(x, y int) (string, bool) {
	for _, b := range m.TaskbarButtons() {
		if b.Rect.Contains(x, y) {
			return b.Entry.ID, true
		}
	}
	return "", false
}

// StartMenuRect returns the start menu box, which rests on the taskbar. It
// holds a border, the owner header and one row per item.
func (m *Desktop) StartMenuRect() wm.Rect {
	h := len(m.Catalog.StartMenu) + 3
	return rect(0, max(m.TaskbarY()-h, 0), min(config.StartMenuWidth, max(m.Width, 0)), h)
}

// MenuItemAt returns the index of the start menu item at x, y, or -1.
func (m *Desktop) MenuItemAt(x, y int) int {
	r := m.StartMenuRect()
	if !r.Contains(x, y) || x == r.X || x == r.X+r.Width-1 {
		return -1
	}
	i := y - r.Y - 2
	if i < 0 || i >= len(m.Catalog.StartMenu) {
		return -1
	}
	return i
}

func (m *Desktop) ellipsis() string {
	if m.Settings.ASCIIOnly {
		return "~"
	}
	return "…"
}
