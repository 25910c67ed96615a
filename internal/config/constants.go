// Package config provides configuration constants, keybinding management and
// user settings.
package config

import "time"

// =============================================================================
// Timers
// =============================================================================

const (
	// BootDuration is how long the boot splash stays up.
	BootDuration = 2500 * time.Millisecond

	// ClockInterval is the refresh period of the taskbar clock.
	ClockInterval = time.Minute

	// ShutdownDelay is how long the shutdown screen shows before quitting.
	ShutdownDelay = 1500 * time.Millisecond

	// DoubleClickWindow is the longest gap between the clicks of a double-click.
	DoubleClickWindow = 500 * time.Millisecond
)

// =============================================================================
// FPS
// =============================================================================

const (
	// NormalFPS is the renderer frame cap.
	NormalFPS = 60

	// RemoteFPS is the frame cap for SSH and web sessions.
	RemoteFPS = 30
)

// =============================================================================
// UI Layout
// =============================================================================

const (
	// TaskbarHeight is the height reserved at the bottom for the taskbar.
	TaskbarHeight = 1

	// IconColumnWidth is the width of one desktop icon cell.
	IconColumnWidth = 14

	// IconRowHeight is the height of one desktop icon cell including spacing.
	IconRowHeight = 4

	// StartMenuWidth is the outer width of the start menu.
	StartMenuWidth = 24

	// TaskbarEntryWidth is the widest a taskbar button grows.
	TaskbarEntryWidth = 22

	// StartButtonWidth is the width of the start button including padding.
	StartButtonWidth = 9

	// ScrollStep is the number of lines one wheel notch scrolls.
	ScrollStep = 3

	// MoveStep is the number of cells a keyboard move shifts a window.
	MoveStep = 2

	// MaxLogMessages caps the in-memory log ring.
	MaxLogMessages = 500
)

// =============================================================================
// Stacking
// =============================================================================

// Windows take their z from the window manager, which starts above ZIcons and
// grows by one per raise. Overlays sit far above anything a session reaches.
const (
	ZWallpaper = 0
	ZIcons     = 1
	ZTaskbar   = 1 << 30
	ZStartMenu = ZTaskbar + 1
	ZOverlay   = ZTaskbar + 2
	ZBoot      = ZTaskbar + 3
)
