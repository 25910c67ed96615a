// Package theme provides the desktop palette. Without a theme the classic
// teal and gray palette is used; with one, colors come from bubbletint.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
	tint "github.com/lrstanley/bubbletint/v2"
)

var enabled bool

// Initialize sets up the theme registry with the specified theme name.
// Call this once at application startup. An empty name keeps the classic
// palette. It reports whether the requested theme was found.
func Initialize(themeName string) bool {
	if themeName == "" {
		enabled = false
		return true
	}

	enabled = true
	tint.NewDefaultRegistry()

	if !tint.SetTintID(themeName) {
		tint.SetTintID("default")
		return false
	}
	return true
}

// IsEnabled returns true if a bubbletint theme is active
func IsEnabled() bool {
	return enabled
}

// Current returns the active theme, or nil for the classic palette.
func Current() *tint.Tint {
	if !enabled {
		return nil
	}
	return tint.Current()
}

func pick(classic string, themed func(*tint.Tint) color.Color) color.Color {
	if t := Current(); t != nil {
		return themed(t)
	}
	return lipgloss.Color(classic)
}

// Desktop is the wallpaper color.
func Desktop() color.Color {
	return pick("#008080", func(t *tint.Tint) color.Color { return t.Cyan })
}

// DesktopText is used for icon labels on the wallpaper.
func DesktopText() color.Color {
	return pick("#ffffff", func(t *tint.Tint) color.Color { return t.BrightWhite })
}

// Chrome is the face color of the taskbar, menus and window frames.
func Chrome() color.Color {
	return pick("#c0c0c0", func(t *tint.Tint) color.Color { return t.White })
}

// ChromeText is text drawn on Chrome.
func ChromeText() color.Color {
	return pick("#000000", func(t *tint.Tint) color.Color { return t.Black })
}

// ChromeShadow is the darker edge of raised chrome.
func ChromeShadow() color.Color {
	return pick("#808080", func(t *tint.Tint) color.Color { return t.BrightBlack })
}

// TitleActive is the title bar of the focused window.
func TitleActive() color.Color {
	return pick("#000080", func(t *tint.Tint) color.Color { return t.Blue })
}

// TitleInactive is the title bar of other windows.
func TitleInactive() color.Color {
	return pick("#808080", func(t *tint.Tint) color.Color { return t.BrightBlack })
}

// TitleText is text drawn on title bars.
func TitleText() color.Color {
	return pick("#ffffff", func(t *tint.Tint) color.Color { return t.BrightWhite })
}

// ContentBg is the background of window bodies.
func ContentBg() color.Color {
	return pick("#ffffff", func(t *tint.Tint) color.Color { return t.Bg })
}

// ContentFg is body text.
func ContentFg() color.Color {
	return pick("#000000", func(t *tint.Tint) color.Color { return t.Fg })
}

// Heading colors headings inside window bodies.
func Heading() color.Color {
	return pick("#000080", func(t *tint.Tint) color.Color { return t.BrightBlue })
}

// Highlight is the background of selected menu items and icons.
func Highlight() color.Color {
	return pick("#000080", func(t *tint.Tint) color.Color { return t.Blue })
}

// HighlightText is text on Highlight.
func HighlightText() color.Color {
	return pick("#ffffff", func(t *tint.Tint) color.Color { return t.BrightWhite })
}

// Danger colors the close button on hover-less terminals.
func Danger() color.Color {
	return pick("#800000", func(t *tint.Tint) color.Color { return t.Red })
}

// BootBg is the boot splash background.
func BootBg() color.Color {
	return pick("#000000", func(t *tint.Tint) color.Color { return t.Black })
}

// BootFg is the boot splash text.
func BootFg() color.Color {
	return pick("#c0c0c0", func(t *tint.Tint) color.Color { return t.White })
}
