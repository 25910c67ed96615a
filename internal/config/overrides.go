package config

import (
	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/deskfolio/internal/wm"
)

// Overrides contains CLI flag values that can override user config.
// Zero values indicate the flag was not set and should use the user config default.
type Overrides struct {
	// Theme is a bubbletint theme id
	Theme string

	// BorderStyle overrides the window border style
	BorderStyle string

	// ASCIIOnly uses ASCII characters for icons and buttons
	ASCIIOnly bool

	// HideClock hides the taskbar clock
	HideClock bool

	// Clock24h switches the clock to 24 hour format
	Clock24h bool

	// NoBootSplash skips the boot splash
	NoBootSplash bool

	// Sound enables the terminal bell on window events
	Sound bool

	// Activation overrides how icons open: click or double-click
	Activation string

	// CatalogPath overrides the catalog file
	CatalogPath string

	// Debug enables debug logging
	Debug bool
}

// Settings is the resolved configuration a desktop runs with.
type Settings struct {
	Theme             string
	BorderStyle       string
	ASCIIOnly         bool
	HideClock         bool
	Clock24h          bool
	HideWindowButtons bool
	DoubleClick       bool
	BootSplash        bool
	Sound             bool
	CatalogPath       string
	Retention         wm.Retention
	Layout            wm.Layout
	Debug             bool
}

// DefaultSettings resolves the default configuration with no overrides.
func DefaultSettings() Settings {
	return ApplyOverrides(Overrides{}, DefaultConfig())
}

// ApplyOverrides resolves CLI flag overrides against the user config. String
// flags win when set; boolean flags are OR-ed with the file. A nil userConfig
// means defaults.
func ApplyOverrides(overrides Overrides, userConfig *UserConfig) Settings {
	if userConfig == nil {
		userConfig = DefaultConfig()
	}
	defaults := DefaultConfig()
	app, desk := userConfig.Appearance, userConfig.Desktop

	s := Settings{
		Theme:             firstNonEmpty(overrides.Theme, app.Theme),
		BorderStyle:       firstNonEmpty(overrides.BorderStyle, app.BorderStyle, defaults.Appearance.BorderStyle),
		ASCIIOnly:         overrides.ASCIIOnly || app.ASCIIOnly,
		HideClock:         overrides.HideClock || app.HideClock,
		Clock24h:          overrides.Clock24h || app.Clock24h,
		HideWindowButtons: app.HideWindowButtons,
		DoubleClick:       firstNonEmpty(overrides.Activation, desk.Activation, defaults.Desktop.Activation) == ActivationDoubleClick,
		BootSplash:        boolOr(desk.BootSplash, true) && !overrides.NoBootSplash,
		Sound:             overrides.Sound || boolOr(desk.Sound, false),
		CatalogPath:       firstNonEmpty(overrides.CatalogPath, desk.Catalog),
		Retention:         wm.RetainClosed,
		Layout:            userConfig.Layout.WMLayout(),
		Debug:             overrides.Debug,
	}
	if desk.CloseBehavior == CloseDelete {
		s.Retention = wm.DeleteClosed
	}
	return s
}

// WMLayout converts the layout section into window manager placement.
func (l LayoutConfig) WMLayout() wm.Layout {
	layout := wm.DefaultLayout()
	if l == (LayoutConfig{}) {
		return layout
	}
	layout.CascadeBase = wm.Point{X: l.CascadeX, Y: l.CascadeY}
	layout.CascadeStep = wm.Point{X: l.CascadeStepX, Y: l.CascadeStepY}
	if l.NarrowWidth > 0 {
		layout.NarrowWidth = l.NarrowWidth
	}
	return layout
}

var borderStyles = map[string]func() lipgloss.Border{
	"normal":  lipgloss.NormalBorder,
	"rounded": lipgloss.RoundedBorder,
	"thick":   lipgloss.ThickBorder,
	"double":  lipgloss.DoubleBorder,
	"block":   lipgloss.BlockBorder,
	"ascii":   lipgloss.ASCIIBorder,
	"hidden":  lipgloss.HiddenBorder,
}

// Border returns the window border for the settings, ASCII when ASCIIOnly.
func (s Settings) Border() lipgloss.Border {
	if s.ASCIIOnly {
		return lipgloss.ASCIIBorder()
	}
	if fn, ok := borderStyles[s.BorderStyle]; ok {
		return fn()
	}
	return lipgloss.NormalBorder()
}

// ClockLayout is the time.Format layout of the taskbar clock.
func (s Settings) ClockLayout() string {
	if s.Clock24h {
		return "15:04"
	}
	return "3:04 PM"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
