package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

// RelativePath is the config location below the xdg config directories.
const RelativePath = "deskfolio/config.toml"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// UserConfig represents the user's custom configuration
type UserConfig struct {
	Appearance  AppearanceConfig  `toml:"appearance"`
	Desktop     DesktopConfig     `toml:"desktop"`
	Layout      LayoutConfig      `toml:"layout"`
	Keybindings KeybindingsConfig `toml:"keybindings"`
}

// AppearanceConfig holds appearance-related settings
type AppearanceConfig struct {
	Theme             string `toml:"theme"`               // bubbletint theme id; empty uses the classic palette
	BorderStyle       string `toml:"border_style"`        // normal, rounded, thick, double, block, ascii, hidden
	ASCIIOnly         bool   `toml:"ascii_only"`          // ASCII glyphs for icons and window buttons
	HideClock         bool   `toml:"hide_clock"`          // Hide the taskbar clock
	Clock24h          bool   `toml:"clock_24h"`           // 15:04 instead of 3:04 PM
	HideWindowButtons bool   `toml:"hide_window_buttons"` // Hide minimize, maximize and close buttons
}

// DesktopConfig holds desktop behaviour settings
type DesktopConfig struct {
	Activation    string `toml:"activation"`     // click or double-click
	BootSplash    *bool  `toml:"boot_splash"`    // Show the boot splash (default: true)
	Sound         *bool  `toml:"sound"`          // Ring the terminal bell on window events (default: false)
	Catalog       string `toml:"catalog"`        // Catalog file; empty searches the config directory
	CloseBehavior string `toml:"close_behavior"` // retain keeps closed windows' geometry, delete forgets it
}

// LayoutConfig holds window placement settings, in terminal cells
type LayoutConfig struct {
	CascadeX     int `toml:"cascade_x"`
	CascadeY     int `toml:"cascade_y"`
	CascadeStepX int `toml:"cascade_step_x"`
	CascadeStepY int `toml:"cascade_step_y"`
	NarrowWidth  int `toml:"narrow_width"` // Viewports this wide or narrower get margins around maximized windows
}

// KeybindingsConfig maps actions to keys, per input context
type KeybindingsConfig struct {
	Desktop   map[string][]string `toml:"desktop"`
	StartMenu map[string][]string `toml:"start_menu"`
}

// Activation values.
const (
	ActivationClick       = "click"
	ActivationDoubleClick = "double-click"
)

// Close behaviour values.
const (
	CloseRetain = "retain"
	CloseDelete = "delete"
)

// DefaultConfig returns the default configuration
func DefaultConfig() *UserConfig {
	bootSplash, sound := true, false
	return &UserConfig{
		Appearance: AppearanceConfig{
			BorderStyle: "normal",
		},
		Desktop: DesktopConfig{
			Activation:    ActivationDoubleClick,
			BootSplash:    &bootSplash,
			Sound:         &sound,
			CloseBehavior: CloseRetain,
		},
		Layout: LayoutConfig{
			CascadeX:     16,
			CascadeY:     2,
			CascadeStepX: 4,
			CascadeStepY: 2,
			NarrowWidth:  80,
		},
		Keybindings: KeybindingsConfig{
			Desktop: map[string][]string{
				"next_window":       {"tab"},
				"prev_window":       {"shift+tab"},
				"close_window":      {"x", "ctrl+w"},
				"minimize_window":   {"m"},
				"maximize_window":   {"f"},
				"move_left":         {"H", "shift+left"},
				"move_right":        {"L", "shift+right"},
				"move_up":           {"K", "shift+up"},
				"move_down":         {"J", "shift+down"},
				"scroll_up":         {"k", "up"},
				"scroll_down":       {"j", "down"},
				"page_up":           {"pgup"},
				"page_down":         {"pgdown"},
				"toggle_start_menu": {"s", "ctrl+esc"},
				"open_icon_1":       {"1"},
				"open_icon_2":       {"2"},
				"open_icon_3":       {"3"},
				"open_icon_4":       {"4"},
				"open_icon_5":       {"5"},
				"open_icon_6":       {"6"},
				"open_icon_7":       {"7"},
				"open_icon_8":       {"8"},
				"open_icon_9":       {"9"},
				"toggle_help":       {"?"},
				"toggle_logs":       {"ctrl+l"},
				"quit":              {"q", "ctrl+c"},
			},
			StartMenu: map[string][]string{
				"menu_up":     {"up", "k"},
				"menu_down":   {"down", "j"},
				"menu_select": {"enter", "space"},
				"menu_close":  {"esc", "s"},
			},
		},
	}
}

// LoadUserConfig loads the user config, creating a default one on first run.
func LoadUserConfig() (*UserConfig, error) {
	configPath, err := xdg.SearchConfigFile(RelativePath)
	if err != nil {
		return createDefaultConfig()
	}
	return LoadConfigFile(configPath)
}

// LoadConfigFile reads, completes and validates a config file.
func LoadConfigFile(path string) (*UserConfig, error) {
	// #nosec G304 - path is from XDG search or the command line
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg UserConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	defaultCfg := DefaultConfig()
	fillMissingAppearance(&cfg, defaultCfg)
	fillMissingDesktop(&cfg, defaultCfg)
	fillMissingLayout(&cfg, defaultCfg)
	fillMissingKeybinds(&cfg, defaultCfg)

	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

func createDefaultConfig() (*UserConfig, error) {
	cfg := DefaultConfig()

	configPath, err := xdg.ConfigFile(RelativePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}
	if err := SaveUserConfig(cfg, configPath); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveUserConfig writes cfg to path, creating parent directories.
func SaveUserConfig(cfg *UserConfig, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	header := []byte("# deskfolio configuration\n# See `deskfolio keybinds list` for the available actions.\n\n")
	if err := os.WriteFile(path, append(header, data...), 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GetConfigPath returns the user config path, or where it would be created.
func GetConfigPath() (string, error) {
	path, err := xdg.SearchConfigFile(RelativePath)
	if err != nil {
		return xdg.ConfigFile(RelativePath)
	}
	return path, nil
}

func fillMissingAppearance(cfg, defaultCfg *UserConfig) {
	if cfg.Appearance.BorderStyle == "" {
		cfg.Appearance.BorderStyle = defaultCfg.Appearance.BorderStyle
	}
}

func fillMissingDesktop(cfg, defaultCfg *UserConfig) {
	if cfg.Desktop.Activation == "" {
		cfg.Desktop.Activation = defaultCfg.Desktop.Activation
	}
	if cfg.Desktop.BootSplash == nil {
		cfg.Desktop.BootSplash = defaultCfg.Desktop.BootSplash
	}
	if cfg.Desktop.Sound == nil {
		cfg.Desktop.Sound = defaultCfg.Desktop.Sound
	}
	if cfg.Desktop.CloseBehavior == "" {
		cfg.Desktop.CloseBehavior = defaultCfg.Desktop.CloseBehavior
	}
}

func fillMissingLayout(cfg, defaultCfg *UserConfig) {
	if cfg.Layout == (LayoutConfig{}) {
		cfg.Layout = defaultCfg.Layout
		return
	}
	if cfg.Layout.NarrowWidth == 0 {
		cfg.Layout.NarrowWidth = defaultCfg.Layout.NarrowWidth
	}
}

func fillMissingKeybinds(cfg, defaultCfg *UserConfig) {
	if cfg.Keybindings.Desktop == nil {
		cfg.Keybindings.Desktop = make(map[string][]string)
	}
	if cfg.Keybindings.StartMenu == nil {
		cfg.Keybindings.StartMenu = make(map[string][]string)
	}
	fillMapDefaults(cfg.Keybindings.Desktop, defaultCfg.Keybindings.Desktop)
	fillMapDefaults(cfg.Keybindings.StartMenu, defaultCfg.Keybindings.StartMenu)
}

// fillMapDefaults adds defaults for actions the user did not mention. An
// explicit empty list unbinds an action.
func fillMapDefaults(target, defaults map[string][]string) {
	for action, keys := range defaults {
		if _, exists := target[action]; !exists {
			target[action] = keys
		}
	}
}

// ValidateConfig returns every problem in cfg joined, each wrapping ErrInvalid.
func ValidateConfig(cfg *UserConfig) error {
	var errs []error
	invalid := func(section, format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: [%s] %s", ErrInvalid, section, fmt.Sprintf(format, args...)))
	}

	if _, ok := borderStyles[cfg.Appearance.BorderStyle]; !ok {
		invalid("appearance", "unknown border_style %q", cfg.Appearance.BorderStyle)
	}
	if !slices.Contains([]string{ActivationClick, ActivationDoubleClick}, cfg.Desktop.Activation) {
		invalid("desktop", "activation must be %q or %q, got %q", ActivationClick, ActivationDoubleClick, cfg.Desktop.Activation)
	}
	if !slices.Contains([]string{CloseRetain, CloseDelete}, cfg.Desktop.CloseBehavior) {
		invalid("desktop", "close_behavior must be %q or %q, got %q", CloseRetain, CloseDelete, cfg.Desktop.CloseBehavior)
	}

	l := cfg.Layout
	if l.CascadeX < 0 || l.CascadeY < 0 || l.CascadeStepX < 0 || l.CascadeStepY < 0 || l.NarrowWidth < 0 {
		invalid("layout", "values must not be negative")
	}

	normalizer := NewKeyNormalizer()
	check := func(section string, bindings map[string][]string, known map[string]string) {
		for action, keys := range bindings {
			if _, ok := known[action]; !ok {
				invalid("keybindings."+section, "unknown action %q", action)
				continue
			}
			for _, k := range keys {
				if ok, reason := normalizer.ValidateKey(k); !ok {
					invalid("keybindings."+section, "%s: %s", action, reason)
				}
			}
		}
	}
	check("desktop", cfg.Keybindings.Desktop, ActionDescriptions)
	check("start_menu", cfg.Keybindings.StartMenu, MenuActionDescriptions)

	return errors.Join(errs...)
}
