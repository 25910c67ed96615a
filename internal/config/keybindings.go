package config

import (
	"fmt"
	"slices"
	"strings"

	"charm.land/bubbles/v2/key"
)

// ActionDescriptions describes every desktop action.
var ActionDescriptions = map[string]string{
	"next_window":       "Next window",
	"prev_window":       "Previous window",
	"close_window":      "Close window",
	"minimize_window":   "Minimize window",
	"maximize_window":   "Maximize or restore window",
	"move_left":         "Move window left",
	"move_right":        "Move window right",
	"move_up":           "Move window up",
	"move_down":         "Move window down",
	"scroll_up":         "Scroll up",
	"scroll_down":       "Scroll down",
	"page_up":           "Page up",
	"page_down":         "Page down",
	"toggle_start_menu": "Start menu",
	"open_icon_1":       "Open icon 1",
	"open_icon_2":       "Open icon 2",
	"open_icon_3":       "Open icon 3",
	"open_icon_4":       "Open icon 4",
	"open_icon_5":       "Open icon 5",
	"open_icon_6":       "Open icon 6",
	"open_icon_7":       "Open icon 7",
	"open_icon_8":       "Open icon 8",
	"open_icon_9":       "Open icon 9",
	"toggle_help":       "Toggle help",
	"toggle_logs":       "Toggle log viewer",
	"quit":              "Quit",
}

// MenuActionDescriptions describes the start menu actions.
var MenuActionDescriptions = map[string]string{
	"menu_up":     "Previous item",
	"menu_down":   "Next item",
	"menu_select": "Run item",
	"menu_close":  "Close menu",
}

// Keybinding represents a single keybinding entry
type Keybinding struct {
	Key         string
	Description string
}

// KeybindingSection represents a section of related keybindings
type KeybindingSection struct {
	Title    string
	Bindings []Keybinding
}

// helpGroups orders the desktop actions for help output.
var helpGroups = []struct {
	title   string
	actions []string
}{
	{"WINDOWS", []string{"next_window", "prev_window", "close_window", "minimize_window", "maximize_window"}},
	{"MOVING", []string{"move_left", "move_right", "move_up", "move_down"}},
	{"CONTENT", []string{"scroll_up", "scroll_down", "page_up", "page_down"}},
	{"DESKTOP", []string{"toggle_start_menu", "open_icon_1", "toggle_help", "toggle_logs", "quit"}},
}

// KeybindRegistry resolves key strings to actions and back.
type KeybindRegistry struct {
	desktop   map[string][]string
	startMenu map[string][]string

	desktopByKey   map[string]string
	startMenuByKey map[string]string
}

// NewKeybindRegistry builds a registry from the keybindings in cfg.
func NewKeybindRegistry(cfg *UserConfig) *KeybindRegistry {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	r := &KeybindRegistry{
		desktop:   cfg.Keybindings.Desktop,
		startMenu: cfg.Keybindings.StartMenu,
	}
	normalizer := NewKeyNormalizer()
	r.desktopByKey = reverse(r.desktop, normalizer)
	r.startMenuByKey = reverse(r.startMenu, normalizer)
	return r
}

func reverse(bindings map[string][]string, n *KeyNormalizer) map[string]string {
	out := make(map[string]string)
	// Sorted so a key bound twice always resolves to the same action.
	actions := make([]string, 0, len(bindings))
	for action := range bindings {
		actions = append(actions, action)
	}
	slices.Sort(actions)
	for _, action := range actions {
		for _, k := range bindings[action] {
			for _, variant := range n.NormalizeKey(k) {
				if _, taken := out[variant]; !taken {
					out[variant] = action
				}
			}
		}
	}
	return out
}

// GetKeys returns the keys bound to a desktop action.
func (r *KeybindRegistry) GetKeys(action string) []string {
	return r.desktop[action]
}

// GetAction returns the desktop action bound to a key, or "".
func (r *KeybindRegistry) GetAction(k string) string {
	return r.desktopByKey[k]
}

// GetMenuAction returns the start menu action bound to a key, or "".
func (r *KeybindRegistry) GetMenuAction(k string) string {
	return r.startMenuByKey[k]
}

// GetKeysForDisplay formats the keys of a desktop action for help output.
func (r *KeybindRegistry) GetKeysForDisplay(action string) string {
	return displayKeys(r.desktop[action])
}

func displayKeys(keys []string) string {
	return strings.Join(keys, ", ")
}

// Binding returns a bubbles key binding for a desktop action.
func (r *KeybindRegistry) Binding(action string) key.Binding {
	keys := r.desktop[action]
	desc := ActionDescriptions[action]
	if action == "open_icon_1" {
		return key.NewBinding(key.WithKeys(keys...), key.WithHelp("1-9", "Open icon"))
	}
	if len(keys) == 0 {
		return key.NewBinding(key.WithDisabled())
	}
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(displayKeys(keys), desc))
}

// HelpColumns groups the desktop bindings for a bubbles help view.
func (r *KeybindRegistry) HelpColumns() [][]key.Binding {
	cols := make([][]key.Binding, 0, len(helpGroups))
	for _, g := range helpGroups {
		col := make([]key.Binding, 0, len(g.actions))
		for _, action := range g.actions {
			col = append(col, r.Binding(action))
		}
		cols = append(cols, col)
	}
	return cols
}

// GetKeybindings returns all keybinding sections for help output. A nil
// registry uses the defaults.
func GetKeybindings(registry *KeybindRegistry) []KeybindingSection {
	if registry == nil {
		registry = NewKeybindRegistry(DefaultConfig())
	}

	sections := make([]KeybindingSection, 0, len(helpGroups)+2)
	for _, g := range helpGroups {
		section := KeybindingSection{Title: g.title}
		for _, action := range g.actions {
			keys := registry.GetKeysForDisplay(action)
			if keys == "" {
				continue
			}
			desc := ActionDescriptions[action]
			if action == "open_icon_1" {
				keys, desc = "1-9", "Open desktop icon"
			}
			section.Bindings = append(section.Bindings, Keybinding{Key: keys, Description: desc})
		}
		if len(section.Bindings) > 0 {
			sections = append(sections, section)
		}
	}

	menu := KeybindingSection{Title: "START MENU"}
	for _, action := range []string{"menu_up", "menu_down", "menu_select", "menu_close"} {
		if keys := displayKeys(registry.startMenu[action]); keys != "" {
			menu.Bindings = append(menu.Bindings, Keybinding{Key: keys, Description: MenuActionDescriptions[action]})
		}
	}
	if len(menu.Bindings) > 0 {
		sections = append(sections, menu)
	}

	sections = append(sections, KeybindingSection{
		Title: "MOUSE",
		Bindings: []Keybinding{
			{"Click / double-click icon", "Open window"},
			{"Drag title bar", "Move window"},
			{"_  □  x", "Minimize, maximize, close"},
			{"Click taskbar button", "Focus window"},
			{"Wheel", "Scroll window content"},
		},
	})
	return sections
}

// KeyNormalizer canonicalizes key strings written by users.
type KeyNormalizer struct {
	aliases map[string][]string
}

// NewKeyNormalizer creates a normalizer with the common key aliases.
func NewKeyNormalizer() *KeyNormalizer {
	return &KeyNormalizer{
		aliases: map[string][]string{
			"return":   {"enter"},
			"enter":    {"return"},
			"escape":   {"esc"},
			"esc":      {"escape"},
			" ":        {"space"},
			"space":    {" "},
			"pageup":   {"pgup"},
			"pagedown": {"pgdown"},
		},
	}
}

var modifiers = []string{"ctrl", "alt", "shift", "super", "meta", "hyper"}

// NormalizeKey returns the canonical spelling of k followed by its aliases.
// Modifier combinations are lower-cased; a bare key keeps its case so "M"
// stays distinct from "m".
func (n *KeyNormalizer) NormalizeKey(k string) []string {
	k = strings.TrimSpace(k)
	if k == "" {
		return nil
	}
	if len(k) > 1 {
		k = strings.ToLower(k)
	}
	out := []string{k}
	base := k
	prefix := ""
	if i := strings.LastIndex(k, "+"); i > 0 && i < len(k)-1 {
		prefix, base = k[:i+1], k[i+1:]
	}
	for _, alias := range n.aliases[base] {
		out = append(out, prefix+alias)
	}
	return out
}

// ValidateKey reports whether k is a usable key string and, if not, why.
func (n *KeyNormalizer) ValidateKey(k string) (bool, string) {
	if strings.TrimSpace(k) == "" {
		return false, "empty key"
	}
	parts := strings.Split(strings.ToLower(k), "+")
	if len(parts) > 1 {
		for _, mod := range parts[:len(parts)-1] {
			if !slices.Contains(modifiers, mod) {
				return false, fmt.Sprintf("unknown modifier %q in %q", mod, k)
			}
		}
		if parts[len(parts)-1] == "" {
			return false, fmt.Sprintf("missing key after modifier in %q", k)
		}
	}
	return true, ""
}
