package catalog

import (
	"fmt"
	"strings"
)

// ActionKind is what a start menu item does.
type ActionKind int

const (
	// ActionNone only closes the menu.
	ActionNone ActionKind = iota
	ActionOpen
	ActionHelp
	ActionShutdown
)

// Action is a parsed start menu action.
type Action struct {
	Kind ActionKind
	// Target is the icon id for ActionOpen.
	Target string
}

// ParseAction parses "", "open:<id>", "help" or "shutdown".
func ParseAction(s string) (Action, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return Action{Kind: ActionNone}, nil
	case s == "help":
		return Action{Kind: ActionHelp}, nil
	case s == "shutdown":
		return Action{Kind: ActionShutdown}, nil
	case strings.HasPrefix(s, "open:"):
		target := strings.TrimSpace(strings.TrimPrefix(s, "open:"))
		if target == "" {
			return Action{}, fmt.Errorf("action %q has no target", s)
		}
		return Action{Kind: ActionOpen, Target: target}, nil
	}
	return Action{}, fmt.Errorf("unknown action %q", s)
}

// Parsed returns the action of a validated item.
func (m MenuItem) Parsed() Action {
	a, err := ParseAction(m.Action)
	if err != nil {
		return Action{Kind: ActionNone}
	}
	return a
}
