// Package catalog holds the desktop's content: the icons shown on the
// desktop, the windows they open and the start menu. The catalog is plain
// data loaded from TOML, so a different portfolio is a different file rather
// than a different build.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Gaurav-Gosain/deskfolio/internal/wm"
	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

//go:embed default.toml
var defaultCatalog []byte

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid catalog")

// RelativePath is the catalog location below the xdg config directories.
const RelativePath = "deskfolio/catalog.toml"

// Catalog is the full desktop content.
type Catalog struct {
	Owner     Owner      `toml:"owner"`
	Icons     []Icon     `toml:"icons"`
	StartMenu []MenuItem `toml:"start_menu"`
}

// Owner is the person the portfolio belongs to.
type Owner struct {
	Name string `toml:"name"`
	Role string `toml:"role"`
}

// Icon is a desktop icon and the window it opens.
type Icon struct {
	ID     string  `toml:"id"`
	Label  string  `toml:"label"`
	Glyph  string  `toml:"glyph,omitempty"`
	Kind   wm.Kind `toml:"kind"`
	Title  string  `toml:"title,omitempty"`
	Width  int     `toml:"width,omitempty"`
	Height int     `toml:"height,omitempty"`
	X      *int    `toml:"x,omitempty"`
	Y      *int    `toml:"y,omitempty"`
	// Source names a generated body; Body is ignored when it is set.
	Source string `toml:"source,omitempty"`
	Body   string `toml:"body,omitempty"`
	// Hidden icons are not drawn on the desktop but can be opened from the
	// start menu.
	Hidden bool `toml:"hidden,omitempty"`
}

// MenuItem is one start menu entry.
type MenuItem struct {
	Label  string `toml:"label"`
	Action string `toml:"action,omitempty"`
}

// Default returns the built-in placeholder portfolio.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("built-in catalog: %v", err))
	}
	return c
}

// Parse decodes, completes and validates a catalog.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := toml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	c.fillDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Load reads a catalog file.
func Load(path string) (*Catalog, error) {
	// #nosec G304 - reading a user supplied catalog is intentional
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Path returns the user catalog path, or where it would be created.
func Path() (string, error) {
	path, err := xdg.SearchConfigFile(RelativePath)
	if err != nil {
		return xdg.ConfigFile(RelativePath)
	}
	return path, nil
}

// LoadUser loads the catalog at path, or the user catalog when path is
// empty. A missing user catalog yields Default.
func LoadUser(path string) (*Catalog, string, error) {
	if path == "" {
		found, err := xdg.SearchConfigFile(RelativePath)
		if err != nil {
			return Default(), "", nil
		}
		path = found
	}
	c, err := Load(path)
	if err != nil {
		return nil, path, err
	}
	return c, path, nil
}

// WriteDefault writes the built-in catalog to path so it can be edited.
func WriteDefault(path string) error {
	if err := os.WriteFile(path, defaultCatalog, 0o600); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	return nil
}

func (c *Catalog) fillDefaults() {
	for i := range c.Icons {
		ic := &c.Icons[i]
		ic.ID = strings.TrimSpace(ic.ID)
		if ic.Label == "" {
			ic.Label = ic.ID
		}
		if ic.Title == "" {
			ic.Title = defaultTitle(ic.ID, ic.Kind)
		}
		def := DefaultSize(ic.Kind)
		if ic.Width <= 0 {
			ic.Width = def.Width
		}
		if ic.Height <= 0 {
			ic.Height = def.Height
		}
	}
}

// Validate reports every problem found, joined, each wrapping ErrInvalid.
func (c *Catalog) Validate() error {
	var errs []error
	seen := make(map[string]bool, len(c.Icons))

	for i, ic := range c.Icons {
		switch {
		case ic.ID == "":
			errs = append(errs, fmt.Errorf("%w: icon %d has no id", ErrInvalid, i+1))
			continue
		case seen[ic.ID]:
			errs = append(errs, fmt.Errorf("%w: duplicate icon id %q", ErrInvalid, ic.ID))
		}
		seen[ic.ID] = true

		if ic.Kind < wm.KindNote || ic.Kind > wm.KindFolder {
			errs = append(errs, fmt.Errorf("%w: icon %q has unknown kind", ErrInvalid, ic.ID))
		}
		if ic.Source != "" && !knownSources[ic.Source] {
			errs = append(errs, fmt.Errorf("%w: icon %q has unknown source %q", ErrInvalid, ic.ID, ic.Source))
		}
	}

	for _, item := range c.StartMenu {
		if item.Label == "" {
			errs = append(errs, fmt.Errorf("%w: start menu item without label", ErrInvalid))
			continue
		}
		action, err := ParseAction(item.Action)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: start menu %q: %v", ErrInvalid, item.Label, err))
			continue
		}
		if action.Kind == ActionOpen && !seen[action.Target] {
			errs = append(errs, fmt.Errorf("%w: start menu %q opens unknown icon %q", ErrInvalid, item.Label, action.Target))
		}
	}

	return errors.Join(errs...)
}

// Sources that generate a window body at open time.
const (
	SourceSysinfo  = "sysinfo"
	SourceSettings = "settings"
)

var knownSources = map[string]bool{
	SourceSysinfo:  true,
	SourceSettings: true,
}

// Lookup finds an icon by id.
func (c *Catalog) Lookup(id string) (Icon, bool) {
	for _, ic := range c.Icons {
		if ic.ID == id {
			return ic, true
		}
	}
	return Icon{}, false
}

// DesktopIcons returns the icons drawn on the desktop, in catalog order.
func (c *Catalog) DesktopIcons() []Icon {
	out := make([]Icon, 0, len(c.Icons))
	for _, ic := range c.Icons {
		if !ic.Hidden {
			out = append(out, ic)
		}
	}
	return out
}

// Spawn builds the window manager spawn spec for the icon. The content
// handle is the icon id so the body is always read from the live catalog.
func (ic Icon) Spawn() wm.SpawnSpec {
	spec := wm.SpawnSpec{
		Title:   ic.Title,
		Content: ic.ID,
		Kind:    ic.Kind,
		Size:    wm.Size{Width: ic.Width, Height: ic.Height},
	}
	if ic.X != nil || ic.Y != nil {
		var p wm.Point
		if ic.X != nil {
			p.X = *ic.X
		}
		if ic.Y != nil {
			p.Y = *ic.Y
		}
		spec.Position = &p
	}
	return spec
}

// DefaultSize is the window size used when an icon does not set one.
func DefaultSize(k wm.Kind) wm.Size {
	switch k {
	case wm.KindDocument:
		return wm.Size{Width: 66, Height: 22}
	case wm.KindFolder:
		return wm.Size{Width: 52, Height: 16}
	default:
		return wm.Size{Width: 60, Height: 18}
	}
}

func defaultTitle(id string, k wm.Kind) string {
	switch k {
	case wm.KindNote:
		return id + ".txt - Notepad"
	case wm.KindDocument:
		return id + ".doc - Document Viewer"
	default:
		return id
	}
}

// Glyph returns the icon drawn for a window kind.
func Glyph(k wm.Kind, ascii bool) string {
	if ascii {
		switch k {
		case wm.KindDocument:
			return "[#]"
		case wm.KindFolder:
			return "[/]"
		default:
			return "[=]"
		}
	}
	switch k {
	case wm.KindDocument:
		return "▤"
	case wm.KindFolder:
		return "▣"
	default:
		return "▭"
	}
}

// GlyphFor returns the icon's own glyph or its kind's default.
func (ic Icon) GlyphFor(ascii bool) string {
	if ic.Glyph != "" && !ascii {
		return ic.Glyph
	}
	return Glyph(ic.Kind, ascii)
}
