package wm

import (
	"fmt"
	"strings"
)

// Point is a position in viewport cells, origin at the top-left corner.
type Point struct {
	X, Y int
}

// Size is a width and height in viewport cells.
type Size struct {
	Width, Height int
}

// Rect is a positioned size.
type Rect struct {
	Point
	Size
}

// Contains reports whether the cell (x, y) falls inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Kind is the content category of a window. It only picks defaults such as
// the icon and initial size; the manager treats all kinds alike.
type Kind int

const (
	KindNote Kind = iota
	KindDocument
	KindFolder
)

func (k Kind) String() string {
	switch k {
	case KindNote:
		return "note"
	case KindDocument:
		return "document"
	case KindFolder:
		return "folder"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind converts a catalog or config spelling into a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "note", "notepad", "txt":
		return KindNote, nil
	case "document", "doc":
		return KindDocument, nil
	case "folder", "dir":
		return KindFolder, nil
	}
	return 0, fmt.Errorf("unknown window kind %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Viewport describes the drawable area at the time of a call. ReservedBottom
// is the height permanently taken by the taskbar.
type Viewport struct {
	Width          int
	Height         int
	ReservedBottom int
}

// Known reports whether the viewport has been measured yet.
func (v Viewport) Known() bool {
	return v.Width > 0 && v.Height > 0
}

// UsableHeight is the height available to windows.
func (v Viewport) UsableHeight() int {
	return max(0, v.Height-v.ReservedBottom)
}

// Narrow reports whether the narrow (touch sized) geometry applies.
func (v Viewport) Narrow(l Layout) bool {
	return v.Width <= l.NarrowWidth
}

// Insets are the chrome margins kept free around a maximized window.
type Insets struct {
	Top, Right, Bottom, Left int
}

// Layout holds the placement constants of a manager.
type Layout struct {
	// CascadeBase is where the first window opens.
	CascadeBase Point
	// CascadeStep is added once per already known window.
	CascadeStep Point
	// InitialZ sits above any static content; the first window gets InitialZ+1.
	InitialZ int
	// MinSize is the smallest size a window is ever given.
	MinSize Size
	// NarrowWidth is the widest viewport that still uses NarrowInsets.
	NarrowWidth  int
	WideInsets   Insets
	NarrowInsets Insets
}

// DefaultLayout returns a layout scaled for terminal cells.
func DefaultLayout() Layout {
	return Layout{
		CascadeBase:  Point{X: 16, Y: 2},
		CascadeStep:  Point{X: 4, Y: 2},
		InitialZ:     100,
		MinSize:      Size{Width: 16, Height: 5},
		NarrowWidth:  80,
		NarrowInsets: Insets{Top: 1, Right: 1, Bottom: 1, Left: 1},
	}
}

// SpawnSpec carries what a window needs on first creation.
type SpawnSpec struct {
	Title string
	// Content is handed back untouched in every Record.
	Content any
	Kind    Kind
	Size    Size
	// Position, when set, replaces the cascade offset.
	Position *Point
}

// Record is a snapshot of one window.
type Record struct {
	ID        string
	Title     string
	Content   any
	Kind      Kind
	Open      bool
	Minimized bool
	Maximized bool
	Z         int
	Position  Point
	Size      Size
	// Normal is the geometry cached when the window was maximized.
	Normal Rect
}

// Visible reports whether the window is painted on the desktop.
func (r Record) Visible() bool {
	return r.Open && !r.Minimized
}

// Bounds returns the current geometry.
func (r Record) Bounds() Rect {
	return Rect{Point: r.Position, Size: r.Size}
}

// TaskbarEntry is one button on the taskbar.
type TaskbarEntry struct {
	ID        string
	Title     string
	Kind      Kind
	Minimized bool
	Active    bool
}

// Retention decides what Close does with a record.
type Retention int

const (
	// RetainClosed keeps the record with Open=false so reopening resurrects
	// it with its geometry.
	RetainClosed Retention = iota
	// DeleteClosed drops the record; reopening creates it afresh.
	DeleteClosed
)
