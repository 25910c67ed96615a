package wm

// Drag is one move gesture on a window's title bar. Every Move is clamped, so
// the stored position is valid mid-gesture and not only when it ends.
type Drag struct {
	m      *Manager
	id     string
	offset Point
	done   bool
}

// BeginDrag starts moving window id from the grab point. Maximized, hidden
// and unknown windows cannot be dragged.
func (m *Manager) BeginDrag(id string, grab Point) (*Drag, bool) {
	rec, ok := m.records[id]
	if !ok || !rec.Visible() || rec.Maximized {
		return nil, false
	}
	return &Drag{
		m:      m,
		id:     id,
		offset: Point{X: grab.X - rec.Position.X, Y: grab.Y - rec.Position.Y},
	}, true
}

// ID is the window being dragged.
func (d *Drag) ID() string {
	return d.id
}

// Move repositions the window so the grab point follows the pointer and
// returns the stored position. Moves after End, or after the window was
// closed, change nothing.
func (d *Drag) Move(pointer Point, vp Viewport) Point {
	if !d.done {
		d.m.Reposition(d.id, Point{X: pointer.X - d.offset.X, Y: pointer.Y - d.offset.Y}, vp)
	}
	rec, _ := d.m.Window(d.id)
	return rec.Position
}

// End finishes the gesture.
func (d *Drag) End() {
	d.done = true
}

// Active reports whether End has not been called yet.
func (d *Drag) Active() bool {
	return !d.done
}
