// Package wm tracks a collection of overlapping windows: their open, minimized
// and maximized state, their geometry and their stacking order.
//
// The manager never measures the screen itself. Every operation that depends
// on the screen takes a Viewport, so the same logic runs headless in tests and
// behind any renderer. A Manager is owned by a single event loop and is not
// safe for concurrent use.
package wm

import (
	"io"
	"slices"

	"github.com/charmbracelet/log"
)

// Manager owns the window records and the stacking counter.
type Manager struct {
	layout    Layout
	retention Retention
	logger    *log.Logger

	order   []string
	records map[string]*Record

	// nextZ only grows. Every focus-affecting operation takes the next value.
	nextZ  int
	active string

	observers      []observer
	nextObserverID int
}

// Option configures a Manager.
type Option func(*Manager)

// WithLayout replaces DefaultLayout.
func WithLayout(l Layout) Option {
	return func(m *Manager) {
		m.layout = l
	}
}

// WithRetention sets the close policy. RetainClosed is the default.
func WithRetention(r Retention) Option {
	return func(m *Manager) {
		m.retention = r
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithObserver subscribes fn before any window exists.
func WithObserver(fn func(Event)) Option {
	return func(m *Manager) {
		m.Subscribe(fn)
	}
}

// New creates an empty manager.
func New(opts ...Option) *Manager {
	m := &Manager{
		layout:  DefaultLayout(),
		logger:  log.New(io.Discard),
		records: make(map[string]*Record),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.nextZ = m.layout.InitialZ
	return m
}

// Layout returns the placement constants in use.
func (m *Manager) Layout() Layout {
	return m.layout
}

func (m *Manager) bringToFront(rec *Record) {
	m.nextZ++
	rec.Z = m.nextZ
	m.active = rec.ID
}

func (m *Manager) lookup(op, id string) (*Record, bool) {
	rec, ok := m.records[id]
	if !ok {
		m.logger.Debug("ignoring operation on unknown window", "op", op, "id", id)
	}
	return rec, ok
}

// Open creates, resurrects, restores or raises the window with the given id.
// spec is only read when the record does not exist yet.
func (m *Manager) Open(id string, spec SpawnSpec, vp Viewport) {
	if id == "" {
		m.logger.Debug("ignoring open without id")
		return
	}

	rec, ok := m.records[id]
	switch {
	case !ok:
		rec = m.create(id, spec, vp)
		m.bringToFront(rec)
		m.logger.Debug("window created", "id", id, "z", rec.Z, "x", rec.Position.X, "y", rec.Position.Y)
		m.emit(EventOpened, id)

	case !rec.Open:
		rec.Open = true
		rec.Minimized = false
		m.refit(rec, vp)
		m.bringToFront(rec)
		m.logger.Debug("window reopened", "id", id, "z", rec.Z)
		m.emit(EventOpened, id)

	case rec.Minimized:
		rec.Minimized = false
		m.bringToFront(rec)
		m.emit(EventRestored, id)

	default:
		m.bringToFront(rec)
		m.emit(EventFocused, id)
	}
}

func (m *Manager) create(id string, spec SpawnSpec, vp Viewport) *Record {
	size := m.layout.fitInto(m.layout.normalizeSize(spec.Size), vp)

	pos := m.layout.cascade(len(m.order))
	if spec.Position != nil {
		pos = *spec.Position
	}
	if vp.Known() {
		pos = ClampPosition(pos, size, vp)
	} else {
		pos = Point{X: max(0, pos.X), Y: max(0, pos.Y)}
	}

	rec := &Record{
		ID:       id,
		Title:    spec.Title,
		Content:  spec.Content,
		Kind:     spec.Kind,
		Open:     true,
		Position: pos,
		Size:     size,
	}
	m.records[id] = rec
	m.order = append(m.order, id)
	return rec
}

// refit brings a record's stored geometry back inside vp.
func (m *Manager) refit(rec *Record, vp Viewport) {
	if !vp.Known() {
		return
	}
	if rec.Maximized {
		b := MaximizedBounds(vp, m.layout)
		rec.Position, rec.Size = b.Point, b.Size
		return
	}
	rec.Position = ClampPosition(rec.Position, rec.Size, vp)
}

// Close hides the window, or forgets it under DeleteClosed. Closing the
// active window leaves no window active.
func (m *Manager) Close(id string) {
	rec, ok := m.lookup("close", id)
	if !ok || !rec.Open {
		return
	}

	if m.retention == DeleteClosed {
		delete(m.records, id)
		m.order = slices.DeleteFunc(m.order, func(s string) bool { return s == id })
	} else {
		rec.Open = false
		rec.Minimized = false
	}

	if m.active == id {
		m.active = ""
	}
	m.emit(EventClosed, id)
}

// Minimize hides an open window while keeping it on the taskbar. Its stacking
// value is untouched; if it was active, the top-most visible window becomes
// active.
func (m *Manager) Minimize(id string) {
	rec, ok := m.lookup("minimize", id)
	if !ok || !rec.Open || rec.Minimized {
		return
	}
	rec.Minimized = true
	if m.active == id {
		m.active = ""
		if top, ok := m.topVisible(); ok {
			m.active = top.ID
		}
	}
	m.emit(EventMinimized, id)
}

// Restore shows a minimized window and raises it.
func (m *Manager) Restore(id string) {
	rec, ok := m.lookup("restore", id)
	if !ok || !rec.Open || !rec.Minimized {
		return
	}
	rec.Minimized = false
	m.bringToFront(rec)
	m.emit(EventRestored, id)
}

// Focus raises an open window and makes it active, restoring it first if it
// was minimized.
func (m *Manager) Focus(id string) {
	rec, ok := m.lookup("focus", id)
	if !ok || !rec.Open {
		return
	}
	rec.Minimized = false
	m.bringToFront(rec)
	m.emit(EventFocused, id)
}

// ToggleMaximize fills vp with a visible window, or puts a maximized one back
// to the geometry it had before.
func (m *Manager) ToggleMaximize(id string, vp Viewport) {
	rec, ok := m.lookup("maximize", id)
	if !ok || !rec.Visible() {
		return
	}

	if rec.Maximized {
		rec.Maximized = false
		rec.Position, rec.Size = rec.Normal.Point, rec.Normal.Size
		m.emit(EventUnmaximized, id)
		return
	}

	rec.Normal = rec.Bounds()
	rec.Maximized = true
	b := MaximizedBounds(vp, m.layout)
	rec.Position, rec.Size = b.Point, b.Size
	m.emit(EventMaximized, id)
}

// Reposition moves a window, clamping p into vp. Maximized windows do not move.
func (m *Manager) Reposition(id string, p Point, vp Viewport) {
	rec, ok := m.lookup("reposition", id)
	if !ok || !rec.Open || rec.Maximized {
		return
	}
	rec.Position = ClampPosition(p, rec.Size, vp)
}

// Reflow adapts every open window to a resized viewport: maximized windows
// are refilled, the others clamped back inside.
func (m *Manager) Reflow(vp Viewport) {
	for _, id := range m.order {
		if rec := m.records[id]; rec.Open {
			m.refit(rec, vp)
		}
	}
}

// Cycle focuses the open window delta places away from the active one, in
// taskbar order.
func (m *Manager) Cycle(delta int) {
	open := m.openIDs()
	if len(open) == 0 {
		return
	}
	idx := slices.Index(open, m.active)
	if idx < 0 {
		if delta < 0 {
			idx = 0
		} else {
			idx = -1
		}
	}
	next := ((idx+delta)%len(open) + len(open)) % len(open)
	m.Focus(open[next])
}

// ActiveWindowID returns the window holding focus, if any.
func (m *Manager) ActiveWindowID() (string, bool) {
	return m.active, m.active != ""
}

// Window returns a snapshot of one record.
func (m *Manager) Window(id string) (Record, bool) {
	rec, ok := m.records[id]
	if !ok {
		return Record{}, false
	}
	return *rec, true
}

// Windows returns every known record in insertion order, including closed
// records kept by RetainClosed.
func (m *Manager) Windows() []Record {
	out := make([]Record, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, *m.records[id])
	}
	return out
}

// Visible returns the painted windows from bottom to top.
func (m *Manager) Visible() []Record {
	out := make([]Record, 0, len(m.order))
	for _, id := range m.order {
		if rec := m.records[id]; rec.Visible() {
			out = append(out, *rec)
		}
	}
	slices.SortStableFunc(out, func(a, b Record) int { return a.Z - b.Z })
	return out
}

// TaskbarEntries lists the open windows, minimized ones included, in
// insertion order.
func (m *Manager) TaskbarEntries() []TaskbarEntry {
	out := make([]TaskbarEntry, 0, len(m.order))
	for _, id := range m.order {
		rec := m.records[id]
		if !rec.Open {
			continue
		}
		out = append(out, TaskbarEntry{
			ID:        rec.ID,
			Title:     rec.Title,
			Kind:      rec.Kind,
			Minimized: rec.Minimized,
			Active:    rec.ID == m.active,
		})
	}
	return out
}

// WindowAt returns the top-most visible window covering the cell (x, y).
func (m *Manager) WindowAt(x, y int) (Record, bool) {
	visible := m.Visible()
	for i := len(visible) - 1; i >= 0; i-- {
		if visible[i].Bounds().Contains(x, y) {
			return visible[i], true
		}
	}
	return Record{}, false
}

func (m *Manager) topVisible() (*Record, bool) {
	var top *Record
	for _, id := range m.order {
		rec := m.records[id]
		if rec.Visible() && (top == nil || rec.Z > top.Z) {
			top = rec
		}
	}
	return top, top != nil
}

func (m *Manager) openIDs() []string {
	var ids []string
	for _, id := range m.order {
		if m.records[id].Open {
			ids = append(ids, id)
		}
	}
	return ids
}
