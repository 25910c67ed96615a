package wm_test

import (
	"math/rand/v2"
	"reflect"
	"testing"

	"github.com/Gaurav-Gosain/deskfolio/internal/wm"
)

// pixelLayout mirrors a browser desktop: 50px cascade base, 20px steps, a
// 40px taskbar and the narrow margins used on touch screens.
func pixelLayout() wm.Layout {
	return wm.Layout{
		CascadeBase:  wm.Point{X: 50, Y: 50},
		CascadeStep:  wm.Point{X: 20, Y: 20},
		InitialZ:     100,
		MinSize:      wm.Size{Width: 1, Height: 1},
		NarrowWidth:  768,
		WideInsets:   wm.Insets{Right: 4},
		NarrowInsets: wm.Insets{Top: 4, Right: 4, Bottom: 16, Left: 4},
	}
}

var desktop = wm.Viewport{Width: 1280, Height: 800, ReservedBottom: 40}

func spec(title string, w, h int) wm.SpawnSpec {
	return wm.SpawnSpec{Title: title, Content: title + " body", Kind: wm.KindNote, Size: wm.Size{Width: w, Height: h}}
}

func newManager(opts ...wm.Option) *wm.Manager {
	return wm.New(append([]wm.Option{wm.WithLayout(pixelLayout())}, opts...)...)
}

func mustWindow(t *testing.T, m *wm.Manager, id string) wm.Record {
	t.Helper()
	rec, ok := m.Window(id)
	if !ok {
		t.Fatalf("window %q not found", id)
	}
	return rec
}

func TestOpenFirstWindow(t *testing.T) {
	m := newManager()
	m.Open("portfolio", spec("portfolio.txt - Notepad", 500, 400), desktop)

	windows := m.Windows()
	if len(windows) != 1 {
		t.Fatalf("expected 1 window, got %d", len(windows))
	}
	rec := windows[0]
	if !rec.Open || rec.Minimized {
		t.Errorf("expected open and not minimized, got open=%v minimized=%v", rec.Open, rec.Minimized)
	}
	if rec.Z <= pixelLayout().InitialZ {
		t.Errorf("expected z above %d, got %d", pixelLayout().InitialZ, rec.Z)
	}
	if rec.Position != (wm.Point{X: 50, Y: 50}) {
		t.Errorf("expected position {50 50}, got %v", rec.Position)
	}
	if rec.Size != (wm.Size{Width: 500, Height: 400}) {
		t.Errorf("expected size 500x400, got %v", rec.Size)
	}
	if id, ok := m.ActiveWindowID(); !ok || id != "portfolio" {
		t.Errorf("expected portfolio active, got %q (%v)", id, ok)
	}
}

func TestCascadeOffsets(t *testing.T) {
	m := newManager()
	for _, id := range []string{"a", "b", "c"} {
		m.Open(id, spec(id, 200, 100), desktop)
	}

	want := map[string]wm.Point{
		"a": {X: 50, Y: 50},
		"b": {X: 70, Y: 70},
		"c": {X: 90, Y: 90},
	}
	for id, pos := range want {
		if got := mustWindow(t, m, id).Position; got != pos {
			t.Errorf("%s: got position %v, want %v", id, got, pos)
		}
	}
}

func TestOpenUsesExplicitPosition(t *testing.T) {
	m := newManager()
	s := spec("a", 200, 100)
	s.Position = &wm.Point{X: 150, Y: 150}
	m.Open("a", s, desktop)

	if got := mustWindow(t, m, "a").Position; got != (wm.Point{X: 150, Y: 150}) {
		t.Errorf("got %v, want {150 150}", got)
	}
}

func TestOpenShrinksToSmallViewport(t *testing.T) {
	m := newManager()
	small := wm.Viewport{Width: 320, Height: 240, ReservedBottom: 40}
	m.Open("a", spec("a", 500, 400), small)

	rec := mustWindow(t, m, "a")
	if rec.Size != (wm.Size{Width: 320, Height: 200}) {
		t.Errorf("expected size shrunk to 320x200, got %v", rec.Size)
	}
	if rec.Position != (wm.Point{}) {
		t.Errorf("expected position clamped to origin, got %v", rec.Position)
	}
}

func TestFocusRaisesAndMarksActive(t *testing.T) {
	m := newManager()
	m.Open("a", spec("a", 200, 100), desktop)
	m.Open("b", spec("b", 200, 100), desktop)
	m.Focus("a")

	a, b := mustWindow(t, m, "a"), mustWindow(t, m, "b")
	if a.Z <= b.Z {
		t.Errorf("expected z(a) > z(b), got %d <= %d", a.Z, b.Z)
	}

	for _, e := range m.TaskbarEntries() {
		if e.Active != (e.ID == "a") {
			t.Errorf("entry %s: active=%v", e.ID, e.Active)
		}
	}
}

func TestFocusRestoresMinimized(t *testing.T) {
	m := newManager()
	m.Open("a", spec("a", 200, 100), desktop)
	m.Open("b", spec("b", 200, 100), desktop)
	m.Minimize("a")
	m.Focus("a")

	a, b := mustWindow(t, m, "a"), mustWindow(t, m, "b")
	if a.Minimized {
		t.Error("expected a to be restored by focus")
	}
	if a.Z <= b.Z {
		t.Errorf("expected a on top, got z(a)=%d z(b)=%d", a.Z, b.Z)
	}
}

func TestRepositionDegenerateClamp(t *testing.T) {
	m := newManager()
	m.Open("a", spec("a", 500, 100), wm.Viewport{})
	m.Reposition("a", wm.Point{X: 999, Y: 0}, wm.Viewport{Width: 300, Height: 800, ReservedBottom: 40})

	if got := mustWindow(t, m, "a").Position.X; got != 0 {
		t.Errorf("expected x=0 for a window wider than the viewport, got %d", got)
	}
}

func TestCloseThenReopen(t *testing.T) {
	for _, retention := range []wm.Retention{wm.RetainClosed, wm.DeleteClosed} {
		m := newManager(wm.WithRetention(retention))
		m.Open("a", spec("a", 200, 100), desktop)
		m.Reposition("a", wm.Point{X: 300, Y: 200}, desktop)
		m.Minimize("a")
		m.Close("a")
		m.Open("a", spec("a", 200, 100), desktop)

		rec := mustWindow(t, m, "a")
		if !rec.Open || rec.Minimized {
			t.Errorf("retention %d: expected usable window, got open=%v minimized=%v", retention, rec.Open, rec.Minimized)
		}

		wantPos := wm.Point{X: 300, Y: 200}
		if retention == wm.DeleteClosed {
			wantPos = wm.Point{X: 50, Y: 50}
		}
		if rec.Position != wantPos {
			t.Errorf("retention %d: got position %v, want %v", retention, rec.Position, wantPos)
		}
	}
}

func TestCloseRetainsRecord(t *testing.T) {
	m := newManager()
	m.Open("a", spec("a", 200, 100), desktop)
	m.Close("a")

	rec := mustWindow(t, m, "a")
	if rec.Open {
		t.Error("expected closed record")
	}
	if len(m.TaskbarEntries()) != 0 {
		t.Error("closed windows must not be on the taskbar")
	}
	if len(m.Visible()) != 0 {
		t.Error("closed windows must not be painted")
	}
}

func TestCloseDeletesRecord(t *testing.T) {
	m := newManager(wm.WithRetention(wm.DeleteClosed))
	m.Open("a", spec("a", 200, 100), desktop)
	m.Close("a")

	if _, ok := m.Window("a"); ok {
		t.Error("expected record to be deleted")
	}
}

func TestCloseActiveClearsFocus(t *testing.T) {
	m := newManager()
	m.Open("a", spec("a", 200, 100), desktop)
	m.Open("b", spec("b", 200, 100), desktop)

	m.Close("a")
	if id, _ := m.ActiveWindowID(); id != "b" {
		t.Errorf("closing an inactive window changed focus to %q", id)
	}

	m.Close("b")
	if id, ok := m.ActiveWindowID(); ok {
		t.Errorf("expected no active window, got %q", id)
	}
}

func TestMinimizeActiveHandsFocusToTopWindow(t *testing.T) {
	m := newManager()
	m.Open("a", spec("a", 200, 100), desktop)
	m.Open("b", spec("b", 200, 100), desktop)
	m.Open("c", spec("c", 200, 100), desktop)
	m.Focus("a")
	zBefore := mustWindow(t, m, "c").Z

	m.Minimize("a")

	if id, _ := m.ActiveWindowID(); id != "c" {
		t.Errorf("expected c active, got %q", id)
	}
	if got := mustWindow(t, m, "c").Z; got != zBefore {
		t.Errorf("handing focus must not restack: z changed %d -> %d", zBefore, got)
	}
	if !mustWindow(t, m, "a").Minimized {
		t.Error("expected a minimized")
	}

	m.Minimize("b")
	m.Minimize("c")
	if id, ok := m.ActiveWindowID(); ok {
		t.Errorf("expected no active window, got %q", id)
	}
}

func TestMinimizeKeepsZ(t *testing.T) {
	m := newManager()
	m.Open("a", spec("a", 200, 100), desktop)
	z := mustWindow(t, m, "a").Z
	m.Minimize("a")
	if got := mustWindow(t, m, "a").Z; got != z {
		t.Errorf("minimize changed z from %d to %d", z, got)
	}
}

func TestIdempotentMinimizeAndClose(t *testing.T) {
	tests := []struct {
		name string
		op   func(m *wm.Manager)
	}{
		{"minimize", func(m *wm.Manager) { m.Minimize("a") }},
		{"close", func(m *wm.Manager) { m.Close("a") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			once, twice := newManager(), newManager()
			for _, m := range []*wm.Manager{once, twice} {
				m.Open("a", spec("a", 200, 100), desktop)
				m.Open("b", spec("b", 200, 100), desktop)
				m.Focus("a")
			}

			tt.op(once)
			tt.op(twice)
			tt.op(twice)

			if !reflect.DeepEqual(once.Windows(), twice.Windows()) {
				t.Errorf("state differs:\nonce:  %+v\ntwice: %+v", once.Windows(), twice.Windows())
			}
			a1, _ := once.ActiveWindowID()
			a2, _ := twice.ActiveWindowID()
			if a1 != a2 {
				t.Errorf("active differs: %q vs %q", a1, a2)
			}
		})
	}
}

func TestRestoreRequiresMinimized(t *testing.T) {
	m := newManager()
	m.Open("a", spec("a", 200, 100), desktop)
	m.Open("b", spec("b", 200, 100), desktop)
	z := mustWindow(t, m, "a").Z

	m.Restore("a")
	if got := mustWindow(t, m, "a").Z; got != z {
		t.Errorf("restore of a visible window must be a no-op, z %d -> %d", z, got)
	}

	m.Minimize("a")
	m.Restore("a")
	rec := mustWindow(t, m, "a")
	if rec.Minimized || rec.Z <= mustWindow(t, m, "b").Z {
		t.Errorf("expected a restored on top, got %+v", rec)
	}
	if id, _ := m.ActiveWindowID(); id != "a" {
		t.Errorf("expected a active, got %q", id)
	}
}

func TestMaximizeRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		vp      wm.Viewport
		wantMax wm.Rect
	}{
		{
			name:    "wide",
			vp:      desktop,
			wantMax: wm.Rect{Point: wm.Point{}, Size: wm.Size{Width: 1276, Height: 760}},
		},
		{
			name:    "narrow",
			vp:      wm.Viewport{Width: 400, Height: 700, ReservedBottom: 40},
			wantMax: wm.Rect{Point: wm.Point{X: 4, Y: 4}, Size: wm.Size{Width: 392, Height: 640}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newManager()
			m.Open("a", spec("a", 300, 200), tt.vp)
			m.Reposition("a", wm.Point{X: 30, Y: 40}, tt.vp)
			before := mustWindow(t, m, "a").Bounds()

			m.ToggleMaximize("a", tt.vp)
			rec := mustWindow(t, m, "a")
			if !rec.Maximized {
				t.Fatal("expected maximized")
			}
			if rec.Bounds() != tt.wantMax {
				t.Errorf("maximized bounds: got %+v, want %+v", rec.Bounds(), tt.wantMax)
			}

			m.Reposition("a", wm.Point{X: 10, Y: 10}, tt.vp)
			if mustWindow(t, m, "a").Bounds() != tt.wantMax {
				t.Error("a maximized window must not move")
			}

			m.ToggleMaximize("a", tt.vp)
			rec = mustWindow(t, m, "a")
			if rec.Maximized {
				t.Error("expected restored size")
			}
			if rec.Bounds() != before {
				t.Errorf("round trip: got %+v, want %+v", rec.Bounds(), before)
			}
		})
	}
}

func TestMaximizeIgnoresMinimized(t *testing.T) {
	m := newManager()
	m.Open("a", spec("a", 300, 200), desktop)
	m.Minimize("a")
	m.ToggleMaximize("a", desktop)
	if mustWindow(t, m, "a").Maximized {
		t.Error("a minimized window must not maximize")
	}
}

func TestMinimizeKeepsMaximizedGeometry(t *testing.T) {
	m := newManager()
	m.Open("a", spec("a", 300, 200), desktop)
	before := mustWindow(t, m, "a").Bounds()
	m.ToggleMaximize("a", desktop)
	m.Minimize("a")
	m.Restore("a")

	rec := mustWindow(t, m, "a")
	if !rec.Maximized {
		t.Fatal("expected the maximized flag to survive minimize")
	}
	m.ToggleMaximize("a", desktop)
	if got := mustWindow(t, m, "a").Bounds(); got != before {
		t.Errorf("got %+v, want %+v", got, before)
	}
}

func TestRepositionClampsEveryInput(t *testing.T) {
	tests := []struct {
		name string
		vp   wm.Viewport
		size wm.Size
		in   wm.Point
		want wm.Point
	}{
		{"inside", desktop, wm.Size{Width: 200, Height: 100}, wm.Point{X: 10, Y: 20}, wm.Point{X: 10, Y: 20}},
		{"negative", desktop, wm.Size{Width: 200, Height: 100}, wm.Point{X: -50, Y: -7}, wm.Point{}},
		{"past right", desktop, wm.Size{Width: 200, Height: 100}, wm.Point{X: 5000, Y: 0}, wm.Point{X: 1080, Y: 0}},
		{"into taskbar", desktop, wm.Size{Width: 200, Height: 100}, wm.Point{X: 0, Y: 790}, wm.Point{X: 0, Y: 660}},
		{"taller than viewport", wm.Viewport{Width: 800, Height: 100, ReservedBottom: 40}, wm.Size{Width: 200, Height: 100}, wm.Point{X: 5, Y: 50}, wm.Point{X: 5, Y: 0}},
		{"unmeasured viewport", wm.Viewport{}, wm.Size{Width: 200, Height: 100}, wm.Point{X: 5, Y: 50}, wm.Point{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newManager()
			m.Open("a", spec("a", tt.size.Width, tt.size.Height), wm.Viewport{})
			m.Reposition("a", tt.in, tt.vp)
			if got := mustWindow(t, m, "a").Position; got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRepositionRandomInputsStayInBounds(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	m := newManager()
	m.Open("a", spec("a", 500, 300), wm.Viewport{})

	for i := 0; i < 2000; i++ {
		vp := wm.Viewport{Width: r.IntN(2000), Height: r.IntN(1200), ReservedBottom: r.IntN(60)}
		p := wm.Point{X: r.IntN(10000) - 5000, Y: r.IntN(10000) - 5000}
		m.Reposition("a", p, vp)

		got := mustWindow(t, m, "a").Position
		maxX := max(0, vp.Width-500)
		maxY := max(0, vp.Height-vp.ReservedBottom-300)
		if got.X < 0 || got.X > maxX || got.Y < 0 || got.Y > maxY {
			t.Fatalf("iteration %d: %v out of [0,%d]x[0,%d] for %+v", i, got, maxX, maxY, vp)
		}
	}
}

func TestTopWindowIsLastRaised(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 5))
	ids := []string{"a", "b", "c", "d"}
	m := newManager()
	lastRaised := ""

	for i := 0; i < 5000; i++ {
		id := ids[r.IntN(len(ids))]
		before, known := m.Window(id)

		switch r.IntN(5) {
		case 0:
			m.Open(id, spec(id, 200, 100), desktop)
			lastRaised = id
		case 1:
			m.Close(id)
		case 2:
			m.Minimize(id)
		case 3:
			m.Restore(id)
			if known && before.Open && before.Minimized {
				lastRaised = id
			}
		case 4:
			m.Focus(id)
			if known && before.Open {
				lastRaised = id
			}
		}

		if lastRaised == "" {
			continue
		}
		top, count := "", 0
		maxZ := -1
		for _, rec := range m.Windows() {
			switch {
			case rec.Z > maxZ:
				maxZ, top, count = rec.Z, rec.ID, 1
			case rec.Z == maxZ:
				count++
			}
		}
		if count != 1 {
			t.Fatalf("step %d: %d windows share z=%d", i, count, maxZ)
		}
		if top != lastRaised {
			t.Fatalf("step %d: top window %q, last raised %q", i, top, lastRaised)
		}
	}
}

func TestUnknownIDsAreNoOps(t *testing.T) {
	m := newManager()
	m.Open("a", spec("a", 200, 100), desktop)
	want := m.Windows()

	m.Close("ghost")
	m.Minimize("ghost")
	m.Restore("ghost")
	m.Focus("ghost")
	m.ToggleMaximize("ghost", desktop)
	m.Reposition("ghost", wm.Point{X: 1, Y: 1}, desktop)
	m.Open("", spec("", 10, 10), desktop)

	if !reflect.DeepEqual(m.Windows(), want) {
		t.Errorf("state changed: %+v", m.Windows())
	}
	if id, _ := m.ActiveWindowID(); id != "a" {
		t.Errorf("active changed to %q", id)
	}
}

func TestOperationsOnClosedWindow(t *testing.T) {
	m := newManager()
	m.Open("a", spec("a", 200, 100), desktop)
	m.Close("a")
	want := m.Windows()

	m.Focus("a")
	m.Minimize("a")
	m.Reposition("a", wm.Point{X: 300, Y: 300}, desktop)
	m.ToggleMaximize("a", desktop)

	if !reflect.DeepEqual(m.Windows(), want) {
		t.Errorf("closed window changed: %+v", m.Windows())
	}
}

func TestReflow(t *testing.T) {
	m := newManager()
	m.Open("a", spec("a", 300, 200), desktop)
	m.Open("b", spec("b", 300, 200), desktop)
	m.Reposition("a", wm.Point{X: 900, Y: 500}, desktop)
	m.ToggleMaximize("b", desktop)

	smaller := wm.Viewport{Width: 1000, Height: 600, ReservedBottom: 40}
	m.Reflow(smaller)

	if got := mustWindow(t, m, "a").Position; got != (wm.Point{X: 700, Y: 360}) {
		t.Errorf("a: got %v, want {700 360}", got)
	}
	want := wm.MaximizedBounds(smaller, pixelLayout())
	if got := mustWindow(t, m, "b").Bounds(); got != want {
		t.Errorf("b: got %+v, want %+v", got, want)
	}
}

func TestWindowAtPicksTopmost(t *testing.T) {
	m := newManager()
	m.Open("a", spec("a", 300, 200), desktop)
	m.Open("b", spec("b", 300, 200), desktop)

	if rec, ok := m.WindowAt(100, 100); !ok || rec.ID != "b" {
		t.Errorf("expected b under the pointer, got %q", rec.ID)
	}
	m.Focus("a")
	if rec, ok := m.WindowAt(100, 100); !ok || rec.ID != "a" {
		t.Errorf("expected a under the pointer, got %q", rec.ID)
	}
	m.Minimize("a")
	if rec, ok := m.WindowAt(60, 60); ok {
		t.Errorf("expected nothing at a's corner, got %q", rec.ID)
	}
	if _, ok := m.WindowAt(1200, 700); ok {
		t.Error("expected empty desktop")
	}
}

func TestVisiblePaintOrder(t *testing.T) {
	m := newManager()
	for _, id := range []string{"a", "b", "c"} {
		m.Open(id, spec(id, 100, 100), desktop)
	}
	m.Focus("a")
	m.Minimize("b")

	var got []string
	for _, rec := range m.Visible() {
		got = append(got, rec.ID)
	}
	if want := []string{"c", "a"}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTaskbarEntriesInsertionOrder(t *testing.T) {
	m := newManager()
	for _, id := range []string{"a", "b", "c"} {
		m.Open(id, spec(id, 100, 100), desktop)
	}
	m.Focus("a")
	m.Minimize("b")
	m.Close("c")
	m.Open("c", spec("c", 100, 100), desktop)

	entries := m.TaskbarEntries()
	var ids []string
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(ids, want) {
		t.Errorf("got %v, want %v", ids, want)
	}
	if !entries[1].Minimized {
		t.Error("expected b listed as minimized")
	}
	if !entries[2].Active || entries[0].Active {
		t.Errorf("expected only c active: %+v", entries)
	}
}

func TestCycle(t *testing.T) {
	m := newManager()
	for _, id := range []string{"a", "b", "c"} {
		m.Open(id, spec(id, 100, 100), desktop)
	}
	m.Minimize("a")

	steps := []struct {
		delta int
		want  string
	}{
		{1, "a"},
		{1, "b"},
		{-1, "a"},
		{-1, "c"},
	}
	for i, s := range steps {
		m.Cycle(s.delta)
		if id, _ := m.ActiveWindowID(); id != s.want {
			t.Fatalf("step %d: got %q, want %q", i, id, s.want)
		}
	}
	if mustWindow(t, m, "a").Minimized {
		t.Error("cycling onto a minimized window restores it")
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    wm.Kind
		wantErr bool
	}{
		{"note", wm.KindNote, false},
		{"Notepad", wm.KindNote, false},
		{"document", wm.KindDocument, false},
		{" doc ", wm.KindDocument, false},
		{"folder", wm.KindFolder, false},
		{"spreadsheet", 0, true},
	}
	for _, tt := range tests {
		got, err := wm.ParseKind(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseKind(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseKind(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
