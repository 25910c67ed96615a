package app_test

import (
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/deskfolio/internal/app"
	"github.com/Gaurav-Gosain/deskfolio/internal/catalog"
	"github.com/Gaurav-Gosain/deskfolio/internal/config"
	"github.com/Gaurav-Gosain/deskfolio/internal/sound"
	"github.com/charmbracelet/x/ansi"
)

var testNow = time.Date(2026, 10, 17, 9, 30, 15, 0, time.UTC)

type recordingPlayer struct {
	played []sound.Effect
}

func (p *recordingPlayer) Play(e sound.Effect) error {
	p.played = append(p.played, e)
	return nil
}

func newDesktop(t *testing.T, tweak func(*app.Options)) *app.Desktop {
	t.Helper()
	settings := config.DefaultSettings()
	settings.BootSplash = false
	opts := app.Options{
		Settings: settings,
		Clock:    func() time.Time { return testNow },
		Sysinfo:  func() (string, error) { return "# System\n\nHost: testbox", nil },
	}
	if tweak != nil {
		tweak(&opts)
	}
	d := app.New(opts)
	d.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return d
}

func screen(d *app.Desktop) string {
	return ansi.Strip(d.GetCanvas().Render())
}

// runCmd runs cmd and feeds every message it produces back into the desktop,
// skipping timers.
func runCmd(d *app.Desktop, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			runCmd(d, c)
		}
	case app.SysinfoMsg, app.CatalogReloadMsg:
		_, next := d.Update(msg)
		runCmd(d, next)
	}
}

func TestNewDefaults(t *testing.T) {
	d := app.New(app.Options{})
	if d.Catalog == nil || d.Keys == nil || d.WM == nil {
		t.Fatal("New left dependencies nil")
	}
	if !d.Booting {
		t.Error("default settings should show the boot splash")
	}
	if d.SessionID == "" {
		t.Error("no session id")
	}
	if got := d.WM.Layout().InitialZ; got != 100 {
		t.Errorf("InitialZ = %d, want 100", got)
	}
}

func TestOpenIconUsesCatalog(t *testing.T) {
	d := newDesktop(t, nil)
	d.OpenIcon("resume")

	rec, ok := d.WM.Window("resume")
	if !ok || !rec.Visible() {
		t.Fatal("resume not open")
	}
	if rec.Title != "resume.doc - Document Viewer" {
		t.Errorf("Title = %q", rec.Title)
	}
	if !strings.Contains(d.Body(rec), "john.doe@example.com") {
		t.Error("body does not come from the catalog")
	}
	if d.SelectedIcon != "resume" {
		t.Errorf("SelectedIcon = %q, want resume", d.SelectedIcon)
	}
}

func TestOpenUnknownIconLogs(t *testing.T) {
	d := newDesktop(t, nil)
	if cmd := d.OpenIcon("nope"); cmd != nil {
		t.Error("unknown icon returned a command")
	}
	if len(d.WM.Windows()) != 0 {
		t.Error("unknown icon created a window")
	}
	last := d.LogMessages[len(d.LogMessages)-1]
	if last.Level != "WARN" || !strings.Contains(last.Message, "nope") {
		t.Errorf("last log = %+v", last)
	}
}

func TestSysinfoWindowRefreshes(t *testing.T) {
	d := newDesktop(t, nil)
	cmd := d.OpenIcon("computer")
	if cmd == nil {
		t.Fatal("sysinfo window returned no command")
	}
	rec, _ := d.WM.Window("computer")
	if !strings.Contains(d.Body(rec), "Gathering") {
		t.Errorf("placeholder body = %q", d.Body(rec))
	}

	runCmd(d, cmd)
	if got := d.Body(rec); !strings.Contains(got, "testbox") {
		t.Errorf("body after refresh = %q", got)
	}
}

func TestSysinfoErrorKeepsPartialBody(t *testing.T) {
	d := newDesktop(t, func(o *app.Options) {
		o.Sysinfo = func() (string, error) { return "# System\n\nHost: partial", errors.New("no cpu") }
	})
	runCmd(d, d.OpenIcon("computer"))

	rec, _ := d.WM.Window("computer")
	if !strings.Contains(d.Body(rec), "partial") {
		t.Errorf("body = %q", d.Body(rec))
	}
	last := d.LogMessages[len(d.LogMessages)-1]
	if last.Level != "WARN" {
		t.Errorf("last log = %+v, want a warning", last)
	}
}

func TestSettingsWindowDescribesSettings(t *testing.T) {
	d := newDesktop(t, func(o *app.Options) {
		o.Settings.Clock24h = true
		o.ConfigPath = "/tmp/deskfolio/config.toml"
	})
	d.OpenIcon("settings")
	rec, ok := d.WM.Window("settings")
	if !ok {
		t.Fatal("settings window not open")
	}
	body := d.Body(rec)
	for _, want := range []string{"Display Properties", "24 hour", "/tmp/deskfolio/config.toml", "(built in)"} {
		if !strings.Contains(body, want) {
			t.Errorf("settings body missing %q:\n%s", want, body)
		}
	}
}

func TestRunMenuItem(t *testing.T) {
	d := newDesktop(t, nil)
	for i, item := range d.Catalog.StartMenu {
		if item.Parsed().Kind == catalog.ActionHelp {
			d.ToggleStartMenu()
			d.RunMenuItem(i)
			if !d.ShowHelp || d.StartMenuOpen {
				t.Errorf("help item: ShowHelp=%v StartMenuOpen=%v", d.ShowHelp, d.StartMenuOpen)
			}
		}
	}

	d.ToggleStartMenu()
	if cmd := d.RunMenuItem(99); cmd != nil || d.StartMenuOpen {
		t.Error("out of range item should only close the menu")
	}
}

func TestShutdownQuits(t *testing.T) {
	d := newDesktop(t, nil)
	if cmd := d.Shutdown(); cmd == nil {
		t.Fatal("Shutdown returned no command")
	}
	if cmd := d.Shutdown(); cmd != nil {
		t.Error("second Shutdown scheduled another quit")
	}
	_, cmd := d.Update(app.ShutdownMsg{})
	if cmd == nil {
		t.Fatal("ShutdownMsg returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ShutdownMsg did not quit")
	}
}

func TestBootDone(t *testing.T) {
	d := newDesktop(t, func(o *app.Options) { o.Settings.BootSplash = true })
	if !d.Booting {
		t.Fatal("not booting")
	}
	if !strings.Contains(screen(d), "John Doe's desktop") {
		t.Error("boot splash not drawn")
	}
	d.Update(app.BootDoneMsg{})
	if d.Booting {
		t.Error("BootDoneMsg did not end the splash")
	}
}

func TestClockMsgUpdatesTaskbar(t *testing.T) {
	d := newDesktop(t, nil)
	if !strings.Contains(screen(d), "9:30 AM") {
		t.Fatalf("clock missing from taskbar:\n%s", screen(d))
	}
	_, cmd := d.Update(app.ClockMsg(testNow.Add(45 * time.Second)))
	if cmd == nil {
		t.Error("clock did not reschedule")
	}
	if !strings.Contains(screen(d), "9:31 AM") {
		t.Error("clock did not advance")
	}
}

func TestHideClock(t *testing.T) {
	d := newDesktop(t, func(o *app.Options) { o.Settings.HideClock = true })
	if strings.Contains(screen(d), "9:30") {
		t.Error("hidden clock drawn")
	}
}

func TestWindowSizeReflows(t *testing.T) {
	d := newDesktop(t, nil)
	d.OpenIcon("portfolio")
	d.Update(tea.WindowSizeMsg{Width: 70, Height: 20})

	// 60x20 is taller than the 19 usable rows, so it pins to the top.
	rec, _ := d.WM.Window("portfolio")
	if rec.Position.X+rec.Size.Width > 70 || rec.Position.Y != 0 {
		t.Errorf("window %+v not clamped into a 70x19 desktop", rec.Bounds())
	}
}

func TestCatalogReload(t *testing.T) {
	d := newDesktop(t, nil)
	d.OpenIcon("portfolio")

	cat, err := catalog.Parse([]byte(`
[owner]
name = "Jane Roe"

[[icons]]
id = "about"
kind = "note"
body = "# About"
`))
	if err != nil {
		t.Fatal(err)
	}
	d.Update(app.CatalogReloadMsg{Catalog: cat})
	if d.Catalog != cat {
		t.Fatal("catalog not swapped")
	}
	rec, _ := d.WM.Window("portfolio")
	if !strings.Contains(d.Body(rec), "no longer available") {
		t.Errorf("orphaned window body = %q", d.Body(rec))
	}

	d.Update(app.CatalogReloadMsg{Err: errors.New("bad toml")})
	if d.Catalog != cat {
		t.Error("failed reload replaced the catalog")
	}
	last := d.LogMessages[len(d.LogMessages)-1]
	if last.Level != "ERROR" {
		t.Errorf("last log = %+v, want an error", last)
	}
}

type staticSource struct {
	cat     *catalog.Catalog
	changed chan struct{}
}

func (s *staticSource) Catalog() *catalog.Catalog { return s.cat }
func (s *staticSource) Changed() <-chan struct{} { return s.changed }

func TestCatalogSourceSwap(t *testing.T) {
	first, err := catalog.Parse([]byte("[[icons]]\nid = \"first\"\nkind = \"note\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	src := &staticSource{cat: first, changed: make(chan struct{})}
	d := newDesktop(t, func(o *app.Options) { o.CatalogSource = src })
	if d.Catalog != first {
		t.Fatal("desktop did not take the source's catalog")
	}

	second, err := catalog.Parse([]byte("[[icons]]\nid = \"second\"\nkind = \"note\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	batch, ok := d.Init()().(tea.BatchMsg)
	if !ok {
		t.Fatal("Init did not batch the clock with the catalog watch")
	}
	src.cat = second
	close(src.changed)

	// The clock tick would block; only the watch returns at once.
	done := make(chan tea.Msg, len(batch))
	for _, c := range batch {
		go func() { done <- c() }()
	}
	select {
	case msg := <-done:
		d.Update(msg)
	case <-time.After(2 * time.Second):
		t.Fatal("catalog watch did not fire")
	}
	if d.Catalog != second {
		t.Errorf("catalog not swapped by the source")
	}
}

func TestLogRingIsCapped(t *testing.T) {
	d := newDesktop(t, nil)
	for i := range config.MaxLogMessages + 25 {
		d.LogInfo("message %d", i)
	}
	if got := len(d.LogMessages); got != config.MaxLogMessages {
		t.Fatalf("len = %d, want %d", got, config.MaxLogMessages)
	}
	want := "message " + strconv.Itoa(config.MaxLogMessages+24)
	if got := d.LogMessages[len(d.LogMessages)-1].Message; got != want {
		t.Errorf("newest = %q, want %q", got, want)
	}
}

func TestWindowEventsAreLogged(t *testing.T) {
	d := newDesktop(t, nil)
	d.OpenIcon("portfolio")
	d.MinimizeWindow("portfolio")

	var msgs []string
	for _, m := range d.LogMessages {
		msgs = append(msgs, m.Message)
	}
	joined := strings.Join(msgs, "\n")
	for _, want := range []string{"window portfolio opened", "window portfolio minimized"} {
		if !strings.Contains(joined, want) {
			t.Errorf("log missing %q:\n%s", want, joined)
		}
	}
}

func TestSoundsPlayOnlyWhenEnabled(t *testing.T) {
	for _, enabled := range []bool{false, true} {
		player := &recordingPlayer{}
		d := newDesktop(t, func(o *app.Options) {
			o.Player = player
			o.Settings.Sound = enabled
		})
		d.OpenIcon("portfolio")
		_, cmd := d.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
		runAll(cmd)

		if enabled && !containsEffect(player.played, sound.Open) {
			t.Errorf("sound on: played %v, want Open", player.played)
		}
		if !enabled && len(player.played) != 0 {
			t.Errorf("sound off: played %v", player.played)
		}
	}
}

func runAll(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	if batch, ok := cmd().(tea.BatchMsg); ok {
		for _, c := range batch {
			runAll(c)
		}
	}
}

func containsEffect(effects []sound.Effect, e sound.Effect) bool {
	for _, got := range effects {
		if got == e {
			return true
		}
	}
	return false
}
