package app

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/deskfolio/internal/catalog"
	"github.com/Gaurav-Gosain/deskfolio/internal/config"
	"github.com/Gaurav-Gosain/deskfolio/internal/pool"
	"github.com/Gaurav-Gosain/deskfolio/internal/theme"
	"github.com/charmbracelet/x/ansi"
)

// GetCanvas composes the desktop. The compositor paints layers by ascending z:
// wallpaper, icons, windows, taskbar, start menu, overlays.
func (m *Desktop) GetCanvas() *lipgloss.Canvas {
	canvas := lipgloss.NewCanvas(m.Width, m.Height)

	layersPtr := pool.GetLayerSlice()
	layers := (*layersPtr)[:0]
	defer pool.PutLayerSlice(layersPtr)

	switch {
	case m.ShuttingDown:
		layers = append(layers, m.renderShutdown())
	case m.Booting:
		layers = append(layers, m.renderBoot())
	default:
		layers = append(layers, m.renderWallpaper())
		layers = append(layers, m.renderIcons()...)

		activeID, _ := m.WM.ActiveWindowID()
		for _, rec := range m.WM.Visible() {
			content := m.renderWindow(rec, rec.ID == activeID)
			layers = append(layers, lipgloss.NewLayer(content).
				X(rec.Position.X).
				Y(rec.Position.Y).
				Z(config.ZIcons+rec.Z).
				ID(rec.ID))
		}

		layers = append(layers, m.renderTaskbar())
		if m.StartMenuOpen {
			layers = append(layers, m.renderStartMenu())
		}
		switch {
		case m.ShowHelp:
			layers = append(layers, m.renderHelp())
		case m.ShowLogs:
			layers = append(layers, m.renderLogs())
		}
	}

	canvas.Compose(lipgloss.NewCompositor(layers...))
	*layersPtr = layers
	return canvas
}

// View renders the desktop.
func (m *Desktop) View() tea.View {
	var view tea.View
	if m.Width > 0 && m.Height > 0 {
		view.SetContent(lipgloss.Sprint(m.GetCanvas().Render()))
	}
	view.AltScreen = true
	view.MouseMode = tea.MouseModeAllMotion
	return view
}

func (m *Desktop) renderWallpaper() *lipgloss.Layer {
	height := max(m.TaskbarY(), 0)
	style := lipgloss.NewStyle().
		Background(theme.Desktop()).
		Foreground(theme.DesktopText())

	owner := m.Catalog.Owner.Name
	if m.Catalog.Owner.Role != "" {
		owner += " · " + m.Catalog.Owner.Role
	}
	if m.Settings.ASCIIOnly {
		owner = strings.ReplaceAll(owner, "·", "-")
	}
	rows := make([]string, height)
	blank := strings.Repeat(" ", max(m.Width, 0))
	for i := range rows {
		rows[i] = blank
	}
	if height > 0 && owner != "" {
		owner = ansi.Truncate(owner, max(m.Width-2, 0), m.ellipsis())
		pad := max(m.Width-ansi.StringWidth(owner)-2, 0)
		rows[height-1] = strings.Repeat(" ", pad) + owner + "  "
	}
	return lipgloss.NewLayer(style.Render(strings.Join(rows, "\n"))).
		X(0).Y(0).Z(config.ZWallpaper).ID("wallpaper")
}

func (m *Desktop) renderIcons() []*lipgloss.Layer {
	icons := m.Catalog.DesktopIcons()
	layers := make([]*lipgloss.Layer, 0, len(icons))

	base := lipgloss.NewStyle().
		Background(theme.Desktop()).
		Foreground(theme.DesktopText()).
		Align(lipgloss.Center)
	selected := lipgloss.NewStyle().
		Background(theme.Highlight()).
		Foreground(theme.HighlightText())

	for i, icon := range icons {
		r := m.IconRect(i)
		if r.Y+r.Height > m.TaskbarY() || r.X+r.Width > m.Width {
			continue
		}
		label := ansi.Truncate(icon.Label, r.Width, m.ellipsis())
		if icon.ID == m.SelectedIcon {
			label = selected.Render(label)
		}
		content := lipgloss.JoinVertical(lipgloss.Center,
			base.Width(r.Width).Bold(true).Render(icon.GlyphFor(m.Settings.ASCIIOnly)),
			base.Width(r.Width).Render(label),
		)
		layers = append(layers, lipgloss.NewLayer(content).
			X(r.X).Y(r.Y).Z(config.ZIcons).ID("icon:"+icon.ID))
	}
	return layers
}

func (m *Desktop) renderTaskbar() *lipgloss.Layer {
	bar := lipgloss.NewStyle().
		Background(theme.Chrome()).
		Foreground(theme.ChromeText())
	pressed := lipgloss.NewStyle().
		Background(theme.Highlight()).
		Foreground(theme.HighlightText()).
		Bold(true)
	dim := bar.Foreground(theme.ChromeShadow())

	sb := pool.GetStringBuilder()
	defer pool.PutStringBuilder(sb)

	start := " ◆ Start "
	if m.Settings.ASCIIOnly {
		start = "[ Start ]"
	}
	start = ansi.Truncate(start, config.StartButtonWidth, "")
	if m.StartMenuOpen {
		sb.WriteString(pressed.Render(start))
	} else {
		sb.WriteString(bar.Bold(true).Render(start))
	}
	used := ansi.StringWidth(start)

	for _, b := range m.TaskbarButtons() {
		if gap := b.Rect.X - used; gap > 0 {
			sb.WriteString(bar.Render(strings.Repeat(" ", gap)))
			used += gap
		}
		label := " " + catalog.Glyph(b.Entry.Kind, m.Settings.ASCIIOnly) + " " + b.Entry.Title
		label = ansi.Truncate(label, b.Rect.Width, m.ellipsis())
		label += strings.Repeat(" ", max(b.Rect.Width-ansi.StringWidth(label), 0))
		switch {
		case b.Entry.Active:
			sb.WriteString(pressed.Render(label))
		case b.Entry.Minimized:
			sb.WriteString(dim.Render(label))
		default:
			sb.WriteString(bar.Render(label))
		}
		used += b.Rect.Width
	}

	clock := m.clockText()
	if gap := m.Width - used - ansi.StringWidth(clock); gap > 0 {
		sb.WriteString(bar.Render(strings.Repeat(" ", gap)))
	}
	sb.WriteString(bar.Render(clock))

	return lipgloss.NewLayer(ansi.Truncate(sb.String(), m.Width, "")).
		X(0).Y(m.TaskbarY()).Z(config.ZTaskbar).ID("taskbar")
}

func (m *Desktop) renderStartMenu() *lipgloss.Layer {
	r := m.StartMenuRect()
	inner := max(r.Width-2, 0)

	item := lipgloss.NewStyle().
		Background(theme.Chrome()).
		Foreground(theme.ChromeText()).
		Width(inner)
	header := lipgloss.NewStyle().
		Background(theme.TitleActive()).
		Foreground(theme.TitleText()).
		Bold(true).
		Width(inner)
	selected := item.
		Background(theme.Highlight()).
		Foreground(theme.HighlightText())

	rows := make([]string, 0, len(m.Catalog.StartMenu)+1)
	rows = append(rows, header.Render(ansi.Truncate(" "+m.Catalog.Owner.Name, inner, m.ellipsis())))
	for i, it := range m.Catalog.StartMenu {
		label := ansi.Truncate(" "+it.Label, inner, m.ellipsis())
		if i == m.MenuSelection {
			rows = append(rows, selected.Render(label))
			continue
		}
		rows = append(rows, item.Render(label))
	}

	box := lipgloss.NewStyle().
		Border(m.Settings.Border()).
		BorderForeground(theme.ChromeShadow()).
		BorderBackground(theme.Chrome()).
		Render(strings.Join(rows, "\n"))
	return lipgloss.NewLayer(box).X(r.X).Y(r.Y).Z(config.ZStartMenu).ID("startmenu")
}

func (m *Desktop) overlayBox(title, body, hint string) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.TitleActive()).
		Padding(0, 1)
	if m.Settings.ASCIIOnly {
		style = style.Border(lipgloss.ASCIIBorder())
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.Heading())
	hintStyle := lipgloss.NewStyle().Faint(true)
	return style.Render(titleStyle.Render(title) + "\n\n" + body + "\n\n" + hintStyle.Render(hint))
}

func (m *Desktop) centered(content, id string) *lipgloss.Layer {
	x := max((m.Width-lipgloss.Width(content))/2, 0)
	y := max((m.Height-lipgloss.Height(content))/2, 0)
	return lipgloss.NewLayer(content).X(x).Y(y).Z(config.ZOverlay).ID(id)
}

func (m *Desktop) renderHelp() *lipgloss.Layer {
	var b strings.Builder
	b.WriteString(m.help.FullHelpView(m.Keys.HelpColumns()))
	b.WriteString("\n\n")
	if m.Settings.DoubleClick {
		b.WriteString("Click an icon to select it, double-click to open.\n")
	} else {
		b.WriteString("Click an icon to open it.\n")
	}
	b.WriteString("Drag a title bar to move a window.\n")
	b.WriteString("Use the title bar buttons to minimize, maximize or close.")
	return m.centered(m.overlayBox("Keyboard shortcuts", b.String(), "press any key to close"), "help")
}

func (m *Desktop) renderLogs() *lipgloss.Layer {
	rows := max(m.Height-10, 1)
	width := max(m.Width-10, 20)
	msgs := m.LogMessages
	if len(msgs) > rows {
		msgs = msgs[len(msgs)-rows:]
	}

	levelStyle := map[string]lipgloss.Style{
		"INFO":  lipgloss.NewStyle().Foreground(theme.Heading()),
		"WARN":  lipgloss.NewStyle().Foreground(theme.Highlight()),
		"ERROR": lipgloss.NewStyle().Foreground(theme.Danger()),
	}
	lines := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		prefix := fmt.Sprintf("%s %-5s ", msg.Time.Format("15:04:05"), msg.Level)
		lines = append(lines, levelStyle[msg.Level].Render(prefix)+
			ansi.Truncate(msg.Message, max(width-ansi.StringWidth(prefix), 0), m.ellipsis()))
	}
	if len(lines) == 0 {
		lines = append(lines, "no log messages")
	}
	title := fmt.Sprintf("Logs (%d)", len(m.LogMessages))
	return m.centered(m.overlayBox(title, strings.Join(lines, "\n"), "press any key to close"), "logs")
}

func (m *Desktop) fullScreen() lipgloss.Style {
	return lipgloss.NewStyle().
		Width(m.Width).
		Height(m.Height).
		Align(lipgloss.Center).
		AlignVertical(lipgloss.Center).
		Background(theme.BootBg()).
		Foreground(theme.BootFg())
}

func (m *Desktop) renderBoot() *lipgloss.Layer {
	title := lipgloss.NewStyle().Bold(true).Foreground(theme.Heading()).Background(theme.BootBg())
	sub := lipgloss.NewStyle().Foreground(theme.BootFg()).Background(theme.BootBg())
	hint := sub.Faint(true)

	owner := m.Catalog.Owner.Name
	if owner == "" {
		owner = "your"
	} else {
		owner += "'s"
	}
	content := lipgloss.JoinVertical(lipgloss.Center,
		title.Render("d e s k f o l i o"),
		"",
		sub.Render("Starting "+owner+" desktop..."),
		"",
		hint.Render("press any key to skip"),
	)
	screen := m.fullScreen().Render(content)
	return lipgloss.NewLayer(screen).X(0).Y(0).Z(config.ZBoot).ID("boot")
}

func (m *Desktop) renderShutdown() *lipgloss.Layer {
	msg := lipgloss.NewStyle().
		Foreground(theme.Highlight()).
		Background(theme.BootBg()).
		Bold(true).
		Render("It's now safe to turn off your computer.")
	screen := m.fullScreen().Render(msg)
	return lipgloss.NewLayer(screen).X(0).Y(0).Z(config.ZBoot).ID("shutdown")
}
