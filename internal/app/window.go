package app

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/deskfolio/internal/catalog"
	"github.com/Gaurav-Gosain/deskfolio/internal/pool"
	"github.com/Gaurav-Gosain/deskfolio/internal/theme"
	"github.com/Gaurav-Gosain/deskfolio/internal/wm"
	"github.com/charmbracelet/x/ansi"
)

func (m *Desktop) buttonGlyphs(maximized bool) (minimize, maximize, close string) {
	if m.Settings.ASCIIOnly {
		if maximized {
			return "_", "-", "x"
		}
		return "_", "+", "x"
	}
	if maximized {
		return "_", "❐", "×"
	}
	return "_", "□", "×"
}

// renderTitleBar draws the first row of a window: glyph, title and buttons.
func (m *Desktop) renderTitleBar(rec wm.Record, active bool) string {
	width := rec.Size.Width
	bg := theme.TitleInactive()
	if active {
		bg = theme.TitleActive()
	}
	bar := lipgloss.NewStyle().
		Background(bg).
		Foreground(theme.TitleText()).
		Bold(active)

	buttons := ""
	if !m.Settings.HideWindowButtons && width > 3*buttonWidth+1 {
		btn := lipgloss.NewStyle().
			Background(theme.Chrome()).
			Foreground(theme.ChromeText()).
			Bold(true)
		minimize, maximize, closeGlyph := m.buttonGlyphs(rec.Maximized)
		buttons = btn.Render(" "+minimize+" ") +
			btn.Render(" "+maximize+" ") +
			btn.Render(" "+closeGlyph+" ") +
			bar.Render(" ")
	}

	titleWidth := max(width-lipgloss.Width(buttons), 0)
	title := " " + catalog.Glyph(rec.Kind, m.Settings.ASCIIOnly) + " " + rec.Title
	title = ansi.Truncate(title, titleWidth, m.ellipsis())
	title += strings.Repeat(" ", max(titleWidth-ansi.StringWidth(title), 0))
	return bar.Render(title) + buttons
}

// renderWindow draws a whole window: title bar, framed content and bottom
// border.
func (m *Desktop) renderWindow(rec wm.Record, active bool) string {
	var borderColor color.Color = theme.ChromeShadow()
	if active {
		borderColor = theme.TitleActive()
	}
	border := m.Settings.Border()
	edge := lipgloss.NewStyle().
		Foreground(borderColor).
		Background(theme.ContentBg())

	cw, ch := contentSize(rec)
	lines := m.contentLines(rec, cw)
	offset := min(m.scroll[rec.ID], max(len(lines)-ch, 0))
	styles := newContentStyles()

	sb := pool.GetStringBuilder()
	defer pool.PutStringBuilder(sb)

	sb.WriteString(m.renderTitleBar(rec, active))
	left, right := edge.Render(border.Left), edge.Render(border.Right)
	for row := range ch {
		sb.WriteByte('\n')
		sb.WriteString(left)
		var l line
		if i := offset + row; i < len(lines) {
			l = lines[i]
		}
		sb.WriteString(styles.render(l, cw))
		sb.WriteString(right)
	}
	if rec.Size.Height > 1 {
		sb.WriteByte('\n')
		sb.WriteString(edge.Render(border.BottomLeft + strings.Repeat(border.Bottom, cw) + border.BottomRight))
	}
	return sb.String()
}
