package app

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/deskfolio/internal/catalog"
	"github.com/Gaurav-Gosain/deskfolio/internal/theme"
	"github.com/Gaurav-Gosain/deskfolio/internal/wm"
	"github.com/charmbracelet/x/ansi"
)

// line is one wrapped row of window content.
type line struct {
	kind catalog.BlockKind
	text string
}

// contentLines wraps a window's body to width.
func (m *Desktop) contentLines(rec wm.Record, width int) []line {
	if width <= 0 {
		return nil
	}
	bullet := "• "
	if m.Settings.ASCIIOnly {
		bullet = "* "
	}

	var lines []line
	for _, b := range catalog.ParseBody(m.Body(rec)) {
		switch b.Kind {
		case catalog.BlockBlank:
			lines = append(lines, line{kind: b.Kind})
		case catalog.BlockBullet:
			indent := ansi.StringWidth(bullet)
			if width <= indent {
				lines = append(lines, line{kind: b.Kind, text: ansi.Truncate(bullet+b.Text, width, "")})
				continue
			}
			for i, l := range wrap(b.Text, width-indent) {
				prefix := bullet
				if i > 0 {
					prefix = strings.Repeat(" ", indent)
				}
				lines = append(lines, line{kind: b.Kind, text: prefix + l})
			}
		default:
			for _, l := range wrap(b.Text, width) {
				lines = append(lines, line{kind: b.Kind, text: l})
			}
		}
	}
	return lines
}

func wrap(s string, width int) []string {
	return strings.Split(ansi.Wrap(s, width, ""), "\n")
}

// contentStyles are the text styles of a window body. Every style carries the
// content background so padding and text share it.
type contentStyles struct {
	base       lipgloss.Style
	heading    lipgloss.Style
	subheading lipgloss.Style
}

func newContentStyles() contentStyles {
	base := lipgloss.NewStyle().
		Foreground(theme.ContentFg()).
		Background(theme.ContentBg())
	return contentStyles{
		base:       base,
		heading:    base.Bold(true).Foreground(theme.Heading()),
		subheading: base.Bold(true).Underline(true),
	}
}

func (s contentStyles) render(l line, width int) string {
	text := ansi.Truncate(l.text, width, "")
	pad := strings.Repeat(" ", max(width-ansi.StringWidth(text), 0))
	switch l.kind {
	case catalog.BlockHeading:
		return s.heading.Render(text) + s.base.Render(pad)
	case catalog.BlockSubheading:
		return s.subheading.Render(text) + s.base.Render(pad)
	}
	return s.base.Render(text + pad)
}
