package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func fg(c string) lipgloss.Style { return lipgloss.NewStyle().Foreground(lipgloss.Color(c)) }

var (
	StyleDim     = fg("240")
	StyleValue   = fg("255")
	StyleWarning = fg("220")

	styleIconSpinner = fg("36")
	styleLabel       = fg("245").Width(14)
	styleCommand     = fg("75")
)

// mark is the coloured glyph leading a status line.
type mark struct {
	glyph string
	style lipgloss.Style
	body  *lipgloss.Style
}

var (
	markSuccess = mark{glyph: "✓", style: fg("35")}
	markError   = mark{glyph: "✗", style: fg("167")}
	markWarning = mark{glyph: "!", style: StyleWarning, body: &StyleWarning}
	markInfo    = mark{glyph: "›", style: fg("245")}
)

func (m mark) println(w io.Writer, format string, args ...any) {
	text := fmt.Sprintf(format, args...)
	if m.body != nil {
		text = m.body.Render(text)
	}
	fmt.Fprintln(w, m.style.Render(m.glyph)+" "+text)
}

func printSuccess(w io.Writer, format string, args ...any) { markSuccess.println(w, format, args...) }
func printError(w io.Writer, format string, args ...any)   { markError.println(w, format, args...) }
func printWarning(w io.Writer, format string, args ...any) { markWarning.println(w, format, args...) }
func printInfo(w io.Writer, format string, args ...any)    { markInfo.println(w, format, args...) }

func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render("→")+" "+StyleValue.Render(path))
}

func printKeyValue(w io.Writer, key, value string) {
	fmt.Fprintln(w, styleLabel.Render(key)+" "+StyleValue.Render(value))
}

// printStats summarises a diagram, e.g.
// "4 nodes · 2 subcategories · 1 categories · fresh". Zero cluster
// counts are left out.
func printStats(w io.Writer, nodes, subcategories, categories int, cached bool) {
	parts := []string{StyleDim.Render(fmt.Sprintf("%d nodes", nodes))}
	for _, c := range []struct {
		n    int
		noun string
	}{{subcategories, "subcategories"}, {categories, "categories"}} {
		if c.n > 0 {
			parts = append(parts, StyleDim.Render(fmt.Sprintf("%d %s", c.n, c.noun)))
		}
	}
	if cached {
		parts = append(parts, markSuccess.style.Render("cached"))
	} else {
		parts = append(parts, markInfo.style.Render("fresh"))
	}
	fmt.Fprintln(w, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}

func printNextStep(w io.Writer, description, cmd string) {
	fmt.Fprintln(w, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}
