package components

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	boldPattern       = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	inlineCodePattern = regexp.MustCompile("`([^`]+)`")
)

func codeStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(lipgloss.Color("236")).
		Padding(0, 1)
}

func headingStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true)
}

// RenderMarkdown applies lightweight terminal styling to assistant replies:
// headings, bullet lines, bold, and inline code. Anything else passes through.
func RenderMarkdown(text string) string {
	lines := strings.Split(text, "\n")
	rendered := make([]string, 0, len(lines))

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "#"):
			rendered = append(rendered, headingStyle().Render(strings.TrimLeft(trimmed, "# ")))
		case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* "):
			rendered = append(rendered, "  • "+renderInline(trimmed[2:]))
		default:
			rendered = append(rendered, renderInline(line))
		}
	}

	return strings.Join(rendered, "\n")
}

func renderInline(line string) string {
	line = boldPattern.ReplaceAllStringFunc(line, func(match string) string {
		inner := boldPattern.FindStringSubmatch(match)[1]
		return lipgloss.NewStyle().Bold(true).Render(inner)
	})
	line = inlineCodePattern.ReplaceAllStringFunc(line, func(match string) string {
		inner := inlineCodePattern.FindStringSubmatch(match)[1]
		return codeStyle().Render(inner)
	})
	return line
}
