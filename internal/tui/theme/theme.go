package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/glabrego/urlinfo-cli/internal/urlinfo"
)

type Theme struct {
	Title      lipgloss.Style
	ModePill   lipgloss.Style
	Section    lipgloss.Style
	Count      lipgloss.Style
	ActiveLine lipgloss.Style
	MetaLabel  lipgloss.Style
	MetaValue  lipgloss.Style
	StateIdle  lipgloss.Style
	StateWarn  lipgloss.Style
	StateLoad  lipgloss.Style
	Prompt     lipgloss.Style
	Success    lipgloss.Style
	Amount     lipgloss.Style

	TitleWithImages lipgloss.Style
	TitlePlain      lipgloss.Style
	TitleMissing    lipgloss.Style
}

func Default() Theme {
	cpMauve := lipgloss.Color("#cba6f7")
	cpRed := lipgloss.Color("#f38ba8")
	cpPeach := lipgloss.Color("#fab387")
	cpYellow := lipgloss.Color("#f9e2af")
	cpGreen := lipgloss.Color("#a6e3a1")
	cpTeal := lipgloss.Color("#94e2d5")
	cpLavender := lipgloss.Color("#b4befe")
	cpText := lipgloss.Color("#cdd6f4")
	cpSubtext0 := lipgloss.Color("#a6adc8")
	cpSubtext1 := lipgloss.Color("#bac2de")
	cpOverlay1 := lipgloss.Color("#7f849c")
	cpSurface0 := lipgloss.Color("#313244")

	return Theme{
		Title:           lipgloss.NewStyle().Bold(true).Foreground(cpMauve),
		ModePill:        lipgloss.NewStyle().Foreground(cpLavender).Background(cpSurface0).Padding(0, 1),
		Section:         lipgloss.NewStyle().Bold(true).Foreground(cpTeal),
		Count:           lipgloss.NewStyle().Foreground(cpYellow).Bold(true),
		ActiveLine:      lipgloss.NewStyle().Background(cpSurface0).Foreground(cpText),
		MetaLabel:       lipgloss.NewStyle().Foreground(cpOverlay1),
		MetaValue:       lipgloss.NewStyle().Foreground(cpSubtext1),
		StateIdle:       lipgloss.NewStyle().Foreground(cpGreen),
		StateWarn:       lipgloss.NewStyle().Foreground(cpRed),
		StateLoad:       lipgloss.NewStyle().Foreground(cpPeach),
		Prompt:          lipgloss.NewStyle().Foreground(cpLavender).Bold(true),
		Success:         lipgloss.NewStyle().Foreground(cpGreen),
		Amount:          lipgloss.NewStyle().Foreground(cpYellow),
		TitleWithImages: lipgloss.NewStyle().Bold(true).Foreground(cpText),
		TitlePlain:      lipgloss.NewStyle().Foreground(cpSubtext1),
		TitleMissing: lipgloss.NewStyle().
			Italic(true).
			Foreground(cpSubtext0),
	}
}

// StyleRecordTitle picks the title style from what the backend extracted:
// records with a gallery stand out, untitled ones are dimmed.
func (t Theme) StyleRecordTitle(rec urlinfo.Record, title string) string {
	if title == "" {
		return title
	}
	switch {
	case rec.DisplayTitle() == "":
		return t.TitleMissing.Render(title)
	case len(rec.Images) > 0:
		return t.TitleWithImages.Render(title)
	default:
		return t.TitlePlain.Render(title)
	}
}

func (t Theme) RenderActiveLine(active bool, line string) string {
	if !active {
		return line
	}
	return t.ActiveLine.Render(line)
}
