package view

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	tuitheme "github.com/glabrego/urlinfo-cli/internal/tui/theme"

	"github.com/glabrego/urlinfo-cli/internal/urlinfo"
)

var reANSICodes = regexp.MustCompile(`\x1b\[[0-9;]*m`)

type RecordLineParams struct {
	Record      urlinfo.Record
	Compact     bool
	ShowNumbers bool
	VisiblePos  int
	Active      bool
	Width       int
}

func RenderRecordLine(p RecordLineParams, th tuitheme.Theme) string {
	cursorMarker := " "
	if p.Active {
		cursorMarker = ">"
	}

	prefix := fmt.Sprintf("  %s ", cursorMarker)
	if p.ShowNumbers {
		prefix = fmt.Sprintf("  %s%2d. ", cursorMarker, p.VisiblePos+1)
	}
	countLabel := ImageCountLabel(len(p.Record.Images))
	available := p.Width - visibleLen(prefix) - 1 - visibleLen(countLabel)
	if available < 1 {
		available = 1
	}

	label := RecordLabel(p.Record)
	if p.Compact {
		label = CompactRecordLabel(p.Record)
	}
	label = truncateRunes(label, available)
	styledTitle := th.StyleRecordTitle(p.Record, label)
	gap := p.Width - visibleLen(prefix) - visibleLen(label) - visibleLen(countLabel)
	if gap < 1 {
		gap = 1
	}
	return th.RenderActiveLine(p.Active, prefix+styledTitle+strings.Repeat(" ", gap)+countLabel)
}

// RecordLabel is the title, or the URL for records the backend could not title.
func RecordLabel(rec urlinfo.Record) string {
	if title := rec.DisplayTitle(); title != "" {
		return title
	}
	if u := strings.TrimSpace(rec.URL); u != "" {
		return u
	}
	return "(untitled)"
}

func CompactRecordLabel(rec urlinfo.Record) string {
	title := rec.DisplayTitle()
	if title == "" {
		title = "(untitled)"
	}
	host := rec.Host()
	if host == "" {
		return title
	}
	return host + " | " + title
}

func ImageCountLabel(n int) string {
	if n == 1 {
		return "[1 image]"
	}
	return fmt.Sprintf("[%d images]", n)
}

func truncateRunes(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return strings.Repeat(".", maxLen)
	}
	runes := []rune(s)
	return string(runes[:maxLen-3]) + "..."
}

func visibleLen(s string) int {
	return utf8.RuneCountInString(stripANSIText(s))
}

func stripANSIText(s string) string {
	return reANSICodes.ReplaceAllString(s, "")
}
