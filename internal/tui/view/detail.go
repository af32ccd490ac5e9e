package view

import (
	"fmt"
	"strings"

	"github.com/glabrego/urlinfo-cli/internal/urlinfo"
)

type WrapFunc func(string, int) []string

func DetailMetaLines(rec urlinfo.Record, width int, wrap WrapFunc) []string {
	title := RecordLabel(rec)
	lines := make([]string, 0, 16)
	lines = append(lines, wrap(title, width)...)
	lines = append(lines, strings.Repeat("=", max(1, min(width, len([]rune(title))))))
	lines = append(lines, "")

	lines = append(lines, wrap("URL: "+rec.URL, width)...)
	lines = append(lines, fmt.Sprintf("Images: %d", len(rec.Images)))
	lines = append(lines, fmt.Sprintf("Stylesheets: %d", rec.StylesheetCount))
	lines = append(lines, "ID: "+rec.PublicID)
	return lines
}

// GalleryLines lists the record images, marking the selected one.
func GalleryLines(rec urlinfo.Record, selected, width int) []string {
	if len(rec.Images) == 0 {
		return []string{"Gallery: no images found"}
	}
	lines := make([]string, 0, len(rec.Images)+1)
	lines = append(lines, fmt.Sprintf("Gallery (%d):", len(rec.Images)))
	for i, src := range rec.Images {
		marker := " "
		if i == selected {
			marker = ">"
		}
		prefix := fmt.Sprintf("  %s%2d. ", marker, i+1)
		lines = append(lines, prefix+truncateRunes(strings.TrimSpace(src), width-visibleLen(prefix)))
	}
	return lines
}

func WrapText(text string, width int) []string {
	if width < 1 {
		return []string{text}
	}
	paragraphs := strings.Split(text, "\n")
	out := make([]string, 0, len(paragraphs))

	for _, p := range paragraphs {
		words := strings.Fields(p)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := ""
		for _, word := range words {
			for len([]rune(word)) > width {
				if line != "" {
					out = append(out, line)
					line = ""
				}
				runes := []rune(word)
				out = append(out, string(runes[:width]))
				word = string(runes[width:])
			}

			if line == "" {
				line = word
				continue
			}
			if len([]rune(line))+1+len([]rune(word)) <= width {
				line += " " + word
				continue
			}
			out = append(out, line)
			line = word
		}
		if line != "" {
			out = append(out, line)
		}
	}

	return out
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
