package view

import (
	"strings"

	"github.com/glabrego/urlinfo-cli/internal/urlinfo"
)

type InlineImagePreviewState struct {
	Enabled bool
	Loading bool
	Raw     string
	Err     string
}

func DetailLines(
	rec urlinfo.Record,
	contentWidth int,
	horizontalMargin int,
	wrap WrapFunc,
	gallerySelected int,
	preview InlineImagePreviewState,
) []string {
	lines := DetailMetaLines(rec, contentWidth, wrap)
	lines = append(lines, "")
	lines = append(lines, GalleryLines(rec, gallerySelected, contentWidth)...)
	if len(rec.Images) > 0 {
		lines = appendInlineImagePreview(lines, preview, contentWidth)
	}
	return leftPadLines(lines, horizontalMargin)
}

func DetailMaxTop(linesLen, bodyHeight int) int {
	maxTop := linesLen - bodyHeight
	if maxTop < 0 {
		return 0
	}
	return maxTop
}

func RenderDetailLines(lines []string, top, maxLines int) string {
	if len(lines) == 0 {
		return ""
	}
	if top < 0 {
		top = 0
	}
	if top > len(lines)-1 {
		top = len(lines) - 1
	}
	end := len(lines)
	if maxLines > 0 && top+maxLines < end {
		end = top + maxLines
	}
	return strings.Join(lines[top:end], "\n") + "\n"
}

func appendInlineImagePreview(lines []string, preview InlineImagePreviewState, contentWidth int) []string {
	if !preview.Enabled {
		return lines
	}
	previewLines := make([]string, 0, 3)
	if preview.Loading {
		previewLines = append(previewLines, "Loading image preview...")
	}
	if len(previewLines) == 0 {
		if previewRaw := strings.TrimSpace(preview.Raw); previewRaw != "" {
			if ContainsKittyGraphicsEscape(preview.Raw) {
				previewLines = append(previewLines, strings.TrimRight(preview.Raw, "\r\n"))
			} else {
				previewSplit := strings.Split(strings.TrimRight(preview.Raw, "\r\n"), "\n")
				previewLines = centerLines(previewSplit, contentWidth)
			}
		}
	}
	if len(previewLines) == 0 {
		if errMsg := strings.TrimSpace(preview.Err); errMsg != "" {
			previewLines = append(previewLines, "Image preview unavailable: "+errMsg)
		}
	}
	if len(previewLines) == 0 {
		return lines
	}
	out := make([]string, 0, len(lines)+len(previewLines)+1)
	out = append(out, lines...)
	out = append(out, "")
	return append(out, previewLines...)
}

func leftPadLines(lines []string, padding int) []string {
	if padding <= 0 || len(lines) == 0 {
		return lines
	}
	prefix := strings.Repeat(" ", padding)
	out := make([]string, len(lines))
	for i, line := range lines {
		if ContainsKittyGraphicsEscape(line) {
			out[i] = line
			continue
		}
		out[i] = prefix + line
	}
	return out
}

func centerLines(lines []string, width int) []string {
	if width <= 0 || len(lines) == 0 {
		return lines
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		visible := visibleLen(line)
		if visible >= width {
			out[i] = line
			continue
		}
		pad := (width - visible) / 2
		out[i] = strings.Repeat(" ", pad) + line
	}
	return out
}
