package state

import (
	"github.com/glabrego/urlinfo-cli/internal/urlinfo"
)

func ClampCursor(cursor, size int) int {
	if size <= 0 {
		return 0
	}
	if cursor >= size {
		return size - 1
	}
	if cursor < 0 {
		return 0
	}
	return cursor
}

func PageStep(height int, hasStatus bool) int {
	if height <= 0 {
		return 10
	}
	headerLines := 6
	if hasStatus {
		headerLines += 2
	}
	step := height - headerLines
	if step < 3 {
		step = 3
	}
	return step
}

func CenteredWindow(totalRows, cursor, height int) (int, int) {
	if totalRows <= 0 {
		return 0, 0
	}
	if height <= 0 || totalRows <= height {
		return 0, totalRows
	}
	cursor = ClampCursor(cursor, totalRows)
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	maxStart := totalRows - height
	if start > maxStart {
		start = maxStart
	}
	return start, start + height
}

func RecordIndexByID(records []urlinfo.Record, publicID string) int {
	if publicID == "" {
		return -1
	}
	for i, rec := range records {
		if rec.PublicID == publicID {
			return i
		}
	}
	return -1
}

// RestoreCursor keeps the cursor on anchorID when it is still listed and
// otherwise clamps the previous position into the new list.
func RestoreCursor(records []urlinfo.Record, anchorID string, previous int) int {
	if idx := RecordIndexByID(records, anchorID); idx >= 0 {
		return idx
	}
	return ClampCursor(previous, len(records))
}
