package view

import (
	"fmt"
	"strings"
	"testing"

	tuitheme "github.com/glabrego/urlinfo-cli/internal/tui/theme"

	"github.com/glabrego/urlinfo-cli/internal/urlinfo"
)

func TestRenderRecordLine_CountAtRightEdge(t *testing.T) {
	th := tuitheme.Default()

	line := RenderRecordLine(RecordLineParams{
		Record: urlinfo.Record{
			PublicID: "a",
			URL:      "https://go.dev",
			Title:    "The Go Programming Language",
			Images:   []string{"a.png", "b.png"},
		},
		ShowNumbers: true,
		Active:      true,
		Width:       60,
	}, th)
	plain := stripANSI(line)
	if !strings.HasSuffix(plain, "[2 images]") {
		t.Fatalf("expected image count suffix at right edge, got %q", plain)
	}
	if !strings.HasPrefix(plain, "  > 1. The Go") {
		t.Fatalf("expected cursor and number prefix, got %q", plain)
	}
	if visibleLen(plain) != 60 {
		t.Fatalf("expected line padded to width 60, got %d", visibleLen(plain))
	}
}

func TestRenderRecordLine_TruncatesLongTitles(t *testing.T) {
	th := tuitheme.Default()
	line := stripANSI(RenderRecordLine(RecordLineParams{
		Record: urlinfo.Record{Title: strings.Repeat("long ", 30), Images: []string{"x"}},
		Width:  40,
	}, th))
	if !strings.Contains(line, "...") {
		t.Fatalf("expected truncated title, got %q", line)
	}
	if !strings.HasSuffix(line, "[1 image]") {
		t.Fatalf("expected singular image label, got %q", line)
	}
}

func TestRecordLabels(t *testing.T) {
	rec := urlinfo.Record{URL: "https://www.example.com/post", Title: "<em>Hello</em>"}
	if got := RecordLabel(rec); got != "Hello" {
		t.Fatalf("unexpected label: %q", got)
	}
	if got := CompactRecordLabel(rec); got != "example.com | Hello" {
		t.Fatalf("unexpected compact label: %q", got)
	}

	untitled := urlinfo.Record{URL: "https://example.com/x"}
	if got := RecordLabel(untitled); got != "https://example.com/x" {
		t.Fatalf("expected URL fallback, got %q", got)
	}
	if got := CompactRecordLabel(untitled); got != "example.com | (untitled)" {
		t.Fatalf("unexpected compact untitled label: %q", got)
	}
}

func TestRenderListBody(t *testing.T) {
	got := RenderListBody(ListRenderInput{
		Count:  5,
		Start:  1,
		End:    3,
		Cursor: 2,
		RenderRecordLine: func(index int, active bool) string {
			return fmt.Sprintf("%d:%v", index, active)
		},
	})
	if got != "1:false\n2:true\n" {
		t.Fatalf("unexpected list body: %q", got)
	}

	if got := RenderListBody(ListRenderInput{Count: 0, End: 3}); got != "" {
		t.Fatalf("expected empty body, got %q", got)
	}
}

func TestTruncateRunes(t *testing.T) {
	if got := truncateRunes("héllo wörld", 8); got != "héllo..." {
		t.Fatalf("unexpected truncation: %q", got)
	}
	if got := truncateRunes("abc", 2); got != ".." {
		t.Fatalf("unexpected short truncation: %q", got)
	}
	if got := truncateRunes("abc", 0); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}
