package view

import (
	"fmt"
	"strings"

	tuitheme "github.com/glabrego/urlinfo-cli/internal/tui/theme"
)

// Mode names understood by Toolbar and Footer.
const (
	ModeList    = "list"
	ModeSearch  = "search"
	ModeAdd     = "add"
	ModeDetail  = "detail"
	ModeConfirm = "confirm"
	ModeRates   = "rates"
	ModeHelp    = "help"
)

func Toolbar(mode string) string {
	switch mode {
	case ModeSearch:
		return "type to filter | enter: keep results | esc: leave search"
	case ModeAdd:
		return "type a URL | enter: submit | esc: cancel"
	case ModeDetail:
		return "j/k scroll | [ ] image | o open | y copy | d delete | esc back | ? help"
	case ModeConfirm:
		return "y: confirm delete | any other key: cancel"
	case ModeRates:
		return "r refresh | esc back | q quit"
	case ModeHelp:
		return "esc/? close help | q quit"
	}
	return "j/k move | enter details | / search | a add | b rates | r refresh | ? help | q quit"
}

func Footer(mode string, shown, total int, searchQuery string, th tuitheme.Theme) string {
	parts := []string{
		th.MetaLabel.Render("mode") + " " + th.MetaValue.Render(mode),
		th.MetaValue.Render(fmt.Sprintf("%d shown", shown)),
		th.MetaValue.Render(fmt.Sprintf("%d total", total)),
	}
	if searchQuery != "" {
		parts = append(parts, th.MetaLabel.Render("search")+" "+th.MetaValue.Render(fmt.Sprintf("%q (%d)", searchQuery, shown)))
	}
	return strings.Join(parts, " • ")
}

func Message(loading bool, hasWarning bool, status, warning string, th tuitheme.Theme) string {
	state := "idle"
	if loading {
		state = "loading"
	}
	if hasWarning {
		state = "warning"
	}
	main := "Ready"
	if status != "" {
		main = status
	} else if hasWarning {
		main = warning
	}
	stateLabel := th.StateIdle.Render("state")
	switch state {
	case "warning":
		stateLabel = th.StateWarn.Render("state")
	case "loading":
		stateLabel = th.StateLoad.Render("state")
	}
	return fmt.Sprintf("%s: %s | %s", stateLabel, state, th.MetaValue.Render(main))
}

func HelpLines() []string {
	return []string{
		"Navigation:",
		"  j/k or arrows move, g/G jump top/bottom, pgup/pgdown jump page",
		"Modes:",
		"  enter opens detail, esc/backspace returns to list",
		"  / searches titles and URLs, a adds a URL, b shows bitcoin rates",
		"Detail:",
		"  [ ] select gallery image, o open URL, y copy URL, d delete",
		"Options:",
		"  c compact mode, N numbering, i inline image preview, p confirm before delete",
		"  r refresh, q quit",
	}
}
