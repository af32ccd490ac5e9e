package tui

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/urlinfo-cli/internal/storage"
	tuiactions "github.com/glabrego/urlinfo-cli/internal/tui/actions"
	"github.com/glabrego/urlinfo-cli/internal/urlinfo"
)

type fakeService struct {
	mu        sync.Mutex
	records   []urlinfo.Record
	listErr   error
	createErr error
	removeErr error
	rates     urlinfo.Rates
	ratesErr  error
	created   []string
	removed   []string
}

func (f *fakeService) List(context.Context) ([]urlinfo.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]urlinfo.Record(nil), f.records...), nil
}

func (f *fakeService) Create(_ context.Context, rawURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, rawURL)
	return nil
}

func (f *fakeService) Remove(_ context.Context, publicID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removed = append(f.removed, publicID)
	return nil
}

func (f *fakeService) BitcoinRates(context.Context) (urlinfo.Rates, error) {
	if f.ratesErr != nil {
		return urlinfo.Rates{}, f.ratesErr
	}
	return f.rates, nil
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]|\x1b_[^\x1b]*\x1b\\`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	model, ok := updated.(Model)
	if !ok {
		t.Fatalf("expected Model, got %T", updated)
	}
	return model, cmd
}

func sampleRecords() []urlinfo.Record {
	return []urlinfo.Record{
		{PublicID: "a1", URL: "https://go.dev", Title: "The Go Programming Language", Images: []string{"/images/gopher.png", "https://go.dev/logo.svg"}, StylesheetCount: 3},
		{PublicID: "b2", URL: "https://example.com", Title: "Example Domain"},
	}
}

// loadedModel returns a model whose list already holds records.
func loadedModel(t *testing.T, svc *fakeService, records []urlinfo.Record) Model {
	t.Helper()
	var m Model
	if svc == nil {
		m = NewModel(nil, time.Second)
	} else {
		m = NewModel(svc, time.Second)
	}
	m.kittyGraphics = false
	m.openURLFn = func(string) error { return nil }
	m.copyURLFn = func(string) error { return nil }
	m.SetImageRenderer(func(_ context.Context, imageURL string, _ int) (string, error) {
		return "preview:" + imageURL, nil
	})
	m, _ = update(t, m, tuiactions.RefreshSuccessMsg{Records: records, Source: "manual"})
	return m
}

func TestModelView_ShowsRecordsWithImageCounts(t *testing.T) {
	m := loadedModel(t, nil, sampleRecords())

	view := stripANSI(m.View())
	for _, want := range []string{
		"URL Info",
		"The Go Programming Language",
		"[2 images]",
		"Example Domain",
		"[0 images]",
		"> 1. ",
		"state: idle | Ready",
		"2 total",
	} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view, got:\n%s", want, view)
		}
	}
}

func TestModelView_EmptyAndLoadingStates(t *testing.T) {
	m := NewModel(&fakeService{}, time.Second)
	m.kittyGraphics = false
	if cmd := m.Init(); cmd == nil {
		t.Fatal("expected initial refresh command")
	}
	if view := m.View(); !strings.Contains(view, "Loading URL info...") {
		t.Fatalf("expected loading text, got:\n%s", view)
	}

	m, _ = update(t, m, tuiactions.RefreshSuccessMsg{Records: nil, Source: "init"})
	if view := m.View(); !strings.Contains(view, "No data available") {
		t.Fatalf("expected empty text, got:\n%s", view)
	}
}

func TestModelUpdate_RefreshErrorShowsHTTPStatus(t *testing.T) {
	svc := &fakeService{listErr: &urlinfo.HTTPError{Op: "list url info", Status: 500}}
	m := NewModel(svc, time.Second)

	m, cmd := update(t, m, key("r"))
	if cmd == nil {
		t.Fatal("expected refresh command")
	}
	m, _ = update(t, m, cmd())
	if m.err == nil {
		t.Fatal("expected refresh error")
	}
	if view := stripANSI(m.View()); !strings.Contains(view, "HTTP error! Status: 500") {
		t.Fatalf("expected status in view, got:\n%s", view)
	}
}

func TestModelUpdate_RefreshKeepsCursorOnSameRecord(t *testing.T) {
	m := loadedModel(t, nil, sampleRecords())
	m, _ = update(t, m, key("j"))
	if m.cursor != 1 {
		t.Fatalf("expected cursor at 1, got %d", m.cursor)
	}

	reordered := []urlinfo.Record{
		{PublicID: "c3", URL: "https://new.example", Title: "New"},
		sampleRecords()[0],
		sampleRecords()[1],
	}
	m, _ = update(t, m, tuiactions.RefreshSuccessMsg{Records: reordered, Source: "add"})
	if m.cursor != 2 {
		t.Fatalf("expected cursor to follow b2 to index 2, got %d", m.cursor)
	}
}

func TestModelUpdate_SecondRefreshWhileLoadingIsIgnored(t *testing.T) {
	m := NewModel(&fakeService{}, time.Second)
	m, cmd := update(t, m, key("r"))
	if cmd == nil {
		t.Fatal("expected refresh command")
	}
	m, cmd = update(t, m, key("r"))
	if cmd != nil {
		t.Fatal("expected no second refresh command")
	}
	if m.status != "Refresh already in progress" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestModelUpdate_SearchFiltersAndEscRestores(t *testing.T) {
	m := loadedModel(t, nil, sampleRecords())

	m, _ = update(t, m, key("/"))
	if m.inputMode != inputSearch {
		t.Fatal("expected search mode")
	}
	if view := m.View(); !strings.Contains(view, "Type to search titles and URLs.") {
		t.Fatalf("expected search hint for empty query, got:\n%s", view)
	}

	m, _ = update(t, m, key("e"))
	m, _ = update(t, m, key("x"))
	if got := len(m.visibleRecords()); got != 1 {
		t.Fatalf("expected 1 match, got %d", got)
	}
	view := stripANSI(m.View())
	if !strings.Contains(view, `search "ex" (1)`) {
		t.Fatalf("expected search footer, got:\n%s", view)
	}
	if strings.Contains(view, "The Go Programming Language") {
		t.Fatalf("expected non-matching record hidden, got:\n%s", view)
	}

	m, _ = update(t, m, key("enter"))
	if m.inputMode != inputNone || !m.searchActive {
		t.Fatal("expected search results kept after enter")
	}

	m, _ = update(t, m, key("esc"))
	if m.searchActive {
		t.Fatal("expected search cleared")
	}
	if got := len(m.visibleRecords()); got != 2 {
		t.Fatalf("expected full list back, got %d", got)
	}
	if m.cursor != 1 {
		t.Fatalf("expected cursor to stay on the matched record, got %d", m.cursor)
	}
}

func TestModelUpdate_SearchWithoutMatches(t *testing.T) {
	m := loadedModel(t, nil, sampleRecords())
	m, _ = update(t, m, key("/"))
	m, _ = update(t, m, key("zzz"))

	if view := m.View(); !strings.Contains(view, "No matching URLs.") {
		t.Fatalf("expected no-match text, got:\n%s", view)
	}
}

func TestModelUpdate_AddSuccessClosesInputAndRefreshes(t *testing.T) {
	svc := &fakeService{records: sampleRecords()}
	m := loadedModel(t, svc, sampleRecords())

	m, _ = update(t, m, key("a"))
	if m.inputMode != inputAdd {
		t.Fatal("expected add mode")
	}
	m, _ = update(t, m, key("  https://gobyexample.com "))
	m, cmd := update(t, m, key("enter"))
	if cmd == nil {
		t.Fatal("expected add command")
	}
	if !m.list.Adding() {
		t.Fatal("expected add in flight")
	}

	msg := cmd()
	success, ok := msg.(tuiactions.AddSuccessMsg)
	if !ok {
		t.Fatalf("expected AddSuccessMsg, got %T", msg)
	}
	if success.URL != "https://gobyexample.com" {
		t.Fatalf("expected trimmed URL, got %q", success.URL)
	}
	if len(svc.created) != 1 || svc.created[0] != "https://gobyexample.com" {
		t.Fatalf("unexpected creates: %#v", svc.created)
	}
	if got := m.list.Len(); got != 2 {
		t.Fatalf("expected no local insert, got %d records", got)
	}

	m, cmd = update(t, m, msg)
	if cmd == nil {
		t.Fatal("expected follow-up commands")
	}
	if m.inputMode != inputNone {
		t.Fatal("expected add input closed")
	}
	if m.status != addSuccessStatus {
		t.Fatalf("unexpected status %q", m.status)
	}
	if !m.list.Loading() {
		t.Fatal("expected refresh started after add")
	}
}

func TestModelUpdate_AddDuplicateKeepsInputOpen(t *testing.T) {
	svc := &fakeService{createErr: &urlinfo.AddError{Kind: urlinfo.AddDuplicate, Status: 409}}
	m := loadedModel(t, svc, sampleRecords())

	m, _ = update(t, m, key("a"))
	m, _ = update(t, m, key("https://go.dev"))
	m, cmd := update(t, m, key("enter"))
	if cmd == nil {
		t.Fatal("expected add command")
	}
	m, _ = update(t, m, cmd())

	if m.inputMode != inputAdd {
		t.Fatal("expected add input to stay open")
	}
	if m.list.Adding() {
		t.Fatal("expected add to be settled")
	}
	if view := m.View(); !strings.Contains(view, "This URL already exists.") {
		t.Fatalf("expected duplicate message, got:\n%s", view)
	}
}

func TestModelUpdate_BlankAddIsRejectedLocally(t *testing.T) {
	svc := &fakeService{}
	m := loadedModel(t, svc, sampleRecords())

	m, _ = update(t, m, key("a"))
	m, _ = update(t, m, key("   "))
	m, cmd := update(t, m, key("enter"))
	if cmd != nil {
		t.Fatal("expected no command for blank input")
	}
	if !urlinfo.IsAddKind(m.err, urlinfo.AddInvalidURL) {
		t.Fatalf("expected invalid URL error, got %v", m.err)
	}
	if len(svc.created) != 0 {
		t.Fatalf("expected no create call, got %#v", svc.created)
	}
}

func TestModelUpdate_DetailShowsMetadataAndGallery(t *testing.T) {
	m := loadedModel(t, &fakeService{}, sampleRecords())

	m, cmd := update(t, m, key("enter"))
	if m.screen != screenDetail {
		t.Fatal("expected detail screen")
	}
	if cmd == nil {
		t.Fatal("expected inline preview command for first image")
	}
	m, _ = update(t, m, cmd())

	view := stripANSI(m.View())
	for _, want := range []string{
		"URL: https://go.dev",
		"Images: 2",
		"Stylesheets: 3",
		"ID: a1",
		"Gallery (2):",
		"preview:https://go.dev/images/gopher.png",
	} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in detail view, got:\n%s", want, view)
		}
	}

	m, cmd = update(t, m, key("]"))
	if m.galleryIdx != 1 {
		t.Fatalf("expected second image selected, got %d", m.galleryIdx)
	}
	if cmd == nil {
		t.Fatal("expected preview command for second image")
	}

	m, _ = update(t, m, key("esc"))
	if m.screen != screenList || m.detail != nil {
		t.Fatal("expected back on list")
	}
}

func TestModelUpdate_DeleteWithConfirmation(t *testing.T) {
	svc := &fakeService{}
	m := loadedModel(t, svc, sampleRecords())
	m.inlineImages = false

	m, _ = update(t, m, key("enter"))
	m, cmd := update(t, m, key("d"))
	if cmd != nil || !m.pendingDelete {
		t.Fatal("expected confirmation prompt before delete")
	}
	if view := m.View(); !strings.Contains(view, "y: confirm delete") {
		t.Fatalf("expected confirm toolbar, got:\n%s", view)
	}

	m, cmd = update(t, m, key("n"))
	if cmd != nil || m.pendingDelete {
		t.Fatal("expected delete cancelled")
	}
	if m.status != "Delete cancelled" {
		t.Fatalf("unexpected status %q", m.status)
	}

	m, _ = update(t, m, key("d"))
	m, cmd = update(t, m, key("y"))
	if cmd == nil {
		t.Fatal("expected remove command")
	}
	if !m.detail.Deleting() {
		t.Fatal("expected delete in flight")
	}

	m, cmd2 := update(t, m, key("d"))
	if cmd2 != nil || m.status != "Delete already in progress" {
		t.Fatalf("expected second delete ignored, status %q", m.status)
	}

	m, _ = update(t, m, cmd())
	if m.screen != screenList {
		t.Fatal("expected navigation back to list")
	}
	if got := m.list.Len(); got != 1 {
		t.Fatalf("expected record dropped locally, got %d", got)
	}
	if _, ok := m.list.Find("a1"); ok {
		t.Fatal("expected a1 to be gone")
	}
	if m.status != deleteSuccessStatus {
		t.Fatalf("unexpected status %q", m.status)
	}
	if len(svc.removed) != 1 || svc.removed[0] != "a1" {
		t.Fatalf("unexpected removes: %#v", svc.removed)
	}
}

func TestModelUpdate_DeleteNotFoundStaysInDetail(t *testing.T) {
	svc := &fakeService{removeErr: &urlinfo.HTTPError{Op: "remove", Status: 404}}
	m := loadedModel(t, svc, sampleRecords())
	m.inlineImages = false
	m.confirmDelete = false

	m, _ = update(t, m, key("enter"))
	m, cmd := update(t, m, key("d"))
	if cmd == nil {
		t.Fatal("expected remove command without confirmation")
	}
	m, _ = update(t, m, cmd())

	if m.screen != screenDetail || m.detail == nil {
		t.Fatal("expected to stay in detail")
	}
	if m.detail.Deleting() {
		t.Fatal("expected delete settled")
	}
	if got := m.list.Len(); got != 2 {
		t.Fatalf("expected list untouched, got %d", got)
	}
	if view := m.View(); !strings.Contains(view, "This URL info does not exist.") {
		t.Fatalf("expected not-found message, got:\n%s", view)
	}
}

func TestModelUpdate_RatesScreen(t *testing.T) {
	svc := &fakeService{rates: urlinfo.Rates{BitcoinEUR: 58123.456, EURToGBP: 0.8532, BitcoinGBP: 49590.83}}
	m := loadedModel(t, svc, sampleRecords())

	m, cmd := update(t, m, key("b"))
	if cmd == nil {
		t.Fatal("expected rates command")
	}
	if view := m.View(); !strings.Contains(view, "Loading rates...") {
		t.Fatalf("expected loading text, got:\n%s", view)
	}
	m, _ = update(t, m, cmd())

	view := stripANSI(m.View())
	for _, want := range []string{"1 BTC in EUR: 58,123.46 €", "1 EUR in GBP: 0.85 £", "1 BTC in GBP: 49,590.83 £"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in rates view, got:\n%s", want, view)
		}
	}

	m, _ = update(t, m, key("esc"))
	if m.screen != screenList {
		t.Fatal("expected back on list")
	}
}

func TestModelUpdate_RatesErrorIsShown(t *testing.T) {
	svc := &fakeService{ratesErr: &urlinfo.NetworkError{Op: "bitcoin rates", Err: errors.New("connection refused")}}
	m := loadedModel(t, svc, sampleRecords())

	m, cmd := update(t, m, key("b"))
	m, _ = update(t, m, cmd())
	if view := m.View(); !strings.Contains(view, "Could not load rates: Network error: connection refused") {
		t.Fatalf("expected rates error, got:\n%s", view)
	}
}

func TestModelUpdate_PreferenceTogglesAreSaved(t *testing.T) {
	m := loadedModel(t, nil, sampleRecords())
	var saved storage.UIPreferences
	calls := 0
	m.SetPreferencesSaver(func(p storage.UIPreferences) error {
		saved = p
		calls++
		return nil
	})

	m, cmd := update(t, m, key("c"))
	if cmd == nil {
		t.Fatal("expected save command")
	}
	if msg := cmd(); msg != nil {
		t.Fatalf("expected no message on successful save, got %T", msg)
	}
	if calls != 1 || !saved.Compact {
		t.Fatalf("expected compact saved, got %+v after %d calls", saved, calls)
	}
	if m.status != "Compact mode: on" {
		t.Fatalf("unexpected status %q", m.status)
	}
	if view := stripANSI(m.View()); !strings.Contains(view, "go.dev | The Go Programming Language") {
		t.Fatalf("expected compact label, got:\n%s", view)
	}

	m, cmd = update(t, m, key("N"))
	cmd()
	if saved.ShowNumbers {
		t.Fatal("expected numbering off")
	}
	if view := stripANSI(m.View()); strings.Contains(view, " 1. ") {
		t.Fatalf("expected no numbers, got:\n%s", view)
	}

	m.SetPreferencesSaver(func(storage.UIPreferences) error { return errors.New("disk full") })
	m, cmd = update(t, m, key("p"))
	m, _ = update(t, m, cmd())
	if m.err == nil || m.status != "Could not persist UI preferences" {
		t.Fatalf("expected save failure surfaced, got err=%v status=%q", m.err, m.status)
	}
}

func TestModelUpdate_ApplyPreferences(t *testing.T) {
	m := NewModel(nil, time.Second)
	m.ApplyPreferences(storage.UIPreferences{Compact: true, InlineImages: false, ConfirmDelete: false})

	got := m.preferences()
	want := storage.UIPreferences{Compact: true}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestModelUpdate_HelpToggles(t *testing.T) {
	m := loadedModel(t, nil, sampleRecords())
	m, _ = update(t, m, key("?"))
	if view := m.View(); !strings.Contains(view, "Navigation:") {
		t.Fatalf("expected help text, got:\n%s", view)
	}
	m, _ = update(t, m, key("?"))
	if m.showHelp {
		t.Fatal("expected help closed")
	}
}

func TestModelUpdate_OpenInvalidURLShowsStatus(t *testing.T) {
	m := loadedModel(t, nil, []urlinfo.Record{{PublicID: "x", URL: "ftp://files.example", Title: "Files"}})

	m, cmd := update(t, m, key("o"))
	if cmd == nil {
		t.Fatal("expected clear-status command")
	}
	if m.status != "unsupported URL scheme: ftp" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestModelUpdate_ReopenedDetailDoesNotResendDelete(t *testing.T) {
	svc := &fakeService{}
	m := loadedModel(t, svc, sampleRecords())
	m.inlineImages = false
	m.confirmDelete = false

	m, _ = update(t, m, key("enter"))
	m, first := update(t, m, key("d"))
	if first == nil {
		t.Fatal("expected remove command")
	}

	m, _ = update(t, m, key("esc"))
	m, _ = update(t, m, key("enter"))
	if m.screen != screenDetail {
		t.Fatal("expected detail reopened")
	}
	m, second := update(t, m, key("d"))
	if second != nil {
		t.Fatal("expected no second remove command while the first is pending")
	}
	if m.status != "Delete already in progress" {
		t.Fatalf("unexpected status %q", m.status)
	}

	m, _ = update(t, m, first())
	if len(svc.removed) != 1 || svc.removed[0] != "a1" {
		t.Fatalf("expected exactly one delete for a1, got %#v", svc.removed)
	}
	if m.screen != screenList || m.err != nil {
		t.Fatalf("expected clean return to list, screen=%v err=%v", m.screen, m.err)
	}
	if len(m.deletesInFlight) != 0 {
		t.Fatalf("expected in-flight set cleared, got %v", m.deletesInFlight)
	}
}
