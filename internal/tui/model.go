package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/urlinfo-cli/internal/listing"
	"github.com/glabrego/urlinfo-cli/internal/storage"
	tuiactions "github.com/glabrego/urlinfo-cli/internal/tui/actions"
	tuiplatform "github.com/glabrego/urlinfo-cli/internal/tui/platform"
	tuistate "github.com/glabrego/urlinfo-cli/internal/tui/state"
	tuitheme "github.com/glabrego/urlinfo-cli/internal/tui/theme"
	tuiview "github.com/glabrego/urlinfo-cli/internal/tui/view"
	"github.com/glabrego/urlinfo-cli/internal/urlinfo"
)

const (
	addSuccessStatus    = "The URL info has been successfully created."
	deleteSuccessStatus = "The URL info has been deleted."
	confirmDeleteStatus = "Delete this URL info? Press y to confirm, any other key to cancel"
)

type screen int

const (
	screenList screen = iota
	screenDetail
	screenRates
)

type inputMode int

const (
	inputNone inputMode = iota
	inputSearch
	inputAdd
)

type Model struct {
	service tuiactions.Service
	list    *listing.ListState
	detail  *listing.DetailState
	theme   tuitheme.Theme
	timeout time.Duration

	screen        screen
	input         textinput.Model
	inputMode     inputMode
	searchActive  bool
	cursor        int
	detailTop     int
	galleryIdx    int
	pendingDelete bool
	showHelp      bool

	compact       bool
	showNumbers   bool
	inlineImages  bool
	confirmDelete bool

	rates        *urlinfo.Rates
	ratesLoading bool
	ratesErr     error

	width    int
	height   int
	status   string
	statusID int
	err      error

	openURLFn           func(string) error
	copyURLFn           func(string) error
	savePreferencesFn   func(storage.UIPreferences) error
	renderImageFn       tuiactions.ImageRenderFunc
	kittyGraphics       bool
	imagePreview        map[string]string
	imagePreviewErr     map[string]string
	imagePreviewLoading map[string]bool
	// deletesInFlight outlives the detail screen that sent the request.
	deletesInFlight map[string]bool

	initialRefreshDuration time.Duration
	initialRefreshDone     bool
}

// NewModel builds the TUI over service. Every network call gets its own
// context bounded by timeout.
func NewModel(service tuiactions.Service, timeout time.Duration) Model {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	input := textinput.New()
	input.CharLimit = 2048
	input.Width = 60

	var collection listing.Collection
	if service != nil {
		collection = service
	}

	m := Model{
		service:   service,
		list:      listing.NewListState(collection),
		theme:     tuitheme.Default(),
		timeout:   timeout,
		input:     input,
		openURLFn: tuiplatform.OpenURLInBrowser,
		copyURLFn: tuiplatform.CopyURLToClipboard,
		renderImageFn: func(ctx context.Context, imageURL string, width int) (string, error) {
			return tuiview.RenderInlineImagePreview(ctx, nil, imageURL, width)
		},
		kittyGraphics:       tuiview.SupportsKittyGraphics(),
		imagePreview:        make(map[string]string),
		imagePreviewErr:     make(map[string]string),
		imagePreviewLoading: make(map[string]bool),
		deletesInFlight:     make(map[string]bool),
	}
	m.ApplyPreferences(storage.DefaultUIPreferences)
	return m
}

func (m Model) Init() tea.Cmd {
	if m.service == nil || !m.list.BeginRefresh() {
		return nil
	}
	return tuiactions.RefreshCmd(m.service, m.timeout, "init")
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if w := msg.Width - 12; w > 20 {
			m.input.Width = w
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tuiactions.RefreshSuccessMsg:
		anchorID := m.currentPublicID()
		m.list.CompleteRefresh(msg.Records, nil)
		m.cursor = tuistate.RestoreCursor(m.visibleRecords(), anchorID, m.cursor)
		m.err = nil
		if msg.Source == "init" {
			m.initialRefreshDuration = msg.Duration
			m.initialRefreshDone = true
		}
		return m, nil
	case tuiactions.RefreshErrorMsg:
		m.list.CompleteRefresh(nil, msg.Err)
		m.status = ""
		m.err = msg.Err
		if msg.Source == "init" {
			m.initialRefreshDuration = msg.Duration
			m.initialRefreshDone = true
		}
		return m, nil
	case tuiactions.AddSuccessMsg:
		m.list.CompleteAdd()
		m.closeInput()
		m.err = nil
		m.status = addSuccessStatus
		m.statusID++
		cmds := []tea.Cmd{tuiactions.ClearStatusCmd(m.statusID, 4*time.Second)}
		if m.service != nil && m.list.BeginRefresh() {
			cmds = append(cmds, tuiactions.RefreshCmd(m.service, m.timeout, "add"))
		}
		return m, tea.Batch(cmds...)
	case tuiactions.AddErrorMsg:
		m.list.CompleteAdd()
		m.status = ""
		m.err = msg.Err
		return m, nil
	case tuiactions.RemoveSuccessMsg:
		delete(m.deletesInFlight, msg.PublicID)
		if m.detail != nil && m.detail.Record().PublicID == msg.PublicID {
			if m.detail.CompleteDelete(nil) == listing.DeleteNavigateBack {
				m.closeDetail()
			}
		} else {
			m.list.Drop(msg.PublicID)
		}
		m.cursor = tuistate.ClampCursor(m.cursor, len(m.visibleRecords()))
		m.err = nil
		m.status = deleteSuccessStatus
		m.statusID++
		return m, tuiactions.ClearStatusCmd(m.statusID, 4*time.Second)
	case tuiactions.RemoveErrorMsg:
		delete(m.deletesInFlight, msg.PublicID)
		if m.detail != nil && m.detail.Record().PublicID == msg.PublicID {
			m.detail.CompleteDelete(msg.Err)
		}
		m.status = ""
		m.err = msg.Err
		return m, nil
	case tuiactions.RatesSuccessMsg:
		rates := msg.Rates
		m.rates = &rates
		m.ratesLoading = false
		m.ratesErr = nil
		return m, nil
	case tuiactions.RatesErrorMsg:
		m.ratesLoading = false
		m.ratesErr = msg.Err
		return m, nil
	case tuiactions.OpenURLSuccessMsg:
		m.err = nil
		m.status = msg.Status
		m.statusID++
		return m, tuiactions.ClearStatusCmd(m.statusID, 3*time.Second)
	case tuiactions.OpenURLErrorMsg:
		m.err = nil
		m.status = msg.Err.Error()
		m.statusID++
		return m, tuiactions.ClearStatusCmd(m.statusID, 4*time.Second)
	case tuiactions.ClearStatusMsg:
		if msg.ID == m.statusID {
			m.status = ""
		}
		return m, nil
	case tuiactions.PreferenceSaveErrorMsg:
		m.err = msg.Err
		m.status = "Could not persist UI preferences"
		return m, nil
	case tuiactions.InlineImagePreviewSuccessMsg:
		delete(m.imagePreviewLoading, msg.Key)
		delete(m.imagePreviewErr, msg.Key)
		m.imagePreview[msg.Key] = msg.Preview
		return m, nil
	case tuiactions.InlineImagePreviewErrorMsg:
		delete(m.imagePreviewLoading, msg.Key)
		m.imagePreviewErr[msg.Key] = msg.Err.Error()
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.inputMode {
	case inputSearch:
		return m.handleSearchKey(msg)
	case inputAdd:
		return m.handleAddKey(msg)
	}

	if m.showHelp {
		switch msg.String() {
		case "?", "esc":
			m.showHelp = false
		case "q":
			return m, tea.Quit
		}
		return m, nil
	}
	if msg.String() == "?" {
		m.showHelp = true
		return m, nil
	}

	switch m.screen {
	case screenDetail:
		return m.handleDetailKey(msg)
	case screenRates:
		return m.handleRatesKey(msg)
	}
	return m.handleListKey(msg)
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		m.moveCursorBy(-1)
	case "down", "j":
		m.moveCursorBy(1)
	case "pgup", "ctrl+b":
		m.moveCursorBy(-tuistate.PageStep(m.height, m.status != ""))
	case "pgdown", "ctrl+f":
		m.moveCursorBy(tuistate.PageStep(m.height, m.status != ""))
	case "g":
		m.cursor = 0
	case "G":
		m.cursor = tuistate.ClampCursor(len(m.visibleRecords())-1, len(m.visibleRecords()))
	case "enter":
		return m.openDetail()
	case "/":
		m.inputMode = inputSearch
		m.searchActive = true
		m.input.Prompt = "/ "
		m.input.Placeholder = "search titles and URLs"
		m.input.SetValue(m.list.FilterQuery())
		m.input.CursorEnd()
		m.list.SetFilter(m.input.Value())
		m.cursor = tuistate.ClampCursor(m.cursor, len(m.visibleRecords()))
		return m, m.input.Focus()
	case "a":
		m.inputMode = inputAdd
		m.input.Prompt = "URL: "
		m.input.Placeholder = "https://example.com"
		m.input.SetValue("")
		m.err = nil
		return m, m.input.Focus()
	case "esc":
		if m.searchActive {
			m.clearSearch()
		}
	case "b":
		return m.openRates()
	case "r":
		return m.refresh("manual")
	case "o":
		if rec, ok := m.currentRecord(); ok {
			return m.openURL(rec.URL)
		}
	case "y":
		if rec, ok := m.currentRecord(); ok {
			return m.copyURL(rec.URL)
		}
	case "c":
		m.compact = !m.compact
		return m.preferenceChanged("Compact mode", m.compact)
	case "N":
		m.showNumbers = !m.showNumbers
		return m.preferenceChanged("Numbering", m.showNumbers)
	case "i":
		m.inlineImages = !m.inlineImages
		return m.preferenceChanged("Inline image preview", m.inlineImages)
	case "p":
		m.confirmDelete = !m.confirmDelete
		return m.preferenceChanged("Confirm before delete", m.confirmDelete)
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.clearSearch()
		return m, nil
	case "enter":
		m.inputMode = inputNone
		m.input.Blur()
		if strings.TrimSpace(m.list.FilterQuery()) == "" {
			m.clearSearch()
		}
		return m, nil
	case "up", "down":
		delta := 1
		if msg.String() == "up" {
			delta = -1
		}
		m.moveCursorBy(delta)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != m.list.FilterQuery() {
		m.list.SetFilter(m.input.Value())
		m.cursor = 0
	}
	return m, cmd
}

func (m Model) handleAddKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeInput()
		return m, nil
	case "enter":
		if m.service == nil || m.list.Adding() {
			return m, nil
		}
		candidate, err := listing.NormalizeCandidate(m.input.Value())
		if err != nil {
			m.status = ""
			m.err = err
			return m, nil
		}
		if !m.list.BeginAdd() {
			return m, nil
		}
		m.err = nil
		m.status = "Submitting " + candidate
		return m, tuiactions.AddCmd(m.service, m.timeout, candidate)
	}
	if m.list.Adding() {
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.pendingDelete {
		m.pendingDelete = false
		if msg.String() == "y" {
			return m.startDelete()
		}
		m.status = "Delete cancelled"
		return m, nil
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "backspace":
		m.closeDetail()
	case "o":
		if m.detail != nil {
			return m.openURL(m.detail.Record().URL)
		}
	case "y":
		if m.detail != nil {
			return m.copyURL(m.detail.Record().URL)
		}
	case "d":
		if m.detail == nil || m.service == nil {
			return m, nil
		}
		if m.detail.Deleting() || m.deletesInFlight[m.detail.Record().PublicID] {
			m.status = "Delete already in progress"
			return m, nil
		}
		if m.confirmDelete {
			m.pendingDelete = true
			m.err = nil
			m.status = confirmDeleteStatus
			return m, nil
		}
		return m.startDelete()
	case "up", "k":
		if m.detailTop > 0 {
			m.detailTop--
		}
	case "down", "j":
		if m.detailTop < tuiview.DetailMaxTop(len(m.detailLines()), m.detailBodyHeight()) {
			m.detailTop++
		}
	case "[":
		if m.galleryIdx > 0 {
			m.galleryIdx--
			return m, m.ensureInlineImagePreviewCmd()
		}
	case "]":
		if m.detail != nil && m.galleryIdx < len(m.detail.Record().Images)-1 {
			m.galleryIdx++
			return m, m.ensureInlineImagePreviewCmd()
		}
	}
	return m, nil
}

func (m Model) handleRatesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "backspace":
		m.screen = screenList
	case "r":
		return m.openRates()
	}
	return m, nil
}

func (m Model) refresh(source string) (tea.Model, tea.Cmd) {
	if m.service == nil {
		return m, nil
	}
	if !m.list.BeginRefresh() {
		m.status = "Refresh already in progress"
		return m, nil
	}
	m.status = ""
	m.err = nil
	return m, tuiactions.RefreshCmd(m.service, m.timeout, source)
}

func (m Model) openDetail() (tea.Model, tea.Cmd) {
	rec, ok := m.currentRecord()
	if !ok {
		return m, nil
	}
	var collection listing.Collection
	if m.service != nil {
		collection = m.service
	}
	m.detail = listing.NewDetailState(rec, collection, m.list)
	m.screen = screenDetail
	m.detailTop = 0
	m.galleryIdx = 0
	m.pendingDelete = false
	return m, m.ensureInlineImagePreviewCmd()
}

func (m *Model) closeDetail() {
	m.detail = nil
	m.screen = screenList
	m.detailTop = 0
	m.galleryIdx = 0
	m.pendingDelete = false
	m.cursor = tuistate.ClampCursor(m.cursor, len(m.visibleRecords()))
}

func (m Model) startDelete() (tea.Model, tea.Cmd) {
	if m.detail == nil || m.service == nil {
		return m, nil
	}
	publicID := m.detail.Record().PublicID
	if m.deletesInFlight[publicID] || !m.detail.BeginDelete() {
		return m, nil
	}
	m.deletesInFlight[publicID] = true
	m.err = nil
	m.status = "Deleting " + m.detail.Record().URL
	return m, tuiactions.RemoveCmd(m.service, m.timeout, publicID)
}

func (m Model) openRates() (tea.Model, tea.Cmd) {
	m.screen = screenRates
	if m.service == nil || m.ratesLoading {
		return m, nil
	}
	m.ratesLoading = true
	return m, tuiactions.RatesCmd(m.service, m.timeout)
}

func (m Model) openURL(raw string) (tea.Model, tea.Cmd) {
	validURL, err := tuiplatform.ValidateURL(raw)
	if err != nil {
		m.err = nil
		m.status = err.Error()
		m.statusID++
		return m, tuiactions.ClearStatusCmd(m.statusID, 4*time.Second)
	}
	return m, tuiactions.OpenURLCmd(validURL, m.openURLFn, m.copyURLFn)
}

func (m Model) copyURL(raw string) (tea.Model, tea.Cmd) {
	validURL, err := tuiplatform.ValidateURL(raw)
	if err != nil {
		m.err = nil
		m.status = err.Error()
		m.statusID++
		return m, tuiactions.ClearStatusCmd(m.statusID, 4*time.Second)
	}
	return m, tuiactions.CopyURLCmd(validURL, m.copyURLFn)
}

func (m Model) preferenceChanged(label string, on bool) (tea.Model, tea.Cmd) {
	m.err = nil
	m.status = label + ": " + onOff(on)
	return m, tuiactions.SavePreferencesCmd(m.savePreferencesFn, m.preferences())
}

func (m *Model) closeInput() {
	m.inputMode = inputNone
	m.input.Blur()
	m.input.Reset()
}

func (m *Model) clearSearch() {
	anchorID := m.currentPublicID()
	m.closeInput()
	m.searchActive = false
	m.list.SetFilter("")
	m.cursor = tuistate.RestoreCursor(m.visibleRecords(), anchorID, 0)
}

// visibleRecords is the full list, or the search results while a search is active.
func (m Model) visibleRecords() []urlinfo.Record {
	if m.searchActive {
		return m.list.Filtered()
	}
	return m.list.Items()
}

func (m Model) currentRecord() (urlinfo.Record, bool) {
	visible := m.visibleRecords()
	if len(visible) == 0 {
		return urlinfo.Record{}, false
	}
	return visible[tuistate.ClampCursor(m.cursor, len(visible))], true
}

func (m Model) currentPublicID() string {
	rec, ok := m.currentRecord()
	if !ok {
		return ""
	}
	return rec.PublicID
}

func (m *Model) moveCursorBy(delta int) {
	m.cursor = tuistate.ClampCursor(m.cursor+delta, len(m.visibleRecords()))
}

func (m *Model) ensureInlineImagePreviewCmd() tea.Cmd {
	if !m.inlineImages || m.detail == nil || m.renderImageFn == nil {
		return nil
	}
	imageURL, ok := m.detail.Record().ImageURL(m.galleryIdx)
	if !ok {
		return nil
	}
	if _, ok := m.imagePreview[imageURL]; ok {
		return nil
	}
	if _, ok := m.imagePreviewErr[imageURL]; ok {
		return nil
	}
	if m.imagePreviewLoading[imageURL] {
		return nil
	}
	m.imagePreviewLoading[imageURL] = true
	return tuiactions.InlineImagePreviewCmd(imageURL, imageURL, m.contentWidth()-4, m.timeout, m.renderImageFn)
}

func (m Model) View() string {
	var b strings.Builder
	if m.kittyGraphics && m.screen != screenDetail {
		b.WriteString(tuiview.ClearKittyGraphicsSequence())
	}
	mode := m.mode()
	b.WriteString(m.theme.Title.Render("URL Info"))
	b.WriteString(" ")
	b.WriteString(m.theme.ModePill.Render(mode))
	b.WriteString("\n")
	b.WriteString(tuiview.Toolbar(mode))
	b.WriteString("\n\n")

	switch {
	case m.showHelp:
		b.WriteString(strings.Join(tuiview.HelpLines(), "\n"))
		b.WriteString("\n")
	case m.screen == screenDetail:
		b.WriteString(m.detailView())
	case m.screen == screenRates:
		b.WriteString(m.ratesView())
	default:
		b.WriteString(m.listView())
	}

	if m.inputMode != inputNone {
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.messagePanel())
	b.WriteString("\n")
	b.WriteString(m.footer())
	b.WriteString("\n")
	return b.String()
}

func (m Model) listView() string {
	visible := m.visibleRecords()
	if len(visible) == 0 {
		switch {
		case m.list.Loading() && m.list.Len() == 0:
			return "Loading URL info...\n"
		case m.searchActive && strings.TrimSpace(m.list.FilterQuery()) == "":
			return "Type to search titles and URLs.\n"
		case m.searchActive:
			return "No matching URLs.\n"
		default:
			return "No data available\n"
		}
	}

	cursor := tuistate.ClampCursor(m.cursor, len(visible))
	start, end := tuistate.CenteredWindow(len(visible), cursor, m.listBodyHeight())
	width := m.contentWidth()
	return tuiview.RenderListBody(tuiview.ListRenderInput{
		Count:  len(visible),
		Start:  start,
		End:    end,
		Cursor: cursor,
		RenderRecordLine: func(index int, active bool) string {
			return tuiview.RenderRecordLine(tuiview.RecordLineParams{
				Record:      visible[index],
				Compact:     m.compact,
				ShowNumbers: m.showNumbers,
				VisiblePos:  index,
				Active:      active,
				Width:       width,
			}, m.theme)
		},
	})
}

func (m Model) detailView() string {
	if m.detail == nil {
		return "No details available\n"
	}
	return tuiview.RenderDetailLines(m.detailLines(), m.detailTop, m.detailBodyHeight())
}

func (m Model) detailLines() []string {
	if m.detail == nil {
		return nil
	}
	rec := m.detail.Record()
	return tuiview.DetailLines(rec, m.contentWidth()-2, 2, tuiview.WrapText, m.galleryIdx, m.previewState(rec))
}

func (m Model) previewState(rec urlinfo.Record) tuiview.InlineImagePreviewState {
	if !m.inlineImages {
		return tuiview.InlineImagePreviewState{}
	}
	imageURL, ok := rec.ImageURL(m.galleryIdx)
	if !ok {
		return tuiview.InlineImagePreviewState{Enabled: true, Err: "unsupported image URL"}
	}
	return tuiview.InlineImagePreviewState{
		Enabled: true,
		Loading: m.imagePreviewLoading[imageURL],
		Raw:     m.imagePreview[imageURL],
		Err:     m.imagePreviewErr[imageURL],
	}
}

func (m Model) ratesView() string {
	switch {
	case m.rates != nil:
		out := strings.Join(tuiview.RatesLines(*m.rates, m.theme), "\n") + "\n"
		if m.ratesErr != nil {
			out += "\nCould not refresh rates: " + urlinfo.Describe(m.ratesErr) + "\n"
		}
		return out
	case m.ratesErr != nil:
		return "Could not load rates: " + urlinfo.Describe(m.ratesErr) + "\n"
	default:
		return "Loading rates...\n"
	}
}

func (m Model) mode() string {
	switch {
	case m.showHelp:
		return tuiview.ModeHelp
	case m.inputMode == inputSearch:
		return tuiview.ModeSearch
	case m.inputMode == inputAdd:
		return tuiview.ModeAdd
	case m.screen == screenDetail && m.pendingDelete:
		return tuiview.ModeConfirm
	case m.screen == screenDetail:
		return tuiview.ModeDetail
	case m.screen == screenRates:
		return tuiview.ModeRates
	}
	return tuiview.ModeList
}

func (m Model) messagePanel() string {
	warning := ""
	if m.err != nil {
		warning = urlinfo.Describe(m.err)
	}
	loading := m.list.Loading() || m.list.Adding() || m.ratesLoading || len(m.deletesInFlight) > 0
	return tuiview.Message(loading, m.err != nil, m.status, warning, m.theme)
}

func (m Model) footer() string {
	query := ""
	if m.searchActive {
		query = m.list.FilterQuery()
	}
	footer := tuiview.Footer(m.mode(), len(m.visibleRecords()), m.list.Len(), query, m.theme)
	if m.initialRefreshDone {
		footer += fmt.Sprintf(" • %s", m.theme.MetaLabel.Render(fmt.Sprintf("startup %dms", m.initialRefreshDuration.Milliseconds())))
	}
	return footer
}

func (m Model) contentWidth() int {
	if m.width > 0 {
		return m.width - 1
	}
	return 100
}

func (m Model) listBodyHeight() int {
	if m.height > 0 {
		used := 6
		if m.inputMode != inputNone {
			used += 2
		}
		if h := m.height - used; h > 3 {
			return h
		}
		return 3
	}
	return 0
}

func (m Model) detailBodyHeight() int {
	if m.height > 0 {
		if h := m.height - 6; h > 3 {
			return h
		}
	}
	return 16
}

func (m *Model) ApplyPreferences(prefs storage.UIPreferences) {
	m.compact = prefs.Compact
	m.showNumbers = prefs.ShowNumbers
	m.inlineImages = prefs.InlineImages
	m.confirmDelete = prefs.ConfirmDelete
}

func (m *Model) SetPreferencesSaver(saveFn func(storage.UIPreferences) error) {
	m.savePreferencesFn = saveFn
}

func (m *Model) SetImageRenderer(renderFn tuiactions.ImageRenderFunc) {
	m.renderImageFn = renderFn
}

func (m Model) preferences() storage.UIPreferences {
	return storage.UIPreferences{
		Compact:       m.compact,
		ShowNumbers:   m.showNumbers,
		InlineImages:  m.inlineImages,
		ConfirmDelete: m.confirmDelete,
	}
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
