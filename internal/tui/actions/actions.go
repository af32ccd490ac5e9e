package actions

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/urlinfo-cli/internal/storage"
	"github.com/glabrego/urlinfo-cli/internal/urlinfo"
)

type Service interface {
	List(ctx context.Context) ([]urlinfo.Record, error)
	Create(ctx context.Context, rawURL string) error
	Remove(ctx context.Context, publicID string) error
	BitcoinRates(ctx context.Context) (urlinfo.Rates, error)
}

type RefreshSuccessMsg struct {
	Records  []urlinfo.Record
	Duration time.Duration
	Source   string
}

type RefreshErrorMsg struct {
	Err      error
	Duration time.Duration
	Source   string
}

type AddSuccessMsg struct {
	URL string
}

type AddErrorMsg struct {
	URL string
	Err error
}

type RemoveSuccessMsg struct {
	PublicID string
}

type RemoveErrorMsg struct {
	PublicID string
	Err      error
}

type RatesSuccessMsg struct {
	Rates urlinfo.Rates
}

type RatesErrorMsg struct {
	Err error
}

type OpenURLSuccessMsg struct {
	Status string
	Opened bool
}

type OpenURLErrorMsg struct {
	Err error
}

type ClearStatusMsg struct {
	ID int
}

type PreferenceSaveErrorMsg struct {
	Err error
}

type InlineImagePreviewSuccessMsg struct {
	Key     string
	Preview string
}

type InlineImagePreviewErrorMsg struct {
	Key string
	Err error
}

func RefreshCmd(service Service, timeout time.Duration, source string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		start := time.Now()

		records, err := service.List(ctx)
		if err != nil {
			return RefreshErrorMsg{Err: err, Duration: time.Since(start), Source: source}
		}
		return RefreshSuccessMsg{Records: records, Duration: time.Since(start), Source: source}
	}
}

func AddCmd(service Service, timeout time.Duration, rawURL string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := service.Create(ctx, rawURL); err != nil {
			return AddErrorMsg{URL: rawURL, Err: err}
		}
		return AddSuccessMsg{URL: rawURL}
	}
}

func RemoveCmd(service Service, timeout time.Duration, publicID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := service.Remove(ctx, publicID); err != nil {
			return RemoveErrorMsg{PublicID: publicID, Err: err}
		}
		return RemoveSuccessMsg{PublicID: publicID}
	}
}

func RatesCmd(service Service, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		rates, err := service.BitcoinRates(ctx)
		if err != nil {
			return RatesErrorMsg{Err: err}
		}
		return RatesSuccessMsg{Rates: rates}
	}
}

func OpenURLCmd(url string, openFn, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if openFn != nil {
			if err := openFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "Opened URL in browser", Opened: true}
			}
		}
		if copyFn != nil {
			if err := copyFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "Could not open browser, URL copied to clipboard"}
			}
		}
		return OpenURLErrorMsg{Err: fmt.Errorf("could not open URL or copy to clipboard")}
	}
}

func CopyURLCmd(url string, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if copyFn != nil {
			if err := copyFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "URL copied to clipboard"}
			}
		}
		return OpenURLErrorMsg{Err: fmt.Errorf("could not copy URL to clipboard")}
	}
}

func ClearStatusCmd(id int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return ClearStatusMsg{ID: id}
	})
}

func SavePreferencesCmd(saveFn func(storage.UIPreferences) error, prefs storage.UIPreferences) tea.Cmd {
	if saveFn == nil {
		return nil
	}
	return func() tea.Msg {
		if err := saveFn(prefs); err != nil {
			return PreferenceSaveErrorMsg{Err: err}
		}
		return nil
	}
}

// ImageRenderFunc turns an image URL into terminal output at the given width.
type ImageRenderFunc func(ctx context.Context, imageURL string, width int) (string, error)

func InlineImagePreviewCmd(key, imageURL string, width int, timeout time.Duration, renderFn ImageRenderFunc) tea.Cmd {
	if renderFn == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		preview, err := renderFn(ctx, imageURL, width)
		if err != nil {
			return InlineImagePreviewErrorMsg{Key: key, Err: err}
		}
		return InlineImagePreviewSuccessMsg{Key: key, Preview: preview}
	}
}
