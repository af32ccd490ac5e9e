package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/glabrego/urlinfo-cli/internal/storage"
	"github.com/glabrego/urlinfo-cli/internal/urlinfo"
)

type URLInfoClient interface {
	List(ctx context.Context) ([]urlinfo.Record, error)
	Create(ctx context.Context, rawURL string) error
	Remove(ctx context.Context, publicID string) error
	BitcoinRates(ctx context.Context) (urlinfo.Rates, error)
}

type Repository interface {
	LoadUIPreferences(ctx context.Context) (storage.UIPreferences, error)
	SaveUIPreferences(ctx context.Context, prefs storage.UIPreferences) error
	RecordSubmission(ctx context.Context, s storage.Submission) error
	ListSubmissions(ctx context.Context, limit int) ([]storage.Submission, error)
}

// Service joins the remote collection with local state. It satisfies
// listing.Collection, so list and detail states talk to it directly.
type Service struct {
	client URLInfoClient
	repo   Repository
	logger *slog.Logger
	now    func() time.Time

	mu    sync.Mutex
	known map[string]string
}

func NewService(client URLInfoClient, repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		client: client,
		repo:   repo,
		logger: logger,
		now:    time.Now,
		known:  make(map[string]string),
	}
}

func (s *Service) List(ctx context.Context) ([]urlinfo.Record, error) {
	records, err := s.client.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch url info list: %w", err)
	}

	s.mu.Lock()
	s.known = make(map[string]string, len(records))
	for _, rec := range records {
		s.known[rec.PublicID] = rec.URL
	}
	s.mu.Unlock()
	return records, nil
}

func (s *Service) Create(ctx context.Context, rawURL string) error {
	if err := s.client.Create(ctx, rawURL); err != nil {
		return fmt.Errorf("create url info: %w", err)
	}
	s.record(ctx, storage.Submission{Action: storage.ActionAdd, URL: rawURL})
	return nil
}

func (s *Service) Remove(ctx context.Context, publicID string) error {
	if err := s.client.Remove(ctx, publicID); err != nil {
		return fmt.Errorf("remove url info %s: %w", publicID, err)
	}

	s.mu.Lock()
	rawURL := s.known[publicID]
	delete(s.known, publicID)
	s.mu.Unlock()

	s.record(ctx, storage.Submission{Action: storage.ActionRemove, URL: rawURL, PublicID: publicID})
	return nil
}

func (s *Service) BitcoinRates(ctx context.Context) (urlinfo.Rates, error) {
	rates, err := s.client.BitcoinRates(ctx)
	if err != nil {
		return urlinfo.Rates{}, fmt.Errorf("fetch bitcoin rates: %w", err)
	}
	return rates, nil
}

func (s *Service) LoadUIPreferences(ctx context.Context) (storage.UIPreferences, error) {
	prefs, err := s.repo.LoadUIPreferences(ctx)
	if err != nil {
		return storage.UIPreferences{}, fmt.Errorf("load ui preferences: %w", err)
	}
	return prefs, nil
}

func (s *Service) SaveUIPreferences(ctx context.Context, prefs storage.UIPreferences) error {
	if err := s.repo.SaveUIPreferences(ctx, prefs); err != nil {
		return fmt.Errorf("save ui preferences: %w", err)
	}
	return nil
}

func (s *Service) History(ctx context.Context, limit int) ([]storage.Submission, error) {
	subs, err := s.repo.ListSubmissions(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("load submission history: %w", err)
	}
	return subs, nil
}

// record writes to the local log. The remote change already happened, so a
// local failure is only logged.
func (s *Service) record(ctx context.Context, sub storage.Submission) {
	if s.repo == nil {
		return
	}
	sub.URL = strings.TrimSpace(sub.URL)
	sub.At = s.now()
	if err := s.repo.RecordSubmission(ctx, sub); err != nil {
		s.logger.Warn("record submission failed", "action", sub.Action, "error", err)
	}
}
