// Package listing holds the client-side state of the URL-info collection: the
// fetched list, its search view and the detail screen's delete flow.
package listing

import (
	"context"
	"errors"
	"strings"

	"github.com/glabrego/urlinfo-cli/internal/urlinfo"
)

// ErrInFlight is returned when the same operation is already waiting on the network.
var ErrInFlight = errors.New("operation already in progress")

// Collection is the remote collection resource.
type Collection interface {
	List(ctx context.Context) ([]urlinfo.Record, error)
	Create(ctx context.Context, rawURL string) error
	Remove(ctx context.Context, publicID string) error
}

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseLoaded
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseLoaded:
		return "loaded"
	case PhaseError:
		return "error"
	default:
		return "idle"
	}
}

// ListState owns the fetched collection. It is not safe for concurrent use;
// callers apply network results from a single goroutine.
type ListState struct {
	collection Collection

	items    []urlinfo.Record
	filtered []urlinfo.Record
	query    string
	phase    Phase
	lastErr  error
	adding   bool
}

func NewListState(collection Collection) *ListState {
	return &ListState{
		collection: collection,
		items:      []urlinfo.Record{},
		filtered:   []urlinfo.Record{},
	}
}

// Refresh replaces the held items with the server's collection. On failure the
// previous items are kept and the error is recorded.
func (s *ListState) Refresh(ctx context.Context) error {
	if !s.BeginRefresh() {
		return ErrInFlight
	}
	records, err := s.collection.List(ctx)
	s.CompleteRefresh(records, err)
	return err
}

// BeginRefresh moves to Loading. It returns false when a refresh is already in flight.
func (s *ListState) BeginRefresh() bool {
	if s.phase == PhaseLoading {
		return false
	}
	s.phase = PhaseLoading
	return true
}

// CompleteRefresh applies the outcome of a list call started with BeginRefresh.
func (s *ListState) CompleteRefresh(records []urlinfo.Record, err error) {
	if err != nil {
		s.phase = PhaseError
		s.lastErr = err
		return
	}
	s.items = append(make([]urlinfo.Record, 0, len(records)), records...)
	s.phase = PhaseLoaded
	s.lastErr = nil
	s.recompute()
}

// AddURL submits candidate to the backend. The new record is not inserted
// locally; it shows up on the next Refresh once the backend has enriched it.
func (s *ListState) AddURL(ctx context.Context, candidate string) error {
	candidate, err := NormalizeCandidate(candidate)
	if err != nil {
		return err
	}
	if !s.BeginAdd() {
		return ErrInFlight
	}
	defer s.CompleteAdd()
	return s.collection.Create(ctx, candidate)
}

// NormalizeCandidate trims a user-typed URL. Blank input is rejected without
// a round trip; everything else is left for the backend to judge.
func NormalizeCandidate(candidate string) (string, error) {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return "", &urlinfo.AddError{Kind: urlinfo.AddInvalidURL}
	}
	return candidate, nil
}

// BeginAdd marks a create request as in flight. It returns false when one already is.
func (s *ListState) BeginAdd() bool {
	if s.adding {
		return false
	}
	s.adding = true
	return true
}

func (s *ListState) CompleteAdd() {
	s.adding = false
}

func (s *ListState) Adding() bool {
	return s.adding
}

// RemoveURL deletes publicID remotely and, once confirmed, drops it locally.
func (s *ListState) RemoveURL(ctx context.Context, publicID string) error {
	if err := s.collection.Remove(ctx, publicID); err != nil {
		return err
	}
	s.Drop(publicID)
	return nil
}

// Drop removes the record with publicID from the held items, if present.
func (s *ListState) Drop(publicID string) {
	for i, rec := range s.items {
		if rec.PublicID == publicID {
			s.items = append(s.items[:i:i], s.items[i+1:]...)
			s.recompute()
			return
		}
	}
}

// SetFilter stores query and recomputes the filtered view.
func (s *ListState) SetFilter(query string) {
	s.query = query
	s.recompute()
}

func (s *ListState) recompute() {
	s.filtered = Filter(s.items, s.query)
}

func (s *ListState) Items() []urlinfo.Record {
	return append(make([]urlinfo.Record, 0, len(s.items)), s.items...)
}

func (s *ListState) Filtered() []urlinfo.Record {
	return append(make([]urlinfo.Record, 0, len(s.filtered)), s.filtered...)
}

func (s *ListState) FilterQuery() string {
	return s.query
}

func (s *ListState) Phase() Phase {
	return s.phase
}

func (s *ListState) Loading() bool {
	return s.phase == PhaseLoading
}

func (s *ListState) LastError() error {
	return s.lastErr
}

// Len is the number of held items.
func (s *ListState) Len() int {
	return len(s.items)
}

// Find returns the held record with publicID.
func (s *ListState) Find(publicID string) (urlinfo.Record, bool) {
	for _, rec := range s.items {
		if rec.PublicID == publicID {
			return rec, true
		}
	}
	return urlinfo.Record{}, false
}
