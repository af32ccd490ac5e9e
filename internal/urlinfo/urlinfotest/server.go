// Package urlinfotest provides an in-memory fake of the URL-info backend for tests.
package urlinfotest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/glabrego/urlinfo-cli/internal/urlinfo"
)

// Route names accepted by Fail and Calls.
const (
	RouteList   = "list"
	RouteCreate = "create"
	RouteRemove = "remove"
	RouteRates  = "rates"
)

// UnreachableHost is rejected by create with 422, mimicking a valid URL whose server is down.
const UnreachableHost = "unreachable.invalid"

type failure struct {
	status int
	body   string
}

type Server struct {
	mu       sync.Mutex
	records  []urlinfo.Record
	rates    urlinfo.Rates
	failures map[string]failure
	listBody string
	calls    map[string]int

	ts *httptest.Server
}

// NewServer starts a fake seeded with records and closes it when the test ends.
func NewServer(t testing.TB, records ...urlinfo.Record) *Server {
	t.Helper()
	s := &Server{
		records:  append([]urlinfo.Record(nil), records...),
		rates:    urlinfo.Rates{BitcoinEUR: 58123.456, EURToGBP: 0.8532, BitcoinGBP: 49590.83},
		failures: make(map[string]failure),
		calls:    make(map[string]int),
	}

	r := chi.NewRouter()
	r.Get("/api/v1/urlinfo", s.handleList)
	r.Post("/api/v1/urlinfo/", s.handleCreate)
	r.Delete("/api/v1/urlinfo/detail/{publicId}", s.handleRemove)
	r.Get("/api/v1/crypto/bitcoin", s.handleRates)

	s.ts = httptest.NewServer(r)
	t.Cleanup(s.ts.Close)
	return s
}

// BaseURL is the API root to hand to urlinfo.NewClient.
func (s *Server) BaseURL() string {
	return s.ts.URL + "/api/v1"
}

func (s *Server) HTTPClient() *http.Client {
	return s.ts.Client()
}

// Fail makes every request to route answer with status and body until Recover is called.
func (s *Server) Fail(route string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = failure{status: status, body: body}
}

func (s *Server) Recover(route string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, route)
}

// SetListBody replaces the list response body verbatim (status 200).
func (s *Server) SetListBody(body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listBody = body
}

func (s *Server) SetRates(rates urlinfo.Rates) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rates = rates
}

// Records returns a snapshot of the server-side collection.
func (s *Server) Records() []urlinfo.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]urlinfo.Record(nil), s.records...)
}

// Calls returns how many requests reached route.
func (s *Server) Calls(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[route]
}

func (s *Server) begin(w http.ResponseWriter, route string) bool {
	s.mu.Lock()
	s.calls[route]++
	f, failing := s.failures[route]
	s.mu.Unlock()
	if !failing {
		return true
	}
	w.WriteHeader(f.status)
	_, _ = w.Write([]byte(f.body))
	return false
}

func (s *Server) handleList(w http.ResponseWriter, _ *http.Request) {
	if !s.begin(w, RouteList) {
		return
	}
	s.mu.Lock()
	raw := s.listBody
	records := append([]urlinfo.Record(nil), s.records...)
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if raw != "" {
		_, _ = w.Write([]byte(raw))
		return
	}
	_ = json.NewEncoder(w).Encode(records)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	if !s.begin(w, RouteCreate) {
		return
	}
	var payload struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid body"})
		return
	}
	parsed, err := url.Parse(strings.TrimSpace(payload.URL))
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid url"})
		return
	}
	if parsed.Hostname() == UnreachableHost {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"message": "could not reach url"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.records {
		if rec.URL == payload.URL {
			writeJSON(w, http.StatusConflict, map[string]string{"message": "url already exists"})
			return
		}
	}
	rec := urlinfo.Record{
		PublicID:        uuid.NewString(),
		URL:             payload.URL,
		Title:           parsed.Hostname(),
		Images:          []string{},
		StylesheetCount: 0,
	}
	s.records = append(s.records, rec)
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	if !s.begin(w, RouteRemove) {
		return
	}
	id := chi.URLParam(r, "publicId")

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, rec := range s.records {
		if rec.PublicID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "url info does not exist"})
}

func (s *Server) handleRates(w http.ResponseWriter, _ *http.Request) {
	if !s.begin(w, RouteRates) {
		return
	}
	s.mu.Lock()
	rates := s.rates
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, rates)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
