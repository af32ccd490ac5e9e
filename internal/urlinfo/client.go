package urlinfo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	opList   = "list url info"
	opCreate = "create url info"
	opRemove = "remove"
	opRates  = "bitcoin rates"

	maxErrorBody = 4096
)

type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient builds a client for the API rooted at baseURL, e.g. https://host/api/v1.
// A nil httpClient gets a default with a 30s timeout; a nil logger discards.
func NewClient(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		logger:  logger,
	}
}

// List fetches the whole collection. A 2xx body that is valid JSON but not an
// array yields an empty result and a warning instead of an error.
func (c *Client) List(ctx context.Context) ([]Record, error) {
	resp, reqID, err := c.do(ctx, opList, http.MethodGet, "/urlinfo", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return nil, &HTTPError{Op: opList, Status: resp.StatusCode, Body: readErrorBody(resp.Body)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Op: opList, Err: err}
	}
	trimmed := bytes.TrimSpace(body)
	if !json.Valid(trimmed) {
		return nil, &MalformedResponseError{Op: opList, Reason: "body is not JSON"}
	}
	if len(trimmed) == 0 || trimmed[0] != '[' {
		c.logger.Warn("urlinfo: unexpected data format, expected array", "request_id", reqID, "body_prefix", snippet(trimmed, 80))
		return []Record{}, nil
	}

	var raw []wireRecord
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, &MalformedResponseError{Op: opList, Reason: "record shape", Err: err}
	}

	records := make([]Record, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for i, w := range raw {
		rec, err := w.record()
		if err != nil {
			return nil, &MalformedResponseError{Op: opList, Reason: fmt.Sprintf("record %d: %s", i, err.Error())}
		}
		if _, dup := seen[rec.PublicID]; dup {
			c.logger.Warn("urlinfo: duplicate publicId in list response", "request_id", reqID, "public_id", rec.PublicID)
			continue
		}
		seen[rec.PublicID] = struct{}{}
		records = append(records, rec)
	}
	return records, nil
}

// Create submits rawURL for extraction. The created record is not returned;
// callers refresh the collection to observe it.
func (c *Client) Create(ctx context.Context, rawURL string) error {
	payload, err := json.Marshal(map[string]string{"url": rawURL})
	if err != nil {
		return fmt.Errorf("encode create payload: %w", err)
	}

	resp, _, err := c.do(ctx, opCreate, http.MethodPost, "/urlinfo/", payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if isSuccess(resp.StatusCode) {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return addErrorForStatus(resp.StatusCode, serverMessage(body))
}

// Remove deletes the record identified by publicID.
func (c *Client) Remove(ctx context.Context, publicID string) error {
	if strings.TrimSpace(publicID) == "" {
		return fmt.Errorf("remove: publicId is required")
	}

	resp, _, err := c.do(ctx, opRemove, http.MethodDelete, "/urlinfo/detail/"+url.PathEscape(publicID), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return &HTTPError{Op: opRemove, Status: resp.StatusCode, Body: readErrorBody(resp.Body)}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// BitcoinRates fetches the exchange-rate resource. Every field must be present and numeric.
func (c *Client) BitcoinRates(ctx context.Context) (Rates, error) {
	resp, _, err := c.do(ctx, opRates, http.MethodGet, "/crypto/bitcoin", nil)
	if err != nil {
		return Rates{}, err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return Rates{}, &HTTPError{Op: opRates, Status: resp.StatusCode, Body: readErrorBody(resp.Body)}
	}

	var wire struct {
		BitcoinEUR *float64 `json:"bitcoin_eur"`
		EURToGBP   *float64 `json:"eur_to_gbp"`
		BitcoinGBP *float64 `json:"bitcoin_gbp"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return Rates{}, &MalformedResponseError{Op: opRates, Reason: "rates shape", Err: err}
	}
	switch {
	case wire.BitcoinEUR == nil:
		return Rates{}, &MalformedResponseError{Op: opRates, Reason: "missing bitcoin_eur"}
	case wire.EURToGBP == nil:
		return Rates{}, &MalformedResponseError{Op: opRates, Reason: "missing eur_to_gbp"}
	case wire.BitcoinGBP == nil:
		return Rates{}, &MalformedResponseError{Op: opRates, Reason: "missing bitcoin_gbp"}
	}
	return Rates{BitcoinEUR: *wire.BitcoinEUR, EURToGBP: *wire.EURToGBP, BitcoinGBP: *wire.BitcoinGBP}, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, body []byte) (*http.Response, string, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, "", fmt.Errorf("build request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	c.logger.Debug("urlinfo: request", "request_id", reqID, "method", method, "path", path)
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("urlinfo: request failed", "request_id", reqID, "method", method, "path", path, "error", err)
		return nil, reqID, &NetworkError{Op: op, Err: err}
	}
	c.logger.Debug("urlinfo: response", "request_id", reqID, "status", resp.StatusCode, "duration", time.Since(start))
	return resp, reqID, nil
}

type wireRecord struct {
	PublicID        *string  `json:"publicId"`
	URL             *string  `json:"url"`
	Title           string   `json:"title"`
	Images          []string `json:"images"`
	StylesheetCount int      `json:"stylesheetCount"`
}

func (w wireRecord) record() (Record, error) {
	if w.PublicID == nil || strings.TrimSpace(*w.PublicID) == "" {
		return Record{}, fmt.Errorf("missing publicId")
	}
	if w.URL == nil {
		return Record{}, fmt.Errorf("missing url")
	}
	if w.StylesheetCount < 0 {
		return Record{}, fmt.Errorf("negative stylesheetCount %d", w.StylesheetCount)
	}
	images := w.Images
	if images == nil {
		images = []string{}
	}
	return Record{
		PublicID:        *w.PublicID,
		URL:             *w.URL,
		Title:           w.Title,
		Images:          images,
		StylesheetCount: w.StylesheetCount,
	}, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

func readErrorBody(r io.Reader) string {
	body, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if msg := serverMessage(body); msg != "" {
		return msg
	}
	return strings.TrimSpace(string(body))
}

func snippet(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
