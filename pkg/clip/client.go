package clip

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"booksland-be/pkg/store"
)

// Client talks to the external CLIP matching service. The service owns the
// embedding index; this client only ships catalog snapshots and queries.
type Client struct {
	BaseURL string

	matchClient *http.Client
	pushClient  *http.Client
}

func NewClient(baseURL string, matchTimeout, pushTimeout time.Duration) *Client {
	if matchTimeout <= 0 {
		matchTimeout = 60 * time.Second
	}
	if pushTimeout <= 0 {
		pushTimeout = 120 * time.Second
	}
	return &Client{
		BaseURL:     baseURL,
		matchClient: &http.Client{Timeout: matchTimeout},
		pushClient:  &http.Client{Timeout: pushTimeout},
	}
}

// --- Wire structs (internal to this package) ---

type matchRequest struct {
	Query string       `json:"query,omitempty"`
	Image string       `json:"image,omitempty"` // base64 data URL
	Color string       `json:"color,omitempty"`
	Books []store.Book `json:"books,omitempty"`
}

type matchEntry struct {
	store.Book
	Score float64 `json:"score"`
}

type matchResponse struct {
	Matches []matchEntry `json:"matches"`
}

// MatchText scores free text against the shipped catalog titles.
func (c *Client) MatchText(ctx context.Context, query string, books []store.Book) ([]store.MatchCandidate, error) {
	return c.match(ctx, "/clip-match-text", matchRequest{Query: query, Books: books})
}

// MatchImage scores an image (with optional accompanying text) against the catalog.
func (c *Client) MatchImage(ctx context.Context, query, imageB64 string, books []store.Book) ([]store.MatchCandidate, error) {
	return c.match(ctx, "/clip-match", matchRequest{Query: query, Image: imageB64, Books: books})
}

// Search runs a free-form text query against the service's pre-built index.
// No catalog payload; the service indexed the books at push time.
func (c *Client) Search(ctx context.Context, query string) ([]store.MatchCandidate, error) {
	return c.match(ctx, "/semantic-search", matchRequest{Query: query})
}

// MatchByColor returns books ranked by cover-color similarity to a canonical
// color token ("red", "blue", ...).
func (c *Client) MatchByColor(ctx context.Context, color string) ([]store.MatchCandidate, error) {
	return c.match(ctx, "/clip-match-color", matchRequest{Color: color})
}

// PushCatalog ships the current catalog snapshot so the service can (re)index
// it. The query is a throwaway; the endpoint indexes whatever books it receives.
func (c *Client) PushCatalog(ctx context.Context, books []store.Book) error {
	payload := matchRequest{Query: "dummy", Books: books}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL+"/clip-match-text", bytes.NewBuffer(payloadBytes))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.pushClient.Do(req)
	if err != nil {
		return fmt.Errorf("clip push failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("clip push error: status %d, body: %s", resp.StatusCode, string(body))
	}
	return nil
}

func (c *Client) match(ctx context.Context, endpoint string, payload matchRequest) ([]store.MatchCandidate, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL+endpoint, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.matchClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("clip request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("clip error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var matched matchResponse
	if err := json.Unmarshal(bodyBytes, &matched); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	candidates := make([]store.MatchCandidate, 0, len(matched.Matches))
	for i, m := range matched.Matches {
		candidates = append(candidates, store.MatchCandidate{
			Book:  m.Book,
			Score: m.Score,
			Rank:  i + 1,
		})
	}
	return candidates, nil
}
