// Package video finds a tutorial video for a free-text query. Lookups never
// fail: without an API key, or when the search errors, a web search link is
// returned instead.
package video

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
)

const (
	defaultYouTubeBaseURL = "https://www.googleapis.com/youtube/v3"
	watchURL              = "https://www.youtube.com/watch?v="
	searchURL             = "https://www.google.com/search?q="
)

// Finder returns a URL for query. It always returns a usable URL.
type Finder interface {
	Find(ctx context.Context, query string) string
}

// SearchFallback builds a web search link for query.
func SearchFallback(query string) string {
	return searchURL + url.QueryEscape(query)
}

// FallbackFinder answers every query with a web search link.
type FallbackFinder struct{}

func (FallbackFinder) Find(_ context.Context, query string) string {
	return SearchFallback(query)
}

// YouTubeFinder searches the YouTube Data API for the top video.
type YouTubeFinder struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// Option configures a YouTubeFinder.
type Option func(*YouTubeFinder)

// WithBaseURL sets the API base URL (for testing).
func WithBaseURL(u string) Option {
	return func(f *YouTubeFinder) {
		f.baseURL = u
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(f *YouTubeFinder) {
		f.client = client
	}
}

// New returns a YouTubeFinder when apiKey is set and a FallbackFinder
// otherwise.
func New(apiKey string, opts ...Option) Finder {
	if apiKey == "" {
		slog.Warn("YouTube API key not set, video lookups will return search links")
		return FallbackFinder{}
	}
	return NewYouTubeFinder(apiKey, opts...)
}

// NewYouTubeFinder creates a YouTube search client.
func NewYouTubeFinder(apiKey string, opts ...Option) *YouTubeFinder {
	f := &YouTubeFinder{
		apiKey:  apiKey,
		baseURL: defaultYouTubeBaseURL,
		client:  http.DefaultClient,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
	} `json:"items"`
}

// Find returns the watch URL of the top search hit, or the search
// fallback when there is none.
func (f *YouTubeFinder) Find(ctx context.Context, query string) string {
	id, err := f.search(ctx, query)
	if err != nil {
		slog.Warn("YouTube search failed", "query", query, "error", err)
		return SearchFallback(query)
	}
	if id == "" {
		return SearchFallback(query)
	}
	return watchURL + id
}

func (f *YouTubeFinder) search(ctx context.Context, query string) (string, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("maxResults", "1")
	params.Set("type", "video")
	params.Set("q", "tutorial for "+query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	// Kept out of the URL so transport errors never carry it into logs.
	req.Header.Set("X-Goog-Api-Key", f.apiKey)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("youtube api error (status %d): %s", resp.StatusCode, string(body))
	}

	var sr searchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(sr.Items) == 0 {
		return "", nil
	}
	return sr.Items[0].ID.VideoID, nil
}
