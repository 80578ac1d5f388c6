package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/NachoToast/SpotifyQuiz/internal/model"
)

const (
	// DefaultBaseURL is the YouTube Data API v3 root
	DefaultBaseURL = "https://www.googleapis.com/youtube/v3"

	// maxCandidates is how many search results are considered per track
	maxCandidates = 3
)

// Client is an HTTP client for the YouTube Data API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new YouTube API client
func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Search returns up to 3 candidate videos for a query, with durations
// resolved. Candidates whose duration cannot be parsed are dropped.
func (c *Client) Search(ctx context.Context, query string) ([]model.Video, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("type", "video")
	params.Set("maxResults", fmt.Sprint(maxCandidates))
	params.Set("q", query)
	params.Set("key", c.apiKey)

	body, err := c.get(ctx, c.baseURL+"/search?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var search searchResponse
	if err := json.Unmarshal(body, &search); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}

	ids := make([]string, 0, len(search.Items))
	titles := make(map[string]string, len(search.Items))
	for _, item := range search.Items {
		if item.ID.VideoID == "" {
			continue
		}
		ids = append(ids, item.ID.VideoID)
		titles[item.ID.VideoID] = html.UnescapeString(item.Snippet.Title)
	}

	if len(ids) == 0 {
		return nil, nil
	}

	durations, err := c.durations(ctx, ids)
	if err != nil {
		return nil, err
	}

	// Preserve search ranking order
	videos := make([]model.Video, 0, len(ids))
	for _, id := range ids {
		durationMS, ok := durations[id]
		if !ok {
			continue
		}
		videos = append(videos, model.Video{
			ID:         id,
			Title:      titles[id],
			DurationMS: durationMS,
		})
	}

	return videos, nil
}

// durations fetches contentDetails for the given video IDs and returns a map
// of video ID to duration in milliseconds
func (c *Client) durations(ctx context.Context, ids []string) (map[string]int, error) {
	params := url.Values{}
	params.Set("part", "contentDetails")
	params.Set("id", strings.Join(ids, ","))
	params.Set("key", c.apiKey)

	body, err := c.get(ctx, c.baseURL+"/videos?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var videos videosResponse
	if err := json.Unmarshal(body, &videos); err != nil {
		return nil, fmt.Errorf("failed to parse videos response: %w", err)
	}

	result := make(map[string]int, len(videos.Items))
	for _, item := range videos.Items {
		durationMS, err := parseISODuration(item.ContentDetails.Duration)
		if err != nil {
			continue
		}
		result[item.ID] = durationMS
	}

	return result, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("youtube request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read youtube response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("youtube returned HTTP %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}
