package unsplash

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"storydesk/internal/domain"
)

const (
	// DefaultBaseURL is the public Unsplash API root.
	DefaultBaseURL = "https://api.unsplash.com"

	defaultTimeout = 15 * time.Second
	utmSource      = "storydesk"
)

// Photo is one image search result. Attribution fields must be preserved
// when a photo is selected for use.
type Photo struct {
	ID   string `json:"id"`
	URLs struct {
		Raw     string `json:"raw"`
		Full    string `json:"full"`
		Regular string `json:"regular"`
		Small   string `json:"small"`
		Thumb   string `json:"thumb"`
	} `json:"urls"`
	AltDescription string `json:"alt_description"`
	User           struct {
		Name     string `json:"name"`
		Username string `json:"username"`
	} `json:"user"`
}

// Client is a minimal Unsplash search client.
type Client struct {
	baseURL    string
	accessKey  string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates an Unsplash client. baseURL is overridable for tests;
// pass DefaultBaseURL in production.
func NewClient(baseURL, accessKey string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		accessKey: accessKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// SearchPhotos searches landscape-oriented photos matching the query.
func (c *Client) SearchPhotos(ctx context.Context, query string, perPage int) ([]Photo, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", strconv.Itoa(perPage))
	params.Set("orientation", "landscape")

	reqURL := fmt.Sprintf("%s/search/photos?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Client-ID "+c.accessKey)

	c.logger.Debug("unsplash request", "query", query, "perPage", perPage)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("unsplash request failed", "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrServerUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, domain.ErrAuthFailed
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Error("unsplash request error", "status", resp.StatusCode, "body", string(body))
		return nil, &domain.ServerError{StatusCode: resp.StatusCode}
	}

	var payload struct {
		Results []Photo `json:"results"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return payload.Results, nil
}

// WithAttribution appends the attribution query parameters required by the
// provider's usage terms to a chosen image URL. Pure function; safe on URLs
// that already carry query parameters.
func WithAttribution(imageURL string) string {
	sep := "?"
	if strings.Contains(imageURL, "?") {
		sep = "&"
	}
	return imageURL + sep + "utm_source=" + utmSource + "&utm_medium=referral"
}
