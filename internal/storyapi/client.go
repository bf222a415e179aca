package storyapi

import (
	"bytes"
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
	defaultTimeout = 30 * time.Second
	userAgent      = "Storydesk/1.0"
)

// TokenProvider supplies the current bearer token for each request. The
// session store is the live source; requests made after logout carry no
// Authorization header.
type TokenProvider func() string

// Client implements domain.StoryRepository and domain.AuthRepository against
// the moderation REST API. It is stateless: caching is the stores' concern.
type Client struct {
	baseURL    string
	token      TokenProvider
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new moderation API client
func NewClient(baseURL string, token TokenProvider, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if token == nil {
		token = func() string { return "" }
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// listRoot returns the endpoint root for a status category's listing.
func listRoot(cat domain.Category) string {
	switch cat {
	case domain.CategoryApproved:
		return "/publishedStories"
	case domain.CategoryRejected:
		return "/rejectStories/rejected"
	default:
		return "/pendingStories"
	}
}

// doRequest performs an authenticated HTTP request and returns the decoded
// response envelope.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, payload interface{}) (*envelope, error) {
	reqURL := fmt.Sprintf("%s%s", c.baseURL, path)
	if query != nil {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.logger.Debug("api request", "method", method, "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("api request failed", "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrServerUnreachable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return nil, domain.ErrAuthFailed
	case http.StatusNotFound:
		return nil, domain.ErrStoryNotFound
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			c.logger.Error("api request error", "status", resp.StatusCode, "body", string(respBody))
			return nil, &domain.ServerError{StatusCode: resp.StatusCode}
		}
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("api request error", "status", resp.StatusCode, "message", env.Message)
		return nil, &domain.ServerError{StatusCode: resp.StatusCode, Message: env.Message}
	}

	return &env, nil
}

// ListStories returns one page of stories in a status category.
func (c *Client) ListStories(ctx context.Context, cat domain.Category, page, limit int) ([]domain.Story, domain.Pagination, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	env, err := c.doRequest(ctx, http.MethodGet, listRoot(cat), query, nil)
	if err != nil {
		return nil, domain.Pagination{}, err
	}
	if !env.Success {
		return nil, domain.Pagination{}, &domain.ServerError{Message: env.Message}
	}

	var payload storiesPayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return nil, domain.Pagination{}, fmt.Errorf("failed to parse stories payload: %w", err)
	}

	return payload.Stories, payload.Pagination, nil
}

// GetStory fetches a single story by id within a status category.
func (c *Client) GetStory(ctx context.Context, cat domain.Category, id string) (*domain.Story, error) {
	path := fmt.Sprintf("%s/%s", listRoot(cat), id)

	env, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, &domain.ServerError{Message: env.Message}
	}

	var story domain.Story
	if err := json.Unmarshal(env.Data, &story); err != nil {
		return nil, fmt.Errorf("failed to parse story payload: %w", err)
	}
	return &story, nil
}

// ApproveStories approves pending stories by id and returns the per-id
// breakdown. A mixed outcome is carried inside the result, not an error.
func (c *Client) ApproveStories(ctx context.Context, ids []string) (*domain.BulkResult, error) {
	return c.bulkAction(ctx, "/pendingStories/approve", ids)
}

// RejectStories rejects pending stories by id.
func (c *Client) RejectStories(ctx context.Context, ids []string) (*domain.BulkResult, error) {
	return c.bulkAction(ctx, "/rejectStories/reject", ids)
}

func (c *Client) bulkAction(ctx context.Context, path string, ids []string) (*domain.BulkResult, error) {
	if len(ids) == 0 {
		return nil, domain.ErrEmptySelection
	}

	env, err := c.doRequest(ctx, http.MethodPost, path, nil, bulkRequest{StoryIDs: ids})
	if err != nil {
		return nil, err
	}

	result := domain.BulkResult{Success: env.Success, Message: env.Message}
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &result); err != nil {
			return nil, fmt.Errorf("failed to parse bulk result: %w", err)
		}
	}
	return &result, nil
}

// UpdateStory applies a sparse patch to a story. Only fields set in the
// patch are sent.
func (c *Client) UpdateStory(ctx context.Context, id string, cat domain.Category, patch domain.StoryPatch) (*domain.Story, error) {
	body := updateRequest{
		StoryID:     id,
		StoriesType: string(cat),
		StoryPatch:  patch,
	}

	env, err := c.doRequest(ctx, http.MethodPut, "/admin/update-story", nil, body)
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, &domain.ServerError{Message: env.Message}
	}

	var story domain.Story
	if err := json.Unmarshal(env.Data, &story); err != nil {
		return nil, fmt.Errorf("failed to parse updated story: %w", err)
	}
	return &story, nil
}

// SearchStories returns one page of stories matching the search text within
// a status category.
func (c *Client) SearchStories(ctx context.Context, text string, cat domain.Category, page, limit int) ([]domain.Story, domain.Pagination, error) {
	query := url.Values{}
	query.Set("searchText", text)
	query.Set("storiesType", string(cat))
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	env, err := c.doRequest(ctx, http.MethodGet, "/admin/search-stories", query, nil)
	if err != nil {
		return nil, domain.Pagination{}, err
	}
	if !env.Success {
		return nil, domain.Pagination{}, &domain.ServerError{Message: env.Message}
	}

	var payload storiesPayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return nil, domain.Pagination{}, fmt.Errorf("failed to parse search payload: %w", err)
	}
	return payload.Stories, payload.Pagination, nil
}

// StoriesCounts returns aggregate story counts per status category.
func (c *Client) StoriesCounts(ctx context.Context) (*domain.StoriesInfo, error) {
	env, err := c.doRequest(ctx, http.MethodGet, "/admin/stories-counts", nil, nil)
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, &domain.ServerError{Message: env.Message}
	}

	var info domain.StoriesInfo
	if err := json.Unmarshal(env.Data, &info); err != nil {
		return nil, fmt.Errorf("failed to parse counts payload: %w", err)
	}
	return &info, nil
}
