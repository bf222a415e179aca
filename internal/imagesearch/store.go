package imagesearch

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"storydesk/internal/domain"
	"storydesk/internal/unsplash"
)

const msgSearchFailed = "Failed to search images. Please try again."

// Searcher is the slice of the Unsplash client the store needs.
type Searcher interface {
	SearchPhotos(ctx context.Context, query string, perPage int) ([]unsplash.Photo, error)
}

// Store holds cover-image search state for the picker. Results live only in
// memory; each search replaces the previous result set.
type Store struct {
	client  Searcher
	perPage int
	logger  *slog.Logger

	mu          sync.RWMutex
	images      []unsplash.Photo
	query       string
	hasSearched bool
	loading     bool
	lastErr     string
}

func NewStore(client Searcher, perPage int, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	if perPage <= 0 {
		perPage = 12
	}
	return &Store{client: client, perPage: perPage, logger: logger}
}

// SearchImages queries the image provider. A blank query is rejected locally
// and leaves the current results untouched.
func (s *Store) SearchImages(ctx context.Context, query string) error {
	if strings.TrimSpace(query) == "" {
		err := &domain.ValidationError{Message: "search query must not be empty"}
		s.mu.Lock()
		s.lastErr = err.Message
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()

	photos, err := s.client.SearchPhotos(ctx, query, s.perPage)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.hasSearched = true
	s.query = query
	if err != nil {
		s.logger.Error("image search failed", "query", query, "error", err)
		s.images = nil
		s.lastErr = msgSearchFailed
		return err
	}

	s.images = photos
	return nil
}

// SelectImage resolves a picked photo to the URL to store on the story,
// with the provider's attribution parameters appended.
func (s *Store) SelectImage(photo unsplash.Photo) string {
	return unsplash.WithAttribution(photo.URLs.Regular)
}

// ClearImages resets the picker to its initial state.
func (s *Store) ClearImages() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images = nil
	s.query = ""
	s.hasSearched = false
	s.lastErr = ""
}

func (s *Store) Images() []unsplash.Photo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]unsplash.Photo, len(s.images))
	copy(out, s.images)
	return out
}

func (s *Store) Query() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

func (s *Store) HasSearched() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hasSearched
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Store) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}
