package moderation

import (
	"context"
	"log/slog"
	"sync"

	"storydesk/internal/domain"
)

// User-facing failure messages. The view renders these next to a retry
// affordance; the underlying error goes to the log.
const (
	msgFetchFailed  = "Failed to fetch stories. Please try again."
	msgDetailFailed = "Failed to fetch story details. Please try again."
	msgSearchFailed = "Failed to search stories. Please try again."
	msgCountsFailed = "Failed to fetch story counts. Please try again."
)

// categoryState holds the per-category list, page cache, and pagination.
type categoryState struct {
	items      []domain.Story
	pageCache  map[int][]domain.Story
	pagination *domain.Pagination
}

func newCategoryState() *categoryState {
	return &categoryState{pageCache: make(map[int][]domain.Story)}
}

// Store is the single source of truth for moderation state: per-category
// story lists with page caches, the selection set, the story under detail
// view, search results, and aggregate counts.
//
// Overlapping fetches for the same category are not coalesced or cancelled;
// the last response to resolve wins. That race is documented behavior, not
// an oversight.
type Store struct {
	client domain.StoryRepository
	logger *slog.Logger

	mu          sync.RWMutex
	cats        map[domain.Category]*categoryState
	selected    map[string]struct{}
	current     *domain.Story
	counts      *domain.StoriesInfo
	searchCache map[searchKey]searchEntry
	loading     bool
	lastErr     string
}

// NewStore creates a moderation store over the given repository.
func NewStore(client domain.StoryRepository, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		client: client,
		logger: logger,
	}
	s.resetLocked()
	return s
}

// Reset drops all state. Teardown hook for test isolation and logout.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

func (s *Store) resetLocked() {
	s.cats = map[domain.Category]*categoryState{
		domain.CategoryPending:  newCategoryState(),
		domain.CategoryApproved: newCategoryState(),
		domain.CategoryRejected: newCategoryState(),
	}
	s.selected = make(map[string]struct{})
	s.current = nil
	s.counts = nil
	s.searchCache = make(map[searchKey]searchEntry)
	s.loading = false
	s.lastErr = ""
}

// FetchStories loads one page of a category, serving from the page cache
// when possible. force bypasses the cache. Changing page clears the
// selection.
func (s *Store) FetchStories(ctx context.Context, cat domain.Category, page, limit int, force bool) error {
	s.beginAction()

	s.mu.Lock()
	cs := s.cats[cat]
	pageChanged := cs.pagination != nil && cs.pagination.CurrentPage != page

	if cached, ok := cs.pageCache[page]; ok && !force {
		// Cache hit: reuse the last known totals and recompute the derived
		// fields for this page. If the server-side list changed since the
		// original fetch the totals are stale until the next real fetch.
		cs.items = cached
		if cs.pagination != nil {
			synth := cs.pagination.Synthesize(page)
			cs.pagination = &synth
		} else {
			synth := domain.NewPagination(page, page, len(cached), limit)
			cs.pagination = &synth
		}
		if pageChanged {
			s.selected = make(map[string]struct{})
		}
		s.pruneSelectionLocked()
		s.loading = false
		s.mu.Unlock()
		s.logger.Debug("page cache hit", "category", cat, "page", page)
		return nil
	}
	s.mu.Unlock()

	stories, pg, err := s.client.ListStories(ctx, cat, page, limit)
	if err != nil {
		s.logger.Error("failed to fetch stories", "error", err, "category", cat, "page", page)
		s.failAction(msgFetchFailed)
		return err
	}

	s.mu.Lock()
	cs = s.cats[cat]
	cs.items = stories
	cs.pageCache[page] = stories
	cs.pagination = &pg
	if pageChanged {
		s.selected = make(map[string]struct{})
	}
	s.pruneSelectionLocked()
	s.loading = false
	s.mu.Unlock()

	s.logger.Debug("fetched stories", "category", cat, "page", page, "count", len(stories))
	return nil
}

// FetchStory loads a single story into the detail view slot.
func (s *Store) FetchStory(ctx context.Context, cat domain.Category, id string) error {
	s.beginAction()

	story, err := s.client.GetStory(ctx, cat, id)
	if err != nil {
		s.logger.Error("failed to fetch story", "error", err, "storyID", id, "category", cat)
		s.failAction(msgDetailFailed)
		return err
	}

	s.mu.Lock()
	s.current = story
	s.loading = false
	s.mu.Unlock()
	return nil
}

// FetchCounts loads the aggregate per-category counts.
func (s *Store) FetchCounts(ctx context.Context) error {
	s.beginAction()

	info, err := s.client.StoriesCounts(ctx)
	if err != nil {
		s.logger.Error("failed to fetch story counts", "error", err)
		s.failAction(msgCountsFailed)
		return err
	}

	s.mu.Lock()
	s.counts = info
	s.loading = false
	s.mu.Unlock()
	return nil
}

// ClearCache drops the page cache, pagination, and loaded items for a
// category. Used when the list composition may have silently diverged from
// the cache's assumptions.
func (s *Store) ClearCache(cat domain.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cats[cat] = newCategoryState()
	if cat == domain.CategoryPending {
		// selection must stay a subset of the pending items
		s.selected = make(map[string]struct{})
	}
	s.logger.Debug("cleared cache", "category", cat)
}

// pruneSelectionLocked drops selected ids no longer present in the pending
// items. Callers hold s.mu.
func (s *Store) pruneSelectionLocked() {
	if len(s.selected) == 0 {
		return
	}
	present := make(map[string]struct{}, len(s.cats[domain.CategoryPending].items))
	for _, st := range s.cats[domain.CategoryPending].items {
		present[st.ID] = struct{}{}
	}
	for id := range s.selected {
		if _, ok := present[id]; !ok {
			delete(s.selected, id)
		}
	}
}

// beginAction marks the store loading and clears the previous error.
func (s *Store) beginAction() {
	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()
}

// failAction records a user-facing error message. Prior state is left
// untouched; failures never propagate as panics past the store boundary.
func (s *Store) failAction(msg string) {
	s.mu.Lock()
	s.lastErr = msg
	s.loading = false
	s.mu.Unlock()
}

// --- Accessors ---

// Stories returns the loaded items for a category.
func (s *Store) Stories(cat domain.Category) []domain.Story {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := s.cats[cat].items
	out := make([]domain.Story, len(items))
	copy(out, items)
	return out
}

// Pagination returns the current descriptor for a category, or nil.
func (s *Store) Pagination(cat domain.Category) *domain.Pagination {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cats[cat].pagination == nil {
		return nil
	}
	pg := *s.cats[cat].pagination
	return &pg
}

// CurrentStory returns the story under detail view, or nil.
func (s *Store) CurrentStory() *domain.Story {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	st := *s.current
	return &st
}

// Counts returns the last fetched aggregate counts, or nil.
func (s *Store) Counts() *domain.StoriesInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.counts == nil {
		return nil
	}
	info := *s.counts
	return &info
}

// Loading reports whether a store action is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// LastError returns the user-facing message of the last failed action, or
// the empty string.
func (s *Store) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}
