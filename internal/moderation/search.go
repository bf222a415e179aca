package moderation

import (
	"context"
	"strings"

	"storydesk/internal/domain"
	"storydesk/internal/search"
)

// searchKey identifies one cached search-result page.
type searchKey struct {
	text  string
	cat   domain.Category
	page  int
	limit int
}

// searchEntry is one cached search-result page with its descriptor.
type searchEntry struct {
	stories    []domain.Story
	pagination domain.Pagination
}

// Search loads one page of server-side search results for a category,
// keeping an independent cache keyed by the full parameter tuple.
//
// An empty (or whitespace) search text means "fall back to the normal
// paginated list": the category's normal-list cache is cleared first so the
// follow-up fetch returns fresh counts.
func (s *Store) Search(ctx context.Context, text string, cat domain.Category, page, limit int) error {
	if strings.TrimSpace(text) == "" {
		s.ClearCache(cat)
		return s.FetchStories(ctx, cat, 1, limit, false)
	}

	key := searchKey{text: text, cat: cat, page: page, limit: limit}

	s.beginAction()

	s.mu.Lock()
	if entry, ok := s.searchCache[key]; ok {
		cs := s.cats[cat]
		cs.items = entry.stories
		pg := entry.pagination
		cs.pagination = &pg
		s.pruneSelectionLocked()
		s.loading = false
		s.mu.Unlock()
		s.logger.Debug("search cache hit", "text", text, "category", cat, "page", page)
		return nil
	}
	s.mu.Unlock()

	stories, pg, err := s.client.SearchStories(ctx, text, cat, page, limit)
	if err != nil {
		s.logger.Error("failed to search stories", "error", err, "text", text, "category", cat)
		s.failAction(msgSearchFailed)
		return err
	}

	s.mu.Lock()
	s.searchCache[key] = searchEntry{stories: stories, pagination: pg}
	cs := s.cats[cat]
	cs.items = stories
	cs.pagination = &pg
	s.pruneSelectionLocked()
	s.loading = false
	s.mu.Unlock()

	s.logger.Debug("searched stories", "text", text, "category", cat, "page", page, "count", len(stories))
	return nil
}

// ClearSearchCache drops all cached search-result pages.
func (s *Store) ClearSearchCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchCache = make(map[searchKey]searchEntry)
}

// FilterLoaded ranks the loaded items of a category against a query without
// touching the network. It complements Search, which covers the full corpus
// server-side.
func (s *Store) FilterLoaded(cat domain.Category, query string) []search.Result {
	f := search.NewFilter(s.logger)
	f.Index(s.Stories(cat))
	return f.Match(query)
}
