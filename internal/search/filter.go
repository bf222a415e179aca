package search

import (
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
	sahilm "github.com/sahilm/fuzzy"

	"storydesk/internal/domain"
)

// Result is a filter hit with ranking metadata.
type Result struct {
	Story domain.Story
	Score int // lower is better
}

// Filter ranks already-loaded stories against a query without touching the
// network. It complements server-side search: the remote endpoint covers the
// full corpus, the filter narrows whatever page is currently on screen.
type Filter struct {
	logger *slog.Logger

	mu          sync.RWMutex
	stories     []domain.Story
	lowerTitles []string
}

func NewFilter(logger *slog.Logger) *Filter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Filter{logger: logger}
}

// Index replaces the filter's working set with the given stories.
// Lowercase titles are precomputed at index time.
func (f *Filter) Index(stories []domain.Story) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.stories = make([]domain.Story, len(stories))
	copy(f.stories, stories)

	f.lowerTitles = make([]string, len(stories))
	for i, st := range stories {
		f.lowerTitles[i] = strings.ToLower(st.StoryTitle)
	}

	f.logger.Debug("indexed stories for filter", "count", len(stories))
}

// Clear drops the working set.
func (f *Filter) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stories = nil
	f.lowerTitles = nil
}

// Count returns the number of indexed stories.
func (f *Filter) Count() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.stories)
}

// Match ranks indexed stories against the query. Titles are matched fuzzily;
// a story whose title misses entirely still qualifies when a tag or author
// name fuzzily matches. Results come back best-first.
func (f *Filter) Match(query string) []Result {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if len(f.stories) == 0 {
		return nil
	}

	seen := make(map[int]bool, len(f.stories))
	var results []Result

	ranks := fuzzy.RankFindFold(query, f.lowerTitles)
	for _, r := range ranks {
		results = append(results, Result{
			Story: f.stories[r.OriginalIndex],
			Score: r.Distance,
		})
		seen[r.OriginalIndex] = true
	}

	for i, st := range f.stories {
		if seen[i] {
			continue
		}
		if score, ok := secondaryScore(st, query); ok {
			results = append(results, Result{Story: st, Score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score < results[j].Score
	})

	return results
}

// secondaryScore matches tags and author fields. Tag and author hits rank
// behind any title hit, so their scores start past the worst plausible
// Levenshtein distance for a title.
func secondaryScore(st domain.Story, query string) (int, bool) {
	if len(sahilm.Find(query, st.TagList)) > 0 {
		return 1000, true
	}
	if st.UserName != "" && len(sahilm.Find(query, []string{st.UserName})) > 0 {
		return 2000, true
	}
	return 0, false
}
