package moderation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"storydesk/internal/domain"
)

func TestSearch_ResultsAreCachedPerTuple(t *testing.T) {
	repo := newPendingRepo()
	repo.searchRes = storiesN("hit", 3)
	repo.searchPg = domain.NewPagination(1, 1, 3, 10)
	store := newTestStore(repo)
	ctx := context.Background()

	require.NoError(t, store.Search(ctx, "dragons", domain.CategoryPending, 1, 10))
	require.Len(t, store.Stories(domain.CategoryPending), 3)
	require.Equal(t, 1, repo.searchCalls)

	// identical tuple is served from the search cache
	require.NoError(t, store.Search(ctx, "dragons", domain.CategoryPending, 1, 10))
	require.Equal(t, 1, repo.searchCalls)

	// a different page is a different tuple
	require.NoError(t, store.Search(ctx, "dragons", domain.CategoryPending, 2, 10))
	require.Equal(t, 2, repo.searchCalls)

	// so is a different category
	require.NoError(t, store.Search(ctx, "dragons", domain.CategoryApproved, 1, 10))
	require.Equal(t, 3, repo.searchCalls)
}

func TestSearch_EmptyTextFallsBackToListing(t *testing.T) {
	repo := newPendingRepo()
	store := newTestStore(repo)
	ctx := context.Background()

	require.NoError(t, store.FetchStories(ctx, domain.CategoryPending, 2, 10, false))

	require.NoError(t, store.Search(ctx, "   ", domain.CategoryPending, 1, 10))

	require.Zero(t, repo.searchCalls, "blank text must not hit the search endpoint")
	require.Len(t, store.Stories(domain.CategoryPending), 10)
	require.Equal(t, 1, store.Pagination(domain.CategoryPending).CurrentPage)
	// the cache was dropped first, so page 1 is a fresh fetch
	require.Equal(t, 2, repo.listCalls)
}

func TestSearch_FailureSetsMessage(t *testing.T) {
	repo := newPendingRepo()
	repo.searchErr = domain.ErrServerUnreachable
	store := newTestStore(repo)

	err := store.Search(context.Background(), "dragons", domain.CategoryPending, 1, 10)
	require.Error(t, err)
	require.Equal(t, "Failed to search stories. Please try again.", store.LastError())
	require.False(t, store.Loading())
}

func TestFilterLoaded_RanksLoadedItems(t *testing.T) {
	repo := newPendingRepo()
	store := newTestStore(repo)
	ctx := context.Background()

	require.NoError(t, store.FetchStories(ctx, domain.CategoryPending, 1, 10, false))

	results := store.FilterLoaded(domain.CategoryPending, "story p1 3")
	require.NotEmpty(t, results)
	require.Equal(t, "p1-3", results[0].Story.ID)
	require.Zero(t, repo.searchCalls, "local filter must not hit the server")

	require.Empty(t, store.FilterLoaded(domain.CategoryApproved, "story"))
}

func TestClearSearchCache(t *testing.T) {
	repo := newPendingRepo()
	repo.searchRes = storiesN("hit", 2)
	repo.searchPg = domain.NewPagination(1, 1, 2, 10)
	store := newTestStore(repo)
	ctx := context.Background()

	require.NoError(t, store.Search(ctx, "dragons", domain.CategoryPending, 1, 10))
	store.ClearSearchCache()
	require.NoError(t, store.Search(ctx, "dragons", domain.CategoryPending, 1, 10))
	require.Equal(t, 2, repo.searchCalls)
}
