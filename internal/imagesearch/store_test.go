package imagesearch

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"storydesk/internal/domain"
	"storydesk/internal/log"
	"storydesk/internal/unsplash"
)

type fakeSearcher struct {
	calls  int
	photos []unsplash.Photo
	err    error
}

func (f *fakeSearcher) SearchPhotos(ctx context.Context, query string, perPage int) ([]unsplash.Photo, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.photos, nil
}

func photo(id, regular string) unsplash.Photo {
	p := unsplash.Photo{ID: id}
	p.URLs.Regular = regular
	return p
}

func TestSearchImages_Success(t *testing.T) {
	searcher := &fakeSearcher{photos: []unsplash.Photo{photo("a", "https://img/a"), photo("b", "https://img/b")}}
	store := NewStore(searcher, 12, log.NullLogger())

	require.NoError(t, store.SearchImages(context.Background(), "mountains"))
	require.Len(t, store.Images(), 2)
	require.True(t, store.HasSearched())
	require.Equal(t, "mountains", store.Query())
	require.Empty(t, store.LastError())
	require.False(t, store.Loading())
}

func TestSearchImages_BlankQueryRejectedLocally(t *testing.T) {
	searcher := &fakeSearcher{photos: []unsplash.Photo{photo("a", "https://img/a")}}
	store := NewStore(searcher, 12, log.NullLogger())

	require.NoError(t, store.SearchImages(context.Background(), "mountains"))

	err := store.SearchImages(context.Background(), "   ")
	require.True(t, domain.IsValidation(err))
	require.Equal(t, 1, searcher.calls, "blank query must not hit the provider")
	require.Len(t, store.Images(), 1, "previous results survive a rejected query")
}

func TestSearchImages_FailureClearsResults(t *testing.T) {
	searcher := &fakeSearcher{photos: []unsplash.Photo{photo("a", "https://img/a")}}
	store := NewStore(searcher, 12, log.NullLogger())

	require.NoError(t, store.SearchImages(context.Background(), "mountains"))

	searcher.err = domain.ErrServerUnreachable
	err := store.SearchImages(context.Background(), "rivers")
	require.Error(t, err)
	require.Empty(t, store.Images())
	require.True(t, store.HasSearched())
	require.Equal(t, "Failed to search images. Please try again.", store.LastError())
}

func TestSelectImage_AppendsAttribution(t *testing.T) {
	store := NewStore(&fakeSearcher{}, 12, log.NullLogger())

	url := store.SelectImage(photo("a", "https://img/a"))
	require.True(t, strings.HasPrefix(url, "https://img/a"))
	require.Contains(t, url, "utm_source=storydesk")
	require.Contains(t, url, "utm_medium=referral")
}

func TestClearImages(t *testing.T) {
	searcher := &fakeSearcher{photos: []unsplash.Photo{photo("a", "https://img/a")}}
	store := NewStore(searcher, 12, log.NullLogger())

	require.NoError(t, store.SearchImages(context.Background(), "mountains"))
	store.ClearImages()

	require.Empty(t, store.Images())
	require.Empty(t, store.Query())
	require.False(t, store.HasSearched())
}
