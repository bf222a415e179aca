package search

import (
	"testing"

	"github.com/stretchr/testify/require"

	"storydesk/internal/domain"
	"storydesk/internal/log"
)

func testStories() []domain.Story {
	return []domain.Story{
		{ID: "1", StoryTitle: "The Dragon Keeper", UserName: "alice"},
		{ID: "2", StoryTitle: "Harbor Lights", UserName: "bob", TagList: []string{"sea", "dragons"}},
		{ID: "3", StoryTitle: "Dragons of the North", UserName: "carol"},
		{ID: "4", StoryTitle: "Quiet Mornings", UserName: "dave"},
	}
}

func TestFilter_TitleMatches(t *testing.T) {
	f := NewFilter(log.NullLogger())
	f.Index(testStories())

	results := f.Match("dragon")
	require.NotEmpty(t, results)
	ids := make([]string, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.Story.ID)
	}
	require.Contains(t, ids, "1")
	require.Contains(t, ids, "3")
	require.NotContains(t, ids, "4")
}

func TestFilter_TagMatchRanksBehindTitles(t *testing.T) {
	f := NewFilter(log.NullLogger())
	f.Index(testStories())

	results := f.Match("dragons")
	require.NotEmpty(t, results)
	// story 2 only matches via its tag, so it must come after title hits
	require.Equal(t, "2", results[len(results)-1].Story.ID)
}

func TestFilter_TagMatchIsFuzzy(t *testing.T) {
	f := NewFilter(log.NullLogger())
	f.Index(testStories())

	// non-contiguous query: subsequence of "Dragons of the North" (title)
	// and of the "dragons" tag on Harbor Lights
	results := f.Match("drgns")
	require.Len(t, results, 2)
	require.Equal(t, "3", results[0].Story.ID)
	require.Equal(t, "2", results[1].Story.ID)
}

func TestFilter_AuthorMatch(t *testing.T) {
	f := NewFilter(log.NullLogger())
	f.Index(testStories())

	results := f.Match("carol")
	require.Len(t, results, 1)
	require.Equal(t, "3", results[0].Story.ID)
}

func TestFilter_EmptyQueryAndClear(t *testing.T) {
	f := NewFilter(log.NullLogger())
	f.Index(testStories())

	require.Nil(t, f.Match("   "))
	require.Equal(t, 4, f.Count())

	f.Clear()
	require.Zero(t, f.Count())
	require.Nil(t, f.Match("dragon"))
}

func TestFilter_IndexReplacesWorkingSet(t *testing.T) {
	f := NewFilter(log.NullLogger())
	f.Index(testStories())
	f.Index([]domain.Story{{ID: "9", StoryTitle: "Standalone"}})

	require.Equal(t, 1, f.Count())
	require.Empty(t, f.Match("dragon"))
}
