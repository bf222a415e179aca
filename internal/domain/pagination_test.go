package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewPagination_DerivedFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		page     int
		total    int
		wantNext bool
		wantPrev bool
	}{
		{"first of three", 1, 3, true, false},
		{"middle", 2, 3, true, true},
		{"last", 3, 3, false, true},
		{"single page", 1, 1, false, false},
		{"empty listing", 1, 0, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.page, tt.total, tt.total*10, 10)
			require.Equal(t, tt.wantNext, p.HasNextPage)
			require.Equal(t, tt.wantPrev, p.HasPrevPage)
			require.True(t, p.Consistent())
		})
	}
}

func TestSynthesize_RecomputesFlagsKeepsTotals(t *testing.T) {
	t.Parallel()

	server := NewPagination(1, 3, 25, 10)

	synth := server.Synthesize(3)
	require.Equal(t, 3, synth.CurrentPage)
	require.Equal(t, 25, synth.TotalStories)
	require.Equal(t, 3, synth.TotalPages)
	require.False(t, synth.HasNextPage)
	require.True(t, synth.HasPrevPage)
	require.True(t, synth.Consistent())

	// the source descriptor is untouched
	require.Equal(t, 1, server.CurrentPage)
	require.True(t, server.HasNextPage)
}

func TestPatchApply_OnlySetFields(t *testing.T) {
	t.Parallel()

	s := Story{ID: "a1", StoryTitle: "Old", StoryContent: "body", UserName: "ana"}
	title := "New"
	patch := StoryPatch{StoryTitle: &title}
	require.False(t, patch.IsEmpty())

	patch.Apply(&s)
	require.Equal(t, "New", s.StoryTitle)
	require.Equal(t, "body", s.StoryContent)
	require.Equal(t, "ana", s.UserName)

	require.True(t, StoryPatch{}.IsEmpty())
}
