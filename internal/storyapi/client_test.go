package storyapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"storydesk/internal/domain"
	"storydesk/internal/log"
)

func newTestClient(t *testing.T, token string, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, func() string { return token }, log.NullLogger())
}

func writeEnvelope(w http.ResponseWriter, success bool, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	raw, _ := json.Marshal(data)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": success,
		"message": message,
		"data":    json.RawMessage(raw),
	})
}

func TestListStories_RoutesAndDecodes(t *testing.T) {
	tests := []struct {
		cat      domain.Category
		wantPath string
	}{
		{domain.CategoryPending, "/pendingStories"},
		{domain.CategoryApproved, "/publishedStories"},
		{domain.CategoryRejected, "/rejectStories/rejected"},
	}

	for _, tt := range tests {
		t.Run(string(tt.cat), func(t *testing.T) {
			client := newTestClient(t, "tok-1", func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, tt.wantPath, r.URL.Path)
				require.Equal(t, "2", r.URL.Query().Get("page"))
				require.Equal(t, "10", r.URL.Query().Get("limit"))
				require.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
				writeEnvelope(w, true, "ok", map[string]interface{}{
					"stories":    []domain.Story{{ID: "s1", StoryTitle: "First"}},
					"pagination": domain.NewPagination(2, 3, 25, 10),
				})
			})

			stories, pg, err := client.ListStories(context.Background(), tt.cat, 2, 10)
			require.NoError(t, err)
			require.Len(t, stories, 1)
			require.Equal(t, "s1", stories[0].ID)
			require.Equal(t, 2, pg.CurrentPage)
			require.True(t, pg.HasNextPage)
			require.True(t, pg.HasPrevPage)
		})
	}
}

func TestGetStory_NotFound(t *testing.T) {
	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})

	_, err := client.GetStory(context.Background(), domain.CategoryPending, "missing")
	require.ErrorIs(t, err, domain.ErrStoryNotFound)
}

func TestApproveStories_PartialFailureIsNotAnError(t *testing.T) {
	client := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/pendingStories/approve", r.URL.Path)

		var body struct {
			StoryIDs []string `json:"storyIds"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, []string{"s1", "s2"}, body.StoryIDs)

		writeEnvelope(w, true, "1 of 2 stories approved", map[string]interface{}{
			"approved": []domain.ApprovedStory{{StoryID: "s1", Title: "First", PublishedID: "p1"}},
			"failed":   []domain.FailedStory{{StoryID: "s2", Reason: "already processed"}},
			"summary": domain.BulkSummary{
				TotalRequested:       2,
				SuccessfullyApproved: 1,
				Failed:               1,
			},
		})
	})

	result, err := client.ApproveStories(context.Background(), []string{"s1", "s2"})
	require.NoError(t, err)
	require.True(t, result.Success)
	require.True(t, result.PartialFailure())
	require.Len(t, result.Approved, 1)
	require.Len(t, result.Failed, 1)
	require.Equal(t, 2, result.Summary.TotalRequested)
}

func TestRejectStories_EmptySelection(t *testing.T) {
	client := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected for empty selection")
	})

	_, err := client.RejectStories(context.Background(), nil)
	require.ErrorIs(t, err, domain.ErrEmptySelection)
}

func TestUpdateStory_SendsSparsePatch(t *testing.T) {
	client := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/admin/update-story", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "s1", body["storyId"])
		require.Equal(t, "approved", body["storiesType"])
		require.Equal(t, "New Title", body["storyTitle"])
		require.NotContains(t, body, "storyContent")
		require.NotContains(t, body, "userEmail")

		writeEnvelope(w, true, "updated", domain.Story{ID: "s1", StoryTitle: "New Title"})
	})

	title := "New Title"
	story, err := client.UpdateStory(context.Background(), "s1", domain.CategoryApproved, domain.StoryPatch{StoryTitle: &title})
	require.NoError(t, err)
	require.Equal(t, "New Title", story.StoryTitle)
}

func TestSearchStories_QueryParams(t *testing.T) {
	client := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/admin/search-stories", r.URL.Path)
		q := r.URL.Query()
		require.Equal(t, "dragons", q.Get("searchText"))
		require.Equal(t, "pending", q.Get("storiesType"))
		require.Equal(t, "1", q.Get("page"))
		writeEnvelope(w, true, "ok", map[string]interface{}{
			"stories":    []domain.Story{{ID: "s9"}},
			"pagination": domain.NewPagination(1, 1, 1, 10),
		})
	})

	stories, _, err := client.SearchStories(context.Background(), "dragons", domain.CategoryPending, 1, 10)
	require.NoError(t, err)
	require.Len(t, stories, 1)
}

func TestStoriesCounts(t *testing.T) {
	client := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/admin/stories-counts", r.URL.Path)
		writeEnvelope(w, true, "ok", domain.StoriesInfo{PendingStories: 4, PublishedStories: 12, RejectedStories: 2})
	})

	info, err := client.StoriesCounts(context.Background())
	require.NoError(t, err)
	require.Equal(t, 4, info.PendingStories)
	require.Equal(t, 12, info.PublishedStories)
}

func TestDoRequest_ErrorMapping(t *testing.T) {
	t.Run("unauthorized", func(t *testing.T) {
		client := newTestClient(t, "expired", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
		_, _, err := client.ListStories(context.Background(), domain.CategoryPending, 1, 10)
		require.ErrorIs(t, err, domain.ErrAuthFailed)
	})

	t.Run("server message surfaces", func(t *testing.T) {
		client := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			writeEnvelope(w, false, "database exploded", nil)
		})
		_, _, err := client.ListStories(context.Background(), domain.CategoryPending, 1, 10)
		var se *domain.ServerError
		require.ErrorAs(t, err, &se)
		require.Equal(t, "database exploded", se.Message)
	})

	t.Run("transport failure", func(t *testing.T) {
		client := NewClient("http://127.0.0.1:1", nil, log.NullLogger())
		_, _, err := client.ListStories(context.Background(), domain.CategoryPending, 1, 10)
		require.ErrorIs(t, err, domain.ErrServerUnreachable)
	})
}
