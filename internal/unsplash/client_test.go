package unsplash

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

func TestSearchPhotos(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search/photos", r.URL.Path)
		q := r.URL.Query()
		require.Equal(t, "mountains", q.Get("query"))
		require.Equal(t, "20", q.Get("per_page"))
		require.Equal(t, "landscape", q.Get("orientation"))
		require.Equal(t, "Client-ID key-123", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"results": []map[string]interface{}{
				{
					"id":              "ph1",
					"urls":            map[string]string{"regular": "https://img.example/ph1"},
					"alt_description": "a mountain",
					"user":            map[string]string{"name": "Ana", "username": "ana"},
				},
			},
		})
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, "key-123", log.NullLogger())
	photos, err := client.SearchPhotos(context.Background(), "mountains", 20)
	require.NoError(t, err)
	require.Len(t, photos, 1)
	require.Equal(t, "ph1", photos[0].ID)
	require.Equal(t, "https://img.example/ph1", photos[0].URLs.Regular)
	require.Equal(t, "Ana", photos[0].User.Name)
}

func TestSearchPhotos_BadKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, "bad", log.NullLogger())
	_, err := client.SearchPhotos(context.Background(), "mountains", 20)
	require.ErrorIs(t, err, domain.ErrAuthFailed)
}

func TestWithAttribution(t *testing.T) {
	require.Equal(t,
		"https://img.example/ph1?utm_source=storydesk&utm_medium=referral",
		WithAttribution("https://img.example/ph1"))

	// URLs that already carry parameters keep them
	require.Equal(t,
		"https://img.example/ph1?ixid=abc&utm_source=storydesk&utm_medium=referral",
		WithAttribution("https://img.example/ph1?ixid=abc"))
}
