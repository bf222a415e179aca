package storyapi

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"storydesk/internal/domain"
)

func TestLogin_Success(t *testing.T) {
	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/admin/login", r.URL.Path)
		require.Empty(t, r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "admin@example.com", body["email"])
		require.Equal(t, "hunter22", body["password"])

		writeEnvelope(w, true, "welcome", map[string]interface{}{
			"admin":       domain.Admin{ID: "a1", Email: "admin@example.com", DisplayName: "Admin"},
			"accessToken": "tok-abc",
		})
	})

	admin, token, err := client.Login(context.Background(), "admin@example.com", "hunter22")
	require.NoError(t, err)
	require.Equal(t, "a1", admin.ID)
	require.Equal(t, "tok-abc", token)
}

func TestLogin_BadCredentials(t *testing.T) {
	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, false, "invalid credentials", nil)
	})

	_, _, err := client.Login(context.Background(), "admin@example.com", "wrong")
	var se *domain.ServerError
	require.ErrorAs(t, err, &se)
	require.Equal(t, "invalid credentials", se.Message)
}

func TestPasswordResetFlow_Endpoints(t *testing.T) {
	var paths []string
	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		writeEnvelope(w, true, "ok", nil)
	})

	ctx := context.Background()
	require.NoError(t, client.ForgotPassword(ctx, "admin@example.com"))
	require.NoError(t, client.VerifyOTP(ctx, "admin@example.com", "123456"))
	require.NoError(t, client.ResetPassword(ctx, "admin@example.com", "n3wpass!"))

	require.Equal(t, []string{
		"POST /admin/forgot-password",
		"POST /admin/verify-otp",
		"POST /admin/reset-password",
	}, paths)
}

func TestChangePassword_UsesPut(t *testing.T) {
	client := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/admin/change-password", r.URL.Path)
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		writeEnvelope(w, true, "ok", nil)
	})

	require.NoError(t, client.ChangePassword(context.Background(), "old", "new"))
}
