package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"storydesk/internal/domain"
	"storydesk/internal/log"
)

// fakeAuth implements domain.AuthRepository with scriptable results.
type fakeAuth struct {
	loginAdmin  *domain.Admin
	loginToken  string
	loginErr    error
	logoutErr   error
	logoutCalls int
}

func (f *fakeAuth) Login(ctx context.Context, email, password string) (*domain.Admin, string, error) {
	return f.loginAdmin, f.loginToken, f.loginErr
}
func (f *fakeAuth) Logout(ctx context.Context) error {
	f.logoutCalls++
	return f.logoutErr
}
func (f *fakeAuth) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	return nil
}
func (f *fakeAuth) ForgotPassword(ctx context.Context, email string) error    { return nil }
func (f *fakeAuth) VerifyOTP(ctx context.Context, email, otp string) error    { return nil }
func (f *fakeAuth) ResetPassword(ctx context.Context, email, pw string) error { return nil }

func testAdmin() *domain.Admin {
	return &domain.Admin{ID: "a1", Email: "admin@example.com", DisplayName: "Admin"}
}

func TestLogin_PersistsAndSetsTheme(t *testing.T) {
	kv := NewMemoryKV()
	var theme string
	store := NewStore(kv, &fakeAuth{}, func(th string) { theme = th }, log.NullLogger())

	require.False(t, store.IsAuthenticated())
	require.NoError(t, store.Login(testAdmin(), "tok-1"))

	require.True(t, store.IsAuthenticated())
	require.Equal(t, "tok-1", store.Token())
	require.Equal(t, "light", theme)

	_, ok := kv.Get("auth-storage")
	require.True(t, ok)
}

func TestSignIn_StoresSessionOnSuccess(t *testing.T) {
	kv := NewMemoryKV()
	auth := &fakeAuth{loginAdmin: testAdmin(), loginToken: "tok-9"}
	store := NewStore(kv, auth, nil, log.NullLogger())

	admin, err := store.SignIn(context.Background(), "admin@example.com", "secret")
	require.NoError(t, err)
	require.Equal(t, "admin@example.com", admin.Email)
	require.True(t, store.IsAuthenticated())
	require.Equal(t, "tok-9", store.Token())
}

func TestSignIn_FailureLeavesStoreLoggedOut(t *testing.T) {
	kv := NewMemoryKV()
	auth := &fakeAuth{loginErr: domain.ErrAuthFailed}
	store := NewStore(kv, auth, nil, log.NullLogger())

	_, err := store.SignIn(context.Background(), "admin@example.com", "wrong")
	require.ErrorIs(t, err, domain.ErrAuthFailed)
	require.False(t, store.IsAuthenticated())
	_, ok := kv.Get("auth-storage")
	require.False(t, ok)
}

func TestRestore_SurvivesRestart(t *testing.T) {
	kv := NewMemoryKV()
	first := NewStore(kv, &fakeAuth{}, nil, log.NullLogger())
	require.NoError(t, first.Login(testAdmin(), "tok-1"))

	// a second store over the same KV simulates process restart
	second := NewStore(kv, &fakeAuth{}, nil, log.NullLogger())
	require.True(t, second.IsAuthenticated())
	require.Equal(t, "tok-1", second.Token())
	require.Equal(t, "admin@example.com", second.Current().Email)
}

func TestLogout_ClearsEvenWhenRemoteFails(t *testing.T) {
	kv := NewMemoryKV()
	auth := &fakeAuth{logoutErr: errors.New("connection refused")}
	store := NewStore(kv, auth, nil, log.NullLogger())
	require.NoError(t, store.Login(testAdmin(), "tok-1"))

	err := store.Logout(context.Background())
	require.Error(t, err)
	require.Equal(t, 1, auth.logoutCalls)

	// locally effective regardless of the remote outcome
	require.False(t, store.IsAuthenticated())
	require.Empty(t, store.Token())
	require.Nil(t, store.Current())
	_, ok := kv.Get("auth-storage")
	require.False(t, ok)
}

func TestBoltKV_RoundTrip(t *testing.T) {
	kv, err := OpenBoltKV(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })

	_, ok := kv.Get("auth-storage")
	require.False(t, ok)

	require.NoError(t, kv.Set("auth-storage", []byte(`{"accessToken":"tok"}`)))
	data, ok := kv.Get("auth-storage")
	require.True(t, ok)
	require.JSONEq(t, `{"accessToken":"tok"}`, string(data))

	require.NoError(t, kv.Delete("auth-storage"))
	_, ok = kv.Get("auth-storage")
	require.False(t, ok)
}
