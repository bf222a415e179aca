package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"storydesk/internal/domain"
)

// storageKey is the fixed record name for the persisted session.
const storageKey = "auth-storage"

// record is the durable session shape.
type record struct {
	Admin       *domain.Admin `json:"admin"`
	AccessToken string        `json:"accessToken"`
}

// ThemeHook is invoked on login to flip the UI preference to light mode.
// It is an observable side effect of login, kept out of the store proper.
type ThemeHook func(theme string)

// Store holds the authenticated identity and bearer token, persisted across
// restarts. Absence of stored data implies logged out at startup.
type Store struct {
	kv      KV
	api     domain.AuthRepository
	logger  *slog.Logger
	onLogin ThemeHook

	mu    sync.RWMutex
	admin *domain.Admin
	token string
}

// NewStore creates a session store and restores any persisted session from
// the KV.
func NewStore(kv KV, api domain.AuthRepository, onLogin ThemeHook, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{kv: kv, api: api, logger: logger, onLogin: onLogin}
	s.restore()
	return s
}

// restore loads the persisted session, if any.
func (s *Store) restore() {
	data, ok := s.kv.Get(storageKey)
	if !ok {
		return
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		s.logger.Warn("discarding unreadable session record", "error", err)
		s.kv.Delete(storageKey)
		return
	}

	s.admin = rec.Admin
	s.token = rec.AccessToken
	if rec.Admin != nil {
		s.logger.Info("restored session", "email", rec.Admin.Email)
	}
}

// Login stores the authenticated identity and token and persists them.
// Flips the UI preference to light mode as a side effect.
func (s *Store) Login(admin *domain.Admin, token string) error {
	if s.onLogin != nil {
		s.onLogin("light")
	}

	s.mu.Lock()
	s.admin = admin
	s.token = token
	s.mu.Unlock()

	data, err := json.Marshal(record{Admin: admin, AccessToken: token})
	if err != nil {
		return err
	}
	if err := s.kv.Set(storageKey, data); err != nil {
		s.logger.Error("failed to persist session", "error", err)
		return err
	}
	return nil
}

// SignIn authenticates against the remote API and, on success, stores and
// persists the session.
func (s *Store) SignIn(ctx context.Context, email, password string) (*domain.Admin, error) {
	admin, token, err := s.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := s.Login(admin, token); err != nil {
		return nil, err
	}
	return admin, nil
}

// ForgotPassword requests a reset code for the given email.
func (s *Store) ForgotPassword(ctx context.Context, email string) error {
	return s.api.ForgotPassword(ctx, email)
}

// VerifyOTP checks an emailed reset code.
func (s *Store) VerifyOTP(ctx context.Context, email, otp string) error {
	return s.api.VerifyOTP(ctx, email, otp)
}

// ResetPassword sets a new password after the code was verified.
func (s *Store) ResetPassword(ctx context.Context, email, newPassword string) error {
	return s.api.ResetPassword(ctx, email, newPassword)
}

// ChangePassword changes the signed-in admin's password.
func (s *Store) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	return s.api.ChangePassword(ctx, oldPassword, newPassword)
}

// Logout calls the remote logout endpoint and clears local state. Local
// state is cleared even when the remote call fails; stranding the user in a
// logged-in UI with a dead token is worse than an orphaned server session.
func (s *Store) Logout(ctx context.Context) error {
	var remoteErr error
	if s.api != nil {
		remoteErr = s.api.Logout(ctx)
		if remoteErr != nil {
			s.logger.Warn("remote logout failed, clearing local session anyway", "error", remoteErr)
		}
	}

	s.mu.Lock()
	s.admin = nil
	s.token = ""
	s.mu.Unlock()

	if err := s.kv.Delete(storageKey); err != nil {
		s.logger.Error("failed to clear persisted session", "error", err)
		return err
	}
	return remoteErr
}

// IsAuthenticated reports whether a session is active.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// Current returns the authenticated identity, or nil.
func (s *Store) Current() *domain.Admin {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.admin
}

// Token returns the current bearer token. Used as the API client's
// TokenProvider.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Close releases the underlying storage.
func (s *Store) Close() error {
	return s.kv.Close()
}
