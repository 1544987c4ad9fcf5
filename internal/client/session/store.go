// Package session owns the process-wide login state: the current user and
// the bearer token, with the token mirrored in durable storage.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iudanet/bakeclient/internal/client/storage"
	"github.com/iudanet/bakeclient/internal/models"
	"github.com/iudanet/bakeclient/pkg/api"
)

// CurrentUserFetcher validates a token against the backend.
type CurrentUserFetcher interface {
	Me(ctx context.Context, token string) (*api.User, error)
}

// Listener is notified after every session transition.
type Listener func(s models.Session)

// Store holds the single Session of the process.
type Store struct {
	storage   storage.TokenStorage
	logger    *slog.Logger
	user      *api.User
	token     string
	listeners []Listener
	mu        sync.RWMutex
}

// New создает хранилище сессии поверх долговременного хранилища токена
func New(tokens storage.TokenStorage, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		storage: tokens,
		logger:  logger,
	}
}

// OnChange registers l to run after SetSession and ClearSession.
func (s *Store) OnChange(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// SetSession persists token and makes user the current user.
func (s *Store) SetSession(ctx context.Context, user api.User, token string) error {
	if token == "" {
		return fmt.Errorf("token is empty")
	}

	if err := s.storage.SaveToken(ctx, token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	s.mu.Lock()
	u := user
	s.user = &u
	s.token = token
	s.mu.Unlock()

	s.logger.Info("session started", "user_id", user.ID, "username", user.Username)
	s.notify()
	return nil
}

// ClearSession forgets the current user and removes the stored token.
// The in-memory state is cleared even if storage fails.
func (s *Store) ClearSession(ctx context.Context) error {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()

	var result error
	if err := s.storage.DeleteToken(ctx); err != nil && !errors.Is(err, storage.ErrTokenNotFound) {
		result = fmt.Errorf("failed to delete token: %w", err)
	}

	s.logger.Info("session cleared")
	s.notify()
	return result
}

// Restore revalidates a stored token at startup. Any rejection or network
// failure ends in the anonymous state; there is no retry and no refresh.
// It reports whether a session was restored.
func (s *Store) Restore(ctx context.Context, fetcher CurrentUserFetcher) (bool, error) {
	token, err := s.storage.GetToken(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrTokenNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read token: %w", err)
	}

	user, err := fetcher.Me(ctx, token)
	if err == nil && (user == nil || user.IsZero()) {
		err = errors.New("backend returned no user for the token")
	}
	if err != nil {
		s.logger.Warn("stored token rejected, logging out", "error", err)
		if clearErr := s.ClearSession(ctx); clearErr != nil {
			return false, clearErr
		}
		return false, nil
	}

	if err := s.SetSession(ctx, *user, token); err != nil {
		return false, err
	}
	return true, nil
}

// Token returns the bearer token, or "" when anonymous.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the current user.
func (s *Store) User() (api.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return api.User{}, false
	}
	return *s.user, true
}

// Session returns a snapshot of the session.
func (s *Store) Session() models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return models.Session{}
	}
	return models.Session{User: *s.user, Token: s.token}
}

// IsAuthenticated reports whether a token is held.
func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}

// TokenExpiry reads the exp claim of a JWT token without verifying it.
// The second value is false for anonymous sessions and opaque tokens.
func (s *Store) TokenExpiry() (time.Time, bool) {
	token := s.Token()
	if token == "" {
		return time.Time{}, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

func (s *Store) notify() {
	s.mu.RLock()
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()

	snapshot := s.Session()
	for _, l := range listeners {
		l(snapshot)
	}
}
