package storage

import "context"

// TokenStorage is the durable client-local store for the bearer token.
// It holds at most one token under a fixed key.
type TokenStorage interface {
	// SaveToken stores token, replacing any previous one
	SaveToken(ctx context.Context, token string) error

	// GetToken returns the stored token
	// Returns ErrTokenNotFound if nothing is stored
	GetToken(ctx context.Context) (string, error)

	// DeleteToken removes the stored token (logout)
	// Returns ErrTokenNotFound if nothing is stored
	DeleteToken(ctx context.Context) error
}
