package auth

import (
	"context"
	"errors"
	"time"
)

// SessionStore holds the live sessions a signed token must still match.
// Deleting a session revokes every token carrying its id.
type SessionStore interface {
	Put(ctx context.Context, sessionID, userID string, ttl time.Duration) error

	Get(ctx context.Context, sessionID string) (string, error)

	Delete(ctx context.Context, sessionID string) error
}

var ErrSessionNotFound = errors.New("session not found")
