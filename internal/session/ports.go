//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=session

package session

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("session key not found")

// Keys persisted per browser client.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// Repository is the key-value storage behind client sessions.
type Repository interface {
	Get(ctx context.Context, clientID, key string) (string, error)
	Set(ctx context.Context, clientID, key, value string) error
	Delete(ctx context.Context, clientID string, keys ...string) error
}
