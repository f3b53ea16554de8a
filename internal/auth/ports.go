//go:generate mockgen -source=ports.go -destination=mock_backend.go -package=auth

package auth

import (
	"context"

	"booktracker/internal/platform/bookapi"
)

// Backend is the part of the book API the sign-in page talks to.
type Backend interface {
	Login(ctx context.Context, login, password string) (bookapi.AuthResponse, error)
	Register(ctx context.Context, req bookapi.RegisterRequest) (bookapi.AuthResponse, error)
}
