package session

import (
	"time"

	"booktracker/internal/entity"
)

// Session is an immutable snapshot of a client's credentials. Holders swap
// whole values; nothing mutates a Session in place.
type Session struct {
	token     string
	user      entity.User
	expiresAt time.Time
}

func New(token string, user entity.User) Session {
	s := Session{token: token, user: user}
	if claims, err := ParseClaims(token); err == nil && claims.ExpiresAt != nil {
		s.expiresAt = claims.ExpiresAt.Time
	}
	return s
}

func (s Session) Token() string        { return s.token }
func (s Session) User() entity.User    { return s.user }
func (s Session) ExpiresAt() time.Time { return s.expiresAt }
func (s Session) IsZero() bool         { return s.token == "" }

// LoggedIn reports whether the token is present and not past its exp claim.
func (s Session) LoggedIn(now time.Time) bool {
	if s.token == "" {
		return false
	}
	return s.expiresAt.IsZero() || now.Before(s.expiresAt)
}

// WithUser returns a copy carrying the given profile.
func (s Session) WithUser(u entity.User) Session {
	s.user = u
	return s
}

// WithDisplayName returns a copy with the profile's display name replaced.
func (s Session) WithDisplayName(name string) Session {
	u := s.user
	u.DisplayName = name
	s.user = u
	return s
}
