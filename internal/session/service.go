package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"booktracker/internal/entity"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Open restores the persisted session of one browser client.
func (s *Service) Open(ctx context.Context, clientID string) (*Holder, error) {
	h := &Holder{clientID: clientID, repo: s.repo, now: s.now}

	token, err := s.repo.Get(ctx, clientID, KeyToken)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("load token: %w", err)
	}

	var user entity.User
	raw, err := s.repo.Get(ctx, clientID, KeyUser)
	switch {
	case err == nil:
		if err := json.Unmarshal([]byte(raw), &user); err != nil {
			log.Printf("session client_id=%s bad user blob: %v", clientID, err)
		}
	case !errors.Is(err, ErrNotFound):
		return nil, fmt.Errorf("load user: %w", err)
	}

	current := New(token, user)
	h.current.Store(&current)
	return h, nil
}

// Holder owns the session of one client. Reads are lock-free; Update is the
// single writer and persists before publishing the new value.
type Holder struct {
	clientID string
	repo     Repository
	now      func() time.Time

	mu          sync.Mutex
	current     atomic.Pointer[Session]
	invalidated atomic.Bool
}

// NewHolder returns an unpersisted holder, mainly for tests and previews.
func NewHolder(s Session) *Holder {
	h := &Holder{repo: NewMemoryRepo(), now: time.Now}
	h.current.Store(&s)
	return h
}

func (h *Holder) ClientID() string { return h.clientID }

func (h *Holder) Load() Session {
	if s := h.current.Load(); s != nil {
		return *s
	}
	return Session{}
}

// LoggedIn reports whether the current session carries a live token.
func (h *Holder) LoggedIn() bool {
	return h.Load().LoggedIn(h.now())
}

// Token implements bookapi.Authenticator. Expired tokens are not sent.
func (h *Holder) Token() string {
	s := h.Load()
	if !s.LoggedIn(h.now()) {
		return ""
	}
	return s.Token()
}

// Unauthorized implements bookapi.Authenticator.
func (h *Holder) Unauthorized(ctx context.Context) {
	h.Invalidate(ctx)
}

func (h *Holder) Update(ctx context.Context, fn func(Session) Session) (Session, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	next := fn(h.Load())
	if err := h.persist(ctx, next); err != nil {
		return h.Load(), err
	}
	h.current.Store(&next)
	return next, nil
}

// Replace stores a fresh session, e.g. after login.
func (h *Holder) Replace(ctx context.Context, s Session) error {
	_, err := h.Update(ctx, func(Session) Session { return s })
	return err
}

func (h *Holder) Clear(ctx context.Context) error {
	return h.Replace(ctx, Session{})
}

// Invalidate clears the session after the API rejected the token and marks
// the client for a redirect to the sign-in page.
func (h *Holder) Invalidate(ctx context.Context) {
	if err := h.Clear(ctx); err != nil {
		log.Printf("session client_id=%s clear after 401 failed: %v", h.clientID, err)
		empty := Session{}
		h.current.Store(&empty)
	}
	h.invalidated.Store(true)
}

// TakeInvalidated reports and resets the pending redirect flag.
func (h *Holder) TakeInvalidated() bool {
	return h.invalidated.Swap(false)
}

func (h *Holder) persist(ctx context.Context, s Session) error {
	if s.IsZero() {
		return h.repo.Delete(ctx, h.clientID, KeyToken, KeyUser)
	}
	blob, err := json.Marshal(s.User())
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := h.repo.Set(ctx, h.clientID, KeyToken, s.Token()); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	if err := h.repo.Set(ctx, h.clientID, KeyUser, string(blob)); err != nil {
		return fmt.Errorf("store user: %w", err)
	}
	return nil
}
