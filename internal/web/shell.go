package web

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"booktracker/internal/action"
	"booktracker/internal/auth"
	"booktracker/internal/page"
	"booktracker/internal/platform/bookapi"
	"booktracker/internal/profile"
	"booktracker/internal/router"
	"booktracker/internal/session"
)

// Shell is the state of one browser client: its session, its API client
// and the router holding its page instances.
type Shell struct {
	ID      string
	Router  *router.Router
	Session *session.Holder
	Auth    *auth.Service

	lastSeen atomic.Int64

	mu      sync.Mutex
	pending *action.Result
}

// Flash keeps an action result to show on the next full render.
func (s *Shell) Flash(res action.Result) {
	res.Redirect = ""
	res.Redraw = nil
	if res.IsZero() {
		return
	}
	s.mu.Lock()
	s.pending = &res
	s.mu.Unlock()
}

// TakeFlash returns and clears the pending result.
func (s *Shell) TakeFlash() (action.Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return action.Result{}, false
	}
	res := *s.pending
	s.pending = nil
	return res, true
}

func (s *Shell) touch(now time.Time) { s.lastSeen.Store(now.UnixNano()) }

func (s *Shell) idleSince(now time.Time) time.Duration {
	return now.Sub(time.Unix(0, s.lastSeen.Load()))
}

// ShellFactory builds a shell for a client id.
type ShellFactory func(ctx context.Context, clientID string) (*Shell, error)

type ShellOptions struct {
	Sessions     *session.Service
	API          bookapi.Options
	FetchTimeout time.Duration
}

// NewShellFactory wires a shell against the live book API.
func NewShellFactory(opts ShellOptions) ShellFactory {
	return func(ctx context.Context, clientID string) (*Shell, error) {
		holder, err := opts.Sessions.Open(ctx, clientID)
		if err != nil {
			return nil, fmt.Errorf("open session: %w", err)
		}
		client := bookapi.NewClient(opts.API, holder)
		return NewShell(clientID, holder, client, opts.FetchTimeout), nil
	}
}

// NewShell assembles the page dependencies around api.
func NewShell(clientID string, holder *session.Holder, api page.API, fetchTimeout time.Duration) *Shell {
	authSvc := auth.NewService(api, holder)
	deps := page.Deps{
		API:          api,
		Session:      holder,
		Auth:         authSvc,
		Profile:      profile.NewService(api, holder),
		FetchTimeout: fetchTimeout,
	}
	return &Shell{
		ID:      clientID,
		Router:  router.New(deps),
		Session: holder,
		Auth:    authSvc,
	}
}
