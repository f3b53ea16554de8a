package web

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// ErrShellLimit is returned when a new client arrives while the registry is full.
var ErrShellLimit = errors.New("web: too many open shells")

// Registry hands out one shell per client id and drops shells that have
// been idle longer than the ttl. Shells are built outside the lock, at most
// once per client id at a time.
type Registry struct {
	build ShellFactory
	ttl   time.Duration
	limit int
	now   func() time.Time
	group singleflight.Group

	mu     sync.Mutex
	shells map[string]*Shell
}

// NewRegistry returns a registry holding at most limit shells; zero means
// no limit.
func NewRegistry(build ShellFactory, ttl time.Duration, limit int) *Registry {
	return &Registry{
		build:  build,
		ttl:    ttl,
		limit:  limit,
		now:    time.Now,
		shells: make(map[string]*Shell),
	}
}

func (r *Registry) Get(ctx context.Context, clientID string) (*Shell, error) {
	if s, ok := r.lookup(clientID); ok {
		return s, nil
	}
	v, err, _ := r.group.Do(clientID, func() (any, error) {
		if s, ok := r.lookup(clientID); ok {
			return s, nil
		}
		if r.full() {
			return nil, ErrShellLimit
		}
		// The build is shared by every waiter for this id.
		s, err := r.build(context.WithoutCancel(ctx), clientID)
		if err != nil {
			return nil, err
		}
		return r.insert(clientID, s)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Shell), nil
}

func (r *Registry) lookup(clientID string) (*Shell, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.shells[clientID]
	if ok {
		s.touch(r.now())
	}
	return s, ok
}

func (r *Registry) full() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.limit > 0 && len(r.shells) >= r.limit
}

func (r *Registry) insert(clientID string, s *Shell) (*Shell, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.limit > 0 && len(r.shells) >= r.limit {
		log.Printf("shell rejected client_id=%s shells=%d limit=%d", clientID, len(r.shells), r.limit)
		return nil, ErrShellLimit
	}
	s.touch(r.now())
	r.shells[clientID] = s
	log.Printf("shell open client_id=%s shells=%d", clientID, len(r.shells))
	return s, nil
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.shells)
}

// Reap removes idle shells and reports how many were dropped.
func (r *Registry) Reap() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	n := 0
	for id, s := range r.shells {
		if s.idleSince(now) > r.ttl {
			delete(r.shells, id)
			n++
		}
	}
	return n
}

// Run reaps on a ticker until ctx is done.
func (r *Registry) Run(ctx context.Context) {
	interval := r.ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Reap(); n > 0 {
				log.Printf("shell reap dropped=%d remaining=%d", n, r.Len())
			}
		}
	}
}
