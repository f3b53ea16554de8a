// Package page implements the screens of the book tracker. A page renders
// markup from API data, falls back to a fixed dataset when the API is down
// and may accept user actions or redraw single regions.
package page

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"time"

	"booktracker/internal/action"
	"booktracker/internal/auth"
	"booktracker/internal/profile"
	"booktracker/internal/session"
)

var ErrUnknownFragment = errors.New("page: unknown fragment")

// Output is one rendered page.
type Output struct {
	Title    string
	HTML     template.HTML
	Status   int
	Redirect string
}

func (o Output) StatusCode() int {
	if o.Status == 0 {
		return http.StatusOK
	}
	return o.Status
}

// Page is implemented by every screen.
type Page interface {
	Render(ctx context.Context) (Output, error)
}

// Fragmenter redraws a named region without the rest of the page.
type Fragmenter interface {
	RenderFragment(ctx context.Context, name string) (template.HTML, error)
}

// ActionHandler receives user actions posted to the page's path.
type ActionHandler interface {
	Handle(ctx context.Context, req action.Request) (action.Result, error)
}

// Entry describes how a page was reached.
type Entry struct {
	Path string
	ID   int64
	Mode string
}

// Enterer is told each time a kept page instance is routed to again.
type Enterer interface {
	Enter(e Entry)
}

// Deps is everything a page may need. One Deps exists per browser client.
type Deps struct {
	API          API
	Session      *session.Holder
	Auth         *auth.Service
	Profile      *profile.Service
	FetchTimeout time.Duration
	Now          func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

func (d Deps) timeout() time.Duration {
	if d.FetchTimeout <= 0 {
		return 5 * time.Second
	}
	return d.FetchTimeout
}

// fetchContext bounds one blocking fetch of a page without a sequencer.
func (d Deps) fetchContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, d.timeout())
}

func (d Deps) loggedIn() bool {
	return d.Session != nil && d.Session.LoggedIn()
}

func page(title, tmpl string, data any) (Output, error) {
	html, err := execute(tmpl, data)
	if err != nil {
		return Output{}, err
	}
	return Output{Title: title, HTML: html}, nil
}
