// Package router maps paths to pages and composes the full view of a
// client shell: header, page markup and footer.
package router

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"runtime/debug"
	"sort"
	"strconv"
	"strings"
	"sync"

	"booktracker/internal/action"
	"booktracker/internal/header"
	"booktracker/internal/page"
)

var (
	ErrNotFound  = errors.New("router: no route")
	ErrNoActions = errors.New("router: page accepts no actions")
	ErrNoRegions = errors.New("router: page has no fragments")
)

type Name string

const (
	Main     Name = "main"
	Home     Name = "home"
	Catalog  Name = "catalog"
	Search   Name = "search"
	Auth     Name = "auth"
	Author   Name = "author"
	Book     Name = "book"
	Profile  Name = "profile"
	NotFound Name = "notfound"
)

// Strategy decides whether a route keeps one page instance for the life
// of the shell or builds a fresh one per visit.
type Strategy int

const (
	Transient Strategy = iota
	Singleton
)

func (s Strategy) String() string {
	if s == Singleton {
		return "singleton"
	}
	return "transient"
}

// Match is a resolved path.
type Match struct {
	Route Name
	Path  string
	ID    int64
	Mode  string
}

type static struct {
	route Name
	mode  string
}

var staticRoutes = map[string]static{
	"/":           {route: Main},
	"/home":       {route: Home},
	"/catalog":    {route: Catalog},
	"/books":      {route: Catalog},
	"/search":     {route: Search},
	"/auth":       {route: Auth, mode: page.ModeSignIn},
	"/login":      {route: Auth, mode: page.ModeSignIn},
	"/register":   {route: Auth, mode: page.ModeSignUp},
	"/profile":    {route: Profile},
	"/collection": {route: Profile},
}

var prefixRoutes = []struct {
	prefix string
	route  Name
}{
	{prefix: "/author/", route: Author},
	{prefix: "/book/", route: Book},
}

// Resolve matches the static table first, then the id routes. Query and
// fragment are ignored.
func Resolve(path string) (Match, bool) {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		path = "/"
	}
	if s, ok := staticRoutes[path]; ok {
		return Match{Route: s.route, Path: path, Mode: s.mode}, true
	}
	for _, p := range prefixRoutes {
		rest, ok := strings.CutPrefix(path, p.prefix)
		if !ok {
			continue
		}
		if !digits(rest) {
			return Match{Route: NotFound, Path: path}, false
		}
		id, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			return Match{Route: NotFound, Path: path}, false
		}
		return Match{Route: p.route, Path: path, ID: id}, true
	}
	return Match{Route: NotFound, Path: path}, false
}

func digits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

type handler struct {
	strategy Strategy
	build    func(d page.Deps, m Match) page.Page
}

var dispatch = map[Name]handler{
	Main:    {Transient, func(d page.Deps, _ Match) page.Page { return page.NewMain(d) }},
	Home:    {Transient, func(d page.Deps, _ Match) page.Page { return page.NewHome(d) }},
	Author:  {Transient, func(d page.Deps, m Match) page.Page { return page.NewAuthor(d, m.ID) }},
	Book:    {Transient, func(d page.Deps, m Match) page.Page { return page.NewBook(d, m.ID) }},
	Auth:    {Singleton, func(d page.Deps, _ Match) page.Page { return page.NewAuth(d) }},
	Catalog: {Singleton, func(d page.Deps, _ Match) page.Page { return page.NewCatalog(d) }},
	Search:  {Singleton, func(d page.Deps, _ Match) page.Page { return page.NewSearch(d) }},
	Profile: {Singleton, func(d page.Deps, _ Match) page.Page { return page.NewProfile(d) }},
}

// StrategyOf reports the instantiation strategy of a route.
func StrategyOf(n Name) (Strategy, bool) {
	h, ok := dispatch[n]
	return h.strategy, ok
}

// RouteInfo describes one static path for listings.
type RouteInfo struct {
	Path     string
	Route    Name
	Strategy Strategy
}

func Routes() []RouteInfo {
	out := make([]RouteInfo, 0, len(staticRoutes)+len(prefixRoutes))
	for path, s := range staticRoutes {
		out = append(out, RouteInfo{Path: path, Route: s.route, Strategy: dispatch[s.route].strategy})
	}
	for _, p := range prefixRoutes {
		out = append(out, RouteInfo{Path: p.prefix + "{id}", Route: p.route, Strategy: dispatch[p.route].strategy})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// View is everything the shell layout needs for one response.
type View struct {
	Route    Name
	Title    string
	Header   template.HTML
	Body     template.HTML
	Footer   template.HTML
	Status   int
	Redirect string
}

type singleton struct {
	page    page.Page
	entered string
}

// Router belongs to one client shell. Singleton pages are kept in a map
// that is never evicted while the shell lives.
type Router struct {
	deps page.Deps

	mu         sync.Mutex
	singletons map[Name]*singleton
}

func New(d page.Deps) *Router {
	return &Router{deps: d, singletons: make(map[Name]*singleton)}
}

// instance returns the page for m. Kept pages are told about the entry
// whenever the path they are reached by changes.
func (r *Router) instance(m Match) (page.Page, error) {
	h, ok := dispatch[m.Route]
	if !ok {
		return nil, ErrNotFound
	}
	if h.strategy == Transient {
		return h.build(r.deps, m), nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.singletons[m.Route]
	if !ok {
		s = &singleton{page: h.build(r.deps, m)}
		r.singletons[m.Route] = s
	}
	if s.entered != m.Path {
		if e, ok := s.page.(page.Enterer); ok {
			e.Enter(page.Entry{Path: m.Path, ID: m.ID, Mode: m.Mode})
		}
		s.entered = m.Path
	}
	return s.page, nil
}

// Cached reports how many singleton pages the shell holds.
func (r *Router) Cached() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.singletons)
}

// Render composes the full view for path. It never returns an error: page
// failures become the error view.
func (r *Router) Render(ctx context.Context, path string) View {
	m, ok := Resolve(path)
	if !ok {
		out, err := page.NotFound{}.Render(ctx)
		if err != nil {
			out = page.ErrorOutput(err)
		}
		return r.compose(NotFound, out)
	}

	out, err := r.renderPage(ctx, m)
	if err != nil {
		log.Printf("router route=%s path=%s render err=%v", m.Route, m.Path, err)
		out = page.ErrorOutput(err)
	}
	v := r.compose(m.Route, out)
	if r.takeUnauthorized(m.Route) {
		v.Redirect = "/auth"
	}
	return v
}

func (r *Router) renderPage(ctx context.Context, m Match) (out page.Output, err error) {
	defer recoverInto(m, &err)
	p, err := r.instance(m)
	if err != nil {
		return page.Output{}, err
	}
	return p.Render(ctx)
}

// Fragment redraws one region of the page at path.
func (r *Router) Fragment(ctx context.Context, path, name string) (v View, err error) {
	m, ok := Resolve(path)
	if !ok {
		return View{}, ErrNotFound
	}
	defer recoverInto(m, &err)

	p, err := r.instance(m)
	if err != nil {
		return View{}, err
	}
	f, ok := p.(page.Fragmenter)
	if !ok {
		return View{}, ErrNoRegions
	}
	html, err := f.RenderFragment(ctx, name)
	if err != nil {
		return View{}, err
	}
	v = View{Route: m.Route, Body: html, Status: http.StatusOK}
	if r.takeUnauthorized(m.Route) {
		v.Redirect = "/auth"
	}
	return v, nil
}

// Dispatch routes a user action to the page at path.
func (r *Router) Dispatch(ctx context.Context, path string, req action.Request) (res action.Result, err error) {
	m, ok := Resolve(path)
	if !ok {
		return action.Result{}, ErrNotFound
	}
	defer recoverInto(m, &err)

	p, err := r.instance(m)
	if err != nil {
		return action.Result{}, err
	}
	h, ok := p.(page.ActionHandler)
	if !ok {
		return action.Result{}, ErrNoActions
	}
	return h.Handle(ctx, req)
}

// takeUnauthorized consumes the redirect flag set when the API rejected
// the token. On the sign-in page itself the flag is only cleared.
func (r *Router) takeUnauthorized(route Name) bool {
	if r.deps.Session == nil || !r.deps.Session.TakeInvalidated() {
		return false
	}
	return route != Auth
}

func (r *Router) compose(route Name, out page.Output) View {
	v := View{
		Route:    route,
		Title:    out.Title,
		Body:     out.HTML,
		Status:   out.StatusCode(),
		Redirect: out.Redirect,
	}
	if v.Redirect != "" {
		return v
	}
	var reader header.SessionReader
	if r.deps.Session != nil {
		reader = r.deps.Session
	}
	hdr, err := header.Render(reader)
	if err != nil {
		log.Printf("router route=%s header err=%v", route, err)
	}
	v.Header = hdr
	v.Footer = header.Footer()
	return v
}

func recoverInto(m Match, err *error) {
	if rec := recover(); rec != nil {
		log.Printf("router route=%s path=%s panic=%v\n%s", m.Route, m.Path, rec, debug.Stack())
		*err = fmt.Errorf("page %s panicked: %v", m.Route, rec)
	}
}
