// Package web serves client shells over HTTP. Every browser gets a shell
// keyed by its client cookie; GET renders a path and POST sends an action
// to the page at that path.
package web

import (
	"context"
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"booktracker/internal/httpx"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

//go:embed templates/*.html
var templateFiles embed.FS

//go:embed static
var staticFiles embed.FS

var layout = template.Must(template.ParseFS(templateFiles, "templates/*.html"))

// ReadyFunc reports whether the session store can serve requests.
type ReadyFunc func(ctx context.Context) error

type Options struct {
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
	MaxBodyBytes   int64
	SecureCookies  bool
	RequestTimeout time.Duration
	Ready          ReadyFunc
}

type Server struct {
	shells  *Registry
	opts    Options
	limiter *httpx.RateLimitMiddleware
	handler http.Handler
}

func NewServer(shells *Registry, opts Options) *Server {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 30 * time.Second
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 1 << 20
	}
	s := &Server{shells: shells, opts: opts}
	if opts.RateLimitRPS > 0 {
		s.limiter = httpx.NewRateLimitMiddleware(opts.RateLimitRPS, max(opts.RateLimitBurst, 1))
	}
	s.handler = s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Close stops background work owned by the server.
func (s *Server) Close() {
	if s.limiter != nil {
		s.limiter.Stop()
	}
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(httpx.RequestIDMiddleware)
	r.Use(httpx.ClientIDMiddleware(s.opts.SecureCookies))
	r.Use(httpx.AccessLogMiddleware)
	r.Use(httpx.RecoveryMiddleware)
	r.Use(httpx.SecurityHeadersMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.opts.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id", redirectHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	if s.limiter != nil {
		r.Use(s.limiter.Middleware)
	}
	r.Use(middleware.Compress(5))
	r.Use(httpx.RequestSizeLimitMiddleware(s.opts.MaxBodyBytes))
	r.Use(middleware.Timeout(s.opts.RequestTimeout))

	r.Get("/healthz", s.healthz)
	r.Get("/readyz", s.readyz)

	static, _ := fs.Sub(staticFiles, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	r.Post("/logout", s.logout)
	r.Get("/*", s.render)
	r.Post("/*", s.dispatch)
	return r
}
