package web

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"log"
	"net/http"
	"time"

	"booktracker/internal/action"
	"booktracker/internal/httpx"
	"booktracker/internal/page"
	"booktracker/internal/router"
)

// redirectHeader tells a fragment caller to navigate instead of patching.
const redirectHeader = "X-Redirect"

const fragmentParam = "fragment"

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	httpx.JSONSuccess(w, r, map[string]any{"status": "ok", "shells": s.shells.Len()})
}

func (s *Server) readyz(w http.ResponseWriter, r *http.Request) {
	if s.opts.Ready != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := s.opts.Ready(ctx); err != nil {
			log.Printf("readyz err=%v", err)
			httpx.JSONError(w, r, http.StatusServiceUnavailable, "NOT_READY", "session store not ready")
			return
		}
	}
	httpx.JSONSuccess(w, r, map[string]string{"status": "ready"})
}

func (s *Server) shell(w http.ResponseWriter, r *http.Request) (*Shell, bool) {
	sh, err := s.shells.Get(r.Context(), httpx.ClientIDFrom(r))
	if err != nil {
		log.Printf("shell open failed request_id=%s client_id=%s err=%v", httpx.RequestIDFrom(r), httpx.ClientIDFrom(r), err)
		if errors.Is(err, ErrShellLimit) {
			httpx.HTMLError(w, r, http.StatusServiceUnavailable, "The server is busy. Please try again shortly.")
			return nil, false
		}
		httpx.HTMLError(w, r, http.StatusServiceUnavailable, "Your session could not be loaded. Please try again.")
		return nil, false
	}
	return sh, true
}

func (s *Server) render(w http.ResponseWriter, r *http.Request) {
	sh, ok := s.shell(w, r)
	if !ok {
		return
	}

	if name := r.URL.Query().Get(fragmentParam); name != "" {
		s.fragments(w, r, sh, []string{name}, action.Result{})
		return
	}

	v := sh.Router.Render(r.Context(), r.URL.Path)
	if v.Redirect != "" {
		http.Redirect(w, r, v.Redirect, http.StatusSeeOther)
		return
	}
	overlay, _ := sh.TakeFlash()
	s.writeLayout(w, v, overlay)
}

func (s *Server) dispatch(w http.ResponseWriter, r *http.Request) {
	sh, ok := s.shell(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		httpx.HTMLError(w, r, http.StatusBadRequest, "Malformed form submission")
		return
	}

	req := action.FromForm(r.PostForm)
	res, err := sh.Router.Dispatch(r.Context(), r.URL.Path, req)
	switch {
	case errors.Is(err, router.ErrNotFound):
		s.writeLayout(w, sh.Router.Render(r.Context(), r.URL.Path), action.Result{})
		return
	case errors.Is(err, page.ErrUnknownAction), errors.Is(err, router.ErrNoActions):
		log.Printf("action unsupported path=%s action=%s client_id=%s", r.URL.Path, req.Name, sh.ID)
		res = action.Fail("This action is not available here")
	case err != nil:
		log.Printf("action failed path=%s action=%s client_id=%s err=%v", r.URL.Path, req.Name, sh.ID, err)
		res = action.Fail("Something went wrong. Please try again.")
	}

	if name := r.URL.Query().Get(fragmentParam); name != "" && res.Redirect == "" {
		regions := res.Redraw
		if len(regions) == 0 {
			regions = []string{name}
		}
		s.fragments(w, r, sh, regions, res)
		return
	}

	target := res.Redirect
	if target == "" {
		target = r.URL.Path
	}
	sh.Flash(res)
	if r.URL.Query().Get(fragmentParam) != "" {
		w.Header().Set(redirectHeader, target)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	sh, ok := s.shell(w, r)
	if !ok {
		return
	}
	if err := sh.Auth.Logout(r.Context()); err != nil {
		log.Printf("logout failed client_id=%s err=%v", sh.ID, err)
		sh.Flash(action.Fail("Logout failed. Please try again."))
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type region struct {
	Name string
	HTML template.HTML
}

// fragments writes the named regions followed by any overlay. A pending
// redirect is passed back in a header.
func (s *Server) fragments(w http.ResponseWriter, r *http.Request, sh *Shell, names []string, overlay action.Result) {
	var out []region
	for _, name := range names {
		v, err := sh.Router.Fragment(r.Context(), r.URL.Path, name)
		if err != nil {
			log.Printf("fragment failed path=%s fragment=%s client_id=%s err=%v", r.URL.Path, name, sh.ID, err)
			status := http.StatusInternalServerError
			if errors.Is(err, router.ErrNotFound) || errors.Is(err, router.ErrNoRegions) || errors.Is(err, page.ErrUnknownFragment) {
				status = http.StatusNotFound
			}
			httpx.HTMLError(w, r, status, "This part of the page could not be loaded")
			return
		}
		if v.Redirect != "" {
			sh.Flash(overlay)
			w.Header().Set(redirectHeader, v.Redirect)
			w.WriteHeader(http.StatusNoContent)
			return
		}
		out = append(out, region{Name: name, HTML: v.Body})
	}
	s.execute(w, http.StatusOK, "fragments", struct {
		Regions []region
		Overlay action.Result
	}{out, overlay})
}

type layoutData struct {
	View    router.View
	Overlay action.Result
}

func (s *Server) writeLayout(w http.ResponseWriter, v router.View, overlay action.Result) {
	status := v.Status
	if status == 0 {
		status = http.StatusOK
	}
	s.execute(w, status, "layout", layoutData{View: v, Overlay: overlay})
}

func (s *Server) execute(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := layout.ExecuteTemplate(&buf, name, data); err != nil {
		log.Printf("layout render name=%s err=%v", name, err)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("internal error"))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
