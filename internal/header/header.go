// Package header renders the navigation bar and footer that wrap every page.
package header

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"booktracker/internal/session"
)

//go:embed templates/*.html
var files embed.FS

var tmpl = template.Must(template.ParseFS(files, "templates/*.html"))

const Copyright = "© 2024 BookTracker. All rights reserved."

// SessionReader is the part of a session holder the header needs.
type SessionReader interface {
	Load() session.Session
	LoggedIn() bool
}

type Link struct {
	Label string
	Href  string
}

// View is the header state derived from one session snapshot.
type View struct {
	LoggedIn bool
	Name     string
	Avatar   string
	Nav      []Link
	Account  []Link
}

var nav = []Link{
	{Label: "Catalog", Href: "/catalog"},
	{Label: "Search", Href: "/search"},
}

// Build reads the session once and decides what the header shows.
func Build(s SessionReader) View {
	v := View{Nav: nav}
	if s == nil || !s.LoggedIn() {
		v.Account = []Link{
			{Label: "Sign In", Href: "/login"},
			{Label: "Log In", Href: "/register"},
		}
		return v
	}
	u := s.Load().User()
	v.LoggedIn = true
	v.Name = u.Name()
	v.Avatar = u.Avatar()
	v.Account = []Link{
		{Label: "Profile", Href: "/profile"},
		{Label: "My Collection", Href: "/collection"},
	}
	return v
}

func Render(s SessionReader) (template.HTML, error) {
	return execute("header", Build(s))
}

func Footer() template.HTML {
	html, err := execute("footer", Copyright)
	if err != nil {
		return template.HTML(template.HTMLEscapeString(Copyright))
	}
	return html
}

func execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}
