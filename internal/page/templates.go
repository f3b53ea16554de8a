package page

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log"
	"math"
	"strings"
	"time"

	"booktracker/internal/entity"

	"github.com/yuin/goldmark"
)

//go:embed templates/*.html
var templateFS embed.FS

var markdown = goldmark.New()

var funcs = template.FuncMap{
	"markdown":    renderMarkdown,
	"stars":       stars,
	"starsInt":    func(n int) []bool { return stars(float64(n)) },
	"authorNames": authorNames,
	"truncate":    truncate,
	"rating":      func(v float64) string { return fmt.Sprintf("%.1f", v) },
	"date":        formatDate,
	"dict":        dict,
	"queryLabel":  queryLabel,
}

var templates = template.Must(template.New("page").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))

func execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

// renderMarkdown converts descriptions and biographies. Raw HTML in the
// source is dropped by goldmark's default renderer.
func renderMarkdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		log.Printf("markdown err=%v", err)
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(buf.String())
}

// stars returns five flags, round(avg) of them set.
func stars(avg float64) []bool {
	filled := int(math.Round(avg))
	out := make([]bool, 5)
	for i := range out {
		out[i] = i < filled
	}
	return out
}

func authorNames(b entity.Book) string {
	if len(b.Authors) == 0 {
		return "Unknown Author"
	}
	names := make([]string, 0, len(b.Authors))
	for _, a := range b.Authors {
		names = append(names, a.Name)
	}
	return strings.Join(names, ", ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

// dict builds a map from alternating keys and values for sub-templates.
func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of arguments")
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		k, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
		}
		m[k] = pairs[i+1]
	}
	return m, nil
}

func queryLabel(q string) string {
	if q == "" {
		return ""
	}
	return fmt.Sprintf("for %q", q)
}
