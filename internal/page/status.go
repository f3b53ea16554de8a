package page

import (
	"context"
	"net/http"
)

// NotFound is rendered for paths no route matches.
type NotFound struct{}

func (NotFound) Render(context.Context) (Output, error) {
	html, err := execute("notfound", nil)
	if err != nil {
		return Output{}, err
	}
	return Output{Title: "Page Not Found", HTML: html, Status: http.StatusNotFound}, nil
}

// ErrorOutput renders the error view with a reload link.
func ErrorOutput(err error) Output {
	msg := "Unexpected error"
	if err != nil {
		msg = err.Error()
	}
	html, rerr := execute("error", msg)
	if rerr != nil {
		html = "<p class=\"error\">Something went wrong</p>"
	}
	return Output{Title: "Error", HTML: html, Status: http.StatusInternalServerError}
}

func notFoundOutput(kind, message string) (Output, error) {
	html, err := execute("missing", struct{ Kind, Message string }{kind, message})
	if err != nil {
		return Output{}, err
	}
	return Output{Title: message, HTML: html, Status: http.StatusNotFound}, nil
}
