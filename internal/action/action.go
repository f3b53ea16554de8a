// Package action carries user intents from the browser to a page instance and
// the page's answer back: a notice, a menu of choices, a value prompt, a
// confirmation or a redirect.
package action

import (
	"net/url"
	"strconv"
	"strings"
)

// Request is one user action aimed at the page mounted on the current path.
type Request struct {
	Name   string
	Target string
	Values url.Values
}

// FromForm reads the reserved "action" and "target" fields; everything else
// stays in Values.
func FromForm(form url.Values) Request {
	values := url.Values{}
	for k, v := range form {
		if k == "action" || k == "target" {
			continue
		}
		values[k] = v
	}
	return Request{
		Name:   strings.TrimSpace(form.Get("action")),
		Target: strings.TrimSpace(form.Get("target")),
		Values: values,
	}
}

func (r Request) Value(key string) string {
	if r.Values == nil {
		return ""
	}
	return r.Values.Get(key)
}

func (r Request) TrimmedValue(key string) string {
	return strings.TrimSpace(r.Value(key))
}

// Int parses a value as a decimal integer.
func (r Request) Int(key string) (int, bool) {
	n, err := strconv.Atoi(r.TrimmedValue(key))
	return n, err == nil
}

func (r Request) TargetInt() (int, bool) {
	n, err := strconv.Atoi(r.Target)
	return n, err == nil
}

// TargetID parses Target as a non-negative id.
func (r Request) TargetID() (int64, bool) {
	id, err := strconv.ParseInt(r.Target, 10, 64)
	return id, err == nil && id >= 0
}

func (r Request) Confirmed() bool {
	return r.Value("confirmed") == "true"
}

type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

type Notice struct {
	Level   Level
	Message string
}

// Choice is one entry of a Menu; submitting it posts Action with Target.
type Choice struct {
	Label  string
	Action string
	Target string
	Href   string
}

type Menu struct {
	Title   string
	Choices []Choice
}

// Prompt asks for a value; the answer is posted back as Field.
type Prompt struct {
	Title   string
	Action  string
	Target  string
	Field   string
	Kind    string
	Min     int
	Max     int
	Carry   url.Values
	Default string
}

// Confirm asks a yes/no question; yes resubmits Action with confirmed=true.
type Confirm struct {
	Message string
	Action  string
	Target  string
}

// Result is what a page returns for an action. At most one of Menu, Prompt
// and Confirm is set. A Notice may accompany a Redirect and is shown on the
// target page. Redraw names the page regions the action changed; empty means
// the whole page.
type Result struct {
	Notice   *Notice
	Menu     *Menu
	Prompt   *Prompt
	Confirm  *Confirm
	Redirect string
	Redraw   []string
}

// IsZero reports whether the result asks for nothing beyond a redraw.
func (r Result) IsZero() bool {
	return r.Notice == nil && r.Menu == nil && r.Prompt == nil && r.Confirm == nil && r.Redirect == ""
}

func Info(msg string) Result {
	return Result{Notice: &Notice{Level: LevelInfo, Message: msg}}
}

func Success(msg string) Result {
	return Result{Notice: &Notice{Level: LevelSuccess, Message: msg}}
}

func Fail(msg string) Result {
	return Result{Notice: &Notice{Level: LevelError, Message: msg}}
}

func RedirectTo(path string) Result {
	return Result{Redirect: path}
}

func Ask(p Prompt) Result {
	return Result{Prompt: &p}
}

func AskConfirm(c Confirm) Result {
	return Result{Confirm: &c}
}

func Choose(m Menu) Result {
	return Result{Menu: &m}
}

// Regions returns a redraw-only result.
func Regions(names ...string) Result {
	return Result{Redraw: names}
}

// WithNotice attaches a notice to a redirect or redraw.
func (r Result) WithNotice(level Level, msg string) Result {
	r.Notice = &Notice{Level: level, Message: msg}
	return r
}
