package action

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromForm(t *testing.T) {
	form := url.Values{
		"action":    {" rate "},
		"target":    {"12"},
		"rating":    {"4"},
		"confirmed": {"true"},
	}

	req := FromForm(form)

	assert.Equal(t, "rate", req.Name)
	assert.Equal(t, "12", req.Target)
	assert.Empty(t, req.Value("action"))
	assert.True(t, req.Confirmed())

	n, ok := req.Int("rating")
	assert.True(t, ok)
	assert.Equal(t, 4, n)

	id, ok := req.TargetID()
	assert.True(t, ok)
	assert.Equal(t, int64(12), id)
}

func TestRequest_TargetID(t *testing.T) {
	tests := []struct {
		target string
		ok     bool
	}{
		{"0", true},
		{"-1", false},
		{"abc", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			_, ok := Request{Target: tt.target}.TargetID()
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestResult_IsZero(t *testing.T) {
	assert.True(t, Result{}.IsZero())
	assert.False(t, Success("ok").IsZero())
	assert.False(t, RedirectTo("/auth").IsZero())
	assert.Equal(t, LevelError, Fail("no").Notice.Level)
	assert.Equal(t, "Rate", Ask(Prompt{Title: "Rate"}).Prompt.Title)
}

func TestRequest_NilValues(t *testing.T) {
	var r Request
	assert.Empty(t, r.Value("x"))
	_, ok := r.Int("x")
	assert.False(t, ok)
}

func TestResult_RedirectWithNotice(t *testing.T) {
	r := RedirectTo("/").WithNotice(LevelSuccess, "Login successful!")
	assert.Equal(t, "/", r.Redirect)
	assert.Equal(t, "Login successful!", r.Notice.Message)

	assert.True(t, Regions("filters").IsZero())
	assert.Equal(t, []string{"filters"}, Regions("filters").Redraw)
}
