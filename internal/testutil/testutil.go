package testutil

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"time"

	"booktracker/internal/entity"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

// TestUser is the profile used by session-aware tests.
var TestUser = entity.User{
	ID:          "test-user-id-123",
	Username:    "testuser",
	Email:       "test@example.com",
	DisplayName: "testuser",
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

// TestBook is a fully populated book for rendering tests.
var TestBook = entity.Book{
	ID:            101,
	Title:         "Test Book Title",
	Authors:       []entity.AuthorRef{{ID: 7, Name: "Test Author"}},
	Year:          intPtr(2001),
	AverageRating: floatPtr(4.2),
	Description:   "A *test* book description",
	Chapters:      intPtr(12),
	Genres:        []string{"Fiction"},
}

// GenerateTestToken signs a JWT the way the backend would.
func GenerateTestToken(userID string, ttl time.Duration) string {
	c := jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(ttl).Unix(),
		"iat": time.Now().Unix(),
	}
	token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(testSecret))
	return token
}

// GenerateExpiredToken signs a JWT whose exp is an hour in the past.
func GenerateExpiredToken(userID string) string {
	c := jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(-time.Hour).Unix(),
		"iat": time.Now().Add(-2 * time.Hour).Unix(),
	}
	token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(testSecret))
	return token
}

// NewRequest creates a GET/DELETE style request for testing.
func NewRequest(method, path string) *http.Request {
	return httptest.NewRequest(method, path, nil)
}

// NewFormRequest creates a urlencoded form submission.
func NewFormRequest(path string, form url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

// WithClientCookie attaches the browser client id cookie.
func WithClientCookie(r *http.Request, name, clientID string) *http.Request {
	r.AddCookie(&http.Cookie{Name: name, Value: clientID})
	return r
}

// AssertResponseCode checks if the response code matches expected
func AssertResponseCode(t interface {
	Errorf(format string, args ...any)
}, got, want int) {
	if got != want {
		t.Errorf("got status code %d, want %d", got, want)
	}
}

// AssertBodyContains checks that the rendered markup contains a fragment.
func AssertBodyContains(t interface {
	Errorf(format string, args ...any)
}, body, fragment string) {
	if !strings.Contains(body, fragment) {
		t.Errorf("response body missing %q", fragment)
	}
}
