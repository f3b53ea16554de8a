package bookapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"booktracker/internal/entity"

	"golang.org/x/time/rate"
)

const DefaultBaseURL = "http://localhost:8080/api"

var (
	ErrNotFound     = errors.New("bookapi: not found")
	ErrUnauthorized = errors.New("bookapi: unauthorized")
)

// StatusError is returned for non-2xx responses other than 401 and 404.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("bookapi: unexpected status code: %d", e.StatusCode)
	}
	return fmt.Sprintf("bookapi: unexpected status code: %d: %s", e.StatusCode, e.Message)
}

// Authenticator supplies the bearer token and is told when the API rejects it.
type Authenticator interface {
	Token() string
	Unauthorized(ctx context.Context)
}

type Options struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	HTTPClient *http.Client
	Limiter    *rate.Limiter
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	maxRetries int
	timeout    time.Duration
	auth       Authenticator
}

// NewLimiter builds the limiter shared by all clients of one process.
func NewLimiter(rps int) *rate.Limiter {
	if rps <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), rps)
}

func NewClient(opts Options, auth Authenticator) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}
	if opts.Limiter == nil {
		opts.Limiter = rate.NewLimiter(rate.Inf, 1)
	}
	return &Client{
		httpClient: opts.HTTPClient,
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		limiter:    opts.Limiter,
		maxRetries: opts.MaxRetries,
		timeout:    opts.Timeout,
		auth:       auth,
	}
}

type AuthResponse struct {
	Token       string            `json:"token"`
	UserID      entity.FlexibleID `json:"userId"`
	ID          entity.FlexibleID `json:"id"`
	Username    string            `json:"username"`
	Email       string            `json:"email"`
	DisplayName string            `json:"displayName"`
	AvatarURL   string            `json:"avatarUrl"`
}

// User builds the session profile; the username doubles as display name.
func (r AuthResponse) User() entity.User {
	id := r.UserID
	if id == "" {
		id = r.ID
	}
	name := r.Username
	if name == "" {
		name = r.Email
	}
	return entity.User{
		ID:          string(id),
		Username:    name,
		Email:       r.Email,
		DisplayName: name,
		AvatarURL:   r.AvatarURL,
	}
}

type RegisterRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type ReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (c *Client) Login(ctx context.Context, login, password string) (AuthResponse, error) {
	body := map[string]string{"login": login, "password": password}
	var res AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, &res); err != nil {
		return AuthResponse{}, err
	}
	return res, nil
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	var res AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, req, &res); err != nil {
		return AuthResponse{}, err
	}
	return res, nil
}

func (c *Client) GetBooks(ctx context.Context, page, size int) (entity.Page[entity.Book], error) {
	q := pageQuery(page, size)
	q.Set("sort", "title")
	var res entity.Page[entity.Book]
	err := c.do(ctx, http.MethodGet, "/books", q, nil, &res)
	return res, err
}

func (c *Client) GetBook(ctx context.Context, id int64) (entity.Book, error) {
	var res entity.Book
	err := c.do(ctx, http.MethodGet, "/books/"+strconv.FormatInt(id, 10), nil, nil, &res)
	return res, err
}

func (c *Client) SearchBooks(ctx context.Context, query string, page, size int) (entity.Page[entity.Book], error) {
	q := pageQuery(page, size)
	q.Set("query", query)
	var res entity.Page[entity.Book]
	err := c.do(ctx, http.MethodGet, "/books/search", q, nil, &res)
	return res, err
}

func (c *Client) GetBookReviews(ctx context.Context, bookID int64, page, size int) (entity.Page[entity.Review], error) {
	var res entity.Page[entity.Review]
	path := fmt.Sprintf("/books/%d/reviews", bookID)
	err := c.do(ctx, http.MethodGet, path, pageQuery(page, size), nil, &res)
	return res, err
}

func (c *Client) AddReview(ctx context.Context, bookID int64, req ReviewRequest) (entity.Review, error) {
	var res entity.Review
	path := fmt.Sprintf("/books/%d/reviews", bookID)
	err := c.do(ctx, http.MethodPost, path, nil, req, &res)
	return res, err
}

func (c *Client) GetAuthors(ctx context.Context, page, size int) (entity.Page[entity.Author], error) {
	var res entity.Page[entity.Author]
	err := c.do(ctx, http.MethodGet, "/authors", pageQuery(page, size), nil, &res)
	return res, err
}

func (c *Client) GetAuthor(ctx context.Context, id int64) (entity.Author, error) {
	var res entity.Author
	err := c.do(ctx, http.MethodGet, "/authors/"+strconv.FormatInt(id, 10), nil, nil, &res)
	return res, err
}

func (c *Client) SearchAuthors(ctx context.Context, query string, page, size int) (entity.Page[entity.Author], error) {
	q := pageQuery(page, size)
	q.Set("query", query)
	var res entity.Page[entity.Author]
	err := c.do(ctx, http.MethodGet, "/authors/search", q, nil, &res)
	return res, err
}

func pageQuery(page, size int) url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	return q
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, target any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("bookapi: encode request: %w", err)
		}
		payload = b
	}

	// Only reads are retried; a replayed POST could create duplicates.
	retries := 0
	if method == http.MethodGet {
		retries = c.maxRetries
	}

	var lastErr error
	for i := 0; i <= retries; i++ {
		if i > 0 {
			// Backoff: 100ms, 200ms, 400ms...
			backoff := time.Duration(1<<uint(i-1)) * 100 * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		retry, err := c.attempt(ctx, method, u, payload, target)
		if err == nil {
			return nil
		}
		if !retry {
			return err
		}
		lastErr = err
	}
	if retries == 0 {
		return lastErr
	}
	return fmt.Errorf("after %d retries: %w", retries, lastErr)
}

func (c *Client) attempt(ctx context.Context, method, u string, payload []byte, target any) (bool, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return false, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.auth != nil {
		if token := c.auth.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		return true, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		if c.auth != nil {
			c.auth.Unauthorized(ctx)
		}
		return false, ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return false, ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		statusErr := &StatusError{StatusCode: resp.StatusCode, Message: readMessage(resp.Body)}
		retry := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return retry, statusErr
	}

	if target == nil || resp.StatusCode == http.StatusNoContent {
		return false, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("bookapi: decode response: %w", err)
	}
	return false, nil
}

// readMessage extracts {"message": ...} or falls back to the raw body text.
func readMessage(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, 4<<10))
	if err != nil || len(b) == 0 {
		return ""
	}
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(b, &body) == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return strings.TrimSpace(string(b))
}
