package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"booktracker/internal/platform/bookapi"
	"booktracker/internal/session"
)

// Service signs a browser client in and out. It is the only writer of the
// token half of the session.
type Service struct {
	backend  Backend
	sessions *session.Holder
}

func NewService(backend Backend, sessions *session.Holder) *Service {
	return &Service{backend: backend, sessions: sessions}
}

func (s *Service) Login(ctx context.Context, form SignInForm) error {
	form.Login = strings.TrimSpace(form.Login)
	if verrs := ValidateStruct(form); verrs != nil {
		return verrs
	}
	res, err := s.backend.Login(ctx, form.Login, form.Password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	return s.store(ctx, res)
}

// Register checks the form, including the password confirmation, before
// calling the API.
func (s *Service) Register(ctx context.Context, form SignUpForm) error {
	form.Username = strings.TrimSpace(form.Username)
	form.Email = strings.TrimSpace(form.Email)
	if verrs := ValidateStruct(form); verrs != nil {
		return verrs
	}
	res, err := s.backend.Register(ctx, bookapi.RegisterRequest{
		Username:        form.Username,
		Email:           form.Email,
		Password:        form.Password,
		ConfirmPassword: form.ConfirmPassword,
	})
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	return s.store(ctx, res)
}

func (s *Service) Logout(ctx context.Context) error {
	if err := s.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	log.Printf("auth logout client_id=%s", s.sessions.ClientID())
	return nil
}

func (s *Service) store(ctx context.Context, res bookapi.AuthResponse) error {
	if res.Token == "" {
		return errors.New("auth: empty token in response")
	}
	if err := s.sessions.Replace(ctx, session.New(res.Token, res.User())); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

// Message turns an error from Login or Register into the text shown to the
// user.
func Message(err error) string {
	var verrs ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Message
	}
	var serr *bookapi.StatusError
	if errors.As(err, &serr) && serr.Message != "" {
		return serr.Message
	}
	return "Authentication failed"
}
