package page

import (
	"context"
	"log"
	"sync"

	"booktracker/internal/action"
	"booktracker/internal/auth"
)

const (
	ModeSignIn = "signin"
	ModeSignUp = "signup"
)

// Auth is the sign-in / sign-up form. The mode follows the path it was
// reached by and can be switched in place.
type Auth struct {
	deps Deps

	mu   sync.Mutex
	mode string
}

func NewAuth(d Deps) *Auth {
	return &Auth{deps: d, mode: ModeSignIn}
}

func (a *Auth) Enter(e Entry) {
	if e.Mode == ModeSignIn || e.Mode == ModeSignUp {
		a.mu.Lock()
		a.mode = e.Mode
		a.mu.Unlock()
	}
}

func (a *Auth) Mode() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

type authData struct {
	Mode     string
	LoggedIn bool
}

func (a *Auth) Render(context.Context) (Output, error) {
	title := "Sign In"
	if a.Mode() == ModeSignUp {
		title = "Sign Up"
	}
	return page(title, "auth", authData{Mode: a.Mode(), LoggedIn: a.deps.loggedIn()})
}

func (a *Auth) Handle(ctx context.Context, req action.Request) (action.Result, error) {
	switch req.Name {
	case "switch_mode":
		a.mu.Lock()
		if a.mode == ModeSignIn {
			a.mode = ModeSignUp
		} else {
			a.mode = ModeSignIn
		}
		a.mu.Unlock()
		return action.Result{}, nil

	case "signin":
		err := a.deps.Auth.Login(ctx, auth.SignInForm{
			Login:    req.Value("login"),
			Password: req.Value("password"),
		})
		if err != nil {
			log.Printf("page=auth signin failed err=%v", err)
			return action.Fail(auth.Message(err)), nil
		}
		return action.RedirectTo("/").WithNotice(action.LevelSuccess, "Login successful!"), nil

	case "signup":
		err := a.deps.Auth.Register(ctx, auth.SignUpForm{
			Username:        req.Value("username"),
			Email:           req.Value("email"),
			Password:        req.Value("password"),
			ConfirmPassword: req.Value("confirmPassword"),
		})
		if err != nil {
			log.Printf("page=auth signup failed err=%v", err)
			return action.Fail(auth.Message(err)), nil
		}
		return action.RedirectTo("/").WithNotice(action.LevelSuccess, "Registration successful!"), nil
	}
	return action.Result{}, ErrUnknownAction
}
