package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"booktracker/internal/platform/bookapi"
	"booktracker/internal/session"
	"booktracker/internal/testutil"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		form    any
		wantMsg string
	}{
		{
			name: "valid sign in",
			form: SignInForm{Login: "reader", Password: "secret"},
		},
		{
			name:    "missing login",
			form:    SignInForm{Password: "secret"},
			wantMsg: "Login is required",
		},
		{
			name:    "bad email",
			form:    SignUpForm{Username: "u", Email: "nope", Password: "a", ConfirmPassword: "a"},
			wantMsg: "Email must be a valid email address",
		},
		{
			name:    "password mismatch",
			form:    SignUpForm{Username: "u", Email: "u@example.com", Password: "a", ConfirmPassword: "b"},
			wantMsg: "Passwords do not match",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verrs := ValidateStruct(tt.form)
			if tt.wantMsg == "" {
				assert.Nil(t, verrs)
				return
			}
			require.NotEmpty(t, verrs)
			assert.Equal(t, tt.wantMsg, verrs[0].Message)
			assert.ErrorIs(t, verrs, ErrValidation)
		})
	}
}

func TestService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	backend := NewMockBackend(ctrl)
	holder := session.NewHolder(session.Session{})
	svc := NewService(backend, holder)
	token := testutil.GenerateTestToken("7", time.Hour)

	backend.EXPECT().Login(gomock.Any(), "reader", "secret").Return(bookapi.AuthResponse{
		Token:    token,
		UserID:   "7",
		Username: "reader",
	}, nil)

	require.NoError(t, svc.Login(context.Background(), SignInForm{Login: " reader ", Password: "secret"}))

	s := holder.Load()
	assert.Equal(t, token, s.Token())
	assert.Equal(t, "7", s.User().ID)
	assert.Equal(t, "reader", s.User().DisplayName)
	assert.True(t, holder.LoggedIn())
}

func TestService_LoginFailureLeavesSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	backend := NewMockBackend(ctrl)
	holder := session.NewHolder(session.Session{})
	svc := NewService(backend, holder)

	backend.EXPECT().Login(gomock.Any(), "reader", "bad").
		Return(bookapi.AuthResponse{}, &bookapi.StatusError{StatusCode: 400, Message: "Invalid credentials"})

	err := svc.Login(context.Background(), SignInForm{Login: "reader", Password: "bad"})
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", Message(err))
	assert.False(t, holder.LoggedIn())
}

func TestService_RegisterMismatchSkipsNetwork(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	backend := NewMockBackend(ctrl)
	svc := NewService(backend, session.NewHolder(session.Session{}))

	err := svc.Register(context.Background(), SignUpForm{
		Username: "reader", Email: "r@example.com", Password: "one", ConfirmPassword: "two",
	})

	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Passwords do not match", Message(err))
}

func TestService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	backend := NewMockBackend(ctrl)
	holder := session.NewHolder(session.Session{})
	svc := NewService(backend, holder)

	backend.EXPECT().Register(gomock.Any(), bookapi.RegisterRequest{
		Username: "reader", Email: "r@example.com", Password: "pw", ConfirmPassword: "pw",
	}).Return(bookapi.AuthResponse{Token: "opaque", ID: "9", Username: "reader"}, nil)

	require.NoError(t, svc.Register(context.Background(), SignUpForm{
		Username: "reader", Email: "r@example.com", Password: "pw", ConfirmPassword: "pw",
	}))
	assert.Equal(t, "9", holder.Load().User().ID)

	require.NoError(t, svc.Logout(context.Background()))
	assert.False(t, holder.LoggedIn())
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "Authentication failed", Message(errors.New("boom")))
	assert.Equal(t, "Authentication failed", Message(bookapi.ErrUnauthorized))
}
