package editor

import (
	"context"

	"termfolio.dev/internal/gateway"
	"termfolio.dev/internal/models"
)

// LoginGateway exchanges credentials for a token
type LoginGateway interface {
	Login(ctx context.Context, creds gateway.Credentials) (models.LoginResult, error)
}

// Session starts an authenticated session from a token
type Session interface {
	Login(ctx context.Context, token string) error
}

// Login is the admin sign-in form
type Login struct {
	form
	gw      LoginGateway
	session Session
}

// NewLogin creates a login form
func NewLogin(gw LoginGateway, session Session) *Login {
	return &Login{gw: gw, session: session}
}

// Submit logs in and, on success, starts the session
func (e *Login) Submit(ctx context.Context, username, password string) (models.LoginResult, error) {
	if err := e.begin(); err != nil {
		return models.LoginResult{}, err
	}

	res, err := e.gw.Login(ctx, gateway.Credentials{Username: username, Password: password})
	if err != nil {
		e.finish(err, loginFailure(err), "")
		return models.LoginResult{}, err
	}
	if err := e.session.Login(ctx, res.Token); err != nil {
		e.finish(err, "An error occurred. Please try again.", "")
		return models.LoginResult{}, err
	}

	e.finish(nil, "", "Login successful! Redirecting...")
	return res, nil
}

func loginFailure(err error) string {
	if gateway.IsKind(err, gateway.NetworkFailure) {
		return "Network error. Please try again."
	}
	if msg := gateway.Message(err); msg != "" {
		return msg
	}
	return "Invalid credentials. Please try again."
}
