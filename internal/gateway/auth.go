package gateway

import (
	"context"
	"encoding/json"
	"net/http"

	"termfolio.dev/internal/models"
)

// Credentials is the login request body
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login exchanges credentials for a token. It does not store the token.
func (c *Client) Login(ctx context.Context, creds Credentials) (models.LoginResult, error) {
	const op = "log in"
	data, err := c.send(ctx, call{
		op:       op,
		resource: "login",
		method:   http.MethodPost,
		path:     pathLogin,
		body:     creds,
		fallback: "Login failed",
	})
	if err != nil {
		return models.LoginResult{}, err
	}

	var env ItemEnvelope[models.LoginResult]
	if err := json.Unmarshal(data, &env); err != nil {
		return models.LoginResult{}, &Error{Kind: ServerRejection, Op: op, Message: "Login failed", Err: err}
	}
	if env.Result == nil || env.Result.Token == "" {
		return models.LoginResult{}, &Error{Kind: ServerRejection, Op: op, Message: "No token received from server"}
	}
	return *env.Result, nil
}
