package store

import "context"

// TokenKey is where the auth token is persisted
const TokenKey = "portfolio-token"

// TokenStore persists the bearer token across sessions. It does not track
// expiry; a token stays until the backend rejects it or it is cleared.
type TokenStore struct {
	kv KV
}

// NewTokenStore creates a token store on top of kv
func NewTokenStore(kv KV) *TokenStore {
	return &TokenStore{kv: kv}
}

// Get returns the stored token and whether one exists
func (s *TokenStore) Get(ctx context.Context) (string, bool, error) {
	token, ok, err := s.kv.Get(ctx, TokenKey)
	if err != nil || !ok || token == "" {
		return "", false, err
	}
	return token, true, nil
}

// Set stores token; an empty token clears the store
func (s *TokenStore) Set(ctx context.Context, token string) error {
	if token == "" {
		return s.Clear(ctx)
	}
	return s.kv.Set(ctx, TokenKey, token)
}

// Clear removes any stored token
func (s *TokenStore) Clear(ctx context.Context) error {
	return s.kv.Delete(ctx, TokenKey)
}
