package restclient

import (
	"context"
	"os"
	"sync"
)

// CredentialProvider supplies the bearer token attached to every request.
// A missing token is not an error; the backend decides what is authorized.
type CredentialProvider interface {
	Token(ctx context.Context) (string, bool)
}

// StaticToken always returns the same token. The empty string means no token.
type StaticToken string

func (s StaticToken) Token(context.Context) (string, bool) {
	return string(s), s != ""
}

// EnvToken reads the token from an environment variable on every call.
type EnvToken string

func (e EnvToken) Token(context.Context) (string, bool) {
	v := os.Getenv(string(e))
	return v, v != ""
}

// TokenStore is a mutable provider for tokens handed over by a login flow.
type TokenStore struct {
	mu    sync.RWMutex
	token string
}

// Set replaces the stored token. An empty token clears it.
func (s *TokenStore) Set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

func (s *TokenStore) Token(context.Context) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}
