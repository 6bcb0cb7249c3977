// Package auth provides token management for Linode personal access tokens.
package auth

import (
	"context"
	"errors"
	"os"
	"sync"
)

// Static errors for err113 compliance.
var (
	ErrNoToken = errors.New("no API token available")
)

// Environment variables consulted by NewEnvTokenManager, in order.
var envVars = []string{"LINODE_TOKEN", "LINODE_API_TOKEN"}

// TokenManager supplies the bearer credential for API requests. Linode uses
// long-lived personal access tokens, so there is no refresh flow; the
// interface still allows swapping the token at runtime.
type TokenManager interface {
	GetToken(ctx context.Context) (string, error)
	SetToken(token string)
}

// StaticTokenManager holds a fixed token.
type StaticTokenManager struct {
	mutex sync.RWMutex
	token string
}

// NewStaticTokenManager creates a token manager around a fixed token.
func NewStaticTokenManager(token string) *StaticTokenManager {
	return &StaticTokenManager{token: token}
}

// GetToken returns the stored token.
func (m *StaticTokenManager) GetToken(ctx context.Context) (string, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.token == "" {
		return "", ErrNoToken
	}

	return m.token, nil
}

// SetToken replaces the stored token.
func (m *StaticTokenManager) SetToken(token string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.token = token
}

// NewEnvTokenManager creates a token manager seeded from the environment
// (LINODE_TOKEN, then LINODE_API_TOKEN).
func NewEnvTokenManager() *StaticTokenManager {
	for _, name := range envVars {
		if token := os.Getenv(name); token != "" {
			return NewStaticTokenManager(token)
		}
	}

	return NewStaticTokenManager("")
}

// AnonymousTokenManager sends no credential. Only public endpoints (regions,
// types) accept such requests.
type AnonymousTokenManager struct{}

// GetToken returns the empty token.
func (AnonymousTokenManager) GetToken(ctx context.Context) (string, error) {
	return "", nil
}

// SetToken does nothing.
func (AnonymousTokenManager) SetToken(string) {}
