// Package credentials supplies the bearer token attached to studio API
// requests. Providers are injected into the HTTP client at construction time.
package credentials

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Provider yields the current bearer token. An empty token means the request
// goes out unauthenticated.
type Provider interface {
	Token(ctx context.Context) (string, error)
}

type noneProvider struct{}

func (noneProvider) Token(context.Context) (string, error) { return "", nil }

// None never supplies a token.
func None() Provider { return noneProvider{} }

type staticProvider string

func (s staticProvider) Token(context.Context) (string, error) { return string(s), nil }

// Static always supplies the same token.
func Static(token string) Provider { return staticProvider(strings.TrimSpace(token)) }

// FileProvider reads the token from a file on every call so that a token
// written by another tool is picked up without a restart.
type FileProvider struct {
	path string
	now  func() time.Time
}

// File returns a provider backed by the token file at path.
func File(path string) *FileProvider {
	return &FileProvider{path: path, now: time.Now}
}

// Token returns the stored token. A missing file, an empty file and an expired
// JWT all yield an empty token without error.
func (p *FileProvider) Token(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if strings.TrimSpace(p.path) == "" {
		return "", nil
	}
	data, err := os.ReadFile(p.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read token file: %w", err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" || Expired(token, p.now()) {
		return "", nil
	}
	return token, nil
}

// Expired reports whether token is a JWT whose exp claim lies before now.
// Tokens that are not JWTs, or carry no exp claim, never expire here; the
// server stays the authority on validity.
func Expired(token string, now time.Time) bool {
	if strings.Count(token, ".") != 2 {
		return false
	}
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !now.Before(exp.Time)
}
