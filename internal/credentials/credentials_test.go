package credentials

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signed(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestExpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := signed(t, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute))})
	future := signed(t, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))})
	noExp := signed(t, jwt.RegisteredClaims{Subject: "studio"})

	cases := []struct {
		name  string
		token string
		want  bool
	}{
		{"expired jwt", past, true},
		{"valid jwt", future, false},
		{"jwt without exp", noExp, false},
		{"opaque token", "abc123", false},
		{"dotted garbage", "a.b.c", false},
	}
	for _, tc := range cases {
		if got := Expired(tc.token, now); got != tc.want {
			t.Fatalf("%s: Expired = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestFileProvider(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "token")
	p := File(path)
	ctx := context.Background()

	token, err := p.Token(ctx)
	if err != nil || token != "" {
		t.Fatalf("missing file: Token = %q, %v; want empty, nil", token, err)
	}

	if err := os.WriteFile(path, []byte("  opaque-token \n"), 0o600); err != nil {
		t.Fatal(err)
	}
	token, err = p.Token(ctx)
	if err != nil || token != "opaque-token" {
		t.Fatalf("Token = %q, %v; want opaque-token", token, err)
	}

	p.now = func() time.Time { return time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC) }
	expired := signed(t, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Date(2029, 1, 1, 0, 0, 0, 0, time.UTC))})
	if err := os.WriteFile(path, []byte(expired), 0o600); err != nil {
		t.Fatal(err)
	}
	token, err = p.Token(ctx)
	if err != nil || token != "" {
		t.Fatalf("expired jwt: Token = %q, %v; want empty", token, err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := p.Token(cancelled); err == nil {
		t.Fatal("Token with cancelled context returned nil error")
	}
}

func TestStaticAndNone(t *testing.T) {
	ctx := context.Background()
	if token, _ := Static(" abc ").Token(ctx); token != "abc" {
		t.Fatalf("Static token = %q, want abc", token)
	}
	if token, _ := None().Token(ctx); token != "" {
		t.Fatalf("None token = %q, want empty", token)
	}
}
