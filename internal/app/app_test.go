package app

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunRejectsBrokenConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("api_url = [broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := Run(context.Background(), Options{ConfigPath: path, EnvPath: filepath.Join(dir, "missing.env")})
	if err == nil || !strings.Contains(err.Error(), "load config") {
		t.Fatalf("Run() error = %v, want load config failure", err)
	}
}

func TestDumpLogTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aperture.log")
	content := `{"time":"t1","level":"INFO","msg":"starting","api":"http://x"}` + "\n" +
		`{"time":"t2","level":"ERROR","msg":"ui stopped","error":"boom"}` + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	dumpLogTail(&out, path, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	got := out.String()
	if !strings.HasPrefix(got, "last 2 log lines from "+path) {
		t.Fatalf("header missing: %q", got)
	}
	if !strings.Contains(got, "t2 ERROR ui stopped error=boom\n") {
		t.Fatalf("output = %q, want flattened error record", got)
	}
}

func TestDumpLogTailQuietWithoutLog(t *testing.T) {
	var out bytes.Buffer
	dumpLogTail(&out, filepath.Join(t.TempDir(), "none.log"), slog.Default())
	if out.Len() != 0 {
		t.Fatalf("output = %q, want nothing for a missing log", out.String())
	}
	dumpLogTail(nil, "ignored", slog.Default())
}

func TestUserAgent(t *testing.T) {
	if got := userAgent("1.4.0"); got != "aperture/1.4.0" {
		t.Fatalf("userAgent(1.4.0) = %q", got)
	}
	// Empty keeps the client default.
	if got := userAgent("  "); got != "" {
		t.Fatalf("userAgent(blank) = %q, want empty", got)
	}
}
