package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/crucial707/asset-inventory/cmd/cli/config"
)

func TestLogin_StoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/auth/login" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var creds map[string]string
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		if creds["username"] != "admin" || creds["password"] != "admin123" {
			t.Fatalf("unexpected credentials: %v", creds)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "token": "issued-token"})
	}))
	defer srv.Close()

	t.Setenv("ASSET_API_URL", srv.URL)
	t.Setenv("HOME", t.TempDir())

	cmd := loginCmd()
	_ = cmd.Flags().Set("username", "admin")
	_ = cmd.Flags().Set("password", "admin123")

	if err := cmd.RunE(cmd, []string{}); err != nil {
		t.Fatalf("run: %v", err)
	}

	token, err := config.ReadToken()
	if err != nil {
		t.Fatalf("read stored token: %v", err)
	}
	if token != "issued-token" {
		t.Errorf("token: got %q, want issued-token", token)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "Invalid credentials"})
	}))
	defer srv.Close()

	t.Setenv("ASSET_API_URL", srv.URL)
	t.Setenv("HOME", t.TempDir())

	cmd := loginCmd()
	_ = cmd.Flags().Set("username", "admin")
	_ = cmd.Flags().Set("password", "wrong")

	err := cmd.RunE(cmd, []string{})
	if err == nil || !strings.Contains(err.Error(), "Invalid credentials") {
		t.Fatalf("expected login failure, got: %v", err)
	}
	if _, err := config.ReadToken(); err == nil {
		t.Error("no token may be stored after a failed login")
	}
}

func TestLogin_MissingFlags(t *testing.T) {
	cmd := loginCmd()
	if err := cmd.RunE(cmd, []string{}); err == nil {
		t.Fatal("expected an error when flags are missing")
	}
}

func TestWhoami(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/me" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer stored-token" {
			t.Fatalf("unexpected auth header: %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"user": map[string]any{
				"id": 1, "username": "admin", "email": "admin@example.com", "role": "admin",
			},
		})
	}))
	defer srv.Close()

	t.Setenv("ASSET_API_URL", srv.URL)
	t.Setenv("HOME", t.TempDir())
	if err := config.SaveToken("stored-token"); err != nil {
		t.Fatalf("save token: %v", err)
	}

	cmd := whoamiCmd()
	if err := cmd.RunE(cmd, []string{}); err != nil {
		t.Fatalf("run: %v", err)
	}
}
