package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const defaultAPIURL = "http://localhost:8080"

// APIURL returns the base URL for the inventory API. Override with the
// ASSET_API_URL environment variable.
func APIURL() string {
	if v := os.Getenv("ASSET_API_URL"); v != "" {
		return strings.TrimRight(v, "/")
	}
	return defaultAPIURL
}

func tokenPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".asset-inventory", "token"), nil
}

// SaveToken stores the JWT for subsequent CLI commands, readable only by the
// current user.
func SaveToken(token string) error {
	path, err := tokenPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(token), 0o600)
}

// ReadToken returns the stored JWT, or an error when the user has not logged in.
func ReadToken() (string, error) {
	path, err := tokenPath()
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.New("not logged in; run 'inventory login' first")
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", errors.New("not logged in; run 'inventory login' first")
	}
	return token, nil
}
