package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/crucial707/asset-inventory/internal/models"
)

// Principal is the authenticated user attached to a request.
type Principal struct {
	ID       int
	Username string
	Role     string
}

// Manager issues and verifies HS256 bearer tokens.
type Manager struct {
	secret []byte
	expiry time.Duration
}

func NewManager(secret string, expiry time.Duration) *Manager {
	return &Manager{secret: []byte(secret), expiry: expiry}
}

// Issue signs a token embedding the user's id, username, and role.
func (m *Manager) Issue(u models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":  u.ID,
		"username": u.Username,
		"role":     u.Role,
		"iat":      now.Unix(),
		"exp":      now.Add(m.expiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify parses the token, checks the signature and expiry, and returns the
// embedded principal. Any failure (malformed, tampered, expired, wrong signing
// method) returns an error.
func (m *Manager) Verify(tokenString string) (Principal, error) {
	var p Principal

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return p, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return p, errors.New("invalid token")
	}

	id, ok := claims["user_id"].(float64)
	if !ok {
		return p, errors.New("user_id missing from token")
	}
	p.ID = int(id)
	p.Username, _ = claims["username"].(string)
	p.Role, _ = claims["role"].(string)
	return p, nil
}
