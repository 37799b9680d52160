package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/crucial707/asset-inventory/internal/auth"
	"github.com/crucial707/asset-inventory/internal/middleware"
	"github.com/crucial707/asset-inventory/internal/repo"
)

// AuthHandler serves login and current-user resolution. Which of username or
// password was wrong is never revealed.
type AuthHandler struct {
	Users  *repo.UserRepo
	Tokens *auth.Manager
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if input.Username == "" || input.Password == "" {
		JSONError(w, "Please provide username and password", http.StatusBadRequest)
		return
	}

	user, err := h.Users.GetByUsername(r.Context(), input.Username)
	if errors.Is(err, repo.ErrNotFound) {
		JSONError(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}
	if err != nil {
		slog.Error("login lookup", "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		JSONError(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := h.Tokens.Issue(user)
	if err != nil {
		slog.Error("issue token", "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"token":   token,
		"user":    user,
	})
}

// Me handles GET /api/auth/me, resolving the bearer token back to its user.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		JSONError(w, "No token provided", http.StatusUnauthorized)
		return
	}

	user, err := h.Users.GetByID(r.Context(), principal.ID)
	if errors.Is(err, repo.ErrNotFound) {
		JSONError(w, "User not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("resolve current user", "id", principal.ID, "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	JSON(w, http.StatusOK, map[string]any{"success": true, "user": user})
}
