package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/crucial707/asset-inventory/internal/auth"
	"github.com/crucial707/asset-inventory/internal/middleware"
	"github.com/crucial707/asset-inventory/internal/models"
	"github.com/crucial707/asset-inventory/internal/repo"
)

func newAuthEnv(t *testing.T) (sqlmock.Sqlmock, chi.Router, *auth.Manager, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}

	tokens := auth.NewManager("test-secret", time.Hour)
	h := &AuthHandler{Users: repo.NewUserRepo(db), Tokens: tokens}

	r := chi.NewRouter()
	r.Post("/api/auth/login", h.Login)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(tokens))
		r.Get("/api/auth/me", h.Me)
	})

	return mock, r, tokens, func() { db.Close() }
}

func userColumns() []string {
	return []string{"id", "username", "email", "password", "full_name", "role"}
}

func TestLogin(t *testing.T) {
	mock, router, tokens, cleanup := newAuthEnv(t)
	defer cleanup()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	mock.ExpectQuery(`FROM users`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(7, "alice", "alice@example.com", string(hash), "Alice Admin", "admin"))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"username":"alice","password":"hunter2"}`))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	var body struct {
		Success bool        `json:"success"`
		Token   string      `json:"token"`
		User    models.User `json:"user"`
	}
	decodeBody(t, rec, &body)
	if !body.Success || body.Token == "" {
		t.Fatalf("body: %+v", body)
	}
	if body.User.Username != "alice" || body.User.Role != "admin" {
		t.Errorf("user: %+v", body.User)
	}

	// The returned token must verify back to the same principal.
	p, err := tokens.Verify(body.Token)
	if err != nil {
		t.Fatalf("verify issued token: %v", err)
	}
	if p.ID != 7 || p.Username != "alice" {
		t.Errorf("principal: %+v", p)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	mock, router, _, cleanup := newAuthEnv(t)
	defer cleanup()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	mock.ExpectQuery(`FROM users`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(7, "alice", "alice@example.com", string(hash), "Alice Admin", "admin"))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"username":"alice","password":"wrong"}`))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401", rec.Code)
	}
	var body struct {
		Message string `json:"message"`
	}
	decodeBody(t, rec, &body)
	if body.Message != "Invalid credentials" {
		t.Errorf("message: got %q", body.Message)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	mock, router, _, cleanup := newAuthEnv(t)
	defer cleanup()

	mock.ExpectQuery(`FROM users`).
		WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows(userColumns()))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"username":"nobody","password":"whatever"}`))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401", rec.Code)
	}
	// Unknown user and wrong password are indistinguishable to the caller.
	var body struct {
		Message string `json:"message"`
	}
	decodeBody(t, rec, &body)
	if body.Message != "Invalid credentials" {
		t.Errorf("message: got %q", body.Message)
	}
}

func TestLogin_MissingFields(t *testing.T) {
	_, router, _, cleanup := newAuthEnv(t)
	defer cleanup()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"username":"alice"}`))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
	var body struct {
		Message string `json:"message"`
	}
	decodeBody(t, rec, &body)
	if body.Message != "Please provide username and password" {
		t.Errorf("message: got %q", body.Message)
	}
}

func TestMe(t *testing.T) {
	mock, router, tokens, cleanup := newAuthEnv(t)
	defer cleanup()

	token, err := tokens.Issue(models.User{ID: 7, Username: "alice", Role: "admin"})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	mock.ExpectQuery(`FROM users`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "full_name", "role"}).
			AddRow(7, "alice", "alice@example.com", "Alice Admin", "admin"))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	var body struct {
		Success bool        `json:"success"`
		User    models.User `json:"user"`
	}
	decodeBody(t, rec, &body)
	if !body.Success || body.User.ID != 7 || body.User.Email != "alice@example.com" {
		t.Errorf("body: %+v", body)
	}
}

func TestMe_UserDeleted(t *testing.T) {
	mock, router, tokens, cleanup := newAuthEnv(t)
	defer cleanup()

	token, err := tokens.Issue(models.User{ID: 9, Username: "ghost"})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	mock.ExpectQuery(`FROM users`).
		WithArgs(9).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "full_name", "role"}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want 404", rec.Code)
	}
	var body struct {
		Message string `json:"message"`
	}
	decodeBody(t, rec, &body)
	if body.Message != "User not found" {
		t.Errorf("message: got %q", body.Message)
	}
}
