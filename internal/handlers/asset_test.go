package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"

	"github.com/crucial707/asset-inventory/internal/auth"
	"github.com/crucial707/asset-inventory/internal/middleware"
	"github.com/crucial707/asset-inventory/internal/models"
	"github.com/crucial707/asset-inventory/internal/repo"
)

// testEnv wires the asset routes behind real auth middleware over a mocked
// database, mirroring the production router shape.
type testEnv struct {
	mock   sqlmock.Sqlmock
	router chi.Router
	token  string
}

func newAssetEnv(t *testing.T) (*testEnv, *sql.DB) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}

	tokens := auth.NewManager("test-secret", time.Hour)
	token, err := tokens.Issue(models.User{ID: 7, Username: "alice", Role: models.RoleAdmin})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	h := &AssetHandler{Repo: repo.NewAssetRepo(db), Validate: validator.New()}

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(tokens))
		r.Get("/api/assets", h.List)
		r.Post("/api/assets", h.Create)
		r.Get("/api/assets/stats/summary", h.Stats)
		r.Get("/api/assets/{id}", h.Get)
		r.Put("/api/assets/{id}", h.Update)
		r.Delete("/api/assets/{id}", h.Delete)
	})

	return &testEnv{mock: mock, router: r, token: token}, db
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+e.token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func assetRowColumns() []string {
	return []string{
		"id", "asset_tag", "name", "category_id", "location_id", "serial_number",
		"model", "manufacturer", "purchase_date", "purchase_cost", "warranty_expiry",
		"status", "assigned_to", "notes", "image_url", "created_at", "updated_at",
		"category_name", "location_name", "assigned_to_name",
	}
}

func TestAssetList(t *testing.T) {
	env, db := newAssetEnv(t)
	defer db.Close()

	now := time.Now()
	env.mock.ExpectQuery(`ORDER BY a.created_at DESC`).
		WillReturnRows(sqlmock.NewRows(assetRowColumns()).
			AddRow(1, "AST-1", "Laptop", nil, nil, nil, nil, nil, nil, nil, nil,
				"available", nil, nil, nil, now, now, nil, nil, nil))

	rec := env.do(t, http.MethodGet, "/api/assets", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	var body struct {
		Success bool           `json:"success"`
		Count   int            `json:"count"`
		Data    []models.Asset `json:"data"`
	}
	decodeBody(t, rec, &body)
	if !body.Success || body.Count != 1 || len(body.Data) != 1 {
		t.Errorf("body: %+v", body)
	}
	if body.Data[0].AssetTag != "AST-1" {
		t.Errorf("asset_tag: got %q", body.Data[0].AssetTag)
	}
	if err := env.mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAssetList_Unauthorized(t *testing.T) {
	env, db := newAssetEnv(t)
	defer db.Close()

	req := httptest.NewRequest(http.MethodGet, "/api/assets", nil)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want 401", rec.Code)
	}
}

func TestAssetGet_InvalidID(t *testing.T) {
	env, db := newAssetEnv(t)
	defer db.Close()

	rec := env.do(t, http.MethodGet, "/api/assets/abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
	var body struct {
		Message string `json:"message"`
	}
	decodeBody(t, rec, &body)
	if body.Message != "Invalid asset id" {
		t.Errorf("message: got %q", body.Message)
	}
}

func TestAssetGet_NotFound(t *testing.T) {
	env, db := newAssetEnv(t)
	defer db.Close()

	cols := append(assetRowColumns(), "assigned_to_email")
	env.mock.ExpectQuery(`WHERE a.id = \$1`).
		WithArgs(404).
		WillReturnRows(sqlmock.NewRows(cols))

	rec := env.do(t, http.MethodGet, "/api/assets/404", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want 404", rec.Code)
	}
	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	decodeBody(t, rec, &body)
	if body.Success || body.Message != "Asset not found" {
		t.Errorf("body: %+v", body)
	}
}

func TestAssetCreate(t *testing.T) {
	env, db := newAssetEnv(t)
	defer db.Close()

	env.mock.ExpectBegin()
	env.mock.ExpectQuery(`INSERT INTO assets`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
	env.mock.ExpectExec(`INSERT INTO asset_history`).
		WithArgs(42, models.ActionCreated, nil, sqlmock.AnyArg(), 7, "Asset created").
		WillReturnResult(sqlmock.NewResult(1, 1))
	env.mock.ExpectCommit()

	rec := env.do(t, http.MethodPost, "/api/assets", `{"asset_tag":"AST-100","name":"Laptop"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Data    struct {
			ID int `json:"id"`
		} `json:"data"`
	}
	decodeBody(t, rec, &body)
	if !body.Success || body.Message != "Asset created successfully" || body.Data.ID != 42 {
		t.Errorf("body: %+v", body)
	}
	if err := env.mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAssetCreate_ValidationFailed(t *testing.T) {
	env, db := newAssetEnv(t)
	defer db.Close()

	rec := env.do(t, http.MethodPost, "/api/assets", `{"asset_tag":"AST-1","status":"broken"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}

	var body struct {
		Success bool              `json:"success"`
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	}
	decodeBody(t, rec, &body)
	if body.Message != "Validation failed" {
		t.Errorf("message: got %q", body.Message)
	}
	if body.Fields["Name"] != "required" {
		t.Errorf("Name field: got %q, want required", body.Fields["Name"])
	}
	if body.Fields["Status"] == "" {
		t.Errorf("Status field problem missing: %+v", body.Fields)
	}
}

func TestAssetCreate_InvalidJSON(t *testing.T) {
	env, db := newAssetEnv(t)
	defer db.Close()

	rec := env.do(t, http.MethodPost, "/api/assets", `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
	var body struct {
		Message string `json:"message"`
	}
	decodeBody(t, rec, &body)
	if body.Message != "Invalid JSON" {
		t.Errorf("message: got %q", body.Message)
	}
}

func TestAssetCreate_DuplicateTag(t *testing.T) {
	env, db := newAssetEnv(t)
	defer db.Close()

	env.mock.ExpectBegin()
	env.mock.ExpectQuery(`INSERT INTO assets`).
		WillReturnError(&pq.Error{Code: "23505"})
	env.mock.ExpectRollback()

	rec := env.do(t, http.MethodPost, "/api/assets", `{"asset_tag":"AST-100","name":"Laptop"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
	var body struct {
		Message string `json:"message"`
	}
	decodeBody(t, rec, &body)
	if body.Message != "Asset tag already exists" {
		t.Errorf("message: got %q", body.Message)
	}
}

func TestAssetUpdate_NotFound(t *testing.T) {
	env, db := newAssetEnv(t)
	defer db.Close()

	cols := assetRowColumns()[:17]
	env.mock.ExpectBegin()
	env.mock.ExpectQuery(`FROM assets a WHERE a.id = \$1`).
		WithArgs(999).
		WillReturnRows(sqlmock.NewRows(cols))
	env.mock.ExpectRollback()

	rec := env.do(t, http.MethodPut, "/api/assets/999", `{"asset_tag":"AST-9","name":"Ghost"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want 404 (body %s)", rec.Code, rec.Body.String())
	}
}

func TestAssetDelete(t *testing.T) {
	env, db := newAssetEnv(t)
	defer db.Close()

	env.mock.ExpectExec(`DELETE FROM assets WHERE id = \$1`).
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := env.do(t, http.MethodDelete, "/api/assets/3", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	decodeBody(t, rec, &body)
	if !body.Success || body.Message != "Asset deleted successfully" {
		t.Errorf("body: %+v", body)
	}
}

func TestAssetDelete_NotFound(t *testing.T) {
	env, db := newAssetEnv(t)
	defer db.Close()

	env.mock.ExpectExec(`DELETE FROM assets WHERE id = \$1`).
		WithArgs(999).
		WillReturnResult(sqlmock.NewResult(0, 0))

	rec := env.do(t, http.MethodDelete, "/api/assets/999", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want 404", rec.Code)
	}
}

func TestAssetStats(t *testing.T) {
	env, db := newAssetEnv(t)
	defer db.Close()

	env.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM assets`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	env.mock.ExpectQuery(`GROUP BY status`).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).AddRow("available", 3))
	env.mock.ExpectQuery(`LEFT JOIN assets a ON c.id = a.category_id`).
		WillReturnRows(sqlmock.NewRows([]string{"name", "count"}).AddRow("Computer", 3))

	rec := env.do(t, http.MethodGet, "/api/assets/stats/summary", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	var body struct {
		Success bool              `json:"success"`
		Data    models.AssetStats `json:"data"`
	}
	decodeBody(t, rec, &body)
	if !body.Success || body.Data.Total != 3 {
		t.Errorf("body: %+v", body)
	}
	if len(body.Data.ByStatus) != 1 || body.Data.ByStatus[0].Status != "available" {
		t.Errorf("byStatus: %+v", body.Data.ByStatus)
	}
}
