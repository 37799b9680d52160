package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/crucial707/asset-inventory/internal/middleware"
	"github.com/crucial707/asset-inventory/internal/models"
	"github.com/crucial707/asset-inventory/internal/repo"
)

// AssetHandler serves the asset CRUD and stats endpoints.
type AssetHandler struct {
	Repo     *repo.AssetRepo
	Validate *validator.Validate
}

// List handles GET /api/assets with optional status, category_id, location_id,
// and search query filters.
func (h *AssetHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.AssetFilter{
		Status:     q.Get("status"),
		CategoryID: q.Get("category_id"),
		LocationID: q.Get("location_id"),
		Search:     q.Get("search"),
	}

	assets, err := h.Repo.List(r.Context(), filter)
	if err != nil {
		slog.Error("list assets", "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   len(assets),
		"data":    assets,
	})
}

// Get handles GET /api/assets/{id}, returning the asset with its history.
func (h *AssetHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "Invalid asset id", http.StatusBadRequest)
		return
	}

	asset, err := h.Repo.Get(r.Context(), id)
	if errors.Is(err, repo.ErrNotFound) {
		JSONError(w, "Asset not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("get asset", "id", id, "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	JSON(w, http.StatusOK, map[string]any{"success": true, "data": asset})
}

// Create handles POST /api/assets. Status defaults to available; a duplicate
// tag is a 400.
func (h *AssetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input models.AssetInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(input); err != nil {
		JSONValidationError(w, validationFields(err))
		return
	}

	principal, _ := middleware.GetPrincipal(r.Context())

	id, err := h.Repo.Create(r.Context(), input, principal.ID)
	if errors.Is(err, repo.ErrConflict) {
		JSONError(w, "Asset tag already exists", http.StatusBadRequest)
		return
	}
	if err != nil {
		slog.Error("create asset", "tag", input.AssetTag, "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	JSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Asset created successfully",
		"data":    map[string]int{"id": id},
	})
}

// Update handles PUT /api/assets/{id} as a full replace of all mutable fields.
func (h *AssetHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "Invalid asset id", http.StatusBadRequest)
		return
	}

	var input models.AssetInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(input); err != nil {
		JSONValidationError(w, validationFields(err))
		return
	}

	principal, _ := middleware.GetPrincipal(r.Context())

	err = h.Repo.Update(r.Context(), id, input, principal.ID)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		JSONError(w, "Asset not found", http.StatusNotFound)
		return
	case errors.Is(err, repo.ErrConflict):
		JSONError(w, "Asset tag already exists", http.StatusBadRequest)
		return
	case err != nil:
		slog.Error("update asset", "id", id, "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	JSON(w, http.StatusOK, map[string]any{"success": true, "message": "Asset updated successfully"})
}

// Delete handles DELETE /api/assets/{id}; history rows cascade away.
func (h *AssetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "Invalid asset id", http.StatusBadRequest)
		return
	}

	err = h.Repo.Delete(r.Context(), id)
	if errors.Is(err, repo.ErrNotFound) {
		JSONError(w, "Asset not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("delete asset", "id", id, "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	JSON(w, http.StatusOK, map[string]any{"success": true, "message": "Asset deleted successfully"})
}

// Stats handles GET /api/assets/stats/summary.
func (h *AssetHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Repo.Stats(r.Context())
	if err != nil {
		slog.Error("asset stats", "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	JSON(w, http.StatusOK, map[string]any{"success": true, "data": stats})
}
