package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/crucial707/asset-inventory/internal/models"
	"github.com/crucial707/asset-inventory/internal/repo"
)

// LocationHandler serves location CRUD, symmetric with categories.
type LocationHandler struct {
	Repo     *repo.LocationRepo
	Validate *validator.Validate
}

// List handles GET /api/locations.
func (h *LocationHandler) List(w http.ResponseWriter, r *http.Request) {
	locations, err := h.Repo.List(r.Context())
	if err != nil {
		slog.Error("list locations", "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   len(locations),
		"data":    locations,
	})
}

// Create handles POST /api/locations.
func (h *LocationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input models.LocationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(input); err != nil {
		JSONValidationError(w, validationFields(err))
		return
	}

	id, err := h.Repo.Create(r.Context(), input)
	if err != nil {
		slog.Error("create location", "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	JSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Location created successfully",
		"data":    map[string]int{"id": id},
	})
}

// Update handles PUT /api/locations/{id}.
func (h *LocationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "Invalid location id", http.StatusBadRequest)
		return
	}

	var input models.LocationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(input); err != nil {
		JSONValidationError(w, validationFields(err))
		return
	}

	err = h.Repo.Update(r.Context(), id, input)
	if errors.Is(err, repo.ErrNotFound) {
		JSONError(w, "Location not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("update location", "id", id, "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	JSON(w, http.StatusOK, map[string]any{"success": true, "message": "Location updated successfully"})
}

// Delete handles DELETE /api/locations/{id}. Assets referencing the location
// keep their rows; the FK nulls their location_id.
func (h *LocationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "Invalid location id", http.StatusBadRequest)
		return
	}

	err = h.Repo.Delete(r.Context(), id)
	if errors.Is(err, repo.ErrNotFound) {
		JSONError(w, "Location not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("delete location", "id", id, "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	JSON(w, http.StatusOK, map[string]any{"success": true, "message": "Location deleted successfully"})
}
