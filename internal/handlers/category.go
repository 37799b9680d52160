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

// CategoryHandler serves category CRUD.
type CategoryHandler struct {
	Repo     *repo.CategoryRepo
	Validate *validator.Validate
}

// List handles GET /api/categories.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Repo.List(r.Context())
	if err != nil {
		slog.Error("list categories", "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   len(categories),
		"data":    categories,
	})
}

// Create handles POST /api/categories.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input models.CategoryInput
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
		slog.Error("create category", "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	JSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Category created successfully",
		"data":    map[string]int{"id": id},
	})
}

// Update handles PUT /api/categories/{id}.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "Invalid category id", http.StatusBadRequest)
		return
	}

	var input models.CategoryInput
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
		JSONError(w, "Category not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("update category", "id", id, "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	JSON(w, http.StatusOK, map[string]any{"success": true, "message": "Category updated successfully"})
}

// Delete handles DELETE /api/categories/{id}. Assets referencing the category
// keep their rows; the FK nulls their category_id.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "Invalid category id", http.StatusBadRequest)
		return
	}

	err = h.Repo.Delete(r.Context(), id)
	if errors.Is(err, repo.ErrNotFound) {
		JSONError(w, "Category not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("delete category", "id", id, "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	JSON(w, http.StatusOK, map[string]any{"success": true, "message": "Category deleted successfully"})
}
