package handler

import (
	"net/http"

	"emeraldscents-be/internal/category"

	"github.com/go-chi/chi/v5"
)

type CategoryHandler struct {
	repo category.Repository
}

func NewCategoryHandler(repo category.Repository) *CategoryHandler {
	return &CategoryHandler{repo: repo}
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.List(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input category.CategoryInput
	if !decodeBody(w, r, &input) {
		return
	}
	if input.Name == "" {
		respondError(w, http.StatusBadRequest, "Category name is required")
		return
	}
	c, err := h.repo.Create(r.Context(), input)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, c)
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input category.CategoryInput
	if !decodeBody(w, r, &input) {
		return
	}
	c, err := h.repo.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Category deleted"})
}
