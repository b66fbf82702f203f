package handler

import (
	"net/http"

	"emeraldscents-be/internal/admin"
)

type AdminHandler struct {
	repo admin.Repository
}

func NewAdminHandler(repo admin.Repository) *AdminHandler {
	return &AdminHandler{repo: repo}
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.repo.Stats(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (h *AdminHandler) Customers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.repo.Customers(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, customers)
}
