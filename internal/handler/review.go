package handler

import (
	"net/http"

	"emeraldscents-be/internal/review"

	"github.com/go-chi/chi/v5"
)

type ReviewHandler struct {
	svc review.Service
}

func NewReviewHandler(svc review.Service) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

func (h *ReviewHandler) ListForProduct(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.svc.ListApproved(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, reviews)
}

func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input review.ReviewInput
	if !decodeBody(w, r, &input) {
		return
	}
	rev, err := h.svc.Create(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, rev)
}

func (h *ReviewHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.svc.ListPending(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, reviews)
}

func (h *ReviewHandler) Approve(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Approve(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Review approved"})
}

func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Review deleted"})
}
