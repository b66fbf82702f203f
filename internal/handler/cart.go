package handler

import (
	"net/http"

	"emeraldscents-be/internal/cart"

	"github.com/go-chi/chi/v5"
)

type CartHandler struct {
	svc cart.Service
}

func NewCartHandler(svc cart.Service) *CartHandler {
	return &CartHandler{svc: svc}
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Get(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	var input cart.AddItemInput
	if !decodeBody(w, r, &input) {
		return
	}
	item, err := h.svc.Add(r.Context(), input)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var input cart.UpdateItemInput
	if !decodeBody(w, r, &input) {
		return
	}
	input.ProductID = chi.URLParam(r, "productId")
	if err := h.svc.UpdateQuantity(r.Context(), input); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Cart updated"})
}

func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Remove(r.Context(), chi.URLParam(r, "productId")); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Item removed"})
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Clear(r.Context()); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Cart cleared"})
}
