package handler

import (
	"net/http"

	"emeraldscents-be/internal/shipping"

	"github.com/go-chi/chi/v5"
)

type ShippingHandler struct {
	svc shipping.Service
}

func NewShippingHandler(svc shipping.Service) *ShippingHandler {
	return &ShippingHandler{svc: svc}
}

func (h *ShippingHandler) List(w http.ResponseWriter, r *http.Request) {
	zones, err := h.svc.List(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, zones)
}

// Quote resolves the delivery fee for a region without creating anything.
// The storefront calls it from the checkout page as the customer picks an
// address.
func (h *ShippingHandler) Quote(w http.ResponseWriter, r *http.Request) {
	region := r.URL.Query().Get("region")
	fee := h.svc.FeeFor(r.Context(), region)
	respondJSON(w, http.StatusOK, map[string]any{
		"region": region,
		"fee":    fee,
	})
}

func (h *ShippingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input shipping.ZoneInput
	if !decodeBody(w, r, &input) {
		return
	}
	zone, err := h.svc.Create(r.Context(), input)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, zone)
}

func (h *ShippingHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input shipping.ZoneInput
	if !decodeBody(w, r, &input) {
		return
	}
	zone, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, zone)
}

func (h *ShippingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Shipping zone deleted"})
}
