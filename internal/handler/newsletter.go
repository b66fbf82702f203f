package handler

import (
	"net/http"

	"emeraldscents-be/internal/newsletter"
)

type NewsletterHandler struct {
	svc newsletter.Service
}

func NewNewsletterHandler(svc newsletter.Service) *NewsletterHandler {
	return &NewsletterHandler{svc: svc}
}

type subscribeInput struct {
	Email string `json:"email"`
}

func (h *NewsletterHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var input subscribeInput
	if !decodeBody(w, r, &input) {
		return
	}

	if err := h.svc.Subscribe(r.Context(), input.Email); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Successfully subscribed"})
}
