package handler

import (
	"net/http"

	"emeraldscents-be/internal/contact"
)

type ContactHandler struct {
	svc contact.Service
}

func NewContactHandler(svc contact.Service) *ContactHandler {
	return &ContactHandler{svc: svc}
}

func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var msg contact.Message
	if !decodeBody(w, r, &msg) {
		return
	}

	if err := h.svc.Submit(r.Context(), msg); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Message sent successfully"})
}
