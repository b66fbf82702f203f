package handler

import (
	"net/http"

	"emeraldscents-be/internal/address"
	"emeraldscents-be/internal/utils"
)

type AddressHandler struct {
	repo address.Repository
}

func NewAddressHandler(repo address.Repository) *AddressHandler {
	return &AddressHandler{repo: repo}
}

func (h *AddressHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	addresses, err := h.repo.ListByUser(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if addresses == nil {
		addresses = []*address.Address{}
	}
	respondJSON(w, http.StatusOK, addresses)
}

func (h *AddressHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var input address.AddressInput
	if !decodeBody(w, r, &input) {
		return
	}
	a, err := h.repo.Create(r.Context(), userID, input)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, a)
}
