package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"emeraldscents-be/internal/address"
	"emeraldscents-be/internal/cart"
	"emeraldscents-be/internal/category"
	"emeraldscents-be/internal/contact"
	"emeraldscents-be/internal/logger"
	"emeraldscents-be/internal/newsletter"
	"emeraldscents-be/internal/order"
	"emeraldscents-be/internal/product"
	"emeraldscents-be/internal/review"
	"emeraldscents-be/internal/shipping"
	"emeraldscents-be/internal/user"

	"go.uber.org/zap"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.L().Error("encode response failed", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps domain sentinel errors onto HTTP statuses.
// Anything unmapped is a 500 with a generic body; the real cause goes to
// the log only.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := statusForError(err)
	if status == http.StatusInternalServerError {
		logger.FromCtx(r.Context()).Error("request failed",
			zap.String("layer", "handler"),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		respondError(w, status, "Internal server error")
		return
	}
	respondError(w, status, message)
}

func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, order.ErrUnauthorized),
		errors.Is(err, review.ErrUnauthorized),
		errors.Is(err, cart.ErrUserNotAuthenticated),
		errors.Is(err, user.ErrInvalidCredentials):
		return http.StatusUnauthorized, err.Error()

	case errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, category.ErrCategoryNotFound),
		errors.Is(err, shipping.ErrZoneNotFound),
		errors.Is(err, address.ErrAddressNotFound),
		errors.Is(err, cart.ErrCartItemNotFound),
		errors.Is(err, cart.ErrProductNotFound),
		errors.Is(err, review.ErrReviewNotFound),
		errors.Is(err, user.ErrUserNotFound):
		return http.StatusNotFound, err.Error()

	case errors.Is(err, user.ErrEmailExists),
		errors.Is(err, product.ErrSKUExists),
		errors.Is(err, shipping.ErrZoneExists):
		return http.StatusConflict, err.Error()

	// The storefront's subscribe form treats a repeat signup as a plain
	// validation failure, not a conflict.
	case errors.Is(err, newsletter.ErrAlreadySubscribed):
		return http.StatusBadRequest, err.Error()

	case errors.Is(err, order.ErrOutOfStock),
		errors.Is(err, cart.ErrInsufficientStock):
		return http.StatusConflict, err.Error()

	case errors.Is(err, order.ErrEmptyItems),
		errors.Is(err, order.ErrInvalidQuantity),
		errors.Is(err, order.ErrProofRequired),
		errors.Is(err, order.ErrInvalidMethod),
		errors.Is(err, order.ErrUnknownAddress),
		errors.Is(err, order.ErrIllegalTransition),
		errors.Is(err, order.ErrTrackingRequired),
		errors.Is(err, order.ErrTrackingQuery),
		errors.Is(err, newsletter.ErrInvalidEmail),
		errors.Is(err, contact.ErrMissingFields),
		errors.Is(err, product.ErrInvalidInput),
		errors.Is(err, shipping.ErrInvalidZone),
		errors.Is(err, address.ErrInvalidAddress),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, review.ErrInvalidRating),
		errors.Is(err, user.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	}
	return http.StatusInternalServerError, ""
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
