package handler

import (
	"net/http"
	"time"

	"emeraldscents-be/internal/auth"
	"emeraldscents-be/internal/user"
	"emeraldscents-be/internal/utils"
)

type AuthHandler struct {
	svc    user.Service
	secure bool
}

func NewAuthHandler(svc user.Service, secureCookies bool) *AuthHandler {
	return &AuthHandler{svc: svc, secure: secureCookies}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var input user.SignupInput
	if !decodeBody(w, r, &input) {
		return
	}

	u, err := h.svc.Signup(r.Context(), input)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, u)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input user.LoginInput
	if !decodeBody(w, r, &input) {
		return
	}

	token, u, err := h.svc.Login(r.Context(), input)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.AccessTokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(72 * time.Hour),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	respondJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  u,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.AccessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	respondJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	u, err := h.svc.Profile(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, u)
}
