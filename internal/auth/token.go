package auth

import (
	"net/http"
	"strings"
)

// AccessTokenCookie is the session cookie the login handler sets; browser
// clients authenticate with it, API clients send a Bearer header instead.
const AccessTokenCookie = "access_token"

// ExtractAccessToken prefers the cookie over the Authorization header so
// a stale header on a browser request cannot shadow a fresh session.
func ExtractAccessToken(r *http.Request) string {
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}

	return ""
}
