package auth

import (
	"net/http"
	"time"
)

const (
	// RenewalCookieName carries the renewal token.
	RenewalCookieName = "refreshToken"
	renewalCookiePath = "/api/auth"
)

// NewRenewalCookie builds the HttpOnly, SameSite=Strict cookie holding the
// renewal token. secure is only disabled for plain-HTTP local development.
func NewRenewalCookie(token string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     RenewalCookieName,
		Value:    token,
		Path:     renewalCookiePath,
		MaxAge:   int(RenewalTokenExpiry / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	}
}

// ClearRenewalCookie expires the renewal cookie on the client.
func ClearRenewalCookie(secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     RenewalCookieName,
		Value:    "",
		Path:     renewalCookiePath,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	}
}
