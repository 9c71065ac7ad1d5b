package http

import (
	"net/http"
	"time"
)

// DefaultCookieName is the session cookie the browser carries.
const DefaultCookieName = "access_token"

// CookieConfig controls how the session cookie is written. Secure must
// be true behind TLS; SameSite stays Lax so the OAuth callback redirect
// still carries the cookie.
type CookieConfig struct {
	Name   string
	Secure bool
	MaxAge time.Duration
}

func (c CookieConfig) name() string {
	if c.Name == "" {
		return DefaultCookieName
	}
	return c.Name
}

// SetSession writes the session token as an HttpOnly cookie.
func (c CookieConfig) SetSession(w http.ResponseWriter, token string) {
	maxAge := int(c.MaxAge.Seconds())
	if maxAge <= 0 {
		maxAge = int((24 * time.Hour).Seconds())
	}
	http.SetCookie(w, &http.Cookie{
		Name:     c.name(),
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSession expires the session cookie.
func (c CookieConfig) ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.name(),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
