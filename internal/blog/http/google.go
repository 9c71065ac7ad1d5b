package http

import (
	"net/http"
	"time"

	"github.com/inkpothq/inkpot/internal/blog/service"
	"github.com/inkpothq/inkpot/pkg/blogsdk"
	"github.com/inkpothq/inkpot/pkg/cryptox"
	"github.com/inkpothq/inkpot/pkg/httpx"
	"github.com/inkpothq/inkpot/pkg/jwtx"
	"github.com/inkpothq/inkpot/pkg/slogx"
)

// stateCookie carries the anti-forgery state across the provider
// round trip. Short-lived and scoped to the callback path.
const (
	stateCookie    = "oauth_state"
	stateCookieTTL = 10 * time.Minute
)

type GoogleHandler struct {
	GoogleService *service.GoogleService
	UserService   *service.UserService
	Verifier      jwtx.Verifier
	Cookies       CookieConfig
	FrontendURL   string
}

// HandleRedirect kicks off the handshake: mints a state nonce, pins it
// to a cookie, and bounces the browser to the provider consent page.
func (h *GoogleHandler) HandleRedirect(w http.ResponseWriter, r *http.Request) {
	if h.GoogleService == nil {
		// Provider credentials not configured for this deployment.
		http.Redirect(w, r, h.FrontendURL+"/login", http.StatusFound)
		return
	}

	state, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		blogsdk.ErrServerError.WriteError(w)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/auth/google",
		MaxAge:   int(stateCookieTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.Cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.GoogleService.AuthURL(state), http.StatusFound)
}

// HandleCallback completes the handshake. Every failure path lands the
// browser back on the front-end login page; the session cookie is only
// written on success.
func (h *GoogleHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	loginURL := h.FrontendURL + "/login"

	if h.GoogleService == nil {
		http.Redirect(w, r, loginURL, http.StatusFound)
		return
	}

	c, err := r.Cookie(stateCookie)
	if err != nil || c.Value == "" || c.Value != r.URL.Query().Get("state") {
		log.Warn("oauth callback state mismatch")
		http.Redirect(w, r, loginURL, http.StatusFound)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Redirect(w, r, loginURL, http.StatusFound)
		return
	}

	_, token, err := h.GoogleService.Handshake(ctx, code)
	if err != nil {
		log.Warn("oauth handshake failed", "err", err)
		http.Redirect(w, r, loginURL, http.StatusFound)
		return
	}

	h.Cookies.SetSession(w, token)
	http.Redirect(w, r, h.FrontendURL, http.StatusFound)
}

// HandleSessionUser probes the session. Always 200 so the front end can
// check login state without tripping its error handling; the body
// carries the verdict.
func (h *GoogleHandler) HandleSessionUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	notAuthenticated := blogsdk.SessionResponse{Authenticated: false, Message: "Not authenticated"}

	raw := httpx.TokenFromRequest(r, h.Cookies.name())
	if raw == "" {
		httpx.WriteJSON(w, http.StatusOK, notAuthenticated)
		return
	}

	claims, err := h.Verifier.Verify(raw)
	if err != nil {
		httpx.WriteJSON(w, http.StatusOK, notAuthenticated)
		return
	}

	user, err := h.UserService.GetUserByID(ctx, claims.Subject)
	if err != nil {
		log.Warn("session probe user lookup failed", "user_id", claims.Subject, "err", err)
		httpx.WriteJSON(w, http.StatusOK, notAuthenticated)
		return
	}

	u := sdkUser(user)
	httpx.WriteJSON(w, http.StatusOK, blogsdk.SessionResponse{
		Authenticated: true,
		User:          &u,
	})
}

// HandleLogout clears the session cookie, same as the local logout.
func (h *GoogleHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.Cookies.ClearSession(w)
	httpx.WriteJSON(w, http.StatusOK, blogsdk.MessageResponse{Message: "User has been logged out."})
}
