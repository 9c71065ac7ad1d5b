package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/inkpothq/inkpot/internal/blog/domain"
	"github.com/inkpothq/inkpot/internal/blog/service"
	"github.com/inkpothq/inkpot/pkg/blogsdk"
	"github.com/inkpothq/inkpot/pkg/httpx"
	"github.com/inkpothq/inkpot/pkg/slogx"
)

type AuthHandler struct {
	AuthService *service.AuthService
	Cookies     CookieConfig
}

func sdkUser(u domain.User) blogsdk.User {
	pub := u.Public()
	return blogsdk.User{
		ID:        pub.ID,
		Username:  pub.Username,
		Email:     pub.Email,
		Img:       pub.Img,
		CreatedAt: pub.CreatedAt,
	}
}

// HandleRegister creates a local account. Duplicate username or email
// returns 409 regardless of which identity collided.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req blogsdk.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		blogsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	err := h.AuthService.Register(ctx, req.Username, req.Email, req.Password)
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, blogsdk.MessageResponse{Message: "User has been created."})
	case errors.Is(err, service.ErrUserExists):
		blogsdk.ErrUserExists.WriteError(w)
	case errors.Is(err, service.ErrMissingFields):
		blogsdk.ErrInvalidRequest.WriteError(w)
	default:
		log.Error("register failed", "err", err)
		blogsdk.ErrServerError.WriteError(w)
	}
}

// HandleLogin verifies credentials and binds the session to a cookie.
// Unknown username and wrong password are deliberately distinct (404 vs
// 400); neither sets a cookie.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req blogsdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		blogsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	user, token, err := h.AuthService.Login(ctx, req.Username, req.Password)
	switch {
	case err == nil:
		h.Cookies.SetSession(w, token)
		httpx.WriteJSON(w, http.StatusOK, sdkUser(user))
	case errors.Is(err, service.ErrUserNotFound):
		blogsdk.ErrUserNotFound.WriteError(w)
	case errors.Is(err, service.ErrInvalidPassword):
		blogsdk.ErrWrongCredentials.WriteError(w)
	default:
		log.Error("login failed", "err", err)
		blogsdk.ErrServerError.WriteError(w)
	}
}

// HandleLogout clears the session cookie. Idempotent: succeeds with or
// without an existing session.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.Cookies.ClearSession(w)
	httpx.WriteJSON(w, http.StatusOK, blogsdk.MessageResponse{Message: "User has been logged out."})
}
