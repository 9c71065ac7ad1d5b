package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/inkpothq/inkpot/pkg/jwtx"
	"github.com/inkpothq/inkpot/pkg/slogx"
)

// SessionAuthMiddleware verifies the session token carried on the named
// cookie (or an Authorization bearer header as a fallback for API
// clients) and injects the subject into the request context.
//
// A request without a token is rejected 401; a request with a token that
// fails verification is rejected 403. Downstream resource handlers rely
// on that split to distinguish "log in first" from "your session is bad".
func SessionAuthMiddleware(v jwtx.Verifier, cookieName string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw := TokenFromRequest(r, cookieName)
			if raw == "" {
				WriteError(w, http.StatusUnauthorized, "unauthorized", "Not logged in")
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				log.Warn("session token verify failed", "err", err)
				WriteError(w, http.StatusForbidden, "forbidden", "Session token is not valid")
				return
			}

			next.ServeHTTP(w, r.WithContext(contextWithSession(ctx, claims)))
		})
	}
}

// TokenFromRequest extracts the raw session token from the cookie or the
// Authorization header. Returns "" when neither is present.
func TokenFromRequest(r *http.Request, cookieName string) string {
	if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
		return c.Value
	}
	if authz := r.Header.Get("Authorization"); strings.HasPrefix(authz, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))
	}
	return ""
}

func contextWithSession(ctx context.Context, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, c.Subject)
	ctx = context.WithValue(ctx, CtxKeyUsername, c.Username)
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return ctx
}
