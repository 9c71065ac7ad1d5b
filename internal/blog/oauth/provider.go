// Package oauth abstracts the upstream identity provider used for
// federated login. Handlers and services depend on the Provider
// interface so tests can swap in a stub without touching the network.
package oauth

import (
	"context"
	"errors"

	"github.com/inkpothq/inkpot/internal/blog/domain"
)

// ErrUpstream indicates the provider rejected the exchange or the
// profile fetch failed. The caller should treat the login as failed
// rather than surface provider internals.
var ErrUpstream = errors.New("oauth: upstream provider error")

// Provider performs the authorization-code handshake with an upstream
// identity provider.
type Provider interface {
	// AuthCodeURL returns the URL to redirect the browser to. The
	// state parameter is echoed back on the callback and must be
	// verified by the caller.
	AuthCodeURL(state string) string

	// FetchProfile exchanges the authorization code for a token and
	// fetches the subject's profile.
	FetchProfile(ctx context.Context, code string) (domain.Profile, error)
}
