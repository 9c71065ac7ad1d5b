package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/inkpothq/inkpot/internal/blog/domain"
	"github.com/inkpothq/inkpot/internal/blog/oauth"
	"github.com/inkpothq/inkpot/internal/blog/store"
	"github.com/inkpothq/inkpot/pkg/idx"
	"github.com/inkpothq/inkpot/pkg/jwtx"
	"github.com/inkpothq/inkpot/pkg/slogx"
)

// GoogleService completes the federated login handshake. Accounts are
// matched by email: an existing row (local or federated) is reused, a
// missing one is provisioned without a password hash.
type GoogleService struct {
	Store      store.Store
	Provider   oauth.Provider
	Signer     jwtx.Signer
	Issuer     string
	SessionTTL time.Duration
}

// AuthURL returns the provider redirect URL for the given state.
func (s *GoogleService) AuthURL(state string) string {
	return s.Provider.AuthCodeURL(state)
}

// Handshake exchanges the callback code for a profile, resolves or
// provisions the matching user, and mints a session token.
func (s *GoogleService) Handshake(ctx context.Context, code string) (domain.User, string, error) {
	log := slogx.FromContext(ctx)

	profile, err := s.Provider.FetchProfile(ctx, code)
	if err != nil {
		return domain.User{}, "", err
	}

	user, err := s.resolveUser(ctx, profile)
	if err != nil {
		return domain.User{}, "", err
	}

	token, err := s.mintSession(user)
	if err != nil {
		return domain.User{}, "", err
	}

	log.Info("federated login", "username", user.Username)
	return user, token, nil
}

func (s *GoogleService) resolveUser(ctx context.Context, profile domain.Profile) (domain.User, error) {
	user, err := s.Store.Users().GetUserByEmail(ctx, profile.Email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, err
	}

	fresh := domain.User{
		ID:    idx.New().String(),
		Email: profile.Email,
		Img:   profile.Picture,
	}

	for _, username := range usernameCandidates(profile) {
		fresh.Username = username

		err := s.Store.Users().CreateUser(ctx, fresh)
		if err == nil {
			return fresh, nil
		}
		if !errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, err
		}

		// A concurrent callback for the same account can win the insert
		// race; the committed row is authoritative either way.
		existing, err := s.Store.Users().GetUserByEmail(ctx, profile.Email)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return domain.User{}, err
		}

		// The email is still free, so the collision was on the username.
		// Move on to the next candidate.
	}

	return domain.User{}, store.ErrAlreadyExists
}

func (s *GoogleService) mintSession(u domain.User) (string, error) {
	ttl := s.SessionTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}
	claims := jwtx.NewSessionClaims(u.ID, u.Username, s.Issuer, ttl, time.Now())
	return s.Signer.Sign(claims)
}

func usernameFromProfile(p domain.Profile) string {
	if name := strings.TrimSpace(p.Name); name != "" {
		return name
	}
	return emailLocalPart(p.Email)
}

func emailLocalPart(email string) string {
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	return email
}

// usernameCandidates lists usernames to try when provisioning, in
// preference order. Display names are not unique across accounts, so a
// taken name falls back to the email local part and finally to a
// suffixed variant that cannot realistically collide.
func usernameCandidates(p domain.Profile) []string {
	base := usernameFromProfile(p)
	candidates := []string{base}

	if local := emailLocalPart(p.Email); local != base {
		candidates = append(candidates, local)
	}

	suffix := strings.ToLower(idx.New().String())
	return append(candidates, base+"-"+suffix[len(suffix)-6:])
}
