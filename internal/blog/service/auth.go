package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/inkpothq/inkpot/internal/blog/domain"
	"github.com/inkpothq/inkpot/internal/blog/store"
	"github.com/inkpothq/inkpot/pkg/cryptox"
	"github.com/inkpothq/inkpot/pkg/idx"
	"github.com/inkpothq/inkpot/pkg/jwtx"
	"github.com/inkpothq/inkpot/pkg/slogx"
)

var (
	ErrUserExists      = errors.New("user_exists")
	ErrUserNotFound    = errors.New("user_not_found")
	ErrInvalidPassword = errors.New("invalid_password")
	ErrMissingFields   = errors.New("missing_fields")
)

// AuthService handles local registration and credential login.
type AuthService struct {
	Store      store.Store
	Signer     jwtx.Signer
	Issuer     string
	SessionTTL time.Duration
}

// Register provisions a local account. The existence probe and the
// insert run in one transaction; the database uniqueness constraints
// still backstop concurrent registrations, so a constraint violation
// maps to ErrUserExists the same way the probe does.
func (s *AuthService) Register(ctx context.Context, username, email, password string) error {
	log := slogx.FromContext(ctx)

	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return ErrMissingFields
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		exists, err := tx.Users().ExistsByEmailOrUsername(ctx, email, username)
		if err != nil {
			return err
		}
		if exists {
			return ErrUserExists
		}

		return tx.Users().CreateUser(ctx, domain.User{
			ID:           idx.New().String(),
			Username:     username,
			Email:        email,
			PasswordHash: hash,
		})
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return ErrUserExists
		}
		return err
	}

	log.Info("user registered", "username", username)
	return nil
}

// Login authenticates a local account and mints a session token.
func (s *AuthService) Login(ctx context.Context, username, password string) (domain.User, string, error) {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, "", ErrUserNotFound
		}
		return domain.User{}, "", err
	}

	// OAuth-provisioned accounts have no local credential to check.
	if !user.HasLocalPassword() || cryptox.VerifyPassword(password, user.PasswordHash) != nil {
		return domain.User{}, "", ErrInvalidPassword
	}

	token, err := s.mintSession(user)
	if err != nil {
		return domain.User{}, "", err
	}

	log.Info("user logged in", "username", user.Username)
	return user, token, nil
}

func (s *AuthService) mintSession(u domain.User) (string, error) {
	ttl := s.SessionTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}
	claims := jwtx.NewSessionClaims(u.ID, u.Username, s.Issuer, ttl, time.Now())
	return s.Signer.Sign(claims)
}
