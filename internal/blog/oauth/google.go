package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/inkpothq/inkpot/internal/blog/domain"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const userinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// Google implements Provider against Google's OAuth2 endpoints.
type Google struct {
	cfg *oauth2.Config
}

type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

func NewGoogle(cfg GoogleConfig) *Google {
	return &Google{
		cfg: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
	}
}

func (g *Google) AuthCodeURL(state string) string {
	return g.cfg.AuthCodeURL(state)
}

func (g *Google) FetchProfile(ctx context.Context, code string) (domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	token, err := g.cfg.Exchange(ctx, code)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("%w: exchanging code: %v", ErrUpstream, err)
	}

	client := g.cfg.Client(ctx, token)
	resp, err := client.Get(userinfoURL)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("%w: fetching userinfo: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Profile{}, fmt.Errorf("%w: userinfo returned %d", ErrUpstream, resp.StatusCode)
	}

	var profile domain.Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return domain.Profile{}, fmt.Errorf("%w: decoding userinfo: %v", ErrUpstream, err)
	}
	if profile.Email == "" {
		return domain.Profile{}, fmt.Errorf("%w: userinfo missing email", ErrUpstream)
	}
	return profile, nil
}
