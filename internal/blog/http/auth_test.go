package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/inkpothq/inkpot/pkg/blogsdk"

	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()

	buf, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(buf))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == DefaultCookieName {
			return c
		}
	}
	return nil
}

func TestRegisterThenDuplicateConflicts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	req := blogsdk.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "pw-pw-pw-pw",
	}
	require.NoError(t, env.Client.Register(ctx, req))

	t.Run("same username", func(t *testing.T) {
		err := env.Client.Register(ctx, blogsdk.RegisterRequest{
			Username: "alice", Email: "alice2@example.com", Password: "pw-pw-pw-pw",
		})
		var apiErr *blogsdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusConflict, apiErr.StatusCode)
	})

	t.Run("same email", func(t *testing.T) {
		err := env.Client.Register(ctx, blogsdk.RegisterRequest{
			Username: "alice2", Email: "alice@example.com", Password: "pw-pw-pw-pw",
		})
		var apiErr *blogsdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusConflict, apiErr.StatusCode)
	})
}

func TestLoginBindsSessionCookie(t *testing.T) {
	env := newTestEnv(t)
	user := registerAndLogin(t, env, "bob")

	// Raw request so the Set-Cookie header can be inspected directly.
	resp := postJSON(t, env.Server.URL+"/auth/login", blogsdk.LoginRequest{
		Username: "bob", Password: "swordfish-swordfish",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	c := sessionCookie(resp)
	require.NotNil(t, c)
	require.True(t, c.HttpOnly)
	require.Equal(t, http.SameSiteLaxMode, c.SameSite)

	claims, err := env.Signer.Verify(c.Value)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.Subject)
	require.Equal(t, "bob", claims.Username)
	require.NotNil(t, claims.ExpiresAt)
}

func TestLoginFailuresSetNoCookie(t *testing.T) {
	env := newTestEnv(t)
	registerAndLogin(t, env, "carol")

	t.Run("wrong password is 400", func(t *testing.T) {
		resp := postJSON(t, env.Server.URL+"/auth/login", blogsdk.LoginRequest{
			Username: "carol", Password: "not-the-password",
		})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Nil(t, sessionCookie(resp))
	})

	t.Run("unknown username is 404", func(t *testing.T) {
		resp := postJSON(t, env.Server.URL+"/auth/login", blogsdk.LoginRequest{
			Username: "nobody", Password: "whatever",
		})
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
		require.Nil(t, sessionCookie(resp))
	})
}

func TestLogoutIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Without a session.
	require.NoError(t, env.Client.Logout(ctx))

	// With a session; the cookie is expired by the response.
	registerAndLogin(t, env, "dave")
	require.NoError(t, env.Client.Logout(ctx))

	resp, err := env.Client.SessionUser(ctx)
	require.NoError(t, err)
	require.False(t, resp.Authenticated)
}

func TestRegisterRejectsMalformedBody(t *testing.T) {
	env := newTestEnv(t)

	resp, err := http.Post(env.Server.URL+"/auth/register", "application/json",
		bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
