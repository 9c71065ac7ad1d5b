package http

import (
	"context"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/inkpothq/inkpot/internal/blog/domain"
	"github.com/inkpothq/inkpot/internal/blog/service"
	"github.com/inkpothq/inkpot/internal/blog/store"
	"github.com/inkpothq/inkpot/internal/blog/store/drivers/sqlite"
	"github.com/inkpothq/inkpot/pkg/blogsdk"
	"github.com/inkpothq/inkpot/pkg/cryptox"
	"github.com/inkpothq/inkpot/pkg/jwtx"

	"github.com/stretchr/testify/require"
)

const testIssuer = "inkpot-test"

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "inkpot-http-test-*")
	if err != nil {
		os.Exit(1)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

type testEnv struct {
	Server   *httptest.Server
	Client   *blogsdk.Client
	Store    store.Store
	Signer   *jwtx.HS256
	Provider *stubProvider
}

type stubProvider struct {
	profile domain.Profile
}

func (s *stubProvider) AuthCodeURL(state string) string {
	return "https://accounts.example.com/consent?state=" + state
}

func (s *stubProvider) FetchProfile(ctx context.Context, code string) (domain.Profile, error) {
	return s.profile, nil
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	signer, err := jwtx.NewHS256([]byte("0123456789abcdef0123456789abcdef"), testIssuer)
	require.NoError(t, err)

	provider := &stubProvider{
		profile: domain.Profile{
			Email:   "fed@example.com",
			Name:    "Fed User",
			Picture: "https://img.example.com/fed.png",
		},
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	router := NewRouter(signer, "test", "http://front.example.com", st, logger)
	router.Cookies = CookieConfig{Name: DefaultCookieName, MaxAge: time.Hour}
	router.UploadDir = t.TempDir()
	router.AuthService = &service.AuthService{
		Store:      st,
		Signer:     signer,
		Issuer:     testIssuer,
		SessionTTL: time.Hour,
	}
	router.GoogleService = &service.GoogleService{
		Store:      st,
		Provider:   provider,
		Signer:     signer,
		Issuer:     testIssuer,
		SessionTTL: time.Hour,
	}
	router.PostService = &service.PostService{Store: st}
	router.UserService = &service.UserService{Store: st}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	client, err := blogsdk.NewClient(srv.URL)
	require.NoError(t, err)

	return &testEnv{
		Server:   srv,
		Client:   client,
		Store:    st,
		Signer:   signer,
		Provider: provider,
	}
}

func newExpiredClaims(t *testing.T) jwtx.Claims {
	t.Helper()
	return jwtx.NewSessionClaims("some-user", "ghost", testIssuer, -2*time.Minute, time.Now().Add(-time.Hour))
}

func registerAndLogin(t *testing.T, env *testEnv, username string) blogsdk.User {
	t.Helper()

	ctx := context.Background()
	require.NoError(t, env.Client.Register(ctx, blogsdk.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "swordfish-swordfish",
	}))

	user, err := env.Client.Login(ctx, blogsdk.LoginRequest{
		Username: username,
		Password: "swordfish-swordfish",
	})
	require.NoError(t, err)
	return user
}
