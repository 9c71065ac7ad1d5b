package service

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/inkpothq/inkpot/internal/blog/store"
	"github.com/inkpothq/inkpot/internal/blog/store/drivers/sqlite"
	"github.com/inkpothq/inkpot/pkg/cryptox"
	"github.com/inkpothq/inkpot/pkg/jwtx"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "inkpot-service-test-*")
	if err != nil {
		os.Exit(1)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func newTestSigner(t *testing.T) *jwtx.HS256 {
	t.Helper()

	signer, err := jwtx.NewHS256([]byte("0123456789abcdef0123456789abcdef"), "inkpot-test")
	require.NoError(t, err)
	return signer
}

func newAuthService(t *testing.T) *AuthService {
	t.Helper()

	return &AuthService{
		Store:      newTestStore(t),
		Signer:     newTestSigner(t),
		Issuer:     "inkpot-test",
		SessionTTL: time.Hour,
	}
}
