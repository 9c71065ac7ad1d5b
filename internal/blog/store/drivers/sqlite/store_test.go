package sqlite

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/inkpothq/inkpot/internal/blog/domain"
	"github.com/inkpothq/inkpot/internal/blog/store"
	"github.com/inkpothq/inkpot/pkg/idx"

	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *Store {
	t.Helper()

	st, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func newUser(username string) domain.User {
	return domain.User{
		ID:       idx.New().String(),
		Username: username,
		Email:    username + "@example.com",
	}
}

func TestCreateUserMapsUniqueViolations(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	u := newUser("alice")
	require.NoError(t, st.Users().CreateUser(ctx, u))

	t.Run("duplicate username", func(t *testing.T) {
		dup := newUser("alice")
		dup.Email = "other@example.com"
		err := st.Users().CreateUser(ctx, dup)
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("duplicate email", func(t *testing.T) {
		dup := newUser("alice2")
		dup.Email = "alice@example.com"
		err := st.Users().CreateUser(ctx, dup)
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})
}

func TestInMemoryPoolSharesOneDatabase(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	// Concurrent reads would otherwise spread across pooled connections,
	// each holding its own empty in-memory database.
	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := st.Users().GetUserByEmail(ctx, "nobody@example.com")
			if !errors.Is(err, store.ErrNotFound) {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
}

func TestGetUserMissingIsNotFound(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	_, err := st.Users().GetUserByID(ctx, idx.New().String())
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = st.Users().GetUserByEmail(ctx, "missing@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestNullableColumnsRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	u := newUser("bob") // no password hash, no img
	require.NoError(t, st.Users().CreateUser(ctx, u))

	got, err := st.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Empty(t, got.PasswordHash)
	require.Empty(t, got.Img)
	require.False(t, got.HasLocalPassword())
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	boom := errors.New("boom")
	u := newUser("carol")

	err := st.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, u); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = st.Users().GetUserByID(ctx, u.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeletingUserCascadesToPosts(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	u := newUser("dave")
	require.NoError(t, st.Users().CreateUser(ctx, u))

	p := domain.Post{
		ID:          idx.New().String(),
		Title:       "t",
		Description: "d",
		Date:        time.Now().UTC(),
		UID:         u.ID,
	}
	require.NoError(t, st.Posts().CreatePost(ctx, p))

	_, err := st.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, u.ID)
	require.NoError(t, err)

	posts, err := st.Posts().ListPosts(ctx, "")
	require.NoError(t, err)
	require.Empty(t, posts)
}

func TestPostOwnershipScoping(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	owner := newUser("erin")
	other := newUser("frank")
	require.NoError(t, st.Users().CreateUser(ctx, owner))
	require.NoError(t, st.Users().CreateUser(ctx, other))

	p := domain.Post{
		ID:          idx.New().String(),
		Title:       "t",
		Description: "d",
		Date:        time.Now().UTC(),
		UID:         owner.ID,
	}
	require.NoError(t, st.Posts().CreatePost(ctx, p))

	rows, err := st.Posts().DeletePost(ctx, p.ID, other.ID)
	require.NoError(t, err)
	require.Zero(t, rows)

	rows, err = st.Posts().DeletePost(ctx, p.ID, owner.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, rows)
}
