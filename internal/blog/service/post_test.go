package service

import (
	"context"
	"testing"
	"time"

	"github.com/inkpothq/inkpot/internal/blog/domain"
	"github.com/inkpothq/inkpot/internal/blog/store"
	"github.com/inkpothq/inkpot/pkg/idx"

	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, st store.Store, username string) domain.User {
	t.Helper()

	u := domain.User{
		ID:       idx.New().String(),
		Username: username,
		Email:    username + "@example.com",
	}
	require.NoError(t, st.Users().CreateUser(context.Background(), u))
	return u
}

func TestPostLifecycle(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &PostService{Store: st}
	author := seedUser(t, st, "ivy")

	created, err := svc.Create(ctx, author.ID, PostInput{
		Title:       "First post",
		Description: "Some long-form content",
		Cat:         "art",
		Date:        time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, author.ID, created.UID)

	detail, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "First post", detail.Title)
	require.Equal(t, "ivy", detail.Username)

	require.NoError(t, svc.Update(ctx, created.ID, author.ID, PostInput{
		Title:       "First post, revised",
		Description: "Edited content",
		Cat:         "design",
	}))

	detail, err = svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "First post, revised", detail.Title)
	require.Equal(t, "design", detail.Cat)

	require.NoError(t, svc.Delete(ctx, created.ID, author.ID))

	_, err = svc.Get(ctx, created.ID)
	require.ErrorIs(t, err, ErrPostNotFound)
}

func TestListFiltersByCategory(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &PostService{Store: st}
	author := seedUser(t, st, "jack")

	mk := func(title, cat string, day int) {
		_, err := svc.Create(ctx, author.ID, PostInput{
			Title:       title,
			Description: "body",
			Cat:         cat,
			Date:        time.Date(2024, 6, day, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
	}
	mk("old art", "art", 1)
	mk("science", "science", 2)
	mk("new art", "art", 3)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "new art", all[0].Title) // newest date first

	art, err := svc.List(ctx, "art")
	require.NoError(t, err)
	require.Len(t, art, 2)
	require.Equal(t, "new art", art[0].Title)
	require.Equal(t, "old art", art[1].Title)
}

func TestMutationsScopedToAuthor(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &PostService{Store: st}
	author := seedUser(t, st, "kate")
	other := seedUser(t, st, "liam")

	created, err := svc.Create(ctx, author.ID, PostInput{Title: "Mine", Description: "body"})
	require.NoError(t, err)

	t.Run("update by non-owner", func(t *testing.T) {
		err := svc.Update(ctx, created.ID, other.ID, PostInput{Title: "Stolen", Description: "body"})
		require.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("delete by non-owner", func(t *testing.T) {
		require.ErrorIs(t, svc.Delete(ctx, created.ID, other.ID), ErrNotOwner)
	})

	t.Run("update of missing post", func(t *testing.T) {
		err := svc.Update(ctx, idx.New().String(), author.ID, PostInput{Title: "x", Description: "y"})
		require.ErrorIs(t, err, ErrNotOwner)
	})

	// Post is untouched.
	detail, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Mine", detail.Title)
}

func TestCreateRequiresTitleAndBody(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &PostService{Store: st}
	author := seedUser(t, st, "mia")

	_, err := svc.Create(ctx, author.ID, PostInput{Description: "body"})
	require.ErrorIs(t, err, ErrMissingFields)

	_, err = svc.Create(ctx, author.ID, PostInput{Title: "t"})
	require.ErrorIs(t, err, ErrMissingFields)
}
