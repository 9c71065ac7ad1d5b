package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/inkpothq/inkpot/internal/blog/domain"
	"github.com/inkpothq/inkpot/internal/blog/store"
	"github.com/inkpothq/inkpot/pkg/idx"
	"github.com/inkpothq/inkpot/pkg/slogx"
)

var (
	ErrPostNotFound = errors.New("post_not_found")

	// ErrNotOwner covers both "post does not exist" and "post belongs to
	// someone else"; mutations are scoped to the author so the store
	// cannot tell the two apart, and neither should the response.
	ErrNotOwner = errors.New("not_post_owner")
)

// PostInput carries the client-editable post fields.
type PostInput struct {
	Title       string
	Description string
	Img         string
	Cat         string
	Date        time.Time
}

// PostService owns the post lifecycle. All mutations are scoped to the
// authenticated author.
type PostService struct {
	Store store.Store
}

// List returns all posts newest-first, optionally filtered by category.
func (s *PostService) List(ctx context.Context, cat string) ([]domain.Post, error) {
	return s.Store.Posts().ListPosts(ctx, strings.TrimSpace(cat))
}

// Get returns a single post joined with its author's public attributes.
func (s *PostService) Get(ctx context.Context, id string) (domain.PostDetail, error) {
	detail, err := s.Store.Posts().GetPostDetail(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.PostDetail{}, ErrPostNotFound
		}
		return domain.PostDetail{}, err
	}
	return detail, nil
}

// Create inserts a new post authored by uid.
func (s *PostService) Create(ctx context.Context, uid string, in PostInput) (domain.Post, error) {
	log := slogx.FromContext(ctx)

	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Description) == "" {
		return domain.Post{}, ErrMissingFields
	}

	date := in.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	post := domain.Post{
		ID:          idx.New().String(),
		Title:       in.Title,
		Description: in.Description,
		Img:         in.Img,
		Cat:         in.Cat,
		Date:        date,
		UID:         uid,
	}

	if err := s.Store.Posts().CreatePost(ctx, post); err != nil {
		return domain.Post{}, err
	}

	log.Info("post created", "post_id", post.ID, "uid", uid)
	return post, nil
}

// Update mutates a post's editable fields, scoped to the author.
func (s *PostService) Update(ctx context.Context, id, uid string, in PostInput) error {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Description) == "" {
		return ErrMissingFields
	}

	rows, err := s.Store.Posts().UpdatePost(ctx, domain.Post{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		Img:         in.Img,
		Cat:         in.Cat,
		UID:         uid,
	})
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotOwner
	}
	return nil
}

// Delete removes a post, scoped to the author.
func (s *PostService) Delete(ctx context.Context, id, uid string) error {
	rows, err := s.Store.Posts().DeletePost(ctx, id, uid)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotOwner
	}
	return nil
}
