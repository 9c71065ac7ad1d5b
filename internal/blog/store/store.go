package store

import (
	"context"
	"errors"

	"github.com/inkpothq/inkpot/internal/blog/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement this. It exposes sub-repositories to keep concerns
// tidy and testable.
type Store interface {
	Users() Users
	Posts() Posts

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. This is the
	// recommended way to handle multi-step operations that must be atomic
	// (e.g. the registration existence probe + insert).
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername is used during login.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// GetUserByEmail is used during the OAuth handshake (merge-by-email).
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// ExistsByEmailOrUsername reports whether any row claims either
	// identity. The registration flow probes this before inserting; the
	// database uniqueness constraints remain the real enforcement
	// boundary under concurrency.
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	// A uniqueness violation surfaces as ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error
}

type Posts interface {
	// ListPosts returns all posts newest-date-first, optionally filtered
	// by category when cat is non-empty.
	ListPosts(ctx context.Context, cat string) ([]domain.Post, error)

	// GetPostDetail returns a post joined with its author's username and image.
	GetPostDetail(ctx context.Context, id string) (domain.PostDetail, error)

	// CreatePost inserts a new post (id is ULID).
	CreatePost(ctx context.Context, p domain.Post) error

	// UpdatePost mutates title/description/img/cat scoped to id AND uid.
	// Returns the number of rows touched so callers can distinguish
	// "not yours" from success.
	UpdatePost(ctx context.Context, p domain.Post) (int64, error)

	// DeletePost removes a post scoped to id AND uid, returning rows touched.
	DeletePost(ctx context.Context, id, uid string) (int64, error)
}
