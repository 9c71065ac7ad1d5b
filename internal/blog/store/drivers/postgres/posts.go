package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/inkpothq/inkpot/internal/blog/domain"
)

type postsRepo struct {
	db dbtx
}

const postColumns = `id, title, description, img, cat, date, uid, created_at, updated_at`

func scanPost(scan func(dest ...any) error) (domain.Post, error) {
	var p domain.Post
	var img, cat sql.NullString
	err := scan(&p.ID, &p.Title, &p.Description, &img, &cat, &p.Date, &p.UID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.Post{}, err
	}
	p.Img = mapNullString(img)
	p.Cat = mapNullString(cat)
	return p, nil
}

func (r *postsRepo) ListPosts(ctx context.Context, cat string) ([]domain.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts ORDER BY date DESC`
	args := []any{}
	if cat != "" {
		query = `SELECT ` + postColumns + ` FROM posts WHERE cat = $1 ORDER BY date DESC`
		args = append(args, cat)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []domain.Post{}
	for rows.Next() {
		p, err := scanPost(rows.Scan)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (r *postsRepo) GetPostDetail(ctx context.Context, id string) (domain.PostDetail, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT p.id, p.title, p.description, p.img, p.cat, p.date, p.uid,
		        p.created_at, p.updated_at, u.username, u.img
		 FROM posts p JOIN users u ON u.id = p.uid
		 WHERE p.id = $1`, id)

	var d domain.PostDetail
	var img, cat, userImg sql.NullString
	err := row.Scan(&d.ID, &d.Title, &d.Description, &img, &cat, &d.Date, &d.UID,
		&d.CreatedAt, &d.UpdatedAt, &d.Username, &userImg)
	if err != nil {
		return domain.PostDetail{}, mapNotFound(err)
	}
	d.Img = mapNullString(img)
	d.Cat = mapNullString(cat)
	d.UserImg = mapNullString(userImg)
	return d, nil
}

func (r *postsRepo) CreatePost(ctx context.Context, p domain.Post) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO posts (id, title, description, img, cat, date, uid, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.Title, p.Description, mapStringNull(p.Img), mapStringNull(p.Cat),
		p.Date, p.UID, now, now,
	)
	return mapConstraint(err)
}

func (r *postsRepo) UpdatePost(ctx context.Context, p domain.Post) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE posts SET title = $1, description = $2, img = $3, cat = $4, updated_at = $5
		 WHERE id = $6 AND uid = $7`,
		p.Title, p.Description, mapStringNull(p.Img), mapStringNull(p.Cat),
		time.Now().UTC(), p.ID, p.UID,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *postsRepo) DeletePost(ctx context.Context, id, uid string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM posts WHERE id = $1 AND uid = $2`, id, uid)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
