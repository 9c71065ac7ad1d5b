package domain

import "time"

// Post is a blog entry authored by a user.
type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Img         string    `json:"img,omitempty"`
	Cat         string    `json:"cat,omitempty"`
	Date        time.Time `json:"date"`
	UID         string    `json:"uid"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PostDetail is a post joined with its author's public attributes, as
// served on the single-post page.
type PostDetail struct {
	Post

	Username string `json:"username"`
	UserImg  string `json:"user_img,omitempty"`
}
