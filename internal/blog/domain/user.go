package domain

import "time"

// User is an identity record. A row is provisioned either locally (with
// a password hash) or through the Google handshake (no hash, image from
// the provider profile). Email is the join key across both paths.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string // argon2 encoded; "" for OAuth-provisioned accounts
	Img          string // profile image URL, may be empty
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasLocalPassword reports whether the account was provisioned with
// local credentials.
func (u User) HasLocalPassword() bool { return u.PasswordHash != "" }

// PublicView is the user record as returned to clients, with the
// password hash stripped.
type PublicView struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Img       string    `json:"img,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Public strips the credential material from a user record.
func (u User) Public() PublicView {
	return PublicView{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Img:       u.Img,
		CreatedAt: u.CreatedAt,
	}
}

// Profile is the externally-verified identity returned by an OAuth
// provider after a successful handshake.
type Profile struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}
