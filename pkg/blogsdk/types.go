package blogsdk

import "time"

// RegisterRequest creates a local account.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest authenticates a local account.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// User is the public user record; credential material never appears here.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Img       string    `json:"img,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionResponse reports whether the caller holds a valid session and,
// if so, who they are. It is always served with status 200 so the front
// end can probe without tripping error handling.
type SessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	User          *User  `json:"user,omitempty"`
	Message       string `json:"message,omitempty"`
}

// PostRequest carries the client-editable post fields for create and update.
type PostRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Img         string    `json:"img,omitempty"`
	Cat         string    `json:"cat,omitempty"`
	Date        time.Time `json:"date,omitempty"`
}

// Post is a blog entry. Username and UserImg are populated on the
// single-post endpoint, where the author is joined in.
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

	Username string `json:"username,omitempty"`
	UserImg  string `json:"user_img,omitempty"`
}

// UploadResponse returns the server-assigned filename for an uploaded image.
type UploadResponse struct {
	Filename string `json:"filename"`
}

// MessageResponse is the confirmation payload for endpoints with no data
// to return.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthChecks reports per-dependency health on the readiness endpoint.
type HealthChecks struct {
	Database string `json:"database"`
}

// HealthResponse is served on /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
