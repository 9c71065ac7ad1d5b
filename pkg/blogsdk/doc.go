// Package blogsdk provides the wire types and a typed HTTP client for
// the blog service. The server's handlers use the same request and
// response structs, so the two sides cannot drift apart.
//
// The client carries a cookie jar: a successful Login stores the
// session cookie and subsequent calls send it automatically, matching
// how a browser talks to the service.
package blogsdk
