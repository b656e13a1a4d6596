// Package session owns the authenticated state of the client: the current
// identity, its role, and the bearer token, persisted across invocations.
// No other package writes the session files.
package session

// User is the identity embedded in the bearer token.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Session is the authentication state of the client. IsAuth true implies
// User and a stored token are present; false implies both absent.
type Session struct {
	IsAuth  bool  `json:"isAuth"`
	IsAdmin bool  `json:"isAdmin"`
	User    *User `json:"user,omitempty"`
}

// Unauthenticated is the initial session shape.
func Unauthenticated() Session {
	return Session{}
}
