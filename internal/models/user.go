package models

// User is a portal account. Admin accounts can manage users and terms.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Admin    bool   `json:"admin"`
}

// CreateUserRequest is the payload for admin-side user creation.
type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Admin    bool   `json:"admin"`
}

// UpdateUserRequest never carries a password, the backend keeps the
// existing one on update.
type UpdateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Admin    bool   `json:"admin"`
}

// RegisterUserRequest is the self-service signup payload. Registration is a
// distinct backend operation from admin-side creation and requires the
// current terms of service to have been accepted.
type RegisterUserRequest struct {
	Username      string `json:"username"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	Admin         bool   `json:"admin"`
	AcceptedTerms bool   `json:"acceptedTerms"`
}
