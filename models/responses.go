package models

// MessageResponse is the generic JSON body for informational and error
// responses.
type MessageResponse struct {
	Message string `json:"message"`
}

// SignupAccount is the account summary returned after signup. Avatar is the
// URL of the uploaded avatar, empty when none was sent.
type SignupAccount struct {
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// SignupResponse is returned by the signup use case. It never carries the
// salt, the digest or the password.
type SignupResponse struct {
	ID      string        `json:"id"`
	Token   string        `json:"token"`
	Account SignupAccount `json:"account"`
}

// LoginResponse is returned by the login use case.
type LoginResponse struct {
	ID      string  `json:"id"`
	Token   string  `json:"token"`
	Account Profile `json:"account"`
}

// UpdateResponse is returned after a listing was modified.
type UpdateResponse struct {
	Message string  `json:"message"`
	Offer   Listing `json:"offer"`
}
