package domain

import "errors"

// ErrInvalidCredentials covers both an unknown username and a wrong password.
// The two cases are deliberately indistinguishable to callers so the API never
// leaks which usernames exist.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AccountRecord is a registered named account. Records are loaded once at
// startup from the configured backing store and never mutated at runtime.
type AccountRecord struct {
	Username       string `json:"username"`
	PasswordDigest string `json:"-"`
	DisplayName    string `json:"display_name"`
	Role           Role   `json:"role"`
	Email          string `json:"email,omitempty"`
}
