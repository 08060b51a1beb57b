package user

import "time"

// User is an account identified by a unique email. PasswordHash is a
// bcrypt hash and never leaves the service layer.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

// TokenPair is the result of a successful login.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}
