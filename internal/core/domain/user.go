package domain

import (
	"errors"
	"time"
)

// Role is the closed set of authorization roles a user can hold.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// ErrInvalidCredentials deliberately covers both "unknown email" and "wrong
// password" so login failures cannot be used to enumerate accounts.
var ErrInvalidCredentials = errors.New("Invalid Credentials")

var ErrDuplicateEmail = errors.New("user already exists with this email")
var ErrDuplicateUsername = errors.New("username is already taken")
var ErrUserNotFound = errors.New("user not found")

// User models a registered actor in the system. The password hash never
// appears in JSON and is excluded from the projection the identity resolver
// loads.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity is the resolved caller attached to the request context after
// authentication. It is the sole channel by which handlers learn who is
// calling.
type Identity struct {
	UserID string
	Role   Role
}
