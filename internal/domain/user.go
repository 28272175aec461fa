package domain

import "time"

// Role values for user accounts.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// User is a registered account. The password is stored and compared in
// plaintext; this is a demo system and hardening it is out of scope.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name" validate:"required"`
	Email     string    `json:"email" validate:"required,email"`
	Password  string    `json:"password" validate:"required,min=6"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// Identity is the signed-in view of a user, with the password stripped.
// It is what gets persisted under the currentUser key and threaded into
// cart and order operations.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Identity returns the password-stripped view of the user.
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// IsAdmin reports whether the identity has the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
