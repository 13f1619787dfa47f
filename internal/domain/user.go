package domain

import "time"

// Role enumerates restaurant staff roles carried in tokens and stored on
// user records. Roles are always explicit in storage, never inferred.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
	RoleStaff   Role = "STAFF"
	RoleChef    Role = "CHEF"
)

// DefaultRole is assigned when a registration omits the role.
const DefaultRole = RoleStaff

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleManager, RoleStaff, RoleChef:
		return true
	}
	return false
}

// User is the domain model for restaurant accounts.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
