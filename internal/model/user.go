package model

import "time"

// User roles.  Staff endpoints accept operators and admins.
const (
	RoleCustomer = "cliente"
	RoleOperator = "operador"
	RoleAdmin    = "admin"
)

// User represents an application user record as stored in the `users`
// table.  Password holds either a bcrypt hash or, for accounts created
// before hashing was introduced, the plain-text password.  It is never
// serialized.
type User struct {
	ID        uint64    `json:"id"`        // users.id
	FirstName string    `json:"nombre"`    // users.first_name
	LastName  string    `json:"apellido"`  // users.last_name
	Email     string    `json:"correo"`    // users.email
	Password  string    `json:"-"`         // users.password
	Role      string    `json:"rol"`       // users.role
	CreatedAt time.Time `json:"-"`         // users.created_at
}

// Profile is the public projection of a user returned by auth endpoints.
type Profile struct {
	ID        uint64 `json:"id"`
	FirstName string `json:"nombre"`
	LastName  string `json:"apellido"`
	Email     string `json:"correo"`
	Role      string `json:"rol"`
}

// Profile returns the user's public projection.
func (u User) Profile() Profile {
	return Profile{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName, Email: u.Email, Role: u.Role}
}

// IsStaffRole reports whether role may use staff-only endpoints.
func IsStaffRole(role string) bool {
	return role == RoleOperator || role == RoleAdmin
}
