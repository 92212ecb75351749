package models

// Role is one of the closed set of user roles.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleWaiter   Role = "waiter"
	RoleKitchen  Role = "kitchen"
	RoleCustomer Role = "customer"
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleWaiter, RoleKitchen, RoleCustomer:
		return true
	}
	return false
}

// IsStaff reports whether r belongs to restaurant staff.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleWaiter || r == RoleKitchen
}

// User is the signed-in account kept for the session.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the signed-in user and a bearer token.
type LoginResponse struct {
	User      User   `json:"user"`
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}
