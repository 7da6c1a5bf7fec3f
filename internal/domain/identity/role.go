package identity

// Role is the authorization role carried by a principal
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleStaff    Role = "staff"
	RoleCustomer Role = "customer"
	RoleFarmer   Role = "farmer"
)

// IsValidUserRole reports whether r can be assigned to a User.
// Farmers live in their own store and never carry a user role.
func IsValidUserRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleCustomer:
		return true
	}
	return false
}

// IsManagement reports whether the role may use back-office endpoints
func (r Role) IsManagement() bool {
	return r == RoleAdmin || r == RoleStaff
}

func (r Role) String() string {
	return string(r)
}
