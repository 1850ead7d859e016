package enum

// UserRole is the role carried by an authenticated identity
type UserRole string

const (
	UserRoleAdmin   UserRole = "admin"
	UserRoleCashier UserRole = "cashier"
)

// IsValid reports whether r is a known role
func (r UserRole) IsValid() bool {
	return r == UserRoleAdmin || r == UserRoleCashier
}
