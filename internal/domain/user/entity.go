package user

type Role string

const (
	RoleOwner    Role = "owner"    // Company owner - full access
	RoleManager  Role = "manager"  // Assigns and reviews tasks, sees team attendance
	RoleEmployee Role = "employee" // Regular employee
	RolePending  Role = "pending"  // Still in onboarding
)

// Claims is the identity carried by an HRIS access token
type Claims struct {
	UserID     string
	Email      string
	EmployeeID string
	CompanyID  string
	Role       Role
}

// IsManager checks if the caller is manager or owner
func (c Claims) IsManager() bool {
	return c.Role == RoleManager || c.Role == RoleOwner
}

// Can checks the caller's role against a permission
func (c Claims) Can(permission Permission) bool {
	return HasPermission(c.Role, permission)
}
