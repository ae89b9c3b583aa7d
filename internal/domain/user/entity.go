package user

import "time"

type Role string

const (
	RoleAdmin      Role = "ADMIN"      // Company administrator - full access
	RoleManager    Role = "MANAGER"    // Can run attendance actions for other users
	RoleSupervisor Role = "SUPERVISOR" // Shift supervisor - same attendance powers as manager
	RoleEmployee   Role = "EMPLOYEE"   // Regular employee
)

type User struct {
	ID           string
	CompanyID    string
	DepartmentID *string
	Email        string
	FullName     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsManagerTier reports whether the role may act on other users' attendance.
func (r Role) IsManagerTier() bool {
	return r == RoleAdmin || r == RoleManager || r == RoleSupervisor
}

// IsAdmin checks if user can manage company settings
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanActOnOthers checks if user can submit attendance actions for someone else
func (u *User) CanActOnOthers() bool {
	return u.Role.IsManagerTier()
}
