package models

// Role is the kind of platform account.
type Role string

const (
	RoleStudent       Role = "STUDENT"
	RoleProfessor     Role = "PROFESSOR"
	RoleAdministrator Role = "ADMINISTRATOR"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleProfessor, RoleAdministrator:
		return true
	}
	return false
}

// Moderatable reports whether accounts with this role may be the target of
// suspend, strike or reactivate operations.
func (r Role) Moderatable() bool {
	switch r {
	case RoleStudent, RoleProfessor:
		return true
	case RoleAdministrator:
		return false
	}
	return false
}

// CanModerate reports whether accounts with this role may act as moderators.
func (r Role) CanModerate() bool {
	switch r {
	case RoleAdministrator:
		return true
	case RoleStudent, RoleProfessor:
		return false
	}
	return false
}
