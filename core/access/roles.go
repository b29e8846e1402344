package access

// Role is one of the 8 fixed association roles. The string values double as
// the stored/wire representation and must not change.
type Role string

const (
	RoleAdmin     Role = "Admin"
	RolePresident Role = "President"
	RoleSecretary Role = "Secretary"
	RoleTreasurer Role = "Treasurer"
	RoleAuditor   Role = "Auditor"
	RolePIO       Role = "Public Information Officer"
	RoleBoard     Role = "Board of Directors"
	RoleMember    Role = "Member"
)

var AllRoles = []Role{
	RoleAdmin,
	RolePresident,
	RoleSecretary,
	RoleTreasurer,
	RoleAuditor,
	RolePIO,
	RoleBoard,
	RoleMember,
}

// IsValidRole reports whether r is one of the known roles.
func IsValidRole(r Role) bool {
	for _, role := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

func (r Role) String() string { return string(r) }
