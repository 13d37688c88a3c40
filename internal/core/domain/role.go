package domain

// Role is the global authorization level attached to an identity. The
// identity provider's role claim is the authoritative copy; profiles mirror
// it for querying.
type Role string

const (
	RolePatient   Role = "patient"
	RoleStaff     Role = "staff"
	RoleDeptAdmin Role = "dept_admin"
	RoleCofounder Role = "cofounder"
	RoleFounder   Role = "founder"
)

// roleLevels orders the hierarchy. Comparisons must go through Level/AtLeast;
// lexical comparison of role strings is meaningless.
var roleLevels = map[Role]int{
	RolePatient:   1,
	RoleStaff:     2,
	RoleDeptAdmin: 3,
	RoleCofounder: 4,
	RoleFounder:   5,
}

// Level returns the numeric rank of r. Unknown roles rank 0 and therefore
// fail every AtLeast check against a defined role.
func (r Role) Level() int {
	return roleLevels[r]
}

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	return roleLevels[r] > 0
}

// AtLeast reports whether r ranks at or above minimum in the hierarchy.
func (r Role) AtLeast(minimum Role) bool {
	return r.Level() >= minimum.Level()
}

// AllRoles lists the defined roles from lowest to highest level.
func AllRoles() []Role {
	return []Role{RolePatient, RoleStaff, RoleDeptAdmin, RoleCofounder, RoleFounder}
}
