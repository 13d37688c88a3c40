package domain

import "time"

// MemberRole is the role a member holds within one department, independent of
// their global role.
type MemberRole string

const (
	MemberRoleAdmin MemberRole = "admin"
	MemberRoleStaff MemberRole = "staff"
)

// Valid reports whether m is a defined member role.
func (m MemberRole) Valid() bool {
	return m == MemberRoleAdmin || m == MemberRoleStaff
}

// Department groups staff under a named unit. AdminUIDs is a denormalized
// cache of the members holding the admin role; it must equal the set of admin
// rows in the member roster after every roster mutation.
type Department struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	CreatedBy   string    `json:"created_by" bson:"created_by"`
	AdminUIDs   []string  `json:"admin_uids" bson:"admin_uids"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// HasAdmin reports whether uid is in the department's admin-id cache.
func (d *Department) HasAdmin(uid string) bool {
	for _, id := range d.AdminUIDs {
		if id == uid {
			return true
		}
	}
	return false
}

// DepartmentMember is one row of a department roster, unique per
// (department, identity) pair.
type DepartmentMember struct {
	ID           string     `json:"id" bson:"_id,omitempty"`
	DepartmentID string     `json:"department_id" bson:"department_id"`
	UID          string     `json:"uid" bson:"uid"`
	Role         MemberRole `json:"role" bson:"role"`
	CreatedBy    string     `json:"created_by" bson:"created_by"`
	CreatedAt    time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" bson:"updated_at"`
}
