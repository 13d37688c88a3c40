package ports

import (
	"context"

	"github.com/carebridge/care-platform/internal/core/domain"
)

// DepartmentPatch carries optional field updates; nil means unchanged.
type DepartmentPatch struct {
	Name        *string
	Description *string
}

// DepartmentRepository persists departments and their admin-id cache.
type DepartmentRepository interface {
	Create(ctx context.Context, dept *domain.Department) (*domain.Department, error)
	FindByID(ctx context.Context, id string) (*domain.Department, error)
	List(ctx context.Context, page, limit int) ([]domain.Department, int64, error)
	Update(ctx context.Context, id string, patch DepartmentPatch) (*domain.Department, error)
	Delete(ctx context.Context, id string) error

	// AddAdminUID appends uid to the admin-id cache if not already present.
	// Must be atomic with respect to concurrent adds for the same
	// department (set-add semantics, not read-modify-write).
	AddAdminUID(ctx context.Context, id, uid string) error

	// RemoveAdminUID removes uid from the admin-id cache if present, with
	// the same atomicity requirement.
	RemoveAdminUID(ctx context.Context, id, uid string) error
}

// DepartmentMemberRepository persists the per-department roster.
type DepartmentMemberRepository interface {
	Create(ctx context.Context, member *domain.DepartmentMember) (*domain.DepartmentMember, error)
	Find(ctx context.Context, departmentID, uid string) (*domain.DepartmentMember, error)
	List(ctx context.Context, departmentID string, page, limit int) ([]domain.DepartmentMember, int64, error)
	UpdateRole(ctx context.Context, departmentID, uid string, role domain.MemberRole) (*domain.DepartmentMember, error)
	Delete(ctx context.Context, departmentID, uid string) error
}
