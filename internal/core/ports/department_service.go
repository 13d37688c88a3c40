package ports

import (
	"context"

	"github.com/carebridge/care-platform/internal/core/domain"
)

// DepartmentPage is one page of departments.
type DepartmentPage struct {
	Items []domain.Department `json:"items"`
	Page  int                 `json:"page"`
	Limit int                 `json:"limit"`
	Total int64               `json:"total"`
}

// MemberPage is one page of roster rows.
type MemberPage struct {
	Items []domain.DepartmentMember `json:"items"`
	Page  int                       `json:"page"`
	Limit int                       `json:"limit"`
	Total int64                     `json:"total"`
}

// DepartmentService manages departments, their rosters, and the per-department
// case-number sequence.
type DepartmentService interface {
	Create(ctx context.Context, actor AuthClaims, name, description string) (*domain.Department, error)
	Get(ctx context.Context, id string) (*domain.Department, error)
	List(ctx context.Context, page, limit int) (*DepartmentPage, error)
	Update(ctx context.Context, id string, patch DepartmentPatch) (*domain.Department, error)
	Delete(ctx context.Context, id string) error

	AddMember(ctx context.Context, actor AuthClaims, departmentID, uid string, role domain.MemberRole) (*domain.DepartmentMember, error)
	UpdateMemberRole(ctx context.Context, actor AuthClaims, departmentID, uid string, role domain.MemberRole) (*domain.DepartmentMember, error)
	RemoveMember(ctx context.Context, actor AuthClaims, departmentID, uid string) error
	ListMembers(ctx context.Context, departmentID string, page, limit int) (*MemberPage, error)

	// NextCaseNumber mints the department's next external-facing case
	// identifier.
	NextCaseNumber(ctx context.Context, actor AuthClaims, departmentID string) (string, error)
}
