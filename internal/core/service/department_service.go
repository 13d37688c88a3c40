package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/carebridge/care-platform/internal/core/domain"
	"github.com/carebridge/care-platform/internal/core/ports"
)

// DepartmentService manages departments, member rosters, and the admin-id
// cache on the department record. Roster mutations that change a member's
// role reconcile the cache with a second atomic set-add/set-remove write;
// a crash between the two leaves the cache stale until the next update for
// that member, a documented eventual-consistency window.
type DepartmentService struct {
	departments ports.DepartmentRepository
	members     ports.DepartmentMemberRepository
	counters    ports.CounterRepository
	casePrefix  string
	caseWidth   int
	logger      zerolog.Logger
}

func NewDepartmentService(
	departments ports.DepartmentRepository,
	members ports.DepartmentMemberRepository,
	counters ports.CounterRepository,
	casePrefix string,
	caseWidth int,
	logger zerolog.Logger,
) *DepartmentService {
	if casePrefix == "" {
		casePrefix = "DPT"
	}
	if caseWidth <= 0 {
		caseWidth = 5
	}
	return &DepartmentService{
		departments: departments,
		members:     members,
		counters:    counters,
		casePrefix:  casePrefix,
		caseWidth:   caseWidth,
		logger:      logger,
	}
}

func (s *DepartmentService) Create(ctx context.Context, actor ports.AuthClaims, name, description string) (*domain.Department, error) {
	dept, err := s.departments.Create(ctx, &domain.Department{
		Name:        name,
		Description: description,
		CreatedBy:   actor.UID,
		AdminUIDs:   []string{},
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("department_id", dept.ID).Str("name", name).Str("created_by", actor.UID).Msg("department created")
	return dept, nil
}

func (s *DepartmentService) Get(ctx context.Context, id string) (*domain.Department, error) {
	return s.departments.FindByID(ctx, id)
}

func (s *DepartmentService) List(ctx context.Context, page, limit int) (*ports.DepartmentPage, error) {
	page, limit = clampPage(page, limit)
	items, total, err := s.departments.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	return &ports.DepartmentPage{Items: items, Page: page, Limit: limit, Total: total}, nil
}

func (s *DepartmentService) Update(ctx context.Context, id string, patch ports.DepartmentPatch) (*domain.Department, error) {
	return s.departments.Update(ctx, id, patch)
}

func (s *DepartmentService) Delete(ctx context.Context, id string) error {
	return s.departments.Delete(ctx, id)
}

// authorize enforces the shared gate for department-scoped administration:
// the actor must hold one of the two top global roles or appear in the
// department's admin-id cache. A missing department fails NotFound before any
// Forbidden verdict.
func (s *DepartmentService) authorize(ctx context.Context, actor ports.AuthClaims, departmentID string) (*domain.Department, error) {
	dept, err := s.departments.FindByID(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	if actor.Role.AtLeast(domain.RoleCofounder) || dept.HasAdmin(actor.UID) {
		return dept, nil
	}
	return nil, fmt.Errorf("%w: department admin privileges required", domain.ErrForbidden)
}

// AddMember creates a roster row. Admin members are appended to the admin-id
// cache via an atomic set-add so concurrent adds for the same department
// never clobber each other.
func (s *DepartmentService) AddMember(ctx context.Context, actor ports.AuthClaims, departmentID, uid string, role domain.MemberRole) (*domain.DepartmentMember, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidRole, role)
	}
	dept, err := s.authorize(ctx, actor, departmentID)
	if err != nil {
		return nil, err
	}

	member, err := s.members.Create(ctx, &domain.DepartmentMember{
		DepartmentID: dept.ID,
		UID:          uid,
		Role:         role,
		CreatedBy:    actor.UID,
	})
	if err != nil {
		return nil, err
	}

	if role == domain.MemberRoleAdmin {
		if err := s.departments.AddAdminUID(ctx, dept.ID, uid); err != nil {
			s.logger.Error().Err(err).Str("department_id", dept.ID).Str("uid", uid).Msg("admin cache add failed, cache stale until next roster update")
			return nil, err
		}
	}

	s.logger.Info().Str("department_id", dept.ID).Str("uid", uid).Str("member_role", string(role)).Msg("member added")
	return member, nil
}

// UpdateMemberRole updates the roster row, then reconciles the admin-id
// cache: present for admin, absent for staff.
func (s *DepartmentService) UpdateMemberRole(ctx context.Context, actor ports.AuthClaims, departmentID, uid string, role domain.MemberRole) (*domain.DepartmentMember, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidRole, role)
	}
	dept, err := s.authorize(ctx, actor, departmentID)
	if err != nil {
		return nil, err
	}

	member, err := s.members.UpdateRole(ctx, dept.ID, uid, role)
	if err != nil {
		return nil, err
	}

	if role == domain.MemberRoleAdmin {
		err = s.departments.AddAdminUID(ctx, dept.ID, uid)
	} else {
		err = s.departments.RemoveAdminUID(ctx, dept.ID, uid)
	}
	if err != nil {
		s.logger.Error().Err(err).Str("department_id", dept.ID).Str("uid", uid).Msg("admin cache reconcile failed, cache stale until next roster update")
		return nil, err
	}

	s.logger.Info().Str("department_id", dept.ID).Str("uid", uid).Str("member_role", string(role)).Msg("member role updated")
	return member, nil
}

// RemoveMember deletes the roster row and drops the uid from the admin-id
// cache regardless of prior role.
func (s *DepartmentService) RemoveMember(ctx context.Context, actor ports.AuthClaims, departmentID, uid string) error {
	dept, err := s.authorize(ctx, actor, departmentID)
	if err != nil {
		return err
	}

	if err := s.members.Delete(ctx, dept.ID, uid); err != nil {
		return err
	}

	if err := s.departments.RemoveAdminUID(ctx, dept.ID, uid); err != nil {
		s.logger.Error().Err(err).Str("department_id", dept.ID).Str("uid", uid).Msg("admin cache removal failed, cache stale until next roster update")
		return err
	}

	s.logger.Info().Str("department_id", dept.ID).Str("uid", uid).Msg("member removed")
	return nil
}

func (s *DepartmentService) ListMembers(ctx context.Context, departmentID string, page, limit int) (*ports.MemberPage, error) {
	if _, err := s.departments.FindByID(ctx, departmentID); err != nil {
		return nil, err
	}
	page, limit = clampPage(page, limit)
	items, total, err := s.members.List(ctx, departmentID, page, limit)
	if err != nil {
		return nil, err
	}
	return &ports.MemberPage{Items: items, Page: page, Limit: limit, Total: total}, nil
}

// NextCaseNumber mints the department's next case identifier from the atomic
// per-department sequence.
func (s *DepartmentService) NextCaseNumber(ctx context.Context, actor ports.AuthClaims, departmentID string) (string, error) {
	dept, err := s.authorize(ctx, actor, departmentID)
	if err != nil {
		return "", err
	}

	seq, err := s.counters.Next(ctx, caseCounterKey(dept.ID))
	if err != nil {
		return "", err
	}

	number := FormatCaseNumber(s.casePrefix, time.Now().UTC().Year(), seq, s.caseWidth)
	s.logger.Info().Str("department_id", dept.ID).Str("case_number", number).Msg("case number issued")
	return number, nil
}

func caseCounterKey(departmentID string) string {
	return fmt.Sprintf("dept:%s:case", departmentID)
}

func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
