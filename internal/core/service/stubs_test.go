package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/carebridge/care-platform/internal/core/domain"
	"github.com/carebridge/care-platform/internal/core/ports"
)

// In-memory fakes shared by the service tests.

type stubIdentity struct {
	mu         sync.Mutex
	identities map[string]*domain.Identity
	claimCalls []string
	deleted    []string
	lookupErr  error
	claimErr   error
	createErr  error
}

func newStubIdentity() *stubIdentity {
	return &stubIdentity{identities: make(map[string]*domain.Identity)}
}

func (f *stubIdentity) add(ident *domain.Identity) {
	f.identities[ident.UID] = ident
}

func (f *stubIdentity) VerifyToken(_ context.Context, token string) (*ports.AuthClaims, error) {
	ident, ok := f.identities[token]
	if !ok {
		return nil, fmt.Errorf("%w: invalid token", domain.ErrIdentityProvider)
	}
	return &ports.AuthClaims{UID: ident.UID, Email: ident.Email, Role: ident.Role}, nil
}

func (f *stubIdentity) Lookup(_ context.Context, uid string) (*domain.Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	ident, ok := f.identities[uid]
	if !ok {
		return nil, fmt.Errorf("%w: no identity for uid %s", domain.ErrIdentityProvider, uid)
	}
	clone := *ident
	return &clone, nil
}

func (f *stubIdentity) SetRoleClaim(_ context.Context, uid string, role domain.Role) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.claimErr != nil {
		return f.claimErr
	}
	f.claimCalls = append(f.claimCalls, uid+":"+string(role))
	if ident, ok := f.identities[uid]; ok {
		ident.Role = role
	} else {
		f.identities[uid] = &domain.Identity{UID: uid, Role: role}
	}
	return nil
}

func (f *stubIdentity) CreateIdentity(_ context.Context, email, _, displayName string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return "", f.createErr
	}
	uid := fmt.Sprintf("uid-%d", len(f.identities)+1)
	f.identities[uid] = &domain.Identity{UID: uid, Email: email, DisplayName: displayName}
	return uid, nil
}

func (f *stubIdentity) DeleteIdentity(_ context.Context, uid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.identities, uid)
	f.deleted = append(f.deleted, uid)
	return nil
}

func (f *stubIdentity) PasswordResetLink(_ context.Context, _ string) (string, error) {
	return "https://example.test/reset", nil
}

type stubTokens struct {
	signInErr error
	sendErr   error
}

func (f *stubTokens) SignInWithPassword(_ context.Context, _, _ string) (string, string, error) {
	if f.signInErr != nil {
		return "", "", f.signInErr
	}
	return "id-token", "refresh-token", nil
}

func (f *stubTokens) SendVerificationEmail(_ context.Context, _ string) error {
	return f.sendErr
}

func (f *stubTokens) RefreshToken(_ context.Context, _ string) (*ports.RefreshResult, error) {
	return &ports.RefreshResult{IDToken: "id-token"}, nil
}

type stubProfiles struct {
	mu        sync.Mutex
	profiles  map[string]*domain.Profile
	createErr error
	upsertErr error
	setErr    error
}

func newStubProfiles() *stubProfiles {
	return &stubProfiles{profiles: make(map[string]*domain.Profile)}
}

func cloneProfile(p *domain.Profile) *domain.Profile {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (f *stubProfiles) FindByUID(_ context.Context, uid string) (*domain.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[uid]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return cloneProfile(p), nil
}

func (f *stubProfiles) Create(_ context.Context, profile *domain.Profile) (*domain.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, exists := f.profiles[profile.UID]; exists {
		return nil, domain.ErrDuplicateProfile
	}
	clone := cloneProfile(profile)
	clone.ID = profile.UID
	f.profiles[profile.UID] = cloneProfile(clone)
	return clone, nil
}

func (f *stubProfiles) Upsert(_ context.Context, profile *domain.Profile) (*domain.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upsertErr != nil {
		return nil, f.upsertErr
	}
	clone := cloneProfile(profile)
	clone.ID = profile.UID
	f.profiles[profile.UID] = cloneProfile(clone)
	return clone, nil
}

func (f *stubProfiles) SetRole(_ context.Context, uid string, role domain.Role) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	p, ok := f.profiles[uid]
	if !ok {
		return domain.ErrProfileNotFound
	}
	p.Role = role
	return nil
}

func (f *stubProfiles) SetEmailVerified(_ context.Context, uid string, verified bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[uid]
	if !ok {
		return domain.ErrProfileNotFound
	}
	p.EmailVerified = verified
	return nil
}

type stubInvitations struct {
	mu          sync.Mutex
	invitations map[string]*domain.Invitation
}

func newStubInvitations() *stubInvitations {
	return &stubInvitations{invitations: make(map[string]*domain.Invitation)}
}

func (f *stubInvitations) Create(_ context.Context, inv *domain.Invitation) (*domain.Invitation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *inv
	clone.ID = inv.TokenHash
	f.invitations[inv.TokenHash] = &clone
	out := clone
	return &out, nil
}

func (f *stubInvitations) FindByHash(_ context.Context, tokenHash string) (*domain.Invitation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	inv, ok := f.invitations[tokenHash]
	if !ok {
		return nil, domain.ErrInvitationNotFound
	}
	clone := *inv
	return &clone, nil
}

func (f *stubInvitations) ConsumeByHash(_ context.Context, tokenHash string) (*domain.Invitation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	inv, ok := f.invitations[tokenHash]
	if !ok {
		return nil, domain.ErrInvitationNotFound
	}
	delete(f.invitations, tokenHash)
	clone := *inv
	return &clone, nil
}

type stubAllowlist struct {
	mu      sync.Mutex
	entries map[string]*domain.AllowedEmail
}

func newStubAllowlist() *stubAllowlist {
	return &stubAllowlist{entries: make(map[string]*domain.AllowedEmail)}
}

func (f *stubAllowlist) FindByEmail(_ context.Context, email string) (*domain.AllowedEmail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry, ok := f.entries[email]
	if !ok {
		return nil, domain.ErrAllowedEmailNotFound
	}
	clone := *entry
	return &clone, nil
}

func (f *stubAllowlist) List(_ context.Context) ([]domain.AllowedEmail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.AllowedEmail, 0, len(f.entries))
	for _, e := range f.entries {
		out = append(out, *e)
	}
	return out, nil
}

func (f *stubAllowlist) Create(_ context.Context, entry *domain.AllowedEmail) (*domain.AllowedEmail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.entries[entry.Email]; exists {
		return nil, domain.ErrDuplicateAllowedEmail
	}
	clone := *entry
	clone.ID = entry.Email
	f.entries[entry.Email] = &clone
	out := clone
	return &out, nil
}

func (f *stubAllowlist) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for email, e := range f.entries {
		if e.ID == id {
			delete(f.entries, email)
			return nil
		}
	}
	return domain.ErrAllowedEmailNotFound
}

type stubDepartments struct {
	mu    sync.Mutex
	depts map[string]*domain.Department
	next  int
}

func newStubDepartments() *stubDepartments {
	return &stubDepartments{depts: make(map[string]*domain.Department)}
}

func cloneDepartment(d *domain.Department) *domain.Department {
	clone := *d
	clone.AdminUIDs = append([]string(nil), d.AdminUIDs...)
	return &clone
}

func (f *stubDepartments) Create(_ context.Context, dept *domain.Department) (*domain.Department, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range f.depts {
		if d.Name == dept.Name {
			return nil, domain.ErrDuplicateDepartment
		}
	}
	f.next++
	clone := cloneDepartment(dept)
	clone.ID = fmt.Sprintf("dept-%d", f.next)
	f.depts[clone.ID] = cloneDepartment(clone)
	return clone, nil
}

func (f *stubDepartments) FindByID(_ context.Context, id string) (*domain.Department, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.depts[id]
	if !ok {
		return nil, domain.ErrDepartmentNotFound
	}
	return cloneDepartment(d), nil
}

func (f *stubDepartments) List(_ context.Context, _, _ int) ([]domain.Department, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Department, 0, len(f.depts))
	for _, d := range f.depts {
		out = append(out, *cloneDepartment(d))
	}
	return out, int64(len(out)), nil
}

func (f *stubDepartments) Update(_ context.Context, id string, patch ports.DepartmentPatch) (*domain.Department, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.depts[id]
	if !ok {
		return nil, domain.ErrDepartmentNotFound
	}
	if patch.Name != nil {
		d.Name = *patch.Name
	}
	if patch.Description != nil {
		d.Description = *patch.Description
	}
	return cloneDepartment(d), nil
}

func (f *stubDepartments) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.depts[id]; !ok {
		return domain.ErrDepartmentNotFound
	}
	delete(f.depts, id)
	return nil
}

func (f *stubDepartments) AddAdminUID(_ context.Context, id, uid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.depts[id]
	if !ok {
		return domain.ErrDepartmentNotFound
	}
	for _, existing := range d.AdminUIDs {
		if existing == uid {
			return nil
		}
	}
	d.AdminUIDs = append(d.AdminUIDs, uid)
	return nil
}

func (f *stubDepartments) RemoveAdminUID(_ context.Context, id, uid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.depts[id]
	if !ok {
		return domain.ErrDepartmentNotFound
	}
	kept := d.AdminUIDs[:0]
	for _, existing := range d.AdminUIDs {
		if existing != uid {
			kept = append(kept, existing)
		}
	}
	d.AdminUIDs = kept
	return nil
}

type stubMembers struct {
	mu      sync.Mutex
	members map[string]*domain.DepartmentMember
}

func newStubMembers() *stubMembers {
	return &stubMembers{members: make(map[string]*domain.DepartmentMember)}
}

func memberKey(departmentID, uid string) string {
	return departmentID + "/" + uid
}

func (f *stubMembers) Create(_ context.Context, member *domain.DepartmentMember) (*domain.DepartmentMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := memberKey(member.DepartmentID, member.UID)
	if _, exists := f.members[key]; exists {
		return nil, domain.ErrDuplicateMember
	}
	clone := *member
	clone.ID = key
	f.members[key] = &clone
	out := clone
	return &out, nil
}

func (f *stubMembers) Find(_ context.Context, departmentID, uid string) (*domain.DepartmentMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.members[memberKey(departmentID, uid)]
	if !ok {
		return nil, domain.ErrMemberNotFound
	}
	clone := *m
	return &clone, nil
}

func (f *stubMembers) List(_ context.Context, departmentID string, _, _ int) ([]domain.DepartmentMember, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.DepartmentMember, 0)
	for _, m := range f.members {
		if m.DepartmentID == departmentID {
			out = append(out, *m)
		}
	}
	return out, int64(len(out)), nil
}

func (f *stubMembers) UpdateRole(_ context.Context, departmentID, uid string, role domain.MemberRole) (*domain.DepartmentMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.members[memberKey(departmentID, uid)]
	if !ok {
		return nil, domain.ErrMemberNotFound
	}
	m.Role = role
	clone := *m
	return &clone, nil
}

func (f *stubMembers) Delete(_ context.Context, departmentID, uid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := memberKey(departmentID, uid)
	if _, ok := f.members[key]; !ok {
		return domain.ErrMemberNotFound
	}
	delete(f.members, key)
	return nil
}

type stubCounters struct {
	mu   sync.Mutex
	seqs map[string]int64
}

func newStubCounters() *stubCounters {
	return &stubCounters{seqs: make(map[string]int64)}
}

func (f *stubCounters) Next(_ context.Context, key string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seqs[key]++
	return f.seqs[key], nil
}

type stubPatients struct {
	mu      sync.Mutex
	records map[string]*domain.PatientRecord
}

func newStubPatients() *stubPatients {
	return &stubPatients{records: make(map[string]*domain.PatientRecord)}
}

func applyPatientPatch(record *domain.PatientRecord, patch ports.PatientPatch) {
	if patch.FirstName != nil {
		record.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		record.LastName = *patch.LastName
	}
	if patch.Bio != nil {
		record.Bio = *patch.Bio
	}
	if patch.EmergencyContact != nil {
		record.EmergencyContact = *patch.EmergencyContact
	}
}

func (f *stubPatients) FindByUID(_ context.Context, uid string) (*domain.PatientRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.records[uid]
	if !ok {
		return nil, domain.ErrPatientNotFound
	}
	clone := *r
	return &clone, nil
}

func (f *stubPatients) Upsert(_ context.Context, record *domain.PatientRecord, patch ports.PatientPatch) (*domain.PatientRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.records[record.UID]
	if !ok {
		clone := *record
		clone.ID = record.UID
		existing = &clone
		f.records[record.UID] = existing
	} else {
		existing.Email = record.Email
		existing.FirstName = record.FirstName
		existing.LastName = record.LastName
	}
	if patch.Bio != nil {
		existing.Bio = *patch.Bio
	}
	if patch.EmergencyContact != nil {
		existing.EmergencyContact = *patch.EmergencyContact
	}
	clone := *existing
	return &clone, nil
}

func (f *stubPatients) Patch(_ context.Context, uid string, patch ports.PatientPatch) (*domain.PatientRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.records[uid]
	if !ok {
		return nil, domain.ErrPatientNotFound
	}
	applyPatientPatch(r, patch)
	clone := *r
	return &clone, nil
}
