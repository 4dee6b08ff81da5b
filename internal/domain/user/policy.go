package user

import "student-manager-api/internal/domain/apperror"

// Policy decides what a principal may do to user accounts. With roles
// disabled every account is treated alike: only self-scoped profile
// operations pass and account deletion or role changes are never allowed.
type Policy struct {
	rolesEnabled bool
}

func NewPolicy(rolesEnabled bool) Policy { return Policy{rolesEnabled: rolesEnabled} }

func (p Policy) RolesEnabled() bool { return p.rolesEnabled }

func (p Policy) isSuperAdmin(pr Principal) bool {
	return p.rolesEnabled && pr.Role == RoleSuperAdmin
}

func (p Policy) CanListUsers(pr Principal) error {
	if p.rolesEnabled && !pr.Role.Valid() {
		return apperror.Authorization("Only admins can view all users")
	}
	return nil
}

// CanMutateStudents allows any authenticated account to write student records.
func (p Policy) CanMutateStudents(pr Principal) error {
	if pr.ID == (UUID{}) {
		return apperror.Authentication("")
	}
	return nil
}

func (p Policy) CanViewProfile(pr Principal, target UUID) error {
	if pr.ID == target {
		return nil
	}
	if p.rolesEnabled && (pr.Role == RoleAdmin || pr.Role == RoleSuperAdmin) {
		return nil
	}
	return apperror.Authorization("You can only view your own profile")
}

func (p Policy) CanUpdateProfile(pr Principal, target UUID) error {
	if pr.ID == target || p.isSuperAdmin(pr) {
		return nil
	}
	return apperror.Authorization("You can only update your own profile")
}

// CanChangePassword has no admin override; the caller must also verify the
// current password.
func (p Policy) CanChangePassword(pr Principal, target UUID) error {
	if pr.ID == target {
		return nil
	}
	return apperror.Authorization("You can only change your own password")
}

func (p Policy) CanDeleteUser(pr Principal, target UUID) error {
	if !p.isSuperAdmin(pr) {
		return apperror.Authorization("Only super admins can delete users")
	}
	if pr.ID == target {
		return apperror.Authorization("You cannot delete your own account")
	}
	return nil
}

func (p Policy) CanChangeRole(pr Principal, target UUID) error {
	if !p.isSuperAdmin(pr) {
		return apperror.Authorization("Only super admins can change user roles")
	}
	if pr.ID == target {
		return apperror.Authorization("You cannot change your own role")
	}
	return nil
}
