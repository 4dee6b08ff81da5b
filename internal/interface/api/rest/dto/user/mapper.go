package user

import (
	"strings"

	"student-manager-api/internal/application/ports"
	"student-manager-api/internal/domain/user"
	"student-manager-api/internal/interface/api/rest/dto"
	"student-manager-api/internal/interface/api/rest/validator"
)

func ToResponseUser(uDomain user.User) User {
	return User{
		ID:        uDomain.UUID,
		Name:      uDomain.Name,
		Email:     uDomain.Email,
		Role:      string(uDomain.Role),
		CreatedAt: uDomain.CreatedAt,
		UpdatedAt: uDomain.UpdatedAt,
	}
}

func ToResponseUsers(usDomain user.Users) Users {
	us := make(Users, len(usDomain))
	for idx, u := range usDomain {
		us[idx] = ToResponseUser(*u)
	}

	return us
}

func ToListResponse(l *ports.UserList) ListResponse {
	return ListResponse{
		Users: ToResponseUsers(l.Users),
		Pagination: dto.Pagination{
			Page:       l.Page,
			Limit:      l.Limit,
			Total:      l.Total,
			TotalPages: l.TotalPages,
		},
	}
}

// Normalize trims the request in place before validation.
func (r *UpdateProfileRequest) Normalize() {
	if r.Name != nil {
		n := validator.NormalizeName(*r.Name)
		r.Name = &n
	}
	if r.Email != nil {
		e := strings.TrimSpace(*r.Email)
		r.Email = &e
	}
}

// Passwords are compared byte for byte, so they are left untouched.
func (r *ChangePasswordRequest) Normalize() {}

func (r *ChangeRoleRequest) Normalize() {
	r.Role = strings.ToUpper(strings.TrimSpace(r.Role))
}

func (r UpdateProfileRequest) ToDomain() user.ProfileUpdate {
	return user.ProfileUpdate{Name: r.Name, Email: r.Email}
}

func (r ChangePasswordRequest) ToPorts() ports.PasswordChange {
	return ports.PasswordChange{
		CurrentPassword: r.CurrentPassword,
		NewPassword:     r.NewPassword,
		ConfirmPassword: r.ConfirmPassword,
	}
}
