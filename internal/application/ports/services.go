package ports

import (
	"context"

	"student-manager-api/internal/domain/student"
	"student-manager-api/internal/domain/user"
)

type (
	RegisterInput struct {
		Name     string
		Email    string
		Password string
	}
	AuthResult struct {
		Token string
		User  *user.User
	}
	PasswordChange struct {
		CurrentPassword string
		NewPassword     string
		ConfirmPassword string
	}
	UserList struct {
		Users      user.Users
		Page       int
		Limit      int
		Total      int
		TotalPages int
	}
)

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Me(ctx context.Context, pr user.Principal) (user.Principal, error)
}

type UserService interface {
	FindAll(ctx context.Context, pr user.Principal, page, limit int) (*UserList, error)
	Profile(ctx context.Context, pr user.Principal, id user.UUID) (*user.User, error)
	UpdateProfile(ctx context.Context, pr user.Principal, id user.UUID, upd user.ProfileUpdate) (*user.User, error)
	ChangePassword(ctx context.Context, pr user.Principal, id user.UUID, in PasswordChange) error
	ChangeRole(ctx context.Context, pr user.Principal, id user.UUID, role user.Role) (*user.User, error)
	Delete(ctx context.Context, pr user.Principal, id user.UUID) error
}

type StudentService interface {
	Create(ctx context.Context, pr user.Principal, s student.Student) (*student.Student, error)
	FindByID(ctx context.Context, id student.UUID) (*student.Student, error)
	Update(ctx context.Context, pr user.Principal, id student.UUID, upd student.Update) (*student.Student, error)
	Delete(ctx context.Context, pr user.Principal, id student.UUID) error
	List(ctx context.Context, f student.Filter, p student.Page) (*student.ListResult, error)
	History(ctx context.Context, id student.UUID) (student.UserActions, error)
}
