package auth

import (
	"strings"

	"github.com/google/uuid"

	"student-manager-api/internal/application/ports"
	"student-manager-api/internal/domain/user"
	userDTO "student-manager-api/internal/interface/api/rest/dto/user"
	"student-manager-api/internal/interface/api/rest/validator"
)

type (
	RegisterRequest struct {
		Name     string `json:"name" validate:"required,min=2,max=100,personname"`
		Email    string `json:"email" validate:"required,email,max=255"`
		Password string `json:"password" validate:"required"`
	}
	LoginRequest struct {
		Email    string `json:"email" validate:"required,email,max=255"`
		Password string `json:"password" validate:"required"`
	}

	Response struct {
		Token string       `json:"token"`
		User  userDTO.User `json:"user"`
	}
	MeResponse struct {
		ID    uuid.UUID `json:"id"`
		Email string    `json:"email"`
		Role  string    `json:"role,omitempty"`
	}
)

func (r *RegisterRequest) Normalize() {
	r.Name = validator.NormalizeName(r.Name)
	r.Email = strings.TrimSpace(r.Email)
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
}

func (r RegisterRequest) ToPorts() ports.RegisterInput {
	return ports.RegisterInput{Name: r.Name, Email: r.Email, Password: r.Password}
}

func ToResponse(res *ports.AuthResult) Response {
	return Response{Token: res.Token, User: userDTO.ToResponseUser(*res.User)}
}

func ToMeResponse(pr user.Principal) MeResponse {
	return MeResponse{ID: pr.ID, Email: pr.Email, Role: string(pr.Role)}
}
