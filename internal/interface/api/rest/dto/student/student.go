package student

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"student-manager-api/internal/domain/student"
	"student-manager-api/internal/interface/api/rest/dto"
	"student-manager-api/internal/interface/api/rest/validator"
	"student-manager-api/pkg/cpf"
)

type (
	CreateRequest struct {
		Name  string `json:"name" validate:"required,min=2,max=100,personname"`
		Email string `json:"email" validate:"required,email,max=255"`
		RA    string `json:"ra" validate:"required,ra"`
		CPF   string `json:"cpf" validate:"required,cpf"`
	}
	UpdateRequest struct {
		Name  *string `json:"name" validate:"omitempty,min=2,max=100,personname"`
		Email *string `json:"email" validate:"omitempty,email,max=255"`
	}

	Student struct {
		ID        uuid.UUID `json:"id"`
		Name      string    `json:"name"`
		Email     string    `json:"email"`
		RA        string    `json:"ra"`
		CPF       string    `json:"cpf"`
		CreatedAt time.Time `json:"createdAt"`
		UpdatedAt time.Time `json:"updatedAt"`
	}
	ListResponse struct {
		Students   []Student      `json:"students"`
		Pagination dto.Pagination `json:"pagination"`
	}
	Action struct {
		ID        int64     `json:"id"`
		UserID    uuid.UUID `json:"userId"`
		StudentID uuid.UUID `json:"studentId"`
		Action    string    `json:"action"`
		CreatedAt time.Time `json:"createdAt"`
	}
)

func (r *CreateRequest) Normalize() {
	r.Name = validator.NormalizeName(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.RA = strings.TrimSpace(r.RA)
	r.CPF = strings.TrimSpace(r.CPF)
}

func (r *UpdateRequest) Normalize() {
	if r.Name != nil {
		n := validator.NormalizeName(*r.Name)
		r.Name = &n
	}
	if r.Email != nil {
		e := strings.TrimSpace(*r.Email)
		r.Email = &e
	}
}

func (r CreateRequest) ToDomain() student.Student {
	return student.Student{
		Name:  r.Name,
		Email: r.Email,
		RA:    r.RA,
		CPF:   cpf.Clean(r.CPF),
	}
}

func (r UpdateRequest) ToDomain() student.Update {
	return student.Update{Name: r.Name, Email: r.Email}
}

func ToResponseStudent(s student.Student) Student {
	return Student{
		ID:        s.UUID,
		Name:      s.Name,
		Email:     s.Email,
		RA:        s.RA,
		CPF:       s.CPF,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func ToListResponse(res *student.ListResult) ListResponse {
	ss := make([]Student, len(res.Students))
	for idx, s := range res.Students {
		ss[idx] = ToResponseStudent(*s)
	}

	return ListResponse{
		Students: ss,
		Pagination: dto.Pagination{
			Page:       res.Page,
			Limit:      res.Limit,
			Total:      res.Total,
			TotalPages: res.TotalPages,
		},
	}
}

func ToResponseActions(as student.UserActions) []Action {
	out := make([]Action, len(as))
	for idx, a := range as {
		out[idx] = Action{
			ID:        a.ID,
			UserID:    a.UserID,
			StudentID: a.StudentID,
			Action:    string(a.Action),
			CreatedAt: a.CreatedAt,
		}
	}

	return out
}
