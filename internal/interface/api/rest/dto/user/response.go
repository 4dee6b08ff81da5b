package user

import (
	"time"

	"github.com/google/uuid"

	"student-manager-api/internal/interface/api/rest/dto"
)

type (
	User struct {
		ID        uuid.UUID `json:"id"`
		Name      string    `json:"name"`
		Email     string    `json:"email"`
		Role      string    `json:"role"`
		CreatedAt time.Time `json:"createdAt"`
		UpdatedAt time.Time `json:"updatedAt"`
	}
	Users        []User
	ListResponse struct {
		Users      Users          `json:"users"`
		Pagination dto.Pagination `json:"pagination"`
	}
)
