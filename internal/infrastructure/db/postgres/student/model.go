package student

import (
	"time"

	"github.com/google/uuid"
)

type (
	Student struct {
		ID    uuid.UUID
		Name  string
		Email string
		RA    string
		CPF   string

		CreatedAt time.Time
		UpdatedAt time.Time
		DeletedAt *time.Time
	}
	Students []*Student

	UserAction struct {
		ID        int64
		UserID    uuid.UUID
		StudentID uuid.UUID
		Action    string
		CreatedAt time.Time
	}
	UserActions []*UserAction
)
