package student

import (
	"time"

	"github.com/google/uuid"
)

type Action string

const (
	ActionCreated Action = "CREATED"
	ActionUpdated Action = "UPDATED"
	ActionDeleted Action = "DELETED"
)

type (
	UUID    = uuid.UUID
	Student struct {
		UUID  UUID
		Name  string
		Email string
		RA    string
		CPF   string

		CreatedAt time.Time
		UpdatedAt time.Time
		DeletedAt *time.Time
	}
	Students []*Student

	// Update carries only the fields a caller may change; nil means untouched.
	Update struct {
		Name  *string
		Email *string
	}

	// UserAction is one append-only audit row.
	UserAction struct {
		ID        int64
		UserID    UUID
		StudentID UUID
		Action    Action
		CreatedAt time.Time
	}
	UserActions []*UserAction

	ListResult struct {
		Students   Students
		Page       int
		Limit      int
		Total      int
		TotalPages int
	}
)

func (u Update) Empty() bool { return u.Name == nil && u.Email == nil }
