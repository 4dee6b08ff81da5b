package student

import (
	"context"
)

type UniqueField string

const (
	FieldRA    UniqueField = "ra"
	FieldCPF   UniqueField = "cpf"
	FieldEmail UniqueField = "email"
)

// Repository hides soft-deleted rows from every read. Mutations append their
// audit row in the same transaction as the change.
type Repository interface {
	Create(ctx context.Context, s Student, actorID UUID) (*Student, error)
	FetchByID(ctx context.Context, id UUID) (*Student, error)
	Update(ctx context.Context, id UUID, upd Update, actorID UUID) (*Student, error)
	Delete(ctx context.Context, id UUID, actorID UUID) (bool, error)
	List(ctx context.Context, f Filter, p Page) (Students, int, error)
	Exists(ctx context.Context, field UniqueField, value string, excludeID UUID) (bool, error)
	FetchActions(ctx context.Context, studentID UUID) (UserActions, error)
	// Known reports whether id was ever created, soft-deleted or not.
	Known(ctx context.Context, id UUID) (bool, error)
}
