package user

import (
	"context"
)

// Repository returns nil, nil from the Fetch methods when the user does not
// exist or is soft-deleted.
type Repository interface {
	FetchByID(ctx context.Context, id UUID) (*User, error)
	FetchByEmail(ctx context.Context, email string) (*User, error)
	FetchAll(ctx context.Context, limit, offset int) (Users, int, error)
	EmailExists(ctx context.Context, email string, excludeID UUID) (bool, error)
	Create(ctx context.Context, u User) (*User, error)
	UpdateProfile(ctx context.Context, id UUID, upd ProfileUpdate) (*User, error)
	UpdatePassword(ctx context.Context, id UUID, hash string) error
	UpdateRole(ctx context.Context, id UUID, role Role) (*User, error)
	Delete(ctx context.Context, id UUID) (bool, error)
}
