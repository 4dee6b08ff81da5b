package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"

	"student-manager-api/internal/domain/apperror"
	"student-manager-api/internal/domain/user"
	"student-manager-api/internal/infrastructure/db/postgres"
)

const constraintEmail = "users_email_active_key"

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) user.Repository {
	return &Repository{db: db}
}

func scanUser(row pgx.Row) (*User, error) {
	u := new(User)
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Role,

		&u.CreatedAt,
		&u.UpdatedAt,
		&u.DeletedAt,
	)
	return u, err
}

// fetchOne maps pgx.ErrNoRows to nil, nil.
func fetchOne(row pgx.Row) (*user.User, error) {
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(u), nil
}

func (r *Repository) FetchAll(ctx context.Context, limit, offset int) (user.Users, int, error) {
	var (
		us    Users
		total int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.db.QueryRow(gctx, CountUsers).Scan(&total)
	})
	g.Go(func() error {
		rows, err := r.db.Query(gctx, SelectUsers, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			u, err := scanUser(rows)
			if err != nil {
				return err
			}
			us = append(us, u)
		}
		return rows.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, 0, fmt.Errorf("fetch users: %w", err)
	}

	return fromDBModels(us), total, nil
}

func (r *Repository) FetchByID(ctx context.Context, id user.UUID) (*user.User, error) {
	return fetchOne(r.db.QueryRow(ctx, SelectUserByID, id))
}

func (r *Repository) FetchByEmail(ctx context.Context, email string) (*user.User, error) {
	return fetchOne(r.db.QueryRow(ctx, SelectUserByEmail, email))
}

func (r *Repository) EmailExists(ctx context.Context, email string, excludeID user.UUID) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, SelectEmailExists, email, excludeID).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

func (r *Repository) Create(ctx context.Context, req user.User) (*user.User, error) {
	u, err := scanUser(r.db.QueryRow(
		ctx,
		InsertUser,
		req.Name, req.Email, req.PasswordHash, string(req.Role),
	))
	if err != nil {
		if c, ok := postgres.UniqueViolation(err); ok && c == constraintEmail {
			return nil, apperror.Conflict("User", "email", req.Email)
		}
		return nil, err
	}

	return fromDBModel(u), nil
}

func (r *Repository) UpdateProfile(ctx context.Context, id user.UUID, upd user.ProfileUpdate) (*user.User, error) {
	u, err := fetchOne(r.db.QueryRow(ctx, UpdateUserProfile, upd.Name, upd.Email, id))
	if err != nil {
		if c, ok := postgres.UniqueViolation(err); ok && c == constraintEmail && upd.Email != nil {
			return nil, apperror.Conflict("User", "email", *upd.Email)
		}
		return nil, err
	}

	return u, nil
}

func (r *Repository) UpdatePassword(ctx context.Context, id user.UUID, hash string) error {
	tag, err := r.db.Exec(ctx, UpdateUserPassword, hash, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("User", id.String())
	}

	return nil
}

func (r *Repository) UpdateRole(ctx context.Context, id user.UUID, role user.Role) (*user.User, error) {
	return fetchOne(r.db.QueryRow(ctx, UpdateUserRole, string(role), id))
}

func (r *Repository) Delete(ctx context.Context, id user.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, SoftDeleteUser, id)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() > 0, nil
}
