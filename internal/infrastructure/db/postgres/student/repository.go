package student

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"

	"student-manager-api/internal/domain/student"
	"student-manager-api/internal/infrastructure/db/postgres"
)

var (
	// constraint name -> field label used in conflict messages
	uniqueConstraints = map[string]student.UniqueField{
		"students_ra_active_key":    student.FieldRA,
		"students_cpf_active_key":   student.FieldCPF,
		"students_email_active_key": student.FieldEmail,
	}

	errNoRow = errors.New("no row")
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) student.Repository {
	return &Repository{db: db}
}

func conflictFrom(err error, s student.Student) error {
	c, ok := postgres.UniqueViolation(err)
	if !ok {
		return err
	}
	field, ok := uniqueConstraints[c]
	if !ok {
		return err
	}

	switch field {
	case student.FieldRA:
		return student.ConflictError(field, s.RA)
	case student.FieldCPF:
		return student.ConflictError(field, s.CPF)
	default:
		return student.ConflictError(field, s.Email)
	}
}

func scanStudent(row pgx.Row) (*Student, error) {
	s := new(Student)
	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Email,
		&s.RA,
		&s.CPF,

		&s.CreatedAt,
		&s.UpdatedAt,
		&s.DeletedAt,
	)
	return s, err
}

func appendAction(ctx context.Context, tx pgx.Tx, actorID, studentID student.UUID, a student.Action) error {
	if _, err := tx.Exec(ctx, InsertUserAction, actorID, studentID, string(a)); err != nil {
		return fmt.Errorf("append %s audit row: %w", a, err)
	}
	return nil
}

func (r *Repository) Create(ctx context.Context, in student.Student, actorID student.UUID) (*student.Student, error) {
	var out *Student

	err := postgres.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		s, err := scanStudent(tx.QueryRow(ctx, InsertStudent, in.Name, in.Email, in.RA, in.CPF))
		if err != nil {
			return conflictFrom(err, in)
		}
		if err = appendAction(ctx, tx, actorID, s.ID, student.ActionCreated); err != nil {
			return err
		}
		out = s
		return nil
	})
	if err != nil {
		return nil, err
	}

	return fromDBModel(out), nil
}

func (r *Repository) FetchByID(ctx context.Context, id student.UUID) (*student.Student, error) {
	s, err := scanStudent(r.db.QueryRow(ctx, SelectStudentByID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(s), nil
}

// Update returns nil, nil when the student is missing or soft-deleted.
func (r *Repository) Update(ctx context.Context, id student.UUID, upd student.Update, actorID student.UUID) (*student.Student, error) {
	var out *Student

	err := postgres.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		s, err := scanStudent(tx.QueryRow(ctx, UpdateStudent, upd.Name, upd.Email, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return errNoRow
			}
			var attempted student.Student
			if upd.Email != nil {
				attempted.Email = *upd.Email
			}
			return conflictFrom(err, attempted)
		}
		if err = appendAction(ctx, tx, actorID, s.ID, student.ActionUpdated); err != nil {
			return err
		}
		out = s
		return nil
	})
	if err != nil {
		if errors.Is(err, errNoRow) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(out), nil
}

// Delete reports false when there was no active student to delete.
func (r *Repository) Delete(ctx context.Context, id student.UUID, actorID student.UUID) (bool, error) {
	err := postgres.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, SoftDeleteStudent, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return errNoRow
		}
		return appendAction(ctx, tx, actorID, id, student.ActionDeleted)
	})
	if err != nil {
		if errors.Is(err, errNoRow) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

func (r *Repository) List(ctx context.Context, f student.Filter, p student.Page) (student.Students, int, error) {
	q := buildListQuery(f, p)

	var (
		ss    Students
		total int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.db.QueryRow(gctx, q.count, q.countArgs...).Scan(&total)
	})
	g.Go(func() error {
		rows, err := r.db.Query(gctx, q.list, q.listArgs...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			s, err := scanStudent(rows)
			if err != nil {
				return err
			}
			ss = append(ss, s)
		}
		return rows.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, 0, fmt.Errorf("list students: %w", err)
	}

	return fromDBModels(ss), total, nil
}

func (r *Repository) Exists(ctx context.Context, field student.UniqueField, value string, excludeID student.UUID) (bool, error) {
	var query string
	switch field {
	case student.FieldRA:
		query = SelectRAExists
	case student.FieldCPF:
		query = SelectCPFExists
	case student.FieldEmail:
		query = SelectEmailExists
	default:
		return false, fmt.Errorf("unknown unique field %q", field)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, query, value, excludeID).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

func (r *Repository) FetchActions(ctx context.Context, studentID student.UUID) (student.UserActions, error) {
	rows, err := r.db.Query(ctx, SelectUserActions, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var as UserActions
	for rows.Next() {
		a := new(UserAction)
		if err = rows.Scan(&a.ID, &a.UserID, &a.StudentID, &a.Action, &a.CreatedAt); err != nil {
			return nil, err
		}
		as = append(as, a)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBActions(as), nil
}

func (r *Repository) Known(ctx context.Context, id student.UUID) (bool, error) {
	var ok bool
	if err := r.db.QueryRow(ctx, SelectStudentKnown, id).Scan(&ok); err != nil {
		return false, err
	}

	return ok, nil
}
