package student

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"student-manager-api/internal/domain/apperror"
	domain "student-manager-api/internal/domain/student"
)

var columns = []string{"id", "name", "email", "ra", "cpf", "created_at", "updated_at", "deleted_at"}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func seedStudent() domain.Student {
	return domain.Student{
		Name:  "Maria Silva",
		Email: "maria@example.com",
		RA:    "RA123456",
		CPF:   "11144477735",
	}
}

func studentRows(mock pgxmock.PgxPoolIface, id uuid.UUID, s domain.Student) *pgxmock.Rows {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	return mock.NewRows(columns).AddRow(id, s.Name, s.Email, s.RA, s.CPF, now, now, nil)
}

func TestRepository_Create(t *testing.T) {
	actor := uuid.New()
	id := uuid.New()
	in := seedStudent()

	tests := []struct {
		name      string
		setup     func(m pgxmock.PgxPoolIface)
		wantErr   error
		wantMsg   string
		wantSaved bool
	}{
		{
			name: "insert and CREATED audit row in one tx",
			setup: func(m pgxmock.PgxPoolIface) {
				m.ExpectBegin()
				m.ExpectQuery(InsertStudent).WithArgs(in.Name, in.Email, in.RA, in.CPF).
					WillReturnRows(studentRows(m, id, in))
				m.ExpectExec(InsertUserAction).WithArgs(actor, id, "CREATED").
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
				m.ExpectCommit()
			},
			wantSaved: true,
		},
		{
			name: "duplicate RA from store constraint",
			setup: func(m pgxmock.PgxPoolIface) {
				m.ExpectBegin()
				m.ExpectQuery(InsertStudent).WithArgs(in.Name, in.Email, in.RA, in.CPF).
					WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "students_ra_active_key"})
				m.ExpectRollback()
			},
			wantErr: apperror.ErrConflict,
			wantMsg: "Student with RA 'RA123456' already exists",
		},
		{
			name: "duplicate CPF from store constraint",
			setup: func(m pgxmock.PgxPoolIface) {
				m.ExpectBegin()
				m.ExpectQuery(InsertStudent).WithArgs(in.Name, in.Email, in.RA, in.CPF).
					WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "students_cpf_active_key"})
				m.ExpectRollback()
			},
			wantErr: apperror.ErrConflict,
			wantMsg: "Student with CPF '11144477735' already exists",
		},
		{
			name: "duplicate email from store constraint",
			setup: func(m pgxmock.PgxPoolIface) {
				m.ExpectBegin()
				m.ExpectQuery(InsertStudent).WithArgs(in.Name, in.Email, in.RA, in.CPF).
					WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "students_email_active_key"})
				m.ExpectRollback()
			},
			wantErr: apperror.ErrConflict,
			wantMsg: "Student with email 'maria@example.com' already exists",
		},
		{
			name: "audit insert fails -> rollback, no student",
			setup: func(m pgxmock.PgxPoolIface) {
				m.ExpectBegin()
				m.ExpectQuery(InsertStudent).WithArgs(in.Name, in.Email, in.RA, in.CPF).
					WillReturnRows(studentRows(m, id, in))
				m.ExpectExec(InsertUserAction).WithArgs(actor, id, "CREATED").
					WillReturnError(errors.New("fk violation"))
				m.ExpectRollback()
			},
			wantMsg: "append CREATED audit row: fk violation",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			mock := newMock(t)
			tt.setup(mock)

			s, err := NewRepository(mock).Create(context.Background(), in, actor)
			if tt.wantSaved {
				require.NoError(t, err)
				assert.Equal(t, id, s.UUID)
				assert.Equal(t, in.RA, s.RA)
				return
			}
			require.Error(t, err)
			assert.Nil(t, s)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.EqualError(t, err, tt.wantMsg)
		})
	}
}

func TestRepository_FetchByID_SoftDeletedIsNil(t *testing.T) {
	mock := newMock(t)
	id := uuid.New()

	mock.ExpectQuery(SelectStudentByID).WithArgs(id).WillReturnRows(mock.NewRows(columns))

	s, err := NewRepository(mock).FetchByID(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestRepository_Update(t *testing.T) {
	actor := uuid.New()
	id := uuid.New()
	email := "maria.silva@example.com"
	upd := domain.Update{Email: &email}

	t.Run("updates and appends UPDATED", func(t *testing.T) {
		mock := newMock(t)
		updated := seedStudent()
		updated.Email = email

		mock.ExpectBegin()
		mock.ExpectQuery(UpdateStudent).WithArgs(upd.Name, upd.Email, id).
			WillReturnRows(studentRows(mock, id, updated))
		mock.ExpectExec(InsertUserAction).WithArgs(actor, id, "UPDATED").
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectCommit()

		s, err := NewRepository(mock).Update(context.Background(), id, upd, actor)
		require.NoError(t, err)
		assert.Equal(t, email, s.Email)
	})

	t.Run("missing -> nil, nil and rollback", func(t *testing.T) {
		mock := newMock(t)

		mock.ExpectBegin()
		mock.ExpectQuery(UpdateStudent).WithArgs(upd.Name, upd.Email, id).
			WillReturnRows(mock.NewRows(columns))
		mock.ExpectRollback()

		s, err := NewRepository(mock).Update(context.Background(), id, upd, actor)
		require.NoError(t, err)
		assert.Nil(t, s)
	})

	t.Run("email race -> conflict", func(t *testing.T) {
		mock := newMock(t)

		mock.ExpectBegin()
		mock.ExpectQuery(UpdateStudent).WithArgs(upd.Name, upd.Email, id).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "students_email_active_key"})
		mock.ExpectRollback()

		s, err := NewRepository(mock).Update(context.Background(), id, upd, actor)
		assert.Nil(t, s)
		assert.ErrorIs(t, err, apperror.ErrConflict)
		assert.EqualError(t, err, "Student with email 'maria.silva@example.com' already exists")
	})
}

func TestRepository_Delete(t *testing.T) {
	actor := uuid.New()
	id := uuid.New()

	t.Run("soft delete appends exactly one DELETED row", func(t *testing.T) {
		mock := newMock(t)

		mock.ExpectBegin()
		mock.ExpectExec(SoftDeleteStudent).WithArgs(id).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectExec(InsertUserAction).WithArgs(actor, id, "DELETED").
			WillReturnResult(pgxmock.NewResult("INSERT", 1)).Times(1)
		mock.ExpectCommit()

		ok, err := NewRepository(mock).Delete(context.Background(), id, actor)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("already deleted -> false, no audit row", func(t *testing.T) {
		mock := newMock(t)

		mock.ExpectBegin()
		mock.ExpectExec(SoftDeleteStudent).WithArgs(id).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		mock.ExpectRollback()

		ok, err := NewRepository(mock).Delete(context.Background(), id, actor)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestRepository_List(t *testing.T) {
	mock := newMock(t)
	mock.MatchExpectationsInOrder(false)

	f := domain.Filter{Search: "test"}
	p := domain.Page{Page: 1, Limit: 10}
	q := buildListQuery(f, p)
	id := uuid.New()

	mock.ExpectQuery(q.count).WithArgs(q.countArgs...).
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(q.list).WithArgs(q.listArgs...).
		WillReturnRows(studentRows(mock, id, seedStudent()))

	ss, total, err := NewRepository(mock).List(context.Background(), f, p)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, ss, 1)
	assert.Equal(t, id, ss[0].UUID)
}

func TestRepository_List_CountFails(t *testing.T) {
	mock := newMock(t)
	mock.MatchExpectationsInOrder(false)

	p := domain.Page{Page: 1, Limit: 10}
	q := buildListQuery(domain.Filter{}, p)

	mock.ExpectQuery(q.count).WillReturnError(errors.New("timeout"))
	mock.ExpectQuery(q.list).WithArgs(q.listArgs...).
		WillReturnRows(mock.NewRows(columns)).Maybe()

	ss, total, err := NewRepository(mock).List(context.Background(), domain.Filter{}, p)
	require.Error(t, err)
	assert.Nil(t, ss)
	assert.Zero(t, total)
}

func TestRepository_Exists(t *testing.T) {
	tests := []struct {
		field domain.UniqueField
		query string
	}{
		{domain.FieldRA, SelectRAExists},
		{domain.FieldCPF, SelectCPFExists},
		{domain.FieldEmail, SelectEmailExists},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(string(tt.field), func(t *testing.T) {
			mock := newMock(t)
			mock.ExpectQuery(tt.query).WithArgs("v", uuid.Nil).
				WillReturnRows(mock.NewRows([]string{"exists"}).AddRow(true))

			ok, err := NewRepository(mock).Exists(context.Background(), tt.field, "v", uuid.Nil)
			require.NoError(t, err)
			assert.True(t, ok)
		})
	}

	t.Run("unknown field", func(t *testing.T) {
		mock := newMock(t)
		_, err := NewRepository(mock).Exists(context.Background(), "name", "v", uuid.Nil)
		assert.Error(t, err)
	})
}

func TestRepository_FetchActions(t *testing.T) {
	mock := newMock(t)
	studentID := uuid.New()
	actor := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery(SelectUserActions).WithArgs(studentID).
		WillReturnRows(mock.NewRows([]string{"id", "user_id", "student_id", "action", "created_at"}).
			AddRow(int64(3), actor, studentID, "DELETED", now).
			AddRow(int64(2), actor, studentID, "UPDATED", now.Add(-time.Minute)).
			AddRow(int64(1), actor, studentID, "CREATED", now.Add(-time.Hour)))

	as, err := NewRepository(mock).FetchActions(context.Background(), studentID)
	require.NoError(t, err)
	require.Len(t, as, 3)
	assert.Equal(t, domain.ActionDeleted, as[0].Action)
	assert.Equal(t, domain.ActionCreated, as[2].Action)
	assert.Equal(t, actor, as[1].UserID)
}

func TestRepository_Known(t *testing.T) {
	mock := newMock(t)
	id := uuid.New()

	mock.ExpectQuery(SelectStudentKnown).WithArgs(id).
		WillReturnRows(mock.NewRows([]string{"exists"}).AddRow(false))

	ok, err := NewRepository(mock).Known(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, ok)
}
