package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithTx(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name    string
		setup   func(m pgxmock.PgxPoolIface)
		fn      func(tx pgx.Tx) error
		wantErr string
	}{
		{
			name: "commit on success",
			setup: func(m pgxmock.PgxPoolIface) {
				m.ExpectBegin()
				m.ExpectExec("SELECT 1").WillReturnResult(pgxmock.NewResult("SELECT", 1))
				m.ExpectCommit()
			},
			fn: func(tx pgx.Tx) error {
				_, err := tx.Exec(context.Background(), "SELECT 1")
				return err
			},
		},
		{
			name: "rollback when fn fails",
			setup: func(m pgxmock.PgxPoolIface) {
				m.ExpectBegin()
				m.ExpectRollback()
			},
			fn:      func(tx pgx.Tx) error { return boom },
			wantErr: "boom",
		},
		{
			name: "rollback when commit fails",
			setup: func(m pgxmock.PgxPoolIface) {
				m.ExpectBegin()
				m.ExpectCommit().WillReturnError(boom)
				m.ExpectRollback()
			},
			fn:      func(tx pgx.Tx) error { return nil },
			wantErr: "commit tx: boom",
		},
		{
			name: "begin fails",
			setup: func(m pgxmock.PgxPoolIface) {
				m.ExpectBegin().WillReturnError(boom)
			},
			fn:      func(tx pgx.Tx) error { return nil },
			wantErr: "begin tx: boom",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()
			tt.setup(mock)

			err = WithTx(context.Background(), mock, tt.fn)
			if tt.wantErr == "" {
				require.NoError(t, err)
			} else {
				require.EqualError(t, err, tt.wantErr)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "students_ra_active_key"}

	c, ok := UniqueViolation(fmt.Errorf("insert: %w", pgErr))
	assert.True(t, ok)
	assert.Equal(t, "students_ra_active_key", c)

	_, ok = UniqueViolation(&pgconn.PgError{Code: "23503"})
	assert.False(t, ok)

	_, ok = UniqueViolation(errors.New("plain"))
	assert.False(t, ok)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, "plain", EscapeLike("plain"))
	assert.Equal(t, `50\%`, EscapeLike("50%"))
	assert.Equal(t, `a\_b`, EscapeLike("a_b"))
	assert.Equal(t, `c:\\dir`, EscapeLike(`c:\dir`))
	assert.Equal(t, `\%\_\\`, EscapeLike(`%_\`))
}
