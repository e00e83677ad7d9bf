package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Storage errors every backend reports in the same shape, so services and the
// HTTP layer never look at driver codes.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrConflict      = errors.New("conflict")
)

// pgCodeErrors lists the SQLSTATE codes callers can act on.
var pgCodeErrors = map[string]error{
	pgerrcode.UniqueViolation:     ErrAlreadyExists,
	pgerrcode.ForeignKeyViolation: ErrConflict,
	pgerrcode.CheckViolation:      ErrConflict,
}

// MapPgError translates pgx errors into the sentinels above. Constraint
// violations keep the constraint name in the message; anything unmapped is
// returned untouched.
func MapPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	sentinel, ok := pgCodeErrors[pgErr.Code]
	if !ok {
		return err
	}
	if pgErr.ConstraintName == "" {
		return sentinel
	}
	return fmt.Errorf("%w: %s", sentinel, pgErr.ConstraintName)
}
