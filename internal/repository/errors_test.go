package repository_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/maxviazov/storefront-catalog/internal/repository"
)

func TestMapPgError(t *testing.T) {
	other := errors.New("socket closed")
	cases := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", pgx.ErrNoRows, repository.ErrNotFound},
		{"wrapped no rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), repository.ErrNotFound},
		{"unique", &pgconn.PgError{Code: pgerrcode.UniqueViolation}, repository.ErrAlreadyExists},
		{"fk", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, repository.ErrConflict},
		{"check", &pgconn.PgError{Code: pgerrcode.CheckViolation}, repository.ErrConflict},
		{"passthrough", other, other},
		{"unmapped code", &pgconn.PgError{Code: pgerrcode.SerializationFailure}, &pgconn.PgError{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := repository.MapPgError(tc.in)
			if tc.want == nil {
				assert.NoError(t, got)
				return
			}
			if pe, ok := tc.want.(*pgconn.PgError); ok {
				assert.ErrorAs(t, got, &pe)
				return
			}
			assert.ErrorIs(t, got, tc.want)
		})
	}
}

func TestMapPgError_KeepsConstraintName(t *testing.T) {
	err := repository.MapPgError(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation, ConstraintName: "products_brand_id_fkey"})
	assert.ErrorIs(t, err, repository.ErrConflict)
	assert.EqualError(t, err, "conflict: products_brand_id_fkey")
}

func TestPageAt(t *testing.T) {
	assert.Equal(t, repository.Page{Limit: 10, Offset: 30}, repository.PageAt(3, 10))
	assert.Equal(t, repository.Page{Limit: 1, Offset: 0}, repository.PageAt(-2, 0))
}
