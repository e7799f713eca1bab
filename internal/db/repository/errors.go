package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when a lookup or delete matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrConstraint is returned when Postgres rejects a write on an integrity constraint.
	ErrConstraint = errors.New("constraint violation")
)

// integrity constraint violation class (23xxx)
const integrityViolationClass = "23"

func translate(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && len(pgErr.Code) >= 2 && pgErr.Code[:2] == integrityViolationClass {
		return fmt.Errorf("%s: %w: %s", op, ErrConstraint, pgErr.ConstraintName)
	}
	return fmt.Errorf("%s: %w", op, err)
}
