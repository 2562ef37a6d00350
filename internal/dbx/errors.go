package dbx

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/Shubham-musmade/interview-tracker/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE codes.
const (
	uniqueViolation = "23505"
	// invalidTextRepresentation is raised for a malformed UUID literal.
	invalidTextRepresentation = "22P02"
)

// MapError translates driver errors into the shared sentinels:
// sql.ErrNoRows and a malformed id become common.ErrorNotFound, a unique
// violation becomes common.ErrorAlreadyExists and anything else is wrapped
// as "db error".
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrorNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return fmt.Errorf("%w: %s", common.ErrorAlreadyExists, pgErr.ConstraintName)
		case invalidTextRepresentation:
			return fmt.Errorf("%w: %s", common.ErrorNotFound, pgErr.Message)
		}
	}
	return fmt.Errorf("db error: %w", err)
}

// ExpectAffected returns common.ErrorNotFound when an update or delete
// touched no rows.
func ExpectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
