package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgExclusionViolation = "23P01"
	pgUniqueViolation    = "23505"
)

// IsExclusionConflict reports a violated EXCLUDE constraint.
func IsExclusionConflict(err error) bool {
	return hasPgCode(err, pgExclusionViolation)
}

func IsUniqueViolation(err error) bool {
	return hasPgCode(err, pgUniqueViolation)
}

func hasPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}
