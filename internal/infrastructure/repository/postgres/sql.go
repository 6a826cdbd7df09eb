// Package postgres implements the domain repositories on PostgreSQL via
// sqlx. Every query is built with the shared query builder so placeholders
// stay consistent.
package postgres

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// isUniqueViolation reports whether err is a Postgres 23505 error, used to
// turn duplicate inserts into domain conflicts.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
