package repository

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinels every store implementation reports; handlers map them to HTTP statuses.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrConflict      = errors.New("conflict")
)

// pgCodeErrors lists the SQLSTATE codes callers are expected to react to.
var pgCodeErrors = map[string]error{
	pgerrcode.UniqueViolation:      ErrAlreadyExists,
	pgerrcode.ForeignKeyViolation:  ErrConflict,
	pgerrcode.SerializationFailure: ErrConflict,
	pgerrcode.DeadlockDetected:     ErrConflict,
}

// MapPgError translates pgx and Postgres errors into repository sentinels.
// Anything unmapped is returned as is.
func MapPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if mapped, ok := pgCodeErrors[pgErr.Code]; ok {
			return mapped
		}
	}
	return err
}
