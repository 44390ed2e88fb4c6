package lib

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Database errors
var (
	ErrConflict = errors.New("conflict")
	ErrNotFound = errors.New("not found")
)

// Checkout errors
var (
	ErrProfileNotFound   = errors.New("profile not found")
	ErrCartNotFound      = errors.New("cart not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// MapPgError translates PostgreSQL SQLSTATE codes into sentinel errors so
// handlers can pick status codes with errors.Is.
func MapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return ErrConflict
		case "P0002": // no_data_found
			return ErrNotFound
		}
	}
	return err
}
