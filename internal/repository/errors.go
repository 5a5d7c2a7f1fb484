package repository

import (
	"errors"
	"fmt"

	domainRepo "quickcare/internal/domain/repository"

	"github.com/jackc/pgx/v5/pgconn"
)

// pgUniqueViolation is the PostgreSQL error code for unique_violation
const pgUniqueViolation = "23505"

// translateError maps PostgreSQL unique constraint violations onto
// domainRepo.ErrDuplicateKey so usecases never depend on driver errors.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%w: %s", domainRepo.ErrDuplicateKey, pgErr.ConstraintName)
	}
	return err
}
