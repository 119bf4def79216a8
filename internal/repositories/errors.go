package repositories

import (
	"errors"

	apperrors "emiverify/internal/errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// translate maps driver errors onto domain errors. notFound is returned for
// gorm.ErrRecordNotFound; unique violations become ErrConflict.
func translate(err error, notFound *apperrors.DomainError) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	if IsUniqueViolation(err) {
		return apperrors.ErrConflict.Wrap(err)
	}
	return apperrors.Internal(err)
}

// IsUniqueViolation reports whether err is a postgres unique_violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
