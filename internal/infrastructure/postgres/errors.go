package postgres

import (
	"errors"

	"github.com/ErlanBelekov/vehicle-api/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// referenceFields maps FK constraint names to the API field that caused them.
var referenceFields = map[string]string{
	"vehicle_types_brand_id_fkey": "brandId",
	"vehicle_models_type_id_fkey": "typeId",
	"price_lists_year_id_fkey":    "yearId",
	"price_lists_model_id_fkey":   "modelId",
}

func pgCode(err error) (string, string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}
	return "", ""
}

// writeError translates FK violations raised by INSERT/UPDATE.
func writeError(err error) error {
	code, constraint := pgCode(err)
	if code == foreignKeyViolation {
		field, ok := referenceFields[constraint]
		if !ok {
			field = constraint
		}
		return &domain.ReferenceError{Field: field}
	}
	return err
}

// deleteError translates FK violations raised by DELETE.
func deleteError(err error) error {
	if code, _ := pgCode(err); code == foreignKeyViolation {
		return domain.ErrInUse
	}
	return err
}
