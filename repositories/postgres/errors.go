package postgres

import (
	"errors"

	"github.com/lib/pq"
	"github.com/upb/esg-data-management/repositories"
)

const (
	pqUniqueViolation     pq.ErrorCode = "23505"
	pqForeignKeyViolation pq.ErrorCode = "23503"
)

// constraintFields maps schema constraint names to the API fields they cover.
var constraintFields = map[string][]string{
	"business_units_company_id_name_key": {"company", "name"},
	"metrics_identity_key":               {"business_unit", "name", "reporting_year", "reporting_period"},
	"users_username_key":                 {"username"},
	"business_units_company_id_fkey":     {"company"},
	"metrics_business_unit_id_fkey":      {"business_unit"},
}

// translateError turns constraint violations reported by PostgreSQL into
// *repositories.ConstraintError. Other errors are returned unchanged.
func translateError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	var kind repositories.ConstraintKind
	switch pqErr.Code {
	case pqUniqueViolation:
		kind = repositories.ConstraintUnique
	case pqForeignKeyViolation:
		kind = repositories.ConstraintForeignKey
	default:
		return err
	}

	fields, ok := constraintFields[pqErr.Constraint]
	if !ok {
		fields = []string{"non_field_errors"}
	}
	return &repositories.ConstraintError{
		Kind:       kind,
		Constraint: pqErr.Constraint,
		Fields:     fields,
		Err:        err,
	}
}
