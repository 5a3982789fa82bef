package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/upb/esg-data-management/models"
	"github.com/upb/esg-data-management/repositories"
	"go.uber.org/zap"
)

const businessUnitColumns = `b.id, b.company_id, b.name, b.unit_type, b.location, b.description,
		b.is_active, b.created_at, b.updated_at`

// BusinessUnitRepository implements the repositories.BusinessUnitRepository interface
type BusinessUnitRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewBusinessUnitRepository creates a new business unit repository
func NewBusinessUnitRepository(db *DB, logger *zap.Logger) repositories.BusinessUnitRepository {
	return &BusinessUnitRepository{
		db:     db,
		logger: logger,
	}
}

func scanBusinessUnit(row rowScanner) (*models.BusinessUnit, error) {
	u := &models.BusinessUnit{}
	err := row.Scan(
		&u.ID,
		&u.CompanyID,
		&u.Name,
		&u.UnitType,
		&u.Location,
		&u.Description,
		&u.IsActive,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

// Create creates a new business unit
func (r *BusinessUnitRepository) Create(ctx context.Context, unit *models.BusinessUnit) error {
	query := `
		INSERT INTO business_units (company_id, name, unit_type, location, description, is_active,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	executor := GetExecutor(ctx, r.db)
	err := executor.QueryRowContext(ctx, query,
		unit.CompanyID,
		unit.Name,
		unit.UnitType,
		unit.Location,
		unit.Description,
		unit.IsActive,
		unit.CreatedAt,
		unit.UpdatedAt,
	).Scan(&unit.ID)

	if err != nil {
		return fmt.Errorf("failed to create business unit: %w", translateError(err))
	}

	r.logger.Debug("business unit created",
		zap.Int64("id", unit.ID),
		zap.Int64("company_id", unit.CompanyID),
	)
	return nil
}

// GetByID retrieves a business unit by ID
func (r *BusinessUnitRepository) GetByID(ctx context.Context, id int64) (*models.BusinessUnit, error) {
	query := `SELECT ` + businessUnitColumns + ` FROM business_units b WHERE b.id = $1`

	executor := GetExecutor(ctx, r.db)
	unit, err := scanBusinessUnit(executor.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get business unit: %w", err)
	}

	return unit, nil
}

// Exists reports whether a business unit with the ID exists
func (r *BusinessUnitRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	executor := GetExecutor(ctx, r.db)
	err := executor.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM business_units WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check business unit: %w", err)
	}
	return exists, nil
}

// List retrieves business units ordered by company name, then unit name
func (r *BusinessUnitRepository) List(ctx context.Context, filter repositories.BusinessUnitFilter) ([]*models.BusinessUnit, error) {
	var b filterBuilder
	if filter.CompanyID != nil {
		b.add("b.company_id = $%[1]d", *filter.CompanyID)
	}
	if filter.UnitType != nil {
		b.add("b.unit_type = $%[1]d", *filter.UnitType)
	}
	if filter.IsActive != nil {
		b.add("b.is_active = $%[1]d", *filter.IsActive)
	}
	b.search(filter.Search, "b.name", "c.name", "b.location")

	query := `SELECT ` + businessUnitColumns + `
		FROM business_units b
		JOIN companies c ON c.id = b.company_id` + b.where() +
		` ORDER BY c.name, b.name, b.id` + b.page(filter.Page)

	executor := GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, query, b.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list business units: %w", err)
	}
	defer rows.Close()

	units := make([]*models.BusinessUnit, 0)
	for rows.Next() {
		unit, err := scanBusinessUnit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan business unit: %w", err)
		}
		units = append(units, unit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating business unit rows: %w", err)
	}

	return units, nil
}

// Update updates a business unit
func (r *BusinessUnitRepository) Update(ctx context.Context, unit *models.BusinessUnit) error {
	query := `
		UPDATE business_units
		SET company_id = $2,
		    name = $3,
		    unit_type = $4,
		    location = $5,
		    description = $6,
		    is_active = $7,
		    updated_at = $8
		WHERE id = $1
	`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query,
		unit.ID,
		unit.CompanyID,
		unit.Name,
		unit.UnitType,
		unit.Location,
		unit.Description,
		unit.IsActive,
		unit.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update business unit: %w", translateError(err))
	}

	if err := requireAffected(result); err != nil {
		return err
	}

	r.logger.Debug("business unit updated", zap.Int64("id", unit.ID))
	return nil
}

// Delete deletes a business unit and, through the schema, its metrics
func (r *BusinessUnitRepository) Delete(ctx context.Context, id int64) error {
	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, `DELETE FROM business_units WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete business unit: %w", err)
	}

	if err := requireAffected(result); err != nil {
		return err
	}

	r.logger.Debug("business unit deleted", zap.Int64("id", id))
	return nil
}
