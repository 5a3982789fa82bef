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

const companyColumns = `c.id, c.name, c.location, c.sector, c.reporting_period_start, c.reporting_period_end,
		c.description, c.created_at, c.updated_at`

// CompanyRepository implements the repositories.CompanyRepository interface
type CompanyRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(db *DB, logger *zap.Logger) repositories.CompanyRepository {
	return &CompanyRepository{
		db:     db,
		logger: logger,
	}
}

func scanCompany(row rowScanner) (*models.Company, error) {
	c := &models.Company{}
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Location,
		&c.Sector,
		&c.ReportingPeriodStart,
		&c.ReportingPeriodEnd,
		&c.Description,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

// Create creates a new company
func (r *CompanyRepository) Create(ctx context.Context, company *models.Company) error {
	query := `
		INSERT INTO companies (name, location, sector, reporting_period_start, reporting_period_end,
			description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	executor := GetExecutor(ctx, r.db)
	err := executor.QueryRowContext(ctx, query,
		company.Name,
		company.Location,
		company.Sector,
		company.ReportingPeriodStart,
		company.ReportingPeriodEnd,
		company.Description,
		company.CreatedAt,
		company.UpdatedAt,
	).Scan(&company.ID)

	if err != nil {
		return fmt.Errorf("failed to create company: %w", translateError(err))
	}

	r.logger.Debug("company created", zap.Int64("id", company.ID), zap.String("name", company.Name))
	return nil
}

// GetByID retrieves a company by ID
func (r *CompanyRepository) GetByID(ctx context.Context, id int64) (*models.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies c WHERE c.id = $1`

	executor := GetExecutor(ctx, r.db)
	company, err := scanCompany(executor.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	return company, nil
}

// Exists reports whether a company with the ID exists
func (r *CompanyRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	executor := GetExecutor(ctx, r.db)
	err := executor.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM companies WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check company: %w", err)
	}
	return exists, nil
}

// List retrieves companies ordered by name
func (r *CompanyRepository) List(ctx context.Context, filter repositories.CompanyFilter) ([]*models.Company, error) {
	var b filterBuilder
	if filter.Sector != nil {
		b.add("c.sector = $%[1]d", *filter.Sector)
	}
	b.search(filter.Search, "c.name", "c.location")

	query := `SELECT ` + companyColumns + ` FROM companies c` + b.where() +
		` ORDER BY c.name, c.id` + b.page(filter.Page)

	executor := GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, query, b.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	companies := make([]*models.Company, 0)
	for rows.Next() {
		company, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, company)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating company rows: %w", err)
	}

	return companies, nil
}

// Update updates a company. created_at is never rewritten.
func (r *CompanyRepository) Update(ctx context.Context, company *models.Company) error {
	query := `
		UPDATE companies
		SET name = $2,
		    location = $3,
		    sector = $4,
		    reporting_period_start = $5,
		    reporting_period_end = $6,
		    description = $7,
		    updated_at = $8
		WHERE id = $1
	`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query,
		company.ID,
		company.Name,
		company.Location,
		company.Sector,
		company.ReportingPeriodStart,
		company.ReportingPeriodEnd,
		company.Description,
		company.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update company: %w", translateError(err))
	}

	if err := requireAffected(result); err != nil {
		return err
	}

	r.logger.Debug("company updated", zap.Int64("id", company.ID))
	return nil
}

// Delete deletes a company. Business units and metrics go with it through
// ON DELETE CASCADE.
func (r *CompanyRepository) Delete(ctx context.Context, id int64) error {
	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}

	if err := requireAffected(result); err != nil {
		return err
	}

	r.logger.Debug("company deleted", zap.Int64("id", id))
	return nil
}

// requireAffected maps a write that touched no rows to ErrNotFound
func requireAffected(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
