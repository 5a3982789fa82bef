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

const metricColumns = `m.id, m.business_unit_id, m.name, m.esg_category, m.metric_type, m.unit_of_measurement,
		m.value, m.reporting_year, m.reporting_period, m.description, m.data_source, m.is_verified,
		m.created_at, m.updated_at`

// summaryQuery aggregates in one statement so all counts come from the same snapshot.
// Company rows without units or metrics still produce a row, with zero counts
// and a NULL latest year.
const summaryQuery = `
	SELECT c.id,
	       COUNT(m.id),
	       COUNT(m.id) FILTER (WHERE m.esg_category = $2),
	       COUNT(m.id) FILTER (WHERE m.esg_category = $3),
	       COUNT(m.id) FILTER (WHERE m.esg_category = $4),
	       COUNT(m.id) FILTER (WHERE m.is_verified),
	       MAX(m.reporting_year)
	FROM companies c
	LEFT JOIN business_units b ON b.company_id = c.id
	LEFT JOIN metrics m ON m.business_unit_id = b.id
	WHERE c.id = $1
	GROUP BY c.id
`

// MetricRepository implements the repositories.MetricRepository interface
type MetricRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewMetricRepository creates a new metric repository
func NewMetricRepository(db *DB, logger *zap.Logger) repositories.MetricRepository {
	return &MetricRepository{
		db:     db,
		logger: logger,
	}
}

func scanMetric(row rowScanner) (*models.Metric, error) {
	m := &models.Metric{}
	err := row.Scan(
		&m.ID,
		&m.BusinessUnitID,
		&m.Name,
		&m.ESGCategory,
		&m.MetricType,
		&m.UnitOfMeasurement,
		&m.Value,
		&m.ReportingYear,
		&m.ReportingPeriod,
		&m.Description,
		&m.DataSource,
		&m.IsVerified,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

// Create creates a new metric
func (r *MetricRepository) Create(ctx context.Context, metric *models.Metric) error {
	query := `
		INSERT INTO metrics (business_unit_id, name, esg_category, metric_type, unit_of_measurement,
			value, reporting_year, reporting_period, description, data_source, is_verified,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`

	executor := GetExecutor(ctx, r.db)
	err := executor.QueryRowContext(ctx, query,
		metric.BusinessUnitID,
		metric.Name,
		metric.ESGCategory,
		metric.MetricType,
		metric.UnitOfMeasurement,
		metric.Value,
		metric.ReportingYear,
		metric.ReportingPeriod,
		metric.Description,
		metric.DataSource,
		metric.IsVerified,
		metric.CreatedAt,
		metric.UpdatedAt,
	).Scan(&metric.ID)

	if err != nil {
		return fmt.Errorf("failed to create metric: %w", translateError(err))
	}

	r.logger.Debug("metric created",
		zap.Int64("id", metric.ID),
		zap.Int64("business_unit_id", metric.BusinessUnitID),
		zap.Int("reporting_year", metric.ReportingYear),
	)
	return nil
}

// GetByID retrieves a metric by ID
func (r *MetricRepository) GetByID(ctx context.Context, id int64) (*models.Metric, error) {
	query := `SELECT ` + metricColumns + ` FROM metrics m WHERE m.id = $1`

	executor := GetExecutor(ctx, r.db)
	metric, err := scanMetric(executor.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get metric: %w", err)
	}

	return metric, nil
}

// List retrieves metrics ordered by reporting year (newest first), ESG
// category and name
func (r *MetricRepository) List(ctx context.Context, filter repositories.MetricFilter) ([]*models.Metric, error) {
	var b filterBuilder
	if filter.BusinessUnitID != nil {
		b.add("m.business_unit_id = $%[1]d", *filter.BusinessUnitID)
	}
	if filter.CompanyID != nil {
		b.add("b.company_id = $%[1]d", *filter.CompanyID)
	}
	if filter.ESGCategory != nil {
		b.add("m.esg_category = $%[1]d", *filter.ESGCategory)
	}
	if filter.ReportingYear != nil {
		b.add("m.reporting_year = $%[1]d", *filter.ReportingYear)
	}
	if filter.UnitOfMeasurement != nil {
		b.add("m.unit_of_measurement = $%[1]d", *filter.UnitOfMeasurement)
	}
	if filter.IsVerified != nil {
		b.add("m.is_verified = $%[1]d", *filter.IsVerified)
	}
	b.search(filter.Search, "m.name", "b.name", "c.name")

	query := `SELECT ` + metricColumns + `
		FROM metrics m
		JOIN business_units b ON b.id = m.business_unit_id
		JOIN companies c ON c.id = b.company_id` + b.where() +
		` ORDER BY m.reporting_year DESC, m.esg_category, m.name, m.id` + b.page(filter.Page)

	executor := GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, query, b.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list metrics: %w", err)
	}
	defer rows.Close()

	metrics := make([]*models.Metric, 0)
	for rows.Next() {
		metric, err := scanMetric(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan metric: %w", err)
		}
		metrics = append(metrics, metric)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating metric rows: %w", err)
	}

	return metrics, nil
}

// Update updates a metric
func (r *MetricRepository) Update(ctx context.Context, metric *models.Metric) error {
	query := `
		UPDATE metrics
		SET business_unit_id = $2,
		    name = $3,
		    esg_category = $4,
		    metric_type = $5,
		    unit_of_measurement = $6,
		    value = $7,
		    reporting_year = $8,
		    reporting_period = $9,
		    description = $10,
		    data_source = $11,
		    is_verified = $12,
		    updated_at = $13
		WHERE id = $1
	`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query,
		metric.ID,
		metric.BusinessUnitID,
		metric.Name,
		metric.ESGCategory,
		metric.MetricType,
		metric.UnitOfMeasurement,
		metric.Value,
		metric.ReportingYear,
		metric.ReportingPeriod,
		metric.Description,
		metric.DataSource,
		metric.IsVerified,
		metric.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update metric: %w", translateError(err))
	}

	if err := requireAffected(result); err != nil {
		return err
	}

	r.logger.Debug("metric updated", zap.Int64("id", metric.ID))
	return nil
}

// Delete deletes a metric
func (r *MetricRepository) Delete(ctx context.Context, id int64) error {
	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, `DELETE FROM metrics WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete metric: %w", err)
	}

	if err := requireAffected(result); err != nil {
		return err
	}

	r.logger.Debug("metric deleted", zap.Int64("id", id))
	return nil
}

// SummaryForCompany aggregates the metrics reachable from a company
func (r *MetricRepository) SummaryForCompany(ctx context.Context, companyID int64) (*models.ESGSummary, error) {
	summary := &models.ESGSummary{}
	var latest sql.NullInt64

	executor := GetExecutor(ctx, r.db)
	err := executor.QueryRowContext(ctx, summaryQuery,
		companyID,
		models.CategoryEnvironmental,
		models.CategorySocial,
		models.CategoryGovernance,
	).Scan(
		&summary.CompanyID,
		&summary.TotalMetrics,
		&summary.Environmental,
		&summary.Social,
		&summary.Governance,
		&summary.Verified,
		&latest,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to summarize company metrics: %w", err)
	}

	if latest.Valid {
		year := int(latest.Int64)
		summary.LatestReportingYear = &year
	}

	return summary, nil
}
