package esg

import (
	"context"
	"fmt"

	"github.com/upb/esg-data-management/internal/clock"
	"github.com/upb/esg-data-management/models"
	"github.com/upb/esg-data-management/repositories"
	"github.com/upb/esg-data-management/services"
	"go.uber.org/zap"
)

const metricResource = "Metric"

// MetricService handles metric lifecycle
type MetricService struct {
	metrics repositories.MetricRepository
	units   repositories.BusinessUnitRepository
	txMgr   repositories.TransactionManager
	clock   clock.Clock
	logger  *zap.Logger
}

// NewMetricService creates a new MetricService instance
func NewMetricService(
	metrics repositories.MetricRepository,
	units repositories.BusinessUnitRepository,
	txMgr repositories.TransactionManager,
	clk clock.Clock,
	logger *zap.Logger,
) *MetricService {
	return &MetricService{
		metrics: metrics,
		units:   units,
		txMgr:   txMgr,
		clock:   clk,
		logger:  logger,
	}
}

// Create validates and stores a new metric under an existing business unit.
// The reporting year is checked against the clock at call time.
func (s *MetricService) Create(ctx context.Context, in MetricInput) (*models.Metric, error) {
	if in.Value == nil {
		return nil, services.NewFieldError("value", msgRequired)
	}

	now := s.clock.Now()
	metric := &models.Metric{CreatedAt: now, UpdatedAt: now}
	in.applyTo(metric, false)

	if err := ValidateMetric(metric, now); err != nil {
		return nil, err
	}

	err := services.WithTransaction(ctx, s.txMgr, func(ctx context.Context, _ repositories.Transaction) error {
		if err := s.requireBusinessUnit(ctx, metric.BusinessUnitID); err != nil {
			return err
		}
		return s.metrics.Create(ctx, metric)
	})
	if err != nil {
		return nil, translateRepoError(metricResource, err)
	}

	s.logger.Info("metric created",
		zap.Int64("metric_id", metric.ID),
		zap.Int64("business_unit_id", metric.BusinessUnitID),
		zap.String("esg_category", string(metric.ESGCategory)),
		zap.Int("reporting_year", metric.ReportingYear))
	return metric, nil
}

// Get retrieves a metric by ID
func (s *MetricService) Get(ctx context.Context, id int64) (*models.Metric, error) {
	metric, err := s.metrics.GetByID(ctx, id)
	if err != nil {
		return nil, translateRepoError(metricResource, err)
	}
	return metric, nil
}

// List returns metrics matching the filter
func (s *MetricService) List(ctx context.Context, filter repositories.MetricFilter) ([]*models.Metric, error) {
	metrics, err := s.metrics.List(ctx, filter)
	if err != nil {
		return nil, translateRepoError(metricResource, err)
	}
	if metrics == nil {
		metrics = []*models.Metric{}
	}
	return metrics, nil
}

// Update replaces every writable attribute of a metric
func (s *MetricService) Update(ctx context.Context, id int64, in MetricInput) (*models.Metric, error) {
	if in.Value == nil {
		return nil, services.NewFieldError("value", msgRequired)
	}
	return s.update(ctx, id, in, false)
}

// Patch changes only the supplied attributes of a metric
func (s *MetricService) Patch(ctx context.Context, id int64, in MetricInput) (*models.Metric, error) {
	return s.update(ctx, id, in, true)
}

func (s *MetricService) update(ctx context.Context, id int64, in MetricInput, partial bool) (*models.Metric, error) {
	metric, err := services.WithTransactionResult(ctx, s.txMgr, func(ctx context.Context, _ repositories.Transaction) (*models.Metric, error) {
		metric, err := s.metrics.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}

		previousUnit := metric.BusinessUnitID
		in.applyTo(metric, partial)

		now := s.clock.Now()
		if err := ValidateMetric(metric, now); err != nil {
			return nil, err
		}
		if metric.BusinessUnitID != previousUnit {
			if err := s.requireBusinessUnit(ctx, metric.BusinessUnitID); err != nil {
				return nil, err
			}
		}

		metric.UpdatedAt = now
		if err := s.metrics.Update(ctx, metric); err != nil {
			return nil, err
		}
		return metric, nil
	})
	if err != nil {
		return nil, translateRepoError(metricResource, err)
	}

	s.logger.Info("metric updated", zap.Int64("metric_id", id), zap.Bool("partial", partial))
	return metric, nil
}

// Delete removes a metric
func (s *MetricService) Delete(ctx context.Context, id int64) error {
	err := services.WithTransaction(ctx, s.txMgr, func(ctx context.Context, _ repositories.Transaction) error {
		return s.metrics.Delete(ctx, id)
	})
	if err != nil {
		return translateRepoError(metricResource, err)
	}

	s.logger.Info("metric deleted", zap.Int64("metric_id", id))
	return nil
}

func (s *MetricService) requireBusinessUnit(ctx context.Context, id int64) error {
	ok, err := s.units.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return services.NewFieldError("business_unit", fmt.Sprintf(msgMissingObject, id))
	}
	return nil
}
