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

const businessUnitResource = "Business unit"

// BusinessUnitService handles business unit lifecycle
type BusinessUnitService struct {
	units     repositories.BusinessUnitRepository
	companies repositories.CompanyRepository
	txMgr     repositories.TransactionManager
	clock     clock.Clock
	logger    *zap.Logger
}

// NewBusinessUnitService creates a new BusinessUnitService instance
func NewBusinessUnitService(
	units repositories.BusinessUnitRepository,
	companies repositories.CompanyRepository,
	txMgr repositories.TransactionManager,
	clk clock.Clock,
	logger *zap.Logger,
) *BusinessUnitService {
	return &BusinessUnitService{
		units:     units,
		companies: companies,
		txMgr:     txMgr,
		clock:     clk,
		logger:    logger,
	}
}

// Create validates and stores a new business unit under an existing company
func (s *BusinessUnitService) Create(ctx context.Context, in BusinessUnitInput) (*models.BusinessUnit, error) {
	now := s.clock.Now()
	unit := &models.BusinessUnit{CreatedAt: now, UpdatedAt: now}
	in.applyTo(unit, false)

	if err := ValidateBusinessUnit(unit); err != nil {
		return nil, err
	}

	err := services.WithTransaction(ctx, s.txMgr, func(ctx context.Context, _ repositories.Transaction) error {
		if err := s.requireCompany(ctx, unit.CompanyID); err != nil {
			return err
		}
		return s.units.Create(ctx, unit)
	})
	if err != nil {
		return nil, translateRepoError(businessUnitResource, err)
	}

	s.logger.Info("business unit created",
		zap.Int64("business_unit_id", unit.ID),
		zap.Int64("company_id", unit.CompanyID))
	return unit, nil
}

// Get retrieves a business unit by ID
func (s *BusinessUnitService) Get(ctx context.Context, id int64) (*models.BusinessUnit, error) {
	unit, err := s.units.GetByID(ctx, id)
	if err != nil {
		return nil, translateRepoError(businessUnitResource, err)
	}
	return unit, nil
}

// List returns business units matching the filter
func (s *BusinessUnitService) List(ctx context.Context, filter repositories.BusinessUnitFilter) ([]*models.BusinessUnit, error) {
	units, err := s.units.List(ctx, filter)
	if err != nil {
		return nil, translateRepoError(businessUnitResource, err)
	}
	if units == nil {
		units = []*models.BusinessUnit{}
	}
	return units, nil
}

// Update replaces every writable attribute of a business unit
func (s *BusinessUnitService) Update(ctx context.Context, id int64, in BusinessUnitInput) (*models.BusinessUnit, error) {
	return s.update(ctx, id, in, false)
}

// Patch changes only the supplied attributes of a business unit
func (s *BusinessUnitService) Patch(ctx context.Context, id int64, in BusinessUnitInput) (*models.BusinessUnit, error) {
	return s.update(ctx, id, in, true)
}

func (s *BusinessUnitService) update(ctx context.Context, id int64, in BusinessUnitInput, partial bool) (*models.BusinessUnit, error) {
	unit, err := services.WithTransactionResult(ctx, s.txMgr, func(ctx context.Context, _ repositories.Transaction) (*models.BusinessUnit, error) {
		unit, err := s.units.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}

		previousCompany := unit.CompanyID
		in.applyTo(unit, partial)
		if err := ValidateBusinessUnit(unit); err != nil {
			return nil, err
		}
		if unit.CompanyID != previousCompany {
			if err := s.requireCompany(ctx, unit.CompanyID); err != nil {
				return nil, err
			}
		}

		unit.UpdatedAt = s.clock.Now()
		if err := s.units.Update(ctx, unit); err != nil {
			return nil, err
		}
		return unit, nil
	})
	if err != nil {
		return nil, translateRepoError(businessUnitResource, err)
	}

	s.logger.Info("business unit updated", zap.Int64("business_unit_id", id), zap.Bool("partial", partial))
	return unit, nil
}

// Delete removes a business unit and, by cascade, its metrics
func (s *BusinessUnitService) Delete(ctx context.Context, id int64) error {
	err := services.WithTransaction(ctx, s.txMgr, func(ctx context.Context, _ repositories.Transaction) error {
		return s.units.Delete(ctx, id)
	})
	if err != nil {
		return translateRepoError(businessUnitResource, err)
	}

	s.logger.Info("business unit deleted", zap.Int64("business_unit_id", id))
	return nil
}

func (s *BusinessUnitService) requireCompany(ctx context.Context, id int64) error {
	ok, err := s.companies.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return services.NewFieldError("company", fmt.Sprintf(msgMissingObject, id))
	}
	return nil
}
