package esg

import (
	"context"

	"github.com/upb/esg-data-management/internal/clock"
	"github.com/upb/esg-data-management/models"
	"github.com/upb/esg-data-management/repositories"
	"github.com/upb/esg-data-management/services"
	"go.uber.org/zap"
)

const companyResource = "Company"

// CompanyService handles company lifecycle and the per-company ESG summary
type CompanyService struct {
	companies repositories.CompanyRepository
	metrics   repositories.MetricRepository
	txMgr     repositories.TransactionManager
	clock     clock.Clock
	logger    *zap.Logger
}

// NewCompanyService creates a new CompanyService instance
func NewCompanyService(
	companies repositories.CompanyRepository,
	metrics repositories.MetricRepository,
	txMgr repositories.TransactionManager,
	clk clock.Clock,
	logger *zap.Logger,
) *CompanyService {
	return &CompanyService{
		companies: companies,
		metrics:   metrics,
		txMgr:     txMgr,
		clock:     clk,
		logger:    logger,
	}
}

// Create validates and stores a new company
func (s *CompanyService) Create(ctx context.Context, in CompanyInput) (*models.Company, error) {
	now := s.clock.Now()
	company := &models.Company{CreatedAt: now, UpdatedAt: now}
	in.applyTo(company, false)

	if err := ValidateCompany(company); err != nil {
		return nil, err
	}

	err := services.WithTransaction(ctx, s.txMgr, func(ctx context.Context, _ repositories.Transaction) error {
		return s.companies.Create(ctx, company)
	})
	if err != nil {
		return nil, translateRepoError(companyResource, err)
	}

	s.logger.Info("company created",
		zap.Int64("company_id", company.ID),
		zap.String("sector", string(company.Sector)))
	return company, nil
}

// Get retrieves a company by ID
func (s *CompanyService) Get(ctx context.Context, id int64) (*models.Company, error) {
	company, err := s.companies.GetByID(ctx, id)
	if err != nil {
		return nil, translateRepoError(companyResource, err)
	}
	return company, nil
}

// List returns companies matching the filter, ordered by name
func (s *CompanyService) List(ctx context.Context, filter repositories.CompanyFilter) ([]*models.Company, error) {
	companies, err := s.companies.List(ctx, filter)
	if err != nil {
		return nil, translateRepoError(companyResource, err)
	}
	if companies == nil {
		companies = []*models.Company{}
	}
	return companies, nil
}

// Update replaces every writable attribute of a company. Absent optional
// fields are cleared.
func (s *CompanyService) Update(ctx context.Context, id int64, in CompanyInput) (*models.Company, error) {
	return s.update(ctx, id, in, false)
}

// Patch changes only the supplied attributes of a company
func (s *CompanyService) Patch(ctx context.Context, id int64, in CompanyInput) (*models.Company, error) {
	return s.update(ctx, id, in, true)
}

func (s *CompanyService) update(ctx context.Context, id int64, in CompanyInput, partial bool) (*models.Company, error) {
	company, err := services.WithTransactionResult(ctx, s.txMgr, func(ctx context.Context, _ repositories.Transaction) (*models.Company, error) {
		company, err := s.companies.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}

		in.applyTo(company, partial)
		if err := ValidateCompany(company); err != nil {
			return nil, err
		}

		company.UpdatedAt = s.clock.Now()
		if err := s.companies.Update(ctx, company); err != nil {
			return nil, err
		}
		return company, nil
	})
	if err != nil {
		return nil, translateRepoError(companyResource, err)
	}

	s.logger.Info("company updated", zap.Int64("company_id", id), zap.Bool("partial", partial))
	return company, nil
}

// Delete removes a company and, by cascade, its business units and metrics
func (s *CompanyService) Delete(ctx context.Context, id int64) error {
	err := services.WithTransaction(ctx, s.txMgr, func(ctx context.Context, _ repositories.Transaction) error {
		return s.companies.Delete(ctx, id)
	})
	if err != nil {
		return translateRepoError(companyResource, err)
	}

	s.logger.Info("company deleted", zap.Int64("company_id", id))
	return nil
}

// Summary aggregates the metrics reported by every business unit of a company
func (s *CompanyService) Summary(ctx context.Context, id int64) (*models.ESGSummary, error) {
	summary, err := s.metrics.SummaryForCompany(ctx, id)
	if err != nil {
		return nil, translateRepoError(companyResource, err)
	}
	return summary, nil
}
