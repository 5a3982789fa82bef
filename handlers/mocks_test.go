package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/upb/esg-data-management/models"
	"github.com/upb/esg-data-management/repositories"
	"github.com/upb/esg-data-management/services/esg"
)

type MockCompanyService struct {
	mock.Mock
}

func (m *MockCompanyService) Create(ctx context.Context, in esg.CompanyInput) (*models.Company, error) {
	args := m.Called(ctx, in)
	if c := args.Get(0); c != nil {
		return c.(*models.Company), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCompanyService) Get(ctx context.Context, id int64) (*models.Company, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*models.Company), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCompanyService) List(ctx context.Context, filter repositories.CompanyFilter) ([]*models.Company, error) {
	args := m.Called(ctx, filter)
	if c := args.Get(0); c != nil {
		return c.([]*models.Company), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCompanyService) Update(ctx context.Context, id int64, in esg.CompanyInput) (*models.Company, error) {
	args := m.Called(ctx, id, in)
	if c := args.Get(0); c != nil {
		return c.(*models.Company), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCompanyService) Patch(ctx context.Context, id int64, in esg.CompanyInput) (*models.Company, error) {
	args := m.Called(ctx, id, in)
	if c := args.Get(0); c != nil {
		return c.(*models.Company), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCompanyService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCompanyService) Summary(ctx context.Context, id int64) (*models.ESGSummary, error) {
	args := m.Called(ctx, id)
	if s := args.Get(0); s != nil {
		return s.(*models.ESGSummary), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockBusinessUnitService struct {
	mock.Mock
}

func (m *MockBusinessUnitService) Create(ctx context.Context, in esg.BusinessUnitInput) (*models.BusinessUnit, error) {
	args := m.Called(ctx, in)
	if u := args.Get(0); u != nil {
		return u.(*models.BusinessUnit), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBusinessUnitService) Get(ctx context.Context, id int64) (*models.BusinessUnit, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*models.BusinessUnit), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBusinessUnitService) List(ctx context.Context, filter repositories.BusinessUnitFilter) ([]*models.BusinessUnit, error) {
	args := m.Called(ctx, filter)
	if u := args.Get(0); u != nil {
		return u.([]*models.BusinessUnit), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBusinessUnitService) Update(ctx context.Context, id int64, in esg.BusinessUnitInput) (*models.BusinessUnit, error) {
	args := m.Called(ctx, id, in)
	if u := args.Get(0); u != nil {
		return u.(*models.BusinessUnit), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBusinessUnitService) Patch(ctx context.Context, id int64, in esg.BusinessUnitInput) (*models.BusinessUnit, error) {
	args := m.Called(ctx, id, in)
	if u := args.Get(0); u != nil {
		return u.(*models.BusinessUnit), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBusinessUnitService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockMetricService struct {
	mock.Mock
}

func (m *MockMetricService) Create(ctx context.Context, in esg.MetricInput) (*models.Metric, error) {
	args := m.Called(ctx, in)
	if mt := args.Get(0); mt != nil {
		return mt.(*models.Metric), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMetricService) Get(ctx context.Context, id int64) (*models.Metric, error) {
	args := m.Called(ctx, id)
	if mt := args.Get(0); mt != nil {
		return mt.(*models.Metric), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMetricService) List(ctx context.Context, filter repositories.MetricFilter) ([]*models.Metric, error) {
	args := m.Called(ctx, filter)
	if mt := args.Get(0); mt != nil {
		return mt.([]*models.Metric), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMetricService) Update(ctx context.Context, id int64, in esg.MetricInput) (*models.Metric, error) {
	args := m.Called(ctx, id, in)
	if mt := args.Get(0); mt != nil {
		return mt.(*models.Metric), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMetricService) Patch(ctx context.Context, id int64, in esg.MetricInput) (*models.Metric, error) {
	args := m.Called(ctx, id, in)
	if mt := args.Get(0); mt != nil {
		return mt.(*models.Metric), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMetricService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
