package esg

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/upb/esg-data-management/models"
	"github.com/upb/esg-data-management/repositories"
)

type mockTxManager struct {
	mock.Mock
}

func (m *mockTxManager) Begin(ctx context.Context) (repositories.Transaction, error) {
	args := m.Called(ctx)
	if tx := args.Get(0); tx != nil {
		return tx.(repositories.Transaction), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockTx struct {
	mock.Mock
	ctx context.Context
}

func (m *mockTx) Commit() error            { return m.Called().Error(0) }
func (m *mockTx) Rollback() error          { return m.Called().Error(0) }
func (m *mockTx) Context() context.Context { return m.ctx }

// expectTx wires a transaction that must end with a commit (or a rollback
// when commit is false).
func expectTx(txMgr *mockTxManager, commit bool) *mockTx {
	tx := &mockTx{ctx: context.Background()}
	txMgr.On("Begin", mock.Anything).Return(tx, nil).Once()
	if commit {
		tx.On("Commit").Return(nil).Once()
	} else {
		tx.On("Rollback").Return(nil).Once()
	}
	return tx
}

type mockCompanyRepo struct {
	mock.Mock
}

func (m *mockCompanyRepo) Create(ctx context.Context, c *models.Company) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCompanyRepo) GetByID(ctx context.Context, id int64) (*models.Company, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*models.Company), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCompanyRepo) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockCompanyRepo) List(ctx context.Context, f repositories.CompanyFilter) ([]*models.Company, error) {
	args := m.Called(ctx, f)
	if c := args.Get(0); c != nil {
		return c.([]*models.Company), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCompanyRepo) Update(ctx context.Context, c *models.Company) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCompanyRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockUnitRepo struct {
	mock.Mock
}

func (m *mockUnitRepo) Create(ctx context.Context, u *models.BusinessUnit) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUnitRepo) GetByID(ctx context.Context, id int64) (*models.BusinessUnit, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*models.BusinessUnit), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUnitRepo) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockUnitRepo) List(ctx context.Context, f repositories.BusinessUnitFilter) ([]*models.BusinessUnit, error) {
	args := m.Called(ctx, f)
	if u := args.Get(0); u != nil {
		return u.([]*models.BusinessUnit), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUnitRepo) Update(ctx context.Context, u *models.BusinessUnit) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUnitRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockMetricRepo struct {
	mock.Mock
}

func (m *mockMetricRepo) Create(ctx context.Context, mt *models.Metric) error {
	return m.Called(ctx, mt).Error(0)
}

func (m *mockMetricRepo) GetByID(ctx context.Context, id int64) (*models.Metric, error) {
	args := m.Called(ctx, id)
	if mt := args.Get(0); mt != nil {
		return mt.(*models.Metric), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMetricRepo) List(ctx context.Context, f repositories.MetricFilter) ([]*models.Metric, error) {
	args := m.Called(ctx, f)
	if mt := args.Get(0); mt != nil {
		return mt.([]*models.Metric), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMetricRepo) Update(ctx context.Context, mt *models.Metric) error {
	return m.Called(ctx, mt).Error(0)
}

func (m *mockMetricRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockMetricRepo) SummaryForCompany(ctx context.Context, id int64) (*models.ESGSummary, error) {
	args := m.Called(ctx, id)
	if s := args.Get(0); s != nil {
		return s.(*models.ESGSummary), args.Error(1)
	}
	return nil, args.Error(1)
}

var testNow = time.Date(2025, time.June, 15, 10, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }
