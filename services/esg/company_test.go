package esg

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/upb/esg-data-management/internal/clock"
	"github.com/upb/esg-data-management/models"
	"github.com/upb/esg-data-management/repositories"
	"github.com/upb/esg-data-management/services"
	"go.uber.org/zap"
)

type companyFixture struct {
	svc       *CompanyService
	companies *mockCompanyRepo
	metrics   *mockMetricRepo
	txMgr     *mockTxManager
	clock     *clock.FakeClock
}

func newCompanyFixture() *companyFixture {
	f := &companyFixture{
		companies: new(mockCompanyRepo),
		metrics:   new(mockMetricRepo),
		txMgr:     new(mockTxManager),
		clock:     clock.NewFakeClock(testNow),
	}
	f.svc = NewCompanyService(f.companies, f.metrics, f.txMgr, f.clock, zap.NewNop())
	return f
}

func validCompanyInput() CompanyInput {
	return CompanyInput{
		Name:                 ptr("Acme Corp"),
		Location:             ptr("Medellín"),
		Sector:               ptr(models.SectorEnergy),
		ReportingPeriodStart: ptr(models.NewDate(2024, time.January, 1)),
		ReportingPeriodEnd:   ptr(models.NewDate(2024, time.December, 31)),
	}
}

func storedCompany() *models.Company {
	c := models.NewCompany("Acme Corp", "Medellín", models.SectorEnergy,
		models.NewDate(2024, time.January, 1), models.NewDate(2024, time.December, 31), testNow.Add(-time.Hour))
	c.ID = 7
	c.Description = ptr("Utility")
	return c
}

func TestCompanyService_Create(t *testing.T) {
	f := newCompanyFixture()
	expectTx(f.txMgr, true)
	f.companies.On("Create", mock.Anything, mock.AnythingOfType("*models.Company")).
		Run(func(args mock.Arguments) { args.Get(1).(*models.Company).ID = 1 }).
		Return(nil)

	company, err := f.svc.Create(context.Background(), validCompanyInput())

	require.NoError(t, err)
	assert.Equal(t, int64(1), company.ID)
	assert.Equal(t, testNow, company.CreatedAt)
	assert.Equal(t, testNow, company.UpdatedAt)
	assert.Nil(t, company.Description)
	f.companies.AssertExpectations(t)
}

func TestCompanyService_Create_PeriodOrder(t *testing.T) {
	for name, end := range map[string]models.Date{
		"end before start": models.NewDate(2023, time.December, 31),
		"end equals start": models.NewDate(2024, time.January, 1),
	} {
		t.Run(name, func(t *testing.T) {
			f := newCompanyFixture()
			in := validCompanyInput()
			in.ReportingPeriodEnd = ptr(end)

			_, err := f.svc.Create(context.Background(), in)

			require.Error(t, err)
			assert.True(t, services.IsValidationError(err))
			details := services.GetErrorDetails(err)
			assert.Equal(t, msgPeriodOrder, details["reporting_period_end"])
			f.companies.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			f.txMgr.AssertNotCalled(t, "Begin", mock.Anything)
		})
	}
}

func TestCompanyService_Create_MissingFields(t *testing.T) {
	f := newCompanyFixture()

	_, err := f.svc.Create(context.Background(), CompanyInput{Sector: ptr(models.Sector("MINING"))})

	require.Error(t, err)
	details := services.GetErrorDetails(err)
	assert.Equal(t, msgRequired, details["name"])
	assert.Equal(t, msgRequired, details["location"])
	assert.Equal(t, msgRequired, details["reporting_period_start"])
	assert.Equal(t, msgRequired, details["reporting_period_end"])
	assert.Contains(t, details["sector"], "is not a valid choice")
}

func TestCompanyService_Get_NotFound(t *testing.T) {
	f := newCompanyFixture()
	f.companies.On("GetByID", mock.Anything, int64(99)).Return(nil, repositories.ErrNotFound)

	_, err := f.svc.Get(context.Background(), 99)

	require.Error(t, err)
	assert.True(t, services.IsNotFoundError(err))
}

func TestCompanyService_List_NeverNil(t *testing.T) {
	f := newCompanyFixture()
	filter := repositories.CompanyFilter{Search: "zzz"}
	f.companies.On("List", mock.Anything, filter).Return(nil, nil)

	companies, err := f.svc.List(context.Background(), filter)

	require.NoError(t, err)
	assert.NotNil(t, companies)
	assert.Empty(t, companies)
}

func TestCompanyService_Update_ClearsAbsentOptionals(t *testing.T) {
	f := newCompanyFixture()
	expectTx(f.txMgr, true)
	f.companies.On("GetByID", mock.Anything, int64(7)).Return(storedCompany(), nil)
	f.companies.On("Update", mock.Anything, mock.AnythingOfType("*models.Company")).Return(nil)

	in := validCompanyInput()
	in.Name = ptr("Acme Renamed")
	company, err := f.svc.Update(context.Background(), 7, in)

	require.NoError(t, err)
	assert.Equal(t, "Acme Renamed", company.Name)
	assert.Nil(t, company.Description)
	assert.Equal(t, testNow, company.UpdatedAt)
	assert.Equal(t, testNow.Add(-time.Hour), company.CreatedAt)
}

func TestCompanyService_Patch_KeepsUnsuppliedFields(t *testing.T) {
	f := newCompanyFixture()
	expectTx(f.txMgr, true)
	f.companies.On("GetByID", mock.Anything, int64(7)).Return(storedCompany(), nil)
	f.companies.On("Update", mock.Anything, mock.AnythingOfType("*models.Company")).Return(nil)

	company, err := f.svc.Patch(context.Background(), 7, CompanyInput{Location: ptr("Bogotá")})

	require.NoError(t, err)
	assert.Equal(t, "Bogotá", company.Location)
	assert.Equal(t, "Acme Corp", company.Name)
	require.NotNil(t, company.Description)
	assert.Equal(t, "Utility", *company.Description)
}

func TestCompanyService_Patch_RechecksPeriodOrder(t *testing.T) {
	f := newCompanyFixture()
	expectTx(f.txMgr, false)
	f.companies.On("GetByID", mock.Anything, int64(7)).Return(storedCompany(), nil)

	_, err := f.svc.Patch(context.Background(), 7, CompanyInput{
		ReportingPeriodEnd: ptr(models.NewDate(2023, time.June, 30)),
	})

	require.Error(t, err)
	assert.True(t, services.IsValidationError(err))
	f.companies.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCompanyService_Delete(t *testing.T) {
	f := newCompanyFixture()
	expectTx(f.txMgr, true)
	f.companies.On("Delete", mock.Anything, int64(7)).Return(nil)

	require.NoError(t, f.svc.Delete(context.Background(), 7))
	f.companies.AssertExpectations(t)
}

func TestCompanyService_Delete_NotFound(t *testing.T) {
	f := newCompanyFixture()
	expectTx(f.txMgr, false)
	f.companies.On("Delete", mock.Anything, int64(7)).Return(repositories.ErrNotFound)

	err := f.svc.Delete(context.Background(), 7)

	assert.True(t, services.IsNotFoundError(err))
}

func TestCompanyService_Summary(t *testing.T) {
	f := newCompanyFixture()
	year := 2024
	want := &models.ESGSummary{CompanyID: 7, TotalMetrics: 3, Environmental: 2, Social: 1, Verified: 1, LatestReportingYear: &year}
	f.metrics.On("SummaryForCompany", mock.Anything, int64(7)).Return(want, nil)

	summary, err := f.svc.Summary(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, want, summary)
}

func TestCompanyService_Summary_UnknownCompany(t *testing.T) {
	f := newCompanyFixture()
	f.metrics.On("SummaryForCompany", mock.Anything, int64(404)).Return(nil, repositories.ErrNotFound)

	_, err := f.svc.Summary(context.Background(), 404)

	require.Error(t, err)
	assert.True(t, services.IsNotFoundError(err))
}

func TestCompanyService_StorageFailureIsInternal(t *testing.T) {
	f := newCompanyFixture()
	f.companies.On("GetByID", mock.Anything, int64(1)).Return(nil, errors.New("connection reset"))

	_, err := f.svc.Get(context.Background(), 1)

	assert.True(t, services.IsInternalError(err))
}
