package esg

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/upb/esg-data-management/internal/clock"
	"github.com/upb/esg-data-management/models"
	"github.com/upb/esg-data-management/repositories"
	"github.com/upb/esg-data-management/services"
	"go.uber.org/zap"
)

type unitFixture struct {
	svc       *BusinessUnitService
	units     *mockUnitRepo
	companies *mockCompanyRepo
	txMgr     *mockTxManager
}

func newUnitFixture() *unitFixture {
	f := &unitFixture{
		units:     new(mockUnitRepo),
		companies: new(mockCompanyRepo),
		txMgr:     new(mockTxManager),
	}
	f.svc = NewBusinessUnitService(f.units, f.companies, f.txMgr, clock.NewFakeClock(testNow), zap.NewNop())
	return f
}

func validUnitInput() BusinessUnitInput {
	return BusinessUnitInput{
		CompanyID: ptr(int64(1)),
		Name:      ptr("Operations"),
		UnitType:  ptr(models.UnitTypeDivision),
		Location:  ptr("Cali"),
	}
}

func TestBusinessUnitService_Create_DefaultsActive(t *testing.T) {
	f := newUnitFixture()
	expectTx(f.txMgr, true)
	f.companies.On("Exists", mock.Anything, int64(1)).Return(true, nil)
	f.units.On("Create", mock.Anything, mock.AnythingOfType("*models.BusinessUnit")).Return(nil)

	unit, err := f.svc.Create(context.Background(), validUnitInput())

	require.NoError(t, err)
	assert.True(t, unit.IsActive)
	assert.Equal(t, testNow, unit.CreatedAt)
}

func TestBusinessUnitService_Create_UnknownCompany(t *testing.T) {
	f := newUnitFixture()
	expectTx(f.txMgr, false)
	f.companies.On("Exists", mock.Anything, int64(1)).Return(false, nil)

	_, err := f.svc.Create(context.Background(), validUnitInput())

	require.Error(t, err)
	assert.True(t, services.IsValidationError(err))
	assert.Equal(t, `Invalid pk "1" - object does not exist.`, services.GetErrorDetails(err)["company"])
	f.units.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBusinessUnitService_Create_DuplicateName(t *testing.T) {
	f := newUnitFixture()
	expectTx(f.txMgr, false)
	f.companies.On("Exists", mock.Anything, int64(1)).Return(true, nil)
	f.units.On("Create", mock.Anything, mock.Anything).Return(&repositories.ConstraintError{
		Kind:       repositories.ConstraintUnique,
		Constraint: "business_units_company_id_name_key",
		Fields:     []string{"company", "name"},
	})

	_, err := f.svc.Create(context.Background(), validUnitInput())

	require.Error(t, err)
	details := services.GetErrorDetails(err)
	assert.Equal(t, "The fields company, name must make a unique set.", details["name"])
	assert.Equal(t, "The fields company, name must make a unique set.", details["company"])
}

func TestBusinessUnitService_Create_InvalidUnitType(t *testing.T) {
	f := newUnitFixture()
	in := validUnitInput()
	in.UnitType = ptr(models.UnitType("TEAM"))

	_, err := f.svc.Create(context.Background(), in)

	require.Error(t, err)
	assert.Contains(t, services.GetErrorDetails(err)["unit_type"], `"TEAM" is not a valid choice`)
}

func TestBusinessUnitService_Patch_Deactivate(t *testing.T) {
	f := newUnitFixture()
	expectTx(f.txMgr, true)
	stored := models.NewBusinessUnit(1, "Operations", models.UnitTypeDivision, "Cali", testNow)
	stored.ID = 3
	f.units.On("GetByID", mock.Anything, int64(3)).Return(stored, nil)
	f.units.On("Update", mock.Anything, stored).Return(nil)

	unit, err := f.svc.Patch(context.Background(), 3, BusinessUnitInput{IsActive: ptr(false)})

	require.NoError(t, err)
	assert.False(t, unit.IsActive)
	assert.Equal(t, "Operations", unit.Name)
	f.companies.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
}

func TestBusinessUnitService_Patch_MoveToUnknownCompany(t *testing.T) {
	f := newUnitFixture()
	expectTx(f.txMgr, false)
	stored := models.NewBusinessUnit(1, "Operations", models.UnitTypeDivision, "Cali", testNow)
	f.units.On("GetByID", mock.Anything, int64(3)).Return(stored, nil)
	f.companies.On("Exists", mock.Anything, int64(42)).Return(false, nil)

	_, err := f.svc.Patch(context.Background(), 3, BusinessUnitInput{CompanyID: ptr(int64(42))})

	require.Error(t, err)
	assert.Contains(t, services.GetErrorDetails(err), "company")
}

func TestBusinessUnitService_Delete_NotFound(t *testing.T) {
	f := newUnitFixture()
	expectTx(f.txMgr, false)
	f.units.On("Delete", mock.Anything, int64(3)).Return(repositories.ErrNotFound)

	err := f.svc.Delete(context.Background(), 3)

	assert.True(t, services.IsNotFoundError(err))
}
