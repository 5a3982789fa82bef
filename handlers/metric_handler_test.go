package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/upb/esg-data-management/models"
	"github.com/upb/esg-data-management/repositories"
	"github.com/upb/esg-data-management/services"
	"github.com/upb/esg-data-management/services/esg"
	"go.uber.org/zap"
)

func metricRouter(svc MetricService) http.Handler {
	h := NewMetricHandler(svc, zap.NewNop())
	r := chi.NewRouter()
	r.Get("/metrics", h.HandleList)
	r.Post("/metrics", h.HandleCreate)
	r.Get("/metrics/{id}", h.HandleGet)
	r.Put("/metrics/{id}", h.HandleUpdate)
	r.Patch("/metrics/{id}", h.HandlePatch)
	r.Delete("/metrics/{id}", h.HandleDelete)
	return r
}

func sampleMetric() *models.Metric {
	m := models.NewMetric(3, "Scope 1 emissions", models.CategoryEnvironmental, "emissions",
		models.UnitTonnes, decimal.RequireFromString("1250.5"), 2024, handlerTime)
	m.ID = 11
	return m
}

func TestMetricHandler_Create(t *testing.T) {
	svc := new(MockMetricService)
	svc.On("Create", mock.Anything, mock.MatchedBy(func(in esg.MetricInput) bool {
		return in.Value != nil && in.Value.Equal(decimal.RequireFromString("1250.5")) &&
			in.BusinessUnitID != nil && *in.BusinessUnitID == 3 && in.ReportingPeriod == nil
	})).Return(sampleMetric(), nil)

	w := serve(metricRouter(svc), http.MethodPost, "/metrics", `{
		"business_unit": 3,
		"name": "Scope 1 emissions",
		"esg_category": "ENVIRONMENTAL",
		"metric_type": "emissions",
		"unit_of_measurement": "TONNES",
		"value": "1250.5",
		"reporting_year": 2024
	}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := decodeBodyMap(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "1250.5000", data["value"])
	assert.EqualValues(t, 3, data["business_unit"])
	assert.Equal(t, "ANNUAL", data["reporting_period"])
	assert.Equal(t, false, data["is_verified"])
	assert.Nil(t, data["data_source"])
	svc.AssertExpectations(t)
}

func TestMetricHandler_Create_NumericValue(t *testing.T) {
	svc := new(MockMetricService)
	svc.On("Create", mock.Anything, mock.MatchedBy(func(in esg.MetricInput) bool {
		return in.Value != nil && in.Value.Equal(decimal.RequireFromString("42.125"))
	})).Return(sampleMetric(), nil)

	w := serve(metricRouter(svc), http.MethodPost, "/metrics", `{"value": 42.125}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestMetricHandler_Create_FutureYear(t *testing.T) {
	svc := new(MockMetricService)
	svc.On("Create", mock.Anything, mock.Anything).Return(nil,
		services.NewFieldError("reporting_year", "Reporting year cannot be in the future (current year: 2025)."))

	w := serve(metricRouter(svc), http.MethodPost, "/metrics", `{"reporting_year": 2030}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	details := decodeBodyMap(t, w)["details"].(map[string]interface{})
	assert.Equal(t, "Reporting year cannot be in the future (current year: 2025).", details["reporting_year"])
}

func TestMetricHandler_List_Filters(t *testing.T) {
	svc := new(MockMetricService)
	unit := int64(3)
	company := int64(1)
	year := 2024
	verified := true
	category := models.CategorySocial
	measurement := models.UnitHours
	svc.On("List", mock.Anything, repositories.MetricFilter{
		BusinessUnitID:    &unit,
		CompanyID:         &company,
		ESGCategory:       &category,
		ReportingYear:     &year,
		UnitOfMeasurement: &measurement,
		IsVerified:        &verified,
		Search:            "training",
	}).Return([]*models.Metric{sampleMetric()}, nil)

	w := serve(metricRouter(svc), http.MethodGet,
		"/metrics?business_unit=3&company=1&esg_category=SOCIAL&reporting_year=2024&unit_of_measurement=hours&is_verified=true&search=training", "")

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestMetricHandler_List_InvalidFilters(t *testing.T) {
	svc := new(MockMetricService)

	w := serve(metricRouter(svc), http.MethodGet, "/metrics?reporting_year=last&is_verified=maybe&esg_category=OTHER", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	details := decodeBodyMap(t, w)["details"].(map[string]interface{})
	assert.Len(t, details, 3)
}

func TestMetricHandler_Patch(t *testing.T) {
	svc := new(MockMetricService)
	verified := sampleMetric()
	verified.IsVerified = true
	verified.UpdatedAt = handlerTime.Add(time.Hour)
	svc.On("Patch", mock.Anything, int64(11), mock.MatchedBy(func(in esg.MetricInput) bool {
		return in.IsVerified != nil && *in.IsVerified && in.Value == nil
	})).Return(verified, nil)

	w := serve(metricRouter(svc), http.MethodPatch, "/metrics/11", `{"is_verified": true}`)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeBodyMap(t, w)["data"].(map[string]interface{})
	assert.Equal(t, true, data["is_verified"])
	assert.Equal(t, "2025-02-03T05:05:06Z", data["updated_at"])
}

func TestMetricHandler_Delete(t *testing.T) {
	svc := new(MockMetricService)
	svc.On("Delete", mock.Anything, int64(11)).Return(nil)

	w := serve(metricRouter(svc), http.MethodDelete, "/metrics/11", "")

	assert.Equal(t, http.StatusNoContent, w.Code)
}
