package handlers

import (
	"context"
	"net/http"

	"github.com/upb/esg-data-management/middleware"
	"github.com/upb/esg-data-management/models"
	"github.com/upb/esg-data-management/repositories"
	"github.com/upb/esg-data-management/services/esg"
	"github.com/upb/esg-data-management/utils"
	"go.uber.org/zap"
)

// MetricService defines the metric operations used by MetricHandler
type MetricService interface {
	Create(ctx context.Context, in esg.MetricInput) (*models.Metric, error)
	Get(ctx context.Context, id int64) (*models.Metric, error)
	List(ctx context.Context, filter repositories.MetricFilter) ([]*models.Metric, error)
	Update(ctx context.Context, id int64, in esg.MetricInput) (*models.Metric, error)
	Patch(ctx context.Context, id int64, in esg.MetricInput) (*models.Metric, error)
	Delete(ctx context.Context, id int64) error
}

// MetricHandler handles metric HTTP requests
type MetricHandler struct {
	service MetricService
	logger  *zap.Logger
}

// NewMetricHandler creates a new MetricHandler
func NewMetricHandler(service MetricService, logger *zap.Logger) *MetricHandler {
	return &MetricHandler{
		service: service,
		logger:  logger,
	}
}

// HandleList handles GET /api/v1/metrics
func (h *MetricHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestIDFromContext(ctx)

	q := newQueryParser(r)
	filter := repositories.MetricFilter{
		BusinessUnitID: q.int64Ptr("business_unit"),
		CompanyID:      q.int64Ptr("company"),
		ReportingYear:  q.intPtr("reporting_year"),
		IsVerified:     q.boolPtr("is_verified"),
		Search:         q.search(),
		Page:           q.page(),
	}
	if v, ok := q.choice("esg_category", func(s string) bool { return models.ESGCategory(s).Valid() }); ok {
		category := models.ESGCategory(v)
		filter.ESGCategory = &category
	}
	if v, ok := q.choice("unit_of_measurement", func(s string) bool { return models.MeasurementUnit(s).Valid() }); ok {
		unit := models.MeasurementUnit(v)
		filter.UnitOfMeasurement = &unit
	}
	if details := q.err(); details != nil {
		_ = utils.WriteBadRequest(w, "Invalid query parameters", details)
		return
	}

	metrics, err := h.service.List(ctx, filter)
	if err != nil {
		h.logger.Error("failed to list metrics",
			zap.String("request_id", requestID),
			zap.Error(err))
		HandleServiceError(w, err, h.logger)
		return
	}

	responses := make([]MetricResponse, len(metrics))
	for i, m := range metrics {
		responses[i] = metricToResponse(m)
	}

	h.logger.Debug("listed metrics",
		zap.String("request_id", requestID),
		zap.Int("count", len(responses)))

	_ = utils.WriteOK(w, responses)
}

// HandleCreate handles POST /api/v1/metrics
func (h *MetricHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestIDFromContext(ctx)

	var in esg.MetricInput
	if err := decodeBody(w, r, &in); err != nil {
		h.logger.Warn("failed to parse request body",
			zap.String("request_id", requestID),
			zap.Error(err))
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	metric, err := h.service.Create(ctx, in)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	h.logger.Info("metric created",
		zap.String("request_id", requestID),
		zap.Int64("metric_id", metric.ID))

	_ = utils.WriteCreated(w, metricToResponse(metric))
}

// HandleGet handles GET /api/v1/metrics/{id}
func (h *MetricHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid metric ID", nil)
		return
	}

	metric, err := h.service.Get(r.Context(), id)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, metricToResponse(metric))
}

// HandleUpdate handles PUT /api/v1/metrics/{id}
func (h *MetricHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, h.service.Update)
}

// HandlePatch handles PATCH /api/v1/metrics/{id}
func (h *MetricHandler) HandlePatch(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, h.service.Patch)
}

func (h *MetricHandler) update(w http.ResponseWriter, r *http.Request, apply func(context.Context, int64, esg.MetricInput) (*models.Metric, error)) {
	ctx := r.Context()
	requestID := middleware.GetRequestIDFromContext(ctx)

	id, err := parseID(r)
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid metric ID", nil)
		return
	}

	var in esg.MetricInput
	if err := decodeBody(w, r, &in); err != nil {
		h.logger.Warn("failed to parse request body",
			zap.String("request_id", requestID),
			zap.Error(err))
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	metric, err := apply(ctx, id, in)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, metricToResponse(metric))
}

// HandleDelete handles DELETE /api/v1/metrics/{id}
func (h *MetricHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid metric ID", nil)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	utils.WriteNoContent(w)
}
