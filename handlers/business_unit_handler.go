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

// BusinessUnitService defines the business unit operations used by BusinessUnitHandler
type BusinessUnitService interface {
	Create(ctx context.Context, in esg.BusinessUnitInput) (*models.BusinessUnit, error)
	Get(ctx context.Context, id int64) (*models.BusinessUnit, error)
	List(ctx context.Context, filter repositories.BusinessUnitFilter) ([]*models.BusinessUnit, error)
	Update(ctx context.Context, id int64, in esg.BusinessUnitInput) (*models.BusinessUnit, error)
	Patch(ctx context.Context, id int64, in esg.BusinessUnitInput) (*models.BusinessUnit, error)
	Delete(ctx context.Context, id int64) error
}

// BusinessUnitHandler handles business unit HTTP requests
type BusinessUnitHandler struct {
	service BusinessUnitService
	logger  *zap.Logger
}

// NewBusinessUnitHandler creates a new BusinessUnitHandler
func NewBusinessUnitHandler(service BusinessUnitService, logger *zap.Logger) *BusinessUnitHandler {
	return &BusinessUnitHandler{
		service: service,
		logger:  logger,
	}
}

// HandleList handles GET /api/v1/business-units
func (h *BusinessUnitHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestIDFromContext(ctx)

	q := newQueryParser(r)
	filter := repositories.BusinessUnitFilter{
		CompanyID: q.int64Ptr("company"),
		IsActive:  q.boolPtr("is_active"),
		Search:    q.search(),
		Page:      q.page(),
	}
	if v, ok := q.choice("unit_type", func(s string) bool { return models.UnitType(s).Valid() }); ok {
		unitType := models.UnitType(v)
		filter.UnitType = &unitType
	}
	if details := q.err(); details != nil {
		_ = utils.WriteBadRequest(w, "Invalid query parameters", details)
		return
	}

	units, err := h.service.List(ctx, filter)
	if err != nil {
		h.logger.Error("failed to list business units",
			zap.String("request_id", requestID),
			zap.Error(err))
		HandleServiceError(w, err, h.logger)
		return
	}

	responses := make([]BusinessUnitResponse, len(units))
	for i, u := range units {
		responses[i] = businessUnitToResponse(u)
	}

	_ = utils.WriteOK(w, responses)
}

// HandleCreate handles POST /api/v1/business-units
func (h *BusinessUnitHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestIDFromContext(ctx)

	var in esg.BusinessUnitInput
	if err := decodeBody(w, r, &in); err != nil {
		h.logger.Warn("failed to parse request body",
			zap.String("request_id", requestID),
			zap.Error(err))
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	unit, err := h.service.Create(ctx, in)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	h.logger.Info("business unit created",
		zap.String("request_id", requestID),
		zap.Int64("business_unit_id", unit.ID))

	_ = utils.WriteCreated(w, businessUnitToResponse(unit))
}

// HandleGet handles GET /api/v1/business-units/{id}
func (h *BusinessUnitHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid business unit ID", nil)
		return
	}

	unit, err := h.service.Get(r.Context(), id)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, businessUnitToResponse(unit))
}

// HandleUpdate handles PUT /api/v1/business-units/{id}
func (h *BusinessUnitHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, h.service.Update)
}

// HandlePatch handles PATCH /api/v1/business-units/{id}
func (h *BusinessUnitHandler) HandlePatch(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, h.service.Patch)
}

func (h *BusinessUnitHandler) update(w http.ResponseWriter, r *http.Request, apply func(context.Context, int64, esg.BusinessUnitInput) (*models.BusinessUnit, error)) {
	ctx := r.Context()
	requestID := middleware.GetRequestIDFromContext(ctx)

	id, err := parseID(r)
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid business unit ID", nil)
		return
	}

	var in esg.BusinessUnitInput
	if err := decodeBody(w, r, &in); err != nil {
		h.logger.Warn("failed to parse request body",
			zap.String("request_id", requestID),
			zap.Error(err))
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	unit, err := apply(ctx, id, in)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, businessUnitToResponse(unit))
}

// HandleDelete handles DELETE /api/v1/business-units/{id}
func (h *BusinessUnitHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid business unit ID", nil)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	utils.WriteNoContent(w)
}
