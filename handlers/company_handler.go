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

// CompanyService defines the company operations used by CompanyHandler
type CompanyService interface {
	Create(ctx context.Context, in esg.CompanyInput) (*models.Company, error)
	Get(ctx context.Context, id int64) (*models.Company, error)
	List(ctx context.Context, filter repositories.CompanyFilter) ([]*models.Company, error)
	Update(ctx context.Context, id int64, in esg.CompanyInput) (*models.Company, error)
	Patch(ctx context.Context, id int64, in esg.CompanyInput) (*models.Company, error)
	Delete(ctx context.Context, id int64) error
	Summary(ctx context.Context, id int64) (*models.ESGSummary, error)
}

// CompanyHandler handles company-related HTTP requests
type CompanyHandler struct {
	service CompanyService
	logger  *zap.Logger
}

// NewCompanyHandler creates a new CompanyHandler
func NewCompanyHandler(service CompanyService, logger *zap.Logger) *CompanyHandler {
	return &CompanyHandler{
		service: service,
		logger:  logger,
	}
}

// HandleList handles GET /api/v1/companies
func (h *CompanyHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestIDFromContext(ctx)

	q := newQueryParser(r)
	filter := repositories.CompanyFilter{Search: q.search(), Page: q.page()}
	if v, ok := q.choice("sector", func(s string) bool { return models.Sector(s).Valid() }); ok {
		sector := models.Sector(v)
		filter.Sector = &sector
	}
	if details := q.err(); details != nil {
		_ = utils.WriteBadRequest(w, "Invalid query parameters", details)
		return
	}

	companies, err := h.service.List(ctx, filter)
	if err != nil {
		h.logger.Error("failed to list companies",
			zap.String("request_id", requestID),
			zap.Error(err))
		HandleServiceError(w, err, h.logger)
		return
	}

	responses := make([]CompanyResponse, len(companies))
	for i, c := range companies {
		responses[i] = companyToResponse(c)
	}

	h.logger.Debug("listed companies",
		zap.String("request_id", requestID),
		zap.Int("count", len(responses)))

	_ = utils.WriteOK(w, responses)
}

// HandleCreate handles POST /api/v1/companies
func (h *CompanyHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestIDFromContext(ctx)

	var in esg.CompanyInput
	if err := decodeBody(w, r, &in); err != nil {
		h.logger.Warn("failed to parse request body",
			zap.String("request_id", requestID),
			zap.Error(err))
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	company, err := h.service.Create(ctx, in)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	h.logger.Info("company created",
		zap.String("request_id", requestID),
		zap.Int64("company_id", company.ID))

	_ = utils.WriteCreated(w, companyToResponse(company))
}

// HandleGet handles GET /api/v1/companies/{id}
func (h *CompanyHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid company ID", nil)
		return
	}

	company, err := h.service.Get(r.Context(), id)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, companyToResponse(company))
}

// HandleUpdate handles PUT /api/v1/companies/{id}
func (h *CompanyHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, h.service.Update)
}

// HandlePatch handles PATCH /api/v1/companies/{id}
func (h *CompanyHandler) HandlePatch(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, h.service.Patch)
}

func (h *CompanyHandler) update(w http.ResponseWriter, r *http.Request, apply func(context.Context, int64, esg.CompanyInput) (*models.Company, error)) {
	ctx := r.Context()
	requestID := middleware.GetRequestIDFromContext(ctx)

	id, err := parseID(r)
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid company ID", nil)
		return
	}

	var in esg.CompanyInput
	if err := decodeBody(w, r, &in); err != nil {
		h.logger.Warn("failed to parse request body",
			zap.String("request_id", requestID),
			zap.Error(err))
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	company, err := apply(ctx, id, in)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	h.logger.Info("company updated",
		zap.String("request_id", requestID),
		zap.Int64("company_id", id),
		zap.String("method", r.Method))

	_ = utils.WriteOK(w, companyToResponse(company))
}

// HandleDelete handles DELETE /api/v1/companies/{id}
func (h *CompanyHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := parseID(r)
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid company ID", nil)
		return
	}

	if err := h.service.Delete(ctx, id); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	h.logger.Info("company deleted",
		zap.String("request_id", middleware.GetRequestIDFromContext(ctx)),
		zap.Int64("company_id", id))

	utils.WriteNoContent(w)
}

// HandleSummary handles GET /api/v1/companies/{id}/esg-summary
func (h *CompanyHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid company ID", nil)
		return
	}

	summary, err := h.service.Summary(r.Context(), id)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, summaryToResponse(summary))
}
