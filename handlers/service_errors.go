package handlers

import (
	"errors"
	"net/http"

	"github.com/upb/esg-data-management/services"
	"github.com/upb/esg-data-management/utils"
	"go.uber.org/zap"
)

// HandleServiceError maps domain errors to HTTP responses
func HandleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if err == nil {
		return
	}

	var domainErr *services.DomainError
	if !errors.As(err, &domainErr) {
		logger.Error("unhandled error type", zap.Error(err))
		if err := utils.WriteInternalServerError(w, "An unexpected error occurred"); err != nil {
			logger.Error("failed to write internal error response", zap.Error(err))
		}
		return
	}

	switch domainErr.Type {
	case services.ErrorTypeNotFound:
		if err := utils.WriteNotFound(w, domainErr.Message); err != nil {
			logger.Error("failed to write not found response", zap.Error(err))
		}

	case services.ErrorTypeValidation:
		if err := utils.WriteBadRequest(w, domainErr.Message, domainErr.Details); err != nil {
			logger.Error("failed to write bad request response", zap.Error(err))
		}

	case services.ErrorTypeUnauthorized:
		if err := utils.WriteUnauthorized(w, domainErr.Message); err != nil {
			logger.Error("failed to write unauthorized response", zap.Error(err))
		}

	default:
		// Log internal errors but return generic message
		logger.Error("internal server error",
			zap.Error(err),
			zap.String("error_type", string(domainErr.Type)))
		if err := utils.WriteInternalServerError(w, "An internal error occurred"); err != nil {
			logger.Error("failed to write internal error response", zap.Error(err))
		}
		return
	}

	logger.Debug("handled service error",
		zap.String("type", string(domainErr.Type)),
		zap.String("message", domainErr.Message),
		zap.Any("details", domainErr.Details))
}

// HandleValidationError handles validation errors from request parsing
func HandleValidationError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if utils.IsValidationError(err) {
		fields := utils.GetValidationFields(err)
		details := make(map[string]interface{})
		for k, v := range fields {
			details[k] = v
		}
		if err := utils.WriteBadRequest(w, "Validation failed", details); err != nil {
			logger.Error("failed to write validation error response", zap.Error(err))
		}
		return
	}

	if err := utils.WriteBadRequest(w, err.Error(), nil); err != nil {
		logger.Error("failed to write validation error response", zap.Error(err))
	}
}
