package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/upb/esg-data-management/handlers"
	"github.com/upb/esg-data-management/middleware"
	"github.com/upb/esg-data-management/models"
	"github.com/upb/esg-data-management/tokens"
	"github.com/upb/esg-data-management/utils"
	"go.uber.org/zap"
)

// Authenticator checks a username and password pair.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
}

// TokenIssuer signs, refreshes and verifies bearer tokens.
type TokenIssuer interface {
	IssuePair(userID int64, username string) (*tokens.Pair, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Verify(ctx context.Context, token string) error
}

const (
	maxBodyBytes     = 1 << 16
	msgTokenNotValid = "Token is invalid or expired"
)

// ObtainRequest is the body of POST /api/v1/token
type ObtainRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest is the body of POST /api/v1/token/refresh
type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// VerifyRequest is the body of POST /api/v1/token/verify
type VerifyRequest struct {
	Token string `json:"token" validate:"required"`
}

// RefreshResponse carries a newly signed access token
type RefreshResponse struct {
	Access string `json:"access"`
}

// Handler serves the token obtain, refresh and verify endpoints.
type Handler struct {
	users  Authenticator
	tokens TokenIssuer
	logger *zap.Logger
}

// NewHandler creates a new auth handler.
func NewHandler(users Authenticator, issuer TokenIssuer, logger *zap.Logger) *Handler {
	return &Handler{
		users:  users,
		tokens: issuer,
		logger: logger,
	}
}

// HandleObtain exchanges credentials for an access and refresh token pair
func (h *Handler) HandleObtain(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestIDFromContext(ctx)

	var req ObtainRequest
	if !h.decode(w, r, &req) {
		return
	}

	user, err := h.users.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		h.logger.Warn("authentication failed",
			zap.String("request_id", requestID),
			zap.String("username", req.Username),
			zap.Error(err))
		handlers.HandleServiceError(w, err, h.logger)
		return
	}

	pair, err := h.tokens.IssuePair(user.ID, user.Username)
	if err != nil {
		h.logger.Error("failed to issue tokens",
			zap.String("request_id", requestID),
			zap.Int64("user_id", user.ID),
			zap.Error(err))
		_ = utils.WriteInternalServerError(w, "Failed to issue tokens")
		return
	}

	h.logger.Info("tokens issued",
		zap.String("request_id", requestID),
		zap.Int64("user_id", user.ID))

	_ = utils.WriteOK(w, pair)
}

// HandleRefresh signs a new access token from a valid refresh token
func (h *Handler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestIDFromContext(ctx)

	var req RefreshRequest
	if !h.decode(w, r, &req) {
		return
	}

	access, err := h.tokens.Refresh(ctx, req.Refresh)
	if err != nil {
		h.logger.Warn("token refresh rejected",
			zap.String("request_id", requestID),
			zap.Error(err))
		_ = utils.WriteUnauthorized(w, msgTokenNotValid)
		return
	}

	_ = utils.WriteOK(w, RefreshResponse{Access: access})
}

// HandleVerify reports whether a token of either type is still valid
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req VerifyRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.tokens.Verify(ctx, req.Token); err != nil {
		h.logger.Debug("token verification failed",
			zap.String("request_id", middleware.GetRequestIDFromContext(ctx)),
			zap.Error(err))
		_ = utils.WriteUnauthorized(w, msgTokenNotValid)
		return
	}

	_ = utils.WriteOK(w, struct{}{})
}

// decode reads and validates the request body, writing a 400 on failure
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return false
	}
	if err := utils.ValidateStruct(dst); err != nil {
		handlers.HandleValidationError(w, err, h.logger)
		return false
	}
	return true
}
