// Package tokens issues and validates the HS256 bearer tokens used by the API.
package tokens

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/upb/esg-data-management/internal/clock"
)

var (
	// ErrInvalidToken is returned when the token is malformed, badly signed or
	// from another issuer
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired is returned when the token has expired
	ErrTokenExpired = errors.New("token expired")

	// ErrWrongTokenType is returned when a refresh token is used as an access
	// token or the other way around
	ErrWrongTokenType = errors.New("wrong token type")
)

// Type distinguishes access tokens from refresh tokens.
type Type string

const (
	TypeAccess  Type = "access"
	TypeRefresh Type = "refresh"
)

// Claims represents the claims carried by every token
type Claims struct {
	jwt.RegisteredClaims
	TokenType Type   `json:"token_type"`
	Username  string `json:"username"`
}

// UserID returns the numeric user ID held in the subject claim.
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: subject %q is not a user id", ErrInvalidToken, c.Subject)
	}
	return id, nil
}

// Pair is the result of a successful login.
type Pair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Config holds configuration for a Service
type Config struct {
	SigningKey string
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Service signs and validates tokens with a shared secret
type Service struct {
	key        []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	clock      clock.Clock
}

// NewService creates a token service. A nil clock uses the system clock.
func NewService(cfg Config, clk clock.Clock) *Service {
	if clk == nil {
		clk = clock.System()
	}
	return &Service{
		key:        []byte(cfg.SigningKey),
		issuer:     cfg.Issuer,
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		clock:      clk,
	}
}

// IssuePair signs a new access and refresh token for the user
func (s *Service) IssuePair(userID int64, username string) (*Pair, error) {
	access, err := s.sign(TypeAccess, userID, username, s.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.sign(TypeRefresh, userID, username, s.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &Pair{Access: access, Refresh: refresh}, nil
}

// Refresh validates a refresh token and signs a new access token for its subject
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.validate(refreshToken, TypeRefresh)
	if err != nil {
		return "", err
	}
	userID, err := claims.UserID()
	if err != nil {
		return "", err
	}
	return s.sign(TypeAccess, userID, claims.Username, s.accessTTL)
}

// ValidateToken validates an access token and returns its claims
func (s *Service) ValidateToken(ctx context.Context, token string) (*Claims, error) {
	return s.validate(token, TypeAccess)
}

// Verify checks the signature, issuer and expiry of a token of either type
func (s *Service) Verify(ctx context.Context, token string) error {
	_, err := s.validate(token, "")
	return err
}

func (s *Service) sign(tokenType Type, userID int64, username string, ttl time.Duration) (string, error) {
	now := s.clock.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   strconv.FormatInt(userID, 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		TokenType: tokenType,
		Username:  username,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}
	return signed, nil
}

// validate parses the token; an empty want accepts either token type.
func (s *Service) validate(tokenString string, want Type) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return s.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	switch claims.TokenType {
	case TypeAccess, TypeRefresh:
	default:
		return nil, fmt.Errorf("%w: unknown token_type %q", ErrInvalidToken, claims.TokenType)
	}
	if want != "" && claims.TokenType != want {
		return nil, fmt.Errorf("%w: expected %s, got %s", ErrWrongTokenType, want, claims.TokenType)
	}

	return claims, nil
}
