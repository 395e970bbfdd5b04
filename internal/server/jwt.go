package server

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/alfandoo/Attrition-Predict/internal/config"
	"github.com/alfandoo/Attrition-Predict/internal/server/middleware"
)

// tokenIssuer is set on every token and required when validating.
const tokenIssuer = "attrition-predict"

// Claims identifies an API client.
type Claims struct {
	ClientID uuid.UUID `json:"client_id"`
	jwt.RegisteredClaims
}

// GetClientID returns the client ID from the claims.
// This implements the middleware.ClientIDGetter interface.
func (c *Claims) GetClientID() uuid.UUID {
	return c.ClientID
}

// AsTokenValidator returns a TokenValidator adapter for this JWTService.
func (s *JWTService) AsTokenValidator() middleware.TokenValidator {
	return &jwtServiceValidator{service: s}
}

// jwtServiceValidator adapts JWTService to middleware.TokenValidator interface.
type jwtServiceValidator struct {
	service *JWTService
}

func (v *jwtServiceValidator) ValidateToken(tokenString string) (middleware.ClientIDGetter, error) {
	claims, err := v.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// JWTService signs and checks API client tokens.
type JWTService struct {
	config *config.JWTConfig
	now    func() time.Time
}

// NewJWTService creates a new JWT service with the given configuration.
func NewJWTService(cfg *config.JWTConfig) *JWTService {
	return &JWTService{config: cfg, now: time.Now}
}

// GenerateToken issues a token for clientID. name is stored as the subject so that
// operators can tell tokens apart.
func (s *JWTService) GenerateToken(clientID uuid.UUID, name string) (string, error) {
	now := s.now()
	expiresAt := now.Add(s.config.TTL())

	claims := &Claims{
		ClientID: clientID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   name,
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken validates a token and returns its claims. Every failure is an
// *ErrInvalidToken.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, &ErrInvalidToken{Reason: "token string is empty"}
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (interface{}, error) {
			return []byte(s.config.Secret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, &ErrInvalidToken{Reason: "token expired", Cause: err}
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, &ErrInvalidToken{Reason: "invalid token signature", Cause: err}
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, &ErrInvalidToken{Reason: "malformed token", Cause: err}
		default:
			return nil, &ErrInvalidToken{Reason: "failed to parse token", Cause: err}
		}
	}
	if !token.Valid {
		return nil, &ErrInvalidToken{Reason: "token is not valid"}
	}
	if claims.ClientID == uuid.Nil {
		return nil, &ErrInvalidToken{Reason: "token has no client id"}
	}
	return claims, nil
}
