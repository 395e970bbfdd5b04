package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// JWTConfig holds the signing settings for API client tokens.
type JWTConfig struct {
	Secret          string `validate:"min=16"`
	ExpirationHours int    `validate:"min=1"`
}

// ErrJWTDisabled is returned by NewJWTConfig when JWT_SECRET is not set. The server then
// accepts unauthenticated prediction requests.
var ErrJWTDisabled = errors.New("JWT_SECRET is not set")

const defaultExpirationHours = 24

// NewJWTConfig reads JWT_SECRET and JWT_EXPIRATION_HOURS (default 24).
func NewJWTConfig() (*JWTConfig, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, ErrJWTDisabled
	}

	cfg := &JWTConfig{Secret: secret, ExpirationHours: defaultExpirationHours}
	if raw := strings.TrimSpace(os.Getenv("JWT_EXPIRATION_HOURS")); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_EXPIRATION_HOURS: %w", err)
		}
		cfg.ExpirationHours = hours
	}

	if err := validator.New().Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) || len(verrs) == 0 {
			return nil, err
		}
		switch fe := verrs[0]; fe.Field() {
		case "Secret":
			return nil, fmt.Errorf("JWT_SECRET must be at least %s characters", fe.Param())
		default:
			return nil, fmt.Errorf("JWT_EXPIRATION_HOURS must be at least %s hour, got: %v", fe.Param(), fe.Value())
		}
	}
	return cfg, nil
}

// TTL is the lifetime of a freshly issued token.
func (c *JWTConfig) TTL() time.Duration {
	return time.Duration(c.ExpirationHours) * time.Hour
}
