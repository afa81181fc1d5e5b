package middleware

import (
	"crypto/subtle"
	"strings"

	"agromart/config"
	"agromart/internal/delivery/api/response"
	"agromart/internal/domain/constants"
	domainerrors "agromart/internal/domain/errors"
	"agromart/internal/domain/policy"

	"github.com/labstack/echo/v4"
)

// ServiceKeyMiddleware guards platform-only endpoints with a shared key.
type ServiceKeyMiddleware struct {
	key []byte
}

// NewServiceKeyMiddleware reads the key from secretKey.service.
// An empty key rejects every request.
func NewServiceKeyMiddleware(cfg *config.Config) *ServiceKeyMiddleware {
	return &ServiceKeyMiddleware{
		key: []byte(strings.TrimSpace(cfg.SecretKey.Service)),
	}
}

// RequireServiceKey runs the request with the service role when the
// X-Service-Key header matches.
func (m *ServiceKeyMiddleware) RequireServiceKey(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		provided := []byte(c.Request().Header.Get(constants.HeaderServiceKey))
		if len(m.key) == 0 || subtle.ConstantTimeCompare(provided, m.key) != 1 {
			return response.Forbidden(c, domainerrors.ErrForbidden.ErrorCode(), domainerrors.ErrForbidden.Message())
		}

		ctx := policy.AsService(c.Request().Context())
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}
