// Package middleware holds the echo middlewares of the public API.
package middleware

import (
	"strings"

	"agromart/internal/delivery/api/response"
	deliverycontext "agromart/internal/delivery/context"
	domainerrors "agromart/internal/domain/errors"
	"agromart/internal/domain/policy"
	"agromart/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const (
	profileIDKey = "profileID"
	bearerPrefix = "Bearer "
)

// AuthMiddleware resolves the calling profile from its access token.
type AuthMiddleware struct {
	tokenService service.TokenService
}

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	TokenService service.TokenService
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: params.TokenService,
	}
}

// Authenticate requires a valid Bearer token and attaches the profile as the
// caller of every data access made while serving the request.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if !strings.HasPrefix(header, bearerPrefix) {
			return response.Unauthorized(c, domainerrors.ErrUnauthorized.ErrorCode(), "缺少存取憑證")
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
		profileID, err := m.tokenService.ParseAccessToken(token)
		if err != nil {
			return response.Unauthorized(c, domainerrors.ErrUnauthorized.ErrorCode(), domainerrors.ErrUnauthorized.Message())
		}

		c.Set(profileIDKey, profileID)

		ctx := policy.WithProfile(c.Request().Context(), profileID)
		if logger := deliverycontext.LoggerFrom(ctx); logger != nil {
			ctx = deliverycontext.WithLogger(ctx, logger.With("profile_id", profileID.String()))
		}
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// GetProfileID returns the profile set by Authenticate.
func GetProfileID(c echo.Context) (uuid.UUID, bool) {
	profileID, ok := c.Get(profileIDKey).(uuid.UUID)

	return profileID, ok
}
