package middleware

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/labstack/echo/v4"

	"catgw/internal/auth"
	apperrors "catgw/internal/errors"
)

// Messages returned by the two gate stages. Clients match on these strings,
// so they are part of the API contract.
const (
	MsgTokenRequired    = "Token de acceso requerido"
	MsgTokenExpired     = "Token expirado"
	MsgUserGone         = "Usuario no encontrado"
	MsgTokenInvalid     = "Token inválido"
	MsgNotAuthenticated = "Usuario no autenticado"
	MsgAccessDenied     = "Acceso denegado"
)

const bearerPrefix = "Bearer "

const claimsContextKey = "auth.claims"

// TokenVerifier validates a presented token and resolves its claims.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*auth.Claims, error)
}

// Authenticate is the first gate stage. It extracts the bearer token from the
// Authorization header and verifies it. A missing header, a prefix other than
// the literal "Bearer ", or an empty remainder is rejected before the verifier
// is ever invoked. On success the resolved claims are attached to the request
// context.
func Authenticate(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, bearerPrefix) {
				return apperrors.NewUnauthorized(MsgTokenRequired)
			}
			tokenString := header[len(bearerPrefix):]
			if tokenString == "" {
				return apperrors.NewUnauthorized(MsgTokenRequired)
			}

			claims, err := verifier.Verify(c.Request().Context(), tokenString)
			if err != nil {
				switch {
				case errors.Is(err, auth.ErrTokenExpired):
					return apperrors.NewUnauthorized(MsgTokenExpired)
				case errors.Is(err, auth.ErrAccountGone), errors.Is(err, auth.ErrClaimMismatch):
					// Both mean the asserted identity no longer exists as such.
					return apperrors.NewUnauthorized(MsgUserGone)
				default:
					return apperrors.NewUnauthorized(MsgTokenInvalid)
				}
			}

			c.Set(claimsContextKey, claims)
			return next(c)
		}
	}
}

// RequireRoles is the second gate stage. It admits the request only when
// claims attached by Authenticate carry one of the given roles.
func RequireRoles(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFromContext(c)
			if !ok {
				return apperrors.NewUnauthorized(MsgNotAuthenticated)
			}
			if !slices.Contains(roles, claims.Role) {
				return apperrors.NewForbidden(MsgAccessDenied)
			}
			return next(c)
		}
	}
}

// ClaimsFromContext returns the claims attached by Authenticate, if any.
func ClaimsFromContext(c echo.Context) (*auth.Claims, bool) {
	claims, ok := c.Get(claimsContextKey).(*auth.Claims)
	return claims, ok
}
