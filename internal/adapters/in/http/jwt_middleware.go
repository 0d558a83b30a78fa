package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// ownerContextKey is where the auth middleware stores the verified owner id.
const ownerContextKey = "owner_id"

// OwnerID returns the owner identity established by the auth middleware, or
// the empty string on an unauthenticated request.
func OwnerID(ctx echo.Context) string {
	owner, _ := ctx.Get(ownerContextKey).(string)
	return owner
}

// NewAuthMiddleware verifies the Bearer token (HS256) and stores the token
// subject as the request's owner identity. Requests without a valid token are
// rejected with 401.
func NewAuthMiddleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			header := ctx.Request().Header.Get(echo.HeaderAuthorization)
			rawToken, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || rawToken == "" {
				return ctx.JSON(http.StatusUnauthorized, errorResponse{
					Code:    http.StatusUnauthorized,
					Message: "Missing bearer token",
				})
			}

			token, err := jwt.Parse(rawToken, func(t *jwt.Token) (any, error) {
				if _, isHMAC := t.Method.(*jwt.SigningMethodHMAC); !isHMAC {
					return nil, fmt.Errorf("unexpected signing method %s", t.Method.Alg())
				}
				return secret, nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !token.Valid {
				return ctx.JSON(http.StatusUnauthorized, errorResponse{
					Code:    http.StatusUnauthorized,
					Message: "Invalid token",
				})
			}

			subject, err := token.Claims.GetSubject()
			if err != nil || subject == "" {
				return ctx.JSON(http.StatusUnauthorized, errorResponse{
					Code:    http.StatusUnauthorized,
					Message: "Token has no subject",
				})
			}

			ctx.Set(ownerContextKey, subject)
			return next(ctx)
		}
	}
}
