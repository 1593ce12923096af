package middleware // middleware contains reusable HTTP middleware functions

import (
    "errors"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/social-feed/internal/utils"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the resolved user ID into the request context under
// "user_id".  The provided secret must match the one used when issuing
// tokens; it is captured here once at construction and never re-read.
//
// The per-request check walks a fixed sequence: no Authorization header at
// all is a 401 (the caller never authenticated); a header whose token
// fails signature or expiry checks is a 403; a token that verifies but
// carries no usable subject is a 403 with a distinct message.  Only a
// fully validated token reaches the downstream handler.
func JWTAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            auth := c.Request().Header.Get("Authorization")
            if auth == "" {
                return c.JSON(http.StatusUnauthorized, echo.Map{"message": "access denied: no token provided"})
            }
            // Accept both "Bearer <token>" and a bare token value.
            raw := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))

            uid, err := utils.ParseAccessToken(secret, raw)
            if err != nil {
                if errors.Is(err, utils.ErrInvalidSubject) {
                    return c.JSON(http.StatusForbidden, echo.Map{"message": "invalid token payload"})
                }
                return c.JSON(http.StatusForbidden, echo.Map{"message": "invalid token"})
            }

            c.Set("user_id", uid)
            return next(c)
        }
    }
}
