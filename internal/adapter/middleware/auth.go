package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

type actorClaims struct {
	UserID string `json:"user_id"`
	OrgID  string `json:"org_id"`
	jwt.RegisteredClaims
}

// ActorClaims extracts the acting user from a bearer token and puts it on
// the context under "actor" (and "actor_org" when present). Requests
// without an Authorization header pass through untouched so body-supplied
// actor fields keep working; a malformed or badly signed token is rejected.
func ActorClaims(secret string) echo.MiddlewareFunc {
	keyFn := func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(echo.HeaderAuthorization)
			if raw == "" {
				return next(c)
			}
			token := strings.TrimPrefix(raw, "Bearer ")
			if token == raw {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authorization header must use the Bearer scheme"})
			}

			var claims actorClaims
			parsed, err := jwt.ParseWithClaims(token, &claims, keyFn)
			if err != nil || !parsed.Valid {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid bearer token"})
			}

			actor := claims.UserID
			if actor == "" {
				actor = claims.Subject
			}
			if actor != "" {
				c.Set("actor", actor)
			}
			if claims.OrgID != "" {
				c.Set("actor_org", claims.OrgID)
			}
			return next(c)
		}
	}
}
