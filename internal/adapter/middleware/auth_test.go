package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func setupAuthEcho(secret string) (*echo.Echo, *string) {
	e := echo.New()
	e.HideBanner = true
	e.Use(ActorClaims(secret))
	var seenActor string
	e.GET("/whoami", func(c echo.Context) error {
		if v, ok := c.Get("actor").(string); ok {
			seenActor = v
		}
		return c.JSON(http.StatusOK, map[string]string{"actor": seenActor})
	})
	return e, &seenActor
}

func TestActorClaims_ExtractsUserID(t *testing.T) {
	e, seen := setupAuthEcho(testSecret)

	token := signToken(t, testSecret, jwt.MapClaims{
		"user_id": "admin-1",
		"org_id":  "mohua",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", rec.Code, rec.Body.String())
	}
	if *seen != "admin-1" {
		t.Fatalf("actor = %q, want admin-1", *seen)
	}
}

func TestActorClaims_FallsBackToSubject(t *testing.T) {
	e, seen := setupAuthEcho(testSecret)

	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": "lender-user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if *seen != "lender-user-1" {
		t.Fatalf("actor = %q, want lender-user-1", *seen)
	}
}

func TestActorClaims_NoHeaderPassesThrough(t *testing.T) {
	e, seen := setupAuthEcho(testSecret)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if *seen != "" {
		t.Fatalf("actor = %q, want empty", *seen)
	}
}

func TestActorClaims_BadSignature(t *testing.T) {
	e, _ := setupAuthEcho(testSecret)

	token := signToken(t, "other-secret", jwt.MapClaims{
		"user_id": "admin-1",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestActorClaims_NonBearerScheme(t *testing.T) {
	e, _ := setupAuthEcho(testSecret)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(echo.HeaderAuthorization, "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}
