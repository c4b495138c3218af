package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"munify-backend/pkg/id"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// helper: new Echo with the middleware and a simple route
func setupEcho(rdb *redis.Client, ttl time.Duration, handler echo.HandlerFunc) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(Idempotency(rdb, ttl, zerolog.Nop()))
	e.POST("/commitments", handler)
	e.GET("/commitments", handler) // for non-mutating bypass test
	return e
}

func mkJSONBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return bytes.NewReader(b)
}

func doReq(t *testing.T, e *echo.Echo, method, path string, body io.Reader, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func newMiniredisClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, rdb
}

func validHeaders() map[string]string {
	return map[string]string{
		"Mx-Request-Id": id.NewID32(),
		"Mx-Request-At": time.Now().UTC().Format(time.RFC3339),
		"Mx-Org-Id":     "lender-1",
	}
}

// simple handler to exercise respRecorder capture & saveFinal
func okCreatedHandler(c echo.Context) error {
	return c.JSON(http.StatusCreated, map[string]any{"ok": true})
}

func Test_BypassOnGET_NoHeadersRequired(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	e := setupEcho(rdb, 30*time.Second, func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "get ok"})
	})
	rec := doReq(t, e, http.MethodGet, "/commitments", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func Test_ValidationFailures(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	e := setupEcho(rdb, 30*time.Second, okCreatedHandler)

	cases := []struct {
		name   string
		mutate func(h map[string]string)
	}{
		{"missing Mx-Request-Id", func(h map[string]string) { delete(h, "Mx-Request-Id") }},
		{"invalid Mx-Request-Id", func(h map[string]string) { h["Mx-Request-Id"] = "NOT-VALID" }},
		{"invalid Mx-Request-At", func(h map[string]string) { h["Mx-Request-At"] = "not-a-time" }},
		{"naive Mx-Request-At", func(h map[string]string) { h["Mx-Request-At"] = "2026-08-31 10:00:00" }},
		{"skewed Mx-Request-At", func(h map[string]string) {
			h["Mx-Request-At"] = time.Now().UTC().Add(-time.Hour).Format(time.RFC3339)
		}},
		{"missing Mx-Org-Id", func(h map[string]string) { delete(h, "Mx-Org-Id") }},
		{"invalid Mx-Org-Id", func(h map[string]string) { h["Mx-Org-Id"] = "has spaces!" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := validHeaders()
			tc.mutate(h)
			rec := doReq(t, e, http.MethodPost, "/commitments", mkJSONBody(t, map[string]int{"x": 1}), h)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("want 400, got %d (%s)", rec.Code, rec.Body.String())
			}
		})
	}
}

func Test_FirstCallRunsHandler_SecondReplays(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()

	calls := 0
	e := setupEcho(rdb, 30*time.Second, func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusCreated, map[string]any{"call": calls})
	})

	h := validHeaders()
	body := map[string]any{"amount": 60000}

	rec := doReq(t, e, http.MethodPost, "/commitments", mkJSONBody(t, body), h)
	if rec.Code != http.StatusCreated {
		t.Fatalf("first call: want 201, got %d", rec.Code)
	}

	rec = doReq(t, e, http.MethodPost, "/commitments", mkJSONBody(t, body), h)
	if rec.Code != http.StatusCreated {
		t.Fatalf("replay: want 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	if calls != 1 {
		t.Fatalf("handler calls = %d, want 1 (second call must replay)", calls)
	}
	var got map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &got)
	if got["call"] != float64(1) {
		t.Fatalf("replayed body = %v, want recording of first call", got)
	}
}

func Test_SameRequestIDDifferentBody_Conflict(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()
	e := setupEcho(rdb, 30*time.Second, okCreatedHandler)

	h := validHeaders()
	rec := doReq(t, e, http.MethodPost, "/commitments", mkJSONBody(t, map[string]int{"amount": 1}), h)
	if rec.Code != http.StatusCreated {
		t.Fatalf("first call: want 201, got %d", rec.Code)
	}

	rec = doReq(t, e, http.MethodPost, "/commitments", mkJSONBody(t, map[string]int{"amount": 2}), h)
	if rec.Code != http.StatusConflict {
		t.Fatalf("want 409 for reused id with different body, got %d", rec.Code)
	}
}

func Test_DifferentOrgsDoNotCollide(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	defer mr.Close()

	calls := 0
	e := setupEcho(rdb, 30*time.Second, func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusCreated, map[string]any{"ok": true})
	})

	body := map[string]int{"amount": 1}
	reqID := id.NewID32()
	h1 := validHeaders()
	h1["Mx-Request-Id"] = reqID
	h1["Mx-Org-Id"] = "lender-1"
	h2 := validHeaders()
	h2["Mx-Request-Id"] = reqID
	h2["Mx-Org-Id"] = "lender-2"

	doReq(t, e, http.MethodPost, "/commitments", mkJSONBody(t, body), h1)
	doReq(t, e, http.MethodPost, "/commitments", mkJSONBody(t, body), h2)
	if calls != 2 {
		t.Fatalf("handler calls = %d, want 2 (per-org keys)", calls)
	}
}

func Test_StoreUnavailable(t *testing.T) {
	mr, rdb := newMiniredisClient(t)
	mr.Close() // kill the store before the request

	e := setupEcho(rdb, 30*time.Second, okCreatedHandler)
	rec := doReq(t, e, http.MethodPost, "/commitments", mkJSONBody(t, map[string]int{"x": 1}), validHeaders())
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("want 503, got %d", rec.Code)
	}
}
