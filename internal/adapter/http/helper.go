package http

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// actor resolves who performs a mutation: an explicit body field wins,
// otherwise the identity the auth middleware put on the context.
func actor(c echo.Context, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if v, ok := c.Get("actor").(string); ok {
		return v
	}
	return ""
}

func pathID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	return id, err == nil && id > 0
}

func queryInt(c echo.Context, name string, def int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}
	return n
}

// listResponse is the shared envelope for paginated collections.
type listResponse struct {
	Items any   `json:"items"`
	Total int64 `json:"total"`
}

// ---- helpers ----

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
