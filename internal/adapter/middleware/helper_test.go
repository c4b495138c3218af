package middleware

import (
	"strings"
	"testing"
	"time"
)

func TestValidReqID(t *testing.T) {
	valid := []string{
		strings.Repeat("a", 32),
		"3f9a6a1b-3d54-4fbe-8b3a-6b3e8d6b2c88",
		"  " + strings.Repeat("f", 32) + "  ", // trimmed
	}
	for _, s := range valid {
		if !validReqID(s) {
			t.Errorf("validReqID(%q) = false, want true", s)
		}
	}
	invalid := []string{"", "short", strings.Repeat("g", 32), "not-a-uuid-at-all"}
	for _, s := range invalid {
		if validReqID(s) {
			t.Errorf("validReqID(%q) = true, want false", s)
		}
	}
}

func TestValidOrgID(t *testing.T) {
	for _, s := range []string{"lender-1", "ulb_42", "ORG9"} {
		if !validOrgID(s) {
			t.Errorf("validOrgID(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"", "-leading-dash", "has spaces", strings.Repeat("x", 65)} {
		if validOrgID(s) {
			t.Errorf("validOrgID(%q) = true, want false", s)
		}
	}
}

func TestParseRequestAt(t *testing.T) {
	// epoch seconds
	got, err := parseRequestAt("1736123456")
	if err != nil || got.Unix() != 1736123456 {
		t.Fatalf("epoch seconds: got %v, err %v", got, err)
	}
	// epoch milliseconds
	got, err = parseRequestAt("1736123456789")
	if err != nil || got.UnixMilli() != 1736123456789 {
		t.Fatalf("epoch ms: got %v, err %v", got, err)
	}
	// RFC3339 with zone is normalized to UTC
	got, err = parseRequestAt("2026-08-31T10:00:00+05:30")
	if err != nil {
		t.Fatalf("RFC3339 with zone: %v", err)
	}
	if got.Location() != time.UTC || got.Hour() != 4 || got.Minute() != 30 {
		t.Fatalf("RFC3339 with zone: got %v, want 04:30 UTC", got)
	}
	// naive timestamps and garbage are rejected
	for _, raw := range []string{"", "2026-08-31 10:00:00", "2026-08-31T10:00:00", "soon"} {
		if _, err := parseRequestAt(raw); err == nil {
			t.Errorf("parseRequestAt(%q) should fail", raw)
		}
	}
}

func TestBuildKey(t *testing.T) {
	key := buildKey("POST", "/commitments/:commitment_id/approve", "lender-1", strings.Repeat("a", 32))
	want := "idemp:mx:post:/commitments/:commitment_id/approve:lender-1:" + strings.Repeat("a", 32)
	if key != want {
		t.Fatalf("key = %q, want %q", key, want)
	}
}
