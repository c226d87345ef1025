package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestParseLimit(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"1M", 1 << 20},
		{"10M", 10 << 20},
		{"512K", 512 << 10},
		{"1G", 1 << 30},
		{"2048", 2048},
		{"", 1 << 20},
		{"garbage", 1 << 20},
	}
	for _, tt := range tests {
		if got := parseLimit(tt.input); got != tt.want {
			t.Errorf("parseLimit(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestBodyLimit_AllowsSmallBody(t *testing.T) {
	e := echo.New()
	body := strings.NewReader(`{"name":"Jane Doe"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/patients", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := BodyLimit("1M", "10M")
	h := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestBodyLimit_RejectsOversizedBody_ContentLength(t *testing.T) {
	e := echo.New()
	largeBody := bytes.Repeat([]byte("x"), 2048)
	req := httptest.NewRequest(http.MethodPost, "/api/patients", bytes.NewReader(largeBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := BodyLimit("1024", "10M")
	h := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %d", rec.Code)
	}
}

func TestBodyLimit_UsesLargerLimitForSuperbills(t *testing.T) {
	e := echo.New()
	// Larger than the default limit but within the superbill limit.
	visitPayload := bytes.Repeat([]byte("v"), 2048)
	req := httptest.NewRequest(http.MethodPost, "/api/superbills", bytes.NewReader(visitPayload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := BodyLimit("1024", "1M")
	h := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestBodyLimit_RejectsSuperbillOverLimit(t *testing.T) {
	e := echo.New()
	largePayload := bytes.Repeat([]byte("v"), 4096)
	req := httptest.NewRequest(http.MethodPost, "/api/superbills", bytes.NewReader(largePayload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := BodyLimit("1024", "2048")
	h := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %d", rec.Code)
	}
}

func TestBodyLimit_SkipsNilBody(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/patients", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := BodyLimit("1024", "2048")
	h := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestBodyLimit_EnforcesLimitDuringRead(t *testing.T) {
	e := echo.New()
	largeBody := bytes.Repeat([]byte("x"), 4096)
	req := httptest.NewRequest(http.MethodPost, "/api/patients", bytes.NewReader(largeBody))
	req.Header.Set("Content-Type", "application/json")
	// Hide the true size so the Content-Length check cannot reject early.
	req.ContentLength = -1
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := BodyLimit("1024", "2048")
	h := mw(func(c echo.Context) error {
		buf := make([]byte, 8192)
		for {
			if _, err := c.Request().Body.Read(buf); err != nil {
				return err
			}
		}
	})

	err := h(c)
	if err == nil {
		t.Fatal("expected error reading oversized body")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("err = %v, want 413", err)
	}
}
