package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestAuthSkipper(t *testing.T) {
	tests := []struct {
		path string
		skip bool
	}{
		{"/health", true},
		{"/health/db", true},
		{"/ws", true},
		{"/api/superbills", false},
		{"/api/patients", false},
		{"/", false},
	}

	e := echo.New()
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, tt.path, nil)
		c := e.NewContext(req, httptest.NewRecorder())
		c.SetPath(tt.path)
		if got := AuthSkipper(c); got != tt.skip {
			t.Errorf("AuthSkipper(%s) = %v, want %v", tt.path, got, tt.skip)
		}
	}
}

func TestIsPublicPath(t *testing.T) {
	if !IsPublicPath("/health") {
		t.Error("/health should be public")
	}
	if IsPublicPath("/api/superbills") {
		t.Error("/api/superbills should require auth")
	}
}
