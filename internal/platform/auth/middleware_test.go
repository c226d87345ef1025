package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

var testSigningKey = []byte("test-secret")

func signToken(t *testing.T, claims *Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(testSigningKey)
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

func doRequest(mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, *Claims) {
	e := echo.New()
	var got *Claims
	handler := mw(func(c echo.Context) error {
		got, _ = ClaimsFromContext(c)
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/superbills", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/superbills")
	_ = handler(c)
	return rec, got
}

func TestJWTMiddleware_ValidToken(t *testing.T) {
	mw := JWTMiddleware(JWTConfig{SigningKey: testSigningKey})
	token := signToken(t, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Email: "biller@clinic.test",
		Roles: []string{"biller"},
	})

	rec, claims := doRequest(mw, "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if claims == nil || claims.Subject != "user-123" {
		t.Fatalf("claims = %+v, want subject user-123", claims)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != "biller" {
		t.Errorf("roles = %v", claims.Roles)
	}
}

func TestJWTMiddleware_MissingHeader(t *testing.T) {
	mw := JWTMiddleware(JWTConfig{SigningKey: testSigningKey})
	e := echo.New()
	handler := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/api/superbills", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/api/superbills")

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("err = %v, want 401", err)
	}
}

func TestJWTMiddleware_ExpiredToken(t *testing.T) {
	mw := JWTMiddleware(JWTConfig{SigningKey: testSigningKey})
	token := signToken(t, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})

	e := echo.New()
	handler := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	req := httptest.NewRequest(http.MethodGet, "/api/superbills", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/api/superbills")

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("err = %v, want 401", err)
	}
}

func TestJWTMiddleware_MalformedHeader(t *testing.T) {
	mw := JWTMiddleware(JWTConfig{SigningKey: testSigningKey})
	e := echo.New()
	handler := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	for _, header := range []string{"Basic abc", "Bearer", "garbage"} {
		req := httptest.NewRequest(http.MethodGet, "/api/superbills", nil)
		req.Header.Set("Authorization", header)
		c := e.NewContext(req, httptest.NewRecorder())
		c.SetPath("/api/superbills")

		err := handler(c)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusUnauthorized {
			t.Errorf("header %q: err = %v, want 401", header, err)
		}
	}
}

func TestJWTMiddleware_SkipsPublicPaths(t *testing.T) {
	mw := JWTMiddleware(JWTConfig{SigningKey: testSigningKey})
	e := echo.New()
	handler := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/health")

	if err := handler(c); err != nil {
		t.Fatalf("public path rejected: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestDevAuthMiddleware_Defaults(t *testing.T) {
	rec, claims := doRequest(DevAuthMiddleware(), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if claims == nil || claims.Subject != "dev-user" {
		t.Fatalf("claims = %+v, want dev-user", claims)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != "admin" {
		t.Errorf("roles = %v, want [admin]", claims.Roles)
	}
}
