package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mailforge/template-service/internal/core/domain"
)

func resolve(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	return resolveError(err, zerolog.Nop(), c)
}

func TestResolveError_DomainMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
		msg  string
	}{
		{domain.ErrValidation, http.StatusBadRequest, "missing or invalid field"},
		{domain.ErrEmailTaken, http.StatusConflict, "email already registered"},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{domain.ErrUserNotFound, http.StatusUnauthorized, "invalid token"},
		{domain.ErrTemplateNotFound, http.StatusNotFound, "template not found"},
	}

	for _, tc := range cases {
		code, msg := resolve(t, tc.err)
		if code != tc.code || msg != tc.msg {
			t.Fatalf("%v: got (%d, %q), want (%d, %q)", tc.err, code, msg, tc.code, tc.msg)
		}
	}
}

func TestResolveError_WrappedDomainError(t *testing.T) {
	code, msg := resolve(t, fmt.Errorf("find template: %w", domain.ErrTemplateNotFound))
	if code != http.StatusNotFound || msg != "template not found" {
		t.Fatalf("wrapped error not unwrapped: (%d, %q)", code, msg)
	}
}

// Store failures and other unknowns must not leak their cause to the client.
func TestResolveError_UnexpectedErrorIsOpaque(t *testing.T) {
	code, msg := resolve(t, errors.New("connection refused: mongodb://internal-host:27017"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if msg != "internal server error" {
		t.Fatalf("internal detail leaked: %q", msg)
	}
}

func TestResolveError_EchoHTTPError(t *testing.T) {
	code, msg := resolve(t, echo.NewHTTPError(http.StatusUnauthorized, "invalid token"))
	if code != http.StatusUnauthorized || msg != "invalid token" {
		t.Fatalf("got (%d, %q)", code, msg)
	}
}
