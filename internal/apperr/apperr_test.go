package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  *Error
		want int
	}{
		{Unauthenticated("x"), http.StatusUnauthorized},
		{Forbidden("x"), http.StatusForbidden},
		{Conflict("x"), http.StatusConflict},
		{NotFound("x"), http.StatusNotFound},
		{InvalidResetToken("x"), http.StatusBadRequest},
		{BadRequest("x"), http.StatusBadRequest},
		{Internal("x", nil), http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := c.err.HTTPStatus(); got != c.want {
			t.Errorf("kind %d: got status %d want %d", c.err.Kind, got, c.want)
		}
	}
}

func TestIsKind_Wrapped(t *testing.T) {
	t.Parallel()

	inner := Conflict("email already taken")
	wrapped := fmt.Errorf("register: %w", inner)

	if !IsKind(wrapped, KindConflict) {
		t.Fatalf("IsKind must see through wrapping")
	}
	if IsKind(wrapped, KindNotFound) {
		t.Fatalf("IsKind must not match a different kind")
	}
	if IsKind(errors.New("plain"), KindConflict) {
		t.Fatalf("plain errors carry no kind")
	}
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	if got := Internal("", errors.New("cause")).Error(); got != "cause" {
		t.Fatalf("empty msg falls back to cause: got %q", got)
	}
	if got := Internal("db error", errors.New("cause")).Error(); got != "db error" {
		t.Fatalf("msg wins over cause: got %q", got)
	}
}
