package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/garnizeh/skillswap/internal/apperr"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{name: "Validation", err: apperr.Validation("bad"), want: http.StatusBadRequest},
		{name: "Auth", err: apperr.Auth("no"), want: http.StatusUnauthorized},
		{name: "Conflict", err: apperr.Conflict("dup"), want: http.StatusConflict},
		{name: "NotFound", err: apperr.NotFound("gone"), want: http.StatusNotFound},
		{name: "Upstream", err: apperr.Upstream("asset host", errors.New("timeout")), want: http.StatusInternalServerError},
		{name: "Plain", err: errors.New("boom"), want: http.StatusInternalServerError},
		{name: "Wrapped", err: fmt.Errorf("signup: %w", apperr.Conflict("email already registered")), want: http.StatusConflict},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := apperr.HTTPStatus(c.err); got != c.want {
				t.Fatalf("want %d got %d", c.want, got)
			}
		})
	}
}

func TestMessageOf_HidesUnclassified(t *testing.T) {
	if got := apperr.MessageOf(errors.New("db exploded")); got != "internal server error" {
		t.Fatalf("unexpected message %q", got)
	}
	wrapped := fmt.Errorf("ctx: %w", apperr.Validation("email is required"))
	if got := apperr.MessageOf(wrapped); got != "email is required" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := apperr.Upstream("upload failed", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("expected errors.Is to find the cause")
	}
	if !apperr.Is(err, apperr.KindUpstream) {
		t.Fatalf("expected upstream kind")
	}
	if apperr.Is(nil, apperr.KindUpstream) {
		t.Fatalf("nil error has no kind")
	}
}
