package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	cases := []struct {
		err  *AppError
		want int
	}{
		{NewValidation("bad", nil), http.StatusBadRequest},
		{NewNotFound("missing"), http.StatusNotFound},
		{NewUserNotFound("no admin"), http.StatusNotFound},
		{NewUnauthorized("no token"), http.StatusUnauthorized},
		{NewInvalidCredentials("wrong"), http.StatusUnauthorized},
		{NewForbidden("nope"), http.StatusForbidden},
		{NewConflict("dup", nil), http.StatusConflict},
		{NewInternal("boom", errors.New("db down")), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.err.StatusCode(), tc.err.Message)
	}
}

func TestIsAndFrom(t *testing.T) {
	wrapped := fmt.Errorf("save: %w", NewConflict("username taken", nil))
	assert.True(t, Is(wrapped, ConflictError))
	assert.False(t, Is(wrapped, NotFoundError))

	assert.Equal(t, ConflictError, From(wrapped, "x").Type)

	plain := errors.New("socket closed")
	got := From(plain, "failed to fetch")
	assert.Equal(t, InternalError, got.Type)
	assert.Equal(t, "failed to fetch", got.Message)
	assert.ErrorIs(t, got, plain)
}
