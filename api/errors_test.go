package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/Domenick1991/skyflow/internal/auth"
	"github.com/Domenick1991/skyflow/internal/domain"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{domain.Forbidden("x"), http.StatusForbidden},
		{domain.Auth("x", nil), http.StatusUnauthorized},
		{domain.InvalidBusinessArgument("x"), http.StatusBadRequest},
		{domain.InvalidData("x"), http.StatusBadRequest},
		{domain.DuplicatedData("x"), http.StatusConflict},
		{domain.EntityNotFound("x"), http.StatusNotFound},
		{domain.IO("x", nil), http.StatusBadGateway},
		{fmt.Errorf("wrapped: %w", domain.EntityNotFound("x")), http.StatusNotFound},
		{fmt.Errorf("verify: %w", bcrypt.ErrMismatchedHashAndPassword), http.StatusUnauthorized},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, statusOf(tt.err), tt.err.Error())
	}
}

func TestCallerFrom(t *testing.T) {
	c, _ := newTestContext("GET", "/users/me", "")
	assert.Equal(t, auth.Anonymous(), callerFrom(c))

	c, _ = newTestContext("GET", "/users/me", "")
	c.Request.Header["Authorization"] = []string{""}
	assert.Equal(t, auth.WithAuthorization(""), callerFrom(c))

	c, _ = newTestContext("GET", "/users/me", "")
	c.Request.Header.Set("Authorization", "Bearer abc")
	assert.Equal(t, auth.CallerContext{Authorization: "Bearer abc", Present: true}, callerFrom(c))
}
