package apperror

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorsIs(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
	}{
		{
			name:      "NotFound wraps ErrNotFound",
			err:       NotFound("project", "42"),
			target:    ErrNotFound,
			wantMatch: true,
		},
		{
			name:      "NotFoundBy wraps ErrNotFound",
			err:       NotFoundBy("user profile", "username", "jane"),
			target:    ErrNotFound,
			wantMatch: true,
		},
		{
			name:      "ValidationFailed wraps ErrValidation",
			err:       ValidationFailed("title", "title is required"),
			target:    ErrValidation,
			wantMatch: true,
		},
		{
			name:      "Conflict wraps ErrConflict",
			err:       Conflict("user profile", "jane"),
			target:    ErrConflict,
			wantMatch: true,
		},
		{
			name:      "AccessDenied wraps ErrAccessDenied",
			err:       AccessDenied("admin role required"),
			target:    ErrAccessDenied,
			wantMatch: true,
		},
		{
			name:      "Integration wraps ErrIntegration",
			err:       Integration("token request failed", 401, "{}", nil),
			target:    ErrIntegration,
			wantMatch: true,
		},
		{
			name:      "Integration exposes its cause",
			err:       Integration("create user failed", 0, "", io.ErrUnexpectedEOF),
			target:    io.ErrUnexpectedEOF,
			wantMatch: true,
		},
		{
			name:      "NoRoute wraps ErrNotFound",
			err:       NoRoute("GET", "/api/nowhere"),
			target:    ErrNotFound,
			wantMatch: true,
		},
		{
			name:      "MethodNotAllowed wraps ErrMethodNotAllowed",
			err:       MethodNotAllowed("PATCH", "/api/public/projects"),
			target:    ErrMethodNotAllowed,
			wantMatch: true,
		},
		{
			name:      "NotFound does NOT match ErrValidation",
			err:       NotFound("skill", "1"),
			target:    ErrValidation,
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errors.Is(tt.err, tt.target)
			if got != tt.wantMatch {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.wantMatch)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name        string
		err         *AppError
		wantMessage string
	}{
		{"NotFound includes resource and id", NotFound("project", "7"), "project not found with id: 7"},
		{"NotFoundBy includes attribute", NotFoundBy("user profile", "username", "jane"), "user profile not found with username: jane"},
		{"ValidationFailed uses custom message", ValidationFailed("name", "name is required"), "name is required"},
		{"InvalidFields lists sorted names", InvalidFields(map[string]string{"email": "x", "username": "y", "bio": "z"}), "validation failed: bio, email, username"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMessage, tt.err.Error())
		})
	}
}

func TestIntegrationCarriesUpstreamResponse(t *testing.T) {
	err := Integration("failed to create user", 409, `{"errorMessage":"User exists"}`, nil)

	var appErr *AppError
	if assert.ErrorAs(t, error(err), &appErr) {
		assert.Equal(t, 409, appErr.Status)
		assert.Equal(t, `{"errorMessage":"User exists"}`, appErr.Body)
	}
}

func TestValidationFailedField(t *testing.T) {
	err := ValidationFailed("email", "invalid email format")

	assert.Equal(t, "email", err.Field)
	assert.Equal(t, map[string]string{"email": "invalid email format"}, err.Fields)
}
