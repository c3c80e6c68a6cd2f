package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/atelierware/folio/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, http.StatusOK, map[string]string{"hello": "world"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body SuccessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, map[string]interface{}{"hello": "world"}, body.Data)
}

func TestError(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, http.StatusBadRequest, "something went wrong")

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "something went wrong", body.Error)
}

func TestDomainErrorToHTTP(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"nil error", nil, http.StatusOK},
		{"validation", domain.NewDomainError(domain.ErrCodeValidation, "bad input"), http.StatusBadRequest},
		{"not found", domain.ErrChunkNotFound, http.StatusNotFound},
		{"already exists", domain.ErrProjectAlreadyExists, http.StatusConflict},
		{"unauthorized", domain.ErrInvalidAdminToken, http.StatusUnauthorized},
		{"invalid operation", domain.ErrEmptySourceDocument, http.StatusBadRequest},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped domain error", fmt.Errorf("outer: %w", domain.ErrSkillNotFound), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, DomainErrorToHTTP(tt.err))
		})
	}
}
