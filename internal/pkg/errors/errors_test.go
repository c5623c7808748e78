package errors

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_WithDetailsDoesNotMutateOriginal(t *testing.T) {
	detailed := ErrValidation.WithDetails(map[string]string{"latitude": "must be less than or equal to 90"})

	assert.Nil(t, ErrValidation.Details)
	assert.Equal(t, "must be less than or equal to 90", detailed.Details["latitude"])
	assert.Equal(t, ErrValidation.Code, detailed.Code)
	assert.Equal(t, http.StatusBadRequest, detailed.StatusCode)
}

func TestAppError_WithDetail(t *testing.T) {
	err := ErrTypeMismatch.WithDetail("radius", "Invalid type. Expected double")

	assert.Equal(t, map[string]string{"radius": "Invalid type. Expected double"}, err.Details)
	assert.Equal(t, "TYPE_MISMATCH: Invalid parameter type", err.Error())
}
