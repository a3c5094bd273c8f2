package response

import (
	"encoding/json"
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	type request struct {
		Email  string `validate:"required,email"`
		Rating int    `validate:"min=1,max=5"`
		Type   string `validate:"oneof=hotel restaurant"`
	}

	err := validator.New().Struct(request{Rating: 9, Type: "spa"})
	require.Error(t, err)

	resp := ValidationError(err.(validator.ValidationErrors))

	assert.Equal(t, StatusError, resp.Status)
	assert.Contains(t, resp.Error, "Field Email is a required field")
	assert.Contains(t, resp.Error, "Field Rating is out of range")
	assert.Contains(t, resp.Error, "Field Type must be one of: hotel restaurant")
}

func TestError(t *testing.T) {
	raw, err := json.Marshal(Error("Failed to fetch bookings"))
	require.NoError(t, err)

	assert.JSONEq(t, `{"status":"Error","error":"Failed to fetch bookings"}`, string(raw))
}
