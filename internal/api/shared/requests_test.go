package shared

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUsesJSONFieldNames(t *testing.T) {
	t.Parallel()

	type payload struct {
		DisplayName string `json:"displayName" validate:"required"`
		Hidden      string `json:"-"           validate:"omitempty"`
		NoTag       string `validate:"omitempty"`
	}

	err := Validate.Struct(payload{})
	require.Error(t, err)

	var vErrs validator.ValidationErrors
	require.True(t, errors.As(err, &vErrs))
	require.Len(t, vErrs, 1)
	assert.Equal(t, "displayName", vErrs[0].Field(),
		"validation failures must be reported under the wire-format name")
}
