package validators

import (
	"errors"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	type req struct {
		Text string `validate:"required"`
	}
	v := NewValidator()

	assert.NoError(t, v.Validate(&req{Text: "hello"}))

	err := v.Validate(&req{})
	require.Error(t, err)

	// The raw validator error comes back; wrapping it in an HTTP error is the
	// handler's job, so the message must not already carry a status code.
	var httpErr *echo.HTTPError
	assert.False(t, errors.As(err, &httpErr))
	assert.NotContains(t, err.Error(), "code=")
}
