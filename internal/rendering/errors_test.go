package rendering

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTemplateError_WithCause(t *testing.T) {
	cause := errors.New("bad syntax")
	err := &TemplateError{Message: "failed to parse templates", Cause: cause}
	assert.Equal(t, "template error: failed to parse templates: bad syntax", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestRenderError_WithoutCause(t *testing.T) {
	err := &RenderError{Message: "renderer not initialized"}
	assert.Equal(t, "render error: renderer not initialized", err.Error())
	assert.Nil(t, err.Unwrap())
}
