package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPredicatesMatchTheirType(t *testing.T) {
	assert.True(t, IsValidation(Validation("bad input %d", 7)))
	assert.True(t, IsPermission(Permission("delete message")))
	assert.True(t, IsNotFound(NotFound("message")))
	assert.True(t, IsTransient(Transient(errors.New("connection refused"))))

	assert.False(t, IsValidation(NotFound("message")))
	assert.False(t, IsTransient(Permission("delete message")))
	assert.False(t, IsNotFound(nil))
}

func TestPredicatesSeeThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("loading thread: %w", Transient(errors.New("timeout")))
	assert.True(t, IsTransient(wrapped))
}

func TestTransientNilPassthrough(t *testing.T) {
	assert.NoError(t, Transient(nil))
}

func TestTransientUnwrap(t *testing.T) {
	cause := errors.New("broken pipe")
	assert.ErrorIs(t, Transient(cause), cause)
}
