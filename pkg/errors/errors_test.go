package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	err := Wrap(ErrNotFound, "post not found")
	assert.True(t, IsNotFound(err))
	assert.False(t, IsConflict(err))
	assert.Equal(t, "post not found", GetMessage(err))
	assert.Equal(t, "post not found: not found", err.Error())

	outer := fmt.Errorf("loading feed: %w", err)
	assert.True(t, IsNotFound(outer))
	assert.Equal(t, "post not found", GetMessage(outer))

	assert.Nil(t, Wrap(nil, "ignored"))
	assert.Equal(t, "E42", GetCode(WrapWithCode(ErrConflict, "E42", "dup")))
	assert.Equal(t, "plain", GetMessage(New("plain")))
}
