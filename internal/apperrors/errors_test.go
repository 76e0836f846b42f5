package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodedErrorUnwrapsToKind(t *testing.T) {
	err := New(ErrNotFound, "POST_NOT_FOUND", "post not found")
	wrapped := fmt.Errorf("censor: %w", err)

	assert.True(t, errors.Is(wrapped, ErrNotFound))
	assert.True(t, errors.Is(wrapped, err))
	assert.False(t, errors.Is(wrapped, ErrInvalidArgument))
	assert.Equal(t, ErrNotFound, KindOf(wrapped))
	assert.Equal(t, "POST_NOT_FOUND", Code(wrapped))
	assert.Equal(t, "post not found", err.Error())
}

func TestStorageKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Storage(cause)

	assert.True(t, errors.Is(err, ErrStorage))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "STORAGE_FAILURE", Code(err))
}

func TestStoragePassesThroughKindedErrors(t *testing.T) {
	coded := New(ErrIllegalTransition, "ALREADY_CENSORED", "post is already censored")

	assert.Same(t, coded, Storage(coded))
	assert.Nil(t, Storage(nil))
}

func TestKindOfUnknown(t *testing.T) {
	assert.Nil(t, KindOf(errors.New("boom")))
	assert.Equal(t, "", Code(errors.New("boom")))
}
