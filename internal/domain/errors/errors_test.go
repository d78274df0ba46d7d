package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileError(t *testing.T) {
	err := NewFileError("index.md", ErrReservedSlug)
	assert.Equal(t, "Error parsing 'index.md': invalid slug name 'index'", err.Error())
	assert.True(t, errors.Is(err, ErrReservedSlug))
	assert.False(t, errors.Is(err, ErrInvalidSlug))

	wrapped := fmt.Errorf("build: %w", err)
	var fe *FileError
	assert.True(t, errors.As(wrapped, &fe))
	assert.Equal(t, "index.md", fe.File)
}

func TestValidationError(t *testing.T) {
	var ve ValidationError
	assert.False(t, ve.HasAny())

	ve.Add("siteTitle", "must not be empty")
	assert.True(t, ve.HasAny())
	assert.True(t, errors.Is(ve, ErrInvalid))
	assert.Contains(t, ve.Error(), " - siteTitle: must not be empty")
}
