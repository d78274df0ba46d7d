package errors

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalid = errors.New("invalid")

type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type ValidationError struct {
	Items []FieldError
}

func (e ValidationError) Error() string {
	if len(e.Items) == 0 {
		return "validation failed"
	}

	var b strings.Builder
	b.WriteString("validation failed:\n")
	for _, item := range e.Items {
		b.WriteString(" - ")
		b.WriteString(item.Error())
		b.WriteString("\n")
	}
	return b.String()
}

func (e *ValidationError) Add(field, msg string) {
	e.Items = append(e.Items, FieldError{
		Field:   field,
		Message: msg,
	})
}

func (e ValidationError) Is(target error) bool {
	return target == ErrInvalid
}

func (e ValidationError) HasAny() bool {
	return len(e.Items) > 0
}

var (
	ErrInvalidSlug   = errors.New("missing or invalid slug string format")
	ErrReservedSlug  = errors.New("invalid slug name 'index'")
	ErrMissingTitle  = errors.New("missing 'title' metadata")
	ErrDuplicateSlug = errors.New("duplicate slug")
)

// FileError ties a build failure to the source file that caused it.
type FileError struct {
	File string
	Err  error
}

func NewFileError(file string, err error) *FileError {
	return &FileError{File: file, Err: err}
}

func (e *FileError) Error() string {
	return fmt.Sprintf("Error parsing '%s': %s", e.File, e.Err.Error())
}

func (e *FileError) Unwrap() error {
	return e.Err
}
