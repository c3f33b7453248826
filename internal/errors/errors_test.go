//nolint:revive // Package name matches the package it tests
package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors(t *testing.T) {
	assert.NotEqual(t, ErrValidation, ErrNotFound)
	assert.NotEqual(t, ErrValidation, ErrExists)
	assert.NotEqual(t, ErrNotFound, ErrFormatting)
}

func TestDetailErrorError(t *testing.T) {
	detail := &DetailError{
		Type:     "validation failed",
		Message:  "block version mismatch",
		Location: "/mod/Foo.hpp:12",
		Context:  map[string]string{"expected": "v1", "found": "v2"},
		Hint:     "Regenerate with the matching generator version",
	}

	out := detail.Error()

	assert.Contains(t, out, "Error: validation failed")
	assert.Contains(t, out, "Location: /mod/Foo.hpp:12")
	assert.Contains(t, out, "expected: v1")
	assert.Contains(t, out, "found: v2")
	assert.Contains(t, out, "block version mismatch")
	assert.Contains(t, out, "Hint: Regenerate")
	assert.Less(t, strings.Index(out, "expected"), strings.Index(out, "found"), "context keys are sorted")
}

func TestDetailErrorUnwrap(t *testing.T) {
	detail := &DetailError{Type: "test", Message: "msg", Cause: ErrValidation}

	assert.True(t, errors.Is(detail, ErrValidation))
	assert.Equal(t, ErrValidation, detail.Unwrap())
}

func TestNewErrors(t *testing.T) {
	err := NewValidationError("bad", "/a.yaml", "fix it")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	err = NewNotFoundError("missing", "/b.yaml", "")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLocation(t *testing.T) {
	assert.Equal(t, "/a.hpp", Location("/a.hpp", 0))
	assert.Equal(t, "/a.hpp:7", Location("/a.hpp", 7))
}

func TestExitCodeFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"exit error", &ExitError{Code: 42, Err: errors.New("x")}, 42},
		{"not found", fmt.Errorf("loading: %w", ErrNotFound), ExitNotFound},
		{"validation", fmt.Errorf("parsing: %w", ErrValidation), ExitValidationError},
		{"exists", fmt.Errorf("creating: %w", ErrExists), ExitValidationError},
		{"formatting", fmt.Errorf("clang-format: %w", ErrFormatting), ExitGeneralError},
		{"other", errors.New("boom"), ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeFromError(tt.err))
		})
	}
}

func TestExitErrorUnwrap(t *testing.T) {
	inner := fmt.Errorf("wrapped: %w", ErrNotFound)
	exitErr := &ExitError{Code: ExitNotFound, Err: inner}

	assert.Equal(t, inner.Error(), exitErr.Error())
	assert.True(t, errors.Is(exitErr, ErrNotFound))
	assert.Equal(t, "Not Found", ExitCodeName(exitErr.Code))
}
