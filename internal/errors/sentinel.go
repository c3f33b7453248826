package errors

import "errors"

// Sentinel errors for known conditions.
var (
	// ErrValidation indicates a definition, schema, block or selector validation failure.
	ErrValidation = errors.New("validation error")

	// ErrNotFound indicates a definition file, module or artifact was not found.
	ErrNotFound = errors.New("not found")

	// ErrExists indicates an artifact already exists and overwriting was not requested.
	ErrExists = errors.New("already exists")

	// ErrFormatting indicates the external source formatter failed.
	ErrFormatting = errors.New("formatting failed")
)
