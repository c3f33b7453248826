package blocks

import (
	"fmt"

	oerrors "github.com/cienporcien/everest-core/internal/errors"
)

// VersionMismatchError reports a marker written by a different version of
// the block layout.
type VersionMismatchError struct {
	File     string
	Line     int
	ID       string
	Expected string
	Found    string
}

func (e *VersionMismatchError) Error() string {
	return fmt.Sprintf("%s: block %s has version %q, expected %q",
		oerrors.Location(e.File, e.Line), e.ID, e.Found, e.Expected)
}

func (e *VersionMismatchError) Unwrap() error { return oerrors.ErrValidation }

// UnknownIdentityError reports a marker whose identity is not defined for
// the file.
type UnknownIdentityError struct {
	File string
	Line int
	ID   string
}

func (e *UnknownIdentityError) Error() string {
	return fmt.Sprintf("%s: unknown block identity %s", oerrors.Location(e.File, e.Line), e.ID)
}

func (e *UnknownIdentityError) Unwrap() error { return oerrors.ErrValidation }

// UnterminatedError reports an opening marker without a closing marker.
type UnterminatedError struct {
	File   string
	Line   int
	Marker string
}

func (e *UnterminatedError) Error() string {
	return fmt.Sprintf("%s: block %q is never closed", oerrors.Location(e.File, e.Line), e.Marker)
}

func (e *UnterminatedError) Unwrap() error { return oerrors.ErrValidation }
