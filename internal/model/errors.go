package model

import (
	"fmt"

	oerrors "github.com/cienporcien/everest-core/internal/errors"
)

// UnknownTypeKindError reports a type definition whose kind cannot be built.
type UnknownTypeKindError struct {
	// Path is the definition file.
	Path string

	// Line is the source line of the offending definition, 0 when unknown.
	Line int

	// Kind is the offending kind name; empty when the kind keyword is missing.
	Kind string

	// Reason describes what is wrong.
	Reason string
}

func (e *UnknownTypeKindError) Error() string {
	loc := oerrors.Location(e.Path, e.Line)
	if e.Kind == "" {
		return fmt.Sprintf("%s: %s", loc, e.Reason)
	}
	return fmt.Sprintf("%s: type %q: %s", loc, e.Kind, e.Reason)
}

func (e *UnknownTypeKindError) Unwrap() error {
	return oerrors.ErrValidation
}

// ReferenceSyntaxError reports a malformed type reference string.
type ReferenceSyntaxError struct {
	Path   string
	Line   int
	Ref    string
	Reason string
}

func (e *ReferenceSyntaxError) Error() string {
	return fmt.Sprintf("%s: invalid type reference %q: %s", oerrors.Location(e.Path, e.Line), e.Ref, e.Reason)
}

func (e *ReferenceSyntaxError) Unwrap() error {
	return oerrors.ErrValidation
}
