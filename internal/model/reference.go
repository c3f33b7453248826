package model

import (
	"errors"
	"fmt"
	"strings"
)

const fragmentSeparator = "#/"

// ParseReference parses a type reference string.
//
// "#/Name" is local to currentUnit. "/unit/path#/Name" names another unit
// and is independent of currentUnit. A local reference with an empty
// currentUnit is rejected, since there is no unit to resolve it in.
func ParseReference(ref, currentUnit string) (Reference, error) {
	syntaxErr := func(reason string) error {
		return &ReferenceSyntaxError{Ref: ref, Reason: reason}
	}

	if strings.HasPrefix(ref, fragmentSeparator) {
		name := strings.TrimPrefix(ref, fragmentSeparator)
		if name == "" || strings.Contains(name, "/") || strings.Contains(name, "#") {
			return Reference{}, syntaxErr("expected #/TypeName")
		}
		if currentUnit == "" {
			return Reference{}, syntaxErr("local reference used outside of a type unit")
		}
		return Reference{Name: name, Unit: currentUnit, IsLocal: true}, nil
	}

	if !strings.HasPrefix(ref, "/") {
		return Reference{}, syntaxErr("reference must start with / or #/")
	}

	unit, name, found := strings.Cut(strings.TrimPrefix(ref, "/"), fragmentSeparator)
	if !found {
		return Reference{}, syntaxErr("reference must name a type with #/TypeName")
	}
	if err := CheckLookupPath(unit); err != nil {
		return Reference{}, syntaxErr("unit " + err.Error())
	}
	if name == "" || strings.Contains(name, "/") || strings.Contains(name, "#") {
		return Reference{}, syntaxErr("expected #/TypeName")
	}

	return Reference{Name: name, Unit: unit}, nil
}

// CheckLookupPath validates a slash-separated definition name such as a unit
// path or an interface name. Every segment must be non-empty and must not
// be "." or "..", so a lookup stays below the directory it is joined to.
func CheckLookupPath(p string) error {
	if p == "" {
		return errors.New("path is empty")
	}
	for _, seg := range strings.Split(p, "/") {
		switch {
		case seg == "":
			return fmt.Errorf("path %q has an empty segment", p)
		case seg == "." || seg == "..":
			return fmt.Errorf("path %q has a relative segment %q", p, seg)
		case strings.Contains(seg, `\`):
			return fmt.Errorf("path %q contains a backslash", p)
		}
	}
	return nil
}
