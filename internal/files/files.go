// Package files decides what happens to each generated artifact: create,
// update or diff against the file on disk.
package files

import (
	"fmt"
	"io"
	"sort"
	"strings"

	oerrors "github.com/cienporcien/everest-core/internal/errors"
)

// WhichSelector lists the available artifacts instead of generating any.
const WhichSelector = "which"

// Info is one rendered artifact.
type Info struct {
	// Abbreviation selects the artifact with --only, e.g. "module.hpp".
	Abbreviation string

	// PrintableName is the path shown to the user.
	PrintableName string

	// Path is the absolute destination path.
	Path string

	// Content is the final, formatted content.
	Content string

	// CommentPrefix marks lines that diffs ignore, e.g. "//" or "#". Empty
	// means every line counts.
	CommentPrefix string

	// KeepExisting files belong to the developer once created; updates only
	// write them when they are missing.
	KeepExisting bool
}

// Section groups artifacts for listing, e.g. "core" or "interfaces".
type Section struct {
	Name  string
	Files []Info
}

// Map is an ordered list of sections.
type Map []Section

// All returns every artifact in section order.
func (m Map) All() []Info {
	var out []Info
	for _, s := range m {
		out = append(out, s.Files...)
	}
	return out
}

// Len returns the number of artifacts.
func (m Map) Len() int {
	n := 0
	for _, s := range m {
		n += len(s.Files)
	}
	return n
}

// UnknownSelectorError reports --only names that match no artifact.
type UnknownSelectorError struct {
	Names     []string
	Available []string
}

func (e *UnknownSelectorError) Error() string {
	return fmt.Sprintf("unknown files: %s (available: %s)",
		strings.Join(e.Names, ", "), strings.Join(e.Available, ", "))
}

func (e *UnknownSelectorError) Unwrap() error {
	return oerrors.ErrValidation
}

// IsWhich reports whether the selector asks for the list of artifacts.
func IsWhich(only []string) bool {
	return len(only) == 1 && only[0] == WhichSelector
}

// Filter keeps the artifacts named in only. An empty selector keeps
// everything. Names that match no artifact are an error.
func Filter(m Map, only []string) (Map, error) {
	if len(only) == 0 {
		return m, nil
	}

	left := make(map[string]bool, len(only))
	for _, name := range only {
		left[strings.TrimSpace(name)] = true
	}

	var out Map
	for _, s := range m {
		var kept []Info
		for _, f := range s.Files {
			if !left[f.Abbreviation] {
				continue
			}
			kept = append(kept, f)
			delete(left, f.Abbreviation)
		}
		if len(kept) > 0 {
			out = append(out, Section{Name: s.Name, Files: kept})
		}
	}

	if len(left) > 0 {
		names := make([]string, 0, len(left))
		for name := range left {
			names = append(names, name)
		}
		sort.Strings(names)

		var available []string
		for _, f := range m.All() {
			available = append(available, f.Abbreviation)
		}
		return nil, &UnknownSelectorError{Names: names, Available: available}
	}
	return out, nil
}

// PrintAvailable writes the selectable artifact names per section.
func PrintAvailable(w io.Writer, m Map) {
	fmt.Fprintln(w, "Possible files")
	for _, s := range m {
		fmt.Fprintf(w, "section: %s\n", s.Name)
		for _, f := range s.Files {
			fmt.Fprintf(w, " - %s\n", f.Abbreviation)
		}
	}
}
