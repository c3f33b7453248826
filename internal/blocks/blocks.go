// Package blocks keeps hand-edited regions of generated files across
// regenerations.
//
// A region is bounded by two identical marker lines of the form
//
//	// ev@<uuid>:<version>
//
// where the comment token depends on the target language. Everything
// between the markers belongs to the developer and is carried over verbatim
// into the next rendering of the file.
package blocks

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// uuidV4Pattern matches the canonical lower-case layout of a version 4 UUID.
const uuidV4Pattern = `[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}`

// Definition is a fixed block identity and the text a fresh block starts with.
type Definition struct {
	ID      string
	Default string
}

// Definitions maps block names to their definitions for one artifact kind.
type Definitions map[string]Definition

// Names returns the block names in sorted order.
func (d Definitions) Names() []string {
	names := make([]string, 0, len(d))
	for name := range d {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks that every identity is a lower-case version 4 UUID and
// that no identity is used twice.
func (d Definitions) Validate() error {
	seen := make(map[string]string, len(d))
	for _, name := range d.Names() {
		id := d[name].ID
		parsed, err := uuid.Parse(id)
		if err != nil {
			return fmt.Errorf("block %s: invalid identity %q: %w", name, id, err)
		}
		if parsed.Version() != 4 || parsed.String() != id {
			return fmt.Errorf("block %s: identity %q is not a lower-case version 4 UUID", name, id)
		}
		if other, ok := seen[id]; ok {
			return fmt.Errorf("blocks %s and %s share identity %s", other, name, id)
		}
		seen[id] = name
	}
	return nil
}

// Content is the text to place into one block for a single rendering.
type Content struct {
	// Text is the block body without the marker lines.
	Text string

	// Tag is the marker line, without indentation.
	Tag string

	// FirstUse is true when the block was not found in an existing file and
	// Text is the default.
	FirstUse bool
}

// Style describes how marker lines are written in one target language.
type Style struct {
	// Comment is the line comment token, e.g. "//" or "#".
	Comment string

	pattern *regexp.Regexp
}

// NewStyle creates a marker style for a line comment token.
func NewStyle(comment string) Style {
	return Style{
		Comment: comment,
		pattern: regexp.MustCompile(`^\s*` + regexp.QuoteMeta(comment) + ` ev@(` + uuidV4Pattern + `):(.*)$`),
	}
}

// Marker styles.
var (
	CppStyle   = NewStyle("//")
	CMakeStyle = NewStyle("#")
)

// Tag renders the marker line for a block.
func (s Style) Tag(id, version string) string {
	return fmt.Sprintf("%s ev@%s:%s", s.Comment, id, version)
}

// match returns the identity and version of a marker line.
func (s Style) match(line string) (id, version string, ok bool) {
	m := s.pattern.FindStringSubmatch(strings.TrimRight(line, "\r\n"))
	if m == nil {
		return "", "", false
	}
	return m[1], strings.TrimSpace(m[2]), true
}

// Defaults returns first-use content for every block.
func (s Style) Defaults(defs Definitions, version string) map[string]Content {
	out := make(map[string]Content, len(defs))
	for name, def := range defs {
		out[name] = Content{Text: def.Default, Tag: s.Tag(def.ID, version), FirstUse: true}
	}
	return out
}

// Calculate returns the content of every block for a rendering of path.
//
// Without update, or when path does not exist yet, every block gets its
// default. Otherwise the existing file is scanned and every block found in it
// keeps its current body.
func (s Style) Calculate(defs Definitions, version, path string, update bool) (map[string]Content, error) {
	if err := defs.Validate(); err != nil {
		return nil, err
	}
	if !update {
		return s.Defaults(defs, version), nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s.Defaults(defs, version), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return s.Scan(path, strings.SplitAfter(string(data), "\n"), defs, version)
}

// Scan runs the block automaton over lines, which keep their line
// terminators. file is used in error messages only.
func (s Style) Scan(file string, lines []string, defs Definitions, version string) (map[string]Content, error) {
	sc := newScanner(s, file, defs, version)
	for i, line := range lines {
		if err := sc.feed(i+1, line); err != nil {
			return nil, err
		}
	}
	if err := sc.finish(); err != nil {
		return nil, err
	}
	return sc.result, nil
}
