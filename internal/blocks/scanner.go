package blocks

import (
	"strings"
)

type scanState int

const (
	outsideBlock scanState = iota
	insideBlock
)

// scanner is a two-state line automaton. Outside a block it looks for an
// opening marker; inside a block it accumulates lines until the same marker
// line appears again.
type scanner struct {
	style   Style
	file    string
	version string
	names   map[string]string
	result  map[string]Content

	state      scanState
	block      string
	marker     string
	markerLine int
	body       strings.Builder
}

func newScanner(style Style, file string, defs Definitions, version string) *scanner {
	names := make(map[string]string, len(defs))
	for name, def := range defs {
		names[def.ID] = name
	}
	return &scanner{
		style:   style,
		file:    file,
		version: version,
		names:   names,
		result:  style.Defaults(defs, version),
	}
}

func (sc *scanner) feed(lineNo int, line string) error {
	switch sc.state {
	case outsideBlock:
		return sc.outside(lineNo, line)
	default:
		sc.inside(line)
		return nil
	}
}

func (sc *scanner) outside(lineNo int, line string) error {
	id, version, ok := sc.style.match(line)
	if !ok {
		return nil
	}
	if version != sc.version {
		return &VersionMismatchError{File: sc.file, Line: lineNo, ID: id, Expected: sc.version, Found: version}
	}
	name, ok := sc.names[id]
	if !ok {
		return &UnknownIdentityError{File: sc.file, Line: lineNo, ID: id}
	}

	sc.state = insideBlock
	sc.block = name
	sc.marker = strings.TrimSpace(line)
	sc.markerLine = lineNo
	sc.body.Reset()
	return nil
}

func (sc *scanner) inside(line string) {
	if strings.TrimSpace(line) != sc.marker {
		sc.body.WriteString(line)
		return
	}

	content := sc.result[sc.block]
	content.Text = strings.TrimRight(sc.body.String(), " \t\r\n")
	content.FirstUse = false
	sc.result[sc.block] = content
	sc.state = outsideBlock
}

func (sc *scanner) finish() error {
	if sc.state == insideBlock {
		return &UnterminatedError{File: sc.file, Line: sc.markerLine, Marker: sc.marker}
	}
	return nil
}
