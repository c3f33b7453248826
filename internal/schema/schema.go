// Package schema validates raw definition documents against JSON Schemas
// before they are turned into the typed model.
package schema

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/encoding/jsonschema"
	"gopkg.in/yaml.v3"

	oerrors "github.com/cienporcien/everest-core/internal/errors"
)

//go:embed schemas/*.yaml
var embeddedFS embed.FS

// Kind selects the schema a document is validated against.
type Kind string

// Document kinds.
const (
	KindType      Kind = "type"
	KindInterface Kind = "interface"
	KindModule    Kind = "module"

	// KindConfig is the ev-cli configuration file, not a definition.
	KindConfig Kind = "config"
)

// Kinds lists every document kind.
var Kinds = []Kind{KindType, KindInterface, KindModule, KindConfig}

// FileName returns the schema file name for a kind.
func (k Kind) FileName() string {
	if k == KindModule {
		return "manifest.yaml"
	}
	return string(k) + ".yaml"
}

// Validator validates a plain document of a given kind. path names the
// document in errors.
type Validator interface {
	Validate(kind Kind, path string, doc map[string]any) error
}

// ValidationError reports a document that does not satisfy its schema.
type ValidationError struct {
	Kind   Kind
	Path   string
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s definition %s does not match its schema:\n%s", e.Kind, e.Path, e.Detail)
}

func (e *ValidationError) Unwrap() error {
	return oerrors.ErrValidation
}

// Set holds one compiled schema per document kind.
type Set struct {
	ctx     *cue.Context
	schemas map[Kind]cue.Value
}

// Embedded compiles the schemas shipped with the binary.
func Embedded() (*Set, error) {
	return compile(func(kind Kind) ([]byte, string, error) {
		name := "schemas/" + kind.FileName()
		data, err := embeddedFS.ReadFile(name)
		return data, name, err
	})
}

// Load compiles the schemas found in dir. An empty dir selects the embedded
// schemas. A dir without config.yaml uses the embedded configuration schema.
func Load(dir string) (*Set, error) {
	if dir == "" {
		return Embedded()
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, oerrors.NewNotFoundError(
			"schema directory not found",
			dir,
			"Pass --schemas-dir pointing at the directory holding type.yaml, interface.yaml and manifest.yaml",
		)
	}
	return compile(func(kind Kind) ([]byte, string, error) {
		name := filepath.Join(dir, kind.FileName())
		data, err := os.ReadFile(name)
		if kind == KindConfig && os.IsNotExist(err) {
			name = "schemas/" + kind.FileName()
			data, err = embeddedFS.ReadFile(name)
		}
		return data, name, err
	})
}

func compile(read func(Kind) ([]byte, string, error)) (*Set, error) {
	ctx := cuecontext.New()
	set := &Set{ctx: ctx, schemas: make(map[Kind]cue.Value, len(Kinds))}

	for _, kind := range Kinds {
		data, name, err := read(kind)
		if err != nil {
			return nil, fmt.Errorf("reading %s schema: %w", kind, err)
		}

		var raw any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parsing schema %s: %w", name, err)
		}

		file, err := jsonschema.Extract(ctx.Encode(raw), &jsonschema.Config{
			DefaultVersion: jsonschema.VersionDraft7,
		})
		if err != nil {
			return nil, fmt.Errorf("converting schema %s: %w", name, err)
		}

		value := ctx.BuildFile(file)
		if err := value.Err(); err != nil {
			return nil, fmt.Errorf("compiling schema %s: %w", name, err)
		}
		set.schemas[kind] = value
	}

	return set, nil
}

// Validate checks doc against the schema of kind.
func (s *Set) Validate(kind Kind, path string, doc map[string]any) error {
	schema, ok := s.schemas[kind]
	if !ok {
		return fmt.Errorf("no schema for %s definitions", kind)
	}

	if doc == nil {
		doc = map[string]any{}
	}
	data := s.ctx.Encode(doc)
	if err := data.Err(); err != nil {
		return &ValidationError{Kind: kind, Path: path, Detail: err.Error()}
	}

	if err := schema.Unify(data).Validate(cue.Concrete(true)); err != nil {
		return &ValidationError{
			Kind:   kind,
			Path:   path,
			Detail: strings.TrimSpace(cueerrors.Details(err, nil)),
		}
	}
	return nil
}
