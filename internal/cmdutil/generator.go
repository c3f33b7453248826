package cmdutil

import (
	"fmt"

	"github.com/cienporcien/everest-core/internal/cmdtypes"
	"github.com/cienporcien/everest-core/internal/codegen"
	"github.com/cienporcien/everest-core/internal/loader"
	"github.com/cienporcien/everest-core/internal/output"
	"github.com/cienporcien/everest-core/internal/schema"
)

// NewParser builds the definition parser from the resolved settings. The
// embedded schemas are used unless a schemas directory is configured.
func NewParser(gc *cmdtypes.GlobalConfig) (*loader.Parser, error) {
	s := gc.Settings

	var (
		schemas *schema.Set
		err     error
	)
	if s.SchemasDir != "" {
		schemas, err = schema.Load(s.SchemasDir)
	} else {
		schemas, err = schema.Embedded()
	}
	if err != nil {
		return nil, fmt.Errorf("loading schemas: %w", err)
	}

	tree, err := loader.NewTree(s.EverestDirs...)
	if err != nil {
		return nil, err
	}
	cache, err := loader.NewCache(loader.DefaultCacheSize)
	if err != nil {
		return nil, err
	}

	output.Debug("definition search tree", "roots", []string(tree))
	return loader.NewParser(s.WorkDir, tree, schemas, cache), nil
}

// NewGenerator builds a generator writing below the resolved output
// directory. clang-format is attached when formatting is enabled.
func NewGenerator(gc *cmdtypes.GlobalConfig) (*codegen.Generator, error) {
	parser, err := NewParser(gc)
	if err != nil {
		return nil, err
	}

	var formatter codegen.Formatter
	if gc.Settings.FormattingEnabled() {
		clang, err := codegen.NewClangFormat(gc.Settings.ClangFormatFile)
		if err != nil {
			return nil, err
		}
		formatter = clang
	}
	return codegen.New(parser, gc.Settings.OutputDir, formatter), nil
}
