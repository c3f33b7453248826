package loader

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/cienporcien/everest-core/internal/document"
	oerrors "github.com/cienporcien/everest-core/internal/errors"
	"github.com/cienporcien/everest-core/internal/model"
	"github.com/cienporcien/everest-core/internal/output"
	"github.com/cienporcien/everest-core/internal/schema"
)

// Definition file locations relative to the work directory or a tree root.
const (
	ModulesDir    = "modules"
	InterfacesDir = "interfaces"
	TypesDir      = "types"
	ManifestFile  = "manifest.yaml"
)

// Parser loads definitions, validates them against their schema and builds
// the typed model.
type Parser struct {
	workDir   string
	tree      Tree
	validator schema.Validator
	cache     *Cache
}

// NewParser creates a parser. Modules are looked up in workDir, interfaces
// and type units in tree. A nil cache disables caching.
func NewParser(workDir string, tree Tree, validator schema.Validator, cache *Cache) *Parser {
	return &Parser{
		workDir:   workDir,
		tree:      tree,
		validator: validator,
		cache:     cache,
	}
}

// Tree returns the definition tree.
func (p *Parser) Tree() Tree {
	return p.tree
}

// ModuleDir returns the directory of a module. name may be qualified with
// slashes, e.g. "API/API".
func (p *Parser) ModuleDir(name string) string {
	return filepath.Join(p.workDir, ModulesDir, filepath.FromSlash(name))
}

// Module loads a module manifest. The module name is the last segment of a
// qualified name.
func (p *Parser) Module(name string) (*model.Module, string, error) {
	if err := checkName("module", name); err != nil {
		return nil, "", err
	}
	manifest := filepath.Join(p.ModuleDir(name), ManifestFile)
	if _, err := os.Stat(manifest); err != nil {
		return nil, "", oerrors.NewNotFoundError(
			fmt.Sprintf("module %s not found", name),
			manifest,
			"Check --work-dir; module manifests live in modules/<name>/manifest.yaml",
		)
	}

	doc, err := p.load(manifest, schema.KindModule)
	if err != nil {
		return nil, "", err
	}
	mod, err := model.NewModule(doc, path.Base(name))
	if err != nil {
		return nil, "", err
	}
	return mod, manifest, nil
}

// Interface loads an interface definition from the tree.
func (p *Parser) Interface(name string) (*model.Interface, string, error) {
	if err := checkName("interface", name); err != nil {
		return nil, "", err
	}
	file, err := p.tree.Resolve(InterfacesDir + "/" + name + ".yaml")
	if err != nil {
		return nil, "", err
	}
	doc, err := p.load(file, schema.KindInterface)
	if err != nil {
		return nil, "", err
	}
	iface, err := model.NewInterface(doc, name)
	if err != nil {
		return nil, "", err
	}
	return iface, file, nil
}

// TypeUnit loads a type unit from the tree. unit is a slash-separated path
// such as "powermeter" or "meter/types".
func (p *Parser) TypeUnit(unit string) (*model.TypeUnit, string, error) {
	if err := checkName("type unit", unit); err != nil {
		return nil, "", err
	}
	file, err := p.tree.Resolve(TypesDir + "/" + unit + ".yaml")
	if err != nil {
		return nil, "", err
	}
	doc, err := p.load(file, schema.KindType)
	if err != nil {
		return nil, "", err
	}
	tu, err := model.NewTypeUnit(doc, unit)
	if err != nil {
		return nil, "", err
	}
	return tu, file, nil
}

// Resolve returns the definition a reference points at.
func (p *Parser) Resolve(ref model.Reference) (model.Type, error) {
	unit, file, err := p.TypeUnit(ref.Unit)
	if err != nil {
		return nil, err
	}
	t, ok := unit.Types[ref.Name]
	if !ok {
		return nil, oerrors.NewNotFoundError(
			fmt.Sprintf("type %s not defined in unit %s", ref.Name, ref.Unit),
			file,
			"",
		)
	}
	return t, nil
}

// Interfaces lists every interface name in the tree.
func (p *Parser) Interfaces() ([]string, error) {
	return p.tree.List(InterfacesDir)
}

// TypeUnits lists every type unit name in the tree.
func (p *Parser) TypeUnits() ([]string, error) {
	return p.tree.List(TypesDir)
}

// checkName rejects names that would resolve outside the definition
// directories.
func checkName(kind, name string) error {
	if err := model.CheckLookupPath(name); err != nil {
		return oerrors.NewValidationError(
			fmt.Sprintf("invalid %s name %q: %v", kind, name, err),
			"",
			"Names are slash-separated paths without . or .. segments",
		)
	}
	return nil
}

// load reads, parses and validates a definition file, going through the
// cache when one is set.
func (p *Parser) load(file string, kind schema.Kind) (*document.Document, error) {
	if doc, ok := p.cache.Get(file); ok {
		output.Debug("definition cache hit", "path", file)
		return doc, nil
	}

	doc, err := document.Load(file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, oerrors.NewNotFoundError("definition file not found", file, "")
		}
		return nil, oerrors.NewValidationError(err.Error(), file, "")
	}

	if p.validator != nil {
		if err := p.validator.Validate(kind, file, doc.Plain()); err != nil {
			return nil, err
		}
	}

	output.Debug("loaded definition", "kind", kind, "path", file)
	p.cache.Add(file, doc)
	return doc, nil
}
