package codegen

import (
	"context"
	"fmt"
	"path"
	"path/filepath"

	"github.com/davecgh/go-spew/spew"

	"github.com/cienporcien/everest-core/internal/blocks"
	"github.com/cienporcien/everest-core/internal/files"
	"github.com/cienporcien/everest-core/internal/loader"
	"github.com/cienporcien/everest-core/internal/model"
	"github.com/cienporcien/everest-core/internal/output"
	"github.com/cienporcien/everest-core/internal/templates"
	"github.com/cienporcien/everest-core/internal/typegraph"
)

// Comment prefixes of the generated languages.
const (
	cppComment   = "//"
	cmakeComment = "#"
)

// Generator renders the artifacts of modules, interfaces and type units.
type Generator struct {
	parser    *loader.Parser
	outputDir string
	formatter Formatter
}

// New creates a Generator. outputDir is the root of the generated loader,
// interface and type headers. formatter may be nil.
func New(parser *loader.Parser, outputDir string, formatter Formatter) *Generator {
	return &Generator{parser: parser, outputDir: outputDir, formatter: formatter}
}

type moduleData struct {
	Module          *ModuleView
	Blocks          map[string]blocks.Content
	TemplateVersion int
}

type implData struct {
	Module          *ModuleView
	Impl            ImplementationView
	Interface       *InterfaceView
	Blocks          map[string]blocks.Content
	TemplateVersion int
	HppGuard        string
}

type interfaceData struct {
	Interface *InterfaceView
	HppGuard  string
}

type typesData struct {
	Unit *TypeUnitView
}

// Module renders the developer-facing files of a module. With update set,
// block contents are recovered from the files on disk.
func (g *Generator) Module(ctx context.Context, name string, update bool) (files.Map, error) {
	mod, manifest, err := g.parser.Module(name)
	if err != nil {
		return nil, err
	}
	view, err := NewModuleView(mod)
	if err != nil {
		return nil, fmt.Errorf("module %s: %w", mod.Name, err)
	}
	if err := g.checkRequirements(mod); err != nil {
		return nil, err
	}
	dump("module view", view)

	dir := filepath.Dir(manifest)
	r := renderer{dir: dir}

	hppPath := filepath.Join(dir, mod.Name+".hpp")
	hppBlocks, err := moduleHppBlocks.calculate(hppPath, update)
	if err != nil {
		return nil, err
	}
	cmakePath := filepath.Join(dir, "CMakeLists.txt")
	cmakeBlocksContent, err := cmakeBlocks.calculate(cmakePath, update)
	if err != nil {
		return nil, err
	}

	core := files.Section{Name: "core"}
	r.add(&core, templates.ModuleHpp, "module.hpp", mod.Name+".hpp", cppComment, false,
		moduleData{Module: view, Blocks: hppBlocks, TemplateVersion: moduleHppTemplateVersion})
	r.add(&core, templates.ModuleCpp, "module.cpp", mod.Name+".cpp", cppComment, true,
		moduleData{Module: view})
	r.add(&core, templates.CMakeList, "cmakelists", "CMakeLists.txt", cmakeComment, false,
		moduleData{Module: view, Blocks: cmakeBlocksContent, TemplateVersion: cmakeTemplateVersion})

	impls := files.Section{Name: "interfaces"}
	for _, impl := range view.Provides {
		iface, _, err := g.parser.Interface(impl.Interface)
		if err != nil {
			return nil, fmt.Errorf("implementation %s: %w", impl.ID, err)
		}
		ifaceView := NewInterfaceView(iface)

		guard, err := HeaderGuard("_IMPL_HPP", impl.ID, impl.Interface)
		if err != nil {
			return nil, fmt.Errorf("implementation %s: %w", impl.ID, err)
		}
		implBlocks, err := implHppBlocks.calculate(filepath.Join(dir, filepath.FromSlash(impl.ClassHeader)), update)
		if err != nil {
			return nil, err
		}

		data := implData{
			Module:          view,
			Impl:            impl,
			Interface:       ifaceView,
			Blocks:          implBlocks,
			TemplateVersion: implHppTemplateVersion,
			HppGuard:        guard,
		}
		r.add(&impls, templates.ImplHpp, impl.ID+".hpp", impl.ClassHeader, cppComment, false, data)
		r.add(&impls, templates.ImplCpp, impl.ID+".cpp", impl.CppFile, cppComment, true, data)
	}

	docs := files.Section{Name: "docs"}
	r.add(&docs, templates.ModuleDoc, "doc.rst", "doc.rst", "", true, moduleData{Module: view})
	r.add(&docs, templates.DocIndex, "index.rst", "docs/index.rst", "", true, moduleData{Module: view})

	if r.err != nil {
		return nil, r.err
	}
	m := files.Map{core, impls, docs}
	if err := g.format(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Loader renders the framework glue of a module into the output directory.
func (g *Generator) Loader(ctx context.Context, name string) (files.Map, error) {
	mod, _, err := g.parser.Module(name)
	if err != nil {
		return nil, err
	}
	view, err := NewModuleView(mod)
	if err != nil {
		return nil, fmt.Errorf("module %s: %w", mod.Name, err)
	}
	if err := g.checkRequirements(mod); err != nil {
		return nil, err
	}
	for _, impl := range mod.Implementations {
		if _, _, err := g.parser.Interface(impl.Interface); err != nil {
			return nil, fmt.Errorf("implementation %s: %w", impl.Name, err)
		}
	}

	r := renderer{dir: filepath.Join(g.outputDir, "modules", mod.Name), prefix: mod.Name}
	section := files.Section{Name: "loader"}
	data := moduleData{Module: view}
	r.add(&section, templates.LoaderHpp, "ld-ev.hpp", "ld-ev.hpp", cppComment, false, data)
	r.add(&section, templates.LoaderCpp, "ld-ev.cpp", "ld-ev.cpp", cppComment, false, data)
	if r.err != nil {
		return nil, r.err
	}

	m := files.Map{section}
	if err := g.format(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Interfaces renders the headers of the named interfaces. When names is
// empty every interface in the tree is rendered and interfaces that fail
// to load are skipped with a warning.
func (g *Generator) Interfaces(ctx context.Context, names []string) (files.Map, error) {
	all := len(names) == 0
	if all {
		listed, err := g.parser.Interfaces()
		if err != nil {
			return nil, err
		}
		names = listed
	}

	var m files.Map
	for _, name := range names {
		view, err := g.interfaceView(name)
		if err != nil {
			if all {
				output.Warn("skipping interface", "name", name, "err", err)
				continue
			}
			return nil, err
		}
		dump("interface view", view)

		r := renderer{dir: filepath.Join(g.outputDir, "interfaces", name), prefix: name}
		section := files.Section{Name: name}
		for _, artifact := range []struct {
			tmpl templates.Name
			file string
		}{
			{templates.InterfaceImplementation, "Implementation.hpp"},
			{templates.InterfaceExports, "Interface.hpp"},
			{templates.InterfaceTypes, "Types.hpp"},
		} {
			guard, err := HeaderGuard("_"+interfaceGuardSuffix(artifact.file), "generated_interface", name)
			if err != nil {
				return nil, fmt.Errorf("interface %s: %w", name, err)
			}
			r.add(&section, artifact.tmpl, name+"/"+artifact.file, artifact.file, cppComment, false,
				interfaceData{Interface: view, HppGuard: guard})
		}
		if r.err != nil {
			return nil, r.err
		}
		m = append(m, section)
	}

	if err := g.format(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Types renders the headers of the named type units, or of every loadable
// unit in the tree when units is empty. Types are emitted in dependency
// order.
func (g *Generator) Types(ctx context.Context, units []string) (files.Map, error) {
	all := len(units) == 0
	if all {
		listed, err := g.parser.TypeUnits()
		if err != nil {
			return nil, err
		}
		units = listed
	}

	r := renderer{dir: filepath.Join(g.outputDir, "types"), prefix: "types"}
	section := files.Section{Name: "types"}
	for _, name := range units {
		view, err := g.typeUnitView(name)
		if err != nil {
			if all {
				output.Warn("skipping type unit", "unit", name, "err", err)
				continue
			}
			return nil, err
		}
		dump("type unit view", view)

		file := filepath.FromSlash(name) + ".hpp"
		r.add(&section, templates.TypeHeader, name, file, cppComment, false, typesData{Unit: view})
	}
	if r.err != nil {
		return nil, r.err
	}

	m := files.Map{section}
	if err := g.format(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (g *Generator) interfaceView(name string) (*InterfaceView, error) {
	iface, _, err := g.parser.Interface(name)
	if err != nil {
		return nil, err
	}
	if err := g.checkTypes(interfaceTypes(iface)...); err != nil {
		return nil, fmt.Errorf("interface %s: %w", name, err)
	}
	return NewInterfaceView(iface), nil
}

func (g *Generator) typeUnitView(name string) (*TypeUnitView, error) {
	unit, order, err := g.orderedUnit(name)
	if err != nil {
		return nil, err
	}
	view, err := NewTypeUnitView(unit, order)
	if err != nil {
		return nil, fmt.Errorf("type unit %s: %w", name, err)
	}
	return view, nil
}

// TypeOrder returns the names of a unit's types in dependency order.
func (g *Generator) TypeOrder(name string) ([]string, error) {
	_, order, err := g.orderedUnit(name)
	return order, err
}

func (g *Generator) orderedUnit(name string) (*model.TypeUnit, []string, error) {
	unit, _, err := g.parser.TypeUnit(name)
	if err != nil {
		return nil, nil, err
	}
	var all []model.Type
	for _, t := range unit.Types {
		all = append(all, t)
	}
	if err := g.checkTypes(all...); err != nil {
		return nil, nil, fmt.Errorf("type unit %s: %w", name, err)
	}
	order, err := typegraph.OrderUnit(unit)
	if err != nil {
		return nil, nil, err
	}
	return unit, order, nil
}

// checkTypes resolves every reference the types make.
func (g *Generator) checkTypes(types ...model.Type) error {
	for _, t := range types {
		for _, ref := range typegraph.Dependencies(t) {
			if _, err := g.parser.Resolve(ref); err != nil {
				return err
			}
		}
	}
	return nil
}

func (g *Generator) checkRequirements(mod *model.Module) error {
	for _, req := range mod.Requirements {
		if _, _, err := g.parser.Interface(req.Interface); err != nil {
			return fmt.Errorf("requirement %s: %w", req.Name, err)
		}
	}
	return nil
}

func (g *Generator) format(ctx context.Context, m files.Map) error {
	if g.formatter == nil {
		return nil
	}
	return output.RunWithSpinner(ctx, func() error {
		for s := range m {
			for i := range m[s].Files {
				f := &m[s].Files[i]
				formatted, err := g.formatter.Format(ctx, f.Path, f.Content)
				if err != nil {
					return err
				}
				f.Content = formatted
			}
		}
		return nil
	}, output.WithTitle("Formatting generated sources..."))
}

func interfaceTypes(iface *model.Interface) []model.Type {
	var out []model.Type
	for _, cmd := range iface.Commands {
		for _, arg := range cmd.Arguments {
			out = append(out, arg.Type)
		}
		if cmd.Result != nil {
			out = append(out, cmd.Result)
		}
	}
	for _, sig := range iface.Signals {
		out = append(out, sig.Type)
	}
	return out
}

func interfaceGuardSuffix(file string) string {
	switch file {
	case "Implementation.hpp":
		return "IMPLEMENTATION_HPP"
	case "Interface.hpp":
		return "INTERFACE_HPP"
	default:
		return "TYPES_HPP"
	}
}

// renderer collects rendered artifacts of one directory and keeps the
// first error.
type renderer struct {
	dir    string
	prefix string
	err    error
}

func (r *renderer) add(s *files.Section, tmpl templates.Name, abbr, rel, comment string, keep bool, data any) {
	if r.err != nil {
		return
	}
	content, err := templates.Render(tmpl, data)
	if err != nil {
		r.err = err
		return
	}
	printable := rel
	if r.prefix != "" {
		printable = path.Join(r.prefix, filepath.ToSlash(rel))
	}
	s.Files = append(s.Files, files.Info{
		Abbreviation:  abbr,
		PrintableName: printable,
		Path:          filepath.Join(r.dir, filepath.FromSlash(rel)),
		Content:       content,
		CommentPrefix: comment,
		KeepExisting:  keep,
	})
}

func dump(label string, v any) {
	if output.DebugEnabled() {
		output.Debug(label, "dump", spew.Sdump(v))
	}
}
