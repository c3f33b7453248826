package codegen

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cienporcien/everest-core/internal/blocks"
	oerrors "github.com/cienporcien/everest-core/internal/errors"
	"github.com/cienporcien/everest-core/internal/files"
	"github.com/cienporcien/everest-core/internal/loader"
	"github.com/cienporcien/everest-core/internal/schema"
	"github.com/cienporcien/everest-core/internal/testutil"
	"github.com/cienporcien/everest-core/internal/typegraph"
)

const everestTree = `
-- modules/PowerMeter/manifest.yaml --
description: Reads a power meter
config:
  interval:
    description: Poll interval in ms
    type: integer
provides:
  main:
    interface: powermeter
    description: Meter implementation
    config:
      device:
        type: string
requires:
  boards:
    interface: board_support
    min_connections: 1
    max_connections: 2
metadata:
  license: https://opensource.org/licenses/Apache-2.0
  authors:
    - Jane Doe
-- modules/Orphan/manifest.yaml --
description: Requires an interface nobody defines
requires:
  ghost:
    interface: ghost
metadata:
  license: MIT
  authors: []
-- interfaces/powermeter.yaml --
description: Power meter
cmds:
  set_limit:
    description: Sets a limit
    arguments:
      value:
        description: Limit
        type: number
    result:
      type: boolean
vars:
  powermeter:
    description: Measured values
    $ref: /powermeter#/Powermeter
-- interfaces/board_support.yaml --
description: Board support
cmds:
  enable:
    description: Enables the board
    arguments:
      value:
        type: boolean
-- interfaces/dangling.yaml --
description: References a missing type
vars:
  broken:
    $ref: /missing#/Nothing
-- types/powermeter.yaml --
description: Power meter types
types:
  Powermeter:
    type: object
    required: [energy]
    properties:
      energy:
        $ref: "#/Energy"
      phase:
        $ref: "#/Phase"
  Energy:
    type: number
  Phase:
    type: string
    enum: [L1, L2, L3]
-- types/cyclic.yaml --
description: Types referencing each other
types:
  A:
    type: object
    properties:
      b:
        $ref: "#/B"
  B:
    type: object
    properties:
      a:
        $ref: "#/A"
`

// recordingFormatter records the paths it was asked to format.
type recordingFormatter struct {
	paths []string
}

func (f *recordingFormatter) Format(_ context.Context, path, content string) (string, error) {
	f.paths = append(f.paths, path)
	return content, nil
}

type failingFormatter struct{}

func (failingFormatter) Format(_ context.Context, path, _ string) (string, error) {
	return "", &FormattingError{Path: path, Reason: "exit status 1"}
}

func setupGenerator(t *testing.T, formatter Formatter) (string, *Generator) {
	t.Helper()
	dir := t.TempDir()
	testutil.WriteArchive(t, dir, everestTree)

	tree, err := loader.NewTree(dir)
	require.NoError(t, err)
	cache, err := loader.NewCache(loader.DefaultCacheSize)
	require.NoError(t, err)
	schemas, err := schema.Embedded()
	require.NoError(t, err)

	parser := loader.NewParser(dir, tree, schemas, cache)
	return dir, New(parser, filepath.Join(dir, "build", "generated"), formatter)
}

func fileByAbbreviation(t *testing.T, m files.Map, abbr string) files.Info {
	t.Helper()
	for _, f := range m.All() {
		if f.Abbreviation == abbr {
			return f
		}
	}
	t.Fatalf("no file %q in map", abbr)
	return files.Info{}
}

func TestModule_Layout(t *testing.T) {
	dir, gen := setupGenerator(t, nil)

	m, err := gen.Module(context.Background(), "PowerMeter", false)
	require.NoError(t, err)

	require.Len(t, m, 3)
	assert.Equal(t, "core", m[0].Name)
	assert.Equal(t, "interfaces", m[1].Name)
	assert.Equal(t, "docs", m[2].Name)

	moduleDir := filepath.Join(dir, "modules", "PowerMeter")
	tests := []struct {
		abbr string
		path string
		keep bool
	}{
		{"module.hpp", "PowerMeter.hpp", false},
		{"module.cpp", "PowerMeter.cpp", true},
		{"cmakelists", "CMakeLists.txt", false},
		{"main.hpp", "main/powermeterImpl.hpp", false},
		{"main.cpp", "main/powermeterImpl.cpp", true},
		{"doc.rst", "doc.rst", true},
		{"index.rst", "docs/index.rst", true},
	}
	for _, tt := range tests {
		t.Run(tt.abbr, func(t *testing.T) {
			f := fileByAbbreviation(t, m, tt.abbr)
			assert.Equal(t, filepath.Join(moduleDir, filepath.FromSlash(tt.path)), f.Path)
			assert.Equal(t, tt.keep, f.KeepExisting)
		})
	}

	assert.Equal(t, "#", fileByAbbreviation(t, m, "cmakelists").CommentPrefix)
	assert.Equal(t, "//", fileByAbbreviation(t, m, "module.hpp").CommentPrefix)
}

func TestModule_HeaderContent(t *testing.T) {
	_, gen := setupGenerator(t, nil)

	m, err := gen.Module(context.Background(), "PowerMeter", false)
	require.NoError(t, err)

	hpp := fileByAbbreviation(t, m, "module.hpp").Content
	assert.True(t, strings.HasPrefix(hpp, "// SPDX-License-Identifier: Apache-2.0\n// Copyright Jane Doe\n"))
	assert.Contains(t, hpp, "#ifndef POWER_METER_HPP")
	assert.Contains(t, hpp, "#include <generated/interfaces/powermeter/Implementation.hpp>")
	assert.Contains(t, hpp, "#include <generated/interfaces/board_support/Interface.hpp>")
	assert.Contains(t, hpp, "    int interval;")
	assert.Contains(t, hpp, "const std::vector<std::unique_ptr<board_supportIntf>> r_boards;")
	assert.Contains(t, hpp, "// ev@"+moduleHppBlocks.definitions["public_defs"].ID+":v1")
	assert.Contains(t, hpp, "    // insert your public definitions here")

	impl := fileByAbbreviation(t, m, "main.hpp").Content
	assert.Contains(t, impl, "#ifndef MAIN_POWERMETER_IMPL_HPP")
	assert.Contains(t, impl, "    std::string device;")
	assert.Contains(t, impl, "virtual bool handle_set_limit(double& value) override;")

	cpp := fileByAbbreviation(t, m, "main.cpp").Content
	assert.Contains(t, cpp, "bool powermeterImpl::handle_set_limit(double& value) {")
	assert.Contains(t, cpp, "    return true;")

	cmake := fileByAbbreviation(t, m, "cmakelists").Content
	assert.Contains(t, cmake, "# ev@"+cmakeBlocks.definitions["add_general"].ID+":v1")
	assert.Contains(t, cmake, "main/powermeterImpl.cpp")
}

// writeAll writes every file of m, developer files included.
func writeAll(t *testing.T, m files.Map) {
	t.Helper()
	_, err := files.Apply(m, files.Options{Mode: files.ModeCreate, Force: true})
	require.NoError(t, err)
}

func TestModule_UpdateIsIdempotent(t *testing.T) {
	_, gen := setupGenerator(t, nil)
	ctx := context.Background()

	m, err := gen.Module(ctx, "PowerMeter", false)
	require.NoError(t, err)
	writeAll(t, m)

	updated, err := gen.Module(ctx, "PowerMeter", true)
	require.NoError(t, err)

	report, err := files.Apply(updated, files.Options{Mode: files.ModeUpdate})
	require.NoError(t, err)
	assert.Equal(t, 0, report.Count(files.StatusUpdated))
	assert.Equal(t, 0, report.Count(files.StatusCreated))
}

func TestModule_UpdatePreservesBlocks(t *testing.T) {
	_, gen := setupGenerator(t, nil)
	ctx := context.Background()

	m, err := gen.Module(ctx, "PowerMeter", false)
	require.NoError(t, err)
	writeAll(t, m)

	hppPath := fileByAbbreviation(t, m, "module.hpp").Path
	original := testutil.ReadFile(t, hppPath)
	edited := strings.Replace(original,
		"    // insert your private definitions here",
		"    int counter{0};\n    std::mutex lock;", 1)
	require.NotEqual(t, original, edited)
	require.NoError(t, os.WriteFile(hppPath, []byte(edited), 0o644))

	cmakePath := fileByAbbreviation(t, m, "cmakelists").Path
	cmake := strings.Replace(testutil.ReadFile(t, cmakePath),
		"# insert other things like install cmds etc here",
		"install(TARGETS ${MODULE_NAME})", 1)
	require.NoError(t, os.WriteFile(cmakePath, []byte(cmake), 0o644))

	updated, err := gen.Module(ctx, "PowerMeter", true)
	require.NoError(t, err)

	assert.Equal(t, edited, fileByAbbreviation(t, updated, "module.hpp").Content)
	assert.Equal(t, cmake, fileByAbbreviation(t, updated, "cmakelists").Content)
}

func TestModule_UpdateRejectsBadMarkers(t *testing.T) {
	publicDefs := moduleHppBlocks.definitions["public_defs"].ID

	tests := []struct {
		name   string
		edit   func(string) string
		target any
	}{
		{
			name: "version mismatch",
			edit: func(s string) string {
				return strings.ReplaceAll(s, "ev@"+publicDefs+":v1", "ev@"+publicDefs+":v0")
			},
			target: new(*blocks.VersionMismatchError),
		},
		{
			name: "unknown identity",
			edit: func(s string) string {
				return strings.ReplaceAll(s, "ev@"+publicDefs, "ev@8c7f2b0e-5d4a-4f3e-9b2a-1c0d9e8f7a6b")
			},
			target: new(*blocks.UnknownIdentityError),
		},
		{
			name: "unterminated",
			edit: func(s string) string {
				i := strings.LastIndex(s, "// ev@"+publicDefs+":v1")
				return s[:i] + s[i+len("// ev@"+publicDefs+":v1"):]
			},
			target: new(*blocks.UnterminatedError),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, gen := setupGenerator(t, nil)
			ctx := context.Background()

			m, err := gen.Module(ctx, "PowerMeter", false)
			require.NoError(t, err)
			writeAll(t, m)

			hppPath := fileByAbbreviation(t, m, "module.hpp").Path
			require.NoError(t, os.WriteFile(hppPath, []byte(tt.edit(testutil.ReadFile(t, hppPath))), 0o644))

			_, err = gen.Module(ctx, "PowerMeter", true)
			require.Error(t, err)
			assert.True(t, errors.As(err, tt.target))
			assert.True(t, errors.Is(err, oerrors.ErrValidation))
		})
	}
}

func TestModule_MissingRequirementInterface(t *testing.T) {
	_, gen := setupGenerator(t, nil)

	_, err := gen.Module(context.Background(), "Orphan", false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, oerrors.ErrNotFound))
	assert.Contains(t, err.Error(), "ghost")
}

func TestModule_NotFound(t *testing.T) {
	_, gen := setupGenerator(t, nil)

	_, err := gen.Module(context.Background(), "Nope", false)
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitNotFound, oerrors.ExitCodeFromError(err))
}

func TestLoader(t *testing.T) {
	dir, gen := setupGenerator(t, nil)

	m, err := gen.Loader(context.Background(), "PowerMeter")
	require.NoError(t, err)

	hpp := fileByAbbreviation(t, m, "ld-ev.hpp")
	assert.Equal(t, filepath.Join(dir, "build", "generated", "modules", "PowerMeter", "ld-ev.hpp"), hpp.Path)
	assert.Equal(t, "PowerMeter/ld-ev.hpp", hpp.PrintableName)

	cpp := fileByAbbreviation(t, m, "ld-ev.cpp").Content
	assert.Contains(t, cpp, `module_conf.interval = Everest::get_config<int>(module_configs["!module"], "interval");`)
	assert.Contains(t, cpp, `main_conf.device = Everest::get_config<std::string>(module_configs["main"], "device");`)
	assert.Contains(t, cpp, "std::vector<std::unique_ptr<board_supportIntf>> r_boards;")
	assert.Contains(t, cpp, `adapter.get_requirements("boards")`)
	assert.Contains(t, cpp, "std::move(p_main), std::move(r_boards), module_conf);")
}

func TestInterfaces_Named(t *testing.T) {
	dir, gen := setupGenerator(t, nil)

	m, err := gen.Interfaces(context.Background(), []string{"powermeter"})
	require.NoError(t, err)
	require.Len(t, m, 1)
	require.Len(t, m[0].Files, 3)

	types := fileByAbbreviation(t, m, "powermeter/Types.hpp")
	assert.Equal(t, filepath.Join(dir, "build", "generated", "interfaces", "powermeter", "Types.hpp"), types.Path)
	assert.Contains(t, types.Content, "#ifndef GENERATED_INTERFACE_POWERMETER_TYPES_HPP")
	assert.Contains(t, types.Content, "#include <generated/types/powermeter.hpp>")

	impl := fileByAbbreviation(t, m, "powermeter/Implementation.hpp").Content
	assert.Contains(t, impl, "void publish_powermeter(types::powermeter::Powermeter value)")
	assert.Contains(t, impl, "virtual bool handle_set_limit(double& value) = 0;")
}

func TestInterfaces_NamedFailureStops(t *testing.T) {
	_, gen := setupGenerator(t, nil)

	_, err := gen.Interfaces(context.Background(), []string{"dangling"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, oerrors.ErrNotFound))
}

func TestInterfaces_AllSkipsFailures(t *testing.T) {
	_, gen := setupGenerator(t, nil)

	m, err := gen.Interfaces(context.Background(), nil)
	require.NoError(t, err)

	var names []string
	for _, s := range m {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"board_support", "powermeter"}, names)
}

func TestTypes_DependencyOrder(t *testing.T) {
	dir, gen := setupGenerator(t, nil)

	order, err := gen.TypeOrder("powermeter")
	require.NoError(t, err)
	assert.Equal(t, []string{"Energy", "Phase", "Powermeter"}, order)

	m, err := gen.Types(context.Background(), []string{"powermeter"})
	require.NoError(t, err)

	f := fileByAbbreviation(t, m, "powermeter")
	assert.Equal(t, filepath.Join(dir, "build", "generated", "types", "powermeter.hpp"), f.Path)

	content := f.Content
	energy := strings.Index(content, "using Energy = double;")
	phase := strings.Index(content, "enum class Phase {")
	meter := strings.Index(content, "struct Powermeter {")
	require.True(t, energy >= 0 && phase >= 0 && meter >= 0, content)
	assert.Less(t, energy, phase)
	assert.Less(t, phase, meter)

	assert.Contains(t, content, "    types::powermeter::Energy energy;")
	assert.Contains(t, content, "    std::optional<types::powermeter::Phase> phase;")
	assert.Contains(t, content, "namespace powermeter {")
}

func TestTypes_Cycle(t *testing.T) {
	_, gen := setupGenerator(t, nil)

	_, err := gen.TypeOrder("cyclic")
	require.Error(t, err)

	var cycleErr *typegraph.CycleError
	require.True(t, errors.As(err, &cycleErr))
	assert.Equal(t, []string{"A", "B"}, cycleErr.Names)
	assert.Equal(t, oerrors.ExitValidationError, oerrors.ExitCodeFromError(err))
}

func TestTypes_AllSkipsFailures(t *testing.T) {
	_, gen := setupGenerator(t, nil)

	m, err := gen.Types(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, m, 1)
	require.Len(t, m[0].Files, 1)
	assert.Equal(t, "powermeter", m[0].Files[0].Abbreviation)
}

func TestFormatterRunsOnEveryFile(t *testing.T) {
	formatter := &recordingFormatter{}
	_, gen := setupGenerator(t, formatter)

	m, err := gen.Loader(context.Background(), "PowerMeter")
	require.NoError(t, err)
	assert.Len(t, formatter.paths, m.Len())
}

func TestFormatterFailureStopsGeneration(t *testing.T) {
	_, gen := setupGenerator(t, failingFormatter{})

	_, err := gen.Types(context.Background(), []string{"powermeter"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, oerrors.ErrFormatting))
}
