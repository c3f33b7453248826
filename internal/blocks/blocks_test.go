package blocks

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/cienporcien/everest-core/internal/errors"
)

const (
	publicID  = "1fce4c5e-0ab8-41bb-90f7-14277703d2ac"
	privateID = "211cfdbe-f69a-4cd6-a4ec-f8aaa3d1b6c8"
	unknownID = "9a0b7c1e-2d3f-4a5b-8c6d-7e8f9a0b1c2d"
)

func testDefinitions() Definitions {
	return Definitions{
		"public_defs":  {ID: publicID, Default: "// insert your public definitions here"},
		"private_defs": {ID: privateID, Default: "// insert your private definitions here"},
	}
}

// renderClass stands in for a template with two indented blocks.
func renderClass(content map[string]Content) string {
	var b strings.Builder
	b.WriteString("class Example {\npublic:\n")
	b.WriteString(Render("    ", content["public_defs"]))
	b.WriteString("\n\nprivate:\n")
	b.WriteString(Render("    ", content["private_defs"]))
	b.WriteString("\n};\n")
	return b.String()
}

func lines(text string) []string {
	return strings.SplitAfter(text, "\n")
}

func TestCalculate_CreateUsesDefaults(t *testing.T) {
	got, err := CppStyle.Calculate(testDefinitions(), "v1", "/does/not/matter", false)
	require.NoError(t, err)

	assert.Equal(t, Content{
		Text:     "// insert your public definitions here",
		Tag:      "// ev@" + publicID + ":v1",
		FirstUse: true,
	}, got["public_defs"])
	assert.True(t, got["private_defs"].FirstUse)
}

func TestCalculate_MissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.hpp")

	got, err := CppStyle.Calculate(testDefinitions(), "v1", path, true)
	require.NoError(t, err)
	assert.True(t, got["public_defs"].FirstUse)
	assert.True(t, got["private_defs"].FirstUse)
}

func TestCalculate_Idempotent(t *testing.T) {
	defs := testDefinitions()
	created := renderClass(CppStyle.Defaults(defs, "v1"))

	path := filepath.Join(t.TempDir(), "example.hpp")
	require.NoError(t, os.WriteFile(path, []byte(created), 0o644))

	recovered, err := CppStyle.Calculate(defs, "v1", path, true)
	require.NoError(t, err)

	assert.Equal(t, created, renderClass(recovered))
	assert.False(t, recovered["public_defs"].FirstUse)
}

func TestScan_PreservesEditedBlock(t *testing.T) {
	defs := testDefinitions()
	created := renderClass(CppStyle.Defaults(defs, "v1"))
	edited := strings.Replace(created,
		"    // insert your public definitions here",
		"    int counter{0};\n\n    void reset();", 1)

	got, err := CppStyle.Scan("example.hpp", lines(edited), defs, "v1")
	require.NoError(t, err)

	assert.Equal(t, "    int counter{0};\n\n    void reset();", got["public_defs"].Text)
	assert.False(t, got["public_defs"].FirstUse)
	assert.Equal(t, "    // insert your private definitions here", got["private_defs"].Text)

	assert.Equal(t, edited, renderClass(got))
}

func TestScan_EmptyBlock(t *testing.T) {
	src := "// ev@" + publicID + ":v1\n// ev@" + publicID + ":v1\n"

	got, err := CppStyle.Scan("example.hpp", lines(src), testDefinitions(), "v1")
	require.NoError(t, err)
	assert.Equal(t, "", got["public_defs"].Text)
	assert.False(t, got["public_defs"].FirstUse)
	assert.Equal(t, "    // ev@"+publicID+":v1\n    // ev@"+publicID+":v1", Render("    ", got["public_defs"]))
}

func TestScan_NewBlockKeepsDefault(t *testing.T) {
	src := "// ev@" + publicID + ":v1\nint x;\n// ev@" + publicID + ":v1\n"

	got, err := CppStyle.Scan("example.hpp", lines(src), testDefinitions(), "v1")
	require.NoError(t, err)
	assert.Equal(t, "int x;", got["public_defs"].Text)
	assert.Equal(t, Content{
		Text:     "// insert your private definitions here",
		Tag:      "// ev@" + privateID + ":v1",
		FirstUse: true,
	}, got["private_defs"])
}

func TestScan_ClosingMarkerIgnoresIndentation(t *testing.T) {
	src := "  // ev@" + publicID + ":v1\nint x;\n\t// ev@" + publicID + ":v1\r\n"

	got, err := CppStyle.Scan("example.hpp", lines(src), testDefinitions(), "v1")
	require.NoError(t, err)
	assert.Equal(t, "int x;", got["public_defs"].Text)
}

func TestScan_VersionMismatch(t *testing.T) {
	src := "#pragma once\n// ev@" + publicID + ":v2\nint x;\n// ev@" + publicID + ":v2\n"

	got, err := CppStyle.Scan("example.hpp", lines(src), testDefinitions(), "v1")
	require.Error(t, err)
	assert.Nil(t, got)

	var mismatch *VersionMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, 2, mismatch.Line)
	assert.Equal(t, "v1", mismatch.Expected)
	assert.Equal(t, "v2", mismatch.Found)
	assert.Equal(t, publicID, mismatch.ID)
	assert.Contains(t, err.Error(), "example.hpp:2")
	assert.True(t, errors.Is(err, oerrors.ErrValidation))
}

func TestScan_UnknownIdentity(t *testing.T) {
	src := "\n\n// ev@" + unknownID + ":v1\n// ev@" + unknownID + ":v1\n"

	_, err := CppStyle.Scan("example.hpp", lines(src), testDefinitions(), "v1")
	require.Error(t, err)

	var unknown *UnknownIdentityError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, 3, unknown.Line)
	assert.Equal(t, unknownID, unknown.ID)
}

func TestScan_Unterminated(t *testing.T) {
	src := "// ev@" + publicID + ":v1\nint x;\n// ev@" + privateID + ":v1\n"

	_, err := CppStyle.Scan("example.hpp", lines(src), testDefinitions(), "v1")
	require.Error(t, err)

	var unterminated *UnterminatedError
	require.True(t, errors.As(err, &unterminated))
	assert.Equal(t, 1, unterminated.Line)
	assert.Equal(t, "// ev@"+publicID+":v1", unterminated.Marker)
}

func TestScan_OtherCommentStyleIsNotAMarker(t *testing.T) {
	src := "# ev@" + publicID + ":v2\n"

	got, err := CppStyle.Scan("example.hpp", lines(src), testDefinitions(), "v1")
	require.NoError(t, err)
	assert.True(t, got["public_defs"].FirstUse)
}

func TestCMakeStyle(t *testing.T) {
	defs := Definitions{
		"add_general": {ID: "bcc62523-e22b-41d7-ba2f-825b493a3c97", Default: "# insert your custom targets here"},
	}
	src := "project(x)\n# ev@bcc62523-e22b-41d7-ba2f-825b493a3c97:v1\nadd_subdirectory(tests)\n# ev@bcc62523-e22b-41d7-ba2f-825b493a3c97:v1\n"

	got, err := CMakeStyle.Scan("CMakeLists.txt", lines(src), defs, "v1")
	require.NoError(t, err)
	assert.Equal(t, "add_subdirectory(tests)", got["add_general"].Text)
	assert.Equal(t, "# ev@bcc62523-e22b-41d7-ba2f-825b493a3c97:v1", got["add_general"].Tag)
}

func TestDefinitionsValidate(t *testing.T) {
	assert.NoError(t, testDefinitions().Validate())

	tests := []struct {
		name string
		defs Definitions
	}{
		{"not a uuid", Definitions{"a": {ID: "block-a"}}},
		{"version 1 uuid", Definitions{"a": {ID: "6ba7b810-9dad-11d1-80b4-00c04fd430c8"}}},
		{"upper case", Definitions{"a": {ID: strings.ToUpper(publicID)}}},
		{"duplicate", Definitions{"a": {ID: publicID}, "b": {ID: publicID}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.defs.Validate())
		})
	}
}

func TestRender_IndentsDefaultsOnly(t *testing.T) {
	c := Content{Text: "// a\n\n// b", Tag: "// ev@" + publicID + ":v1", FirstUse: true}
	assert.Equal(t,
		"  // ev@"+publicID+":v1\n  // a\n\n  // b\n  // ev@"+publicID+":v1",
		Render("  ", c))

	c.FirstUse = false
	assert.Equal(t,
		"  // ev@"+publicID+":v1\n// a\n\n// b\n  // ev@"+publicID+":v1",
		Render("  ", c))
}
