package cmdutil

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/cienporcien/everest-core/internal/errors"
	"github.com/cienporcien/everest-core/internal/files"
	"github.com/cienporcien/everest-core/internal/testutil"
)

func TestGenerateFlags_AddTo(t *testing.T) {
	var flags GenerateFlags
	cmd := &cobra.Command{Use: "create"}
	flags.AddTo(cmd, true)

	require.NoError(t, cmd.ParseFlags([]string{"-f", "--dry-run", "--only", "module.hpp,cmakelists"}))
	assert.True(t, flags.Force)
	assert.True(t, flags.Diff)
	assert.Equal(t, []string{"module.hpp", "cmakelists"}, flags.Only)
	assert.Equal(t, files.Options{Mode: files.ModeUpdate, Force: true, DiffOnly: true}, flags.Options(files.ModeUpdate))
}

func TestGenerateFlags_NotSelectable(t *testing.T) {
	var flags GenerateFlags
	cmd := &cobra.Command{Use: "generate-headers"}
	flags.AddTo(cmd, false)

	assert.Nil(t, cmd.Flags().Lookup("only"))
	assert.NotNil(t, cmd.Flags().Lookup("diff"))
}

func testMap(dir string) files.Map {
	return files.Map{
		{Name: "core", Files: []files.Info{
			{Abbreviation: "a", PrintableName: "a.hpp", Path: filepath.Join(dir, "a.hpp"), Content: "int a;\n", CommentPrefix: "//"},
			{Abbreviation: "b", PrintableName: "sub/b.hpp", Path: filepath.Join(dir, "sub", "b.hpp"), Content: "int b;\n", CommentPrefix: "//"},
		}},
	}
}

func TestApply_Writes(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer

	report, err := Apply(&out, testMap(dir), ApplyOptions{Flags: &GenerateFlags{}, Mode: files.ModeCreate, Root: "test"})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Count(files.StatusCreated))
	assert.Contains(t, out.String(), "a.hpp")
	assert.Contains(t, out.String(), "sub/b.hpp")
	assert.FileExists(t, filepath.Join(dir, "sub", "b.hpp"))
}

func TestApply_VerbosePrintsTree(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer

	_, err := Apply(&out, testMap(dir), ApplyOptions{Flags: &GenerateFlags{}, Mode: files.ModeCreate, Root: "test", Verbose: true})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "test")
	assert.Contains(t, out.String(), "sub")
	assert.Contains(t, out.String(), "2 created")
}

func TestApply_Which(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer

	report, err := Apply(&out, testMap(dir), ApplyOptions{Flags: &GenerateFlags{Only: []string{"which"}}, Mode: files.ModeCreate})
	require.NoError(t, err)
	assert.Empty(t, report.Results)
	assert.Contains(t, out.String(), "section: core")
	assert.NoFileExists(t, filepath.Join(dir, "a.hpp"))
}

func TestApply_DiffReportsDifferences(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "a.hpp", "int old;\n")
	var out bytes.Buffer

	_, err := Apply(&out, testMap(dir), ApplyOptions{Flags: &GenerateFlags{Diff: true, Only: []string{"a"}}, Mode: files.ModeUpdate})
	require.ErrorIs(t, err, ErrDifferences)
	assert.Contains(t, out.String(), "int a;")
	assert.Equal(t, "int old;\n", testutil.ReadFile(t, filepath.Join(dir, "a.hpp")))
}

func TestFail(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"differences", ErrDifferences, oerrors.ExitGeneralError},
		{"not found", oerrors.NewNotFoundError("module X not found", "modules/X/manifest.yaml", ""), oerrors.ExitNotFound},
		{"selector", &files.UnknownSelectorError{Names: []string{"x"}, Available: []string{"a"}}, oerrors.ExitValidationError},
		{"exists", fmt.Errorf("create: %w", &files.ExistsError{Paths: []string{"a.hpp"}}), oerrors.ExitValidationError},
		{"other", errors.New("boom"), oerrors.ExitGeneralError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Fail("failed", tt.err)

			var exitErr *oerrors.ExitError
			require.True(t, errors.As(err, &exitErr))
			assert.Equal(t, tt.want, exitErr.Code)
			assert.True(t, exitErr.Printed)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}
