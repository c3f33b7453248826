// Package cmdutil provides shared command utilities for the generator
// subcommands. It centralizes flag groups, generator construction, and
// report and error output.
package cmdutil

import (
	"github.com/spf13/cobra"

	"github.com/cienporcien/everest-core/internal/files"
)

// GenerateFlags holds flags common to commands that write generated files
// (module create/update, interface and types generate-headers).
type GenerateFlags struct {
	Force bool
	Diff  bool
	Only  []string
}

// AddTo registers the generate flags on the given cobra command. The
// --only selector is registered when selectable is set.
func (f *GenerateFlags) AddTo(cmd *cobra.Command, selectable bool) {
	cmd.Flags().BoolVarP(&f.Force, "force", "f", false,
		"Overwrite existing files")
	cmd.Flags().BoolVarP(&f.Diff, "diff", "d", false,
		"Show differences to the files on disk without writing")
	cmd.Flags().BoolVar(&f.Diff, "dry-run", false,
		"Alias for --diff")
	if selectable {
		cmd.Flags().StringSliceVar(&f.Only, "only", nil,
			"Generate only the named files (comma separated, 'which' lists them)")
	}
}

// Options returns the creator options for mode.
func (f *GenerateFlags) Options(mode files.Mode) files.Options {
	return files.Options{Mode: mode, Force: f.Force, DiffOnly: f.Diff}
}
