package module

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cienporcien/everest-core/internal/cmdtypes"
	"github.com/cienporcien/everest-core/internal/cmdutil"
	"github.com/cienporcien/everest-core/internal/files"
)

// NewGenerateLoaderCmd creates the module generate-loader command.
func NewGenerateLoaderCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:     "generate-loader <module>",
		Aliases: []string{"gl"},
		Short:   "Generate the framework loader of a module",
		Long: `Generate ld-ev.hpp and ld-ev.cpp for a module into
<output-dir>/modules/<module>. The files are always overwritten.`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			name := args[0]

			gen, err := cmdutil.NewGenerator(cfg)
			if err != nil {
				return cmdutil.Fail("initializing generator", err)
			}
			m, err := gen.Loader(c.Context(), name)
			if err != nil {
				return cmdutil.Fail(fmt.Sprintf("generating loader for %s", name), err)
			}

			_, err = cmdutil.Apply(c.OutOrStdout(), m, cmdutil.ApplyOptions{
				Flags:   &cmdutil.GenerateFlags{},
				Mode:    files.ModeUpdate,
				Root:    cfg.Settings.OutputDir,
				Verbose: cfg.Verbose,
			})
			if err != nil {
				return cmdutil.Fail(fmt.Sprintf("writing loader for %s", name), err)
			}
			return nil
		},
	}
}
