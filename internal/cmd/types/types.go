// Package types provides the `ev-cli types` command group.
package types

import (
	"github.com/spf13/cobra"

	"github.com/cienporcien/everest-core/internal/cmdtypes"
	"github.com/cienporcien/everest-core/internal/cmdutil"
	"github.com/cienporcien/everest-core/internal/files"
)

// NewTypesCmd creates the types command group.
func NewTypesCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "types",
		Aliases: []string{"ty"},
		Short:   "Type unit operations",
	}
	cmd.AddCommand(
		newGenerateHeadersCmd(cfg),
		newOrderCmd(cfg),
	)
	return cmd
}

func newGenerateHeadersCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var flags cmdutil.GenerateFlags

	c := &cobra.Command{
		Use:     "generate-headers [unit...]",
		Aliases: []string{"gh"},
		Short:   "Generate type headers",
		Long: `Generate <output-dir>/types/<unit>.hpp for the given type units, with
types declared in dependency order. Without arguments every unit found in
the everest dirs is processed and the ones that fail are skipped.`,
		RunE: func(c *cobra.Command, args []string) error {
			gen, err := cmdutil.NewGenerator(cfg)
			if err != nil {
				return cmdutil.Fail("initializing generator", err)
			}
			m, err := gen.Types(c.Context(), args)
			if err != nil {
				return cmdutil.Fail("generating type headers", err)
			}
			_, err = cmdutil.Apply(c.OutOrStdout(), m, cmdutil.ApplyOptions{
				Flags:   &flags,
				Mode:    files.ModeCreate,
				Root:    cfg.Settings.OutputDir,
				Verbose: cfg.Verbose,
			})
			if err != nil {
				return cmdutil.Fail("writing type headers", err)
			}
			return nil
		},
	}
	flags.AddTo(c, false)
	return c
}
