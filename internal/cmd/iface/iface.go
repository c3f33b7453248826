// Package iface provides the `ev-cli interface` command group.
package iface

import (
	"github.com/spf13/cobra"

	"github.com/cienporcien/everest-core/internal/cmdtypes"
	"github.com/cienporcien/everest-core/internal/cmdutil"
	"github.com/cienporcien/everest-core/internal/files"
)

// NewInterfaceCmd creates the interface command group.
func NewInterfaceCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "interface",
		Aliases: []string{"if"},
		Short:   "Interface operations",
	}
	cmd.AddCommand(newGenerateHeadersCmd(cfg))
	return cmd
}

func newGenerateHeadersCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var flags cmdutil.GenerateFlags

	c := &cobra.Command{
		Use:     "generate-headers [interface...]",
		Aliases: []string{"gh"},
		Short:   "Generate interface headers",
		Long: `Generate Implementation.hpp, Interface.hpp and Types.hpp for the given
interfaces into <output-dir>/interfaces/<name>. Without arguments every
interface found in the everest dirs is processed and the ones that fail
are skipped.`,
		RunE: func(c *cobra.Command, args []string) error {
			gen, err := cmdutil.NewGenerator(cfg)
			if err != nil {
				return cmdutil.Fail("initializing generator", err)
			}
			m, err := gen.Interfaces(c.Context(), args)
			if err != nil {
				return cmdutil.Fail("generating interface headers", err)
			}
			_, err = cmdutil.Apply(c.OutOrStdout(), m, cmdutil.ApplyOptions{
				Flags:   &flags,
				Mode:    files.ModeCreate,
				Root:    cfg.Settings.OutputDir,
				Verbose: cfg.Verbose,
			})
			if err != nil {
				return cmdutil.Fail("writing interface headers", err)
			}
			return nil
		},
	}
	flags.AddTo(c, false)
	return c
}
