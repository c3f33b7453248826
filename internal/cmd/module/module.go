// Package module provides the `ev-cli module` command group.
package module

import (
	"github.com/spf13/cobra"

	"github.com/cienporcien/everest-core/internal/cmdtypes"
)

// NewModuleCmd creates the module command group.
func NewModuleCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "module",
		Aliases: []string{"mod"},
		Short:   "Module operations",
		Long:    `Commands for creating and updating EVerest module sources from their manifest.`,
	}

	cmd.AddCommand(
		NewCreateCmd(cfg),
		NewUpdateCmd(cfg),
		NewGenerateLoaderCmd(cfg),
	)

	return cmd
}
