// Package config provides the `ev-cli config` command group.
package config

import (
	"github.com/spf13/cobra"

	"github.com/cienporcien/everest-core/internal/cmdtypes"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration operations",
		Long:  `Commands for creating and validating the ev-cli configuration file.`,
	}

	cmd.AddCommand(
		newInitCmd(cfg),
		newVetCmd(cfg),
	)

	return cmd
}
