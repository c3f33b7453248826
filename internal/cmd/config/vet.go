package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cienporcien/everest-core/internal/cmdtypes"
	"github.com/cienporcien/everest-core/internal/cmdutil"
	"github.com/cienporcien/everest-core/internal/config"
	"github.com/cienporcien/everest-core/internal/output"
	"github.com/cienporcien/everest-core/internal/schema"
)

func newVetCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate the ev-cli configuration file",
		Long: `Validate the ev-cli configuration file against the configuration schema.

The command validates the configuration file at ~/.ev-cli/config.yaml by default.
Use --config flag to specify a different location.`,
		RunE: func(c *cobra.Command, _ []string) error {
			return runVet(c, cfg)
		},
	}
}

func runVet(c *cobra.Command, cfg *cmdtypes.GlobalConfig) error {
	schemas, err := schema.Embedded()
	if err != nil {
		return cmdutil.Fail("loading schemas", err)
	}

	loaded, err := config.ValidateFile(schemas, cfg.ConfigPath)
	if err != nil {
		return cmdutil.Fail("config validation failed", err)
	}

	w := c.OutOrStdout()
	fmt.Fprintln(w, output.FormatVetCheck("Config file is valid", cfg.ConfigPath))
	if len(loaded.EverestDirs) > 0 {
		fmt.Fprintln(w, output.FormatVetCheck("Everest dirs", fmt.Sprint(loaded.EverestDirs)))
	}
	return nil
}
