package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/cienporcien/everest-core/internal/cmdtypes"
	"github.com/cienporcien/everest-core/internal/cmdutil"
	"github.com/cienporcien/everest-core/internal/config"
	"github.com/cienporcien/everest-core/internal/output"
)

const configHeader = "# ev-cli configuration\n" +
	"# Values are overridden by EV_CLI_* environment variables and flags.\n\n"

func newInitCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var force bool

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create a new ev-cli configuration file",
		Long: `Create a new ev-cli configuration file with default values.

The configuration file is created at ~/.ev-cli/config.yaml by default.
Use --config flag to specify a different location.`,
		RunE: func(c *cobra.Command, _ []string) error {
			return runInit(c, cfg, force)
		},
	}

	initCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config file")

	return initCmd
}

func runInit(c *cobra.Command, cfg *cmdtypes.GlobalConfig, force bool) error {
	expandedPath, err := config.ExpandPath(cfg.ConfigPath)
	if err != nil {
		return cmdutil.Fail("expanding config path", err)
	}

	exists, err := config.ConfigFileExists(expandedPath)
	if err != nil {
		return cmdutil.Fail("checking config file", err)
	}
	if exists && !force {
		err := fmt.Errorf("config file already exists at %s (use --force to overwrite)", expandedPath)
		output.Error(err.Error())
		return &cmdtypes.ExitError{Code: cmdtypes.ExitGeneralError, Err: err, Printed: true}
	}

	if err := os.MkdirAll(filepath.Dir(expandedPath), 0o755); err != nil {
		return cmdutil.Fail("creating config directory", err)
	}

	data, err := yaml.Marshal(config.DefaultConfig())
	if err != nil {
		return cmdutil.Fail("marshaling config", err)
	}
	data = append([]byte(configHeader), data...)

	if err := os.WriteFile(expandedPath, data, 0o644); err != nil {
		return cmdutil.Fail("writing config file", err)
	}

	fmt.Fprintln(c.OutOrStdout(), output.FormatCheckmark("Config file created: "+expandedPath))
	return nil
}
