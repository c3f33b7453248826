// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	configcmd "github.com/cienporcien/everest-core/internal/cmd/config"
	ifacecmd "github.com/cienporcien/everest-core/internal/cmd/iface"
	modulecmd "github.com/cienporcien/everest-core/internal/cmd/module"
	typescmd "github.com/cienporcien/everest-core/internal/cmd/types"
	"github.com/cienporcien/everest-core/internal/cmdtypes"
	"github.com/cienporcien/everest-core/internal/cmdutil"
	"github.com/cienporcien/everest-core/internal/config"
	"github.com/cienporcien/everest-core/internal/output"
)

// rootFlags are the global flags that do not feed the settings resolver.
type rootFlags struct {
	config     string
	timestamps bool
	noColor    bool
}

// NewRootCmd creates the root command for ev-cli.
func NewRootCmd() *cobra.Command {
	var (
		cfg   cmdtypes.GlobalConfig
		flags rootFlags
	)

	rootCmd := &cobra.Command{
		Use:   "ev-cli",
		Short: "EVerest module code generator",
		Long: `ev-cli generates C++ sources for EVerest modules, interfaces and types
from their YAML definitions. Regenerating keeps the hand-written code
between ev@ block markers.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initializeGlobals(cmd, &cfg, flags)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfg.Flags.WorkDir, "work-dir", "w", "", "Directory holding modules/ (env: EV_CLI_WORK_DIR)")
	pf.StringArrayVarP(&cfg.Flags.EverestDirs, "everest-dir", "e", nil, "Root searched for interfaces/ and types/, can be repeated (env: EV_CLI_EVEREST_DIRS)")
	pf.StringVarP(&cfg.Flags.SchemasDir, "schemas-dir", "s", "", "Directory with definition schemas (env: EV_CLI_SCHEMAS_DIR)")
	pf.StringVarP(&cfg.Flags.OutputDir, "output-dir", "o", "", "Output directory for loader, interface and type headers (env: EV_CLI_OUTPUT_DIR)")
	pf.StringVar(&cfg.Flags.ClangFormatFile, "clang-format-file", "", "Directory containing the .clang-format file (env: EV_CLI_CLANG_FORMAT_FILE)")
	pf.BoolVar(&cfg.Flags.DisableClangFormat, "disable-clang-format", false, "Do not format generated sources (env: EV_CLI_DISABLE_CLANG_FORMAT)")
	pf.StringVar(&flags.config, "config", "", "Path to config file (env: EV_CLI_CONFIG)")
	pf.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Enable verbose output")
	pf.BoolVar(&flags.timestamps, "timestamps", true, "Show timestamps in log output")
	pf.BoolVar(&flags.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		modulecmd.NewModuleCmd(&cfg),
		ifacecmd.NewInterfaceCmd(&cfg),
		typescmd.NewTypesCmd(&cfg),
		configcmd.NewConfigCmd(&cfg),
		NewVersionCmd(&cfg),
	)

	return rootCmd
}

// initializeGlobals sets up logging, loads the config file and resolves
// the settings every subcommand runs with.
func initializeGlobals(cmd *cobra.Command, cfg *cmdtypes.GlobalConfig, flags rootFlags) error {
	if flags.noColor {
		output.DisableColor()
	}
	output.SetupLogging(output.LogConfig{Verbose: cfg.Verbose})

	dotEnvDir := cfg.Flags.WorkDir
	if dotEnvDir == "" {
		dotEnvDir = "."
	}
	if err := config.LoadDotEnv(dotEnvDir); err != nil {
		return cmdutil.Fail("loading environment", err)
	}

	configPath, err := config.ResolveConfigPath(flags.config)
	if err != nil {
		return cmdutil.Fail("resolving config path", err)
	}
	cfg.ConfigPath = configPath.ConfigPath
	output.Debug("config path resolved", "path", configPath.ConfigPath, "source", configPath.Source)

	loaded, err := config.NewLoader().Load(cfg.ConfigPath)
	if err != nil {
		// Commands such as config init must still work with a broken file.
		output.Warn("ignoring config file", "path", cfg.ConfigPath, "error", err)
		loaded = &config.Config{}
	}
	cfg.Config = loaded

	cfg.Flags.Set = map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) {
		cfg.Flags.Set[f.Name] = true
	})

	settings, err := config.Resolve(cfg.Flags, cfg.Config)
	if err != nil {
		return cmdutil.Fail("resolving configuration", err)
	}
	cfg.Settings = settings

	// Timestamps: flag (if explicitly set) > config > default (nil = true)
	logCfg := output.LogConfig{Verbose: cfg.Verbose}
	if cmd.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(flags.timestamps)
	} else if cfg.Config.Log.Timestamps != nil {
		logCfg.Timestamps = cfg.Config.Log.Timestamps
	}
	output.SetupLogging(logCfg)

	config.LogResolvedValues(settings.Values)
	return nil
}
