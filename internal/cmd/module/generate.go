package module

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cienporcien/everest-core/internal/cmdtypes"
	"github.com/cienporcien/everest-core/internal/cmdutil"
	"github.com/cienporcien/everest-core/internal/files"
	"github.com/cienporcien/everest-core/internal/output"
)

// NewCreateCmd creates the module create command.
func NewCreateCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var flags cmdutil.GenerateFlags

	c := &cobra.Command{
		Use:     "create <module>",
		Aliases: []string{"c"},
		Short:   "Create module sources from the manifest",
		Long: `Create the sources of a module from modules/<module>/manifest.yaml.

Existing files that would change are not overwritten unless --force is
given. Use --only to restrict the generated files; --only which lists them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runGenerate(c, cfg, &flags, args[0], files.ModeCreate)
		},
	}
	flags.AddTo(c, true)
	return c
}

// NewUpdateCmd creates the module update command.
func NewUpdateCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var flags cmdutil.GenerateFlags

	c := &cobra.Command{
		Use:     "update <module>",
		Aliases: []string{"u"},
		Short:   "Update module sources, keeping hand-written blocks",
		Long: `Regenerate the sources of a module. Code between ev@ block markers is
carried over from the existing files; implementation sources and docs are
left alone unless --force is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runGenerate(c, cfg, &flags, args[0], files.ModeUpdate)
		},
	}
	flags.AddTo(c, true)
	return c
}

func runGenerate(c *cobra.Command, cfg *cmdtypes.GlobalConfig, flags *cmdutil.GenerateFlags, name string, mode files.Mode) error {
	modLog := output.ModuleLogger(name)

	gen, err := cmdutil.NewGenerator(cfg)
	if err != nil {
		return cmdutil.Fail("initializing generator", err)
	}

	m, err := gen.Module(c.Context(), name, mode == files.ModeUpdate)
	if err != nil {
		return cmdutil.Fail(fmt.Sprintf("generating module %s", name), err)
	}

	report, err := cmdutil.Apply(c.OutOrStdout(), m, cmdutil.ApplyOptions{
		Flags:   flags,
		Mode:    mode,
		Root:    name,
		Verbose: cfg.Verbose,
	})
	if err != nil {
		return cmdutil.Fail(fmt.Sprintf("writing module %s", name), err)
	}

	if !flags.Diff && len(report.Results) > 0 {
		modLog.Debug("module generated",
			"created", report.Count(files.StatusCreated),
			"updated", report.Count(files.StatusUpdated),
		)
	}
	return nil
}
