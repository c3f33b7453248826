package types

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cienporcien/everest-core/internal/cmdtypes"
	"github.com/cienporcien/everest-core/internal/cmdutil"
	"github.com/cienporcien/everest-core/internal/codegen"
	oerrors "github.com/cienporcien/everest-core/internal/errors"
	"github.com/cienporcien/everest-core/internal/output"
)

func newOrderCmd(cfg *cmdtypes.GlobalConfig) *cobra.Command {
	var format string

	c := &cobra.Command{
		Use:   "order <unit>",
		Short: "Print the declaration order of a type unit",
		Long: `Print the types of a unit in dependency order: every type comes after
the local types it references. Ties are broken by name.`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			outFormat, ok := output.ParseOutputFormat(format)
			if !ok {
				return cmdutil.Fail("invalid flag", oerrors.NewValidationError(
					fmt.Sprintf("unknown output format %q", format),
					"--format",
					"Valid formats: "+strings.Join(output.ValidFormats(), ", "),
				))
			}

			parser, err := cmdutil.NewParser(cfg)
			if err != nil {
				return cmdutil.Fail("initializing parser", err)
			}
			gen := codegen.New(parser, cfg.Settings.OutputDir, nil)
			order, err := gen.TypeOrder(args[0])
			if err != nil {
				return cmdutil.Fail(fmt.Sprintf("ordering type unit %s", args[0]), err)
			}
			if err := output.WriteList(c.OutOrStdout(), outFormat, "order", order); err != nil {
				return cmdutil.Fail("writing order", err)
			}
			return nil
		},
	}
	c.Flags().StringVar(&format, "format", "text", "Output format: "+strings.Join(output.ValidFormats(), ", "))
	return c
}
