package main

import (
	"github.com/spf13/cobra"

	"github.com/vango-dev/hyper/pkg/exprfile"
)

func convertCmd() *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "convert <in> [out]",
		Short: "Convert an expression file between formats",
		Long: `Convert an expression file between JSON, YAML and MessagePack.

Formats follow the file extensions. Without an output file the
expression is written to stdout in the --to format.

Examples:
  hyper convert page.json page.yaml
  hyper convert page.msgpack --to=json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			expr, err := exprfile.Load(args[0])
			if err != nil {
				return err
			}

			if len(args) == 2 {
				if err := exprfile.Save(args[1], expr); err != nil {
					return err
				}
				success(cmd.ErrOrStderr(), "Wrote %s", args[1])
				return nil
			}

			format, err := exprfile.ParseFormat(to)
			if err != nil {
				return err
			}
			return exprfile.Encode(cmd.OutOrStdout(), expr, format)
		},
	}

	cmd.Flags().StringVar(&to, "to", "json", "Output format for stdout: json, yaml or msgpack")

	return cmd
}
