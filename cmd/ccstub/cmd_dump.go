package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/ccstub/format"
	"github.com/dhamidi/ccstub/generate"
)

func newDumpCmd(flags *globalFlags) *cobra.Command {
	var (
		dumpFormat string
		all        bool
	)

	cmd := &cobra.Command{
		Use:   "dump <source-root>",
		Short: "Print the extracted peripheral classes instead of writing stubs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := format.NewEncoder(dumpFormat, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			cfg, err := flags.config()
			if err != nil {
				return err
			}

			ex, err := generate.Extract(generate.Options{Root: args[0], Config: cfg}, io.Discard)
			if err != nil {
				return err
			}

			classes := ex.Peripherals
			if all {
				classes = ex.Registry.Classes()
			}
			for _, c := range classes {
				if err := enc.Encode(c); err != nil {
					return fmt.Errorf("encode %s: %w", dumpFormat, err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dumpFormat, "format", "f", "yaml",
		"output format ("+strings.Join(format.Names, ", ")+")")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "include base classes and every parent reached")

	return cmd
}
