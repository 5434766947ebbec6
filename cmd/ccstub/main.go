package main

import (
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"github.com/tliron/kutil/util"

	"github.com/dhamidi/ccstub/config"
	"github.com/dhamidi/ccstub/generate"
)

type globalFlags struct {
	configPath string
	verbose    int
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		util.Exit(1)
	}
	util.Exit(0)
}

func newRootCmd() *cobra.Command {
	var flags globalFlags

	rootCmd := &cobra.Command{
		Use:   "ccstub <source-root> <output-dir>",
		Short: "Generate Lua language server stubs for CC: Tweaked peripherals",
		Args:  cobra.MinimumNArgs(2),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			commonlog.Configure(flags.verbose, nil)
		},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.config()
			if err != nil {
				return err
			}
			_, err = generate.Run(generate.Options{
				Root:   args[0],
				OutDir: args[1],
				Config: cfg,
			}, cmd.OutOrStdout())
			return err
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "TOML file overriding the default layout")
	rootCmd.PersistentFlags().CountVarP(&flags.verbose, "verbose", "v", "log more (repeat for debug output)")

	rootCmd.AddCommand(newDumpCmd(&flags))

	return rootCmd
}

func (f *globalFlags) config() (*config.Config, error) {
	if f.configPath == "" {
		cfg := config.Default()
		return cfg, cfg.Validate()
	}
	return config.Load(f.configPath)
}
