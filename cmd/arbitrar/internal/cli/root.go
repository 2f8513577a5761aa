// Package cli wires the cobra command tree and viper configuration.
package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/purs3lab/arbitrar/internal/config"
)

var v = viper.New()

// Execute runs the root command.
func Execute() error {
	return rootCmd().Execute()
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "arbitrar",
		Short: "Slice, symbolically execute, and extract features from a call graph",
	}
	root.PersistentFlags().String("config", "", "config file path")
	root.PersistentFlags().String("traces-dir", "traces", "directory for persisted trace artifacts")
	root.PersistentFlags().String("features-dir", "features", "directory for persisted feature records")
	root.PersistentFlags().Bool("verbose", false, "print debug diagnostics (per-run trace classification counts)")
	_ = v.BindPFlags(root.PersistentFlags())

	config.BindEnv(v)

	root.AddCommand(sliceCmd())
	root.AddCommand(executeCmd())
	root.AddCommand(featuresCmd())
	root.AddCommand(runCmd())
	return root
}
