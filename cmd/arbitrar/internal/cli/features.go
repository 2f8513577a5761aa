package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/purs3lab/arbitrar/feature"
	"github.com/purs3lab/arbitrar/internal/config"
	"github.com/purs3lab/arbitrar/ir"
)

func featuresCmd() *cobra.Command {
	var targetNames []string
	var modulePath string
	cmd := &cobra.Command{
		Use:   "features",
		Short: "Extract feature records from every persisted trace",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.New(v)
			if err != nil {
				return err
			}
			return runFeatures(cfg.Feature, cfg.TracesDir, cfg.FeaturesDir, modulePath, targetNames)
		},
	}
	cmd.Flags().StringSliceVar(&targetNames, "target", nil, "target function name(s) to extract features for")
	cmd.Flags().StringVar(&modulePath, "module", "", "path to a JSON-described IR module, used to resolve each target's arity")
	_ = cmd.MarkFlagRequired("target")
	_ = cmd.MarkFlagRequired("module")
	return cmd
}

func runFeatures(opts feature.Options, tracesDir, featuresDir, modulePath string, targetNames []string) error {
	mod, err := ir.LoadModuleJSON(modulePath)
	if err != nil {
		return err
	}
	targets := make([]feature.Target, len(targetNames))
	for i, name := range targetNames {
		fn, ok := mod.Function(name)
		if !ok {
			return fmt.Errorf("features: target %q not found in module %s", name, modulePath)
		}
		targets[i] = feature.Target{Name: name, NumArgs: fn.NumArgs()}
	}
	driver := &feature.Driver{
		TracesDir: tracesDir,
		OutDir:    featuresDir,
		Options:   opts,
	}
	if err := os.MkdirAll(featuresDir, 0o755); err != nil {
		return err
	}
	return driver.ExtractFeatures(context.Background(), targets)
}
