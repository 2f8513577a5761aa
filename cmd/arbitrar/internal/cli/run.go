package cli

import (
	"github.com/spf13/cobra"

	"github.com/purs3lab/arbitrar/internal/config"
)

// runCmd chains slice -> execute -> features in one invocation, the way a
// thin "do everything" subcommand sits alongside the original's separate
// analyzer/new_analyzer binaries.
func runCmd() *cobra.Command {
	var edgesPath, slicesDir, modulePath string
	var targetNames []string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run slice, execute, and features in sequence",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.New(v)
			if err != nil {
				return err
			}
			if err := runSlice(cfg.Slicer, edgesPath, slicesDir); err != nil {
				return err
			}
			if err := runExecute(cfg.Symbolic, cfg.TracesDir, cfg.Verbose, modulePath, slicesDir); err != nil {
				return err
			}
			return runFeatures(cfg.Feature, cfg.TracesDir, cfg.FeaturesDir, modulePath, targetNames)
		},
	}
	cmd.Flags().StringVar(&edgesPath, "edges", "", "path to a call-graph edge list JSON file")
	cmd.Flags().StringVar(&slicesDir, "slices", "slices", "directory for slice JSON files")
	cmd.Flags().StringVar(&modulePath, "module", "", "path to a JSON-described IR module")
	cmd.Flags().StringSliceVar(&targetNames, "target", nil, "target function name(s) to extract features for")
	_ = cmd.MarkFlagRequired("edges")
	_ = cmd.MarkFlagRequired("module")
	_ = cmd.MarkFlagRequired("target")
	return cmd
}
