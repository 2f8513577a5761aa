package cli

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/purs3lab/arbitrar/callgraph"
	"github.com/purs3lab/arbitrar/internal/config"
	"github.com/purs3lab/arbitrar/slicer"
)

func sliceCmd() *cobra.Command {
	var edgesPath, outPath string
	cmd := &cobra.Command{
		Use:   "slice",
		Short: "Build slices from a call-graph edge list",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.New(v)
			if err != nil {
				return err
			}
			return runSlice(cfg.Slicer, edgesPath, outPath)
		},
	}
	cmd.Flags().StringVar(&edgesPath, "edges", "", "path to a call-graph edge list JSON file")
	cmd.Flags().StringVar(&outPath, "out", "slices", "output directory for slice JSON files")
	_ = cmd.MarkFlagRequired("edges")
	return cmd
}

func runSlice(opts slicer.Options, edgesPath, outPath string) error {
	edges, err := callgraph.LoadEdgesJSON(edgesPath)
	if err != nil {
		return err
	}
	g := callgraph.New(edges)
	slices := slicer.Build(g, edges, opts)
	if err := os.MkdirAll(outPath, 0o755); err != nil {
		return err
	}
	for i, s := range slices {
		if err := slicer.Save(filepath.Join(outPath, strconv.Itoa(i)+".json"), s); err != nil {
			return err
		}
	}
	return nil
}
