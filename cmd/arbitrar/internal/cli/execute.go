package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/purs3lab/arbitrar/internal/config"
	"github.com/purs3lab/arbitrar/internal/progress"
	"github.com/purs3lab/arbitrar/ir"
	"github.com/purs3lab/arbitrar/slicer"
	"github.com/purs3lab/arbitrar/smt"
	"github.com/purs3lab/arbitrar/symbolic"
	"github.com/purs3lab/arbitrar/trace"
)

func executeCmd() *cobra.Command {
	var modulePath, slicesDir string
	cmd := &cobra.Command{
		Use:   "execute",
		Short: "Symbolically execute every slice in a directory against an IR module",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.New(v)
			if err != nil {
				return err
			}
			return runExecute(cfg.Symbolic, cfg.TracesDir, cfg.Verbose, modulePath, slicesDir)
		},
	}
	cmd.Flags().StringVar(&modulePath, "module", "", "path to a JSON-described IR module")
	cmd.Flags().StringVar(&slicesDir, "slices", "slices", "directory of slice JSON files")
	_ = cmd.MarkFlagRequired("module")
	return cmd
}

func runExecute(opts symbolic.Options, tracesDir string, verbose bool, modulePath, slicesDir string) error {
	mod, err := ir.LoadModuleJSON(modulePath)
	if err != nil {
		return err
	}
	slices, err := loadSlicesDir(slicesDir)
	if err != nil {
		return err
	}

	reporter := progress.NewReporter(os.Stderr, verbose)
	ctx := symbolic.NewContext(opts)
	jobs := make([]symbolic.SliceJob, len(slices))
	for i, s := range slices {
		jobs[i] = symbolic.SliceJob{Module: mod, Slice: s, ID: i}
	}

	sink := func(sliceID, traceID int, t trace.Trace) error {
		path := symbolic.TraceFilePath(filepath.Join(tracesDir, slices[sliceID].Callee), sliceID, traceID)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		return trace.Save(path, t)
	}

	for i := range jobs {
		reporter.Spin(i)
	}
	meta, err := symbolic.ExecuteSlices(context.Background(), ctx, jobs, func() smt.Solver { return smt.NewBoundedSolver() }, sink)
	reporter.Done(len(jobs))
	if err != nil {
		return err
	}
	reporter.Debugf("proper=%d unsat=%d branch_explored=%d duplicate=%d no_target=%d exceeding_length=%d unreachable=%d explored=%d",
		meta.ProperTraceCount, meta.PathUnsatTraceCount, meta.BranchExploredTraceCount,
		meta.DuplicateTraceCount, meta.NoTargetTraceCount, meta.ExceedingLengthTraceCount,
		meta.UnreachableTraceCount, meta.ExploredTraceCount)
	return nil
}

func loadSlicesDir(dir string) ([]slicer.Slice, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var slices []slicer.Slice
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		s, err := slicer.Load(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		slices = append(slices, s)
	}
	return slices, nil
}
