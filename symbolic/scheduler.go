package symbolic

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/purs3lab/arbitrar/ir"
	"github.com/purs3lab/arbitrar/slicer"
	"github.com/purs3lab/arbitrar/smt"
	"github.com/purs3lab/arbitrar/trace"
	"golang.org/x/sync/errgroup"
)

// TraceSink receives every proper (satisfiable, non-duplicate, fully
// returned) trace produced while executing a slice, so the caller decides
// how and where to persist it — matching spec.md §6's "dump_json" step
// without hard-coding a directory layout into the engine itself.
type TraceSink func(sliceID int, traceID int, t trace.Trace) error

// ExecuteSlice runs the full work-list loop for one slice: pop work,
// execute it (which may itself push sibling work via branch/switch
// forking), classify every path that reaches a FinishState, and stop once
// either budget in c.Options is exhausted. Matches execute_slice in the
// original.
func (c *Context) ExecuteSlice(mod ir.Module, slice slicer.Slice, sliceID int, solver smt.Solver, sink TraceSink) (MetaData, error) {
	entryFn, ok := mod.Function(slice.Entry)
	if !ok {
		return MetaData{}, fmt.Errorf("symbolic: slice %d: entry function %q not found", sliceID, slice.Entry)
	}

	env := NewEnvironment(slice, entryFn)
	var meta MetaData
	var sinkErr error
	properCount := 0

	finish := func(s *State) {
		if sinkErr != nil {
			return
		}
		switch s.FinishState {
		case BranchExplored:
			meta.IncrBranchExplored()
		case ExceedingMaxTraceLength:
			meta.IncrExceedingLength()
		case Unreachable:
			meta.IncrUnreachable()
		case ProperlyReturned:
			if s.TargetNode == nil {
				meta.IncrNoTarget()
				return
			}
			if env.HasDuplicate(s.BlockTrace) {
				meta.IncrDuplicate()
				return
			}
			if !s.PathSatisfactory(solver) {
				meta.IncrPathUnsat()
				return
			}
			meta.IncrProper()
			if sink != nil {
				if err := sink(sliceID, properCount, s.DumpTrace()); err != nil {
					sinkErr = err
				}
			}
			properCount++
		}
	}

	for env.HasWork() && meta.ContinueExecution(c.Options) {
		w, ok := env.PopWork()
		if !ok {
			break
		}
		c.ExecuteBlock(env, mod, w, finish)
	}
	return meta, sinkErr
}

// SliceJob pairs a Slice with the module it should be executed against and
// the slice-local identifier used for trace file naming.
type SliceJob struct {
	Module ir.Module
	Slice  slicer.Slice
	ID     int
}

// ExecuteSlices runs every job, either serially (c.Options.UseSerial,
// matching the original's use_serial escape hatch for deterministic
// debugging) or concurrently via an errgroup worker pool — the Go
// replacement for the original's rayon into_par_iter().fold().reduce().
// Every worker gets its own Solver instance, matching spec.md §5's
// per-worker SMT solver model. Results combine via MetaData.Combine, which
// is commutative and associative regardless of completion order.
func ExecuteSlices(ctx context.Context, c *Context, jobs []SliceJob, newSolver func() smt.Solver, sink TraceSink) (MetaData, error) {
	if c.Options.UseSerial {
		var total MetaData
		solver := newSolver()
		for _, job := range jobs {
			m, err := c.ExecuteSlice(job.Module, job.Slice, job.ID, solver, sink)
			if err != nil {
				return total, err
			}
			total = total.Combine(m)
		}
		return total, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	results := make([]MetaData, len(jobs))
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			solver := newSolver()
			m, err := c.ExecuteSlice(job.Module, job.Slice, job.ID, solver, sink)
			if err != nil {
				return err
			}
			results[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return MetaData{}, err
	}
	var total MetaData
	for _, m := range results {
		total = total.Combine(m)
	}
	return total, nil
}

// TraceFilePath builds dir/slice-<sliceID>/<traceID>.json. Callers pass
// one target's trace directory as dir (tracesDir/<target>), the layout
// feature.Driver reads back.
func TraceFilePath(dir string, sliceID, traceID int) string {
	return filepath.Join(dir, fmt.Sprintf("slice-%d", sliceID), fmt.Sprintf("%d.json", traceID))
}
