package feature

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/purs3lab/arbitrar/trace"
)

// Target identifies one function whose call traces should be turned into
// feature records, matching the original's per-target loop in
// FeatureExtractionContext::extract_features. NumArgs is the target's real
// arity, resolved by the caller from the IR module, and is what
// Extractor.Filter uses to disable argument-position extractors for short
// signatures.
type Target struct {
	Name    string
	NumArgs int
}

// Driver runs the two-pass (init -> finalize -> extract) pipeline over
// every trace of every target, reading from tracesDir/<target>/slice-*/*.json
// and writing to outDir/<target>/slice-*/*.json. Grounded on
// FeatureExtractionContext in both original_source/.../feature_extraction.rs
// files.
type Driver struct {
	TracesDir string
	OutDir    string
	Options   Options
}

// tracedFile is one discovered trace artifact.
type tracedFile struct {
	sliceID int
	traceID int
	path    string
}

// ExtractFeatures runs the pipeline for every target concurrently via an
// errgroup worker pool — this rework's replacement for the original's
// rayon into_par_iter() over targets.
func (d *Driver) ExtractFeatures(ctx context.Context, targets []Target) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, target := range targets {
		target := target
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			return d.extractForTarget(target)
		})
	}
	return g.Wait()
}

func (d *Driver) extractForTarget(target Target) error {
	sig := Signature{Name: target.Name, NumArgs: target.NumArgs}
	extractors := filterExtractors(All(d.Options), sig)
	files, err := d.discoverTraces(target.Name)
	if err != nil {
		return fmt.Errorf("feature: discover traces for %q: %w", target.Name, err)
	}

	// Pass 1: init every extractor over every trace. Extractors guard
	// their own internal state (CausalityExtractor.mu); stateless
	// extractors tolerate concurrent Init trivially.
	var initGroup errgroup.Group
	var mu sync.Mutex
	for _, f := range files {
		f := f
		initGroup.Go(func() error {
			t, err := trace.Load(f.path)
			if err != nil {
				return fmt.Errorf("feature: load trace %s: %w", f.path, err)
			}
			mu.Lock()
			for _, ext := range extractors {
				ext.Init(len(files), t)
			}
			mu.Unlock()
			return nil
		})
	}
	if err := initGroup.Wait(); err != nil {
		return err
	}

	for _, ext := range extractors {
		ext.Finalize()
	}

	// Pass 2: extract and dump one feature record per trace.
	var extractGroup errgroup.Group
	for _, f := range files {
		f := f
		extractGroup.Go(func() error {
			t, err := trace.Load(f.path)
			if err != nil {
				return fmt.Errorf("feature: load trace %s: %w", f.path, err)
			}
			record := make(map[string]any, len(extractors))
			for _, ext := range extractors {
				val, err := ext.Extract(t)
				if err != nil {
					return fmt.Errorf("feature: extractor %s on %s: %w", ext.Name(), f.path, err)
				}
				record[ext.Name()] = val
			}
			return d.dump(target.Name, f.sliceID, f.traceID, record)
		})
	}
	return extractGroup.Wait()
}

func filterExtractors(all []Extractor, sig Signature) []Extractor {
	var out []Extractor
	for _, e := range all {
		if e.Filter(sig) {
			out = append(out, e)
		}
	}
	return out
}

// discoverTraces walks TracesDir/<target>/slice-*/<id>.json, deriving
// sliceID and traceID from the path the way the original's
// load_trace_file_paths parses trace_id from the filename stem.
func (d *Driver) discoverTraces(target string) ([]tracedFile, error) {
	root := filepath.Join(d.TracesDir, target)
	sliceDirs, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var files []tracedFile
	for _, sd := range sliceDirs {
		if !sd.IsDir() {
			continue
		}
		sliceID, ok := parseSliceID(sd.Name())
		if !ok {
			continue
		}
		entries, err := os.ReadDir(filepath.Join(root, sd.Name()))
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			stem := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
			traceID, err := strconv.Atoi(stem)
			if err != nil {
				continue
			}
			files = append(files, tracedFile{
				sliceID: sliceID,
				traceID: traceID,
				path:    filepath.Join(root, sd.Name(), e.Name()),
			})
		}
	}
	sort.Slice(files, func(i, j int) bool {
		if files[i].sliceID != files[j].sliceID {
			return files[i].sliceID < files[j].sliceID
		}
		return files[i].traceID < files[j].traceID
	})
	return files, nil
}

func parseSliceID(name string) (int, bool) {
	const prefix = "slice-"
	if !strings.HasPrefix(name, prefix) {
		return 0, false
	}
	id, err := strconv.Atoi(strings.TrimPrefix(name, prefix))
	if err != nil {
		return 0, false
	}
	return id, true
}

func (d *Driver) dump(target string, sliceID, traceID int, record map[string]any) error {
	dir := filepath.Join(d.OutDir, target, fmt.Sprintf("slice-%d", sliceID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, fmt.Sprintf("%d.json", traceID)), data, 0o644)
}
