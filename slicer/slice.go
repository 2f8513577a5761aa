// Package slicer builds Slice records: a bounded neighborhood of the call
// graph around one interesting callsite, handed to the symbolic execution
// engine as its unit of work. Slice construction itself is out of scope
// per SPEC_FULL.md §1 (the original's own slices_of_call_edge is a stub
// too — see DESIGN.md); this package gives the CLI and engine a real,
// small, well-defined contract to build against.
package slicer

import (
	"encoding/json"
	"os"

	"github.com/purs3lab/arbitrar/callgraph"
)

// Slice identifies one callsite to symbolically execute around, plus the
// set of functions the engine is allowed to descend into while exploring
// it. Field names and JSON tags match spec.md §6's persisted slice schema.
type Slice struct {
	Entry     string   `json:"entry"`
	Caller    string   `json:"caller"`
	Callee    string   `json:"callee"`
	Instr     int      `json:"instr"`
	Functions []string `json:"functions"`
}

// Build expands every call-graph edge whose callee passes opts' filters
// into one Slice per edge, with Functions set to the depth-bounded
// reachable closure from the caller. Grounded on
// SlicerContext::relavant_edges (original_source/.../slicer.rs): filter
// edges by callee name, then collect the caller-side closure.
func Build(g *callgraph.Graph, edges []callgraph.Edge, opts Options) []Slice {
	var slices []Slice
	for _, e := range edges {
		if !opts.includesCallee(e.Callee) {
			continue
		}
		if !opts.includesEntry(e.Caller) {
			continue
		}
		closure := g.Reachable(e.Caller, opts.Depth)
		fns := make([]string, 0, len(closure))
		for fn := range closure {
			fns = append(fns, fn)
		}
		slices = append(slices, Slice{
			Entry:     e.Caller,
			Caller:    e.Caller,
			Callee:    e.Callee,
			Instr:     0,
			Functions: fns,
		})
	}
	return slices
}

// Batches splits slices into chunks of opts.BatchSize when opts.UseBatch is
// set, or returns a single batch otherwise.
func Batches(slices []Slice, opts Options) [][]Slice {
	if !opts.UseBatch || opts.BatchSize <= 0 {
		return [][]Slice{slices}
	}
	var batches [][]Slice
	for start := 0; start < len(slices); start += opts.BatchSize {
		end := min(start+opts.BatchSize, len(slices))
		batches = append(batches, slices[start:end])
	}
	return batches
}

// Load reads a single Slice from a JSON file at path, matching the
// persisted artifact layout of spec.md §6.
func Load(path string) (Slice, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Slice{}, err
	}
	var s Slice
	if err := json.Unmarshal(data, &s); err != nil {
		return Slice{}, err
	}
	return s, nil
}

// Save writes s as JSON to path.
func Save(path string, s Slice) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
