package slicer

import (
	"path/filepath"
	"regexp"
	"testing"

	"github.com/purs3lab/arbitrar/callgraph"
)

func buildTestGraph() (*callgraph.Graph, []callgraph.Edge) {
	edges := []callgraph.Edge{
		{Caller: "main", Callee: "malloc"},
		{Caller: "main", Callee: "helper"},
		{Caller: "helper", Callee: "free"},
	}
	return callgraph.New(edges), edges
}

func TestBuildFiltersByCallee(t *testing.T) {
	g, edges := buildTestGraph()
	opts := DefaultOptions()
	opts.TargetInclude = regexp.MustCompile(`^malloc$`)

	slices := Build(g, edges, opts)
	if len(slices) != 1 {
		t.Fatalf("Build() returned %d slices, want 1", len(slices))
	}
	if slices[0].Callee != "malloc" || slices[0].Caller != "main" {
		t.Errorf("slice = %+v, want Caller=main Callee=malloc", slices[0])
	}
}

func TestBuildExcludesCallee(t *testing.T) {
	g, edges := buildTestGraph()
	opts := DefaultOptions()
	opts.TargetExclude = regexp.MustCompile(`^malloc$`)

	slices := Build(g, edges, opts)
	for _, s := range slices {
		if s.Callee == "malloc" {
			t.Errorf("excluded callee malloc present in %+v", s)
		}
	}
	if len(slices) != 2 {
		t.Fatalf("Build() returned %d slices, want 2", len(slices))
	}
}

func TestBuildEntryFilter(t *testing.T) {
	g, edges := buildTestGraph()
	opts := DefaultOptions()
	opts.EntryFilter = regexp.MustCompile(`^helper$`)

	slices := Build(g, edges, opts)
	if len(slices) != 1 || slices[0].Caller != "helper" {
		t.Fatalf("Build() = %+v, want one slice with Caller=helper", slices)
	}
}

func TestBatches(t *testing.T) {
	slices := []Slice{{Entry: "a"}, {Entry: "b"}, {Entry: "c"}}
	opts := Options{UseBatch: true, BatchSize: 2}

	batches := Batches(slices, opts)
	if len(batches) != 2 {
		t.Fatalf("Batches() returned %d batches, want 2", len(batches))
	}
	if len(batches[0]) != 2 || len(batches[1]) != 1 {
		t.Errorf("batch sizes = %d/%d, want 2/1", len(batches[0]), len(batches[1]))
	}
}

func TestBatchesDisabled(t *testing.T) {
	slices := []Slice{{Entry: "a"}, {Entry: "b"}}
	batches := Batches(slices, Options{})
	if len(batches) != 1 || len(batches[0]) != 2 {
		t.Fatalf("Batches() with UseBatch=false = %v, want one batch of 2", batches)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "0.json")
	want := Slice{Entry: "main", Caller: "main", Callee: "malloc", Instr: 3, Functions: []string{"main", "helper"}}

	if err := Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Entry != want.Entry || got.Callee != want.Callee || got.Instr != want.Instr || len(got.Functions) != len(want.Functions) {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}
