// Package feature implements the two-pass feature extraction pipeline:
// for every target function, scan all of its traces once to build any
// corpus-wide statistics (init), finalize them, then scan again to emit
// one feature record per trace (extract). Grounded on both Rust
// feature_extraction.rs files under original_source/.
package feature

import "github.com/purs3lab/arbitrar/trace"

// Signature describes the target function an extractor set is being
// instantiated for, matching the original's per-slice "resolve the function
// type" step before extractor instantiation.
type Signature struct {
	Name    string
	NumArgs int
}

// Extractor is one named feature computation, matching the FeatureExtractor
// trait in the original.
type Extractor interface {
	// Name identifies this extractor in the emitted feature record's keys.
	Name() string
	// Filter reports whether this extractor applies at the given target
	// function's Signature. Most extractors apply unconditionally;
	// ArgumentPrecondition/Postcondition(i) disable themselves when the
	// target's real arity is too short to have an argument i.
	Filter(sig Signature) bool
	// Init is called once per trace during pass 1, before Finalize.
	// Extractors that need corpus-wide statistics (Causality's vocabulary)
	// accumulate them here; stateless extractors no-op.
	Init(numTraces int, t trace.Trace)
	// Finalize runs once after every trace has been seen via Init, and
	// before any Extract call.
	Finalize()
	// Extract computes this extractor's feature value for one trace.
	Extract(t trace.Trace) (any, error)
}

// Options configures the extractor set, matching FeatureExtractorOptions
// in the original.
type Options struct {
	CausalityDictionarySize int
	NumArguments            int // ArgumentPrecondition/Postcondition(0..NumArguments)
}

// DefaultOptions mirrors the original's defaults.
func DefaultOptions() Options {
	return Options{CausalityDictionarySize: 32, NumArguments: 4}
}
