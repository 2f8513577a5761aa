package symbolic

// Options mirrors SymbolicExecutionOptions from
// original_source/src/new_analyzer/src/symbolic_execution.rs. Field names
// follow Go convention but the defaults are the original's exactly.
type Options struct {
	// MaxTracePerSlice bounds how many *proper* (fully returned,
	// satisfiable, non-duplicate) traces a slice may contribute before
	// exploration stops early.
	MaxTracePerSlice int
	// MaxExploredTracePerSlice bounds total explored traces of any
	// classification before exploration stops early.
	MaxExploredTracePerSlice int
	// MaxNodePerTrace bounds how many trace nodes a single path may record
	// before it is classified ExceedingMaxTraceLength. Instructions that
	// record no node (skipped calls, Ret, Br, Switch, unsupported opcodes)
	// do not count.
	MaxNodePerTrace int
	// NoTraceReduction reserves the original's never-implemented trace
	// reduction pass (spec.md §9 open question 1). Carried, unused.
	NoTraceReduction bool
	// UseSerial forces execute_slices to process slices one at a time
	// instead of via the errgroup worker pool, matching the original's
	// use_serial flag (useful for deterministic debugging).
	UseSerial bool
}

// DefaultOptions matches the original's hard-coded defaults.
func DefaultOptions() Options {
	return Options{
		MaxTracePerSlice:         50,
		MaxExploredTracePerSlice: 1000,
		MaxNodePerTrace:          1000,
	}
}
