package slicer

import "regexp"

// Options mirrors SlicerOptions from
// original_source/src/new_analyzer/src/slicer.rs, translated to Go's
// regexp package. The clap-derived defaults there (depth=1, batch_size=100)
// are preserved here as the zero-value-adjacent defaults returned by
// DefaultOptions.
type Options struct {
	// Depth bounds how many call hops a slice's function closure extends
	// from the target callsite.
	Depth int

	// TargetInclude, when non-nil, restricts target callees to names
	// matching this pattern.
	TargetInclude *regexp.Regexp
	// TargetExclude, when non-nil, drops target callees matching this
	// pattern even if TargetInclude also matches.
	TargetExclude *regexp.Regexp
	// EntryFilter, when non-nil, restricts candidate slice entry functions
	// to names matching this pattern.
	EntryFilter *regexp.Regexp

	// ReduceSlice is carried over from the original's options. Build does
	// not read it, and no slice reduction is performed.
	ReduceSlice bool

	// UseBatch and BatchSize chunk the edge list for incremental
	// processing instead of slicing the whole call graph in one pass.
	UseBatch bool
	BatchSize int
}

// DefaultOptions matches the original's clap defaults.
func DefaultOptions() Options {
	return Options{
		Depth:     1,
		BatchSize: 100,
	}
}

// includesCallee reports whether callee passes the include/exclude filters.
func (o Options) includesCallee(callee string) bool {
	if o.TargetExclude != nil && o.TargetExclude.MatchString(callee) {
		return false
	}
	if o.TargetInclude != nil && !o.TargetInclude.MatchString(callee) {
		return false
	}
	return true
}

func (o Options) includesEntry(entry string) bool {
	if o.EntryFilter != nil && !o.EntryFilter.MatchString(entry) {
		return false
	}
	return true
}
