package symbolic

// MetaData tallies how every explored path in a slice was classified.
// Every Incr* method bumps its own counter and ExploredTraceCount, matching
// the original's incr_* methods exactly (each counter there double-counts
// into explored_trace_count).
type MetaData struct {
	ProperTraceCount          int
	PathUnsatTraceCount       int
	BranchExploredTraceCount  int
	DuplicateTraceCount       int
	NoTargetTraceCount        int
	ExceedingLengthTraceCount int
	UnreachableTraceCount     int
	ExploredTraceCount        int
}

func (m *MetaData) IncrProper() {
	m.ProperTraceCount++
	m.ExploredTraceCount++
}

func (m *MetaData) IncrPathUnsat() {
	m.PathUnsatTraceCount++
	m.ExploredTraceCount++
}

func (m *MetaData) IncrBranchExplored() {
	m.BranchExploredTraceCount++
	m.ExploredTraceCount++
}

func (m *MetaData) IncrDuplicate() {
	m.DuplicateTraceCount++
	m.ExploredTraceCount++
}

func (m *MetaData) IncrNoTarget() {
	m.NoTargetTraceCount++
	m.ExploredTraceCount++
}

func (m *MetaData) IncrExceedingLength() {
	m.ExceedingLengthTraceCount++
	m.ExploredTraceCount++
}

func (m *MetaData) IncrUnreachable() {
	m.UnreachableTraceCount++
	m.ExploredTraceCount++
}

// Combine field-wise sums two MetaData, matching the original's
// commutative/associative combine used by execute_slices' rayon reduce.
func (m MetaData) Combine(other MetaData) MetaData {
	return MetaData{
		ProperTraceCount:          m.ProperTraceCount + other.ProperTraceCount,
		PathUnsatTraceCount:       m.PathUnsatTraceCount + other.PathUnsatTraceCount,
		BranchExploredTraceCount:  m.BranchExploredTraceCount + other.BranchExploredTraceCount,
		DuplicateTraceCount:       m.DuplicateTraceCount + other.DuplicateTraceCount,
		NoTargetTraceCount:        m.NoTargetTraceCount + other.NoTargetTraceCount,
		ExceedingLengthTraceCount: m.ExceedingLengthTraceCount + other.ExceedingLengthTraceCount,
		UnreachableTraceCount:     m.UnreachableTraceCount + other.UnreachableTraceCount,
		ExploredTraceCount:        m.ExploredTraceCount + other.ExploredTraceCount,
	}
}

// ContinueExecution reports whether a slice should keep exploring more
// work, given opts' budgets. Matches continue_execution in the original.
func (m MetaData) ContinueExecution(opts Options) bool {
	return m.ExploredTraceCount < opts.MaxExploredTracePerSlice &&
		m.ProperTraceCount < opts.MaxTracePerSlice
}
