package symbolic

import (
	"github.com/purs3lab/arbitrar/ir"
	"github.com/purs3lab/arbitrar/slicer"
)

// Work is one unit of pending exploration: resume execution at Block with
// State, matching Work{block, state}.
type Work struct {
	Block ir.Block
	State *State
}

// Environment drives one slice's exploration: a LIFO work-list (DFS
// ordering, matching the original's push/pop Vec), the set of
// already-seen block traces for duplicate suppression, and the call_id
// allocator shared across every path in the slice.
type Environment struct {
	Slice     slicer.Slice
	workList  []Work
	blockTraces [][]string
	callID    int
}

// NewEnvironment seeds the work-list with one Work entry at the entry
// function's entry block, matching Work::entry(slice) / Environment setup
// in execute_function.
func NewEnvironment(slice slicer.Slice, entryFn ir.Function) *Environment {
	entry := NewEntryFrame(entryFn)
	state := NewState(entry)
	return &Environment{
		Slice: slice,
		workList: []Work{{
			Block: entryFn.Entry(),
			State: state,
		}},
	}
}

func (e *Environment) HasWork() bool { return len(e.workList) > 0 }

// PopWork removes and returns the most recently added Work (LIFO / DFS).
func (e *Environment) PopWork() (Work, bool) {
	if len(e.workList) == 0 {
		return Work{}, false
	}
	n := len(e.workList) - 1
	w := e.workList[n]
	e.workList = e.workList[:n]
	return w, true
}

func (e *Environment) AddWork(w Work) {
	e.workList = append(e.workList, w)
}

// NewCallID allocates a fresh call identifier, shared across every path
// explored within this slice — mirroring Environment::new_call_id.
func (e *Environment) NewCallID() int {
	id := e.callID
	e.callID++
	return id
}

// HasDuplicate reports whether blockTrace (the ordered sequence of block
// names visited by a just-finished path) matches one already recorded,
// ignoring accumulated constraints entirely — matching BlockTrace::equals
// and spec.md §9's explicit decision to dedup on block sequence alone.
// When false, blockTrace is recorded for future comparisons.
func (e *Environment) HasDuplicate(blockTrace []string) bool {
	for _, bt := range e.blockTraces {
		if equalStrings(bt, blockTrace) {
			return true
		}
	}
	e.blockTraces = append(e.blockTraces, append([]string(nil), blockTrace...))
	return false
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
