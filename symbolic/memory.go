package symbolic

import "github.com/purs3lab/arbitrar/ir"

// Memory maps Locations to Values: the engine's heap/stack model. A miss on
// Load mints a fresh symbol and stores it back, matching
// State::load_from_memory in the original — the same location always
// yields the same symbolic value for the rest of the path.
type Memory struct {
	cells map[Location]Value
}

// NewMemory returns an empty Memory.
func NewMemory() *Memory {
	return &Memory{cells: make(map[Location]Value)}
}

// Clone returns a deep-enough copy for State cloning at a branch: each path
// must be free to mutate its own memory without affecting siblings.
func (m *Memory) Clone() *Memory {
	cells := make(map[Location]Value, len(m.cells))
	for k, v := range m.cells {
		cells[k] = v
	}
	return &Memory{cells: cells}
}

// Store writes val at loc. A store to UnknownLocation is a no-op: there is
// nothing to track.
func (m *Memory) Store(loc Location, val Value) {
	if _, ok := loc.(UnknownLocation); ok {
		return
	}
	m.cells[loc] = val
}

// Load reads the value at loc, minting one via mint on first access.
// Loading from UnknownLocation always returns UnknownValue{} without
// touching the map, matching the original's special-cased branch.
func (m *Memory) Load(loc Location, mint func() Value) Value {
	if _, ok := loc.(UnknownLocation); ok {
		return UnknownValue{}
	}
	if v, ok := m.cells[loc]; ok {
		return v
	}
	v := mint()
	m.cells[loc] = v
	return v
}

// LocalMemory is a StackFrame's instruction-result cache: every
// instruction with a result is bound into it exactly once, keyed by
// instruction identity (pointer equality on the concrete ir.Instruction
// implementation), mirroring LocalMemory<'ctx> = HashMap<Instruction<'ctx>, Rc<Value>>.
type LocalMemory struct {
	cells map[ir.Instruction]Value
}

// NewLocalMemory returns an empty LocalMemory.
func NewLocalMemory() *LocalMemory {
	return &LocalMemory{cells: make(map[ir.Instruction]Value)}
}

func (m *LocalMemory) Clone() *LocalMemory {
	cells := make(map[ir.Instruction]Value, len(m.cells))
	for k, v := range m.cells {
		cells[k] = v
	}
	return &LocalMemory{cells: cells}
}

// Bind records instr's result value. Binding the same instruction twice is
// a caller bug (every instruction is bound exactly once along a path); the
// last write wins rather than panicking, since IR providers may re-execute
// defensively.
func (m *LocalMemory) Bind(instr ir.Instruction, val Value) {
	m.cells[instr] = val
}

// Get returns instr's previously bound result, if any.
func (m *LocalMemory) Get(instr ir.Instruction) (Value, bool) {
	v, ok := m.cells[instr]
	return v, ok
}
