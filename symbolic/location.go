package symbolic

import "fmt"

// Location is the symbolic execution engine's tagged-union memory address
// type, mirroring Rc<Location> in the original.
type Location interface {
	isLocation() bool
	String() string
}

// AllocaLocation is the storage cell created by one Alloca instruction.
// ID is allocated from State.NewAllocaID and is unique within a State.
type AllocaLocation struct{ ID int }

func (AllocaLocation) isLocation() bool   { return true }
func (l AllocaLocation) String() string   { return fmt.Sprintf("alloca%d", l.ID) }

// UnknownLocation marks an address the engine could not resolve at all;
// loads from it always yield UnknownValue without touching memory.
type UnknownLocation struct{}

func (UnknownLocation) isLocation() bool { return true }
func (UnknownLocation) String() string   { return "unknown" }

// ArgumentLocation is the address denoted by a pointer-typed function
// parameter used directly as an l-value — a store/load whose address
// operand is the argument itself, not something Alloca'd or GEP'd from it.
type ArgumentLocation struct{ Index int }

func (ArgumentLocation) isLocation() bool { return true }
func (l ArgumentLocation) String() string { return fmt.Sprintf("arg%d", l.Index) }

// GlobalLocation is the address of a named global variable.
type GlobalLocation struct{ Name string }

func (GlobalLocation) isLocation() bool { return true }
func (l GlobalLocation) String() string { return "@" + l.Name }

// GetElementPtrLocation is the address computed by indexing Base with a
// sequence of indices. Two GEPs over the same base and indices must denote
// the same Location so they alias in Memory the way the original's
// structural Location equality requires; Indices is pre-joined into a
// single comparable string (rather than a []int64/[]Value) specifically so
// GetElementPtrLocation stays comparable and usable as a Memory map key.
type GetElementPtrLocation struct {
	Base    Location
	Indices string
}

func (GetElementPtrLocation) isLocation() bool { return true }
func (l GetElementPtrLocation) String() string {
	return fmt.Sprintf("gep(%s, [%s])", l.Base, l.Indices)
}
