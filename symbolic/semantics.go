package symbolic

import "github.com/purs3lab/arbitrar/ir"

// Semantics captures what one executed instruction did, for recording into
// a TraceNode. It is the in-memory counterpart of the persisted
// trace.Semantics JSON shape (see trace/trace.go, and State.DumpTrace /
// toTraceSemantics in state.go).
type Semantics struct {
	Op       ir.Opcode
	Callee   string   // OpCall
	Args     []Value  // OpCall
	Pred     ir.Predicate
	LHS, RHS Value // OpICmp, OpBinary
	Operand  Value // OpUnary
}

// TraceNode is one entry in a State's recorded trace: the semantics of the
// instruction executed plus its result value, if any (calls and
// terminators often have none).
type TraceNode struct {
	Semantics Semantics
	Result    Value
}
