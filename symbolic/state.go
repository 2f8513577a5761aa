package symbolic

import (
	"github.com/purs3lab/arbitrar/ir"
	"github.com/purs3lab/arbitrar/smt"
	"github.com/purs3lab/arbitrar/trace"
)

// FinishState classifies why a path stopped executing, matching
// FinishState in the original.
type FinishState int

const (
	// Running is the zero value: the path hasn't stopped yet.
	Running FinishState = iota
	ProperlyReturned
	BranchExplored
	ExceedingMaxTraceLength
	Unreachable
)

// branchEdge identifies one CFG edge for visited-branch memoization.
type branchEdge struct {
	from, to string
}

// State is one path's complete symbolic execution snapshot: cloned at
// every branch point so sibling paths never share mutable state. Mirrors
// State<'ctx> in the original, except that there is no pointer-value ID
// counter: GEP results are keyed by GetElementPtrLocation instead.
type State struct {
	Stack         *Stack
	Memory        *Memory
	VisitedBranch map[branchEdge]bool
	BlockTrace    []string
	Trace         []TraceNode
	TargetNode    *int
	PrevBlock     ir.Block
	FinishState   FinishState
	Constraints   []Constraint

	allocaID int
	symbolID int
}

// NewState builds the initial State for a fresh slice exploration: one
// entry StackFrame, empty memory, no history.
func NewState(entry *StackFrame) *State {
	return &State{
		Stack:         &Stack{frames: []*StackFrame{entry}},
		Memory:        NewMemory(),
		VisitedBranch: make(map[branchEdge]bool),
	}
}

// Clone produces an independent copy for branching, matching the
// original's approach of cloning the whole State at every fork point. The
// visited-branch map and constraint/trace slices are copied so each branch
// can diverge independently; BlockTrace similarly.
func (s *State) Clone() *State {
	vb := make(map[branchEdge]bool, len(s.VisitedBranch))
	for k, v := range s.VisitedBranch {
		vb[k] = v
	}
	clone := &State{
		Stack:         s.Stack.Clone(),
		Memory:        s.Memory.Clone(),
		VisitedBranch: vb,
		BlockTrace:    append([]string(nil), s.BlockTrace...),
		Trace:         append([]TraceNode(nil), s.Trace...),
		PrevBlock:     s.PrevBlock,
		FinishState:   s.FinishState,
		Constraints:   append([]Constraint(nil), s.Constraints...),
		allocaID:      s.allocaID,
		symbolID:      s.symbolID,
	}
	if s.TargetNode != nil {
		t := *s.TargetNode
		clone.TargetNode = &t
	}
	return clone
}

func (s *State) NewAllocaID() int {
	id := s.allocaID
	s.allocaID++
	return id
}

func (s *State) NewSymbolID() int {
	id := s.symbolID
	s.symbolID++
	return id
}

// AddConstraint records one path condition, matching State::add_constraint.
func (s *State) AddConstraint(c Constraint) {
	s.Constraints = append(s.Constraints, c)
}

// HasVisitedBranch reports whether the from->to edge has already been
// taken along this path.
func (s *State) HasVisitedBranch(from, to ir.Block) bool {
	return s.VisitedBranch[branchEdge{from.Name(), to.Name()}]
}

func (s *State) MarkVisitedBranch(from, to ir.Block) {
	s.VisitedBranch[branchEdge{from.Name(), to.Name()}] = true
}

// PathSatisfactory lowers every accumulated Constraint to an smt.Atom and
// asks solver to check the conjunction, matching
// State::path_satisfactory's fresh-solver-per-query discipline — the
// solver itself carries no state between calls.
func (s *State) PathSatisfactory(solver smt.Solver) bool {
	if len(s.Constraints) == 0 {
		return true
	}
	atoms := make([]smt.Atom, len(s.Constraints))
	for i, c := range s.Constraints {
		atoms[i] = smt.Atom{
			Pred:   c.Cond.Pred,
			LHS:    toExpr(c.Cond.LHS),
			RHS:    toExpr(c.Cond.RHS),
			Negate: !c.Branch,
		}
	}
	switch solver.Check(atoms) {
	case smt.Unsat:
		return false
	default: // Sat or Unknown: spec.md treats Unknown as Sat deliberately.
		return true
	}
}

func toExpr(v Value) smt.Expr {
	switch vv := v.(type) {
	case IntValue:
		return smt.IntConst{N: vv.N}
	case SymbolValue:
		return smt.Symbol{ID: vv.ID}
	default:
		return smt.Opaque{}
	}
}

// DumpTrace converts the recorded TraceNodes into the persisted trace.Trace
// JSON shape. Unlike the original (whose dump_json is a stub), this is a
// real conversion: spec.md §6 specifies the persisted schema explicitly.
func (s *State) DumpTrace() trace.Trace {
	target := 0
	if s.TargetNode != nil {
		target = *s.TargetNode
	}
	instrs := make([]trace.Instr, len(s.Trace))
	for i, node := range s.Trace {
		instrs[i] = trace.Instr{
			Loc: node.Semantics.Op.String(),
			Sem: toTraceSemantics(node.Semantics),
			Res: toTraceValuePtr(node.Result),
		}
	}
	return trace.Trace{Target: target, Instrs: instrs}
}

func toTraceSemantics(sem Semantics) trace.Semantics {
	ts := trace.Semantics{Op: sem.Op.String(), Callee: sem.Callee}
	for _, a := range sem.Args {
		ts.Args = append(ts.Args, toTraceValue(a))
	}
	if sem.LHS != nil {
		ts.LHS = toTraceValuePtr(sem.LHS)
	}
	if sem.RHS != nil {
		ts.RHS = toTraceValuePtr(sem.RHS)
	}
	ts.Pred = predicateName(sem.Pred)
	return ts
}

func toTraceValuePtr(v Value) *trace.Value {
	if v == nil {
		return nil
	}
	tv := toTraceValue(v)
	return &tv
}

func toTraceValue(v Value) trace.Value {
	switch vv := v.(type) {
	case IntValue:
		return trace.Value{Kind: "int", Int: vv.N}
	case SymbolValue:
		return trace.Value{Kind: "symbol", Symbol: vv.ID}
	case ArgumentValue:
		return trace.Value{Kind: "argument", Arg: vv.Index}
	case CallValue:
		return trace.Value{Kind: "call", Callee: vv.Callee}
	default:
		return trace.Value{Kind: "unknown"}
	}
}

func predicateName(p ir.Predicate) string {
	switch p {
	case ir.PredEQ:
		return "eq"
	case ir.PredNE:
		return "ne"
	case ir.PredSLT:
		return "slt"
	case ir.PredSLE:
		return "sle"
	case ir.PredSGT:
		return "sgt"
	case ir.PredSGE:
		return "sge"
	case ir.PredULT:
		return "ult"
	case ir.PredULE:
		return "ule"
	case ir.PredUGT:
		return "ugt"
	case ir.PredUGE:
		return "uge"
	default:
		return ""
	}
}
