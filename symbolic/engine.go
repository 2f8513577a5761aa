package symbolic

import (
	"fmt"
	"strings"

	"github.com/purs3lab/arbitrar/ir"
)

// ComparisonValue is the result of an ICmp instruction: it behaves like
// any other opaque Value when stored or passed around, but retains the
// comparison that produced it so a later Br/Switch can turn it into a
// path Constraint. This is the one place this rework's Value set diverges
// structurally from the original's — Rust's Value::Bool(Comparison)
// variant translates directly into a Go struct variant.
type ComparisonValue struct{ Comparison Comparison }

func (ComparisonValue) isValue()         {}
func (v ComparisonValue) String() string { return "cmp" }

// Context holds the configuration an execution run needs but that isn't
// part of any one State: the budgets in Options. The SMT solver used to
// decide path feasibility is passed to ExecuteSlice separately. One Context
// is shared read-only across every path and every worker goroutine in a
// slice run.
type Context struct {
	Options Options
}

// NewContext builds a Context from opts.
func NewContext(opts Options) *Context { return &Context{Options: opts} }

// finishFn is invoked exactly once per path, when that path reaches a
// FinishState. The scheduler supplies the closure that classifies the
// finished state into a MetaData and persists proper traces.
type finishFn func(*State)

// ExecuteBlock begins (or resumes) executing w.Block under w.State,
// recording the block in the path's BlockTrace and dispatching to its
// first instruction. Matches execute_block / execute_function in the
// original.
func (c *Context) ExecuteBlock(env *Environment, mod ir.Module, w Work, finish finishFn) {
	w.State.BlockTrace = append(w.State.BlockTrace, w.Block.Name())
	c.executeInstrs(env, mod, w, w.Block.Instructions(), 0, finish)
}

func (c *Context) executeInstrs(env *Environment, mod ir.Module, w Work, instrs []ir.Instruction, idx int, finish finishFn) {
	if idx >= len(instrs) {
		// A block with no explicit terminator instruction modeled: treat as
		// a implicit return to keep the engine total over malformed input.
		w.State.FinishState = ProperlyReturned
		finish(w.State)
		return
	}
	if len(w.State.Trace) > c.Options.MaxNodePerTrace {
		w.State.FinishState = ExceedingMaxTraceLength
		finish(w.State)
		return
	}
	c.transfer(env, mod, w, instrs, idx, instrs[idx], finish)
}

func (c *Context) transfer(env *Environment, mod ir.Module, w Work, instrs []ir.Instruction, idx int, instr ir.Instruction, finish finishFn) {
	switch instr.Opcode() {
	case ir.OpAlloca:
		c.transferAlloca(env, mod, w, instrs, idx, instr, finish)
	case ir.OpStore:
		c.transferStore(env, mod, w, instrs, idx, instr, finish)
	case ir.OpLoad:
		c.transferLoad(env, mod, w, instrs, idx, instr, finish)
	case ir.OpGetElementPtr:
		c.transferGEP(env, mod, w, instrs, idx, instr, finish)
	case ir.OpICmp:
		c.transferICmp(env, mod, w, instrs, idx, instr, finish)
	case ir.OpBinary:
		c.transferBinary(env, mod, w, instrs, idx, instr, finish)
	case ir.OpUnary:
		c.transferUnary(env, mod, w, instrs, idx, instr, finish)
	case ir.OpPhi:
		c.transferPhi(env, mod, w, instrs, idx, instr, finish)
	case ir.OpCall:
		c.transferCall(env, mod, w, instrs, idx, instr, finish)
	case ir.OpRet:
		c.transferRet(env, mod, w, instr, finish)
	case ir.OpBr:
		c.transferBr(env, mod, w, instr, finish)
	case ir.OpSwitch:
		c.transferSwitch(env, mod, w, instr, finish)
	case ir.OpUnreachable:
		w.State.FinishState = Unreachable
		finish(w.State)
	default:
		// Unsupported opcode: silently skipped, matching spec.md §7.
		c.executeInstrs(env, mod, w, instrs, idx+1, finish)
	}
}

func (c *Context) transferAlloca(env *Environment, mod ir.Module, w Work, instrs []ir.Instruction, idx int, instr ir.Instruction, finish finishFn) {
	frame := w.State.Stack.Top()
	loc := AllocaLocation{ID: w.State.NewAllocaID()}
	result := PointerValue{Loc: loc}
	frame.Memory.Bind(instr, result)
	w.State.Trace = append(w.State.Trace, TraceNode{Semantics: Semantics{Op: ir.OpAlloca}, Result: result})
	c.executeInstrs(env, mod, w, instrs, idx+1, finish)
}

func (c *Context) transferStore(env *Environment, mod ir.Module, w Work, instrs []ir.Instruction, idx int, instr ir.Instruction, finish finishFn) {
	frame := w.State.Stack.Top()
	ops := instr.Operands()
	var value Value = UnknownValue{}
	var loc Location = UnknownLocation{}
	if len(ops) > 0 {
		value = c.evalOperandValue(ops[0], frame)
	}
	if len(ops) > 1 {
		loc = c.evalOperandLocation(ops[1], frame)
	}
	w.State.Memory.Store(loc, value)
	w.State.Trace = append(w.State.Trace, TraceNode{Semantics: Semantics{Op: ir.OpStore, LHS: value}})
	c.executeInstrs(env, mod, w, instrs, idx+1, finish)
}

func (c *Context) transferLoad(env *Environment, mod ir.Module, w Work, instrs []ir.Instruction, idx int, instr ir.Instruction, finish finishFn) {
	frame := w.State.Stack.Top()
	ops := instr.Operands()
	var loc Location = UnknownLocation{}
	if len(ops) > 0 {
		loc = c.evalOperandLocation(ops[0], frame)
	}
	result := w.State.Memory.Load(loc, func() Value { return SymbolValue{ID: w.State.NewSymbolID()} })
	frame.Memory.Bind(instr, result)
	w.State.Trace = append(w.State.Trace, TraceNode{Semantics: Semantics{Op: ir.OpLoad}, Result: result})
	c.executeInstrs(env, mod, w, instrs, idx+1, finish)
}

func (c *Context) transferGEP(env *Environment, mod ir.Module, w Work, instrs []ir.Instruction, idx int, instr ir.Instruction, finish finishFn) {
	frame := w.State.Stack.Top()
	ops := instr.Operands()
	var base Location = UnknownLocation{}
	if len(ops) > 0 {
		base = c.evalOperandLocation(ops[0], frame)
	}
	var indices []Value
	if len(ops) > 1 {
		indices = make([]Value, 0, len(ops)-1)
		for _, op := range ops[1:] {
			indices = append(indices, c.evalOperandValue(op, frame))
		}
	}
	loc := GetElementPtrLocation{Base: base, Indices: indicesKey(indices)}
	result := PointerValue{Loc: loc}
	frame.Memory.Bind(instr, result)
	w.State.Trace = append(w.State.Trace, TraceNode{Semantics: Semantics{Op: ir.OpGetElementPtr}, Result: result})
	c.executeInstrs(env, mod, w, instrs, idx+1, finish)
}

// indicesKey canonicalizes a GEP's resolved index values into the single
// comparable string GetElementPtrLocation keys on, so two GEPs off the same
// base with the same indices compare equal and alias in Memory.
func indicesKey(indices []Value) string {
	var b strings.Builder
	for i, v := range indices {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(v.String())
	}
	return b.String()
}

func (c *Context) transferICmp(env *Environment, mod ir.Module, w Work, instrs []ir.Instruction, idx int, instr ir.Instruction, finish finishFn) {
	frame := w.State.Stack.Top()
	ops := instr.Operands()
	lhs, rhs := evalPair(c, ops, frame)
	cmp := Comparison{Pred: instr.Predicate(), LHS: lhs, RHS: rhs}
	result := ComparisonValue{Comparison: cmp}
	frame.Memory.Bind(instr, result)
	w.State.Trace = append(w.State.Trace, TraceNode{
		Semantics: Semantics{Op: ir.OpICmp, Pred: cmp.Pred, LHS: lhs, RHS: rhs},
		Result:    result,
	})
	c.executeInstrs(env, mod, w, instrs, idx+1, finish)
}

func (c *Context) transferBinary(env *Environment, mod ir.Module, w Work, instrs []ir.Instruction, idx int, instr ir.Instruction, finish finishFn) {
	frame := w.State.Stack.Top()
	ops := instr.Operands()
	lhs, rhs := evalPair(c, ops, frame)
	result := BinaryOperationValue{Op: instr.BinOp(), LHS: lhs, RHS: rhs}
	frame.Memory.Bind(instr, result)
	w.State.Trace = append(w.State.Trace, TraceNode{
		Semantics: Semantics{Op: ir.OpBinary, LHS: lhs, RHS: rhs},
		Result:    result,
	})
	c.executeInstrs(env, mod, w, instrs, idx+1, finish)
}

func (c *Context) transferUnary(env *Environment, mod ir.Module, w Work, instrs []ir.Instruction, idx int, instr ir.Instruction, finish finishFn) {
	frame := w.State.Stack.Top()
	ops := instr.Operands()
	var operand Value = UnknownValue{}
	if len(ops) > 0 {
		operand = c.evalOperandValue(ops[0], frame)
	}
	result := UnaryOperationValue{Op: instr.UnOp(), Operand: operand}
	frame.Memory.Bind(instr, result)
	w.State.Trace = append(w.State.Trace, TraceNode{
		Semantics: Semantics{Op: ir.OpUnary, Operand: operand},
		Result:    result,
	})
	c.executeInstrs(env, mod, w, instrs, idx+1, finish)
}

func (c *Context) transferPhi(env *Environment, mod ir.Module, w Work, instrs []ir.Instruction, idx int, instr ir.Instruction, finish finishFn) {
	if w.State.PrevBlock == nil {
		panic("symbolic: phi executed with no previous block recorded (invariant violation)")
	}
	ops := instr.Operands()
	incoming := instr.IncomingBlocks()
	frame := w.State.Stack.Top()
	for i, blk := range incoming {
		if blk.Name() == w.State.PrevBlock.Name() {
			result := c.evalOperandValue(ops[i], frame)
			frame.Memory.Bind(instr, result)
			w.State.Trace = append(w.State.Trace, TraceNode{Semantics: Semantics{Op: ir.OpPhi}, Result: result})
			c.executeInstrs(env, mod, w, instrs, idx+1, finish)
			return
		}
	}
	panic(fmt.Sprintf("symbolic: phi has no incoming edge from block %q (invariant violation)", w.State.PrevBlock.Name()))
}

func (c *Context) transferCall(env *Environment, mod ir.Module, w Work, instrs []ir.Instruction, idx int, instr ir.Instruction, finish finishFn) {
	callee := instr.Callee()
	if callee == "" || strings.HasPrefix(callee, "llvm.") {
		c.executeInstrs(env, mod, w, instrs, idx+1, finish)
		return
	}

	frame := w.State.Stack.Top()
	args := make([]Value, 0, len(instr.Operands()))
	for _, op := range instr.Operands() {
		args = append(args, c.evalOperandValue(op, frame))
	}

	nodeID := len(w.State.Trace)
	w.State.Trace = append(w.State.Trace, TraceNode{Semantics: Semantics{Op: ir.OpCall, Callee: callee, Args: args}})

	if w.State.TargetNode == nil &&
		frame.Function.Name() == env.Slice.Caller &&
		callee == env.Slice.Callee &&
		idx == env.Slice.Instr {
		t := nodeID
		w.State.TargetNode = &t
	}

	calleeFn, hasFn := mod.Function(callee)
	descend := hasFn && calleeFn.HasBody() && contains(env.Slice.Functions, callee)
	if descend {
		cs := CallSite{NodeID: nodeID, Instr: instr, Block: w.Block}
		w.State.Stack.Push(NewCallFrame(calleeFn, cs, args))
		c.ExecuteBlock(env, mod, Work{Block: calleeFn.Entry(), State: w.State}, finish)
		return
	}

	result := CallValue{Callee: callee, CallID: env.NewCallID()}
	w.State.Trace[nodeID].Result = result
	frame.Memory.Bind(instr, result)
	c.executeInstrs(env, mod, w, instrs, idx+1, finish)
}

func (c *Context) transferRet(env *Environment, mod ir.Module, w Work, instr ir.Instruction, finish finishFn) {
	frame := w.State.Stack.Pop()
	var result Value = UnknownValue{}
	if ops := instr.Operands(); len(ops) > 0 {
		result = c.evalOperandValue(ops[0], frame)
	}
	if frame.Call == nil {
		w.State.FinishState = ProperlyReturned
		finish(w.State)
		return
	}
	cs := frame.Call
	w.State.Trace[cs.NodeID].Result = result
	caller := w.State.Stack.Top()
	caller.Memory.Bind(cs.Instr, result)

	callerInstrs := cs.Block.Instructions()
	resumeIdx := indexOfInstr(callerInstrs, cs.Instr) + 1
	c.executeInstrs(env, mod, Work{Block: cs.Block, State: w.State}, callerInstrs, resumeIdx, finish)
}

func (c *Context) transferBr(env *Environment, mod ir.Module, w Work, instr ir.Instruction, finish finishFn) {
	succs := instr.Successors()
	if len(succs) != 2 {
		// Unconditional branch: a single successor, never forks.
		if len(succs) == 1 {
			to := succs[0]
			if w.State.HasVisitedBranch(w.Block, to) {
				w.State.FinishState = BranchExplored
				finish(w.State)
				return
			}
			w.State.MarkVisitedBranch(w.Block, to)
			w.State.PrevBlock = w.Block
			c.ExecuteBlock(env, mod, Work{Block: to, State: w.State}, finish)
			return
		}
		w.State.FinishState = ProperlyReturned
		finish(w.State)
		return
	}

	frame := w.State.Stack.Top()
	var cmp *Comparison
	if ops := instr.Operands(); len(ops) > 0 {
		if cv, ok := c.evalOperandValue(ops[0], frame).(ComparisonValue); ok {
			cmp = &cv.Comparison
		}
	}

	thenBlock, elseBlock := succs[0], succs[1]
	fork := func(to ir.Block, branch bool) *State {
		if w.State.HasVisitedBranch(w.Block, to) {
			return nil
		}
		s := w.State.Clone()
		s.MarkVisitedBranch(w.Block, to)
		if cmp != nil {
			s.AddConstraint(Constraint{Cond: *cmp, Branch: branch})
		}
		s.PrevBlock = w.Block
		return s
	}

	thenState := fork(thenBlock, true)
	elseState := fork(elseBlock, false)

	switch {
	case thenState != nil && elseState != nil:
		env.AddWork(Work{Block: elseBlock, State: elseState})
		c.ExecuteBlock(env, mod, Work{Block: thenBlock, State: thenState}, finish)
	case thenState != nil:
		c.ExecuteBlock(env, mod, Work{Block: thenBlock, State: thenState}, finish)
	case elseState != nil:
		c.ExecuteBlock(env, mod, Work{Block: elseBlock, State: elseState}, finish)
	default:
		w.State.FinishState = BranchExplored
		finish(w.State)
	}
}

func (c *Context) transferSwitch(env *Environment, mod ir.Module, w Work, instr ir.Instruction, finish finishFn) {
	frame := w.State.Stack.Top()
	var cond Value = UnknownValue{}
	if ops := instr.Operands(); len(ops) > 0 {
		cond = c.evalOperandValue(ops[0], frame)
	}

	succs := instr.Successors()
	if len(succs) == 0 {
		w.State.FinishState = ProperlyReturned
		finish(w.State)
		return
	}
	defaultBlock := succs[0]
	cases := instr.SwitchCases()
	caseBlocks := succs[1:]

	for i, to := range caseBlocks {
		if w.State.HasVisitedBranch(w.Block, to) {
			continue
		}
		s := w.State.Clone()
		s.MarkVisitedBranch(w.Block, to)
		if i < len(cases) {
			s.AddConstraint(Constraint{
				Cond:   Comparison{Pred: ir.PredEQ, LHS: cond, RHS: IntValue{N: cases[i]}},
				Branch: true,
			})
		}
		s.PrevBlock = w.Block
		env.AddWork(Work{Block: to, State: s})
	}

	if w.State.HasVisitedBranch(w.Block, defaultBlock) {
		w.State.FinishState = BranchExplored
		finish(w.State)
		return
	}
	w.State.MarkVisitedBranch(w.Block, defaultBlock)
	w.State.PrevBlock = w.Block
	c.ExecuteBlock(env, mod, Work{Block: defaultBlock, State: w.State}, finish)
}

// evalOperandValue resolves an IR operand to a Value within frame: a
// constant folds directly, an argument reference reads frame.Arguments,
// an instruction reference reads frame's LocalMemory, and a global yields
// PointerValue{GlobalLocation{name}}. Anything else
// (e.g. an operand kind the IR provider doesn't model) yields
// UnknownValue{}, matching the original's eval_operand_value fallback.
func (c *Context) evalOperandValue(op ir.Operand, frame *StackFrame) Value {
	switch o := op.(type) {
	case *ir.Const:
		if o.IsNull {
			return PointerValue{Loc: UnknownLocation{}}
		}
		return IntValue{N: o.I64}
	case *ir.Arg:
		if o.Index < 0 || o.Index >= len(frame.Arguments) {
			return UnknownValue{}
		}
		return frame.Arguments[o.Index]
	case *ir.InstrRef:
		if v, ok := frame.Memory.Get(o.Target); ok {
			return v
		}
		return UnknownValue{}
	case *ir.Global:
		return PointerValue{Loc: GlobalLocation{Name: o.Name()}}
	default:
		return UnknownValue{}
	}
}

// evalOperandLocation resolves an operand to a Location. When the operand's
// Value is already a PointerValue (the result of Alloca, GetElementPtr, or a
// global, or a pointer actually passed into this frame by a caller) its
// Location is used directly. Otherwise, a pointer-typed argument used
// straight as an l-value — the entry frame's ArgumentValue placeholders
// never become PointerValue — resolves to Location::Argument(index).
// Anything else yields UnknownLocation{}.
func (c *Context) evalOperandLocation(op ir.Operand, frame *StackFrame) Location {
	if pv, ok := c.evalOperandValue(op, frame).(PointerValue); ok {
		return pv.Loc
	}
	if a, ok := op.(*ir.Arg); ok {
		return ArgumentLocation{Index: a.Index}
	}
	return UnknownLocation{}
}

func evalPair(c *Context, ops []ir.Operand, frame *StackFrame) (Value, Value) {
	var lhs, rhs Value = UnknownValue{}, UnknownValue{}
	if len(ops) > 0 {
		lhs = c.evalOperandValue(ops[0], frame)
	}
	if len(ops) > 1 {
		rhs = c.evalOperandValue(ops[1], frame)
	}
	return lhs, rhs
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func indexOfInstr(instrs []ir.Instruction, target ir.Instruction) int {
	for i, instr := range instrs {
		if instr == target {
			return i
		}
	}
	return -1
}
