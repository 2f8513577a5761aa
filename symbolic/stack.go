package symbolic

import "github.com/purs3lab/arbitrar/ir"

// CallSite identifies the call instruction a StackFrame was pushed for,
// its block and its Call trace node, so transferRet can find its way back to the caller's
// LocalMemory and continue execution just past the call. A nil CallSite
// means this is the slice's entry frame: returning from it finishes the
// path.
type CallSite struct {
	NodeID int           // index into State.Trace of the Call TraceNode to back-patch
	Instr  ir.Instruction // the call instruction itself
	Block  ir.Block       // block the call instruction lives in, to resume after it
}

// StackFrame is one activation record: the function being executed, the
// call that pushed it (if any), its local memory, and its bound argument
// values. Mirrors StackFrame<'ctx> in the original.
type StackFrame struct {
	Function  ir.Function
	Call      *CallSite
	Memory    *LocalMemory
	Arguments []Value
}

// NewEntryFrame builds the slice's entry StackFrame: no call site, and
// arguments seeded as fresh ArgumentValue placeholders, matching
// StackFrame::entry.
func NewEntryFrame(fn ir.Function) *StackFrame {
	args := make([]Value, fn.NumArgs())
	for i := range args {
		args[i] = ArgumentValue{Index: i}
	}
	return &StackFrame{
		Function:  fn,
		Memory:    NewLocalMemory(),
		Arguments: args,
	}
}

// NewCallFrame builds a StackFrame for descending into callee at instr,
// binding its arguments from the caller-evaluated argValues.
func NewCallFrame(callee ir.Function, call CallSite, argValues []Value) *StackFrame {
	args := make([]Value, callee.NumArgs())
	for i := range args {
		if i < len(argValues) {
			args[i] = argValues[i]
		} else {
			args[i] = UnknownValue{}
		}
	}
	return &StackFrame{
		Function:  callee,
		Call:      &call,
		Memory:    NewLocalMemory(),
		Arguments: args,
	}
}

func (f *StackFrame) Clone() *StackFrame {
	clone := &StackFrame{
		Function:  f.Function,
		Memory:    f.Memory.Clone(),
		Arguments: append([]Value(nil), f.Arguments...),
	}
	if f.Call != nil {
		c := *f.Call
		clone.Call = &c
	}
	return clone
}

// Stack is a LIFO of StackFrames, mirroring Stack = Vec<StackFrame>.
type Stack struct {
	frames []*StackFrame
}

func NewStack() *Stack { return &Stack{} }

func (s *Stack) Push(f *StackFrame) { s.frames = append(s.frames, f) }

// Pop removes and returns the top frame, or nil if the stack is empty.
func (s *Stack) Pop() *StackFrame {
	if len(s.frames) == 0 {
		return nil
	}
	top := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	return top
}

// Top returns the current (innermost) frame, or nil if empty.
func (s *Stack) Top() *StackFrame {
	if len(s.frames) == 0 {
		return nil
	}
	return s.frames[len(s.frames)-1]
}

func (s *Stack) Len() int { return len(s.frames) }

func (s *Stack) Clone() *Stack {
	clone := &Stack{frames: make([]*StackFrame, len(s.frames))}
	for i, f := range s.frames {
		clone.frames[i] = f.Clone()
	}
	return clone
}
