package symbolic

import (
	"fmt"

	"github.com/purs3lab/arbitrar/ir"
)

// Value is the symbolic execution engine's tagged-union value type. It is
// a closed set of variants, each an unexported marker method away from
// accidental external implementations — the same "small closed sum as
// concrete struct variants" idiom the teacher uses for its own small
// tagged kinds (pollution.Violation, traceResultKind in
// internal/ssa/tracer.go).
type Value interface {
	isValue()
	String() string
}

// IntValue is a concrete integer constant folded from the IR.
type IntValue struct{ N int64 }

func (IntValue) isValue()          {}
func (v IntValue) String() string  { return fmt.Sprintf("%d", v.N) }

// SymbolValue is a fresh symbolic value minted on a memory load miss
// (unevaluable operands yield UnknownValue instead). ID is unique within a
// State's lifetime.
type SymbolValue struct{ ID int }

func (SymbolValue) isValue()         {}
func (v SymbolValue) String() string { return fmt.Sprintf("sym%d", v.ID) }

// ArgumentValue represents one of the entry function's parameters, seeded
// into the slice's entry StackFrame; frames pushed for a call take the
// caller-evaluated argument values instead.
type ArgumentValue struct{ Index int }

func (ArgumentValue) isValue()         {}
func (v ArgumentValue) String() string { return fmt.Sprintf("arg%d", v.Index) }

// PointerValue is a value that denotes a Location (the result of Alloca or
// GetElementPtr, a global operand, or a null constant, which denotes
// UnknownLocation).
type PointerValue struct{ Loc Location }

func (PointerValue) isValue()         {}
func (v PointerValue) String() string { return "ptr(" + v.Loc.String() + ")" }

// CallValue summarizes the result of a call the engine chose not to
// descend into (no body, or not included in the slice's function set).
// CallID disambiguates repeated opaque calls to the same callee within one
// path, mirroring the original's fresh call_id per opaque call.
type CallValue struct {
	Callee string
	CallID int
}

func (CallValue) isValue()         {}
func (v CallValue) String() string { return fmt.Sprintf("%s()#%d", v.Callee, v.CallID) }

// UnknownValue is returned whenever an operand cannot be evaluated at all
// (e.g. a constant expression the IR provider doesn't model). Matches the
// original's eval_operand_value TODO fallback.
type UnknownValue struct{}

func (UnknownValue) isValue()       {}
func (UnknownValue) String() string { return "unknown" }

// BinaryOperationValue is the symbolic result of a binary instruction. The
// engine never folds constant arithmetic: it always wraps the operator and
// both already-resolved operands, matching the original's
// transfer_binary_instr, which unconditionally constructs
// Rc::new(Value::BinaryOperation{op, op0, op1}) regardless of whether op0
// and op1 happen to both be concrete.
type BinaryOperationValue struct {
	Op  ir.BinOp
	LHS Value
	RHS Value
}

func (BinaryOperationValue) isValue() {}
func (v BinaryOperationValue) String() string {
	return fmt.Sprintf("(%s %s %s)", v.LHS, v.Op, v.RHS)
}

// UnaryOperationValue is the symbolic result of a unary instruction, the
// unary counterpart of BinaryOperationValue.
type UnaryOperationValue struct {
	Op      ir.UnOp
	Operand Value
}

func (UnaryOperationValue) isValue() {}
func (v UnaryOperationValue) String() string {
	return fmt.Sprintf("(%s %s)", v.Op, v.Operand)
}
