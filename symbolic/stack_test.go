package symbolic

import (
	"testing"

	"github.com/purs3lab/arbitrar/ir"
)

func TestNewEntryFrameSeedsArgumentPlaceholders(t *testing.T) {
	fn := &ir.Fn{NameStr: "f", Args: 2}
	frame := NewEntryFrame(fn)
	if len(frame.Arguments) != 2 {
		t.Fatalf("Arguments = %v, want length 2", frame.Arguments)
	}
	for i, a := range frame.Arguments {
		av, ok := a.(ArgumentValue)
		if !ok || av.Index != i {
			t.Errorf("Arguments[%d] = %v, want ArgumentValue{Index: %d}", i, a, i)
		}
	}
	if frame.Call != nil {
		t.Error("entry frame should have a nil CallSite")
	}
}

func TestNewCallFramePadsMissingArguments(t *testing.T) {
	callee := &ir.Fn{NameStr: "g", Args: 3}
	cs := CallSite{NodeID: 0}
	frame := NewCallFrame(callee, cs, []Value{IntValue{N: 1}})
	if len(frame.Arguments) != 3 {
		t.Fatalf("Arguments = %v, want length 3", frame.Arguments)
	}
	if iv, ok := frame.Arguments[0].(IntValue); !ok || iv.N != 1 {
		t.Errorf("Arguments[0] = %v, want IntValue{1}", frame.Arguments[0])
	}
	if _, ok := frame.Arguments[1].(UnknownValue); !ok {
		t.Errorf("Arguments[1] = %v, want UnknownValue (unsupplied)", frame.Arguments[1])
	}
	if frame.Call == nil {
		t.Fatal("call frame should retain its CallSite")
	}
}

func TestStackPushPopTopLIFO(t *testing.T) {
	s := NewStack()
	if s.Top() != nil {
		t.Fatal("Top() on empty stack should be nil")
	}
	f1 := &StackFrame{Function: &ir.Fn{NameStr: "a"}}
	f2 := &StackFrame{Function: &ir.Fn{NameStr: "b"}}
	s.Push(f1)
	s.Push(f2)
	if s.Top() != f2 {
		t.Error("Top() should return the most recently pushed frame")
	}
	if popped := s.Pop(); popped != f2 {
		t.Error("Pop() should return the most recently pushed frame")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1 after one pop", s.Len())
	}
	if s.Top() != f1 {
		t.Error("Top() should now return f1")
	}
}

func TestStackCloneIsIndependent(t *testing.T) {
	s := NewStack()
	entry := NewEntryFrame(&ir.Fn{NameStr: "f", Args: 1})
	s.Push(entry)

	clone := s.Clone()
	instr := &ir.Instr{NameStr: "x"}
	clone.Top().Memory.Bind(instr, IntValue{N: 9})

	if _, ok := s.Top().Memory.Get(instr); ok {
		t.Error("binding in the clone's memory should not be visible from the original stack")
	}
}
