package symbolic

import (
	"testing"

	"github.com/purs3lab/arbitrar/ir"
	"github.com/purs3lab/arbitrar/smt"
)

func newTestState() *State {
	entry := NewEntryFrame(&ir.Fn{NameStr: "f", Args: 0})
	return NewState(entry)
}

func TestStateCloneDoesNotShareVisitedBranches(t *testing.T) {
	s := newTestState()
	from := &ir.Blk{NameStr: "a"}
	to := &ir.Blk{NameStr: "b"}
	s.MarkVisitedBranch(from, to)

	clone := s.Clone()
	other := &ir.Blk{NameStr: "c"}
	clone.MarkVisitedBranch(from, other)

	if s.HasVisitedBranch(from, other) {
		t.Error("marking a branch on the clone should not affect the original state")
	}
	if !clone.HasVisitedBranch(from, to) {
		t.Error("clone should retain branches visited before cloning")
	}
}

func TestStateCloneCopiesIDCounters(t *testing.T) {
	s := newTestState()
	s.NewAllocaID()
	s.NewAllocaID()
	clone := s.Clone()
	if got := clone.NewAllocaID(); got != 2 {
		t.Errorf("clone.NewAllocaID() = %d, want 2 (counter carried over)", got)
	}
	if got := s.NewAllocaID(); got != 2 {
		t.Errorf("original NewAllocaID() = %d, want 2 (clone's increments must not leak back)", got)
	}
}

func TestPathSatisfactoryEmptyConstraintsIsTrue(t *testing.T) {
	s := newTestState()
	if !s.PathSatisfactory(smt.NewBoundedSolver()) {
		t.Error("PathSatisfactory() with no constraints should be true")
	}
}

func TestPathSatisfactoryContradiction(t *testing.T) {
	s := newTestState()
	s.AddConstraint(Constraint{Cond: Comparison{Pred: ir.PredSLT, LHS: SymbolValue{ID: 1}, RHS: IntValue{N: 5}}, Branch: true})
	s.AddConstraint(Constraint{Cond: Comparison{Pred: ir.PredSGT, LHS: SymbolValue{ID: 1}, RHS: IntValue{N: 10}}, Branch: true})

	if s.PathSatisfactory(smt.NewBoundedSolver()) {
		t.Error("PathSatisfactory() should be false for x<5 && x>10")
	}
}

func TestDumpTraceConvertsNodesAndTarget(t *testing.T) {
	s := newTestState()
	s.Trace = append(s.Trace, TraceNode{
		Semantics: Semantics{Op: ir.OpCall, Callee: "target"},
		Result:    CallValue{Callee: "target", CallID: 0},
	})
	target := 0
	s.TargetNode = &target

	tr := s.DumpTrace()
	if tr.Target != 0 {
		t.Errorf("DumpTrace().Target = %d, want 0", tr.Target)
	}
	if len(tr.Instrs) != 1 {
		t.Fatalf("DumpTrace().Instrs = %v, want length 1", tr.Instrs)
	}
	if tr.Instrs[0].Sem.Callee != "target" {
		t.Errorf("DumpTrace().Instrs[0].Sem.Callee = %q, want target", tr.Instrs[0].Sem.Callee)
	}
	if tr.Instrs[0].Res == nil || tr.Instrs[0].Res.Kind != "call" {
		t.Errorf("DumpTrace().Instrs[0].Res = %v, want Kind=call", tr.Instrs[0].Res)
	}
}
