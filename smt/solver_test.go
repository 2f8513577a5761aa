package smt

import (
	"testing"

	"github.com/purs3lab/arbitrar/ir"
)

func TestBoundedSolverConcreteContradiction(t *testing.T) {
	s := NewBoundedSolver()
	atoms := []Atom{
		{Pred: ir.PredEQ, LHS: IntConst{N: 1}, RHS: IntConst{N: 2}},
	}
	if got := s.Check(atoms); got != Unsat {
		t.Errorf("Check(1 == 2) = %v, want Unsat", got)
	}
}

func TestBoundedSolverConcreteSat(t *testing.T) {
	s := NewBoundedSolver()
	atoms := []Atom{
		{Pred: ir.PredEQ, LHS: IntConst{N: 2}, RHS: IntConst{N: 2}},
	}
	if got := s.Check(atoms); got != Sat {
		t.Errorf("Check(2 == 2) = %v, want Sat", got)
	}
}

func TestBoundedSolverSymbolInterval(t *testing.T) {
	s := NewBoundedSolver()
	// x < 5 and x > 10 is unsatisfiable.
	atoms := []Atom{
		{Pred: ir.PredSLT, LHS: Symbol{ID: 1}, RHS: IntConst{N: 5}},
		{Pred: ir.PredSGT, LHS: Symbol{ID: 1}, RHS: IntConst{N: 10}},
	}
	if got := s.Check(atoms); got != Unsat {
		t.Errorf("Check(x<5 && x>10) = %v, want Unsat", got)
	}
}

func TestBoundedSolverSymbolFeasibleInterval(t *testing.T) {
	s := NewBoundedSolver()
	// x > 0 and x < 10 is satisfiable.
	atoms := []Atom{
		{Pred: ir.PredSGT, LHS: Symbol{ID: 1}, RHS: IntConst{N: 0}},
		{Pred: ir.PredSLT, LHS: Symbol{ID: 1}, RHS: IntConst{N: 10}},
	}
	if got := s.Check(atoms); got != Sat {
		t.Errorf("Check(x>0 && x<10) = %v, want Sat", got)
	}
}

func TestBoundedSolverNegatedPredicate(t *testing.T) {
	s := NewBoundedSolver()
	// NOT(x == 5) and x == 5 is unsatisfiable.
	atoms := []Atom{
		{Pred: ir.PredEQ, LHS: Symbol{ID: 1}, RHS: IntConst{N: 5}, Negate: true},
		{Pred: ir.PredEQ, LHS: Symbol{ID: 1}, RHS: IntConst{N: 5}},
	}
	if got := s.Check(atoms); got != Unsat {
		t.Errorf("Check(x != 5 && x == 5) = %v, want Unsat", got)
	}
}

func TestBoundedSolverOpaqueIsUnknown(t *testing.T) {
	s := NewBoundedSolver()
	atoms := []Atom{
		{Pred: ir.PredEQ, LHS: Opaque{}, RHS: IntConst{N: 5}},
	}
	if got := s.Check(atoms); got != Unknown {
		t.Errorf("Check(opaque == 5) = %v, want Unknown", got)
	}
}

func TestBoundedSolverEmptyIsSat(t *testing.T) {
	s := NewBoundedSolver()
	if got := s.Check(nil); got != Sat {
		t.Errorf("Check(nil) = %v, want Sat", got)
	}
}
