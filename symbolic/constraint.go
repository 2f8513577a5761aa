package symbolic

import "github.com/purs3lab/arbitrar/ir"

// Comparison is the symbolic predicate accumulated from an ICmp-driven
// branch: LHS <pred> RHS.
type Comparison struct {
	Pred     ir.Predicate
	LHS, RHS Value
}

// Constraint is one accumulated path condition: Branch selects whether
// Cond holds (the then-edge was taken) or its negation holds (the
// else-edge was taken), matching Constraint{cond, branch} in the original.
type Constraint struct {
	Cond   Comparison
	Branch bool
}
