package trace

import "testing"

func buildTrace() Trace {
	return Trace{
		Target: 2,
		Instrs: []Instr{
			{Loc: "alloca", Sem: Semantics{Op: "alloca"}},
			{Loc: "call", Sem: Semantics{Op: "call", Callee: "prep"}},
			{Loc: "call", Sem: Semantics{Op: "call", Callee: "target", Args: []Value{{Kind: "argument", Arg: 0}}}},
			{Loc: "call", Sem: Semantics{Op: "call", Callee: "after"}},
			{Loc: "ret", Sem: Semantics{Op: "ret"}},
		},
	}
}

func TestTargetAccessors(t *testing.T) {
	tr := buildTrace()
	if tr.TargetInstr().Sem.Callee != "target" {
		t.Fatalf("TargetInstr().Sem.Callee = %q, want target", tr.TargetInstr().Sem.Callee)
	}
	args := tr.TargetArgs()
	if len(args) != 1 || args[0].Kind != "argument" {
		t.Fatalf("TargetArgs() = %v", args)
	}
	if _, ok := tr.TargetArg(5); ok {
		t.Fatal("TargetArg(5) should be out of range")
	}
}

func TestInstrsFromTargetForward(t *testing.T) {
	tr := buildTrace()
	fwd := tr.InstrsFromTarget(Forward)
	if len(fwd) != 2 || fwd[0].Sem.Callee != "after" || fwd[1].Sem.Op != "ret" {
		t.Fatalf("InstrsFromTarget(Forward) = %+v", fwd)
	}
}

func TestInstrsFromTargetBackward(t *testing.T) {
	tr := buildTrace()
	bwd := tr.InstrsFromTarget(Backward)
	if len(bwd) != 2 || bwd[0].Sem.Callee != "prep" || bwd[1].Sem.Op != "alloca" {
		t.Fatalf("InstrsFromTarget(Backward) = %+v", bwd)
	}
}

func TestInstrsFromWholeTrace(t *testing.T) {
	tr := buildTrace()
	fwd := tr.InstrsFrom(Forward, -1)
	if len(fwd) != len(tr.Instrs) {
		t.Fatalf("InstrsFrom(Forward, -1) length = %d, want %d", len(fwd), len(tr.Instrs))
	}
	bwd := tr.InstrsFrom(Backward, -1)
	if len(bwd) != len(tr.Instrs) || bwd[0].Sem.Op != "ret" {
		t.Fatalf("InstrsFrom(Backward, -1) = %+v", bwd)
	}
}
