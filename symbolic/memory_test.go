package symbolic

import (
	"testing"

	"github.com/purs3lab/arbitrar/ir"
)

func TestMemoryLoadMintsOncePerLocation(t *testing.T) {
	m := NewMemory()
	loc := AllocaLocation{ID: 1}
	calls := 0
	mint := func() Value {
		calls++
		return SymbolValue{ID: calls}
	}

	first := m.Load(loc, mint)
	second := m.Load(loc, mint)
	if calls != 1 {
		t.Fatalf("mint called %d times, want 1", calls)
	}
	if first != second {
		t.Errorf("Load(loc) = %v then %v, want same minted value both times", first, second)
	}
}

func TestMemoryUnknownLocationNeverStored(t *testing.T) {
	m := NewMemory()
	m.Store(UnknownLocation{}, IntValue{N: 5})
	got := m.Load(UnknownLocation{}, func() Value { return IntValue{N: 99} })
	if _, ok := got.(UnknownValue); !ok {
		t.Errorf("Load(UnknownLocation) = %v, want UnknownValue", got)
	}
}

func TestMemoryCloneIsIndependent(t *testing.T) {
	m := NewMemory()
	loc := AllocaLocation{ID: 1}
	m.Store(loc, IntValue{N: 1})

	clone := m.Clone()
	clone.Store(loc, IntValue{N: 2})

	orig := m.Load(loc, func() Value { return UnknownValue{} })
	if iv, ok := orig.(IntValue); !ok || iv.N != 1 {
		t.Errorf("original Memory mutated by clone: Load(loc) = %v, want IntValue{1}", orig)
	}
}

func TestLocalMemoryBindAndGet(t *testing.T) {
	lm := NewLocalMemory()
	instr := &ir.Instr{NameStr: "x", Op: ir.OpLoad}
	if _, ok := lm.Get(instr); ok {
		t.Fatal("Get on empty LocalMemory should report not found")
	}
	lm.Bind(instr, IntValue{N: 42})
	got, ok := lm.Get(instr)
	if !ok {
		t.Fatal("Get after Bind should report found")
	}
	if iv, ok := got.(IntValue); !ok || iv.N != 42 {
		t.Errorf("Get() = %v, want IntValue{42}", got)
	}
}
