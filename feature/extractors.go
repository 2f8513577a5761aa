package feature

import (
	"sort"
	"sync"

	lru "github.com/hashicorp/golang-lru"

	"github.com/purs3lab/arbitrar/trace"
)

// ReturnValueExtractor reports the kind of value bound to the target call,
// matching the "return_value" extractor in the original's table.
type ReturnValueExtractor struct{}

func (ReturnValueExtractor) Name() string          { return "return_value" }
func (ReturnValueExtractor) Filter(Signature) bool { return true }
func (ReturnValueExtractor) Init(int, trace.Trace)    {}
func (ReturnValueExtractor) Finalize()                {}
func (ReturnValueExtractor) Extract(t trace.Trace) (any, error) {
	res := t.TargetResult()
	if res == nil {
		return map[string]any{"kind": "none"}, nil
	}
	return map[string]any{"kind": res.Kind, "int": res.Int}, nil
}

// ReturnValueCheckExtractor reports whether the target's result is ever
// compared against anything later in the trace, and with which predicate.
type ReturnValueCheckExtractor struct{}

func (ReturnValueCheckExtractor) Name() string          { return "return_value_check" }
func (ReturnValueCheckExtractor) Filter(Signature) bool { return true }
func (ReturnValueCheckExtractor) Init(int, trace.Trace) {}
func (ReturnValueCheckExtractor) Finalize()             {}
func (ReturnValueCheckExtractor) Extract(t trace.Trace) (any, error) {
	res := t.TargetResult()
	if res == nil {
		return map[string]any{"checked": false}, nil
	}
	for _, instr := range t.InstrsFromTarget(trace.Forward) {
		if instr.Sem.Op != "icmp" {
			continue
		}
		if valueRefersTo(instr.Sem.LHS, *res) || valueRefersTo(instr.Sem.RHS, *res) {
			return map[string]any{"checked": true, "predicate": instr.Sem.Pred}, nil
		}
	}
	return map[string]any{"checked": false}, nil
}

// ArgumentPreconditionExtractor reports the first comparison found walking
// backward from the target that involves the target's Index'th argument —
// a cheap proxy for "was this argument validated before the call". Filter
// disables it for a target whose real arity doesn't reach Index, matching
// spec.md's "argument-position extractors disable themselves for short
// signatures".
type ArgumentPreconditionExtractor struct{ Index int }

func (e ArgumentPreconditionExtractor) Name() string { return argExtractorName("argument_precondition", e.Index) }
func (e ArgumentPreconditionExtractor) Filter(sig Signature) bool { return e.Index < sig.NumArgs }
func (ArgumentPreconditionExtractor) Init(int, trace.Trace)      {}
func (ArgumentPreconditionExtractor) Finalize()                  {}
func (e ArgumentPreconditionExtractor) Extract(t trace.Trace) (any, error) {
	return argumentCondition(t, e.Index, trace.Backward), nil
}

// ArgumentPostconditionExtractor is ArgumentPreconditionExtractor's mirror,
// walking forward from the target instead.
type ArgumentPostconditionExtractor struct{ Index int }

func (e ArgumentPostconditionExtractor) Name() string { return argExtractorName("argument_postcondition", e.Index) }
func (e ArgumentPostconditionExtractor) Filter(sig Signature) bool { return e.Index < sig.NumArgs }
func (ArgumentPostconditionExtractor) Init(int, trace.Trace)       {}
func (ArgumentPostconditionExtractor) Finalize()                   {}
func (e ArgumentPostconditionExtractor) Extract(t trace.Trace) (any, error) {
	return argumentCondition(t, e.Index, trace.Forward), nil
}

func argExtractorName(base string, index int) string {
	const digits = "0123456789"
	if index < 0 {
		return base
	}
	if index < 10 {
		return base + "_" + string(digits[index])
	}
	return base
}

func argumentCondition(t trace.Trace, index int, dir trace.Direction) map[string]any {
	arg, ok := t.TargetArg(index)
	if !ok {
		return map[string]any{"found": false}
	}
	for _, instr := range t.InstrsFromTarget(dir) {
		if instr.Sem.Op != "icmp" {
			continue
		}
		if valueRefersTo(instr.Sem.LHS, arg) || valueRefersTo(instr.Sem.RHS, arg) {
			return map[string]any{"found": true, "predicate": instr.Sem.Pred}
		}
	}
	return map[string]any{"found": false}
}

func valueRefersTo(v *trace.Value, target trace.Value) bool {
	if v == nil {
		return false
	}
	if v.Kind != target.Kind {
		return false
	}
	switch v.Kind {
	case "symbol":
		return v.Symbol == target.Symbol
	case "argument":
		return v.Arg == target.Arg
	case "call":
		return v.Callee == target.Callee
	case "int":
		return v.Int == target.Int
	default:
		return false
	}
}

// CausalityExtractor reports which callees, drawn from a bounded
// corpus-wide vocabulary, appear before (Pre) or after (Post) the target
// call within this trace. The vocabulary is the top CapacityHint most
// frequent callees observed across every trace during Init, bounded by an
// LRU cache the way weiihann/chunk-analysis and ethereum/go-ethereum use
// hashicorp/golang-lru for frequency-capped lookup structures.
type CausalityExtractor struct {
	Pre           bool
	CapacityHint  int

	mu     sync.Mutex
	counts map[string]int
	vocab  *lru.Cache
}

func NewCausalityExtractor(pre bool, capacityHint int) *CausalityExtractor {
	return &CausalityExtractor{Pre: pre, CapacityHint: capacityHint, counts: make(map[string]int)}
}

func (e *CausalityExtractor) Name() string {
	if e.Pre {
		return "causality_pre"
	}
	return "causality_post"
}

func (*CausalityExtractor) Filter(Signature) bool { return true }

func (e *CausalityExtractor) Init(_ int, t trace.Trace) {
	for _, instr := range e.window(t) {
		if instr.Sem.Op != "call" || instr.Sem.Callee == "" {
			continue
		}
		e.mu.Lock()
		e.counts[instr.Sem.Callee]++
		e.mu.Unlock()
	}
}

func (e *CausalityExtractor) Finalize() {
	type kv struct {
		name  string
		count int
	}
	all := make([]kv, 0, len(e.counts))
	for name, count := range e.counts {
		all = append(all, kv{name, count})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].count != all[j].count {
			return all[i].count > all[j].count
		}
		return all[i].name < all[j].name
	})
	size := e.CapacityHint
	if size <= 0 {
		size = 1
	}
	vocab, _ := lru.New(size)
	for i, kv := range all {
		if i >= size {
			break
		}
		vocab.Add(kv.name, kv.count)
	}
	e.vocab = vocab
}

func (e *CausalityExtractor) window(t trace.Trace) []trace.Instr {
	if e.Pre {
		return t.InstrsFromTarget(trace.Backward)
	}
	return t.InstrsFromTarget(trace.Forward)
}

func (e *CausalityExtractor) Extract(t trace.Trace) (any, error) {
	seen := make(map[string]bool)
	var names []string
	for _, instr := range e.window(t) {
		if instr.Sem.Op != "call" || instr.Sem.Callee == "" {
			continue
		}
		if e.vocab == nil || !e.vocab.Contains(instr.Sem.Callee) {
			continue
		}
		if !seen[instr.Sem.Callee] {
			seen[instr.Sem.Callee] = true
			names = append(names, instr.Sem.Callee)
		}
	}
	return map[string]any{"callees": names}, nil
}

// ControlFlowExtractor summarizes the trace's shape over the whole trace,
// not only the part before the target: its length, how many comparisons
// (icmp nodes, reported as "branches") and how many calls it contains.
// Switches are not counted. This is the ControlFlow row of spec.md §4.7's
// extractor table.
type ControlFlowExtractor struct{}

func (ControlFlowExtractor) Name() string         { return "control_flow" }
func (ControlFlowExtractor) Filter(Signature) bool { return true }
func (ControlFlowExtractor) Init(int, trace.Trace) {}
func (ControlFlowExtractor) Finalize()             {}
func (ControlFlowExtractor) Extract(t trace.Trace) (any, error) {
	var branches, calls int
	for _, instr := range t.Instrs {
		switch instr.Sem.Op {
		case "icmp":
			branches++
		case "call":
			calls++
		}
	}
	return map[string]any{
		"length":   len(t.Instrs),
		"branches": branches,
		"calls":    calls,
	}, nil
}

// All returns one instance of each of the six core extractors, matching
// FeatureExtractors::all.
func All(opts Options) []Extractor {
	exts := []Extractor{
		ReturnValueExtractor{},
		ReturnValueCheckExtractor{},
	}
	for i := 0; i < opts.NumArguments; i++ {
		exts = append(exts, ArgumentPreconditionExtractor{Index: i})
	}
	for i := 0; i < opts.NumArguments; i++ {
		exts = append(exts, ArgumentPostconditionExtractor{Index: i})
	}
	exts = append(exts,
		NewCausalityExtractor(true, opts.CausalityDictionarySize),
		NewCausalityExtractor(false, opts.CausalityDictionarySize),
		ControlFlowExtractor{},
	)
	return exts
}
