package ir

import (
	"encoding/json"
	"fmt"
	"os"
)

// This file provides a minimal, JSON-described IR loader. Loading real
// compiled LLVM IR (bitcode/.ll parsing) is explicitly out of scope per
// SPEC_FULL.md §1 and no such Go binding exists anywhere in the retrieval
// pack; this loader exists so the CLI and engine have one concrete,
// testable provider to run end-to-end against, built on the same
// mutable fixture types tests use (fixture.go), rather than requiring
// every caller to hand-construct a Module in Go.

type jsonModule struct {
	Functions []jsonFunction `json:"functions"`
}

type jsonFunction struct {
	Name    string      `json:"name"`
	HasBody bool        `json:"has_body"`
	Args    int         `json:"args"`
	Blocks  []jsonBlock `json:"blocks"`
}

type jsonBlock struct {
	Name         string        `json:"name"`
	Instructions []jsonInstr   `json:"instructions"`
}

type jsonOperand struct {
	Kind   string `json:"kind"` // "const", "arg", "instr", "global"
	Int    int64  `json:"int,omitempty"`
	Null   bool   `json:"null,omitempty"`
	Index  int    `json:"index,omitempty"`  // "arg"
	Target string `json:"target,omitempty"` // "instr": name of instruction in the same function; "global": the global's name
}

type jsonInstr struct {
	Name           string        `json:"name"`
	Op             string        `json:"op"`
	Operands       []jsonOperand `json:"operands,omitempty"`
	Callee         string        `json:"callee,omitempty"`
	Successors     []string      `json:"successors,omitempty"` // block names
	SwitchCases    []int64       `json:"switch_cases,omitempty"`
	IncomingBlocks []string      `json:"incoming_blocks,omitempty"` // parallel to Operands, for phi
	Predicate      string        `json:"predicate,omitempty"`
	BinOp          string        `json:"bin_op,omitempty"`
	UnOp           string        `json:"un_op,omitempty"`
}

var opcodeNames = map[string]Opcode{
	"alloca": OpAlloca, "store": OpStore, "load": OpLoad,
	"getelementptr": OpGetElementPtr, "icmp": OpICmp, "binary": OpBinary,
	"unary": OpUnary, "phi": OpPhi, "call": OpCall, "ret": OpRet,
	"br": OpBr, "switch": OpSwitch, "unreachable": OpUnreachable,
}

var predicateNames = map[string]Predicate{
	"eq": PredEQ, "ne": PredNE, "slt": PredSLT, "sle": PredSLE,
	"sgt": PredSGT, "sge": PredSGE, "ult": PredULT, "ule": PredULE,
	"ugt": PredUGT, "uge": PredUGE,
}

var binOpNames = map[string]BinOp{
	"add": BinAdd, "sub": BinSub, "mul": BinMul, "sdiv": BinSDiv,
	"udiv": BinUDiv, "srem": BinSRem, "urem": BinURem, "and": BinAnd,
	"or": BinOr, "xor": BinXor, "shl": BinShl, "lshr": BinLShr, "ashr": BinAShr,
}

var unOpNames = map[string]UnOp{"fneg": UnFNeg, "not": UnNot}

// LoadModuleJSON reads a Module description from path. See jsonModule for
// the schema.
func LoadModuleJSON(path string) (*Mod, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var jm jsonModule
	if err := json.Unmarshal(data, &jm); err != nil {
		return nil, err
	}
	return buildModule(jm)
}

func buildModule(jm jsonModule) (*Mod, error) {
	mod := NewModule()
	for _, jf := range jm.Functions {
		fn := &Fn{NameStr: jf.Name, Body: jf.HasBody, Args: jf.Args}
		blocksByName := make(map[string]*Blk, len(jf.Blocks))
		instrsByName := make(map[string]*Instr)

		for _, jb := range jf.Blocks {
			blk := &Blk{NameStr: jb.Name}
			blocksByName[jb.Name] = blk
		}
		if len(jf.Blocks) > 0 {
			fn.EntryBlk = blocksByName[jf.Blocks[0].Name]
		}

		// First pass: create every Instr so forward/self instr references
		// resolve regardless of declaration order within the function.
		for _, jb := range jf.Blocks {
			for _, ji := range jb.Instructions {
				instrsByName[ji.Name] = &Instr{NameStr: ji.Name}
			}
		}

		for _, jb := range jf.Blocks {
			blk := blocksByName[jb.Name]
			for _, ji := range jb.Instructions {
				instr := instrsByName[ji.Name]
				op, ok := opcodeNames[ji.Op]
				if !ok {
					op = OpOther
				}
				instr.Op = op
				instr.CalleeName = ji.Callee
				instr.Pred = predicateNames[ji.Predicate]
				instr.Bin = binOpNames[ji.BinOp]
				instr.Un = unOpNames[ji.UnOp]
				instr.Cases = ji.SwitchCases

				for _, jo := range ji.Operands {
					operand, err := buildOperand(jo, instrsByName)
					if err != nil {
						return nil, fmt.Errorf("function %q instr %q: %w", jf.Name, ji.Name, err)
					}
					instr.Ops = append(instr.Ops, operand)
				}
				for _, bn := range ji.IncomingBlocks {
					b, ok := blocksByName[bn]
					if !ok {
						return nil, fmt.Errorf("function %q instr %q: unknown incoming block %q", jf.Name, ji.Name, bn)
					}
					instr.Incoming = append(instr.Incoming, b)
				}
				for _, sn := range ji.Successors {
					b, ok := blocksByName[sn]
					if !ok {
						return nil, fmt.Errorf("function %q instr %q: unknown successor block %q", jf.Name, ji.Name, sn)
					}
					instr.Succs = append(instr.Succs, b)
				}
				blk.Instrs = append(blk.Instrs, instr)
			}
		}
		mod.AddFunction(fn)
	}
	return mod, nil
}

func buildOperand(jo jsonOperand, instrsByName map[string]*Instr) (Operand, error) {
	switch jo.Kind {
	case "const":
		return &Const{I64: jo.Int, IsNull: jo.Null}, nil
	case "arg":
		return &Arg{Index: jo.Index}, nil
	case "instr":
		target, ok := instrsByName[jo.Target]
		if !ok {
			return nil, fmt.Errorf("unknown operand target instruction %q", jo.Target)
		}
		return &InstrRef{Target: target}, nil
	case "global":
		return &Global{NameStr: jo.Target}, nil
	default:
		return nil, fmt.Errorf("unknown operand kind %q", jo.Kind)
	}
}
