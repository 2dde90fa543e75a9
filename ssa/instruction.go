// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ssa

// ID is a small integer identifier, unique within the graph that
// allocated it. Block ids and instruction ids are drawn from separate
// counters.
type ID int32

// Kind identifies the variant an Instruction carries. The set is
// closed; there is no open extension point (see DESIGN NOTES on
// tagged variants vs. inheritance).
type Kind int8

const (
	KParam Kind = iota
	KConst
	KAdd
	KMul
	KCmp
	KOr
	KAShr
	KJump
	KIf
	KPhi
	KRet
)

func (k Kind) String() string {
	switch k {
	case KParam:
		return "Param"
	case KConst:
		return "Const"
	case KAdd:
		return "Add"
	case KMul:
		return "Mul"
	case KCmp:
		return "Cmp"
	case KOr:
		return "Or"
	case KAShr:
		return "AShr"
	case KJump:
		return "Jump"
	case KIf:
		return "If"
	case KPhi:
		return "Phi"
	case KRet:
		return "Ret"
	default:
		return "Kind(?)"
	}
}

// isBinary reports whether k is one of the two-input arithmetic/compare
// kinds (Add, Mul, Cmp, Or, AShr).
func (k Kind) isBinary() bool {
	switch k {
	case KAdd, KMul, KCmp, KOr, KAShr:
		return true
	default:
		return false
	}
}

// IsBinary reports whether k is one of the two-input arithmetic/compare
// kinds (Add, Mul, Cmp, Or, AShr). Exported for callers outside this
// package, such as ssa/optimize, that need to recognize foldable forms.
func (k Kind) IsBinary() bool { return k.isBinary() }

// Type is the IR's three-valued type tag. There is no user-defined
// type system beyond these three.
type Type int8

const (
	TypeUnknown Type = iota
	TypeInt32
	TypeInt64
)

func (t Type) String() string {
	switch t {
	case TypeInt32:
		return ".i32"
	case TypeInt64:
		return ".i64"
	default:
		return ""
	}
}

// Instruction is a single SSA value or control-flow terminator. It is
// represented as one tagged-variant struct rather than a hierarchy of
// concrete types: the kind set is fixed (see Kind) and every variant's
// extra state is a handful of fields, so a closed struct reads more
// plainly than an interface with eleven implementations.
type Instruction struct {
	id    ID
	kind  Kind
	typ   Type
	block *BasicBlock

	prev, next *Instruction

	// inputs holds the SSA operands, in kind-defined order. For If,
	// input[0] is the condition. For Phi, inputs[i] is the value of
	// phiBlocks[i].
	inputs []*Instruction

	// life is the position assigned by liveness analysis, or -1 if
	// this instruction has not been numbered.
	life int

	constValue int64 // valid when kind == KConst

	jumpTarget          *BasicBlock // valid when kind == KJump
	ifTrue, ifFalse     *BasicBlock // valid when kind == KIf
	phiBlocks           []*BasicBlock // valid when kind == KPhi, parallel to inputs
}

// ID returns the instruction's identifier, unique within its graph.
func (i *Instruction) ID() ID { return i.id }

// Kind returns the instruction's variant tag.
func (i *Instruction) Kind() Kind { return i.kind }

// Type returns the instruction's result type tag.
func (i *Instruction) Type() Type { return i.typ }

// Block returns the basic block that owns this instruction.
func (i *Instruction) Block() *BasicBlock { return i.block }

// Next returns the next instruction in the block's merged (phi then
// non-phi) stream, or nil at the end.
func (i *Instruction) Next() *Instruction { return i.next }

// Prev returns the previous instruction in the block's merged stream,
// or nil at the start.
func (i *Instruction) Prev() *Instruction { return i.prev }

// Inputs returns the instruction's SSA operands. The slice must not be
// mutated by callers; use ReplaceInput or Graph.ReplaceAllUses.
func (i *Instruction) Inputs() []*Instruction { return i.inputs }

// LifePosition returns the position assigned by the liveness analysis,
// or -1 if the instruction has not been numbered (or liveness has
// never run).
func (i *Instruction) LifePosition() int { return i.life }

// SetLifePosition is called by the liveness analysis to assign a
// position. It is not meaningful to call from outside that analysis.
func (i *Instruction) SetLifePosition(pos int) { i.life = pos }

// ConstValue returns the immediate value of a Const instruction. It
// panics if i is not a Const.
func (i *Instruction) ConstValue() int64 {
	if i.kind != KConst {
		panicf("ConstValue called on non-Const instruction v%d (%s)", i.id, i.kind)
	}
	return i.constValue
}

// JumpTarget returns the target of a Jump instruction. It panics if i
// is not a Jump.
func (i *Instruction) JumpTarget() *BasicBlock {
	if i.kind != KJump {
		panicf("JumpTarget called on non-Jump instruction v%d (%s)", i.id, i.kind)
	}
	return i.jumpTarget
}

// IfTargets returns the true and false targets of an If instruction.
// It panics if i is not an If.
func (i *Instruction) IfTargets() (trueTarget, falseTarget *BasicBlock) {
	if i.kind != KIf {
		panicf("IfTargets called on non-If instruction v%d (%s)", i.id, i.kind)
	}
	return i.ifTrue, i.ifFalse
}

// Cond returns the condition operand of an If instruction.
func (i *Instruction) Cond() *Instruction {
	if i.kind != KIf {
		panicf("Cond called on non-If instruction v%d (%s)", i.id, i.kind)
	}
	return i.inputs[0]
}

// PhiInput is one (predecessor-block, value) pair of a Phi.
type PhiInput struct {
	From  *BasicBlock
	Value *Instruction
}

// PhiInputs returns the ordered operand list of a Phi. It panics if i
// is not a Phi.
func (i *Instruction) PhiInputs() []PhiInput {
	if i.kind != KPhi {
		panicf("PhiInputs called on non-Phi instruction v%d (%s)", i.id, i.kind)
	}
	out := make([]PhiInput, len(i.inputs))
	for idx, v := range i.inputs {
		out[idx] = PhiInput{From: i.phiBlocks[idx], Value: v}
	}
	return out
}

// ValueForPred returns the value a Phi selects for incoming edge from,
// or nil if from is not one of the phi's recorded predecessors.
func (i *Instruction) ValueForPred(from *BasicBlock) *Instruction {
	if i.kind != KPhi {
		panicf("ValueForPred called on non-Phi instruction v%d (%s)", i.id, i.kind)
	}
	for idx, pb := range i.phiBlocks {
		if pb == from {
			return i.inputs[idx]
		}
	}
	return nil
}

// ReturnValue returns the Ret instruction's operand, or nil for a bare
// "ret" with no value.
func (i *Instruction) ReturnValue() *Instruction {
	if i.kind != KRet {
		panicf("ReturnValue called on non-Ret instruction v%d (%s)", i.id, i.kind)
	}
	if len(i.inputs) == 0 {
		return nil
	}
	return i.inputs[0]
}

// replaceInput rewrites any operand slot (including the parallel Phi
// pair slot) that points to old so that it points to new instead. It
// is the single-instruction primitive behind Graph.ReplaceAllUses.
func (i *Instruction) replaceInput(old, new *Instruction) {
	for idx, in := range i.inputs {
		if in == old {
			i.inputs[idx] = new
		}
	}
}

// IsTrackable reports whether the instruction's result participates in
// liveness/interval tracking: it must have a real result, i.e. its
// kind must not be Const and its type must not be Unknown.
func (i *Instruction) IsTrackable() bool {
	return i.kind != KConst && i.typ != TypeUnknown
}
