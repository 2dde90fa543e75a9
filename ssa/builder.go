// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ssa

// Builder is the sole construction API for a Graph: a cursor bound to
// one graph and a mutable "insertion block". There is no textual IR
// parser; programs are built exclusively through Builder calls.
type Builder struct {
	g   *Graph
	cur *BasicBlock
}

// NewBuilder returns a Builder bound to g, with no insertion block
// selected.
func NewBuilder(g *Graph) *Builder {
	return &Builder{g: g}
}

// Graph returns the builder's bound graph.
func (b *Builder) Graph() *Graph { return b.g }

// CurrentBlock returns the builder's current insertion block, or nil
// if none has been selected.
func (b *Builder) CurrentBlock() *BasicBlock { return b.cur }

// SetInsertPoint selects bb as the block new instructions are appended
// to.
func (b *Builder) SetInsertPoint(bb *BasicBlock) {
	b.cur = bb
}

// mustBlock panics if no insertion block has been selected. Every
// create-operation requires one (§4.1): this is a programmer-error
// precondition, not a recoverable condition.
func (b *Builder) mustBlock() *BasicBlock {
	if b.cur == nil {
		panicf("ssa.Builder: no insertion block selected")
	}
	return b.cur
}

func (b *Builder) newInst(kind Kind, typ Type) *Instruction {
	return &Instruction{
		id:   b.g.nextInstructionID(),
		kind: kind,
		typ:  typ,
		life: -1,
	}
}

// AppendInst places inst at the end of its segment (phi or non-phi) of
// the current block's merged instruction stream and sets its owning
// block back-reference. It is exposed for callers that construct an
// Instruction through a factory method below; most callers should use
// those factories instead of calling AppendInst directly.
func (b *Builder) AppendInst(inst *Instruction) {
	bb := b.mustBlock()
	bb.appendInst(inst)
}

// CreateConstant creates an immediate value of the given type.
func (b *Builder) CreateConstant(typ Type, value int64) *Instruction {
	b.mustBlock()
	inst := b.newInst(KConst, typ)
	inst.constValue = wrapConst(typ, value)
	b.AppendInst(inst)
	return inst
}

// wrapConst truncates value to the width implied by typ, matching the
// wraparound semantics the optimizer's constant folding relies on.
func wrapConst(typ Type, value int64) int64 {
	switch typ {
	case TypeInt32:
		return int64(int32(value))
	default:
		return value
	}
}

// CreateParameter creates a Param instruction: an incoming value with
// no producing instruction of its own.
func (b *Builder) CreateParameter(typ Type) *Instruction {
	b.mustBlock()
	inst := b.newInst(KParam, typ)
	b.AppendInst(inst)
	return inst
}

func (b *Builder) createBinary(kind Kind, typ Type, lhs, rhs *Instruction) *Instruction {
	b.mustBlock()
	if lhs == nil || rhs == nil {
		panicf("ssa.Builder: %s requires non-nil operands", kind)
	}
	inst := b.newInst(kind, typ)
	inst.inputs = []*Instruction{lhs, rhs}
	b.AppendInst(inst)
	return inst
}

// CreateAdd creates lhs + rhs. The result type is lhs's type.
func (b *Builder) CreateAdd(lhs, rhs *Instruction) *Instruction {
	return b.createBinary(KAdd, lhs.Type(), lhs, rhs)
}

// CreateMul creates lhs * rhs. The result type is lhs's type.
func (b *Builder) CreateMul(lhs, rhs *Instruction) *Instruction {
	return b.createBinary(KMul, lhs.Type(), lhs, rhs)
}

// CreateOr creates lhs | rhs. The result type is lhs's type.
func (b *Builder) CreateOr(lhs, rhs *Instruction) *Instruction {
	return b.createBinary(KOr, lhs.Type(), lhs, rhs)
}

// CreateAShr creates lhs >> rhs (arithmetic shift right). The result
// type is lhs's type.
func (b *Builder) CreateAShr(lhs, rhs *Instruction) *Instruction {
	return b.createBinary(KAShr, lhs.Type(), lhs, rhs)
}

// CreateCmp creates a comparison of lhs and rhs. Its result type is
// always Int32, regardless of the operand types.
func (b *Builder) CreateCmp(lhs, rhs *Instruction) *Instruction {
	return b.createBinary(KCmp, TypeInt32, lhs, rhs)
}

// CreateJump creates an unconditional branch to target and wires the
// corresponding CFG edge: target gains the current block as a
// predecessor, and the current block gains target as its sole
// successor.
func (b *Builder) CreateJump(target *BasicBlock) *Instruction {
	bb := b.mustBlock()
	if target == nil {
		panicf("ssa.Builder: CreateJump requires a non-nil target")
	}
	inst := b.newInst(KJump, TypeUnknown)
	inst.jumpTarget = target
	b.AppendInst(inst)
	bb.addSucc(target)
	target.addPred(bb)
	return inst
}

// CreateIf creates a conditional branch and wires both CFG edges: the
// current block's successors become [trueTarget, falseTarget], in
// that order, and both targets gain the current block as a
// predecessor.
func (b *Builder) CreateIf(cond *Instruction, trueTarget, falseTarget *BasicBlock) *Instruction {
	bb := b.mustBlock()
	if cond == nil || trueTarget == nil || falseTarget == nil {
		panicf("ssa.Builder: CreateIf requires a non-nil condition and both targets")
	}
	inst := b.newInst(KIf, TypeUnknown)
	inst.inputs = []*Instruction{cond}
	inst.ifTrue, inst.ifFalse = trueTarget, falseTarget
	b.AppendInst(inst)
	bb.addSucc(trueTarget)
	bb.addSucc(falseTarget)
	trueTarget.addPred(bb)
	falseTarget.addPred(bb)
	return inst
}

// CreatePhi creates an empty Phi of the given type. Its operand list
// is populated afterwards, one predecessor at a time, via AddPhiInput.
func (b *Builder) CreatePhi(typ Type) *Instruction {
	b.mustBlock()
	inst := b.newInst(KPhi, typ)
	b.AppendInst(inst)
	return inst
}

// AddPhiInput appends the (from, value) pair to phi's operand list.
// Population is deferred from CreatePhi so that callers can construct
// predecessor blocks (whose values the phi selects) after creating the
// phi itself, which is required for the back edges of a loop header's
// phis.
func (b *Builder) AddPhiInput(phi *Instruction, from *BasicBlock, value *Instruction) {
	if phi == nil || phi.kind != KPhi {
		panicf("ssa.Builder: AddPhiInput requires a Phi instruction")
	}
	if from == nil || value == nil {
		panicf("ssa.Builder: AddPhiInput requires non-nil predecessor and value")
	}
	phi.inputs = append(phi.inputs, value)
	phi.phiBlocks = append(phi.phiBlocks, from)
}

// CreateReturn creates a Ret instruction. value may be nil for a bare
// return with no operand.
func (b *Builder) CreateReturn(value *Instruction) *Instruction {
	b.mustBlock()
	inst := b.newInst(KRet, TypeUnknown)
	if value != nil {
		inst.inputs = []*Instruction{value}
	}
	b.AppendInst(inst)
	return inst
}
