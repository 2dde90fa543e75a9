// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ssa

// BasicBlock is a node of the control-flow graph. It owns its
// instructions (destroyed with the block; there is no manual free) and
// holds non-owning references to its predecessors and successors.
//
// A block's instructions form one intrusive doubly-linked list
// conceptually split into two contiguous segments: all Phis first,
// then every other instruction, with a Jump/If/Ret (if present) last.
type BasicBlock struct {
	graph *Graph
	id    ID

	preds []*BasicBlock
	succs []*BasicBlock

	firstPhi, lastPhi *Instruction
	firstInst, lastInst *Instruction
}

// ID returns the block's identifier, unique within its graph.
func (b *BasicBlock) ID() ID { return b.id }

// Graph returns the owning graph.
func (b *BasicBlock) Graph() *Graph { return b.graph }

// Preds returns the block's predecessors. Callers must not mutate the
// returned slice.
func (b *BasicBlock) Preds() []*BasicBlock { return b.preds }

// Succs returns the block's successors, in target order (for If, true
// target first, then false target). Callers must not mutate the
// returned slice.
func (b *BasicBlock) Succs() []*BasicBlock { return b.succs }

// FirstPhi returns the first Phi in the block, or nil if the block has
// none.
func (b *BasicBlock) FirstPhi() *Instruction { return b.firstPhi }

// LastPhi returns the last Phi in the block, or nil if the block has
// none.
func (b *BasicBlock) LastPhi() *Instruction { return b.lastPhi }

// FirstInst returns the first non-phi instruction, or nil if the block
// has none yet.
func (b *BasicBlock) FirstInst() *Instruction { return b.firstInst }

// LastInst returns the last non-phi instruction (the terminator, once
// the block is complete), or nil if the block has none yet.
func (b *BasicBlock) LastInst() *Instruction { return b.lastInst }

// FirstAny returns the head of the block's merged instruction stream:
// its first phi if it has one, else its first non-phi instruction.
func (b *BasicBlock) FirstAny() *Instruction {
	if b.firstPhi != nil {
		return b.firstPhi
	}
	return b.firstInst
}

// LastAny returns the tail of the block's merged instruction stream:
// its last non-phi instruction if it has one, else its last phi.
func (b *BasicBlock) LastAny() *Instruction {
	if b.lastInst != nil {
		return b.lastInst
	}
	return b.lastPhi
}

// Terminator returns the block's terminating instruction (Jump, If, or
// Ret), or nil if the block has no non-phi instructions yet.
func (b *BasicBlock) Terminator() *Instruction { return b.lastInst }

// addPred appends pred to b's predecessor list. It does not touch
// pred's successor list; callers (the builder) are responsible for
// keeping both sides consistent.
func (b *BasicBlock) addPred(pred *BasicBlock) {
	b.preds = append(b.preds, pred)
}

// addSucc appends succ to b's successor list.
func (b *BasicBlock) addSucc(succ *BasicBlock) {
	b.succs = append(b.succs, succ)
}

// appendInst links inst onto the end of its kind's segment (phi or
// non-phi) of the block's merged instruction stream, and sets inst's
// owning-block back-reference. It is the only way instructions enter a
// block's list; Builder.AppendInst is a thin forwarder.
func (b *BasicBlock) appendInst(inst *Instruction) {
	inst.block = b
	inst.prev = nil
	inst.next = nil

	if inst.kind == KPhi {
		if b.lastPhi == nil {
			b.firstPhi = inst
		} else {
			b.lastPhi.next = inst
			inst.prev = b.lastPhi
		}
		if b.firstInst != nil {
			inst.next = b.firstInst
			b.firstInst.prev = inst
		}
		b.lastPhi = inst
		return
	}

	if b.lastInst == nil {
		b.firstInst = inst
		if b.lastPhi != nil {
			b.lastPhi.next = inst
			inst.prev = b.lastPhi
		}
	} else {
		b.lastInst.next = inst
		inst.prev = b.lastInst
	}
	b.lastInst = inst
}

// RemoveInst splices inst out of the block's instruction stream. It is
// used by the optimizer once an instruction's uses have been
// redirected elsewhere; it does not touch other instructions' inputs.
// inst must belong to b.
func (b *BasicBlock) RemoveInst(inst *Instruction) {
	if inst.block != b {
		panicf("RemoveInst: instruction v%d does not belong to BB%d", inst.id, b.id)
	}
	b.removeInst(inst)
}

// removeInst is RemoveInst's unchecked core, used internally where the
// block relationship is already established.
func (b *BasicBlock) removeInst(inst *Instruction) {
	prev, next := inst.prev, inst.next
	if prev != nil {
		prev.next = next
	}
	if next != nil {
		next.prev = prev
	}

	if b.firstPhi == inst {
		if next != nil && next.kind == KPhi {
			b.firstPhi = next
		} else {
			b.firstPhi = nil
		}
	}
	if b.lastPhi == inst {
		b.lastPhi = prev
	}
	if b.firstInst == inst {
		if next != nil && inst.kind != KPhi {
			b.firstInst = next
		} else {
			b.firstInst = nil
		}
	}
	if b.lastInst == inst {
		b.lastInst = prev
		if b.lastInst != nil && b.lastInst.kind == KPhi {
			// The non-phi segment is now empty.
			b.firstInst = nil
			b.lastInst = nil
		}
	}
	inst.prev, inst.next, inst.block = nil, nil, nil
}

// forEachInst calls fn for every instruction in the block's merged
// stream, phis first, in order.
func (b *BasicBlock) forEachInst(fn func(*Instruction)) {
	for i := b.FirstAny(); i != nil; i = i.Next() {
		fn(i)
	}
}

// ForEachInst calls fn for every instruction in the block's merged
// stream, phis first, in order. Exported for callers outside this
// package, such as tests and the optimize package's callers, that want
// to walk a block without reimplementing the phi/non-phi split.
func (b *BasicBlock) ForEachInst(fn func(*Instruction)) {
	b.forEachInst(fn)
}
