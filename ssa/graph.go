// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ssa implements a small static single-assignment intermediate
// representation: basic blocks linked into a control-flow graph, a
// fixed set of instruction kinds, and a construction API. Analyses and
// optimizations over this IR live in the sibling ssa/dom, ssa/loopnest,
// ssa/liveness and ssa/optimize packages.
package ssa

import "github.com/sirupsen/logrus"

// Graph owns a collection of basic blocks in insertion order, a
// designated entry block, and the two id counters that make block and
// instruction ids stable and unique for the graph's lifetime.
//
// Like the teacher's cmd/compile/internal/ssa.Func, a Graph is a
// single-rooted arena: once created, a block is never moved or
// reallocated, so *BasicBlock and *Instruction stay valid pointers for
// as long as the Graph itself is reachable.
type Graph struct {
	Blocks []*BasicBlock
	Entry  *BasicBlock

	nextBlockID ID
	nextInstID  ID

	scratch scratchCache

	// Log, if non-nil, receives structured debug tracing from the
	// analyses in this module tree. It is nil-safe: every call site
	// checks for nil before logging, the way the teacher's passes
	// check f.pass.debug before calling fmt.Printf.
	Log *logrus.Entry
}

// NewGraph returns an empty graph with no blocks and no entry.
func NewGraph() *Graph {
	return &Graph{}
}

// NewBlock creates and appends a new, empty basic block to the graph.
// It does not set it as the entry; call SetEntry explicitly.
func (g *Graph) NewBlock() *BasicBlock {
	b := &BasicBlock{graph: g, id: g.nextBlockID}
	g.nextBlockID++
	g.Blocks = append(g.Blocks, b)
	return b
}

// SetEntry designates bb as the graph's entry block. bb must already
// belong to g.
func (g *Graph) SetEntry(bb *BasicBlock) {
	if bb != nil && bb.graph != g {
		panicf("SetEntry: block BB%d does not belong to this graph", bb.id)
	}
	g.Entry = bb
}

// NumBlocks returns the number of blocks created in this graph,
// including any later removed from Blocks (ids are never reused).
func (g *Graph) NumBlocks() int { return int(g.nextBlockID) }

// nextInstructionID returns the next instruction id and advances the
// counter. It is called only from Builder.
func (g *Graph) nextInstructionID() ID {
	id := g.nextInstID
	g.nextInstID++
	return id
}

// ReplaceAllUses rewrites every instruction in every block of g — both
// the phi segment and the non-phi segment — so that any operand slot
// pointing to old points to new instead. Phi operand lists have a
// second, pair-valued slot (the predecessor block) that is left
// untouched; only the value side is rewritten, in lockstep with the
// plain inputs slice it mirrors.
//
// Grounded on the original Optimizer::ReplaceAllUses, generalized to a
// Graph method since this primitive is useful to more than the
// optimizer (e.g. to tests that want to splice in a replacement value
// directly).
func (g *Graph) ReplaceAllUses(old, new *Instruction) {
	for _, b := range g.Blocks {
		b.forEachInst(func(inst *Instruction) {
			inst.replaceInput(old, new)
		})
	}
}
