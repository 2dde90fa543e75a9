// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package loopnest discovers natural loops from back edges and builds
// the loop-nest tree. It consumes a dom.Tree (back-edge discovery
// needs a dominance test) but otherwise only reads the CFG.
//
// Grounded on the original LoopAnalyzer (LoopAnalysis.cpp/
// LoopAnalyzer.hpp): three-color DFS for back edges, a reverse-CFG
// walk per latch for the natural loop body, and ascending-body-size
// parent assignment for the tree. The teacher's Bourdoncle-style
// loopnestfor (likelyadjust.go) builds the same kind of tree from SCCs
// instead of dominance; that formulation is kept only as a
// cross-check in this package's tests (see loopnest_scc_test.go), not
// as the production algorithm, since the spec prescribes the
// back-edge/dominance formulation specifically.
package loopnest

import (
	"github.com/kfuehnel/ssacore/ssa"
	"github.com/kfuehnel/ssacore/ssa/dom"
)

// Loop holds one natural loop: its header, its latches (back-edge
// sources), its member block set (always including the header), its
// parent in the loop-nest tree, and its children.
type Loop struct {
	Header  *ssa.BasicBlock
	Latches []*ssa.BasicBlock
	Blocks  map[*ssa.BasicBlock]bool

	Parent   *Loop
	Children []*Loop
}

// Contains reports whether bb is a member of the loop's body.
func (l *Loop) Contains(bb *ssa.BasicBlock) bool {
	return l.Blocks[bb]
}

// Nest is the result of running loop analysis once over a graph
// snapshot: every discovered loop, plus a synthetic root loop (nil
// header) that is the ultimate ancestor of every top-level loop.
type Nest struct {
	Loops []*Loop
	Root  *Loop
}

type color uint8

const (
	white color = iota
	gray
	black
)

type frame struct {
	b    *ssa.BasicBlock
	next int
}

// Build runs loop analysis on g using doms (typically dom.Build(g)).
// It is idempotent: calling it again from scratch produces the same
// result, since it only reads g and doms.
func Build(g *ssa.Graph, doms *dom.Tree) *Nest {
	root := &Loop{Blocks: map[*ssa.BasicBlock]bool{}}
	if g.Entry == nil {
		return &Nest{Root: root}
	}

	colors := make([]color, g.NumBlocks())
	headerToLoop := make(map[*ssa.BasicBlock]*Loop)
	var loops []*Loop

	colors[g.Entry.ID()] = gray
	stack := make([]frame, 0, 32)
	stack = append(stack, frame{b: g.Entry})
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		succs := top.b.Succs()
		if top.next >= len(succs) {
			colors[top.b.ID()] = black
			stack = stack[:len(stack)-1]
			continue
		}
		s := succs[top.next]
		top.next++

		switch colors[s.ID()] {
		case white:
			colors[s.ID()] = gray
			stack = append(stack, frame{b: s})
		case gray:
			// u (top.b) -> v (s) reaches a currently-open ancestor: a
			// back edge iff v dominates u. Otherwise it is a
			// back-to-gray edge in an irreducible region and is
			// ignored (§4.3 step 1).
			if doms.Dominates(s, top.b) {
				l, ok := headerToLoop[s]
				if !ok {
					l = &Loop{Header: s, Blocks: map[*ssa.BasicBlock]bool{s: true}}
					headerToLoop[s] = l
					loops = append(loops, l)
					debugLog(g, "loopnest: discovered loop", map[string]any{"header": s.ID()})
				}
				l.Latches = append(l.Latches, top.b)
			}
		case black:
			// forward or cross edge; irrelevant to loop discovery.
		}
	}

	for _, l := range loops {
		populateBody(l)
	}

	buildTree(loops, root)

	debugLog(g, "loopnest: built", map[string]any{"loops": len(loops)})
	return &Nest{Loops: loops, Root: root}
}

// populateBody grows l.Blocks (already seeded with the header) by
// walking the reverse CFG from every latch distinct from the header,
// stopping at blocks already in the body.
func populateBody(l *Loop) {
	var worklist []*ssa.BasicBlock
	for _, latch := range l.Latches {
		if !l.Blocks[latch] {
			l.Blocks[latch] = true
			worklist = append(worklist, latch)
		}
	}
	for len(worklist) > 0 {
		cur := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		for _, pred := range cur.Preds() {
			if !l.Blocks[pred] {
				l.Blocks[pred] = true
				worklist = append(worklist, pred)
			}
		}
	}
}

// buildTree assigns each loop a parent: the smallest loop (other than
// itself) whose body contains its header, or root if none does. Loops
// are considered smallest-first so a loop's parent is always its
// innermost reducible ancestor.
func buildTree(loops []*Loop, root *Loop) {
	sorted := make([]*Loop, len(loops))
	copy(sorted, loops)
	// Insertion sort by body size ascending: loop counts in realistic
	// graphs are small, and this keeps the comparator simple and
	// stable without pulling in sort for a handful of elements.
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && len(sorted[j].Blocks) < len(sorted[j-1].Blocks); j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}

	for _, l := range sorted {
		var parent *Loop
		for _, cand := range sorted {
			if cand == l {
				continue
			}
			if cand.Contains(l.Header) {
				if parent == nil || len(cand.Blocks) < len(parent.Blocks) {
					parent = cand
				}
			}
		}
		if parent == nil {
			parent = root
		}
		l.Parent = parent
		parent.Children = append(parent.Children, l)
	}
}
