// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dom computes immediate dominators using the Lengauer–Tarjan
// semidominator algorithm. The spec this toolkit follows requires the
// O(α·E) semidominator formulation specifically (not an iterative
// dataflow fixed point) because its test suite depends on correct
// behavior under irreducible control flow, where the two formulations
// can disagree on idom results for unreachable-via-DFS-tree-edge
// cases.
//
// Grounded on the teacher's ssa.dom.go (postorder/intersect dominance,
// same package family) generalized from its iterative-intersect
// shortcut to the full two-phase Lengauer–Tarjan algorithm the spec
// requires, and on DominatorAnalysis.cpp/.hpp in original_source for
// exact field semantics (semi/label/ancestor/bucket).
package dom

import (
	"github.com/kfuehnel/ssacore/ssa"
)

// Tree is the result of running the dominator analysis on one graph
// snapshot. It is a pure, read-only view: building it never mutates
// the graph.
type Tree struct {
	idom  []*ssa.BasicBlock // indexed by BasicBlock.ID(); nil = no idom (entry or unreachable)
	order []*ssa.BasicBlock // DFS preorder of reachable blocks, entry first
}

// frame is one explicit-DFS-stack entry: the dfs-numbered node being
// visited and the index of the next successor to explore. Mirrors the
// teacher's blockAndIndex (dom.go) — recursive DFS is rewritten as an
// explicit stack per the spec's design notes, to avoid stack overflow
// on large graphs.
type frame struct {
	num  int
	next int
}

// Build runs the dominator analysis over g, relative to g.Entry. If
// g.Entry is unset, Build returns an empty, usable Tree: analyses over
// a graph with no entry never fail, they simply report nothing (§4.2).
func Build(g *ssa.Graph) *Tree {
	entry := g.Entry
	if entry == nil {
		return &Tree{}
	}

	total := g.NumBlocks()
	t := &Tree{idom: make([]*ssa.BasicBlock, total)}

	dfnum := make([]int, total)
	for i := range dfnum {
		dfnum[i] = -1
	}

	vertex := make([]*ssa.BasicBlock, 0, total)
	parent := make([]int, 0, total)
	semi := make([]int, 0, total)
	ancestor := make([]int, 0, total)
	label := make([]int, 0, total)

	pushNode := func(b *ssa.BasicBlock, p int) int {
		num := len(vertex)
		dfnum[b.ID()] = num
		vertex = append(vertex, b)
		parent = append(parent, p)
		semi = append(semi, num)
		ancestor = append(ancestor, -1)
		label = append(label, num)
		return num
	}
	pushNode(entry, -1)

	stack := make([]frame, 0, 32)
	stack = append(stack, frame{num: 0})
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		b := vertex[top.num]
		succs := b.Succs()
		if top.next >= len(succs) {
			stack = stack[:len(stack)-1]
			continue
		}
		s := succs[top.next]
		top.next++
		if dfnum[s.ID()] == -1 {
			num := pushNode(s, top.num)
			stack = append(stack, frame{num: num})
		}
	}

	n := len(vertex)
	debugLog(g, "dom: dfs complete", map[string]any{"reachable": n, "total": total})

	// compress implements COMPRESS(v) from Lengauer-Tarjan, iteratively:
	// it walks v's ancestor chain up to (but not including) the node
	// whose parent is already a DFS-tree root-ward endpoint, then
	// applies the label/ancestor updates in root-to-v order — the same
	// order the recursive formulation executes them in, since the
	// recursive call on ancestor[v] runs to completion before v's own
	// update.
	compress := func(v int) {
		var chain []int
		u := v
		for ancestor[ancestor[u]] != -1 {
			chain = append(chain, u)
			u = ancestor[u]
		}
		for i := len(chain) - 1; i >= 0; i-- {
			x := chain[i]
			if semi[label[ancestor[x]]] < semi[label[x]] {
				label[x] = label[ancestor[x]]
			}
			ancestor[x] = ancestor[ancestor[x]]
		}
	}

	eval := func(v int) int {
		if ancestor[v] == -1 {
			return label[v]
		}
		compress(v)
		return label[v]
	}

	bucket := make([][]int, n)
	idomNum := make([]int, n)
	for i := range idomNum {
		idomNum[i] = -1
	}

	for i := n - 1; i >= 1; i-- {
		w := i
		for _, v := range vertex[w].Preds() {
			vn := dfnum[v.ID()]
			if vn == -1 {
				continue // predecessor unreachable from entry; cannot affect dominance
			}
			u := eval(vn)
			if semi[u] < semi[w] {
				semi[w] = semi[u]
			}
		}
		bucket[semi[w]] = append(bucket[semi[w]], w)
		ancestor[w] = parent[w] // Link(parent[w], w)

		pw := parent[w]
		if pw >= 0 {
			for _, v := range bucket[pw] {
				u := eval(v)
				if semi[u] == semi[v] {
					idomNum[v] = semi[v]
				} else {
					idomNum[v] = u
				}
			}
			bucket[pw] = nil
		}
	}

	for i := 1; i < n; i++ {
		if idomNum[i] != semi[i] {
			idomNum[i] = idomNum[idomNum[i]]
		}
	}

	for i := 1; i < n; i++ {
		t.idom[vertex[i].ID()] = vertex[idomNum[i]]
	}
	t.order = vertex

	debugLog(g, "dom: computed", map[string]any{"reachable": n})
	return t
}

// Idom returns bb's immediate dominator, or nil if bb is the entry
// block or was not reached by the analysis.
func (t *Tree) Idom(bb *ssa.BasicBlock) *ssa.BasicBlock {
	if bb == nil || int(bb.ID()) >= len(t.idom) {
		return nil
	}
	return t.idom[bb.ID()]
}

// Dominates reports whether a dominates b, found by walking b's idom
// chain: true iff a is encountered before reaching nil. Every block
// dominates itself.
func (t *Tree) Dominates(a, b *ssa.BasicBlock) bool {
	for cur := b; cur != nil; cur = t.Idom(cur) {
		if cur == a {
			return true
		}
	}
	return false
}

// PreOrder returns the blocks reachable from entry, in DFS preorder
// (entry first). It is empty if the graph had no entry.
func (t *Tree) PreOrder() []*ssa.BasicBlock { return t.order }
