// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package liveness

import "github.com/kfuehnel/ssacore/ssa"

type frame struct {
	b    *ssa.BasicBlock
	next int
}

// reversePostorder returns blocks reachable from g.Entry in reverse
// postorder, via an explicit-stack DFS postorder followed by a
// reversal (see ssa/dom and ssa/loopnest for the same explicit-stack
// discipline).
func reversePostorder(g *ssa.Graph) []*ssa.BasicBlock {
	seen := g.AllocBoolSlice(g.NumBlocks())
	defer g.FreeBoolSlice(seen)
	post := make([]*ssa.BasicBlock, 0, len(g.Blocks))

	seen[g.Entry.ID()] = true
	stack := make([]frame, 0, 32)
	stack = append(stack, frame{b: g.Entry})
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		succs := top.b.Succs()
		if top.next >= len(succs) {
			post = append(post, top.b)
			stack = stack[:len(stack)-1]
			continue
		}
		s := succs[top.next]
		top.next++
		if !seen[s.ID()] {
			seen[s.ID()] = true
			stack = append(stack, frame{b: s})
		}
	}

	for i, j := 0, len(post)-1; i < j; i, j = i+1, j-1 {
		post[i], post[j] = post[j], post[i]
	}
	return post
}

// loopBodyForRotation finds the natural loop body for the back edge
// latch->header discovered within order (indexed by idx), restricting
// the reverse-CFG walk to predecessors whose position is at or after
// the header's — matching the original ComputeLinearOrder, which
// bounds the walk to the window being rotated rather than the whole
// graph (see DESIGN.md for why this differs slightly from the
// unrestricted walk ssa/loopnest uses).
func loopBodyForRotation(header, latch *ssa.BasicBlock, idx map[*ssa.BasicBlock]int) map[*ssa.BasicBlock]bool {
	body := map[*ssa.BasicBlock]bool{header: true}
	var worklist []*ssa.BasicBlock
	if latch != header {
		body[latch] = true
		worklist = append(worklist, latch)
	}
	headerIdx := idx[header]
	for len(worklist) > 0 {
		cur := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		for _, pred := range cur.Preds() {
			pi, ok := idx[pred]
			if ok && pi >= headerIdx && !body[pred] {
				body[pred] = true
				worklist = append(worklist, pred)
			}
		}
	}
	return body
}

// bodyIsContiguous reports whether body already occupies the block of
// positions starting immediately at headerIdx in order, so rotating it
// again would be a no-op.
func bodyIsContiguous(order []*ssa.BasicBlock, headerIdx int, body map[*ssa.BasicBlock]bool) bool {
	if headerIdx+len(body) > len(order) {
		return false
	}
	for k := 0; k < len(body); k++ {
		if !body[order[headerIdx+k]] {
			return false
		}
	}
	return true
}

// rotateOnce performs at most one loop-contiguity fix on order: it
// scans for the first back edge (a successor whose index is <= the
// source's) whose body is not already contiguous after its header,
// computes that loop's body, and moves every member to sit immediately
// after the header, preserving the relative order of non-members. It
// reports whether a rotation was performed.
func rotateOnce(order []*ssa.BasicBlock) ([]*ssa.BasicBlock, bool) {
	idx := make(map[*ssa.BasicBlock]int, len(order))
	for i, b := range order {
		idx[b] = i
	}

	for i, b := range order {
		for _, succ := range b.Succs() {
			j, ok := idx[succ]
			if !ok || j > i {
				continue
			}
			header, latch := succ, b
			body := loopBodyForRotation(header, latch, idx)
			if bodyIsContiguous(order, idx[header], body) {
				continue
			}

			newOrder := make([]*ssa.BasicBlock, 0, len(order))
			for _, bb := range order {
				switch {
				case bb == header:
					newOrder = append(newOrder, bb)
					for _, lb := range order {
						if lb != header && body[lb] {
							newOrder = append(newOrder, lb)
						}
					}
				case body[bb]:
					// already placed right after the header above
				default:
					newOrder = append(newOrder, bb)
				}
			}
			return newOrder, true
		}
	}
	return order, false
}

// computeLinearOrder builds the order liveness numbers instructions
// in: reverse postorder from entry, then repeated loop rotation until
// stable (§4.4). Per the design notes' open question on convergence,
// the rotation is bounded; a pathological irreducible CFG that never
// stabilizes falls back to the raw reverse postorder computed above.
func computeLinearOrder(g *ssa.Graph) []*ssa.BasicBlock {
	order := reversePostorder(g)

	maxIterations := 2*len(order) + 8
	for iter := 0; iter < maxIterations; iter++ {
		next, changed := rotateOnce(order)
		if !changed {
			return order
		}
		order = next
	}
	debugLog(g, "liveness: linear order did not converge, using reverse postorder", map[string]any{"blocks": len(order)})
	return reversePostorder(g)
}

// numberInstructions walks order and assigns every instruction a life
// position, phis first within each block, then non-phis, counting
// 0, 2, 4, ... across the whole graph.
func numberInstructions(order []*ssa.BasicBlock) {
	pos := 0
	number := func(i *ssa.Instruction) {
		if i == nil {
			return
		}
		i.SetLifePosition(pos)
		pos += 2
	}
	for _, b := range order {
		for i := b.FirstPhi(); i != nil && i.Kind() == ssa.KPhi; i = i.Next() {
			number(i)
		}
		for i := b.FirstInst(); i != nil; i = i.Next() {
			number(i)
		}
	}
}
