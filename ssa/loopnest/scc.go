// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package loopnest

import "github.com/kfuehnel/ssacore/ssa"

// kosarajuSCCs computes the strongly connected components of g's
// control-flow graph via Kosaraju-Sharir: a postorder DFS on the
// forward graph, then a BFS on reversed edges in reverse postorder.
// Unreachable blocks are excluded.
//
// This is not part of the production loop-discovery algorithm (Build
// above uses the back-edge/dominance formulation the spec mandates);
// it exists only so this package's tests can cross-check that every
// natural loop body Build finds is exactly the Kosaraju-Sharir SCC
// closure on reducible test graphs, the way the teacher's scc.go
// verifies its own SCC partition against hand-built CFGs in
// scc_test.go.
func kosarajuSCCs(g *ssa.Graph) [][]*ssa.BasicBlock {
	if g.Entry == nil {
		return nil
	}

	po := postorder(g)

	reachable := g.AllocBoolSlice(g.NumBlocks())
	defer g.FreeBoolSlice(reachable)
	for _, b := range po {
		reachable[b.ID()] = true
	}

	seen := g.AllocBoolSlice(g.NumBlocks())
	defer g.FreeBoolSlice(seen)
	var result [][]*ssa.BasicBlock

	for i := len(po) - 1; i >= 0; i-- {
		leader := po[i]
		if seen[leader.ID()] {
			continue
		}

		var scc []*ssa.BasicBlock
		queue := []*ssa.BasicBlock{leader}
		seen[leader.ID()] = true

		for len(queue) > 0 {
			b := queue[0]
			queue = queue[1:]
			scc = append(scc, b)

			for _, pred := range b.Preds() {
				if reachable[pred.ID()] && !seen[pred.ID()] {
					seen[pred.ID()] = true
					queue = append(queue, pred)
				}
			}
		}

		result = append(result, scc)
	}

	return result
}

// postorder computes a DFS postorder of blocks reachable from the
// entry, using an explicit stack (see the dom package's frame for the
// same discipline applied to dominator construction).
func postorder(g *ssa.Graph) []*ssa.BasicBlock {
	seen := g.AllocBoolSlice(g.NumBlocks())
	defer g.FreeBoolSlice(seen)
	order := make([]*ssa.BasicBlock, 0, len(g.Blocks))

	seen[g.Entry.ID()] = true
	stack := make([]frame, 0, 32)
	stack = append(stack, frame{b: g.Entry})
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		succs := top.b.Succs()
		if top.next >= len(succs) {
			order = append(order, top.b)
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
	return order
}
