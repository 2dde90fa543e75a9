// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package loopnest

import (
	"testing"

	"github.com/kfuehnel/ssacore/ssa/dom"
	"github.com/kfuehnel/ssacore/ssatest"
	"github.com/stretchr/testify/assert"
)

// TestLoopBodiesMatchKosarajuSCCs cross-checks that every natural loop
// body Build finds equals the Kosaraju-Sharir SCC containing its
// header, on a reducible test graph with no loop nesting (the
// correspondence only holds loop-for-loop when one SCC doesn't
// contain multiple nested natural loops). It lives in package
// loopnest (rather than loopnest_test) since kosarajuSCCs is internal
// — it backs this cross-check only, not production loop discovery.
func TestLoopBodiesMatchKosarajuSCCs(t *testing.T) {
	g, _ := ssatest.CFG(t, []string{"A", "B", "C", "D"}, map[string][]string{
		"A": {"B"},
		"B": {"C"},
		"C": {"B", "D"},
		"D": {},
	})

	sccOf := map[int][]int{}
	for _, scc := range kosarajuSCCs(g) {
		ids := make([]int, len(scc))
		for i, b := range scc {
			ids[i] = int(b.ID())
		}
		for _, id := range ids {
			sccOf[id] = ids
		}
	}

	nest := Build(g, dom.Build(g))

	for _, l := range nest.Loops {
		scc := sccOf[int(l.Header.ID())]
		assert.Len(t, l.Blocks, len(scc), "loop body for header BB%d should match its SCC", l.Header.ID())
		for _, id := range scc {
			member := false
			for bb := range l.Blocks {
				if int(bb.ID()) == id {
					member = true
					break
				}
			}
			assert.True(t, member, "SCC member %d missing from loop body", id)
		}
	}
}
