// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package loopnest_test

import (
	"testing"

	"github.com/kfuehnel/ssacore/ssa/dom"
	"github.com/kfuehnel/ssacore/ssa/loopnest"
	"github.com/kfuehnel/ssacore/ssatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleLoopBody(t *testing.T) {
	g, blocks := ssatest.CFG(t, []string{"A", "B", "C", "D"}, map[string][]string{
		"A": {"B"},
		"B": {"C"},
		"C": {"B", "D"},
		"D": {},
	})
	doms := dom.Build(g)
	nest := loopnest.Build(g, doms)

	require.Len(t, nest.Loops, 1)
	l := nest.Loops[0]
	assert.Equal(t, blocks["B"], l.Header)
	assert.True(t, l.Contains(blocks["B"]))
	assert.True(t, l.Contains(blocks["C"]))
	assert.False(t, l.Contains(blocks["A"]))
	assert.False(t, l.Contains(blocks["D"]))
	assert.Equal(t, nest.Root, l.Parent)
}

func TestSelfLoop(t *testing.T) {
	g, blocks := ssatest.CFG(t, []string{"A", "B", "C"}, map[string][]string{
		"A": {"B"},
		"B": {"B", "C"},
		"C": {},
	})
	doms := dom.Build(g)
	nest := loopnest.Build(g, doms)

	require.Len(t, nest.Loops, 1)
	assert.Equal(t, blocks["B"], nest.Loops[0].Header)
	assert.True(t, nest.Loops[0].Contains(blocks["B"]))
	assert.Len(t, nest.Loops[0].Blocks, 1)
}

// TestIrreducibleCrossEdgeIgnored builds a cross edge whose target does
// not dominate its source (a join reached two ways, with an edge C->B
// from the later-visited path into the already finished earlier one)
// and checks it is not mistaken for a loop.
func TestIrreducibleCrossEdgeIgnored(t *testing.T) {
	g, _ := ssatest.CFG(t, []string{"A", "B", "C", "D"}, map[string][]string{
		"A": {"B", "C"},
		"B": {"D"},
		"C": {"B", "D"},
		"D": {},
	})
	doms := dom.Build(g)
	nest := loopnest.Build(g, doms)

	assert.Empty(t, nest.Loops)
}

// TestIrreducibleBackToGrayEdgeIgnored builds a graph where a
// currently-open (gray) DFS ancestor is targeted by an edge from a
// descendant, but the target does not dominate the source: both B and
// C reach D independently, so D's idom is A, not B. The D->B edge must
// not be treated as a loop back edge.
func TestIrreducibleBackToGrayEdgeIgnored(t *testing.T) {
	g, blocks := ssatest.CFG(t, []string{"A", "B", "C", "D"}, map[string][]string{
		"A": {"B", "C"},
		"B": {"D"},
		"C": {"D"},
		"D": {"B", "C"},
	})
	doms := dom.Build(g)

	require.False(t, doms.Dominates(blocks["B"], blocks["D"]))
	nest := loopnest.Build(g, doms)

	assert.Empty(t, nest.Loops)
}

func TestNestedLoopTree(t *testing.T) {
	// A -> B (outer header) -> C (inner header) -> D -> C (inner back
	// edge) ; D -> B (outer back edge) ; B -> E (exit).
	g, blocks := ssatest.CFG(t, []string{"A", "B", "C", "D", "E"}, map[string][]string{
		"A": {"B"},
		"B": {"C", "E"},
		"C": {"D"},
		"D": {"C", "B"},
		"E": {},
	})
	doms := dom.Build(g)
	nest := loopnest.Build(g, doms)

	require.Len(t, nest.Loops, 2)

	var outer, inner *loopnest.Loop
	for _, l := range nest.Loops {
		if l.Header == blocks["B"] {
			outer = l
		}
		if l.Header == blocks["C"] {
			inner = l
		}
	}
	require.NotNil(t, outer)
	require.NotNil(t, inner)

	assert.Equal(t, nest.Root, outer.Parent)
	assert.Equal(t, outer, inner.Parent)
	assert.True(t, outer.Contains(blocks["C"]))
	assert.True(t, outer.Contains(blocks["D"]))
	assert.True(t, inner.Contains(blocks["D"]))
	assert.False(t, inner.Contains(blocks["B"]))
}

func TestEmptyGraphHasOnlyRoot(t *testing.T) {
	g, _ := ssatest.CFG(t, nil, nil)
	doms := dom.Build(g)
	nest := loopnest.Build(g, doms)
	assert.Empty(t, nest.Loops)
	assert.NotNil(t, nest.Root)
}
