// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ssatest is a graph-construction helper shared by every
// analysis package's tests. It mirrors the teacher's
// regalloc_bench_test.go Bloc/Valu/Goto convention and scc_test.go's
// "fut fun" block-name map — a small DSL lets a test name blocks A..K
// the way the spec's end-to-end scenarios (§8) do, without pulling in
// a textual IR parser (deliberately out of scope per spec.md §1).
package ssatest

import (
	"testing"

	"github.com/kfuehnel/ssacore/ssa"
)

// CFG builds a graph from an adjacency list: edges[name] lists name's
// successors in order (empty for a block that ends in Ret, one entry
// for a Jump, two for an If). order fixes block creation order, and
// order[0] becomes the entry. The returned map lets tests refer to
// blocks by the same letters the spec's scenarios use.
//
// Blocks with two successors get a synthetic Int32 parameter as their
// If condition; the condition's identity does not matter to dominator,
// loop, or liveness structure, only the CFG shape does.
func CFG(t testing.TB, order []string, edges map[string][]string) (*ssa.Graph, map[string]*ssa.BasicBlock) {
	t.Helper()

	g := ssa.NewGraph()
	b := ssa.NewBuilder(g)

	blocks := make(map[string]*ssa.BasicBlock, len(order))
	for _, name := range order {
		blocks[name] = g.NewBlock()
	}
	if len(order) > 0 {
		g.SetEntry(blocks[order[0]])
	}

	for _, name := range order {
		bb := blocks[name]
		b.SetInsertPoint(bb)
		succs := edges[name]
		switch len(succs) {
		case 0:
			b.CreateReturn(nil)
		case 1:
			target, ok := blocks[succs[0]]
			if !ok {
				t.Fatalf("ssatest.CFG: unknown successor %q of block %q", succs[0], name)
			}
			b.CreateJump(target)
		case 2:
			tt, ok1 := blocks[succs[0]]
			ft, ok2 := blocks[succs[1]]
			if !ok1 || !ok2 {
				t.Fatalf("ssatest.CFG: unknown successor of block %q in %v", name, succs)
			}
			cond := b.CreateParameter(ssa.TypeInt32)
			b.CreateIf(cond, tt, ft)
		default:
			t.Fatalf("ssatest.CFG: block %q has %d successors, want 0, 1, or 2", name, len(succs))
		}
	}

	return g, blocks
}

// Names inverts a block map built by CFG, for assertions that want to
// print a human block name instead of a numeric id.
func Names(blocks map[string]*ssa.BasicBlock) map[*ssa.BasicBlock]string {
	out := make(map[*ssa.BasicBlock]string, len(blocks))
	for name, b := range blocks {
		out[b] = name
	}
	return out
}
