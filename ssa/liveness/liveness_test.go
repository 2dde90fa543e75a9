// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package liveness_test

import (
	"testing"

	"github.com/kfuehnel/ssacore/ssa"
	"github.com/kfuehnel/ssacore/ssa/liveness"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildFactorialLoop builds a self-looping accumulator block: a
// single block that is simultaneously its own header, body, and
// latch. This covers the single-block loop boundary case, distinct
// from the header/body/exit scenario TestLivenessResultPhiSpansLoopBody
// below.
//
//	entry:  n = Param, acc0 = Const 1, Jump loop
//	loop:   acc = Phi [entry: acc0], [loop: mul], n2 = Phi [entry: n], [loop: mul]
//	        mul = acc * n2
//	        cmp = Cmp n2, 0
//	        If cmp, loop, exit
//	exit:   Ret mul
func buildFactorialLoop(t *testing.T) (*ssa.Graph, map[string]*ssa.BasicBlock, *ssa.Instruction) {
	t.Helper()
	g := ssa.NewGraph()
	b := ssa.NewBuilder(g)

	entry := g.NewBlock()
	loop := g.NewBlock()
	exit := g.NewBlock()
	g.SetEntry(entry)

	b.SetInsertPoint(entry)
	n := b.CreateParameter(ssa.TypeInt32)
	accInit := b.CreateConstant(ssa.TypeInt32, 1)
	b.CreateJump(loop)

	b.SetInsertPoint(loop)
	accPhi := b.CreatePhi(ssa.TypeInt32)
	nPhi := b.CreatePhi(ssa.TypeInt32)
	b.AddPhiInput(accPhi, entry, accInit)
	b.AddPhiInput(nPhi, entry, n)
	mul := b.CreateMul(accPhi, nPhi)
	zero := b.CreateConstant(ssa.TypeInt32, 0)
	cmp := b.CreateCmp(nPhi, zero)
	b.AddPhiInput(accPhi, loop, mul)
	b.AddPhiInput(nPhi, loop, mul) // placeholder decrement stands in as n2's loop value
	b.CreateIf(cmp, loop, exit)

	b.SetInsertPoint(exit)
	b.CreateReturn(mul)

	return g, map[string]*ssa.BasicBlock{"entry": entry, "loop": loop, "exit": exit}, mul
}

func TestLivenessNumbersInstructionsAtEvenPositionsPhisFirst(t *testing.T) {
	g, blocks, _ := buildFactorialLoop(t)
	result := liveness.Compute(g)

	require.NotEmpty(t, result.Order)

	seen := map[int]bool{}
	loop := blocks["loop"]
	phi := loop.FirstPhi()
	require.NotNil(t, phi)
	for i := phi; i != nil && i.Kind() == ssa.KPhi; i = i.Next() {
		assert.Equal(t, 0, i.LifePosition()%2, "phi positions must be even")
		assert.False(t, seen[i.LifePosition()], "positions must be distinct")
		seen[i.LifePosition()] = true
	}
	for i := loop.FirstInst(); i != nil; i = i.Next() {
		assert.Equal(t, 0, i.LifePosition()%2, "instruction positions must be even")
		assert.False(t, seen[i.LifePosition()], "positions must be distinct")
		seen[i.LifePosition()] = true
	}
}

func TestLivenessLoopCarriedMulSpansTheBackEdge(t *testing.T) {
	g, blocks, mul := buildFactorialLoop(t)
	result := liveness.Compute(g)

	iv := result.GetInterval(mul.ID())
	require.NotNil(t, iv)
	require.NotEmpty(t, iv.Ranges)

	loop := blocks["loop"]
	ifInst := loop.Terminator()
	require.Equal(t, ssa.KIf, ifInst.Kind())

	last := iv.Ranges[len(iv.Ranges)-1]
	assert.GreaterOrEqual(t, last.End, ifInst.LifePosition()+2)
}

// buildCountdownLoop builds the literal header/body/exit topology:
//
//	entry:  n = Param, acc0 = Const 1, Jump header
//	header: acc = Phi [entry: acc0], [body: mul]
//	        n2  = Phi [entry: n],    [body: dec]
//	        cmp = Cmp n2, 0
//	        If cmp, body, exit
//	body:   mul = acc * n2
//	        dec = n2 + (-1)
//	        Jump header
//	exit:   Ret acc
//
// header->{body,exit}, body->header (the loop's only back edge), with
// a real decrement feeding n2's body-edge input.
func buildCountdownLoop(t *testing.T) (*ssa.Graph, map[string]*ssa.BasicBlock, *ssa.Instruction) {
	t.Helper()
	g := ssa.NewGraph()
	b := ssa.NewBuilder(g)

	entry := g.NewBlock()
	header := g.NewBlock()
	body := g.NewBlock()
	exit := g.NewBlock()
	g.SetEntry(entry)

	b.SetInsertPoint(entry)
	n := b.CreateParameter(ssa.TypeInt32)
	accInit := b.CreateConstant(ssa.TypeInt32, 1)
	b.CreateJump(header)

	b.SetInsertPoint(header)
	accPhi := b.CreatePhi(ssa.TypeInt32)
	nPhi := b.CreatePhi(ssa.TypeInt32)
	b.AddPhiInput(accPhi, entry, accInit)
	b.AddPhiInput(nPhi, entry, n)
	zero := b.CreateConstant(ssa.TypeInt32, 0)
	cmp := b.CreateCmp(nPhi, zero)
	b.CreateIf(cmp, body, exit)

	b.SetInsertPoint(body)
	mul := b.CreateMul(accPhi, nPhi)
	negOne := b.CreateConstant(ssa.TypeInt32, -1)
	dec := b.CreateAdd(nPhi, negOne)
	b.AddPhiInput(accPhi, body, mul)
	b.AddPhiInput(nPhi, body, dec)
	b.CreateJump(header)

	b.SetInsertPoint(exit)
	b.CreateReturn(accPhi)

	blocks := map[string]*ssa.BasicBlock{"entry": entry, "header": header, "body": body, "exit": exit}
	return g, blocks, accPhi
}

// TestLivenessResultPhiSpansLoopBody is the literal spec scenario: the
// header/body/exit topology with a real decrement, asserting the
// result-phi's interval spans [header.first, body.last+2) at minimum.
func TestLivenessResultPhiSpansLoopBody(t *testing.T) {
	g, blocks, accPhi := buildCountdownLoop(t)
	result := liveness.Compute(g)

	iv := result.GetInterval(accPhi.ID())
	require.NotNil(t, iv)
	require.NotEmpty(t, iv.Ranges)

	header := blocks["header"]
	body := blocks["body"]
	headerFirst := header.FirstPhi().LifePosition()
	bodyLastPlus2 := body.LastInst().LifePosition() + 2

	covered := false
	for _, r := range iv.Ranges {
		if r.Begin <= headerFirst && r.End >= bodyLastPlus2 {
			covered = true
		}
	}
	assert.True(t, covered, "expected a range spanning [%d, %d), got %+v", headerFirst, bodyLastPlus2, iv.Ranges)
}

func TestLivenessOnEntrylessGraphIsEmptyButUsable(t *testing.T) {
	g := ssa.NewGraph()
	result := liveness.Compute(g)
	assert.Empty(t, result.Order)
	assert.Nil(t, result.GetInterval(0))
}

func TestIntervalAddRangeMergesOverlaps(t *testing.T) {
	iv := &liveness.Interval{RegID: 1}
	iv.AddRange(0, 4)
	iv.AddRange(4, 6)
	require.Len(t, iv.Ranges, 1)
	assert.Equal(t, liveness.Range{Begin: 0, End: 6}, iv.Ranges[0])

	iv.AddRange(10, 12)
	require.Len(t, iv.Ranges, 2)
}

func TestIntervalSetFromRetargetsStart(t *testing.T) {
	iv := &liveness.Interval{RegID: 2}
	iv.SetFrom(8)
	require.Len(t, iv.Ranges, 1)
	assert.Equal(t, 8, iv.Ranges[0].Begin)

	iv.AddRange(8, 10)
	iv.SetFrom(6)
	assert.Equal(t, 6, iv.Ranges[len(iv.Ranges)-1].Begin)
}
