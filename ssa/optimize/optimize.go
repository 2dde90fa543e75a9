// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package optimize implements a small fixed-point peephole and
// constant-folding pass over an ssa.Graph. Grounded on the original
// Optimizer::Run/TryConstantFolding/TryPeephole: every rewrite redirects
// an instruction's uses to a replacement value and removes it, rather
// than changing the rewritten instruction in place.
package optimize

import (
	"github.com/kfuehnel/ssacore/ssa"
	"github.com/sirupsen/logrus"
)

// Run rewrites g to a fixed point: every block is scanned repeatedly,
// folding binary instructions with two constant operands and applying
// the peephole identities below, until a full pass makes no change. It
// returns the number of instructions removed.
func Run(g *ssa.Graph) int {
	removed := 0
	b := ssa.NewBuilder(g)

	changed := true
	for changed {
		changed = false
		for _, bb := range g.Blocks {
			inst := bb.FirstInst()
			for inst != nil {
				next := inst.Next()

				b.SetInsertPoint(bb)
				if tryConstantFolding(g, b, inst) || tryPeephole(g, b, inst) {
					bb.RemoveInst(inst)
					changed = true
					removed++
				}

				inst = next
			}
		}
	}

	debugLog(g, "optimize: run complete", map[string]any{"removed": removed})
	return removed
}

// tryConstantFolding replaces inst with a fresh Const carrying the
// folded result if inst is Mul, Or, or AShr with two Const operands.
func tryConstantFolding(g *ssa.Graph, b *ssa.Builder, inst *ssa.Instruction) bool {
	if !inst.Kind().IsBinary() {
		return false
	}
	lhs, rhs := inst.Inputs()[0], inst.Inputs()[1]
	if lhs.Kind() != ssa.KConst || rhs.Kind() != ssa.KConst {
		return false
	}

	v1, v2 := lhs.ConstValue(), rhs.ConstValue()
	var res int64
	switch inst.Kind() {
	case ssa.KMul:
		res = v1 * v2
	case ssa.KOr:
		res = v1 | v2
	case ssa.KAShr:
		res = v1 >> uint64(v2)
	default:
		return false
	}

	folded := b.CreateConstant(inst.Type(), res)
	g.ReplaceAllUses(inst, folded)
	return true
}

// tryPeephole applies the identities that don't require both operands
// constant: x*1->x, x*0->0, x|x->x, x|0->x, x|-1->-1, x>>0->x, 0>>x->0.
// Only the right-hand operand is inspected except for AShr's left-zero
// case, matching the original's asymmetric treatment of a
// non-commutative operator.
func tryPeephole(g *ssa.Graph, b *ssa.Builder, inst *ssa.Instruction) bool {
	if !inst.Kind().IsBinary() {
		return false
	}
	lhs, rhs := inst.Inputs()[0], inst.Inputs()[1]
	rhsConst := rhs.Kind() == ssa.KConst
	lhsConst := lhs.Kind() == ssa.KConst

	switch inst.Kind() {
	case ssa.KMul:
		if rhsConst {
			switch rhs.ConstValue() {
			case 1:
				g.ReplaceAllUses(inst, lhs)
				return true
			case 0:
				zero := b.CreateConstant(inst.Type(), 0)
				g.ReplaceAllUses(inst, zero)
				return true
			}
		}

	case ssa.KOr:
		if lhs == rhs {
			g.ReplaceAllUses(inst, lhs)
			return true
		}
		if rhsConst {
			switch rhs.ConstValue() {
			case 0:
				g.ReplaceAllUses(inst, lhs)
				return true
			case -1:
				g.ReplaceAllUses(inst, rhs)
				return true
			}
		}

	case ssa.KAShr:
		if rhsConst && rhs.ConstValue() == 0 {
			g.ReplaceAllUses(inst, lhs)
			return true
		}
		if lhsConst && lhs.ConstValue() == 0 {
			g.ReplaceAllUses(inst, lhs)
			return true
		}
	}

	return false
}

func debugLog(g *ssa.Graph, msg string, fields map[string]any) {
	if g.Log == nil {
		return
	}
	g.Log.WithFields(logrus.Fields(fields)).Debug(msg)
}
