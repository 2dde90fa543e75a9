// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ssa

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes a human-diagnostic textual dump of g to w, one block
// at a time. The format is read-only and documented for debugging
// only: its exact bytes are not a stable interface (only the overall
// structure — one line per instruction, predecessors/successors
// listed per block — is meant to be relied on).
//
// Grounded on golang.org/x/tools/go/ssa's WriteTo/String pair and the
// original BasicBlock::Dump/Dump.cpp, adapted to this IR's closed
// instruction kind set.
func Fprint(w io.Writer, g *Graph) {
	for _, b := range g.Blocks {
		fmt.Fprintf(w, "BB%d\n", b.id)
		if len(b.preds) > 0 || len(b.succs) > 0 {
			fmt.Fprintf(w, "  ; preds: %s  ; succs: %s\n", blockList(b.preds), blockList(b.succs))
		}
		b.forEachInst(func(inst *Instruction) {
			fmt.Fprintf(w, "  %s\n", instString(inst))
		})
	}
}

// Dump returns the same text Fprint writes, as a string.
func Dump(g *Graph) string {
	var sb strings.Builder
	Fprint(&sb, g)
	return sb.String()
}

func blockList(bs []*BasicBlock) string {
	parts := make([]string, len(bs))
	for i, b := range bs {
		parts[i] = fmt.Sprintf("BB%d", b.id)
	}
	return strings.Join(parts, " ")
}

func instString(inst *Instruction) string {
	lhs := fmt.Sprintf("v%d%s", inst.id, inst.typ)
	switch inst.kind {
	case KConst:
		return fmt.Sprintf("%s = Const %d", lhs, inst.constValue)
	case KParam:
		return fmt.Sprintf("%s = Param", lhs)
	case KJump:
		return fmt.Sprintf("Jump BB%d", inst.jumpTarget.id)
	case KIf:
		return fmt.Sprintf("If v%d, BB%d, BB%d", inst.inputs[0].id, inst.ifTrue.id, inst.ifFalse.id)
	case KPhi:
		pairs := make([]string, len(inst.inputs))
		for i, v := range inst.inputs {
			pairs[i] = fmt.Sprintf("[ BB%d, v%d ]", inst.phiBlocks[i].id, v.id)
		}
		return fmt.Sprintf("%s = Phi %s", lhs, strings.Join(pairs, ", "))
	case KRet:
		if len(inst.inputs) == 0 {
			return "Ret"
		}
		return fmt.Sprintf("Ret v%d", inst.inputs[0].id)
	default: // binary: Add, Mul, Cmp, Or, AShr
		return fmt.Sprintf("%s = %s v%d, v%d", lhs, inst.kind, inst.inputs[0].id, inst.inputs[1].id)
	}
}
