// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package liveness

import "github.com/kfuehnel/ssacore/ssa"

// buildIntervals implements §4.4's interval-construction pass: blocks
// are processed in reverse linear order, each maintaining a live set
// of trackable instruction ids seeded from its successors (plus phi
// selections for the b->succ edge), extended backwards through the
// block's instructions, and — for a loop header — stretched out to
// cover the loop's full extent using the furthest latch found while
// scanning for back edges in the same order.
func buildIntervals(order []*ssa.BasicBlock, intervals map[ssa.ID]*Interval) {
	idx := make(map[*ssa.BasicBlock]int, len(order))
	for i, b := range order {
		idx[b] = i
	}

	// loopHeaders[h] is the furthest-by-position latch of any back
	// edge landing on h in this order; used only to know how far past
	// h a still-live value must be extended.
	loopHeaders := make(map[*ssa.BasicBlock]*ssa.BasicBlock)
	for _, b := range order {
		for _, succ := range b.Succs() {
			j, ok := idx[succ]
			if !ok || j > idx[b] {
				continue
			}
			cur, have := loopHeaders[succ]
			if !have || idx[b] > idx[cur] {
				loopHeaders[succ] = b
			}
		}
	}

	ensure := func(id ssa.ID) *Interval {
		iv, ok := intervals[id]
		if !ok {
			iv = &Interval{RegID: id}
			intervals[id] = iv
		}
		return iv
	}

	liveIn := make(map[*ssa.BasicBlock]map[ssa.ID]bool, len(order))

	for i := len(order) - 1; i >= 0; i-- {
		b := order[i]

		first := b.FirstPhi()
		if first == nil {
			first = b.FirstInst()
		}
		if first == nil {
			continue // empty block: nothing to track
		}
		last := b.LastInst()
		if last == nil {
			last = b.LastPhi()
		}
		bFrom := first.LifePosition()
		bTo := last.LifePosition() + 2

		live := make(map[ssa.ID]bool)
		for _, succ := range b.Succs() {
			for id := range liveIn[succ] {
				live[id] = true
			}
			for phi := succ.FirstPhi(); phi != nil && phi.Kind() == ssa.KPhi; phi = phi.Next() {
				if v := phi.ValueForPred(b); v != nil && v.IsTrackable() {
					live[v.ID()] = true
				}
			}
		}

		for id := range live {
			ensure(id).AddRange(bFrom, bTo)
		}

		for inst := b.LastInst(); inst != nil && inst.Kind() != ssa.KPhi; inst = inst.Prev() {
			if inst.IsTrackable() {
				ensure(inst.ID()).SetFrom(inst.LifePosition())
				delete(live, inst.ID())
			}
			for _, in := range inst.Inputs() {
				if in.IsTrackable() {
					ensure(in.ID()).AddRange(bFrom, inst.LifePosition())
					live[in.ID()] = true
				}
			}
		}

		var headerPhis []ssa.ID
		for phi := b.FirstPhi(); phi != nil && phi.Kind() == ssa.KPhi; phi = phi.Next() {
			if phi.IsTrackable() {
				delete(live, phi.ID())
				ensure(phi.ID()).SetFrom(bFrom)
				headerPhis = append(headerPhis, phi.ID())
			}
		}

		if latch, ok := loopHeaders[b]; ok {
			end := latch.LastInst()
			if end == nil {
				end = latch.LastPhi()
			}
			loopEndPos := bTo
			if end != nil {
				loopEndPos = end.LifePosition() + 2
			}
			for id := range live {
				ensure(id).AddRange(bFrom, loopEndPos)
			}
			// A header's own phis never survive into live (they are
			// removed just above), but they are exactly the values a
			// loop-carried back edge most needs stretched across the
			// whole body, so they are extended unconditionally here.
			for _, id := range headerPhis {
				ensure(id).AddRange(bFrom, loopEndPos)
			}
		}

		liveIn[b] = live
	}
}
