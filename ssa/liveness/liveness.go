// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package liveness computes a linear block order, assigns each
// instruction a "life position" in that order, and builds live
// intervals — a union of half-open ranges per trackable value, the
// coordinate system a linear-scan register allocator would consume.
//
// It deliberately does not reuse the ssa/dom or ssa/loopnest results:
// per spec §2, "Liveness consumes only the graph's CFG (and reorders
// blocks internally)" — its own back-edge/loop-body detection is
// local to the linear order it just built, not the dominance-based
// loop tree. Grounded on the original LivenessAnalysis.cpp for exact
// field semantics (loop-header extension, phi-input accounting at
// predecessors rather than at the header).
package liveness

import "github.com/kfuehnel/ssacore/ssa"

// Range is a half-open integer interval [Begin, End).
type Range struct {
	Begin, End int
}

// Interval is the live range of one trackable value: its register id
// (the producing instruction's id) plus an ordered, non-overlapping
// union of Ranges.
type Interval struct {
	RegID  ssa.ID
	Ranges []Range
}

// AddRange merges [from, to) into the interval: it extends the most
// recent range if they overlap or touch, else appends a new one. It is
// a no-op when from >= to.
func (iv *Interval) AddRange(from, to int) {
	if from >= to {
		return
	}
	if len(iv.Ranges) == 0 {
		iv.Ranges = append(iv.Ranges, Range{from, to})
		return
	}
	last := &iv.Ranges[len(iv.Ranges)-1]
	if from <= last.End && to >= last.Begin {
		if from < last.Begin {
			last.Begin = from
		}
		if to > last.End {
			last.End = to
		}
		return
	}
	iv.Ranges = append(iv.Ranges, Range{from, to})
}

// SetFrom retargets the current (most recent) range's start to from.
// If the interval has no ranges yet, it starts a fresh two-position
// range [from, from+2).
func (iv *Interval) SetFrom(from int) {
	if len(iv.Ranges) > 0 {
		iv.Ranges[len(iv.Ranges)-1].Begin = from
		return
	}
	iv.Ranges = append(iv.Ranges, Range{from, from + 2})
}

// Result is the output of one liveness computation: the linear block
// order used to number instructions, and the interval built for every
// trackable instruction id.
type Result struct {
	Order     []*ssa.BasicBlock
	intervals map[ssa.ID]*Interval
}

// GetInterval returns the interval built for instruction id, or nil if
// id was never tracked (untrackable kind/type, or liveness has not
// run).
func (r *Result) GetInterval(id ssa.ID) *Interval {
	if r.intervals == nil {
		return nil
	}
	return r.intervals[id]
}

// Compute runs the full liveness pipeline on g: linear order,
// instruction numbering, then interval construction. An empty graph or
// a graph with no entry yields an empty, usable Result — liveness
// never fails (§4.4).
func Compute(g *ssa.Graph) *Result {
	r := &Result{intervals: map[ssa.ID]*Interval{}}
	if g.Entry == nil {
		return r
	}

	r.Order = computeLinearOrder(g)
	numberInstructions(r.Order)
	buildIntervals(r.Order, r.intervals)

	debugLog(g, "liveness: computed", map[string]any{"blocks": len(r.Order), "values": len(r.intervals)})
	return r
}
