// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ssa

// scratchCache is a tiny pool of reusable []bool scratch slices,
// grounded on the teacher's f.Cache.allocBoolSlice/freeBoolSlice
// (dom.go, regalloc.go): loop and liveness passes need a per-block
// "seen"/"reachable" array for a single DFS, and re-running any of
// them (the spec requires idempotent re-runs) would otherwise
// reallocate that array every time.
type scratchCache struct {
	boolSlices [][]bool
}

// allocBoolSlice returns a []bool of length n, all false. The slice
// must be returned via freeBoolSlice when the caller is done with it.
func (c *scratchCache) allocBoolSlice(n int) []bool {
	for i, s := range c.boolSlices {
		if cap(s) >= n {
			c.boolSlices[i] = c.boolSlices[len(c.boolSlices)-1]
			c.boolSlices = c.boolSlices[:len(c.boolSlices)-1]
			s = s[:n]
			for j := range s {
				s[j] = false
			}
			return s
		}
	}
	return make([]bool, n)
}

// freeBoolSlice returns s to the pool for reuse.
func (c *scratchCache) freeBoolSlice(s []bool) {
	c.boolSlices = append(c.boolSlices, s)
}

// AllocBoolSlice allocates a reusable []bool of length n from g's
// scratch cache.
func (g *Graph) AllocBoolSlice(n int) []bool { return g.scratch.allocBoolSlice(n) }

// FreeBoolSlice returns s, previously returned by AllocBoolSlice, to
// g's scratch cache.
func (g *Graph) FreeBoolSlice(s []bool) { g.scratch.freeBoolSlice(s) }
