// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dom

import (
	"github.com/kfuehnel/ssacore/ssa"
	"github.com/sirupsen/logrus"
)

// debugLog is nil-safe: g.Log is optional, as in every analysis in
// this module tree (see ssa.debugLog).
func debugLog(g *ssa.Graph, msg string, fields map[string]any) {
	if g.Log == nil {
		return
	}
	g.Log.WithFields(logrus.Fields(fields)).Debug(msg)
}
