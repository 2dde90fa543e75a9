// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package loopnest

import (
	"github.com/kfuehnel/ssacore/ssa"
	"github.com/sirupsen/logrus"
)

func debugLog(g *ssa.Graph, msg string, fields map[string]any) {
	if g.Log == nil {
		return
	}
	g.Log.WithFields(logrus.Fields(fields)).Debug(msg)
}
