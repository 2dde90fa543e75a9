// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ssa

import "github.com/sirupsen/logrus"

// debugLog logs msg at Debug level with fields, if and only if log is
// non-nil. The analysis packages (ssa/dom, ssa/loopnest, ssa/liveness,
// ssa/optimize) cannot call this unexported helper; each carries its
// own copy that reads Graph.Log the same way. It is the direct descendant of the
// teacher's "if f.pass.debug > N { fmt.Printf(...) }" guard (dom.go,
// likelyadjust.go), generalized so the level check lives in the
// logger's configuration instead of a hand-rolled integer threshold.
func debugLog(log *logrus.Entry, msg string, fields logrus.Fields) {
	if log == nil {
		return
	}
	log.WithFields(fields).Debug(msg)
}
