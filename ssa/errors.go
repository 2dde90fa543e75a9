// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ssa

import "github.com/pkg/errors"

// panicf raises a programmer-error precondition failure (§7: these are
// unrecoverable and terminate via the host's panic mechanism). Using
// errors.Errorf rather than fmt.Errorf/bare panic(string) attaches a
// stack trace to the panic value, which is what moby/moby's internal
// packages do before a panic crosses a goroutine boundary — useful
// here since a malformed-IR panic is otherwise hard to localize once
// it surfaces from deep inside a builder call chain.
func panicf(format string, args ...any) {
	panic(errors.Errorf(format, args...))
}
