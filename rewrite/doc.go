/*
Package rewrite implements tail-recursion elimination for the Tailor script
language.

The package recognizes two narrowly-constrained tail-recursive function
shapes and rewrites them into equivalent iterative loops:

Guarded shape — a guard returning the base case, followed by a tail call:

    def factorial(n, acc) {
        if n <= 1 { return acc }
        return factorial(n - 1, acc * n)
    }

Dispatch shape — a single match statement in which exactly one arm performs
the tail call and all other arms return base cases:

    def factorial(n, acc) {
        match n {
            case 0 | 1 { return acc }
            case _     { return factorial(n - 1, acc * n) }
        }
    }

Both are rewritten into a 'while true' loop in which the tail call becomes a
simultaneous parameter rebind: all argument expressions are evaluated against
the pre-rebind parameter values, then the parameters are updated as a group.
Functions that do not match a shape exactly are left untransformed; the
transformation pipeline degrades silently and never fails a caller over an
unrecognized shape.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 The Tailor Project Authors

*/
package rewrite

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tailor.rewrite'.
func tracer() tracing.Trace {
	return tracing.Select("tailor.rewrite")
}
