/*
Package interp provides a small interpreter runtime for the Tailor script
language: lexical environments, runtime values and a tree-walking evaluator.

For a thorough discussion of an interpreter's runtime environment, refer to
"Language Implementation Patterns" by Terence Parr.

Environments

Environments hold name bindings and link back to a parent environment,
forming a tree. Function application pushes a fresh frame environment whose
parent is the environment the function was materialized against, so free
variables and globals resolve exactly as they would for the untransformed
source.

Materialization

Materialize binds a function declaration against an explicit environment
handle and yields an executable function value, preserving the original's
name and docstring.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 The Tailor Project Authors

*/
package interp

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tailor.interp'.
func tracer() tracing.Trace {
	return tracing.Select("tailor.interp")
}
