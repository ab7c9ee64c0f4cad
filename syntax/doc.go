/*
Package syntax implements the abstract syntax of the Tailor script language.

The node types form a closed set of tagged variants: the statement kinds
If, Return, Match, While, Assign and Expr, and a handful of expression
kinds. Consumers walk trees with exhaustive type switches; there are no
open-ended node hierarchies.

The package also provides a recursive-descent parser over a lexmachine
token stream, and an unparser which renders a tree back into canonical
source text.

Trees are owned by whichever component currently transforms them. After
parsing, statement nodes are never mutated; transformations build new
statement nodes and may share (immutable) expression subtrees with the
original.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 The Tailor Project Authors

*/
package syntax

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tailor.syntax'.
func tracer() tracing.Trace {
	return tracing.Select("tailor.syntax")
}
