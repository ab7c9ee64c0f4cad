/*
Package tailor is a source-to-source transformation toolbox for the small
Tailor script language.

Tailor recognizes two narrowly-constrained tail-recursive function shapes
and rewrites them into equivalent iterative loops, and it wraps arbitrary
value-producing iteration routines into resumable, serializable state
wrappers. Package structure is as follows:

■ scanner: Package scanner defines a Tokenizer interface together with a
lexmachine-backed scanner implementation.

■ syntax: Package syntax implements the AST node types of the Tailor script
language, a recursive-descent parser and an unparser.

■ rewrite: Package rewrite implements the shape matcher and loop synthesizer
for tail-recursive functions, plus the transformation pipeline.

■ interp: Package interp provides environments, values and a tree-walking
evaluator; it materializes syntax trees into executable functions.

■ replay: Package replay implements resumable iteration wrappers with a
replay-based restore and a portable state encoding.

The base package contains lexical data types which are used throughout all
the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 The Tailor Project Authors

*/
package tailor
