package interp

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 The Tailor Project Authors

*/

import (
	"fmt"
	"strconv"

	"github.com/tailorlang/tailor/syntax"
)

// Runtime values are plain Go values: int64, string, bool, *Function and
// Builtin. The set is closed; the evaluator type-switches exhaustively.

// Function is an executable unit: a function body bound against the
// environment it was materialized in. Name and Doc carry the metadata of the
// original declaration.
type Function struct {
	Name   string
	Doc    string
	Params []string
	Body   []syntax.Stmt
	Env    *Env // environment handle the body resolves against

	decl      *syntax.FuncDecl
	rewritten bool
}

// String is a debug Stringer for functions.
func (f *Function) String() string {
	return fmt.Sprintf("<function %s/%d>", f.Name, len(f.Params))
}

// Arity returns the number of parameters.
func (f *Function) Arity() int {
	return len(f.Params)
}

// Decl returns the declaration this function was materialized from.
func (f *Function) Decl() *syntax.FuncDecl {
	return f.decl
}

// Transformed reports whether the function's body is the result of a
// tail-recursion rewrite. Diagnostic only; callers observe no behavioral
// difference.
func (f *Function) Transformed() bool {
	return f.rewritten
}

// Builtin is a function implemented in Go, callable from script code.
type Builtin struct {
	Name string
	Call func(args []interface{}) (interface{}, error)
}

// String is a debug Stringer for builtins.
func (b *Builtin) String() string {
	return fmt.Sprintf("<builtin %s>", b.Name)
}

// --- Value helpers -----------------------------------------------------------

// FormatValue renders a runtime value for display.
func FormatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case int64:
		return strconv.FormatInt(val, 10)
	case string:
		return strconv.Quote(val)
	case bool:
		return strconv.FormatBool(val)
	case fmt.Stringer:
		return val.String()
	}
	return fmt.Sprintf("%v", v)
}

// valuesEqual compares two runtime values; used by match arms and the '=='
// and '!=' operators.
func valuesEqual(a, b interface{}) bool {
	return a == b
}
