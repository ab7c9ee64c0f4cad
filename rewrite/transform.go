package rewrite

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 The Tailor Project Authors

*/

import (
	"github.com/tailorlang/tailor/interp"
	"github.com/tailorlang/tailor/syntax"
)

// TailRecursive is the transformation pipeline entry point: it parses the
// source text, locates the named function, matches its body against the
// recognized shapes, synthesizes the loop replacement and materializes the
// result against env.
//
// Transformation failure is silent and non-fatal: if no shape matches (or
// the tail call's arity disagrees with the signature), the original function
// is materialized unchanged and returned without error. Only parse failures
// and a missing function name surface as errors.
func TailRecursive(sourceText string, functionName string, env *interp.Env) (*interp.Function, error) {
	decl, err := syntax.ParseFunction(sourceText, functionName)
	if err != nil {
		return nil, err
	}
	return Declaration(decl, env), nil
}

// Declaration transforms and materializes an already-parsed declaration.
// Like TailRecursive, it falls back to the untransformed function when the
// shape is not recognized.
func Declaration(decl *syntax.FuncDecl, env *interp.Env) *interp.Function {
	rewritten, ok := Function(decl)
	if !ok {
		tracer().Debugf("%s left untransformed", decl.Name)
		return interp.Materialize(decl, env)
	}
	return interp.MaterializeRewritten(rewritten, env)
}
