package interp

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 The Tailor Project Authors

*/

import (
	"github.com/tailorlang/tailor/syntax"
)

// Materialize binds a function declaration against an explicit environment
// handle and returns the executable function. Name and docstring metadata of
// the declaration are carried over onto the executable unit.
//
// The function is also defined under its own name in env, so that
// self-references inside the body (the untransformed recursive case) resolve
// to the materialized unit.
//
// Materialize never mutates a previously materialized function: re-binding a
// name creates a new *Function.
func Materialize(decl *syntax.FuncDecl, env *Env) *Function {
	fn := &Function{
		Name:   decl.Name,
		Doc:    decl.Doc,
		Params: decl.Params,
		Body:   decl.Body,
		Env:    env,
		decl:   decl,
	}
	env.Define(decl.Name, fn)
	tracer().Debugf("materialized %s in %s", fn, env)
	return fn
}

// MaterializeRewritten is Materialize for declarations that are the output
// of a tail-recursion rewrite; the result reports Transformed() == true.
func MaterializeRewritten(decl *syntax.FuncDecl, env *Env) *Function {
	fn := Materialize(decl, env)
	fn.rewritten = true
	return fn
}

// MaterializeProgram materializes every declaration of a program into env,
// in declaration order, and returns the resulting functions.
func MaterializeProgram(prog *syntax.Program, env *Env) []*Function {
	fns := make([]*Function, 0, len(prog.Funcs))
	for _, decl := range prog.Funcs {
		fns = append(fns, Materialize(decl, env))
	}
	return fns
}
