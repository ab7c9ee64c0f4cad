package rewrite

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 The Tailor Project Authors

*/

import (
	"errors"

	"github.com/tailorlang/tailor/syntax"
)

// ErrShapeNotRecognized reports that a function body matches neither of the
// two recognized tail-recursive shapes. The transformation pipeline recovers
// from it by leaving the function untransformed.
var ErrShapeNotRecognized = errors.New("function shape not recognized")

// ErrArityMismatch reports that rebind targets could not be aligned 1:1 with
// the function's parameters. Treated identically to ErrShapeNotRecognized by
// the pipeline.
var ErrArityMismatch = errors.New("tail-call arity disagrees with function signature")

// Synthesize builds the loop-based replacement body for a matched shape.
//
// Guarded shape:
//
//    while true {
//        if <condition> { return <base> }
//        <params> = <tail-call args>
//    }
//
// Dispatch shape:
//
//    while true {
//        match <subject> { … }     # arms intact, tail arm becomes the rebind
//    }
//
// The rebind is a single simultaneous assignment: the evaluator computes all
// right-hand sides against the pre-rebind parameter values before binding,
// which reproduces the original call semantics where the callee received a
// fully-evaluated fresh argument list.
//
// Statement nodes of the result are newly built; expression subtrees are
// shared with the (immutable) input.
func Synthesize(m Match, fn *syntax.FuncDecl) ([]syntax.Stmt, error) {
	switch m.Shape {
	case GuardedTailCall:
		rebind, err := rebindFromCall(m.TailCall, fn)
		if err != nil {
			return nil, err
		}
		guard := syntax.NewIf(m.Cond, []syntax.Stmt{m.BaseReturn}, nil)
		loop := syntax.NewWhile(syntax.NewBool(true), []syntax.Stmt{guard, rebind})
		return []syntax.Stmt{loop}, nil
	case DispatchTailCall:
		rebind, err := rebindFromCall(m.TailCall, fn)
		if err != nil {
			return nil, err
		}
		arms := make([]*syntax.CaseArm, len(m.Dispatch.Arms))
		for idx, arm := range m.Dispatch.Arms {
			if idx == m.TailArm {
				arms[idx] = syntax.NewCaseArm(arm.Wildcard, arm.Literals, []syntax.Stmt{rebind})
			} else {
				arms[idx] = arm
			}
		}
		dispatch := syntax.NewMatch(m.Dispatch.Subject, arms)
		loop := syntax.NewWhile(syntax.NewBool(true), []syntax.Stmt{dispatch})
		return []syntax.Stmt{loop}, nil
	}
	return nil, ErrShapeNotRecognized
}

// rebindFromCall builds the simultaneous parameter rebind for a tail call.
// For a call 'fn(n - 1, acc * n)' of 'def fn(n, acc)' it builds
//
//    n, acc = n - 1, acc * n
//
// Rebind targets must align 1:1 with the signature's parameters.
func rebindFromCall(call *syntax.CallExpr, fn *syntax.FuncDecl) (syntax.Stmt, error) {
	if len(call.Args) != len(fn.Params) {
		return nil, ErrArityMismatch
	}
	targets := make([]string, len(fn.Params))
	copy(targets, fn.Params)
	values := make([]syntax.Expr, len(call.Args))
	copy(values, call.Args)
	return syntax.NewAssign(targets, values), nil
}

// Function rewrites a matched declaration into its loop-based equivalent.
// The result is a new declaration carrying the original's name, parameters
// and docstring. The second return value reports whether a rewrite happened;
// on Unrecognized (or arity misalignment) the original declaration is
// returned unchanged.
func Function(fn *syntax.FuncDecl) (*syntax.FuncDecl, bool) {
	m := MatchBody(fn)
	if m.Shape == Unrecognized {
		return fn, false
	}
	body, err := Synthesize(m, fn)
	if err != nil {
		tracer().Debugf("synthesis for %s failed (%v), leaving function untransformed", fn.Name, err)
		return fn, false
	}
	tracer().Infof("rewrote %s (%s) into a loop", fn.Name, m.Shape)
	return syntax.NewFuncDecl(fn.Name, fn.Params, fn.Doc, body), true
}
