package rewrite

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 The Tailor Project Authors

*/

import (
	"github.com/tailorlang/tailor/syntax"
)

// Shape classifies a function body.
type Shape int

// The recognized function shapes.
const (
	Unrecognized Shape = iota
	GuardedTailCall
	DispatchTailCall
)

func (s Shape) String() string {
	switch s {
	case GuardedTailCall:
		return "GuardedTailCall"
	case DispatchTailCall:
		return "DispatchTailCall"
	}
	return "Unrecognized"
}

// Match is the result of shape-matching a function body. For
// GuardedTailCall, Cond and BaseReturn describe the guard; for
// DispatchTailCall, Dispatch is the match statement and TailArm the index of
// the single arm holding the tail call. TailCall is set for both shapes.
type Match struct {
	Shape      Shape
	Cond       syntax.Expr        // guard condition (guarded shape)
	BaseReturn *syntax.ReturnStmt // base-case return inside the guard (guarded shape)
	Dispatch   *syntax.MatchStmt  // the dispatch statement (dispatch shape)
	TailArm    int                // index of the tail-call arm (dispatch shape)
	TailCall   *syntax.CallExpr   // the recursive tail call
}

// MatchBody classifies a function body as one of the two recognized
// tail-recursive shapes, or Unrecognized. Pure inspection; the declaration
// is never modified.
//
// Tie-break rules are strict: any extra statement, an else clause on the
// guard, zero or more than one tail-call arm, or a tail call whose argument
// count disagrees with the function's signature all yield Unrecognized —
// there is no best-effort pick.
func MatchBody(fn *syntax.FuncDecl) Match {
	if m := matchGuarded(fn); m.Shape != Unrecognized {
		return m
	}
	return matchDispatch(fn)
}

// matchGuarded recognizes
//
//    if <condition> { return <base> }
//    return fn(<args>)
//
// as the only two (meaningful) statements of the body.
func matchGuarded(fn *syntax.FuncDecl) Match {
	none := Match{Shape: Unrecognized}
	if len(fn.Body) != 2 {
		return none
	}
	guard, ok := fn.Body[0].(*syntax.IfStmt)
	if !ok {
		return none
	}
	ret, ok := fn.Body[1].(*syntax.ReturnStmt)
	if !ok {
		return none
	}
	// The guard must hold exactly one return and no else clause.
	if len(guard.Then) != 1 || guard.Else != nil {
		return none
	}
	base, ok := guard.Then[0].(*syntax.ReturnStmt)
	if !ok {
		return none
	}
	call := tailCallOf(ret, fn)
	if call == nil {
		return none
	}
	tracer().Debugf("%s matches guarded shape", fn.Name)
	return Match{
		Shape:      GuardedTailCall,
		Cond:       guard.Cond,
		BaseReturn: base,
		TailCall:   call,
	}
}

// matchDispatch recognizes a body consisting of exactly one match statement
// whose arms each hold exactly one return; exactly one arm must return the
// recursive tail call.
func matchDispatch(fn *syntax.FuncDecl) Match {
	none := Match{Shape: Unrecognized}
	if len(fn.Body) != 1 {
		return none
	}
	dispatch, ok := fn.Body[0].(*syntax.MatchStmt)
	if !ok {
		return none
	}
	tailArm := -1
	var tailCall *syntax.CallExpr
	for idx, arm := range dispatch.Arms {
		if len(arm.Body) != 1 {
			return none
		}
		ret, ok := arm.Body[0].(*syntax.ReturnStmt)
		if !ok {
			return none
		}
		call := tailCallOf(ret, fn)
		if call == nil {
			continue // a base-case arm
		}
		if tailArm != -1 {
			tracer().Debugf("%s has multiple tail-call arms, not transformable", fn.Name)
			return none
		}
		tailArm = idx
		tailCall = call
	}
	if tailArm == -1 {
		return none
	}
	tracer().Debugf("%s matches dispatch shape, tail arm is #%d", fn.Name, tailArm)
	return Match{
		Shape:    DispatchTailCall,
		Dispatch: dispatch,
		TailArm:  tailArm,
		TailCall: tailCall,
	}
}

// tailCallOf checks a return statement for a direct self-call with an
// argument list matching the function's arity. Returns nil if the statement
// is not such a tail call.
func tailCallOf(ret *syntax.ReturnStmt, fn *syntax.FuncDecl) *syntax.CallExpr {
	call, ok := ret.Result.(*syntax.CallExpr)
	if !ok {
		return nil
	}
	if call.Name != fn.Name {
		return nil
	}
	if len(call.Args) != len(fn.Params) {
		// Argument-count mismatch is a hard failure, never a partial match.
		tracer().Debugf("%s: tail call has %d argument(s) for %d parameter(s)",
			fn.Name, len(call.Args), len(fn.Params))
		return nil
	}
	return call
}
