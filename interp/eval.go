package interp

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 The Tailor Project Authors

*/

import (
	"fmt"

	"github.com/tailorlang/tailor"
	"github.com/tailorlang/tailor/syntax"
)

// RuntimeError is an error during evaluation of script code, carrying the
// source span of the offending node (null for synthesized nodes).
type RuntimeError struct {
	Msg  string
	Span tailor.Span
}

func (e *RuntimeError) Error() string {
	if e.Span.IsNull() {
		return e.Msg
	}
	return fmt.Sprintf("%s at %s", e.Msg, e.Span)
}

func runtimeErr(n syntax.Node, format string, args ...interface{}) error {
	var span tailor.Span
	if n != nil {
		span = n.Span()
	}
	return &RuntimeError{Msg: fmt.Sprintf(format, args...), Span: span}
}

// Apply calls a function with positional arguments. A fresh frame
// environment is pushed, with the function's materialization environment as
// parent; parameters are bound positionally, in signature order.
func Apply(fn *Function, args ...interface{}) (interface{}, error) {
	if len(args) != len(fn.Params) {
		return nil, runtimeErr(nil, "%s expects %d argument(s), got %d", fn.Name, len(fn.Params), len(args))
	}
	frame := NewEnv("call "+fn.Name, fn.Env)
	for i, param := range fn.Params {
		frame.Define(param, args[i])
	}
	tracer().Debugf("applying %s", fn)
	value, returned, err := execBlock(fn.Body, frame)
	if err != nil {
		return nil, err
	}
	if !returned {
		return nil, nil
	}
	return value, nil
}

// execBlock executes statements in order. It reports whether a return
// statement unwound the block, together with the returned value.
func execBlock(stmts []syntax.Stmt, env *Env) (interface{}, bool, error) {
	for _, stmt := range stmts {
		value, returned, err := execStmt(stmt, env)
		if err != nil || returned {
			return value, returned, err
		}
	}
	return nil, false, nil
}

func execStmt(stmt syntax.Stmt, env *Env) (interface{}, bool, error) {
	switch s := stmt.(type) {
	case *syntax.ReturnStmt:
		value, err := EvalExpr(s.Result, env)
		return value, err == nil, err
	case *syntax.IfStmt:
		cond, err := evalCondition(s.Cond, env)
		if err != nil {
			return nil, false, err
		}
		if cond {
			return execBlock(s.Then, env)
		}
		return execBlock(s.Else, env)
	case *syntax.WhileStmt:
		for {
			cond, err := evalCondition(s.Cond, env)
			if err != nil {
				return nil, false, err
			}
			if !cond {
				return nil, false, nil
			}
			value, returned, err := execBlock(s.Body, env)
			if err != nil || returned {
				return value, returned, err
			}
		}
	case *syntax.MatchStmt:
		return execMatch(s, env)
	case *syntax.AssignStmt:
		return nil, false, execAssign(s, env)
	case *syntax.ExprStmt:
		_, err := EvalExpr(s.X, env)
		return nil, false, err
	}
	return nil, false, runtimeErr(stmt, "unknown statement kind %T", stmt)
}

func execMatch(s *syntax.MatchStmt, env *Env) (interface{}, bool, error) {
	subject, err := EvalExpr(s.Subject, env)
	if err != nil {
		return nil, false, err
	}
	for _, arm := range s.Arms {
		matched := arm.Wildcard
		for _, lit := range arm.Literals {
			v, lerr := EvalExpr(lit, env)
			if lerr != nil {
				return nil, false, lerr
			}
			if valuesEqual(subject, v) {
				matched = true
				break
			}
		}
		if matched {
			return execBlock(arm.Body, env)
		}
	}
	return nil, false, runtimeErr(s, "no case arm matched %s", FormatValue(subject))
}

// execAssign performs a simultaneous assignment: every value expression is
// evaluated against the pre-assignment bindings before any target is bound.
func execAssign(s *syntax.AssignStmt, env *Env) error {
	if len(s.Targets) != len(s.Values) {
		return runtimeErr(s, "assignment has %d target(s) but %d value(s)", len(s.Targets), len(s.Values))
	}
	values := make([]interface{}, len(s.Values))
	for i, expr := range s.Values {
		v, err := EvalExpr(expr, env)
		if err != nil {
			return err
		}
		values[i] = v
	}
	for i, target := range s.Targets {
		env.Assign(target, values[i])
	}
	return nil
}

func evalCondition(expr syntax.Expr, env *Env) (bool, error) {
	v, err := EvalExpr(expr, env)
	if err != nil {
		return false, err
	}
	cond, ok := v.(bool)
	if !ok {
		return false, runtimeErr(expr, "condition is not a boolean: %s", FormatValue(v))
	}
	return cond, nil
}

// EvalExpr evaluates an expression within an environment.
func EvalExpr(expr syntax.Expr, env *Env) (interface{}, error) {
	switch e := expr.(type) {
	case *syntax.IntLit:
		return e.Value, nil
	case *syntax.StringLit:
		return e.Value, nil
	case *syntax.BoolLit:
		return e.Value, nil
	case *syntax.Ident:
		b, _ := env.Resolve(e.Name)
		if b == nil {
			return nil, runtimeErr(e, "unable to resolve name '%s' in environment", e.Name)
		}
		return b.Value, nil
	case *syntax.UnaryExpr:
		return evalUnary(e, env)
	case *syntax.BinaryExpr:
		return evalBinary(e, env)
	case *syntax.CallExpr:
		return evalCall(e, env)
	}
	return nil, runtimeErr(expr, "unknown expression kind %T", expr)
}

func evalUnary(e *syntax.UnaryExpr, env *Env) (interface{}, error) {
	v, err := EvalExpr(e.X, env)
	if err != nil {
		return nil, err
	}
	if e.Op != "-" {
		return nil, runtimeErr(e, "unknown unary operator '%s'", e.Op)
	}
	n, ok := v.(int64)
	if !ok {
		return nil, runtimeErr(e, "operand of '-' is not a number: %s", FormatValue(v))
	}
	return -n, nil
}

func evalBinary(e *syntax.BinaryExpr, env *Env) (interface{}, error) {
	x, err := EvalExpr(e.X, env)
	if err != nil {
		return nil, err
	}
	y, err := EvalExpr(e.Y, env)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case "==":
		return valuesEqual(x, y), nil
	case "!=":
		return !valuesEqual(x, y), nil
	}
	if xs, ok := x.(string); ok && e.Op == "+" {
		ys, ok := y.(string)
		if !ok {
			return nil, runtimeErr(e, "cannot concatenate %s to string", FormatValue(y))
		}
		return xs + ys, nil
	}
	xn, xok := x.(int64)
	yn, yok := y.(int64)
	if !xok || !yok {
		return nil, runtimeErr(e, "operands of '%s' are not numbers: %s, %s",
			e.Op, FormatValue(x), FormatValue(y))
	}
	switch e.Op {
	case "+":
		return xn + yn, nil
	case "-":
		return xn - yn, nil
	case "*":
		return xn * yn, nil
	case "/":
		if yn == 0 {
			return nil, runtimeErr(e, "division by zero")
		}
		return xn / yn, nil
	case "%":
		if yn == 0 {
			return nil, runtimeErr(e, "division by zero")
		}
		return xn % yn, nil
	case "<":
		return xn < yn, nil
	case "<=":
		return xn <= yn, nil
	case ">":
		return xn > yn, nil
	case ">=":
		return xn >= yn, nil
	}
	return nil, runtimeErr(e, "unknown operator '%s'", e.Op)
}

func evalCall(e *syntax.CallExpr, env *Env) (interface{}, error) {
	b, _ := env.Resolve(e.Name)
	if b == nil {
		return nil, runtimeErr(e, "unable to resolve function '%s' in environment", e.Name)
	}
	args := make([]interface{}, len(e.Args))
	for i, arg := range e.Args {
		v, err := EvalExpr(arg, env)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	switch fn := b.Value.(type) {
	case *Function:
		return Apply(fn, args...)
	case *Builtin:
		return fn.Call(args)
	}
	return nil, runtimeErr(e, "'%s' is not callable: %s", e.Name, FormatValue(b.Value))
}
