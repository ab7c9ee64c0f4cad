package rewrite

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/tailorlang/tailor/interp"
	"github.com/tailorlang/tailor/syntax"
)

const factorialGuarded = `
def fact(n, acc) {
    "accumulator-style factorial"
    if n <= 1 { return acc }
    return fact(n - 1, acc * n)
}`

const fibonacciDispatch = `
def fib(n, a, b) {
    match n {
        case 0 { return a }
        case _ { return fib(n - 1, b, a + b) }
    }
}`

func parse(t *testing.T, src string, name string) *syntax.FuncDecl {
	t.Helper()
	decl, err := syntax.ParseFunction(src, name)
	if err != nil {
		t.Fatal(err)
	}
	return decl
}

// --- Shape matching ------------------------------------------------------------

func TestMatchGuardedShape(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tailor.rewrite")
	defer teardown()
	//
	decl := parse(t, factorialGuarded, "fact")
	m := MatchBody(decl)
	if m.Shape != GuardedTailCall {
		t.Fatalf("expected GuardedTailCall, got %s", m.Shape)
	}
	if m.TailCall == nil || m.TailCall.Name != "fact" {
		t.Error("tail call not captured")
	}
	if m.BaseReturn == nil {
		t.Error("base-case return not captured")
	}
}

func TestMatchDispatchShape(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tailor.rewrite")
	defer teardown()
	//
	decl := parse(t, fibonacciDispatch, "fib")
	m := MatchBody(decl)
	if m.Shape != DispatchTailCall {
		t.Fatalf("expected DispatchTailCall, got %s", m.Shape)
	}
	if m.TailArm != 1 {
		t.Errorf("expected tail arm #1, got #%d", m.TailArm)
	}
}

func TestMatchRejectsExtraStatement(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tailor.rewrite")
	defer teardown()
	//
	decl := parse(t, `
def f(n) {
    x = n + 1
    if n <= 1 { return 1 }
    return f(n - 1)
}`, "f")
	if m := MatchBody(decl); m.Shape != Unrecognized {
		t.Errorf("extra leading statement should not match, got %s", m.Shape)
	}
}

func TestMatchRejectsElseClause(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tailor.rewrite")
	defer teardown()
	//
	decl := parse(t, `
def f(n) {
    if n <= 1 { return 1 } else { return 2 }
    return f(n - 1)
}`, "f")
	if m := MatchBody(decl); m.Shape != Unrecognized {
		t.Errorf("guard with else clause should not match, got %s", m.Shape)
	}
}

func TestMatchRejectsTwoTailArms(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tailor.rewrite")
	defer teardown()
	//
	decl := parse(t, `
def f(n) {
    match n {
        case 0 { return 0 }
        case 1 { return f(n - 1) }
        case _ { return f(n - 2) }
    }
}`, "f")
	// Two candidate tail arms: no best-effort pick, the shape is rejected.
	if m := MatchBody(decl); m.Shape != Unrecognized {
		t.Errorf("two tail arms should not match, got %s", m.Shape)
	}
}

func TestMatchRejectsZeroTailArms(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tailor.rewrite")
	defer teardown()
	//
	decl := parse(t, `
def f(n) {
    match n {
        case 0 { return 0 }
        case _ { return 1 }
    }
}`, "f")
	if m := MatchBody(decl); m.Shape != Unrecognized {
		t.Errorf("dispatch without a tail arm should not match, got %s", m.Shape)
	}
}

func TestMatchRejectsArityMismatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tailor.rewrite")
	defer teardown()
	//
	decl := parse(t, `
def f(n, acc) {
    if n <= 1 { return acc }
    return f(n - 1)
}`, "f")
	if m := MatchBody(decl); m.Shape != Unrecognized {
		t.Errorf("tail call with wrong argument count should not match, got %s", m.Shape)
	}
}

// --- Synthesis -----------------------------------------------------------------

func TestSynthesizeGuarded(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tailor.rewrite")
	defer teardown()
	//
	decl := parse(t, factorialGuarded, "fact")
	body, err := Synthesize(MatchBody(decl), decl)
	if err != nil {
		t.Fatal(err)
	}
	if len(body) != 1 {
		t.Fatalf("expected a single loop statement, got %d", len(body))
	}
	loop, ok := body[0].(*syntax.WhileStmt)
	if !ok {
		t.Fatalf("expected while statement, got %T", body[0])
	}
	if cond, ok := loop.Cond.(*syntax.BoolLit); !ok || !cond.Value {
		t.Error("loop condition should be the literal true")
	}
	if len(loop.Body) != 2 {
		t.Fatalf("expected guard + rebind in the loop, got %d statement(s)", len(loop.Body))
	}
	rebind, ok := loop.Body[1].(*syntax.AssignStmt)
	if !ok {
		t.Fatalf("expected rebind assignment, got %T", loop.Body[1])
	}
	if len(rebind.Targets) != 2 || rebind.Targets[0] != "n" || rebind.Targets[1] != "acc" {
		t.Errorf("rebind targets should be the parameters, got %v", rebind.Targets)
	}
}

func TestSynthesizeDispatchSharesArms(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tailor.rewrite")
	defer teardown()
	//
	decl := parse(t, fibonacciDispatch, "fib")
	m := MatchBody(decl)
	body, err := Synthesize(m, decl)
	if err != nil {
		t.Fatal(err)
	}
	loop := body[0].(*syntax.WhileStmt)
	dispatch, ok := loop.Body[0].(*syntax.MatchStmt)
	if !ok {
		t.Fatalf("expected match statement in the loop, got %T", loop.Body[0])
	}
	if dispatch.Arms[0] != m.Dispatch.Arms[0] {
		t.Error("base-case arms should be shared, not rebuilt")
	}
	if dispatch.Arms[1] == m.Dispatch.Arms[1] {
		t.Error("the tail arm must be replaced by a rebind arm")
	}
	if _, ok := dispatch.Arms[1].Body[0].(*syntax.AssignStmt); !ok {
		t.Errorf("tail arm should now hold the rebind, got %T", dispatch.Arms[1].Body[0])
	}
}

func TestFunctionKeepsMetadata(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tailor.rewrite")
	defer teardown()
	//
	decl := parse(t, factorialGuarded, "fact")
	rewritten, ok := Function(decl)
	if !ok {
		t.Fatal("expected a rewrite to happen")
	}
	if rewritten == decl {
		t.Fatal("rewrite must build a new declaration")
	}
	if rewritten.Name != "fact" || rewritten.Doc != "accumulator-style factorial" {
		t.Errorf("metadata lost: %s / %q", rewritten.Name, rewritten.Doc)
	}
	if len(rewritten.Params) != 2 {
		t.Errorf("signature lost: %v", rewritten.Params)
	}
	// The input declaration is never modified.
	if len(decl.Body) != 2 {
		t.Error("original declaration was mutated")
	}
}

func TestFunctionIdempotent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tailor.rewrite")
	defer teardown()
	//
	decl := parse(t, factorialGuarded, "fact")
	once, ok := Function(decl)
	if !ok {
		t.Fatal("expected a rewrite to happen")
	}
	twice, ok := Function(once)
	if ok {
		t.Error("a rewritten body must not match again")
	}
	if twice != once {
		t.Error("second pass should return the declaration unchanged")
	}
}

// --- Pipeline ------------------------------------------------------------------

func TestTailRecursiveEquivalence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tailor.rewrite")
	defer teardown()
	//
	env := interp.NewEnv("globals", nil)
	fn, err := TailRecursive(factorialGuarded, "fact", env)
	if err != nil {
		t.Fatal(err)
	}
	if !fn.Transformed() {
		t.Fatal("factorial should have been transformed")
	}
	v, err := interp.Apply(fn, int64(5), int64(1))
	if err != nil {
		t.Fatal(err)
	}
	if v != int64(120) {
		t.Errorf("fact(5, 1) = %v, expected 120", v)
	}
}

func TestTailRecursiveDispatchEquivalence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tailor.rewrite")
	defer teardown()
	//
	env := interp.NewEnv("globals", nil)
	fn, err := TailRecursive(fibonacciDispatch, "fib", env)
	if err != nil {
		t.Fatal(err)
	}
	if !fn.Transformed() {
		t.Fatal("fibonacci should have been transformed")
	}
	// fib relies on the simultaneous rebind: b is computed from the OLD a.
	v, err := interp.Apply(fn, int64(10), int64(0), int64(1))
	if err != nil {
		t.Fatal(err)
	}
	if v != int64(55) {
		t.Errorf("fib(10) = %v, expected 55", v)
	}
}

func TestTailRecursiveStackDepthIndependent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tailor.rewrite")
	defer teardown()
	//
	env := interp.NewEnv("globals", nil)
	fn, err := TailRecursive(`
def count(n) {
    if n == 0 { return 0 }
    return count(n - 1)
}`, "count", env)
	if err != nil {
		t.Fatal(err)
	}
	if !fn.Transformed() {
		t.Fatal("count should have been transformed")
	}
	// A depth far beyond any recursion limit; terminates because the body
	// now iterates in constant stack space.
	v, err := interp.Apply(fn, int64(1000000))
	if err != nil {
		t.Fatal(err)
	}
	if v != int64(0) {
		t.Errorf("count(1000000) = %v, expected 0", v)
	}
}

func TestTailRecursiveFallsBackSilently(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tailor.rewrite")
	defer teardown()
	//
	env := interp.NewEnv("globals", nil)
	fn, err := TailRecursive(`
def fact(n) {
    if n <= 1 { return 1 }
    return n * fact(n - 1)
}`, "fact", env)
	if err != nil {
		t.Fatal(err)
	}
	if fn.Transformed() {
		t.Fatal("non-tail recursion must not be transformed")
	}
	// Still callable, via genuine recursion.
	v, err := interp.Apply(fn, int64(5))
	if err != nil {
		t.Fatal(err)
	}
	if v != int64(120) {
		t.Errorf("fact(5) = %v, expected 120", v)
	}
}

func TestTailRecursiveUnknownName(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tailor.rewrite")
	defer teardown()
	//
	env := interp.NewEnv("globals", nil)
	if _, err := TailRecursive(factorialGuarded, "nosuch", env); err == nil {
		t.Error("unknown function name should surface as an error")
	}
}

func TestTailRecursiveParseError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tailor.rewrite")
	defer teardown()
	//
	env := interp.NewEnv("globals", nil)
	if _, err := TailRecursive("def f( {", "f", env); err == nil {
		t.Error("parse failure should surface as an error")
	}
}
