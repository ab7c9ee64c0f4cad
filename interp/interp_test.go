package interp

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/tailorlang/tailor/syntax"
)

func TestNewEnv(t *testing.T) {
	env := NewEnv("globals", nil)
	if env == nil {
		t.Error("no environment created")
	}
}

func TestDefineResolve(t *testing.T) {
	env := NewEnv("globals", nil)
	env.Define("x", int64(7))
	b, home := env.Resolve("x")
	if b == nil {
		t.Fatal("cannot find stored binding in environment")
	}
	if b.Value != int64(7) || home != env {
		t.Errorf("binding resolved incorrectly: %v in %v", b, home)
	}
}

func TestEnvUpsearch(t *testing.T) {
	parent := NewEnv("parent", nil)
	env := NewEnv("current", parent)
	parent.Define("x", int64(1))
	if b, home := env.Resolve("x"); b != nil {
		t.Logf("found binding '%s' in %v, ok", b.Name(), home)
	} else {
		t.Fail()
	}
}

func TestAssignWalksUp(t *testing.T) {
	parent := NewEnv("parent", nil)
	env := NewEnv("current", parent)
	parent.Define("x", int64(1))
	env.Assign("x", int64(2))
	if env.Size() != 0 {
		t.Error("assignment should have updated the parent's binding, not shadowed it")
	}
	b, _ := parent.Resolve("x")
	if b.Value != int64(2) {
		t.Errorf("expected parent binding to hold 2, got %v", b.Value)
	}
}

func TestDefineReturnsOld(t *testing.T) {
	env := NewEnv("globals", nil)
	first, _ := env.Define("x", int64(1))
	if _, old := env.Define("x", int64(2)); old != first {
		t.Error("binding should have been replaced")
	}
}

func TestEnvDumpSorted(t *testing.T) {
	env := NewEnv("globals", nil)
	env.Define("zeta", int64(1))
	env.Define("alpha", int64(2))
	dump := env.Dump()
	if strings.Index(dump, "alpha") > strings.Index(dump, "zeta") {
		t.Errorf("dump not sorted:\n%s", dump)
	}
}

// --- Evaluation ----------------------------------------------------------------

func materialize(t *testing.T, src string, name string, env *Env) *Function {
	t.Helper()
	decl, err := syntax.ParseFunction(src, name)
	if err != nil {
		t.Fatal(err)
	}
	return Materialize(decl, env)
}

func TestApply(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tailor.interp")
	defer teardown()
	//
	env := NewEnv("globals", nil)
	fn := materialize(t, "def double(n) { return n * 2 }", "double", env)
	v, err := Apply(fn, int64(21))
	if err != nil {
		t.Fatal(err)
	}
	if v != int64(42) {
		t.Errorf("expected 42, got %v", v)
	}
}

func TestApplyArityChecked(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tailor.interp")
	defer teardown()
	//
	env := NewEnv("globals", nil)
	fn := materialize(t, "def double(n) { return n * 2 }", "double", env)
	if _, err := Apply(fn); err == nil {
		t.Error("applying with missing arguments should fail")
	}
}

func TestApplyRecursive(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tailor.interp")
	defer teardown()
	//
	env := NewEnv("globals", nil)
	fn := materialize(t, `
def fact(n, acc) {
    if n <= 1 { return acc }
    return fact(n - 1, acc * n)
}`, "fact", env)
	v, err := Apply(fn, int64(5), int64(1))
	if err != nil {
		t.Fatal(err)
	}
	if v != int64(120) {
		t.Errorf("expected 120, got %v", v)
	}
}

func TestSimultaneousAssign(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tailor.interp")
	defer teardown()
	//
	env := NewEnv("globals", nil)
	fn := materialize(t, `
def swap(a, b) {
    a, b = b, a + b
    return a
}`, "swap", env)
	v, err := Apply(fn, int64(3), int64(5))
	if err != nil {
		t.Fatal(err)
	}
	// a must receive the OLD b, while b's value is computed from the old a.
	if v != int64(5) {
		t.Errorf("expected 5, got %v", v)
	}
}

func TestMatchDispatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tailor.interp")
	defer teardown()
	//
	env := NewEnv("globals", nil)
	fn := materialize(t, `
def kind(n) {
    match n {
        case 0 | 1 { return "small" }
        case _ { return "large" }
    }
}`, "kind", env)
	for _, probe := range []struct {
		arg  int64
		want string
	}{{0, "small"}, {1, "small"}, {99, "large"}} {
		v, err := Apply(fn, probe.arg)
		if err != nil {
			t.Fatal(err)
		}
		if v != probe.want {
			t.Errorf("kind(%d) = %v, expected %q", probe.arg, v, probe.want)
		}
	}
}

func TestMatchNoArmFails(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tailor.interp")
	defer teardown()
	//
	env := NewEnv("globals", nil)
	fn := materialize(t, `
def f(n) {
    match n {
        case 0 { return 0 }
    }
    return 1
}`, "f", env)
	if _, err := Apply(fn, int64(7)); err == nil {
		t.Error("match without a matching arm should fail")
	}
}

func TestDivisionByZero(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tailor.interp")
	defer teardown()
	//
	env := NewEnv("globals", nil)
	fn := materialize(t, "def f(n) { return n / 0 }", "f", env)
	_, err := Apply(fn, int64(1))
	if err == nil {
		t.Fatal("division by zero should fail")
	}
	if _, ok := err.(*RuntimeError); !ok {
		t.Errorf("expected a runtime error, got %T", err)
	}
}

func TestWhileLoop(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tailor.interp")
	defer teardown()
	//
	env := NewEnv("globals", nil)
	fn := materialize(t, `
def sum(n) {
    acc = 0
    while n > 0 {
        acc = acc + n
        n = n - 1
    }
    return acc
}`, "sum", env)
	v, err := Apply(fn, int64(4))
	if err != nil {
		t.Fatal(err)
	}
	if v != int64(10) {
		t.Errorf("expected 10, got %v", v)
	}
}

func TestBuiltinCallable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tailor.interp")
	defer teardown()
	//
	env := NewEnv("globals", nil)
	env.Define("inc", &Builtin{
		Name: "inc",
		Call: func(args []interface{}) (interface{}, error) {
			return args[0].(int64) + 1, nil
		},
	})
	fn := materialize(t, "def f(n) { return inc(n) }", "f", env)
	v, err := Apply(fn, int64(41))
	if err != nil {
		t.Fatal(err)
	}
	if v != int64(42) {
		t.Errorf("expected 42, got %v", v)
	}
}

func TestMaterializeMetadata(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tailor.interp")
	defer teardown()
	//
	env := NewEnv("globals", nil)
	fn := materialize(t, `
def fact(n, acc) {
    "accumulator-style factorial"
    if n <= 1 { return acc }
    return fact(n - 1, acc * n)
}`, "fact", env)
	if fn.Name != "fact" || fn.Doc != "accumulator-style factorial" {
		t.Errorf("metadata not carried over: %s / %q", fn.Name, fn.Doc)
	}
	if fn.Arity() != 2 {
		t.Errorf("expected arity 2, got %d", fn.Arity())
	}
	if b, _ := env.Resolve("fact"); b == nil || b.Value != fn {
		t.Error("function not self-registered in its environment")
	}
}
