package interp

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 The Tailor Project Authors

*/

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// Environments for name bindings. Environments are organized in a tree;
// resolution walks towards the root.

// Binding is one named slot within an environment.
type Binding struct {
	name  string
	Value interface{}
}

// NewBinding creates a binding without a value.
func NewBinding(nm string) *Binding {
	return &Binding{name: nm}
}

// Name gets the binding's name.
func (b *Binding) Name() string {
	return b.name
}

// String is a debug Stringer for bindings.
func (b *Binding) String() string {
	return fmt.Sprintf("<binding '%s'=%v>", b.name, b.Value)
}

// --- Environments ----------------------------------------------------------

// Env is a named environment, which contains name bindings. Environments
// link back to a parent environment, forming a tree.
type Env struct {
	Name   string
	Parent *Env
	table  map[string]*Binding
}

// NewEnv creates a new environment. Passing a nil parent creates a root
// (global) environment.
func NewEnv(nm string, parent *Env) *Env {
	return &Env{
		Name:   nm,
		Parent: parent,
		table:  make(map[string]*Binding),
	}
}

// Prettyfied Stringer.
func (env *Env) String() string {
	return fmt.Sprintf("<env %s>", env.Name)
}

// Define creates (or overwrites) a binding in this environment. Returns the
// new binding and the previously stored binding under this name, if any.
func (env *Env) Define(name string, value interface{}) (*Binding, *Binding) {
	if len(name) == 0 {
		return nil, nil
	}
	old := env.table[name]
	b := NewBinding(name)
	b.Value = value
	env.table[name] = b
	return b, old
}

// Resolve finds a binding. Returns the binding (or nil) and the environment
// (of an environment-tree-path) the binding was found in.
func (env *Env) Resolve(name string) (*Binding, *Env) {
	if b, ok := env.table[name]; ok {
		return b, env
	}
	for env.Parent != nil {
		env = env.Parent
		if b, ok := env.table[name]; ok {
			return b, env
		}
	}
	return nil, nil
}

// Assign sets the value of an existing binding, searching the environment
// tree towards the root. If the name is unbound, a binding is created in
// this environment.
func (env *Env) Assign(name string, value interface{}) *Binding {
	if b, _ := env.Resolve(name); b != nil {
		b.Value = value
		return b
	}
	b, _ := env.Define(name, value)
	return b
}

// Size counts the bindings local to this environment.
func (env *Env) Size() int {
	return len(env.table)
}

// Each iterates over each local binding, executing a mapper function.
func (env *Env) Each(mapper func(string, *Binding)) {
	for k, v := range env.table {
		mapper(k, v)
	}
}

// Dump is a debugging helper, listing the local bindings of an environment
// in stable (sorted) order.
func (env *Env) Dump() string {
	names := treeset.NewWith(utils.StringComparator)
	for k := range env.table {
		names.Add(k)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s {\n", env.String())
	it := names.Iterator()
	for it.Next() {
		name := it.Value().(string)
		fmt.Fprintf(&b, "    %v\n", env.table[name])
	}
	b.WriteString("}")
	return b.String()
}
