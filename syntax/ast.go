package syntax

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 The Tailor Project Authors

*/

import (
	"github.com/tailorlang/tailor"
)

// Node is the common interface of all AST nodes.
type Node interface {
	Span() tailor.Span
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// --- Declarations -----------------------------------------------------------

// Program is an ordered sequence of function declarations.
type Program struct {
	Funcs []*FuncDecl
}

// Func returns the declaration for a function name, or nil.
func (p *Program) Func(name string) *FuncDecl {
	for _, f := range p.Funcs {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// FuncDecl is one function definition. Params is the function's signature:
// an ordered sequence of parameter names; insertion order defines positional
// binding. Doc holds the docstring, if the body started with a string
// literal statement (the parser lifts it out of Body).
type FuncDecl struct {
	Name   string
	Params []string
	Doc    string
	Body   []Stmt
	span   tailor.Span
}

func (d *FuncDecl) Span() tailor.Span { return d.span }

// --- Statements --------------------------------------------------------------

// IfStmt is 'if <cond> { … } [ else { … } ]'.
type IfStmt struct {
	Cond Expr
	Then []Stmt
	Else []Stmt // nil if no else clause
	span tailor.Span
}

// ReturnStmt is 'return <expr>'.
type ReturnStmt struct {
	Result Expr
	span   tailor.Span
}

// MatchStmt is a multi-arm dispatch: 'match <subject> { case … }'.
type MatchStmt struct {
	Subject Expr
	Arms    []*CaseArm
	span    tailor.Span
}

// CaseArm is one arm of a match statement. A wildcard arm ('case _') matches
// any subject; otherwise the arm matches if the subject equals one of the
// literal alternatives.
type CaseArm struct {
	Wildcard bool
	Literals []Expr // literal alternatives, e.g. 'case 0 | 1'
	Body     []Stmt
	span     tailor.Span
}

// WhileStmt is 'while <cond> { … }'.
type WhileStmt struct {
	Cond Expr
	Body []Stmt
	span tailor.Span
}

// AssignStmt is a simultaneous assignment: all value expressions are
// evaluated against the pre-assignment bindings, then all targets are bound
// as a group. Targets and Values align positionally and have equal length.
type AssignStmt struct {
	Targets []string
	Values  []Expr
	span    tailor.Span
}

// ExprStmt is an expression in statement position.
type ExprStmt struct {
	X    Expr
	span tailor.Span
}

func (s *IfStmt) Span() tailor.Span     { return s.span }
func (s *ReturnStmt) Span() tailor.Span { return s.span }
func (s *MatchStmt) Span() tailor.Span  { return s.span }
func (s *CaseArm) Span() tailor.Span    { return s.span }
func (s *WhileStmt) Span() tailor.Span  { return s.span }
func (s *AssignStmt) Span() tailor.Span { return s.span }
func (s *ExprStmt) Span() tailor.Span   { return s.span }

func (s *IfStmt) stmtNode()     {}
func (s *ReturnStmt) stmtNode() {}
func (s *MatchStmt) stmtNode()  {}
func (s *WhileStmt) stmtNode()  {}
func (s *AssignStmt) stmtNode() {}
func (s *ExprStmt) stmtNode()   {}

// --- Expressions --------------------------------------------------------------

// Ident is a name reference.
type Ident struct {
	Name string
	span tailor.Span
}

// IntLit is an integer literal.
type IntLit struct {
	Value int64
	span  tailor.Span
}

// StringLit is a string literal (unquoted value).
type StringLit struct {
	Value string
	span  tailor.Span
}

// BoolLit is 'true' or 'false'.
type BoolLit struct {
	Value bool
	span  tailor.Span
}

// UnaryExpr is a prefix operation, currently only '-'.
type UnaryExpr struct {
	Op   string
	X    Expr
	span tailor.Span
}

// BinaryExpr is an infix operation.
type BinaryExpr struct {
	Op   string
	X, Y Expr
	span tailor.Span
}

// CallExpr is a call of a named function.
type CallExpr struct {
	Name string
	Args []Expr
	span tailor.Span
}

func (e *Ident) Span() tailor.Span      { return e.span }
func (e *IntLit) Span() tailor.Span     { return e.span }
func (e *StringLit) Span() tailor.Span  { return e.span }
func (e *BoolLit) Span() tailor.Span    { return e.span }
func (e *UnaryExpr) Span() tailor.Span  { return e.span }
func (e *BinaryExpr) Span() tailor.Span { return e.span }
func (e *CallExpr) Span() tailor.Span   { return e.span }

func (e *Ident) exprNode()      {}
func (e *IntLit) exprNode()     {}
func (e *StringLit) exprNode()  {}
func (e *BoolLit) exprNode()    {}
func (e *UnaryExpr) exprNode()  {}
func (e *BinaryExpr) exprNode() {}
func (e *CallExpr) exprNode()   {}

// --- Construction helpers -----------------------------------------------------

// Synthesized nodes carry a null span; they have no source positions.

// NewIdent creates an identifier node without source positions.
func NewIdent(name string) *Ident {
	return &Ident{Name: name}
}

// NewBool creates a boolean literal node without source positions.
func NewBool(v bool) *BoolLit {
	return &BoolLit{Value: v}
}

// NewWhile creates a while statement node without source positions.
func NewWhile(cond Expr, body []Stmt) *WhileStmt {
	return &WhileStmt{Cond: cond, Body: body}
}

// NewIf creates an if statement node without source positions.
func NewIf(cond Expr, then []Stmt, els []Stmt) *IfStmt {
	return &IfStmt{Cond: cond, Then: then, Else: els}
}

// NewAssign creates a simultaneous-assignment node without source positions.
func NewAssign(targets []string, values []Expr) *AssignStmt {
	return &AssignStmt{Targets: targets, Values: values}
}

// NewMatch creates a match statement node without source positions.
func NewMatch(subject Expr, arms []*CaseArm) *MatchStmt {
	return &MatchStmt{Subject: subject, Arms: arms}
}

// NewCaseArm creates a match arm without source positions.
func NewCaseArm(wildcard bool, literals []Expr, body []Stmt) *CaseArm {
	return &CaseArm{Wildcard: wildcard, Literals: literals, Body: body}
}

// NewFuncDecl creates a function declaration without source positions.
func NewFuncDecl(name string, params []string, doc string, body []Stmt) *FuncDecl {
	return &FuncDecl{Name: name, Params: params, Doc: doc, Body: body}
}
