package syntax

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 The Tailor Project Authors

*/

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/tailorlang/tailor"
	"github.com/tailorlang/tailor/scanner"
)

// --- Grammar -----------------------------------------------------------------
//
// Program    ::=  FuncDecl …
// FuncDecl   ::=  'def' IDENT '(' [ IDENT (',' IDENT)* ] ')' Block
// Block      ::=  '{' Stmt … '}'
// Stmt       ::=  IfStmt | ReturnStmt | MatchStmt | WhileStmt | AssignStmt | ExprStmt
// IfStmt     ::=  'if' Expr Block [ 'else' Block ]
// ReturnStmt ::=  'return' Expr
// MatchStmt  ::=  'match' Expr '{' CaseArm … '}'
// CaseArm    ::=  'case' ( '_' | Literal ('|' Literal)* ) Block
// WhileStmt  ::=  'while' Expr Block
// AssignStmt ::=  IDENT (',' IDENT)* '=' Expr (',' Expr)*
// ExprStmt   ::=  Expr
//
// Expressions use the usual precedence tiers: comparison < additive <
// multiplicative < unary < primary. Comments starting with '#' are filtered
// by the scanner.

var lexer *scanner.LMAdapter

var startOnce sync.Once // monitors one-time creation of the lexer

func createLexer() *scanner.LMAdapter {
	startOnce.Do(func() {
		var err error
		tracer().Infof("Creating lexer")
		if lexer, err = Lexer(); err != nil {
			panic("Cannot create lexer")
		}
	})
	return lexer
}

// Parse parses an input string, given in Tailor script format. It returns the
// program's syntax tree, or an error in case of failure.
func Parse(input string) (*Program, error) {
	adapter := createLexer()
	scan, err := adapter.Scanner(input)
	if err != nil {
		return nil, err
	}
	toks, serr := collectTokens(scan)
	if serr != nil {
		return nil, serr
	}
	p := &parser{toks: toks}
	return p.program()
}

// ParseFunction parses input and returns the declaration of one function.
// It is an error if no function with the given name is declared.
func ParseFunction(input string, name string) (*FuncDecl, error) {
	prog, err := Parse(input)
	if err != nil {
		return nil, err
	}
	decl := prog.Func(name)
	if decl == nil {
		return nil, fmt.Errorf("no function '%s' declared in input", name)
	}
	return decl, nil
}

func collectTokens(scan *scanner.LMScanner) ([]tailor.Token, error) {
	var serr error
	scan.SetErrorHandler(func(e error) {
		if serr == nil {
			serr = e
		}
	})
	var toks []tailor.Token
	for {
		tok := scan.NextToken()
		toks = append(toks, tok)
		if tok.TokType() == scanner.EOF {
			break
		}
	}
	return toks, serr
}

// --- Parser ------------------------------------------------------------------

type parser struct {
	toks []tailor.Token
	i    int
}

func (p *parser) peek() tailor.Token {
	return p.toks[p.i]
}

func (p *parser) peekAt(d int) tailor.Token {
	if p.i+d >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF
	}
	return p.toks[p.i+d]
}

func (p *parser) next() tailor.Token {
	tok := p.toks[p.i]
	if p.i < len(p.toks)-1 {
		p.i++
	}
	return tok
}

func (p *parser) at(tokname string) bool {
	_, id := Token(tokname)
	return int(p.peek().TokType()) == id
}

func (p *parser) match(tokname string) bool {
	if p.at(tokname) {
		p.next()
		return true
	}
	return false
}

func (p *parser) expect(tokname string) (tailor.Token, error) {
	if !p.at(tokname) {
		tok := p.peek()
		return tok, fmt.Errorf("expected '%s' at position %d, found '%s'",
			tokname, tok.Span().From(), tok.Lexeme())
	}
	return p.next(), nil
}

func (p *parser) atEOF() bool {
	return p.peek().TokType() == scanner.EOF
}

func (p *parser) program() (*Program, error) {
	prog := &Program{}
	for !p.atEOF() {
		decl, err := p.funcDecl()
		if err != nil {
			return nil, err
		}
		tracer().Debugf("parsed function '%s' with %d parameter(s)", decl.Name, len(decl.Params))
		prog.Funcs = append(prog.Funcs, decl)
	}
	return prog, nil
}

func (p *parser) funcDecl() (*FuncDecl, error) {
	start, err := p.expect("def")
	if err != nil {
		return nil, err
	}
	name, err := p.expect("IDENT")
	if err != nil {
		return nil, err
	}
	if _, err = p.expect("("); err != nil {
		return nil, err
	}
	var params []string
	if !p.at(")") {
		for {
			param, perr := p.expect("IDENT")
			if perr != nil {
				return nil, perr
			}
			params = append(params, param.Lexeme())
			if !p.match(",") {
				break
			}
		}
	}
	if _, err = p.expect(")"); err != nil {
		return nil, err
	}
	body, end, err := p.block()
	if err != nil {
		return nil, err
	}
	decl := &FuncDecl{
		Name:   name.Lexeme(),
		Params: params,
		span:   start.Span().Extend(end),
	}
	decl.Doc, decl.Body = liftDocstring(body)
	return decl, nil
}

// liftDocstring splits a leading string-literal expression statement off a
// function body. Components downstream only ever see meaningful statements.
func liftDocstring(body []Stmt) (string, []Stmt) {
	if len(body) == 0 {
		return "", body
	}
	if es, ok := body[0].(*ExprStmt); ok {
		if str, ok := es.X.(*StringLit); ok {
			return str.Value, body[1:]
		}
	}
	return "", body
}

func (p *parser) block() ([]Stmt, tailor.Span, error) {
	if _, err := p.expect("{"); err != nil {
		return nil, tailor.Span{}, err
	}
	var stmts []Stmt
	for !p.at("}") {
		if p.atEOF() {
			return nil, tailor.Span{}, fmt.Errorf("unexpected end of input, expected '}'")
		}
		stmt, err := p.stmt()
		if err != nil {
			return nil, tailor.Span{}, err
		}
		stmts = append(stmts, stmt)
	}
	end, err := p.expect("}")
	if err != nil {
		return nil, tailor.Span{}, err
	}
	return stmts, end.Span(), nil
}

func (p *parser) stmt() (Stmt, error) {
	switch {
	case p.at("if"):
		return p.ifStmt()
	case p.at("return"):
		return p.returnStmt()
	case p.at("match"):
		return p.matchStmt()
	case p.at("while"):
		return p.whileStmt()
	case p.atAssignment():
		return p.assignStmt()
	}
	x, err := p.expr()
	if err != nil {
		return nil, err
	}
	return &ExprStmt{X: x, span: x.Span()}, nil
}

// atAssignment peeks ahead for the target list of an assignment statement:
// IDENT (',' IDENT)* '='.
func (p *parser) atAssignment() bool {
	if !p.at("IDENT") {
		return false
	}
	_, comma := Token(",")
	_, assign := Token("=")
	_, ident := Token("IDENT")
	d := 1
	for int(p.peekAt(d).TokType()) == comma {
		if int(p.peekAt(d+1).TokType()) != ident {
			return false
		}
		d += 2
	}
	return int(p.peekAt(d).TokType()) == assign
}

func (p *parser) ifStmt() (Stmt, error) {
	start, _ := p.expect("if")
	cond, err := p.expr()
	if err != nil {
		return nil, err
	}
	then, end, err := p.block()
	if err != nil {
		return nil, err
	}
	var els []Stmt
	if p.match("else") {
		els, end, err = p.block()
		if err != nil {
			return nil, err
		}
	}
	return &IfStmt{Cond: cond, Then: then, Else: els, span: start.Span().Extend(end)}, nil
}

func (p *parser) returnStmt() (Stmt, error) {
	start, _ := p.expect("return")
	result, err := p.expr()
	if err != nil {
		return nil, err
	}
	return &ReturnStmt{Result: result, span: start.Span().Extend(result.Span())}, nil
}

func (p *parser) matchStmt() (Stmt, error) {
	start, _ := p.expect("match")
	subject, err := p.expr()
	if err != nil {
		return nil, err
	}
	if _, err = p.expect("{"); err != nil {
		return nil, err
	}
	var arms []*CaseArm
	for p.at("case") {
		arm, aerr := p.caseArm()
		if aerr != nil {
			return nil, aerr
		}
		arms = append(arms, arm)
	}
	if len(arms) == 0 {
		return nil, fmt.Errorf("match statement at position %d has no case arms", start.Span().From())
	}
	end, err := p.expect("}")
	if err != nil {
		return nil, err
	}
	return &MatchStmt{Subject: subject, Arms: arms, span: start.Span().Extend(end.Span())}, nil
}

func (p *parser) caseArm() (*CaseArm, error) {
	start, _ := p.expect("case")
	arm := &CaseArm{}
	if p.match("_") {
		arm.Wildcard = true
	} else {
		for {
			lit, err := p.literal()
			if err != nil {
				return nil, err
			}
			arm.Literals = append(arm.Literals, lit)
			if !p.match("|") {
				break
			}
		}
	}
	body, end, err := p.block()
	if err != nil {
		return nil, err
	}
	arm.Body = body
	arm.span = start.Span().Extend(end)
	return arm, nil
}

func (p *parser) whileStmt() (Stmt, error) {
	start, _ := p.expect("while")
	cond, err := p.expr()
	if err != nil {
		return nil, err
	}
	body, end, err := p.block()
	if err != nil {
		return nil, err
	}
	return &WhileStmt{Cond: cond, Body: body, span: start.Span().Extend(end)}, nil
}

func (p *parser) assignStmt() (Stmt, error) {
	var targets []string
	start := p.peek().Span()
	for {
		target, err := p.expect("IDENT")
		if err != nil {
			return nil, err
		}
		targets = append(targets, target.Lexeme())
		if !p.match(",") {
			break
		}
	}
	if _, err := p.expect("="); err != nil {
		return nil, err
	}
	var values []Expr
	for {
		value, err := p.expr()
		if err != nil {
			return nil, err
		}
		values = append(values, value)
		if !p.match(",") {
			break
		}
	}
	if len(targets) != len(values) {
		return nil, fmt.Errorf("assignment at position %d has %d target(s) but %d value(s)",
			start.From(), len(targets), len(values))
	}
	span := start.Extend(values[len(values)-1].Span())
	return &AssignStmt{Targets: targets, Values: values, span: span}, nil
}

// --- Expressions ---------------------------------------------------------------

var comparisonOps = []string{"==", "!=", "<=", ">=", "<", ">"}
var additiveOps = []string{"+", "-"}
var multiplicativeOps = []string{"*", "/", "%"}

func (p *parser) expr() (Expr, error) {
	return p.comparison()
}

func (p *parser) comparison() (Expr, error) {
	left, err := p.additive()
	if err != nil {
		return nil, err
	}
	for _, op := range comparisonOps {
		if p.at(op) {
			p.next()
			right, rerr := p.additive()
			if rerr != nil {
				return nil, rerr
			}
			span := left.Span().Extend(right.Span())
			return &BinaryExpr{Op: op, X: left, Y: right, span: span}, nil
		}
	}
	return left, nil
}

func (p *parser) additive() (Expr, error) {
	return p.binaryTier(additiveOps, p.multiplicative)
}

func (p *parser) multiplicative() (Expr, error) {
	return p.binaryTier(multiplicativeOps, p.unary)
}

// binaryTier parses one left-associative tier of infix operators.
func (p *parser) binaryTier(ops []string, operand func() (Expr, error)) (Expr, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}
	for {
		matched := ""
		for _, op := range ops {
			if p.at(op) {
				matched = op
				break
			}
		}
		if matched == "" {
			return left, nil
		}
		p.next()
		right, rerr := operand()
		if rerr != nil {
			return nil, rerr
		}
		span := left.Span().Extend(right.Span())
		left = &BinaryExpr{Op: matched, X: left, Y: right, span: span}
	}
}

func (p *parser) unary() (Expr, error) {
	if p.at("-") {
		start, _ := p.expect("-")
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: "-", X: x, span: start.Span().Extend(x.Span())}, nil
	}
	return p.primary()
}

func (p *parser) primary() (Expr, error) {
	switch {
	case p.at("INT"), p.at("STRING"), p.at("true"), p.at("false"):
		return p.literal()
	case p.at("IDENT"):
		name := p.next()
		if !p.at("(") {
			return &Ident{Name: name.Lexeme(), span: name.Span()}, nil
		}
		p.next()
		var args []Expr
		if !p.at(")") {
			for {
				arg, err := p.expr()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				if !p.match(",") {
					break
				}
			}
		}
		end, err := p.expect(")")
		if err != nil {
			return nil, err
		}
		span := name.Span().Extend(end.Span())
		return &CallExpr{Name: name.Lexeme(), Args: args, span: span}, nil
	case p.at("("):
		p.next()
		x, err := p.expr()
		if err != nil {
			return nil, err
		}
		if _, err = p.expect(")"); err != nil {
			return nil, err
		}
		return x, nil
	}
	tok := p.peek()
	return nil, fmt.Errorf("unexpected '%s' at position %d", tok.Lexeme(), tok.Span().From())
}

func (p *parser) literal() (Expr, error) {
	switch {
	case p.at("INT"):
		tok := p.next()
		v, err := strconv.ParseInt(tok.Lexeme(), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer literal '%s': %v", tok.Lexeme(), err)
		}
		return &IntLit{Value: v, span: tok.Span()}, nil
	case p.at("STRING"):
		tok := p.next()
		lexeme := tok.Lexeme()
		if len(lexeme) < 2 {
			return nil, fmt.Errorf("malformed string literal at position %d", tok.Span().From())
		}
		return &StringLit{Value: lexeme[1 : len(lexeme)-1], span: tok.Span()}, nil
	case p.at("true"):
		tok := p.next()
		return &BoolLit{Value: true, span: tok.Span()}, nil
	case p.at("false"):
		tok := p.next()
		return &BoolLit{Value: false, span: tok.Span()}, nil
	}
	tok := p.peek()
	return nil, fmt.Errorf("expected literal at position %d, found '%s'", tok.Span().From(), tok.Lexeme())
}
