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
	"strings"
)

// Unparse renders a program back into canonical source text. Parsing the
// output again yields a structurally equal tree.
func Unparse(prog *Program) string {
	var b strings.Builder
	for i, decl := range prog.Funcs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(UnparseFunc(decl))
	}
	return b.String()
}

// UnparseFunc renders a single function declaration.
func UnparseFunc(decl *FuncDecl) string {
	var b strings.Builder
	fmt.Fprintf(&b, "def %s(%s) {\n", decl.Name, strings.Join(decl.Params, ", "))
	if decl.Doc != "" {
		fmt.Fprintf(&b, "    %s\n", strconv.Quote(decl.Doc))
	}
	writeBlock(&b, decl.Body, 1)
	b.WriteString("}\n")
	return b.String()
}

func writeBlock(b *strings.Builder, stmts []Stmt, level int) {
	for _, stmt := range stmts {
		writeStmt(b, stmt, level)
	}
}

func writeStmt(b *strings.Builder, stmt Stmt, level int) {
	ind := strings.Repeat("    ", level)
	switch s := stmt.(type) {
	case *IfStmt:
		fmt.Fprintf(b, "%sif %s {\n", ind, UnparseExpr(s.Cond))
		writeBlock(b, s.Then, level+1)
		if s.Else != nil {
			fmt.Fprintf(b, "%s} else {\n", ind)
			writeBlock(b, s.Else, level+1)
		}
		fmt.Fprintf(b, "%s}\n", ind)
	case *ReturnStmt:
		fmt.Fprintf(b, "%sreturn %s\n", ind, UnparseExpr(s.Result))
	case *MatchStmt:
		fmt.Fprintf(b, "%smatch %s {\n", ind, UnparseExpr(s.Subject))
		for _, arm := range s.Arms {
			pattern := "_"
			if !arm.Wildcard {
				alts := make([]string, len(arm.Literals))
				for i, lit := range arm.Literals {
					alts[i] = UnparseExpr(lit)
				}
				pattern = strings.Join(alts, " | ")
			}
			fmt.Fprintf(b, "%s    case %s {\n", ind, pattern)
			writeBlock(b, arm.Body, level+2)
			fmt.Fprintf(b, "%s    }\n", ind)
		}
		fmt.Fprintf(b, "%s}\n", ind)
	case *WhileStmt:
		fmt.Fprintf(b, "%swhile %s {\n", ind, UnparseExpr(s.Cond))
		writeBlock(b, s.Body, level+1)
		fmt.Fprintf(b, "%s}\n", ind)
	case *AssignStmt:
		values := make([]string, len(s.Values))
		for i, v := range s.Values {
			values[i] = UnparseExpr(v)
		}
		fmt.Fprintf(b, "%s%s = %s\n", ind, strings.Join(s.Targets, ", "), strings.Join(values, ", "))
	case *ExprStmt:
		fmt.Fprintf(b, "%s%s\n", ind, UnparseExpr(s.X))
	default:
		panic(fmt.Sprintf("unparse: unknown statement kind %T", stmt))
	}
}

// UnparseExpr renders a single expression. Sub-expressions are parenthesized
// where the tree structure demands it.
func UnparseExpr(expr Expr) string {
	switch e := expr.(type) {
	case *Ident:
		return e.Name
	case *IntLit:
		return strconv.FormatInt(e.Value, 10)
	case *StringLit:
		return strconv.Quote(e.Value)
	case *BoolLit:
		if e.Value {
			return "true"
		}
		return "false"
	case *UnaryExpr:
		return e.Op + maybeParen(e.X)
	case *BinaryExpr:
		return fmt.Sprintf("%s %s %s", maybeParen(e.X), e.Op, maybeParen(e.Y))
	case *CallExpr:
		args := make([]string, len(e.Args))
		for i, arg := range e.Args {
			args[i] = UnparseExpr(arg)
		}
		return fmt.Sprintf("%s(%s)", e.Name, strings.Join(args, ", "))
	default:
		panic(fmt.Sprintf("unparse: unknown expression kind %T", expr))
	}
}

func maybeParen(expr Expr) string {
	switch expr.(type) {
	case *BinaryExpr, *UnaryExpr:
		return "(" + UnparseExpr(expr) + ")"
	}
	return UnparseExpr(expr)
}
