/*
Command tailor provides an interactive command line tool for the Tailor
script language. Entering a function definition defines the function and
transparently attempts the tail-recursion rewrite; entering an expression
evaluates it. The tool serves as a sandbox for experiments with the shape
matcher and loop synthesizer.

Commands:

    :tree f      render the (possibly transformed) AST of function f
    :src f       unparse function f back into source text
    :doc f       show the docstring of function f

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 The Tailor Project Authors

*/
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/tailorlang/tailor/interp"
	"github.com/tailorlang/tailor/rewrite"
	"github.com/tailorlang/tailor/syntax"
)

// tracer traces with key 'tailor.repl'
func tracer() tracing.Trace {
	return tracing.Select("tailor.repl")
}

func main() {
	// set up logging
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	initf := flag.String("init", "", "Initial load")
	flag.Parse()
	tracer().SetTraceLevel(tracing.TraceLevelFromString(*tlevel))
	pterm.Info.Println("Welcome to Tailor") // colored welcome message
	tracer().Infof("Trace level is %s", *tlevel)
	//
	// set up the global environment
	env := interp.NewEnv("globals", nil)
	//
	// set up REPL
	repl, err := readline.New("tailor> ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := &Intp{
		repl: repl,
		env:  env,
	}
	//
	// load an init file and start receiving commands / script lines
	tracer().Infof("Quit with <ctrl>D") // inform user how to stop the CLI
	intp.loadInitFile(*initf)           // init file name provided by flag
	intp.REPL()                         // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	repl *readline.Instance
	env  *interp.Env
}

func (intp *Intp) loadInitFile(filename string) {
	if filename == "" {
		return
	}
	data, err := ioutil.ReadFile(filename)
	if err != nil {
		tracer().Errorf("Unable to open init file: %s", filename)
		return
	}
	if err := intp.define(string(data)); err != nil {
		tracer().Errorf("Error in init file: " + err.Error())
	}
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if strings.HasPrefix(line, "def ") || strings.HasPrefix(line, "def(") {
			line, err = intp.readDefinition(line)
			if err != nil {
				pterm.Error.Println(err.Error())
				continue
			}
			if err = intp.define(line); err != nil {
				pterm.Error.Println(err.Error())
			}
			continue
		}
		if strings.HasPrefix(line, ":") {
			intp.command(line)
			continue
		}
		intp.eval(line)
	}
	println("Good bye!")
}

// readDefinition keeps reading lines until the braces of a definition
// balance out.
func (intp *Intp) readDefinition(first string) (string, error) {
	var b strings.Builder
	b.WriteString(first)
	depth := braceDepth(first)
	for depth > 0 {
		line, err := intp.repl.Readline()
		if err != nil {
			return "", fmt.Errorf("unexpected end of input in definition")
		}
		b.WriteString("\n")
		b.WriteString(line)
		depth += braceDepth(line)
	}
	return b.String(), nil
}

func braceDepth(line string) int {
	depth := 0
	scanner := bufio.NewScanner(strings.NewReader(line))
	scanner.Split(bufio.ScanRunes)
	instring := false
	for scanner.Scan() {
		switch scanner.Text() {
		case "\"":
			instring = !instring
		case "{":
			if !instring {
				depth++
			}
		case "}":
			if !instring {
				depth--
			}
		}
	}
	return depth
}

// define parses source text and materializes every declared function,
// attempting the tail-recursion rewrite on each.
func (intp *Intp) define(src string) error {
	prog, err := syntax.Parse(src)
	if err != nil {
		return err
	}
	for _, decl := range prog.Funcs {
		fn := rewrite.Declaration(decl, intp.env)
		status := "unchanged"
		if fn.Transformed() {
			status = "rewritten into a loop"
		}
		pterm.Info.Printf("defined %s (%s)\n", fn, status)
	}
	return nil
}

// eval evaluates an expression, given on a line by itself. The line is
// wrapped into a throwaway function body and applied.
func (intp *Intp) eval(line string) {
	src := fmt.Sprintf("def repl_0() { return %s }", line)
	prog, err := syntax.Parse(src)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	fn := interp.Materialize(prog.Funcs[0], interp.NewEnv("repl", intp.env))
	result, err := interp.Apply(fn)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	pterm.Info.Println(interp.FormatValue(result))
}

// command dispatches ':'-prefixed REPL commands.
func (intp *Intp) command(line string) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		pterm.Error.Println("usage: :tree f | :src f | :doc f")
		return
	}
	fn := intp.lookup(fields[1])
	if fn == nil {
		pterm.Error.Printf("no function '%s' defined\n", fields[1])
		return
	}
	switch fields[0] {
	case ":tree":
		root := pterm.NewTreeFromLeveledList(leveledFunc(fn.Decl()))
		pterm.DefaultTree.WithRoot(root).Render()
	case ":src":
		pterm.Println(syntax.UnparseFunc(fn.Decl()))
	case ":doc":
		if fn.Doc == "" {
			pterm.Info.Println("(no docstring)")
		} else {
			pterm.Info.Println(fn.Doc)
		}
	default:
		pterm.Error.Printf("unknown command %s\n", fields[0])
	}
}

func (intp *Intp) lookup(name string) *interp.Function {
	b, _ := intp.env.Resolve(name)
	if b == nil {
		return nil
	}
	fn, ok := b.Value.(*interp.Function)
	if !ok {
		return nil
	}
	return fn
}

// --- AST display ------------------------------------------------------------

// leveledFunc flattens a declaration into a pterm leveled list for tree
// rendering on a terminal.
func leveledFunc(decl *syntax.FuncDecl) pterm.LeveledList {
	ll := pterm.LeveledList{{
		Level: 0,
		Text:  fmt.Sprintf("def %s(%s)", decl.Name, strings.Join(decl.Params, ", ")),
	}}
	return leveledBlock(decl.Body, ll, 1)
}

func leveledBlock(stmts []syntax.Stmt, ll pterm.LeveledList, level int) pterm.LeveledList {
	for _, stmt := range stmts {
		ll = leveledStmt(stmt, ll, level)
	}
	return ll
}

func leveledStmt(stmt syntax.Stmt, ll pterm.LeveledList, level int) pterm.LeveledList {
	item := func(text string) {
		ll = append(ll, pterm.LeveledListItem{Level: level, Text: text})
	}
	switch s := stmt.(type) {
	case *syntax.IfStmt:
		item("if " + syntax.UnparseExpr(s.Cond))
		ll = leveledBlock(s.Then, ll, level+1)
		if s.Else != nil {
			item("else")
			ll = leveledBlock(s.Else, ll, level+1)
		}
	case *syntax.ReturnStmt:
		item("return " + syntax.UnparseExpr(s.Result))
	case *syntax.MatchStmt:
		item("match " + syntax.UnparseExpr(s.Subject))
		for _, arm := range s.Arms {
			pattern := "_"
			if !arm.Wildcard {
				alts := make([]string, len(arm.Literals))
				for i, lit := range arm.Literals {
					alts[i] = syntax.UnparseExpr(lit)
				}
				pattern = strings.Join(alts, " | ")
			}
			ll = append(ll, pterm.LeveledListItem{Level: level + 1, Text: "case " + pattern})
			ll = leveledBlock(arm.Body, ll, level+2)
		}
	case *syntax.WhileStmt:
		item("while " + syntax.UnparseExpr(s.Cond))
		ll = leveledBlock(s.Body, ll, level+1)
	case *syntax.AssignStmt:
		values := make([]string, len(s.Values))
		for i, v := range s.Values {
			values[i] = syntax.UnparseExpr(v)
		}
		item(strings.Join(s.Targets, ", ") + " = " + strings.Join(values, ", "))
	case *syntax.ExprStmt:
		item(syntax.UnparseExpr(s.X))
	}
	return ll
}
