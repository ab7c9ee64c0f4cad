package syntax

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 The Tailor Project Authors

*/

import (
	"fmt"
	"sync"

	"github.com/tailorlang/tailor/scanner"
	"github.com/timtadh/lexmachine"
)

// The tokens representing literal lexemes
var literals = []string{
	"==", "!=", "<=", ">=",
	"(", ")", "{", "}", ",", "|", "_", "=",
	"<", ">", "+", "-", "*", "/", "%",
}

// The keyword tokens
var keywords = []string{"def", "if", "else", "return", "match", "case", "while", "true", "false"}

// All of the non-literal, non-keyword tokens
var tokens = []string{"COMMENT", "IDENT", "INT", "STRING"}

// tokenIds will be set in initTokens()
var tokenIds map[string]int // A map from the token names to their token types

var initOnce sync.Once // monitors one-time initialization
func initTokens() {
	initOnce.Do(func() {
		tokenIds = make(map[string]int)
		tokenIds["COMMENT"] = scanner.Comment
		tokenIds["IDENT"] = scanner.Ident
		tokenIds["INT"] = scanner.Int
		tokenIds["STRING"] = scanner.String
		for i, kw := range keywords {
			tokenIds[kw] = 10 + i
		}
		tokenIds["=="] = 30
		tokenIds["!="] = 31
		tokenIds["<="] = 32
		tokenIds[">="] = 33
		for _, lit := range literals {
			if len(lit) == 1 {
				tokenIds[lit] = int(lit[0])
			}
		}
	})
}

// Token returns a token name and its value.
func Token(t string) (string, int) {
	initTokens()
	id, ok := tokenIds[t]
	if !ok {
		panic(fmt.Errorf("unknown token: %s", t))
	}
	return t, id
}

// Lexer creates a new lexmachine lexer for the Tailor script language.
func Lexer() (*scanner.LMAdapter, error) {
	initTokens()
	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`#[^\n]*\n?`), scanner.Skip) // skip comments
		lexer.Add([]byte(`"[^"]*"`), makeToken("STRING"))
		lexer.Add([]byte(`([a-z]|[A-Z]|_)([a-z]|[A-Z]|[0-9]|_)*`), makeToken("IDENT"))
		lexer.Add([]byte(`[0-9]+`), makeToken("INT"))
		lexer.Add([]byte(`( |\t|\n|\r)+`), scanner.Skip)
	}
	adapter, err := scanner.NewLMAdapter(init, literals, keywords, tokenIds)
	if err != nil {
		return nil, err
	}
	return adapter, nil
}

func makeToken(s string) lexmachine.Action {
	id, ok := tokenIds[s]
	if !ok {
		panic(fmt.Errorf("unknown token: %s", s))
	}
	return scanner.MakeToken(s, id)
}
