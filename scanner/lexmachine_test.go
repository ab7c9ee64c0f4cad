package scanner

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/timtadh/lexmachine"
)

func miniAdapter(t *testing.T) *LMAdapter {
	t.Helper()
	ids := map[string]int{"{": int('{'), "}": int('}'), "loop": 10}
	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`([a-z])+`), MakeToken("IDENT", Ident))
		lexer.Add([]byte(`( |\t|\n)+`), Skip)
	}
	adapter, err := NewLMAdapter(init, []string{"{", "}"}, []string{"loop"}, ids)
	if err != nil {
		t.Fatal(err)
	}
	return adapter
}

func TestLMAdapterCreate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tailor.scanner")
	defer teardown()
	//
	if miniAdapter(t) == nil {
		t.Error("no adapter created")
	}
}

func TestLMScannerTokens(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tailor.scanner")
	defer teardown()
	//
	adapter := miniAdapter(t)
	scan, err := adapter.Scanner("loop { body }")
	if err != nil {
		t.Fatal(err)
	}
	expect := []struct {
		lexeme string
		id     int
	}{
		{"loop", 10}, {"{", int('{')}, {"body", Ident}, {"}", int('}')},
	}
	for _, want := range expect {
		tok := scan.NextToken()
		if tok.Lexeme() != want.lexeme || int(tok.TokType()) != want.id {
			t.Errorf("expected %q/%d, got %q/%d", want.lexeme, want.id, tok.Lexeme(), tok.TokType())
		}
	}
	if tok := scan.NextToken(); tok.TokType() != EOF {
		t.Errorf("expected EOF, got %q", tok.Lexeme())
	}
}

func TestLMKeywordBeatsIdent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tailor.scanner")
	defer teardown()
	//
	// 'loop' is registered before the identifier pattern; on equal-length
	// matches the keyword wins.
	adapter := miniAdapter(t)
	scan, _ := adapter.Scanner("loop loops")
	if tok := scan.NextToken(); int(tok.TokType()) != 10 {
		t.Errorf("'loop' should be the keyword, got token type %d", tok.TokType())
	}
	if tok := scan.NextToken(); int(tok.TokType()) != Ident {
		t.Errorf("'loops' should be an identifier, got token type %d", tok.TokType())
	}
}

func TestLMScannerErrorHandler(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tailor.scanner")
	defer teardown()
	//
	adapter := miniAdapter(t)
	scan, _ := adapter.Scanner("body ???")
	errors := 0
	scan.SetErrorHandler(func(error) { errors++ })
	for tok := scan.NextToken(); tok.TokType() != EOF; tok = scan.NextToken() {
	}
	if errors == 0 {
		t.Error("unscannable input should have been reported to the error handler")
	}
}
