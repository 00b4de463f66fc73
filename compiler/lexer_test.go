package compiler

import (
	"testing"
)

func TestLexerDelimiters(t *testing.T) {
	input := `( ) [ ]`
	expected := []struct {
		typ TokenType
		lit string
	}{
		{TokenLParen, "("},
		{TokenRParen, ")"},
		{TokenLBracket, "["},
		{TokenRBracket, "]"},
		{TokenEOF, ""},
	}

	l := NewLexer(input)
	for i, exp := range expected {
		tok := l.NextToken()
		if tok.Type != exp.typ {
			t.Errorf("token[%d] type = %v, want %v", i, tok.Type, exp.typ)
		}
		if tok.Literal != exp.lit {
			t.Errorf("token[%d] literal = %q, want %q", i, tok.Literal, exp.lit)
		}
	}
}

func TestLexerNumbers(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"42", "42"},
		{"0", "0"},
		{"-123", "-123"},
		{"3.14", "3.14"},
		{"-2.5", "-2.5"},
		{"1.5e-3", "1.5e-3"},
		{"0x1F", "0x1F"},
	}

	for _, tc := range tests {
		l := NewLexer(tc.input)
		tok := l.NextToken()
		if tok.Type != TokenNumber {
			t.Errorf("Lexer(%q): type = %v, want NUMBER", tc.input, tok.Type)
		}
		if tok.Literal != tc.want {
			t.Errorf("Lexer(%q): literal = %q, want %q", tc.input, tok.Literal, tc.want)
		}
	}
}

func TestLexerSymbols(t *testing.T) {
	tests := []string{
		"foo",
		"square:int",
		"+",
		"not=",
		"<=",
		">>",
		"the",
		"-",
	}

	for _, input := range tests {
		l := NewLexer(input)
		tok := l.NextToken()
		if tok.Type != TokenSymbol {
			t.Errorf("Lexer(%q): type = %v, want SYMBOL", input, tok.Type)
		}
		if tok.Literal != input {
			t.Errorf("Lexer(%q): literal = %q, want %q", input, tok.Literal, input)
		}
	}
}

func TestLexerStrings(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`"hello"`, "hello"},
		{`""`, ""},
		{`"a\nb"`, "a\nb"},
		{`"say \"hi\""`, `say "hi"`},
	}

	for _, tc := range tests {
		l := NewLexer(tc.input)
		tok := l.NextToken()
		if tok.Type != TokenString {
			t.Errorf("Lexer(%q): type = %v, want STRING", tc.input, tok.Type)
		}
		if tok.Literal != tc.want {
			t.Errorf("Lexer(%q): literal = %q, want %q", tc.input, tok.Literal, tc.want)
		}
	}
}

func TestLexerUnterminatedString(t *testing.T) {
	l := NewLexer(`"oops`)
	tok := l.NextToken()
	if tok.Type != TokenError {
		t.Errorf("type = %v, want ERROR", tok.Type)
	}
}

func TestLexerComments(t *testing.T) {
	input := "; heading\nfoo ; trailing\nbar"
	toks := Tokenize(input)

	var got []string
	for _, tok := range toks {
		if tok.Type == TokenSymbol {
			got = append(got, tok.Literal)
		}
	}
	if len(got) != 2 || got[0] != "foo" || got[1] != "bar" {
		t.Errorf("symbols = %v, want [foo bar]", got)
	}
}

func TestLexerPositions(t *testing.T) {
	l := NewLexer("foo\n  bar")

	tok := l.NextToken()
	if tok.Pos.Line != 1 || tok.Pos.Column != 1 {
		t.Errorf("foo at %d:%d, want 1:1", tok.Pos.Line, tok.Pos.Column)
	}

	tok = l.NextToken()
	if tok.Pos.Line != 2 || tok.Pos.Column != 3 {
		t.Errorf("bar at %d:%d, want 2:3", tok.Pos.Line, tok.Pos.Column)
	}
}
