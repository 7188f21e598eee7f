package lexer_test

import (
	"swppasm/pkg/lexer"
	"testing"
)

func TestComments(t *testing.T) {
	input := "; header comment\n" +
		"ret 0 ; trailing comment\n" +
		"  ; indented comment\n" +
		"br exit\n"
	mylexer := lexer.NewLexer(input)

	expectedTokens := []lexer.TokenType{
		lexer.NEWLINE,
		lexer.RET, lexer.NUM, lexer.NEWLINE,
		lexer.NEWLINE,
		lexer.BR, lexer.ID, lexer.NEWLINE,
		lexer.EOF,
	}

	for i, expected := range expectedTokens {
		token := mylexer.NextToken()
		if token.Type != expected {
			t.Errorf("Token %d: expected %s, got %s (%q)", i, expected, token.Type, token.Lexeme)
		}
	}
}

func TestLinePositions(t *testing.T) {
	input := "ret 0\nbr exit\n"
	mylexer := lexer.NewLexer(input)

	ret := mylexer.NextToken()
	if ret.Pos.Line != 1 || ret.Pos.Column != 1 {
		t.Errorf("ret position: expected 1:1, got %d:%d", ret.Pos.Line, ret.Pos.Column)
	}

	num := mylexer.NextToken()
	if num.Pos.Line != 1 || num.Pos.Column != 5 {
		t.Errorf("num position: expected 1:5, got %d:%d", num.Pos.Line, num.Pos.Column)
	}

	mylexer.NextToken() // newline

	br := mylexer.NextToken()
	if br.Pos.Line != 2 || br.Pos.Column != 1 {
		t.Errorf("br position: expected 2:1, got %d:%d", br.Pos.Line, br.Pos.Column)
	}
}
