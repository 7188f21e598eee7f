package lexer

import "fmt"

type TokenType int

type Token struct {
	Type    TokenType // Type of the token
	Lexeme  string    // Actual string from source code
	Literal string    // Literal value (if applicable), empty string if not
	Pos     Position  // Position in source code
}

// NewToken creates a new Token instance
func NewToken(tokenType TokenType, lexeme string, literal string, pos Position) Token {
	return Token{
		Type:    tokenType,
		Lexeme:  lexeme,
		Literal: literal,
		Pos:     pos,
	}
}

const (
	EOF TokenType = iota // End of input

	FUNCTION // function
	RET      // ret
	BR       // br
	SWITCH   // switch
	CALL     // call
	MALLOC   // malloc
	FREE     // free
	LOAD     // load
	STORE    // store
	SUM      // sum
	INCR     // incr
	DECR     // decr
	SELECT   // select
	ASSERT   // assert
	READ     // read
	WRITE    // write

	BOP // binary operation mnemonic (add, udiv, eq, ...)

	ID  // identifier (register, label, function name)
	NUM // decimal integer, optionally signed

	ASSIGN  // =
	COLON   // :
	NEWLINE // end of line, statements are line-oriented

	ILLEGAL // illegal token
)

// TokenToString converts a TokenType to its string representation
func (t Token) TokenToString() (string, bool) {
	mapping := map[TokenType]string{
		FUNCTION: "function",
		RET:      "ret",
		BR:       "br",
		SWITCH:   "switch",
		CALL:     "call",
		MALLOC:   "malloc",
		FREE:     "free",
		LOAD:     "load",
		STORE:    "store",
		SUM:      "sum",
		INCR:     "incr",
		DECR:     "decr",
		SELECT:   "select",
		ASSERT:   "assert",
		READ:     "read",
		WRITE:    "write",
		BOP:      "bop",
		ID:       "id",
		NUM:      "num",
		ASSIGN:   "=",
		COLON:    ":",
		NEWLINE:  "newline",
		EOF:      "$",
	}

	str, ok := mapping[t.Type]
	return str, ok
}

// String returns a string representation of the Token
func (t Token) String() string {
	if t.Literal == "" {
		return fmt.Sprintf("T_{%s, %v, nil, %s}",
			t.Type, t.Lexeme, t.Pos.String())
	}

	return fmt.Sprintf("T_{%s, %v, %q, %s}",
		t.Type, t.Lexeme, t.Literal, t.Pos.String())
}

// String returns a string representation of the TokenType
func (t TokenType) String() string {
	if str, ok := (Token{Type: t}).TokenToString(); ok {
		return str
	}

	return fmt.Sprintf("UNKNOWN(%d)", int(t))
}
