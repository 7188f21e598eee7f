package lexer

import "fmt"

// Position locates a token in the source: 1-based line and column plus the
// byte offset from the start of the input.
type Position struct {
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("%d, %d, %d", p.Line, p.Column, p.Offset)
}

// NewPosition builds a Position from its three coordinates.
func NewPosition(line, column, offset int) Position {
	return Position{
		Line:   line,
		Column: column,
		Offset: offset,
	}
}
