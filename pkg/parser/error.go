package parser

import (
	"fmt"

	"swppasm/pkg/color"
	"swppasm/pkg/lexer"
)

// addError records a parsing error with location
func (p *Parser) addError(msg string, pos lexer.Position) {
	formatted := color.RedText(msg) + " at " +
		color.YellowText(fmt.Sprintf("Line: %d, Column %d", pos.Line, pos.Column))
	p.errors = append(p.errors, formatted)
}

// addErrorf records a positionless parsing error (block and function level
// problems that only surface once the construct is complete)
func (p *Parser) addErrorf(format string, args ...any) {
	p.errors = append(p.errors, color.RedText(fmt.Sprintf(format, args...)))
}

// Errors returns the list of parsing errors
func (p *Parser) Errors() []string {
	return p.errors
}
