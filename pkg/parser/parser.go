package parser

import (
	"fmt"
	"regexp"

	"swppasm/pkg/ir"
	"swppasm/pkg/lexer"
)

var registerRegex = regexp.MustCompile(`^(r[0-9]+|arg[0-9]+)$`)

// Parser turns the token stream of an assembly source into an ir.Program.
// Statements are line-oriented; on a malformed line the parser records an
// error and resumes at the next line.
type Parser struct {
	lexer   *lexer.Lexer
	program *ir.Program
	errors  []string

	fn         *ir.Function // function currently being built, nil before the first header
	blockLabel string       // label of the block currently being built
	blockFirst ir.Stmt
	blockLast  ir.Stmt
}

// NewParser creates a parser over the given lexer.
func NewParser(l *lexer.Lexer) *Parser {
	return &Parser{
		lexer:   l,
		program: ir.NewProgram(),
	}
}

// Parse consumes the whole input and returns the program. Check Errors()
// before using the result.
func (p *Parser) Parse() *ir.Program {
	for {
		tok := p.lexer.NextToken()

		switch tok.Type {
		case lexer.EOF:
			p.closeBlock()
			return p.program

		case lexer.NEWLINE:
			continue

		case lexer.FUNCTION:
			p.closeBlock()
			p.parseFunctionHeader(tok)

		case lexer.ID:
			if p.lexer.Peek().Type == lexer.COLON {
				p.closeBlock()
				p.parseBlockLabel(tok)
				continue
			}
			p.parseStatement(tok)

		default:
			p.parseStatement(tok)
		}
	}
}

// parseFunctionHeader parses "function <name> <nargs>:".
func (p *Parser) parseFunctionHeader(head lexer.Token) {
	name := p.lexer.NextToken()
	if name.Type != lexer.ID {
		p.addError("Expected function name", name.Pos)
		p.skipLine()
		return
	}

	nargs := p.lexer.NextToken()
	if nargs.Type != lexer.NUM {
		p.addError("Expected argument count", nargs.Pos)
		p.skipLine()
		return
	}
	n, err := ir.ParseImmediate(nargs.Literal)
	if err != nil || int64(n) < 0 {
		p.addError("Invalid argument count", nargs.Pos)
		p.skipLine()
		return
	}

	if colon := p.lexer.NextToken(); colon.Type != lexer.COLON {
		p.addError("Missing colon after function header", colon.Pos)
		p.skipLine()
		return
	}
	if !p.endOfLine() {
		return
	}

	fn := ir.NewFunction(name.Literal, int(n))
	if err := p.program.AddFunction(fn); err != nil {
		p.addError(fmt.Sprintf("Duplicate function '%s'", name.Literal), name.Pos)
		return
	}
	p.fn = fn
}

// parseBlockLabel parses "<label>:".
func (p *Parser) parseBlockLabel(label lexer.Token) {
	p.lexer.NextToken() // the colon, already peeked
	if !p.endOfLine() {
		return
	}
	if p.fn == nil {
		p.addError("Basic block outside of a function", label.Pos)
		return
	}
	p.blockLabel = label.Literal
}

// parseStatement parses one statement line starting at head and appends it
// to the open block.
func (p *Parser) parseStatement(head lexer.Token) {
	line := head.Pos.Line

	var stmt ir.Stmt
	switch head.Type {
	case lexer.RET:
		val, ok := p.parseOperand()
		if !ok || !p.endOfLine() {
			return
		}
		stmt = ir.NewRet(line, val)

	case lexer.BR:
		stmt = p.parseBranch(line)
		if stmt == nil {
			return
		}

	case lexer.SWITCH:
		stmt = p.parseSwitch(line)
		if stmt == nil {
			return
		}

	case lexer.FREE:
		addr, ok := p.parseOperand()
		if !ok || !p.endOfLine() {
			return
		}
		stmt = ir.NewFree(line, addr)

	case lexer.STORE:
		val, ok := p.parseOperand()
		if !ok {
			return
		}
		addr, ok := p.parseOperand()
		if !ok || !p.endOfLine() {
			return
		}
		stmt = ir.NewStore(line, val, addr)

	case lexer.ASSERT:
		a, ok := p.parseOperand()
		if !ok {
			return
		}
		b, ok := p.parseOperand()
		if !ok || !p.endOfLine() {
			return
		}
		stmt = ir.NewAssert(line, a, b)

	case lexer.WRITE:
		val, ok := p.parseOperand()
		if !ok || !p.endOfLine() {
			return
		}
		stmt = ir.NewWrite(line, val)

	case lexer.ID:
		stmt = p.parseAssignment(head)
		if stmt == nil {
			return
		}

	default:
		p.addError(fmt.Sprintf("Unexpected token '%s'", head.Lexeme), head.Pos)
		p.skipLine()
		return
	}

	p.appendStmt(stmt, head.Pos)
}

// parseBranch parses "br <label>" or "br <cond> <iftrue> <iffalse>".
func (p *Parser) parseBranch(line int) ir.Stmt {
	first := p.lexer.NextToken()
	if first.Type == lexer.NEWLINE || first.Type == lexer.EOF {
		p.addError("Missing branch target", first.Pos)
		return nil
	}

	if next := p.lexer.Peek().Type; first.Type == lexer.ID &&
		(next == lexer.NEWLINE || next == lexer.EOF) {
		p.lexer.NextToken()
		return ir.NewBr(line, first.Literal)
	}

	cond, ok := p.operandFromToken(first)
	if !ok {
		p.skipLine()
		return nil
	}
	ifTrue := p.lexer.NextToken()
	if ifTrue.Type != lexer.ID {
		p.addError("Expected branch target label", ifTrue.Pos)
		p.skipLine()
		return nil
	}
	ifFalse := p.lexer.NextToken()
	if ifFalse.Type != lexer.ID {
		p.addError("Expected branch target label", ifFalse.Pos)
		p.skipLine()
		return nil
	}
	if !p.endOfLine() {
		return nil
	}
	return ir.NewBrCond(line, cond, ifTrue.Literal, ifFalse.Literal)
}

// parseSwitch parses "switch <cond> {<value> <label>}* <default>".
func (p *Parser) parseSwitch(line int) ir.Stmt {
	cond, ok := p.parseOperand()
	if !ok {
		return nil
	}

	var cases []ir.SwitchCase
	for {
		tok := p.lexer.NextToken()

		switch tok.Type {
		case lexer.NUM:
			v, err := ir.ParseImmediate(tok.Literal)
			if err != nil {
				p.addError("Invalid case value", tok.Pos)
				p.skipLine()
				return nil
			}
			label := p.lexer.NextToken()
			if label.Type != lexer.ID {
				p.addError("Expected case target label", label.Pos)
				p.skipLine()
				return nil
			}
			cases = append(cases, ir.SwitchCase{Value: v, Label: label.Literal})

		case lexer.ID:
			if !p.endOfLine() {
				return nil
			}
			return ir.NewSwitch(line, cond, cases, tok.Literal)

		default:
			p.addError("Expected default target label", tok.Pos)
			p.skipLine()
			return nil
		}
	}
}

// parseAssignment parses "<reg> = <rhs>" statement forms.
func (p *Parser) parseAssignment(dst lexer.Token) ir.Stmt {
	line := dst.Pos.Line

	if !registerRegex.MatchString(dst.Literal) {
		p.addError(fmt.Sprintf("Expected register, got '%s'", dst.Lexeme), dst.Pos)
		p.skipLine()
		return nil
	}
	if eq := p.lexer.NextToken(); eq.Type != lexer.ASSIGN {
		p.addError("Missing assignment operator", eq.Pos)
		p.skipLine()
		return nil
	}

	head := p.lexer.NextToken()
	switch head.Type {
	case lexer.CALL:
		callee := p.lexer.NextToken()
		if callee.Type != lexer.ID {
			p.addError("Expected function name", callee.Pos)
			p.skipLine()
			return nil
		}
		var args []ir.Operand
		for p.lexer.Peek().Type != lexer.NEWLINE && p.lexer.Peek().Type != lexer.EOF {
			a, ok := p.parseOperand()
			if !ok {
				return nil
			}
			args = append(args, a)
		}
		p.endOfLine()
		return ir.NewCall(line, dst.Literal, callee.Literal, args)

	case lexer.MALLOC:
		size, ok := p.parseOperand()
		if !ok || !p.endOfLine() {
			return nil
		}
		return ir.NewMalloc(line, dst.Literal, size)

	case lexer.LOAD:
		addr, ok := p.parseOperand()
		if !ok || !p.endOfLine() {
			return nil
		}
		return ir.NewLoad(line, dst.Literal, addr)

	case lexer.READ:
		if !p.endOfLine() {
			return nil
		}
		return ir.NewRead(line, dst.Literal)

	case lexer.SUM:
		var terms []ir.Operand
		for p.lexer.Peek().Type != lexer.NEWLINE && p.lexer.Peek().Type != lexer.EOF {
			t, ok := p.parseOperand()
			if !ok {
				return nil
			}
			terms = append(terms, t)
		}
		if len(terms) < 2 {
			p.addError("Sum needs at least two operands", head.Pos)
			p.skipLine()
			return nil
		}
		p.endOfLine()
		return ir.NewSum(line, dst.Literal, terms)

	case lexer.INCR, lexer.DECR:
		a, ok := p.parseOperand()
		if !ok || !p.endOfLine() {
			return nil
		}
		kind := ir.Incr
		if head.Type == lexer.DECR {
			kind = ir.Decr
		}
		return ir.NewUop(line, dst.Literal, kind, a)

	case lexer.SELECT:
		cond, ok := p.parseOperand()
		if !ok {
			return nil
		}
		a, ok := p.parseOperand()
		if !ok {
			return nil
		}
		b, ok := p.parseOperand()
		if !ok || !p.endOfLine() {
			return nil
		}
		return ir.NewSelect(line, dst.Literal, cond, a, b)

	case lexer.BOP:
		kind, ok := ir.BopKindFromString(head.Literal)
		if !ok {
			p.addError(fmt.Sprintf("Unknown operation '%s'", head.Lexeme), head.Pos)
			p.skipLine()
			return nil
		}
		a, aok := p.parseOperand()
		if !aok {
			return nil
		}
		b, bok := p.parseOperand()
		if !bok || !p.endOfLine() {
			return nil
		}
		return ir.NewBop(line, dst.Literal, kind, a, b)

	default:
		p.addError(fmt.Sprintf("Unexpected token '%s' after '='", head.Lexeme), head.Pos)
		p.skipLine()
		return nil
	}
}

// parseOperand reads the next token as a register or immediate operand.
func (p *Parser) parseOperand() (ir.Operand, bool) {
	tok := p.lexer.NextToken()
	if tok.Type == lexer.NEWLINE || tok.Type == lexer.EOF {
		p.addError("Missing operand", tok.Pos)
		return ir.Operand{}, false
	}
	op, ok := p.operandFromToken(tok)
	if !ok {
		p.skipLine()
	}
	return op, ok
}

func (p *Parser) operandFromToken(tok lexer.Token) (ir.Operand, bool) {
	switch tok.Type {
	case lexer.NUM:
		v, err := ir.ParseImmediate(tok.Literal)
		if err != nil {
			p.addError(fmt.Sprintf("Invalid immediate '%s'", tok.Lexeme), tok.Pos)
			return ir.Operand{}, false
		}
		return ir.NewImmOperand(v), true

	case lexer.ID:
		if !registerRegex.MatchString(tok.Literal) {
			p.addError(fmt.Sprintf("Expected register or immediate, got '%s'", tok.Lexeme), tok.Pos)
			return ir.Operand{}, false
		}
		return ir.NewRegOperand(tok.Literal), true

	default:
		p.addError(fmt.Sprintf("Expected register or immediate, got '%s'", tok.Lexeme), tok.Pos)
		return ir.Operand{}, false
	}
}

// appendStmt links a parsed statement into the open block.
func (p *Parser) appendStmt(stmt ir.Stmt, pos lexer.Position) {
	if p.fn == nil || p.blockLabel == "" {
		p.addError("Statement outside of a basic block", pos)
		return
	}
	if p.blockLast != nil && isTerminator(p.blockLast) {
		p.addError("Statement after a terminator", pos)
		return
	}

	if p.blockFirst == nil {
		p.blockFirst = stmt
	} else {
		p.blockLast.SetNext(stmt)
	}
	p.blockLast = stmt
}

// closeBlock finishes the open block, if any, and registers it with the
// current function.
func (p *Parser) closeBlock() {
	if p.blockLabel == "" {
		p.blockFirst, p.blockLast = nil, nil
		return
	}

	label := p.blockLabel
	first, last := p.blockFirst, p.blockLast
	p.blockLabel = ""
	p.blockFirst, p.blockLast = nil, nil

	if first == nil {
		p.addErrorf("Empty basic block '%s'", label)
		return
	}
	if !isTerminator(last) {
		p.addErrorf("Basic block '%s' does not end with a terminator", label)
		return
	}
	if err := p.fn.AddBlock(label, first); err != nil {
		p.addErrorf("Duplicate basic block '%s' in function '%s'", label, p.fn.Name())
	}
}

func isTerminator(s ir.Stmt) bool {
	switch s.Opcode() {
	case ir.Ret, ir.BrUncond, ir.BrCond, ir.Switch:
		return true
	default:
		return false
	}
}

// endOfLine consumes the statement's trailing newline, reporting trailing
// garbage as an error.
func (p *Parser) endOfLine() bool {
	tok := p.lexer.NextToken()
	if tok.Type == lexer.NEWLINE || tok.Type == lexer.EOF {
		return true
	}
	p.addError(fmt.Sprintf("Unexpected token '%s' at end of statement", tok.Lexeme), tok.Pos)
	p.skipLine()
	return false
}

// skipLine discards tokens through the next newline to resume parsing.
func (p *Parser) skipLine() {
	for {
		tok := p.lexer.NextToken()
		if tok.Type == lexer.NEWLINE || tok.Type == lexer.EOF {
			return
		}
	}
}
