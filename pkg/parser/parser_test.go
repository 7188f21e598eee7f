package parser_test

import (
	"strings"
	"testing"

	"swppasm/pkg/ir"
	"swppasm/pkg/lexer"
	"swppasm/pkg/parser"
)

func parse(t *testing.T, src string) (*ir.Program, []string) {
	t.Helper()
	p := parser.NewParser(lexer.NewLexer(src))
	program := p.Parse()
	return program, p.Errors()
}

func parseOK(t *testing.T, src string) *ir.Program {
	t.Helper()
	program, errs := parse(t, src)
	if len(errs) > 0 {
		t.Fatalf("unexpected parse error: %s", errs[0])
	}
	return program
}

func firstErrorContains(t *testing.T, src, want string) {
	t.Helper()
	_, errs := parse(t, src)
	if len(errs) == 0 {
		t.Fatalf("expected a parse error containing %q, got none", want)
	}
	if !strings.Contains(errs[0], want) {
		t.Errorf("expected first error to contain %q, got %q", want, errs[0])
	}
}

func TestParseProgramStructure(t *testing.T) {
	program := parseOK(t, `
; a two-function program
function main 0:
entry:
  r1 = call helper 3 4
  br r1 done fail
done:
  ret r1
fail:
  ret 0

function helper 2:
entry:
  r1 = add arg1 arg2
  ret r1
`)

	if program.NumFunctions() != 2 {
		t.Fatalf("functions: expected 2, got %d", program.NumFunctions())
	}

	main := program.Function("main")
	if main == nil {
		t.Fatal("main not found")
	}
	if main.NumArgs() != 0 {
		t.Errorf("main arity: expected 0, got %d", main.NumArgs())
	}

	helper := program.Function("helper")
	if helper == nil {
		t.Fatal("helper not found")
	}
	if helper.NumArgs() != 2 {
		t.Errorf("helper arity: expected 2, got %d", helper.NumArgs())
	}

	entry := main.EntryBlock()
	if entry == nil {
		t.Fatal("main has no entry block")
	}
	call, ok := entry.(*ir.CallStmt)
	if !ok {
		t.Fatalf("first statement: expected *ir.CallStmt, got %T", entry)
	}
	if call.Callee != "helper" || call.NumArgs() != 2 || call.Dst != "r1" {
		t.Errorf("call statement: got %+v", call)
	}
	if call.Line() != 5 {
		t.Errorf("call line: expected 5, got %d", call.Line())
	}

	br, ok := call.Next().(*ir.BrCondStmt)
	if !ok {
		t.Fatalf("second statement: expected *ir.BrCondStmt, got %T", call.Next())
	}
	if br.IfTrue != "done" || br.IfFalse != "fail" {
		t.Errorf("branch targets: got %q, %q", br.IfTrue, br.IfFalse)
	}
	if br.Next() != nil {
		t.Error("terminator must not have a next statement")
	}

	if main.Block("done") == nil || main.Block("fail") == nil {
		t.Error("labeled blocks not registered")
	}
	if main.Block("nowhere") != nil {
		t.Error("undefined label must resolve to nil")
	}
}

func TestParseSwitch(t *testing.T) {
	program := parseOK(t, `
function main 0:
entry:
  switch 2 1 one 2 two def
one:
  ret 1
two:
  ret 2
def:
  ret 0
`)

	sw, ok := program.Function("main").EntryBlock().(*ir.SwitchStmt)
	if !ok {
		t.Fatalf("expected *ir.SwitchStmt, got %T", program.Function("main").EntryBlock())
	}
	if len(sw.Cases) != 2 {
		t.Fatalf("cases: expected 2, got %d", len(sw.Cases))
	}
	if sw.Cases[0].Value != 1 || sw.Cases[0].Label != "one" {
		t.Errorf("case 0: got %+v", sw.Cases[0])
	}
	if sw.Default != "def" {
		t.Errorf("default: expected def, got %q", sw.Default)
	}
}

func TestParseNegativeImmediate(t *testing.T) {
	program := parseOK(t, `
function main 0:
entry:
  r1 = add -1 1
  ret r1
`)

	bop := program.Function("main").EntryBlock().(*ir.BopStmt)
	if bop.A.Imm != ^uint64(0) {
		t.Errorf("immediate -1: expected %d, got %d", ^uint64(0), bop.A.Imm)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			"duplicate function",
			"function f 0:\nentry:\n ret 0\nfunction f 0:\nentry:\n ret 0\n",
			"Duplicate function",
		},
		{
			"duplicate block",
			"function f 0:\nentry:\n ret 0\nentry:\n ret 0\n",
			"Duplicate basic block",
		},
		{
			"missing terminator",
			"function f 0:\nentry:\n r1 = add 1 2\nfunction g 0:\nentry:\n ret 0\n",
			"does not end with a terminator",
		},
		{
			"empty block",
			"function f 0:\nentry:\ndone:\n ret 0\n",
			"Empty basic block",
		},
		{
			"statement outside block",
			"ret 0\n",
			"outside of a basic block",
		},
		{
			"statement after terminator",
			"function f 0:\nentry:\n ret 0\n ret 1\n",
			"after a terminator",
		},
		{
			"destination not a register",
			"function f 0:\nentry:\n foo = add 1 2\n ret 0\n",
			"Expected register",
		},
		{
			"bad operand",
			"function f 0:\nentry:\n r1 = add : 2\n ret 0\n",
			"Expected register or immediate",
		},
		{
			"sum needs two operands",
			"function f 0:\nentry:\n r1 = sum 1\n ret 0\n",
			"at least two operands",
		},
		{
			"trailing garbage",
			"function f 0:\nentry:\n ret 0 0\n",
			"end of statement",
		},
		{
			"missing assignment operator",
			"function f 0:\nentry:\n r1 add 1 2\n ret 0\n",
			"Missing assignment operator",
		},
		{
			"block outside function",
			"entry:\n ret 0\n",
			"outside of a function",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			firstErrorContains(t, tt.src, tt.want)
		})
	}
}

func TestParseRecoversAfterError(t *testing.T) {
	// the bad line is reported, later functions still parse
	program, errs := parse(t, `
function f 0:
entry:
  r1 = add 1
  ret 0

function main 0:
entry:
  ret 0
`)

	if len(errs) == 0 {
		t.Fatal("expected parse errors")
	}
	if program.Function("main") == nil {
		t.Error("parser must recover and keep parsing later functions")
	}
}
