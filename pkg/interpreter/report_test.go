package interpreter_test

import (
	"strings"
	"testing"

	"swppasm/pkg/ir"

	"gopkg.in/yaml.v3"
)

func TestInstLogString(t *testing.T) {
	_, state := run(t, `
function main 0:
entry:
  ret 0
`)

	table := state.InstLogString()
	lines := strings.Split(strings.TrimRight(table, "\n"), "\n")

	if lines[0] != "Instruction\tCount\tCost" {
		t.Errorf("header: got %q", lines[0])
	}
	// one row per reported opcode, Assert has none
	if len(lines) != 16 {
		t.Errorf("row count: expected 16 lines, got %d", len(lines))
	}

	expectedOrder := []string{
		"Ret", "BrUncond", "BrCond", "Switch",
		"Malloc", "Free", "Load", "Store",
		"BinaryOp", "Sum", "UnaryOp", "Select",
		"Call", "Read", "Write",
	}
	for i, name := range expectedOrder {
		if !strings.HasPrefix(lines[i+1], name+"\t") {
			t.Errorf("row %d: expected %s, got %q", i+1, name, lines[i+1])
		}
	}

	if lines[1] != "Ret\t1\t1.0000" {
		t.Errorf("Ret row: got %q", lines[1])
	}
	if lines[2] != "BrUncond\t0\t0.0000" {
		t.Errorf("BrUncond row: got %q", lines[2])
	}
}

func TestBuildReport(t *testing.T) {
	result, state := run(t, `
function main 0:
entry:
  r1 = call f
  ret r1

function f 0:
entry:
  ret 3
`)

	report := state.BuildReport(result)

	if report.Result != 3 {
		t.Errorf("result: expected 3, got %d", report.Result)
	}
	if report.TotalCost != 4.0 {
		t.Errorf("total cost: expected 4.0, got %v", report.TotalCost)
	}
	if report.CallTree == nil || report.CallTree.Name != "main" {
		t.Fatalf("call tree root: expected main, got %+v", report.CallTree)
	}
	if len(report.CallTree.Callees) != 1 || report.CallTree.Callees[0].Name != "f" {
		t.Errorf("call tree callees: expected [f], got %+v", report.CallTree.Callees)
	}
	if len(report.Instructions) != 15 {
		t.Errorf("instruction rows: expected 15, got %d", len(report.Instructions))
	}

	out, err := yaml.Marshal(report)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	text := string(out)
	for _, want := range []string{"result: 3", "total_cost: 4", "name: main", "name: f"} {
		if !strings.Contains(text, want) {
			t.Errorf("yaml output missing %q:\n%s", want, text)
		}
	}

	if report.Instructions[0].Name != ir.Ret.String() || report.Instructions[0].Count != 2 {
		t.Errorf("first instruction row: got %+v", report.Instructions[0])
	}
}
