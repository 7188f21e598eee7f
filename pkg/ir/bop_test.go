package ir_test

import (
	"testing"

	"swppasm/pkg/ir"
)

func execBop(t *testing.T, kind ir.BopKind, a, b uint64) (uint64, float64) {
	t.Helper()
	rf := ir.NewRegFile()
	mem := ir.NewMemory()
	stmt := ir.NewBop(1, "r1", kind, ir.NewImmOperand(a), ir.NewImmOperand(b))

	instCost, waitCost, err := stmt.Exec(0, rf, mem)
	if err != nil {
		t.Fatalf("exec: %v", err)
	}
	if waitCost != 0 {
		t.Errorf("wait cost: expected 0, got %v", waitCost)
	}

	v, err := rf.Read("r1")
	if err != nil {
		t.Fatalf("read result: %v", err)
	}
	return v, instCost
}

func TestBinaryOps(t *testing.T) {
	neg := func(n int64) uint64 { return uint64(n) }

	tests := []struct {
		name string
		kind ir.BopKind
		a, b uint64
		want uint64
		cost float64
	}{
		{"udiv", ir.Udiv, 7, 2, 3, ir.CostMulDiv},
		{"sdiv negative", ir.Sdiv, neg(-6), 2, neg(-3), ir.CostMulDiv},
		{"urem", ir.Urem, 7, 4, 3, ir.CostMulDiv},
		{"srem negative", ir.Srem, neg(-7), 4, neg(-3), ir.CostMulDiv},
		{"mul wraps", ir.Mul, 1 << 63, 2, 0, ir.CostMulDiv},
		{"shl", ir.Shl, 1, 4, 16, ir.CostLogical},
		{"shl masks amount", ir.Shl, 1, 64, 1, ir.CostLogical},
		{"lshr", ir.Lshr, neg(-1), 63, 1, ir.CostLogical},
		{"ashr keeps sign", ir.Ashr, neg(-8), 1, neg(-4), ir.CostLogical},
		{"and", ir.And, 0b1100, 0b1010, 0b1000, ir.CostLogical},
		{"or", ir.Or, 0b1100, 0b1010, 0b1110, ir.CostLogical},
		{"xor", ir.Xor, 0b1100, 0b1010, 0b0110, ir.CostLogical},
		{"add", ir.Add, 3, 4, 7, ir.CostAddSub},
		{"add wraps", ir.Add, ^uint64(0), 1, 0, ir.CostAddSub},
		{"sub wraps", ir.Sub, 0, 1, neg(-1), ir.CostAddSub},
		{"eq true", ir.Eq, 5, 5, 1, ir.CostComparison},
		{"ne false", ir.Ne, 5, 5, 0, ir.CostComparison},
		{"ugt on sign bit", ir.Ugt, neg(-1), 1, 1, ir.CostComparison},
		{"uge", ir.Uge, 2, 2, 1, ir.CostComparison},
		{"ult", ir.Ult, 1, 2, 1, ir.CostComparison},
		{"ule", ir.Ule, 3, 2, 0, ir.CostComparison},
		{"sgt on sign bit", ir.Sgt, neg(-1), 1, 0, ir.CostComparison},
		{"sge", ir.Sge, neg(-1), neg(-1), 1, ir.CostComparison},
		{"slt", ir.Slt, neg(-2), neg(-1), 1, ir.CostComparison},
		{"sle", ir.Sle, 1, neg(-1), 0, ir.CostComparison},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, cost := execBop(t, tt.kind, tt.a, tt.b)
			if got != tt.want {
				t.Errorf("value: expected %d, got %d", tt.want, got)
			}
			if cost != tt.cost {
				t.Errorf("cost: expected %v, got %v", tt.cost, cost)
			}
		})
	}
}

func TestDivisionByZeroFaults(t *testing.T) {
	for _, kind := range []ir.BopKind{ir.Udiv, ir.Sdiv, ir.Urem, ir.Srem} {
		rf := ir.NewRegFile()
		stmt := ir.NewBop(1, "r1", kind, ir.NewImmOperand(1), ir.NewImmOperand(0))
		if _, _, err := stmt.Exec(0, rf, ir.NewMemory()); err == nil {
			t.Errorf("kind %d: expected division by zero error", kind)
		}
	}
}

func TestBopKindFromString(t *testing.T) {
	if k, ok := ir.BopKindFromString("add"); !ok || k != ir.Add {
		t.Errorf("add: got %v, %v", k, ok)
	}
	if _, ok := ir.BopKindFromString("frobnicate"); ok {
		t.Error("frobnicate: expected no match")
	}
}
