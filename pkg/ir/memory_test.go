package ir_test

import (
	"bytes"
	"strings"
	"testing"

	"swppasm/pkg/ir"
)

func TestMallocFree(t *testing.T) {
	mem := ir.NewMemory()

	a := mem.Malloc(3) // rounds up to one word
	if a < ir.HeapBase {
		t.Errorf("heap address below heap base: %#x", a)
	}
	if mem.MaxAllocedSize() != 8 {
		t.Errorf("max alloced: expected 8, got %d", mem.MaxAllocedSize())
	}

	b := mem.Malloc(16)
	if b == a {
		t.Error("allocations must not alias")
	}
	if mem.MaxAllocedSize() != 24 {
		t.Errorf("max alloced: expected 24, got %d", mem.MaxAllocedSize())
	}

	if err := mem.Free(a); err != nil {
		t.Fatalf("free: %v", err)
	}
	// the high-water mark never moves back down
	if mem.MaxAllocedSize() != 24 {
		t.Errorf("max alloced after free: expected 24, got %d", mem.MaxAllocedSize())
	}

	if err := mem.Free(a); err == nil {
		t.Error("double free must fail")
	}
	if err := mem.Free(12345); err == nil {
		t.Error("freeing a non-malloc pointer must fail")
	}
}

func TestHeapAccessBounds(t *testing.T) {
	mem := ir.NewMemory()
	a := mem.Malloc(8)

	if err := mem.Store(a, 42); err != nil {
		t.Fatalf("store: %v", err)
	}
	v, err := mem.Load(a)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if v != 42 {
		t.Errorf("expected 42, got %d", v)
	}

	if _, err := mem.Load(a + 64); err == nil {
		t.Error("load past the block must fail")
	}

	if err := mem.Free(a); err != nil {
		t.Fatalf("free: %v", err)
	}
	if _, err := mem.Load(a); err == nil {
		t.Error("load from a freed block must fail")
	}
}

func TestStackAccess(t *testing.T) {
	mem := ir.NewMemory()

	// stack addresses are always valid and read as zero when untouched
	v, err := mem.Load(8)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if v != 0 {
		t.Errorf("untouched stack word: expected 0, got %d", v)
	}

	if err := mem.Store(8, 7); err != nil {
		t.Fatalf("store: %v", err)
	}
	if v, _ := mem.Load(8); v != 7 {
		t.Errorf("expected 7, got %d", v)
	}
}

func TestRegionCosts(t *testing.T) {
	mem := ir.NewMemory()
	heapAddr := mem.Malloc(8)

	if got := mem.AccessCost(8); got != ir.CostStackAccess {
		t.Errorf("stack access cost: expected %v, got %v", ir.CostStackAccess, got)
	}
	if got := mem.AccessCost(heapAddr); got != ir.CostHeapAccess {
		t.Errorf("heap access cost: expected %v, got %v", ir.CostHeapAccess, got)
	}
	if got := mem.WaitCost(8); got != ir.CostWaitStack {
		t.Errorf("stack wait cost: expected %v, got %v", ir.CostWaitStack, got)
	}
	if got := mem.WaitCost(heapAddr); got != ir.CostWaitHeap {
		t.Errorf("heap wait cost: expected %v, got %v", ir.CostWaitHeap, got)
	}
}

func TestConsoleWords(t *testing.T) {
	mem := ir.NewMemory()
	var out bytes.Buffer
	mem.SetConsole(strings.NewReader("7 12"), &out)

	v, err := mem.ReadWord()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if v != 7 {
		t.Errorf("expected 7, got %d", v)
	}
	if v, _ = mem.ReadWord(); v != 12 {
		t.Errorf("expected 12, got %d", v)
	}
	if _, err := mem.ReadWord(); err == nil {
		t.Error("reading past end of input must fail")
	}

	if err := mem.WriteWord(42); err != nil {
		t.Fatalf("write: %v", err)
	}
	if out.String() != "42\n" {
		t.Errorf("output: expected %q, got %q", "42\n", out.String())
	}
}

func TestParseImmediate(t *testing.T) {
	tests := []struct {
		in   string
		want uint64
		ok   bool
	}{
		{"0", 0, true},
		{"42", 42, true},
		{"-1", ^uint64(0), true},
		{"18446744073709551615", ^uint64(0), true},
		{"abc", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, err := ir.ParseImmediate(tt.in)
		if tt.ok && err != nil {
			t.Errorf("%q: unexpected error %v", tt.in, err)
		}
		if !tt.ok && err == nil {
			t.Errorf("%q: expected error", tt.in)
		}
		if tt.ok && got != tt.want {
			t.Errorf("%q: expected %d, got %d", tt.in, tt.want, got)
		}
	}
}
