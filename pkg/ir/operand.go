package ir

import (
	"fmt"
	"strconv"
)

// RegReader is the read side of a register file. Both the live RegFile and
// a call-boundary Snapshot satisfy it, so argument expressions can be
// evaluated against the caller's captured registers.
type RegReader interface {
	Read(name string) (uint64, error)
}

// Operand is either a register reference or a 64-bit immediate.
type Operand struct {
	Reg string // register name, empty for immediates
	Imm uint64 // immediate value, two's-complement for negatives
}

// NewRegOperand creates a register operand.
func NewRegOperand(name string) Operand {
	return Operand{Reg: name}
}

// NewImmOperand creates an immediate operand.
func NewImmOperand(v uint64) Operand {
	return Operand{Imm: v}
}

// ParseImmediate parses an optionally signed decimal immediate into its
// two's-complement uint64 representation.
func ParseImmediate(s string) (uint64, error) {
	if n, err := strconv.ParseUint(s, 10, 64); err == nil {
		return n, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("unsupported immediate: %q", s)
	}
	return uint64(n), nil
}

// Eval resolves the operand against a register reader.
func (o Operand) Eval(rf RegReader) (uint64, error) {
	if o.Reg == "" {
		return o.Imm, nil
	}
	return rf.Read(o.Reg)
}

// String renders the operand in assembly syntax.
func (o Operand) String() string {
	if o.Reg != "" {
		return o.Reg
	}
	return strconv.FormatUint(o.Imm, 10)
}
