package interpreter

import (
	"fmt"
	"strings"

	"swppasm/pkg/ir"
)

// instTableOrder is the row order of the instruction table. Assert is logged
// but has no row, matching the original report.
var instTableOrder = []ir.Opcode{
	ir.Ret, ir.BrUncond, ir.BrCond, ir.Switch,
	ir.Malloc, ir.Free, ir.Load, ir.Store,
	ir.Bop, ir.Sum, ir.Uop, ir.Select,
	ir.Call, ir.Read, ir.Write,
}

// InstLogLine formats one instruction table row.
func (s *State) InstLogLine(op ir.Opcode) string {
	return fmt.Sprintf("%s\t%d\t%.4f", op, s.instCount[op], s.costPerInst[op])
}

// InstLogString formats the whole instruction table: a header and one row
// per opcode, costs to 4 decimal places.
func (s *State) InstLogString() string {
	var sb strings.Builder
	sb.WriteString("Instruction\tCount\tCost\n")
	for _, op := range instTableOrder {
		sb.WriteString(s.InstLogLine(op))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Report is the machine-readable shape of a completed run.
type Report struct {
	Result         uint64     `yaml:"result"`
	TotalCost      float64    `yaml:"total_cost"`
	TotalWaitCost  float64    `yaml:"total_wait_cost"`
	MaxAllocedSize uint64     `yaml:"max_alloced_size"`
	CallTree       *CallNode  `yaml:"call_tree"`
	Instructions   []InstStat `yaml:"instructions"`
}

// CallNode is one call-tree frame in the report.
type CallNode struct {
	Name    string      `yaml:"name"`
	Cost    float64     `yaml:"cost"`
	Callees []*CallNode `yaml:"callees,omitempty"`
}

// InstStat is one instruction table row in the report.
type InstStat struct {
	Name  string  `yaml:"name"`
	Count int     `yaml:"count"`
	Cost  float64 `yaml:"cost"`
}

// BuildReport assembles the report of a completed run.
func (s *State) BuildReport(result uint64) *Report {
	r := &Report{
		Result:         result,
		TotalCost:      s.CostValue(),
		TotalWaitCost:  s.totalWaitCost,
		MaxAllocedSize: s.MaxAllocedSize(),
		CallTree:       callNode(s.mainCost),
	}
	for _, op := range instTableOrder {
		r.Instructions = append(r.Instructions, InstStat{
			Name:  op.String(),
			Count: s.instCount[op],
			Cost:  s.costPerInst[op],
		})
	}
	return r
}

func callNode(c *CostStack) *CallNode {
	if c == nil {
		return nil
	}
	n := &CallNode{Name: c.Name(), Cost: c.Cost()}
	for _, callee := range c.Callees() {
		n.Callees = append(n.Callees, callNode(callee))
	}
	return n
}
