package interpreter

import (
	"fmt"
	"strings"
)

// CostStack is one dynamic activation of a function: its inclusive cost and
// the frames of the callees it invoked, in call order. A frame's cost is
// final once the activation returns; the parent then folds it into its own.
type CostStack struct {
	fname   string
	cost    float64
	callees []*CostStack
}

// NewCostStack creates a frame with zero cost and no callees.
func NewCostStack(fname string) *CostStack {
	return &CostStack{fname: fname}
}

// Name returns the owning function's name.
func (c *CostStack) Name() string { return c.fname }

// Cost returns the accumulated cost so far.
func (c *CostStack) Cost() float64 { return c.cost }

// AddCost accumulates cost; deltas are never negative.
func (c *CostStack) AddCost(delta float64) { c.cost += delta }

// AddCallee appends a child frame in call order.
func (c *CostStack) AddCallee(callee *CostStack) {
	c.callees = append(c.callees, callee)
}

// Callees returns the child frames in call order.
func (c *CostStack) Callees() []*CostStack { return c.callees }

// Render produces the call-tree text: one "<indent><name>: <cost>" line per
// frame, children one "| " level deeper, depth-first in call order.
func (c *CostStack) Render(indent string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s%s: %.4f\n", indent, c.fname, c.cost)
	for _, callee := range c.callees {
		sb.WriteString(callee.Render(indent + "| "))
	}
	return sb.String()
}
