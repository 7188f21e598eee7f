package interpreter

import (
	"io"

	"swppasm/pkg/ir"
)

// DefaultMaxDepth bounds the interpreted call depth so runaway recursion in
// the program under test surfaces as a diagnosable fault instead of
// exhausting the host stack.
const DefaultMaxDepth = 4096

// State is the execution context of one program run: the register file, the
// memory model, the root call frame, the per-opcode (count, cost) log and
// the total wait-cost accumulator. Create one per run, read it for reporting
// after the run, then discard it.
type State struct {
	program *ir.Program
	regfile *ir.RegFile
	memory  *ir.Memory

	mainCost *CostStack

	costPerInst [ir.NumOpcodes]float64
	instCount   [ir.NumOpcodes]int

	totalWaitCost float64

	maxDepth int
	maxSteps int // 0 = unlimited
	steps    int
}

type Option func(*State)

// WithMaxDepth sets the interpreted call depth limit.
func WithMaxDepth(n int) Option {
	return func(s *State) { s.maxDepth = n }
}

// WithMaxSteps sets a maximum number of interpreted statements (0 = unlimited).
func WithMaxSteps(n int) Option {
	return func(s *State) { s.maxSteps = n }
}

// WithInput redirects the console input used by the read opcode.
func WithInput(r io.Reader) Option {
	return func(s *State) { s.memory.SetConsole(r, nil) }
}

// WithOutput redirects the console output used by the write opcode.
func WithOutput(w io.Writer) Option {
	return func(s *State) { s.memory.SetConsole(nil, w) }
}

// NewState creates an execution context for the given program.
func NewState(program *ir.Program, opts ...Option) *State {
	s := &State{
		program:  program,
		regfile:  ir.NewRegFile(),
		memory:   ir.NewMemory(),
		maxDepth: DefaultMaxDepth,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// updateCostLog records one processed statement in the per-opcode log and
// folds its wait cost into the run-wide accumulator.
func (s *State) updateCostLog(op ir.Opcode, instCost, waitCost float64) {
	s.costPerInst[op] += instCost + waitCost
	s.instCount[op]++
	s.totalWaitCost += waitCost
}

// CostValue returns the root frame's final cost, the grand total of the run.
func (s *State) CostValue() float64 {
	if s.mainCost == nil {
		return 0
	}
	return s.mainCost.Cost()
}

// CostTree returns the root call frame, or nil before any run.
func (s *State) CostTree() *CostStack { return s.mainCost }

// InstCount returns how many statements of the given opcode were processed.
func (s *State) InstCount(op ir.Opcode) int { return s.instCount[op] }

// InstCost returns the cumulative cost logged under the given opcode.
func (s *State) InstCost(op ir.Opcode) float64 { return s.costPerInst[op] }

// TotalWaitCost returns the sum of every wait-cost contribution of the run.
func (s *State) TotalWaitCost() float64 { return s.totalWaitCost }

// MaxAllocedSize reports the memory model's high-water mark of
// simultaneously allocated bytes.
func (s *State) MaxAllocedSize() uint64 { return s.memory.MaxAllocedSize() }
