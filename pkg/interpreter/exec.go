package interpreter

import (
	"swppasm/pkg/ir"
)

// Run locates the entry function and interprets it as the root of the call
// tree, returning the program's result. Any fault aborts the whole run; the
// cost logs are not well-formed after a fault.
func (s *State) Run() (uint64, error) {
	main := s.program.Function(ir.EntryFunction)
	if main == nil {
		return 0, runtimeErr(ErrUndefinedFunction, 0, "missing main function")
	}
	return s.execFunction(nil, main, 0)
}

// execFunction interprets one activation of fn. It creates the activation's
// frame, links it under parent (or installs it as the root), walks the
// control-flow graph until a ret, and on return folds the frame's final
// inclusive cost into the parent.
func (s *State) execFunction(parent *CostStack, fn *ir.Function, depth int) (uint64, error) {
	if depth > s.maxDepth {
		return 0, runtimeErr(ErrCallDepthExceeded, 0,
			"call depth limit exceeded (%d)", s.maxDepth)
	}

	cost := NewCostStack(fn.Name())
	if parent == nil {
		s.mainCost = cost
	} else {
		parent.AddCallee(cost)
	}

	curr := fn.EntryBlock()
	if curr == nil {
		return 0, runtimeErr(ErrMissingEntryBlock, 0,
			"missing first basic block in function %s", fn.Name())
	}

	for {
		if s.maxSteps > 0 && s.steps >= s.maxSteps {
			return 0, runtimeErr(ErrStepLimitExceeded, curr.Line(),
				"execution step limit exceeded (%d)", s.maxSteps)
		}
		s.steps++

		switch stmt := curr.(type) {
		case *ir.RetStmt:
			val, waitCost, err := stmt.EvalRet(cost.Cost(), s.regfile)
			if err != nil {
				return 0, runtimeErr(ErrEvalFault, stmt.Line(), "%v", err)
			}
			cost.AddCost(ir.CostRet + waitCost)
			s.updateCostLog(ir.Ret, ir.CostRet, waitCost)
			if parent != nil {
				parent.AddCost(cost.Cost())
			}
			return val, nil

		case *ir.BrStmt:
			curr = fn.Block(stmt.Target)
			if curr == nil {
				return 0, runtimeErr(ErrUndefinedBranchTarget, stmt.Line(),
					"branching to an undefined basic block %s", stmt.Target)
			}
			cost.AddCost(ir.CostBrUncond)
			s.updateCostLog(ir.BrUncond, ir.CostBrUncond, 0)

		case *ir.BrCondStmt:
			target, taken, waitCost, err := stmt.EvalTarget(cost.Cost(), s.regfile)
			if err != nil {
				return 0, runtimeErr(ErrEvalFault, stmt.Line(), "%v", err)
			}
			curr = fn.Block(target)
			if curr == nil {
				return 0, runtimeErr(ErrUndefinedBranchTarget, stmt.Line(),
					"branching to an undefined basic block %s", target)
			}
			instCost := ir.CostBrCondNotTaken
			if taken {
				instCost = ir.CostBrCondTaken
			}
			cost.AddCost(instCost + waitCost)
			s.updateCostLog(ir.BrCond, instCost, waitCost)

		case *ir.SwitchStmt:
			target, waitCost, err := stmt.EvalTarget(cost.Cost(), s.regfile)
			if err != nil {
				return 0, runtimeErr(ErrEvalFault, stmt.Line(), "%v", err)
			}
			curr = fn.Block(target)
			if curr == nil {
				return 0, runtimeErr(ErrUndefinedBranchTarget, stmt.Line(),
					"branching to an undefined basic block %s", target)
			}
			cost.AddCost(ir.CostSwitch + waitCost)
			s.updateCostLog(ir.Switch, ir.CostSwitch, waitCost)

		case *ir.CallStmt:
			callee := s.program.Function(stmt.Callee)
			if callee == nil {
				return 0, runtimeErr(ErrUndefinedFunction, stmt.Line(),
					"calling an undefined function %s", stmt.Callee)
			}

			nargs := callee.NumArgs()
			if nargs != stmt.NumArgs() {
				return 0, runtimeErr(ErrArityMismatch, stmt.Line(),
					"calling %s with incorrect number of arguments: %d != %d",
					stmt.Callee, stmt.NumArgs(), nargs)
			}

			snap := s.regfile.BeginCall(nargs)
			waitCost, err := stmt.SetupArgs(cost.Cost(), snap, s.regfile)
			if err != nil {
				return 0, runtimeErr(ErrEvalFault, stmt.Line(), "%v", err)
			}
			instCost := ir.CostCall + float64(nargs)*ir.CostPerArg
			cost.AddCost(instCost + waitCost)
			s.updateCostLog(ir.Call, instCost, waitCost)

			ret, err := s.execFunction(cost, callee, depth+1)
			if err != nil {
				return 0, err
			}

			s.regfile.EndCall(snap)
			s.regfile.Write(stmt.Dst, ret)
			if curr = stmt.Next(); curr == nil {
				return 0, runtimeErr(ErrEvalFault, stmt.Line(),
					"basic block ends without a terminator")
			}

		case ir.OperandStmt:
			instCost, waitCost, err := stmt.Exec(cost.Cost(), s.regfile, s.memory)
			if err != nil {
				return 0, runtimeErr(ErrEvalFault, stmt.Line(), "%v", err)
			}
			cost.AddCost(instCost + waitCost)
			s.updateCostLog(stmt.Opcode(), instCost, waitCost)
			if curr = stmt.Next(); curr == nil {
				return 0, runtimeErr(ErrEvalFault, stmt.Line(),
					"basic block ends without a terminator")
			}
		}
	}
}
