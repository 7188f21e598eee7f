package ir

// Fixed per-opcode cost weights. These are the comparability contract of the
// interpreter: any reimplementation must reproduce them bit-for-bit.
const (
	// cost of terminators
	CostRet            = 1.0
	CostBrUncond       = 1.0
	CostBrCondTaken    = 6.0
	CostBrCondNotTaken = 1.0
	CostSwitch         = 1.2

	// cost of memory operations
	CostMalloc      = 16.0
	CostFree        = 16.0
	CostStackAccess = 6.0
	CostHeapAccess  = 12.0
	CostLoad        = 1.0
	CostWaitStack   = 10.0
	CostWaitHeap    = 16.0

	// cost of binary operations
	CostMulDiv     = 1.0
	CostLogical    = 4.0
	CostAddSub     = 5.0
	CostComparison = 1.0

	// cost of the sum operation
	CostSum = 5.2

	// cost of unary operations
	CostUop = 1.0

	// cost of the ternary operation
	CostSelect = 1.2

	// cost of function calls
	CostCall   = 2.0
	CostPerArg = 1.0

	// cost of assertions
	CostAssert = 0.0
)

// BopCost returns the table weight of a binary operation sub-kind.
func BopCost(k BopKind) float64 {
	switch k {
	case Udiv, Sdiv, Urem, Srem, Mul:
		return CostMulDiv
	case Shl, Lshr, Ashr, And, Or, Xor:
		return CostLogical
	case Add, Sub:
		return CostAddSub
	default:
		return CostComparison
	}
}
