package ir

// Opcode identifies a statement's operation kind.
type Opcode int

const (
	// terminators
	Ret Opcode = iota
	BrUncond
	BrCond
	Switch

	// memory operations
	Malloc
	Free
	Load
	Store

	// binary operations
	Bop

	// sum
	Sum

	// unary operations
	Uop

	// ternary operation
	Select

	// function call
	Call

	// assertion
	Assert

	// console read and write
	Read
	Write

	NumOpcodes
)

// String returns the opcode name as it appears in reports.
func (o Opcode) String() string {
	switch o {
	case Ret:
		return "Ret"
	case BrUncond:
		return "BrUncond"
	case BrCond:
		return "BrCond"
	case Switch:
		return "Switch"
	case Malloc:
		return "Malloc"
	case Free:
		return "Free"
	case Load:
		return "Load"
	case Store:
		return "Store"
	case Bop:
		return "BinaryOp"
	case Sum:
		return "Sum"
	case Uop:
		return "UnaryOp"
	case Select:
		return "Select"
	case Call:
		return "Call"
	case Assert:
		return "Assert"
	case Read:
		return "Read"
	case Write:
		return "Write"
	default:
		return "Unknown"
	}
}

// BopKind identifies a binary operation sub-kind.
type BopKind int

const (
	// arithmetic operations
	Udiv BopKind = iota
	Sdiv
	Urem
	Srem
	Mul

	// logical operations
	Shl
	Lshr
	Ashr
	And
	Or
	Xor
	Add
	Sub

	// comparisons
	Eq
	Ne
	Ugt
	Uge
	Ult
	Ule
	Sgt
	Sge
	Slt
	Sle
)

var bopNames = map[string]BopKind{
	"udiv": Udiv, "sdiv": Sdiv, "urem": Urem, "srem": Srem, "mul": Mul,
	"shl": Shl, "lshr": Lshr, "ashr": Ashr, "and": And, "or": Or, "xor": Xor,
	"add": Add, "sub": Sub,
	"eq": Eq, "ne": Ne, "ugt": Ugt, "uge": Uge, "ult": Ult, "ule": Ule,
	"sgt": Sgt, "sge": Sge, "slt": Slt, "sle": Sle,
}

// BopKindFromString maps an assembly mnemonic to its BopKind.
func BopKindFromString(s string) (BopKind, bool) {
	k, ok := bopNames[s]
	return k, ok
}

// UopKind identifies a unary operation sub-kind.
type UopKind int

const (
	Incr UopKind = iota
	Decr
)
