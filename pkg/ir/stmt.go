package ir

import "fmt"

// Stmt is a node in a function's control-flow graph. The set of variants is
// closed: terminators and Call get their own evaluation operations, every
// other kind goes through the uniform OperandStmt contract.
type Stmt interface {
	Opcode() Opcode
	Line() int

	// Next is the sequentially following statement within the block, nil
	// for terminators.
	Next() Stmt

	// SetNext links the following statement; used only while building the
	// program.
	SetNext(Stmt)

	isStmt()
}

// OperandStmt is the uniform contract of the non-terminator, non-call
// statement kinds. Exec receives the owning frame's accumulated cost as an
// observational input and returns the statement's fixed instruction cost
// plus an opaque wait cost.
type OperandStmt interface {
	Stmt
	Exec(currentCost float64, rf *RegFile, mem *Memory) (instCost, waitCost float64, err error)
}

type stmtBase struct {
	op   Opcode
	line int
	next Stmt
}

func (s *stmtBase) Opcode() Opcode { return s.op }
func (s *stmtBase) Line() int      { return s.line }
func (s *stmtBase) Next() Stmt     { return s.next }
func (s *stmtBase) SetNext(n Stmt) { s.next = n }
func (s *stmtBase) isStmt()        {}

// RetStmt returns a value from the current activation.
type RetStmt struct {
	stmtBase
	Val Operand
}

func NewRet(line int, val Operand) *RetStmt {
	return &RetStmt{stmtBase{Ret, line, nil}, val}
}

// EvalRet yields the return value and its wait cost.
func (s *RetStmt) EvalRet(currentCost float64, rf RegReader) (uint64, float64, error) {
	v, err := s.Val.Eval(rf)
	return v, 0, err
}

// BrStmt is an unconditional branch.
type BrStmt struct {
	stmtBase
	Target string
}

func NewBr(line int, target string) *BrStmt {
	return &BrStmt{stmtBase{BrUncond, line, nil}, target}
}

// BrCondStmt branches on a condition; taken and not-taken cost differently.
type BrCondStmt struct {
	stmtBase
	Cond    Operand
	IfTrue  string
	IfFalse string
}

func NewBrCond(line int, cond Operand, ifTrue, ifFalse string) *BrCondStmt {
	return &BrCondStmt{stmtBase{BrCond, line, nil}, cond, ifTrue, ifFalse}
}

// EvalTarget yields the target label, whether the branch was taken, and the
// wait cost of evaluating the condition.
func (s *BrCondStmt) EvalTarget(currentCost float64, rf RegReader) (string, bool, float64, error) {
	v, err := s.Cond.Eval(rf)
	if err != nil {
		return "", false, 0, err
	}
	if v != 0 {
		return s.IfTrue, true, 0, nil
	}
	return s.IfFalse, false, 0, nil
}

// SwitchCase is one value-to-label arm of a switch.
type SwitchCase struct {
	Value uint64
	Label string
}

// SwitchStmt branches on a selector through its case arms; cost is uniform
// regardless of which arm is taken.
type SwitchStmt struct {
	stmtBase
	Cond    Operand
	Cases   []SwitchCase
	Default string
}

func NewSwitch(line int, cond Operand, cases []SwitchCase, def string) *SwitchStmt {
	return &SwitchStmt{stmtBase{Switch, line, nil}, cond, cases, def}
}

// EvalTarget yields the target label and the selector's wait cost.
func (s *SwitchStmt) EvalTarget(currentCost float64, rf RegReader) (string, float64, error) {
	v, err := s.Cond.Eval(rf)
	if err != nil {
		return "", 0, err
	}
	for _, c := range s.Cases {
		if c.Value == v {
			return c.Label, 0, nil
		}
	}
	return s.Default, 0, nil
}

// CallStmt invokes another function, writing its return value into Dst.
type CallStmt struct {
	stmtBase
	Dst    string
	Callee string
	Args   []Operand
}

func NewCall(line int, dst, callee string, args []Operand) *CallStmt {
	return &CallStmt{stmtBase{Call, line, nil}, dst, callee, args}
}

// NumArgs returns the call site's argument count.
func (s *CallStmt) NumArgs() int { return len(s.Args) }

// SetupArgs evaluates each argument against the caller's captured registers
// into the callee's fresh file, returning the accumulated wait cost.
func (s *CallStmt) SetupArgs(currentCost float64, caller RegReader, callee *RegFile) (float64, error) {
	var wait float64
	for i, a := range s.Args {
		v, err := a.Eval(caller)
		if err != nil {
			return wait, err
		}
		callee.Write(fmt.Sprintf("arg%d", i+1), v)
	}
	return wait, nil
}

// MallocStmt allocates a heap block and writes its address into Dst.
type MallocStmt struct {
	stmtBase
	Dst  string
	Size Operand
}

func NewMalloc(line int, dst string, size Operand) *MallocStmt {
	return &MallocStmt{stmtBase{Malloc, line, nil}, dst, size}
}

func (s *MallocStmt) Exec(currentCost float64, rf *RegFile, mem *Memory) (float64, float64, error) {
	size, err := s.Size.Eval(rf)
	if err != nil {
		return 0, 0, err
	}
	rf.Write(s.Dst, mem.Malloc(size))
	return CostMalloc, 0, nil
}

// FreeStmt releases a heap block.
type FreeStmt struct {
	stmtBase
	Addr Operand
}

func NewFree(line int, addr Operand) *FreeStmt {
	return &FreeStmt{stmtBase{Free, line, nil}, addr}
}

func (s *FreeStmt) Exec(currentCost float64, rf *RegFile, mem *Memory) (float64, float64, error) {
	addr, err := s.Addr.Eval(rf)
	if err != nil {
		return 0, 0, err
	}
	if err := mem.Free(addr); err != nil {
		return 0, 0, err
	}
	return CostFree, 0, nil
}

// LoadStmt reads the word at an address into Dst. Loads pay the fixed issue
// cost plus the region access cost, and wait out the region latency.
type LoadStmt struct {
	stmtBase
	Dst  string
	Addr Operand
}

func NewLoad(line int, dst string, addr Operand) *LoadStmt {
	return &LoadStmt{stmtBase{Load, line, nil}, dst, addr}
}

func (s *LoadStmt) Exec(currentCost float64, rf *RegFile, mem *Memory) (float64, float64, error) {
	addr, err := s.Addr.Eval(rf)
	if err != nil {
		return 0, 0, err
	}
	v, err := mem.Load(addr)
	if err != nil {
		return 0, 0, err
	}
	rf.Write(s.Dst, v)
	return CostLoad + mem.AccessCost(addr), mem.WaitCost(addr), nil
}

// StoreStmt writes a word to an address. Stores pay the region access cost
// and do not wait.
type StoreStmt struct {
	stmtBase
	Val  Operand
	Addr Operand
}

func NewStore(line int, val, addr Operand) *StoreStmt {
	return &StoreStmt{stmtBase{Store, line, nil}, val, addr}
}

func (s *StoreStmt) Exec(currentCost float64, rf *RegFile, mem *Memory) (float64, float64, error) {
	v, err := s.Val.Eval(rf)
	if err != nil {
		return 0, 0, err
	}
	addr, err := s.Addr.Eval(rf)
	if err != nil {
		return 0, 0, err
	}
	if err := mem.Store(addr, v); err != nil {
		return 0, 0, err
	}
	return mem.AccessCost(addr), 0, nil
}

// BopStmt applies a binary operation to two operands.
type BopStmt struct {
	stmtBase
	Dst  string
	Kind BopKind
	A, B Operand
}

func NewBop(line int, dst string, kind BopKind, a, b Operand) *BopStmt {
	return &BopStmt{stmtBase{Bop, line, nil}, dst, kind, a, b}
}

func (s *BopStmt) Exec(currentCost float64, rf *RegFile, mem *Memory) (float64, float64, error) {
	a, err := s.A.Eval(rf)
	if err != nil {
		return 0, 0, err
	}
	b, err := s.B.Eval(rf)
	if err != nil {
		return 0, 0, err
	}
	v, err := evalBop(s.Kind, a, b)
	if err != nil {
		return 0, 0, err
	}
	rf.Write(s.Dst, v)
	return BopCost(s.Kind), 0, nil
}

func evalBop(kind BopKind, a, b uint64) (uint64, error) {
	switch kind {
	case Udiv, Sdiv, Urem, Srem:
		if b == 0 {
			return 0, fmt.Errorf("division by zero")
		}
	}

	switch kind {
	case Udiv:
		return a / b, nil
	case Sdiv:
		return uint64(int64(a) / int64(b)), nil
	case Urem:
		return a % b, nil
	case Srem:
		return uint64(int64(a) % int64(b)), nil
	case Mul:
		return a * b, nil
	case Shl:
		return a << (b & 63), nil
	case Lshr:
		return a >> (b & 63), nil
	case Ashr:
		return uint64(int64(a) >> (b & 63)), nil
	case And:
		return a & b, nil
	case Or:
		return a | b, nil
	case Xor:
		return a ^ b, nil
	case Add:
		return a + b, nil
	case Sub:
		return a - b, nil
	case Eq:
		return boolToWord(a == b), nil
	case Ne:
		return boolToWord(a != b), nil
	case Ugt:
		return boolToWord(a > b), nil
	case Uge:
		return boolToWord(a >= b), nil
	case Ult:
		return boolToWord(a < b), nil
	case Ule:
		return boolToWord(a <= b), nil
	case Sgt:
		return boolToWord(int64(a) > int64(b)), nil
	case Sge:
		return boolToWord(int64(a) >= int64(b)), nil
	case Slt:
		return boolToWord(int64(a) < int64(b)), nil
	case Sle:
		return boolToWord(int64(a) <= int64(b)), nil
	default:
		return 0, fmt.Errorf("unknown binary operation kind %d", kind)
	}
}

func boolToWord(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

// SumStmt adds two or more operands with wrapping arithmetic.
type SumStmt struct {
	stmtBase
	Dst   string
	Terms []Operand
}

func NewSum(line int, dst string, terms []Operand) *SumStmt {
	return &SumStmt{stmtBase{Sum, line, nil}, dst, terms}
}

func (s *SumStmt) Exec(currentCost float64, rf *RegFile, mem *Memory) (float64, float64, error) {
	var acc uint64
	for _, t := range s.Terms {
		v, err := t.Eval(rf)
		if err != nil {
			return 0, 0, err
		}
		acc += v
	}
	rf.Write(s.Dst, acc)
	return CostSum, 0, nil
}

// UopStmt applies a unary operation.
type UopStmt struct {
	stmtBase
	Dst  string
	Kind UopKind
	A    Operand
}

func NewUop(line int, dst string, kind UopKind, a Operand) *UopStmt {
	return &UopStmt{stmtBase{Uop, line, nil}, dst, kind, a}
}

func (s *UopStmt) Exec(currentCost float64, rf *RegFile, mem *Memory) (float64, float64, error) {
	v, err := s.A.Eval(rf)
	if err != nil {
		return 0, 0, err
	}
	switch s.Kind {
	case Incr:
		v++
	case Decr:
		v--
	}
	rf.Write(s.Dst, v)
	return CostUop, 0, nil
}

// SelectStmt is the ternary cond ? a : b.
type SelectStmt struct {
	stmtBase
	Dst  string
	Cond Operand
	A, B Operand
}

func NewSelect(line int, dst string, cond, a, b Operand) *SelectStmt {
	return &SelectStmt{stmtBase{Select, line, nil}, dst, cond, a, b}
}

func (s *SelectStmt) Exec(currentCost float64, rf *RegFile, mem *Memory) (float64, float64, error) {
	c, err := s.Cond.Eval(rf)
	if err != nil {
		return 0, 0, err
	}
	pick := s.B
	if c != 0 {
		pick = s.A
	}
	v, err := pick.Eval(rf)
	if err != nil {
		return 0, 0, err
	}
	rf.Write(s.Dst, v)
	return CostSelect, 0, nil
}

// AssertStmt faults unless its two operands are equal.
type AssertStmt struct {
	stmtBase
	A, B Operand
}

func NewAssert(line int, a, b Operand) *AssertStmt {
	return &AssertStmt{stmtBase{Assert, line, nil}, a, b}
}

func (s *AssertStmt) Exec(currentCost float64, rf *RegFile, mem *Memory) (float64, float64, error) {
	a, err := s.A.Eval(rf)
	if err != nil {
		return 0, 0, err
	}
	b, err := s.B.Eval(rf)
	if err != nil {
		return 0, 0, err
	}
	if a != b {
		return 0, 0, fmt.Errorf("assertion failed: %d != %d", a, b)
	}
	return CostAssert, 0, nil
}

// ReadStmt reads a word from the console into Dst.
type ReadStmt struct {
	stmtBase
	Dst string
}

func NewRead(line int, dst string) *ReadStmt {
	return &ReadStmt{stmtBase{Read, line, nil}, dst}
}

func (s *ReadStmt) Exec(currentCost float64, rf *RegFile, mem *Memory) (float64, float64, error) {
	v, err := mem.ReadWord()
	if err != nil {
		return 0, 0, err
	}
	rf.Write(s.Dst, v)
	return 0, 0, nil
}

// WriteStmt prints a word to the console.
type WriteStmt struct {
	stmtBase
	Val Operand
}

func NewWrite(line int, val Operand) *WriteStmt {
	return &WriteStmt{stmtBase{Write, line, nil}, val}
}

func (s *WriteStmt) Exec(currentCost float64, rf *RegFile, mem *Memory) (float64, float64, error) {
	v, err := s.Val.Eval(rf)
	if err != nil {
		return 0, 0, err
	}
	if err := mem.WriteWord(v); err != nil {
		return 0, 0, err
	}
	return 0, 0, nil
}
