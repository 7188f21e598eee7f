package interpreter

import "fmt"

// ErrorKind classifies the fatal runtime faults. All of them abort the run;
// there is no local recovery.
type ErrorKind int

const (
	// ErrMissingEntryBlock means a function has no first basic block.
	ErrMissingEntryBlock ErrorKind = iota
	// ErrUndefinedBranchTarget means a branch or switch resolved to a label
	// absent from the current function.
	ErrUndefinedBranchTarget
	// ErrUndefinedFunction means a call named a function absent from the
	// program, or the entry point itself is missing.
	ErrUndefinedFunction
	// ErrArityMismatch means a call site's argument count differs from the
	// callee's declared arity.
	ErrArityMismatch
	// ErrCallDepthExceeded means the interpreted program recursed past the
	// configured call depth limit.
	ErrCallDepthExceeded
	// ErrStepLimitExceeded means the configured statement budget ran out.
	ErrStepLimitExceeded
	// ErrEvalFault means a statement's evaluation failed (division by zero,
	// invalid memory access, failed assertion, console read failure,
	// undefined register).
	ErrEvalFault
)

// RuntimeError is a fatal interpretation fault. It carries the source line
// of the offending statement instead of relying on any global current-line
// state.
type RuntimeError struct {
	Kind ErrorKind
	Line int
	Msg  string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

func runtimeErr(kind ErrorKind, line int, format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: kind, Line: line, Msg: fmt.Sprintf(format, args...)}
}
