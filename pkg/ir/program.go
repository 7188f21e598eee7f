package ir

import "fmt"

// EntryFunction is the name of the designated entry point.
const EntryFunction = "main"

// Program maps function names to their bodies. Immutable once built; Call
// targets and the entry point are resolved against it by name at run time.
type Program struct {
	funcs map[string]*Function
	order []string
}

// NewProgram creates an empty program.
func NewProgram() *Program {
	return &Program{funcs: make(map[string]*Function)}
}

// AddFunction registers a function; duplicate names are rejected.
func (p *Program) AddFunction(f *Function) error {
	if _, ok := p.funcs[f.name]; ok {
		return fmt.Errorf("duplicate function %s", f.name)
	}
	p.funcs[f.name] = f
	p.order = append(p.order, f.name)
	return nil
}

// Function returns the named function, or nil when absent.
func (p *Program) Function(name string) *Function {
	return p.funcs[name]
}

// NumFunctions returns how many functions the program defines.
func (p *Program) NumFunctions() int {
	return len(p.order)
}

// Function is one named body: its arity and its labeled basic blocks. The
// entry block is the first block added. Never mutated during execution.
type Function struct {
	name   string
	nargs  int
	blocks map[string]Stmt
	entry  string
}

// NewFunction creates a function with no blocks yet.
func NewFunction(name string, nargs int) *Function {
	return &Function{name: name, nargs: nargs, blocks: make(map[string]Stmt)}
}

// Name returns the function name.
func (f *Function) Name() string { return f.name }

// NumArgs returns the declared arity.
func (f *Function) NumArgs() int { return f.nargs }

// AddBlock registers a labeled block by its first statement; the first block
// added becomes the entry block. Duplicate labels are rejected.
func (f *Function) AddBlock(label string, first Stmt) error {
	if _, ok := f.blocks[label]; ok {
		return fmt.Errorf("duplicate basic block %s in function %s", label, f.name)
	}
	if len(f.blocks) == 0 {
		f.entry = label
	}
	f.blocks[label] = first
	return nil
}

// EntryBlock returns the first statement of the entry block, or nil when the
// function has no blocks.
func (f *Function) EntryBlock() Stmt {
	if f.entry == "" {
		return nil
	}
	return f.blocks[f.entry]
}

// Block returns the first statement of the labeled block, or nil when the
// label is undefined in this function.
func (f *Function) Block(label string) Stmt {
	return f.blocks[label]
}
