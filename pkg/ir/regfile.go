package ir

import "fmt"

// RegFile maps register names to 64-bit values. Exactly one register file is
// live at a time; call boundaries swap its contents through the
// BeginCall/EndCall checkpoint protocol.
type RegFile struct {
	regs map[string]uint64
}

// NewRegFile creates an empty register file.
func NewRegFile() *RegFile {
	return &RegFile{regs: make(map[string]uint64)}
}

// Read returns the value of a register; reading a register that was never
// written is an evaluation fault.
func (r *RegFile) Read(name string) (uint64, error) {
	v, ok := r.regs[name]
	if !ok {
		return 0, fmt.Errorf("reading undefined register %s", name)
	}
	return v, nil
}

// Write sets a register, defining it if needed.
func (r *RegFile) Write(name string, v uint64) {
	r.regs[name] = v
}

// Snapshot is the caller's register mapping captured at a call boundary.
// It stays readable so argument expressions can be evaluated against the
// caller's values while the live file already belongs to the callee.
type Snapshot struct {
	regs map[string]uint64
}

// Read returns the captured value of a register.
func (s *Snapshot) Read(name string) (uint64, error) {
	v, ok := s.regs[name]
	if !ok {
		return 0, fmt.Errorf("reading undefined register %s", name)
	}
	return v, nil
}

// BeginCall opens a callee scope: it captures the current mapping and
// installs a fresh file holding arg1..argN, all zero. The callee can never
// observe or clobber the caller's registers.
func (r *RegFile) BeginCall(nargs int) *Snapshot {
	snap := &Snapshot{regs: r.regs}
	r.regs = make(map[string]uint64, nargs)
	for i := 1; i <= nargs; i++ {
		r.regs[fmt.Sprintf("arg%d", i)] = 0
	}
	return snap
}

// EndCall closes a callee scope, restoring the captured caller mapping.
func (r *RegFile) EndCall(snap *Snapshot) {
	r.regs = snap.regs
}
