package ir

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// Address-space layout. Addresses below StackLimit form the always-valid
// stack region; malloc hands out heap blocks starting at HeapBase.
const (
	StackLimit = 102400
	HeapBase   = 1 << 20

	wordSize = 8
)

// Memory is the simulated machine memory: a word-granular stack region, a
// bump-allocated heap, and the console the Read/Write opcodes are mapped to.
// It owns the contention cost model for accesses.
type Memory struct {
	words map[uint64]uint64 // word storage keyed by address
	heap  map[uint64]uint64 // live heap blocks: base address -> size
	next  uint64            // next heap base (never reused)
	live  uint64            // currently allocated heap bytes
	max   uint64            // high-water mark of live

	in  *bufio.Scanner
	out io.Writer
}

// NewMemory creates an empty memory with the console on stdin/stdout.
func NewMemory() *Memory {
	m := &Memory{
		words: make(map[uint64]uint64),
		heap:  make(map[uint64]uint64),
		next:  HeapBase,
		out:   os.Stdout,
	}
	m.in = bufio.NewScanner(os.Stdin)
	m.in.Split(bufio.ScanWords)
	return m
}

// SetConsole redirects the console used by the Read/Write opcodes.
func (m *Memory) SetConsole(in io.Reader, out io.Writer) {
	if in != nil {
		m.in = bufio.NewScanner(in)
		m.in.Split(bufio.ScanWords)
	}
	if out != nil {
		m.out = out
	}
}

// Malloc allocates a heap block, rounding the size up to a full word.
// Addresses are never reused, keeping runs deterministic.
func (m *Memory) Malloc(size uint64) uint64 {
	size = (size + wordSize - 1) &^ uint64(wordSize-1)
	addr := m.next
	m.heap[addr] = size
	m.next += size + wordSize
	m.live += size
	if m.live > m.max {
		m.max = m.live
	}
	return addr
}

// Free releases a live heap block; anything else is a fault.
func (m *Memory) Free(addr uint64) error {
	size, ok := m.heap[addr]
	if !ok {
		return fmt.Errorf("freeing a pointer not returned by malloc: %#x", addr)
	}
	delete(m.heap, addr)
	m.live -= size
	for off := uint64(0); off < size; off += wordSize {
		delete(m.words, addr+off)
	}
	return nil
}

// Load reads the word at addr. Stack addresses are always valid and read as
// zero when untouched; heap addresses must fall inside a live block.
func (m *Memory) Load(addr uint64) (uint64, error) {
	if err := m.check(addr); err != nil {
		return 0, err
	}
	return m.words[addr], nil
}

// Store writes the word at addr under the same validity rules as Load.
func (m *Memory) Store(addr, v uint64) error {
	if err := m.check(addr); err != nil {
		return err
	}
	m.words[addr] = v
	return nil
}

func (m *Memory) check(addr uint64) error {
	if addr < StackLimit {
		return nil
	}
	for base, size := range m.heap {
		if addr >= base && addr < base+size {
			return nil
		}
	}
	return fmt.Errorf("invalid memory access at %#x", addr)
}

// AccessCost returns the instruction cost of touching addr.
func (m *Memory) AccessCost(addr uint64) float64 {
	if addr < StackLimit {
		return CostStackAccess
	}
	return CostHeapAccess
}

// WaitCost returns the latency a load at addr must wait out.
func (m *Memory) WaitCost(addr uint64) float64 {
	if addr < StackLimit {
		return CostWaitStack
	}
	return CostWaitHeap
}

// MaxAllocedSize reports the high-water mark of simultaneously live heap
// bytes over the whole run.
func (m *Memory) MaxAllocedSize() uint64 {
	return m.max
}

// ReadWord reads one unsigned decimal word from the console.
func (m *Memory) ReadWord() (uint64, error) {
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return 0, fmt.Errorf("reading from console: %w", err)
		}
		return 0, fmt.Errorf("reading from console: unexpected end of input")
	}
	return ParseImmediate(m.in.Text())
}

// WriteWord prints one word and a newline to the console.
func (m *Memory) WriteWord(v uint64) error {
	_, err := fmt.Fprintf(m.out, "%d\n", v)
	return err
}
