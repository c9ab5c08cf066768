/*
 * Jacobin-lineage JVM core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package vmstack

import (
	"sync"

	"jvmcore/constpool"
	"jvmcore/vmerrors"
)

// StackFrame is one activation record: a LocalVarTable and an
// OperandStack (both SlotBuffers drawn from a SlotBufferPool), a back
// pointer to the owning class's constant pool for dynamic linking during
// execution, a program counter (-1 means invalid/not yet entered), and a
// use flag for pool recycling. Mirrors daimatz-gojvm's vm.Frame field set
// (LocalVars/OperandStack/PC/Class) with the pool/constant-pool handle this
// core's recycling contract needs.
type StackFrame struct {
	LocalVarTable *SlotBuffer
	OperandStack  *SlotBuffer
	Pool          *constpool.Pool
	PC            int
	use           bool
}

// StackFramePool is a fixed-capacity array of StackFrames.
// Recycling a frame additionally returns its LocalVarTable and OperandStack
// to the given SlotBufferPool, clears PC to -1, and nils the constant-pool
// handle — the extra step a frame needs beyond the generic pool contract.
type StackFramePool struct {
	mu      sync.Mutex
	frames  []*StackFrame
	buffers *SlotBufferPool
}

// NewStackFramePool preallocates capacity StackFrames, each carrying its own
// pair of SlotBuffers obtained from buffers at construction time.
func NewStackFramePool(capacity int, buffers *SlotBufferPool) (*StackFramePool, error) {
	p := &StackFramePool{frames: make([]*StackFrame, capacity), buffers: buffers}
	for i := range p.frames {
		locals, err := buffers.Obtain()
		if err != nil {
			return nil, err
		}
		operands, err := buffers.Obtain()
		if err != nil {
			return nil, err
		}
		p.frames[i] = &StackFrame{LocalVarTable: locals, OperandStack: operands, PC: -1}
	}
	return p, nil
}

// Obtain returns the first free StackFrame and marks it in use, or
// PoolExhausted if none are free.
func (p *StackFramePool) Obtain() (*StackFrame, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, f := range p.frames {
		if !f.use {
			f.use = true
			return f, nil
		}
	}
	return nil, vmerrors.New(vmerrors.PoolExhausted, "stack frame pool exhausted")
}

// Recycle releases a frame's SlotBuffers back to the buffer pool, resets its
// program counter and constant-pool handle, and marks it free.
func (p *StackFramePool) Recycle(f *StackFrame) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.buffers.Recycle(f.LocalVarTable)
	p.buffers.Recycle(f.OperandStack)
	locals, _ := p.buffers.Obtain()
	operands, _ := p.buffers.Obtain()
	f.LocalVarTable = locals
	f.OperandStack = operands
	f.Pool = nil
	f.PC = -1
	f.use = false
}
