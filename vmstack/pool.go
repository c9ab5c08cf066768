/*
 * Jacobin-lineage JVM core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package vmstack

import (
	"sync"

	"jvmcore/vmerrors"
)

// SlotBufferPool is a fixed-capacity array of SlotBuffers, each carrying a
// use flag. Acquire does a linear scan for the first free element; capacity
// is fixed at creation and never grows, exactly as Fantom-foundation-Tosca's
// lfvm stack pool keeps a fixed [maxStackSize] backing array rather than
// letting sync.Pool elastically allocate, because exhaustion here is meant
// to be a reportable condition rather than "allocate more".
type SlotBufferPool struct {
	mu      sync.Mutex
	buffers []*SlotBuffer
	slotCap int
}

// NewSlotBufferPool preallocates capacity SlotBuffers, each sized to hold
// slotCap slots.
func NewSlotBufferPool(capacity, slotCap int) *SlotBufferPool {
	p := &SlotBufferPool{buffers: make([]*SlotBuffer, capacity), slotCap: slotCap}
	for i := range p.buffers {
		p.buffers[i] = newSlotBuffer(slotCap)
	}
	return p
}

// Obtain returns the first free SlotBuffer and marks it in use, or
// PoolExhausted if none are free.
func (p *SlotBufferPool) Obtain() (*SlotBuffer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, b := range p.buffers {
		if !b.use {
			b.use = true
			return b, nil
		}
	}
	return nil, vmerrors.New(vmerrors.PoolExhausted, "slot buffer pool exhausted")
}

// Recycle clears a SlotBuffer's contents and marks it free again.
func (p *SlotBufferPool) Recycle(b *SlotBuffer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	b.Reset()
	b.use = false
}

// RefHandle is an indirect reference-table slot: a single boxed reference
// plus the use flag every pool element carries. Kept as a distinct element
// type from Slot's inline TagReference case for the narrower cases (e.g.
// JNI-style pinned handles) that want table-indirection over ordinary
// header-embedded object references.
type RefHandle struct {
	Ref interface{}
	use bool
}

// RefHandlePool is a fixed-capacity array of RefHandles.
type RefHandlePool struct {
	mu      sync.Mutex
	handles []*RefHandle
}

// NewRefHandlePool preallocates capacity RefHandles.
func NewRefHandlePool(capacity int) *RefHandlePool {
	p := &RefHandlePool{handles: make([]*RefHandle, capacity)}
	for i := range p.handles {
		p.handles[i] = &RefHandle{}
	}
	return p
}

// Obtain returns the first free RefHandle, or PoolExhausted if none are free.
func (p *RefHandlePool) Obtain() (*RefHandle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, h := range p.handles {
		if !h.use {
			h.use = true
			return h, nil
		}
	}
	return nil, vmerrors.New(vmerrors.PoolExhausted, "ref handle pool exhausted")
}

// Recycle clears a RefHandle and marks it free again.
func (p *RefHandlePool) Recycle(h *RefHandle) {
	p.mu.Lock()
	defer p.mu.Unlock()
	h.Ref = nil
	h.use = false
}
