/*
 * Jacobin-lineage JVM core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package vmstack implements the execution-stack machinery: the tagged
// Slot, the SlotBuffer that serves as both local variable table and operand
// stack, the StackFrame activation record, the per-thread JavaStack, and the
// three fixed-capacity object pools that recycle them. Grounded on
// daimatz-gojvm's vm.Frame (Push/Pop/GetLocal/SetLocal shape) generalized to
// a tagged Slot value instead of a single Value union, and on
// Fantom-foundation-Tosca's lfvm.stack pool pattern (fixed backing array,
// use-flag recycling instead of sync.Pool, since pool capacity here is
// fixed at init rather than elastic).
package vmstack

import "jvmcore/vmerrors"

// SlotTag discriminates what kind of value a Slot holds.
type SlotTag uint8

const (
	TagInt SlotTag = iota
	TagLong
	TagFloat
	TagDouble
	TagReference
	TagReturnAddress
)

// Slot is a pointer-width tagged value, the unit of both the local variable
// table and the operand stack.
type Slot struct {
	Tag SlotTag
	Raw uint64      // primitive payload, reinterpreted per Tag
	Ref interface{} // populated only when Tag == TagReference
}

// IntSlot builds a TagInt slot.
func IntSlot(v int32) Slot { return Slot{Tag: TagInt, Raw: uint64(uint32(v))} }

// Int reads back an int32, valid only when Tag == TagInt.
func (s Slot) Int() int32 { return int32(uint32(s.Raw)) }

// LongSlot builds a TagLong slot.
func LongSlot(v int64) Slot { return Slot{Tag: TagLong, Raw: uint64(v)} }

// Long reads back an int64, valid only when Tag == TagLong.
func (s Slot) Long() int64 { return int64(s.Raw) }

// ReferenceSlot builds a TagReference slot; a nil ref is a Java null.
func ReferenceSlot(ref interface{}) Slot { return Slot{Tag: TagReference, Ref: ref} }

// IsNullReference reports whether a reference slot holds Java null.
func (s Slot) IsNullReference() bool { return s.Tag == TagReference && s.Ref == nil }

// SlotBuffer is a capacity-bounded contiguous array of Slots with a valid
// count and a use-flag for pool recycling. It serves dual duty as
// LocalVarTable (indexed random access via Get/Set) and OperandStack
// (Push/Pop from the high end), exactly as daimatz-gojvm's single Frame
// type does with its separate LocalVars/OperandStack slices, collapsed here
// into one reusable, pool-backed shape.
type SlotBuffer struct {
	slots []Slot
	count int
	use   bool
}

// newSlotBuffer preallocates a SlotBuffer of the given capacity.
func newSlotBuffer(capacity int) *SlotBuffer {
	return &SlotBuffer{slots: make([]Slot, capacity)}
}

// Len reports the number of valid entries currently held (the stack-style
// count, not the backing capacity).
func (b *SlotBuffer) Len() int { return b.count }

// Cap reports the backing array's capacity.
func (b *SlotBuffer) Cap() int { return len(b.slots) }

// Reset clears the buffer to empty without shrinking its backing array.
func (b *SlotBuffer) Reset() { b.count = 0 }

// Get returns the local variable at index, the LocalVarTable random-access
// operation.
func (b *SlotBuffer) Get(index int) Slot {
	if index < 0 || index >= len(b.slots) {
		panic("vmstack: local variable index out of range")
	}
	return b.slots[index]
}

// Set writes the local variable at index, growing Len if index extends past
// the current valid count (locals are addressed by slot index, not pushed).
func (b *SlotBuffer) Set(index int, s Slot) {
	if index < 0 || index >= len(b.slots) {
		panic("vmstack: local variable index out of range")
	}
	b.slots[index] = s
	if index >= b.count {
		b.count = index + 1
	}
}

// Push appends a slot at the high end, the OperandStack operation.
func (b *SlotBuffer) Push(s Slot) error {
	if b.count >= len(b.slots) {
		return vmerrors.New(vmerrors.StackOverflow, "operand stack full")
	}
	b.slots[b.count] = s
	b.count++
	return nil
}

// Pop removes and returns the slot at the high end.
func (b *SlotBuffer) Pop() (Slot, error) {
	if b.count == 0 {
		return Slot{}, vmerrors.New(vmerrors.LinkageError, "operand stack underflow")
	}
	b.count--
	s := b.slots[b.count]
	b.slots[b.count] = Slot{}
	return s, nil
}

// Peek returns the high-end slot without removing it.
func (b *SlotBuffer) Peek() (Slot, error) {
	if b.count == 0 {
		return Slot{}, vmerrors.New(vmerrors.LinkageError, "operand stack empty")
	}
	return b.slots[b.count-1], nil
}
