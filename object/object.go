/*
 * Jacobin-lineage JVM core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package object implements a uniform object header: every runtime-visible
// entity — a loaded Class meta-object or an ordinary heap instance — begins
// with the same two-word header (a lock word and a class pointer), so a
// garbage collector can walk the heap with one shape regardless of what
// follows it. This core doesn't include a collector, but the header is
// laid out the way one would expect it to support one later.
package object

import (
	"jvmcore/class"

	"go.uber.org/atomic"
)

// Header is embedded by both Class and Instance. LockWord carries monitor
// state and the lazily-assigned identity hash; it's an atomic.Uint64
// rather than a plain field because the identity-hash fast path and a
// future monitor implementation both need lock-free read-modify-write.
type Header struct {
	LockWord atomic.Uint64

	// Class points at the owning Class meta-object for an Instance; it is
	// nil for a Class meta-object itself, since a class's own class is
	// implicit.
	Class *Class
}

// Class is the runtime Class meta-object: the uniform header followed by
// the ClassEntry payload.
type Class struct {
	Header
	Entry *class.ClassEntry
}

// NewClass wraps a parsed/linked ClassEntry in its runtime meta-object.
func NewClass(entry *class.ClassEntry) *Class {
	return &Class{Entry: entry}
}

// IdentityHash returns a stable per-object hash derived from the header's
// lock word, lazily assigned on first use. Using an atomic CompareAndSwap
// means two goroutines racing to hash the same fresh object converge on
// one value instead of each computing their own.
func (h *Header) IdentityHash(seed uint64) uint32 {
	for {
		cur := h.LockWord.Load()
		if cur != 0 {
			return uint32(cur)
		}
		if h.LockWord.CompareAndSwap(0, seed) {
			return uint32(seed)
		}
	}
}

// Field is one instance field's runtime value: a descriptor tag plus its
// current value.
type Field struct {
	Ftype  string
	Fvalue interface{}
}

// Instance is an ordinary heap object: the uniform header followed by its
// packed instance fields, addressed by name here (a real allocator would
// pack by offset instead; what matters for the collector is that the
// payload is addressed consistently, not the Go representation chosen for
// it).
type Instance struct {
	Header
	Fields map[string]*Field
}

// NewInstance allocates an Instance of the given class with every declared
// non-static field defaulted to its zero value (reference nil / numeric
// zero), the same default-value step the linker's Prepare phase performs
// for static fields, performed here for instance fields at object-creation
// time instead of at link time.
func NewInstance(cls *Class) *Instance {
	inst := &Instance{Fields: make(map[string]*Field)}
	inst.Class = cls
	if cls == nil || cls.Entry == nil {
		return inst
	}
	for i := range cls.Entry.Fields {
		f := &cls.Entry.Fields[i]
		if f.Access.Has(class.FieldStatic) {
			continue
		}
		inst.Fields[f.Name] = &Field{Ftype: f.Descriptor, Fvalue: ZeroValueFor(f.Descriptor)}
	}
	return inst
}

// ZeroValueFor returns the default value for a field descriptor: nil for
// reference/array types, 0 for integral types, 0.0 for floating types.
func ZeroValueFor(descriptor string) interface{} {
	if descriptor == "" {
		return nil
	}
	switch descriptor[0] {
	case 'L', '[':
		return nil
	case 'D', 'F':
		return float64(0)
	default: // B C I J S Z
		return int64(0)
	}
}
