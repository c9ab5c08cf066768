/*
 * Jacobin-lineage JVM core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package class holds the in-memory representation of a loaded class
// (ClassEntry, FieldEntry, MethodEntry) and the load-state lattice classes
// move through from parse to full resolution.
package class

import "jvmcore/constpool"

// Instruction is one decoded bytecode instruction, populated by the
// bytecode package's extractor. It lives here, rather than in a package
// MethodEntry would have to import, so MethodEntry can hold its decoded
// table directly without an import cycle.
type Instruction struct {
	Offset   int     // original byte offset in the code array
	Opcode   uint8
	Operands []byte  // operand bytes, big-endian, as they appeared in the stream (the whole tail for tableswitch/lookupswitch/wide)
	// BranchTarget is the index into the owning MethodEntry's Instructions
	// table that a branch-style opcode's offset operand resolves to, filled
	// in by the extractor's second pass so interpretation is O(1) instead
	// of re-scanning offsets. -1 when not a branch.
	BranchTarget int
}

// ExceptionTableEntry is one row of a method's exception table.
type ExceptionTableEntry struct {
	StartPC   int
	EndPC     int
	HandlerPC int
	CatchType uint16 // constant pool index of the catch type, 0 means "any" (finally)
}

// FieldEntry is one field declaration.
type FieldEntry struct {
	Owning     *ClassEntry
	Name       string
	Descriptor string
	Signature  string // generic signature, "" if absent
	Access     FieldAccessFlags

	// HasConstantValue/ConstantValueIndex record the ConstantValue
	// attribute's pool index for a static final primitive/String field;
	// honored at initialization, not preparation.
	HasConstantValue   bool
	ConstantValueIndex uint16
}

// MethodEntry is one method or constructor declaration.
type MethodEntry struct {
	Owning     *ClassEntry
	Name       string
	Descriptor string
	Signature  string
	Access     MethodAccessFlags

	MaxStack  int
	MaxLocals int
	ArgCount  int

	Code         []byte
	CodeLength   int
	Instructions []Instruction // populated by bytecode.ExtractInstructions

	ExceptionTable []ExceptionTableEntry
}

// IsAbstractOrNative reports whether this method has no Code attribute to
// extract instructions from (abstract and native methods both lack one).
func (m *MethodEntry) IsAbstractOrNative() bool {
	return m.Access.Has(MethodAbstract) || m.Access.Has(MethodNative)
}

// ClassEntry is the per-class payload sitting behind the uniform object
// header for a Class meta-object.
type ClassEntry struct {
	Name       string // canonical name, e.g. "java/lang/String"
	Signature  string
	SourceFile string

	// SuperName is the super class's canonical name, unresolved at parse
	// time; Super is filled in lazily by the linker.
	SuperName string
	Super     *ClassEntry

	State  LoadState
	Access ClassAccessFlags

	Pool *constpool.Pool

	Fields  []FieldEntry
	Methods []MethodEntry

	// InterfaceNames are recorded at parse time; InterfaceClasses is
	// filled in by the linker/resolver once each interface is at least
	// linked.
	InterfaceNames   []string
	InterfaceClasses []*ClassEntry

	// StaticFields holds the live storage for this class's static fields,
	// allocated with zero values during preparation and keyed by field
	// name.
	StaticFields map[string]interface{}

	// Loader names the defining class loader. This core keeps the
	// delegation model unspecified and uses a single bootstrap loader as
	// the safe default, which is what every loader.Loader here uses.
	Loader string
}

// FindFieldDirect scans only this class's own fields for an exact
// (name, descriptor) match, the base case linker.FindField builds on.
func (c *ClassEntry) FindFieldDirect(name, descriptor string) *FieldEntry {
	for i := range c.Fields {
		f := &c.Fields[i]
		if f.Name == name && f.Descriptor == descriptor {
			return f
		}
	}
	return nil
}

// FindMethodDirect scans only this class's own methods for an exact
// (name, descriptor) match.
func (c *ClassEntry) FindMethodDirect(name, descriptor string) *MethodEntry {
	for i := range c.Methods {
		m := &c.Methods[i]
		if m.Name == name && m.Descriptor == descriptor {
			return m
		}
	}
	return nil
}
