/*
 * Jacobin-lineage JVM core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package constpool implements a tagged-union constant-pool model: every
// index referenced from any entry must lie in [1, length) and target an
// entry of the expected tag. The pool is 1-based; index 0 is unused, and
// Long/Double entries occupy two consecutive slots with the second left as
// Unused, matching the JVM class-file format.
package constpool

import "jvmcore/vmerrors"

// Tag identifies the shape of a ConstPoolEntry's payload.
type Tag uint8

const (
	Unused Tag = iota
	Utf8
	Integer
	Float
	Long
	Double
	ClassRef
	StringRef
	FieldRef
	MethodRef
	InterfaceMethodRef
	NameAndType
	MethodHandle
	MethodType
	InvokeDynamic
)

func (t Tag) String() string {
	switch t {
	case Utf8:
		return "Utf8"
	case Integer:
		return "Integer"
	case Float:
		return "Float"
	case Long:
		return "Long"
	case Double:
		return "Double"
	case ClassRef:
		return "Class"
	case StringRef:
		return "String"
	case FieldRef:
		return "Fieldref"
	case MethodRef:
		return "Methodref"
	case InterfaceMethodRef:
		return "InterfaceMethodref"
	case NameAndType:
		return "NameAndType"
	case MethodHandle:
		return "MethodHandle"
	case MethodType:
		return "MethodType"
	case InvokeDynamic:
		return "InvokeDynamic"
	default:
		return "Unused"
	}
}

// Entry is one constant-pool slot. Which fields are meaningful depends on
// Tag; unused fields are left at their zero value, mirroring how the
// teacher's CPutils.FetchCPentry switches on entry.Type before touching any
// payload field.
type Entry struct {
	Tag Tag

	// Utf8
	Utf8Value string

	// Integer / Float
	IntValue   int32
	FloatValue float32

	// Long / Double (occupy this slot and the following unused one)
	LongValue   int64
	DoubleValue float64

	// Class: name index -> Utf8. String: string index -> Utf8.
	NameIndex uint16

	// Fieldref / Methodref / InterfaceMethodref
	ClassIndex     uint16
	NameTypeIndex  uint16

	// NameAndType
	DescIndex uint16

	// MethodHandle
	RefKind  uint8
	RefIndex uint16

	// MethodType
	DescriptorIndex uint16

	// InvokeDynamic
	BootstrapMethodAttrIndex uint16
}

// Pool is the 1-based constant pool of a class. Entries[0] is always the
// Unused sentinel.
type Pool struct {
	Entries []Entry

	// Resolved caches, per index, the Class/Field/Method pointer written
	// once by the linker/resolver; kept here, beside the entry, rather
	// than replacing the index, so the raw index stays inspectable.
	// Its elements are declared as interface{} to avoid an import
	// cycle with the class package; callers type-assert to *class.ClassEntry
	// / *class.FieldEntry / *class.MethodEntry.
	Resolved []interface{}
}

// New allocates a Pool of the given logical length (constant_pool_count
// from the class file), 1-based, with index 0 reserved.
func New(length int) *Pool {
	return &Pool{
		Entries:  make([]Entry, length),
		Resolved: make([]interface{}, length),
	}
}

// Len returns the logical length of the pool (including the unused index 0
// and the unused second slot of any Long/Double).
func (p *Pool) Len() int { return len(p.Entries) }

// At returns the entry at a 1-based index, validating range.
// InvalidConstantPool is returned for an out-of-range index.
func (p *Pool) At(index uint16) (*Entry, error) {
	i := int(index)
	if i < 1 || i >= len(p.Entries) {
		return nil, vmerrors.Newf(vmerrors.InvalidConstantPool,
			"constant pool index %d out of range [1, %d)", i, len(p.Entries))
	}
	return &p.Entries[i], nil
}

// Expect is At plus a tag check: the entry must exist and carry the
// expected tag.
func (p *Pool) Expect(index uint16, want Tag) (*Entry, error) {
	e, err := p.At(index)
	if err != nil {
		return nil, err
	}
	if e.Tag != want {
		return nil, vmerrors.Newf(vmerrors.InvalidConstantPool,
			"constant pool index %d: expected tag %s, found %s", index, want, e.Tag)
	}
	return e, nil
}

// Utf8At resolves a Utf8 entry directly to its string value.
func (p *Pool) Utf8At(index uint16) (string, error) {
	e, err := p.Expect(index, Utf8)
	if err != nil {
		return "", err
	}
	return e.Utf8Value, nil
}

// ClassName resolves a Class entry's name index through the Utf8 entry it
// points to.
func (p *Pool) ClassName(index uint16) (string, error) {
	e, err := p.Expect(index, ClassRef)
	if err != nil {
		return "", err
	}
	return p.Utf8At(e.NameIndex)
}

// NameAndTypeStrings resolves a NameAndType entry to its (name, descriptor)
// pair, both through Utf8 entries.
func (p *Pool) NameAndTypeStrings(index uint16) (name string, desc string, err error) {
	e, err := p.Expect(index, NameAndType)
	if err != nil {
		return "", "", err
	}
	name, err = p.Utf8At(e.NameIndex)
	if err != nil {
		return "", "", err
	}
	desc, err = p.Utf8At(e.DescIndex)
	if err != nil {
		return "", "", err
	}
	return name, desc, nil
}

// RefInfo resolves a Fieldref/Methodref/InterfaceMethodref entry down to
// (className, memberName, descriptor) by following its class index and
// name-and-type index through their respective pool entries.
func (p *Pool) RefInfo(index uint16) (className, memberName, descriptor string, err error) {
	e, err := p.At(index)
	if err != nil {
		return "", "", "", err
	}
	switch e.Tag {
	case FieldRef, MethodRef, InterfaceMethodRef:
	default:
		return "", "", "", vmerrors.Newf(vmerrors.InvalidConstantPool,
			"constant pool index %d: expected a ref entry, found %s", index, e.Tag)
	}
	className, err = p.ClassName(e.ClassIndex)
	if err != nil {
		return "", "", "", err
	}
	memberName, descriptor, err = p.NameAndTypeStrings(e.NameTypeIndex)
	if err != nil {
		return "", "", "", err
	}
	return className, memberName, descriptor, nil
}

// Validate walks every entry and checks that its referenced indices are in
// range and point at entries of the expected tag, without resolving them to
// Class/Field/Method pointers (that's the linker's job). It is a standalone,
// idempotent structural check a caller can run before linking.
func (p *Pool) Validate() error {
	for i := 1; i < len(p.Entries); i++ {
		e := &p.Entries[i]
		var err error
		switch e.Tag {
		case Unused, Utf8, Integer, Float, Long, Double:
			// no cross-references to validate
		case ClassRef:
			_, err = p.Utf8At(e.NameIndex)
		case StringRef:
			_, err = p.Utf8At(e.NameIndex)
		case FieldRef, MethodRef, InterfaceMethodRef:
			_, _, _, err = p.RefInfo(uint16(i))
		case NameAndType:
			_, _, err = p.NameAndTypeStrings(uint16(i))
		case MethodHandle:
			_, err = p.At(e.RefIndex)
		case MethodType:
			_, err = p.Utf8At(e.DescriptorIndex)
		case InvokeDynamic:
			_, _, err = p.NameAndTypeStrings(e.NameTypeIndex)
		default:
			err = vmerrors.Newf(vmerrors.InvalidConstantPool, "unknown constant pool tag at index %d", i)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
