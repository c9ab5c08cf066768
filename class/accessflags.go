/*
 * Jacobin-lineage JVM core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package class

// The bits 0x0020, 0x0040, and 0x0080 carry different meanings depending on
// whether they decorate a class, a method, or a field. Three distinct named
// types over the same underlying bit values let the decoding site pick the
// right interpretation instead of one shared, ambiguous AccessFlags type.

// ClassAccessFlags are the access_flags of a class-file header.
type ClassAccessFlags uint16

const (
	ClassPublic     ClassAccessFlags = 0x0001
	ClassFinal      ClassAccessFlags = 0x0010
	ClassSuper      ClassAccessFlags = 0x0020
	ClassInterface  ClassAccessFlags = 0x0200
	ClassAbstract   ClassAccessFlags = 0x0400
	ClassSynthetic  ClassAccessFlags = 0x1000
	ClassAnnotation ClassAccessFlags = 0x2000
	ClassEnum       ClassAccessFlags = 0x4000
	ClassModule     ClassAccessFlags = 0x8000
)

func (f ClassAccessFlags) Has(bit ClassAccessFlags) bool { return f&bit != 0 }

// FieldAccessFlags are the access_flags of a field_info.
type FieldAccessFlags uint16

const (
	FieldPublic    FieldAccessFlags = 0x0001
	FieldPrivate   FieldAccessFlags = 0x0002
	FieldProtected FieldAccessFlags = 0x0004
	FieldStatic    FieldAccessFlags = 0x0008
	FieldFinal     FieldAccessFlags = 0x0010
	FieldVolatile  FieldAccessFlags = 0x0040
	FieldTransient FieldAccessFlags = 0x0080
	FieldSynthetic FieldAccessFlags = 0x1000
	FieldEnum      FieldAccessFlags = 0x4000
)

func (f FieldAccessFlags) Has(bit FieldAccessFlags) bool { return f&bit != 0 }

// MethodAccessFlags are the access_flags of a method_info. Note 0x0020 means
// ACC_SYNCHRONIZED here, not ACC_SUPER, and 0x0040 means ACC_BRIDGE, not
// ACC_VOLATILE.
type MethodAccessFlags uint16

const (
	MethodPublic       MethodAccessFlags = 0x0001
	MethodPrivate      MethodAccessFlags = 0x0002
	MethodProtected    MethodAccessFlags = 0x0004
	MethodStatic       MethodAccessFlags = 0x0008
	MethodFinal        MethodAccessFlags = 0x0010
	MethodSynchronized MethodAccessFlags = 0x0020
	MethodBridge       MethodAccessFlags = 0x0040
	MethodVarargs      MethodAccessFlags = 0x0080
	MethodNative       MethodAccessFlags = 0x0100
	MethodAbstract     MethodAccessFlags = 0x0400
	MethodSynthetic    MethodAccessFlags = 0x1000
)

func (f MethodAccessFlags) Has(bit MethodAccessFlags) bool { return f&bit != 0 }
