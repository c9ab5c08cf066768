// Package types holds the small set of primitive type aliases shared across
// the loader, linker, and execution-stack packages: the single-byte Java
// "byte" representation and the field-descriptor tag characters used to
// distinguish primitive, reference, and array field types.
package types

// JavaByte is a Java byte: a signed 8-bit value kept in its own type so that
// byte-array field values aren't confused with raw Go bytes coming off the
// wire.
type JavaByte int8

// Field/descriptor type tags, as they appear as the first character of a
// JVM field descriptor.
const (
	DescByte      = 'B'
	DescChar      = 'C'
	DescDouble    = 'D'
	DescFloat     = 'F'
	DescInt       = 'I'
	DescLong      = 'J'
	DescShort     = 'S'
	DescBoolean   = 'Z'
	DescReference = 'L'
	DescArray     = '['
)

// IsReferenceDescriptor reports whether a descriptor's leading byte denotes
// a reference type (object or array), as opposed to a primitive.
func IsReferenceDescriptor(lead byte) bool {
	return lead == DescReference || lead == DescArray
}

// ObjectClassName is the canonical name of the root of the class hierarchy;
// a super_class index of 0 in the class file denotes this class (§4.1 step 4).
const ObjectClassName = "java/lang/Object"
