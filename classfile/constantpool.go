/*
 * Jacobin-lineage JVM core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classfile

import (
	"jvmcore/constpool"
	"jvmcore/vmerrors"
)

// parseConstantPool reads constant_pool_count and entries 1..count-1 (spec
// §4.1 step 3, §6). Index 0 is left as constpool.Unused; Long/Double
// entries advance the index by 2, leaving the second slot Unused, per spec
// §3.
func parseConstantPool(c *cursor) (*constpool.Pool, error) {
	count, err := c.u2()
	if err != nil {
		return nil, err
	}
	if count < 1 {
		return nil, vmerrors.New(vmerrors.InvalidConstantPool, "constant_pool_count must be at least 1")
	}

	pool := constpool.New(int(count))

	for i := 1; i < int(count); i++ {
		tagByte, err := c.u1()
		if err != nil {
			return nil, err
		}
		entry, wide, err := parseConstantPoolEntry(c, tagByte)
		if err != nil {
			return nil, err
		}
		pool.Entries[i] = entry
		if wide {
			i++ // the following slot stays constpool.Unused
		}
	}
	return pool, nil
}

// JVM constant-pool tag bytes, as they appear on the wire.
const (
	tagUtf8               = 1
	tagInteger            = 3
	tagFloat              = 4
	tagLong               = 5
	tagDouble             = 6
	tagClass              = 7
	tagString             = 8
	tagFieldref           = 9
	tagMethodref          = 10
	tagInterfaceMethodref = 11
	tagNameAndType        = 12
	tagMethodHandle       = 15
	tagMethodType         = 16
	tagDynamic            = 17
	tagInvokeDynamic      = 18
	tagModule             = 19
	tagPackage            = 20
)

// parseConstantPoolEntry reads one tagged entry's payload. wide reports
// whether this entry consumes two pool slots (Long/Double).
func parseConstantPoolEntry(c *cursor, tagByte uint8) (constpool.Entry, bool, error) {
	switch tagByte {
	case tagUtf8:
		length, err := c.u2()
		if err != nil {
			return constpool.Entry{}, false, err
		}
		raw, err := c.bytes(int(length))
		if err != nil {
			return constpool.Entry{}, false, err
		}
		// modified-UTF8, not NUL-terminated; this core treats it as a raw
		// byte sequence rather than decoding CESU-8 surrogate pairs, which
		// is sufficient for the class/method/field names and descriptors
		// this layer consumes.
		return constpool.Entry{Tag: constpool.Utf8, Utf8Value: string(raw)}, false, nil

	case tagInteger:
		v, err := c.u4()
		if err != nil {
			return constpool.Entry{}, false, err
		}
		return constpool.Entry{Tag: constpool.Integer, IntValue: int32(v)}, false, nil

	case tagFloat:
		v, err := c.u4()
		if err != nil {
			return constpool.Entry{}, false, err
		}
		return constpool.Entry{Tag: constpool.Float, FloatValue: float32FromBits(v)}, false, nil

	case tagLong:
		v, err := c.u8()
		if err != nil {
			return constpool.Entry{}, false, err
		}
		return constpool.Entry{Tag: constpool.Long, LongValue: int64(v)}, true, nil

	case tagDouble:
		v, err := c.u8()
		if err != nil {
			return constpool.Entry{}, false, err
		}
		return constpool.Entry{Tag: constpool.Double, DoubleValue: float64FromBits(v)}, true, nil

	case tagClass:
		idx, err := c.u2()
		if err != nil {
			return constpool.Entry{}, false, err
		}
		return constpool.Entry{Tag: constpool.ClassRef, NameIndex: idx}, false, nil

	case tagString:
		idx, err := c.u2()
		if err != nil {
			return constpool.Entry{}, false, err
		}
		return constpool.Entry{Tag: constpool.StringRef, NameIndex: idx}, false, nil

	case tagFieldref, tagMethodref, tagInterfaceMethodref:
		classIdx, err := c.u2()
		if err != nil {
			return constpool.Entry{}, false, err
		}
		ntIdx, err := c.u2()
		if err != nil {
			return constpool.Entry{}, false, err
		}
		tag := constpool.FieldRef
		if tagByte == tagMethodref {
			tag = constpool.MethodRef
		} else if tagByte == tagInterfaceMethodref {
			tag = constpool.InterfaceMethodRef
		}
		return constpool.Entry{Tag: tag, ClassIndex: classIdx, NameTypeIndex: ntIdx}, false, nil

	case tagNameAndType:
		nameIdx, err := c.u2()
		if err != nil {
			return constpool.Entry{}, false, err
		}
		descIdx, err := c.u2()
		if err != nil {
			return constpool.Entry{}, false, err
		}
		return constpool.Entry{Tag: constpool.NameAndType, NameIndex: nameIdx, DescIndex: descIdx}, false, nil

	case tagMethodHandle:
		refKind, err := c.u1()
		if err != nil {
			return constpool.Entry{}, false, err
		}
		if refKind < 1 || refKind > 9 {
			return constpool.Entry{}, false, vmerrors.Newf(vmerrors.InvalidConstantPool,
				"invalid method handle reference kind %d", refKind)
		}
		refIdx, err := c.u2()
		if err != nil {
			return constpool.Entry{}, false, err
		}
		return constpool.Entry{Tag: constpool.MethodHandle, RefKind: refKind, RefIndex: refIdx}, false, nil

	case tagMethodType:
		descIdx, err := c.u2()
		if err != nil {
			return constpool.Entry{}, false, err
		}
		return constpool.Entry{Tag: constpool.MethodType, DescriptorIndex: descIdx}, false, nil

	case tagDynamic, tagInvokeDynamic:
		bmIdx, err := c.u2()
		if err != nil {
			return constpool.Entry{}, false, err
		}
		ntIdx, err := c.u2()
		if err != nil {
			return constpool.Entry{}, false, err
		}
		return constpool.Entry{Tag: constpool.InvokeDynamic, BootstrapMethodAttrIndex: bmIdx, NameTypeIndex: ntIdx}, false, nil

	case tagModule, tagPackage:
		// module_name_index / package_name_index: not materialized by this
		// core (class.ClassEntry has no module-system fields); the index
		// is consumed so the cursor stays in sync.
		if _, err := c.u2(); err != nil {
			return constpool.Entry{}, false, err
		}
		return constpool.Entry{Tag: constpool.Unused}, false, nil

	default:
		return constpool.Entry{}, false, vmerrors.Newf(vmerrors.InvalidConstantPool, "unknown constant pool tag %d", tagByte)
	}
}
