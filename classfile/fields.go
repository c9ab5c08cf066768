/*
 * Jacobin-lineage JVM core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classfile

import (
	"jvmcore/class"
	"jvmcore/constpool"
	"jvmcore/vmerrors"
)

// parseFields reads fields_count then that many field_info structures,
// honoring the ConstantValue attribute for static final primitives by
// storing its pool index rather than evaluating it now.
func parseFields(c *cursor, pool *constpool.Pool, entry *class.ClassEntry) error {
	count, err := c.u2()
	if err != nil {
		return err
	}
	entry.Fields = make([]class.FieldEntry, 0, count)

	for i := 0; i < int(count); i++ {
		accessFlags, err := c.u2()
		if err != nil {
			return err
		}
		nameIdx, err := c.u2()
		if err != nil {
			return err
		}
		descIdx, err := c.u2()
		if err != nil {
			return err
		}

		name, err := pool.Utf8At(nameIdx)
		if err != nil {
			return err
		}
		desc, err := pool.Utf8At(descIdx)
		if err != nil {
			return err
		}

		field := class.FieldEntry{
			Owning:     entry,
			Name:       name,
			Descriptor: desc,
			Access:     class.FieldAccessFlags(accessFlags),
		}

		attrCount, err := c.u2()
		if err != nil {
			return err
		}
		for a := 0; a < int(attrCount); a++ {
			attrNameIdx, err := c.u2()
			if err != nil {
				return err
			}
			attrLen, err := c.u4()
			if err != nil {
				return err
			}
			attrName, err := pool.Utf8At(attrNameIdx)
			if err != nil {
				return err
			}
			switch attrName {
			case "ConstantValue":
				if attrLen != 2 {
					return vmerrors.Newf(vmerrors.MalformedAttribute, "ConstantValue attribute has length %d, want 2", attrLen)
				}
				idx, err := c.u2()
				if err != nil {
					return err
				}
				field.HasConstantValue = true
				field.ConstantValueIndex = idx
			case "Signature":
				if attrLen != 2 {
					return vmerrors.Newf(vmerrors.MalformedAttribute, "Signature attribute has length %d, want 2", attrLen)
				}
				idx, err := c.u2()
				if err != nil {
					return err
				}
				sig, err := pool.Utf8At(idx)
				if err != nil {
					return err
				}
				field.Signature = sig
			default:
				if err := c.skip(int(attrLen)); err != nil {
					return err
				}
			}
		}
		entry.Fields = append(entry.Fields, field)
	}
	return nil
}
