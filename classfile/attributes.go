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

// parseClassAttributes reads the class-level attribute table; only
// SourceFile is materialized.
func parseClassAttributes(c *cursor, pool *constpool.Pool, entry *class.ClassEntry) error {
	count, err := c.u2()
	if err != nil {
		return err
	}
	for i := 0; i < int(count); i++ {
		nameIdx, err := c.u2()
		if err != nil {
			return err
		}
		attrLen, err := c.u4()
		if err != nil {
			return err
		}
		attrName, err := pool.Utf8At(nameIdx)
		if err != nil {
			return err
		}
		switch attrName {
		case "SourceFile":
			if attrLen != 2 {
				return vmerrors.Newf(vmerrors.MalformedAttribute, "SourceFile attribute has length %d, want 2", attrLen)
			}
			idx, err := c.u2()
			if err != nil {
				return err
			}
			name, err := pool.Utf8At(idx)
			if err != nil {
				return err
			}
			entry.SourceFile = name
		default:
			if err := c.skip(int(attrLen)); err != nil {
				return err
			}
		}
	}
	return nil
}
