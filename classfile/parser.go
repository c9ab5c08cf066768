/*
 * Jacobin-lineage JVM core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package classfile implements the class-file parser: a pure, no-I/O
// transformation of a byte buffer into a *class.ClassEntry in state
// class.LOADED. Errors are returned, never panicked, and a failed parse
// never leaves a partially-populated class behind.
package classfile

import (
	"jvmcore/class"
	"jvmcore/constpool"
	"jvmcore/vmerrors"
	"jvmcore/vmlog"
)

const magic = 0xCAFEBABE

// Parse decodes rawBytes into a ClassEntry, cross-checking the class name
// the caller expects (expectedName) against the this_class entry. An empty
// expectedName skips the cross-check, which the loader uses when the
// caller doesn't yet know the canonical name (e.g. loading straight from a
// jar member path).
func Parse(rawBytes []byte, expectedName string) (*class.ClassEntry, error) {
	c := newCursor(rawBytes)

	if err := parseMagic(c); err != nil {
		return nil, err
	}

	// minor/major version: accepted unconditionally.
	if _, err := c.u2(); err != nil {
		return nil, err
	}
	if _, err := c.u2(); err != nil {
		return nil, err
	}

	pool, err := parseConstantPool(c)
	if err != nil {
		return nil, err
	}

	entry := &class.ClassEntry{Pool: pool, StaticFields: map[string]interface{}{}}

	accessFlags, err := c.u2()
	if err != nil {
		return nil, err
	}
	entry.Access = class.ClassAccessFlags(accessFlags)

	thisClassIdx, err := c.u2()
	if err != nil {
		return nil, err
	}
	name, err := pool.ClassName(thisClassIdx)
	if err != nil {
		return nil, err
	}
	entry.Name = name

	if expectedName != "" && expectedName != name {
		return nil, vmerrors.Newf(vmerrors.ClassNameMismatch,
			"class declares name %q, expected %q", name, expectedName)
	}

	superClassIdx, err := c.u2()
	if err != nil {
		return nil, err
	}
	if superClassIdx == 0 {
		entry.SuperName = "" // java.lang.Object has no superclass
	} else {
		superName, err := pool.ClassName(superClassIdx)
		if err != nil {
			return nil, err
		}
		entry.SuperName = superName
	}

	if err := parseInterfaces(c, pool, entry); err != nil {
		return nil, err
	}

	if err := parseFields(c, pool, entry); err != nil {
		return nil, err
	}

	if err := parseMethods(c, pool, entry); err != nil {
		return nil, err
	}

	if err := parseClassAttributes(c, pool, entry); err != nil {
		return nil, err
	}

	entry.State.AdvanceTo(class.LOADING)
	entry.State.AdvanceTo(class.LOADED)
	vmlog.Trace("parsed class", "class", entry.Name, "fields", len(entry.Fields), "methods", len(entry.Methods))
	return entry, nil
}

func parseMagic(c *cursor) error {
	v, err := c.u4()
	if err != nil {
		return err
	}
	if v != magic {
		return vmerrors.Newf(vmerrors.MalformedClassFile, "bad magic number 0x%08X", v)
	}
	return nil
}

func parseInterfaces(c *cursor, pool *constpool.Pool, entry *class.ClassEntry) error {
	count, err := c.u2()
	if err != nil {
		return err
	}
	entry.InterfaceNames = make([]string, 0, count)
	entry.InterfaceClasses = make([]*class.ClassEntry, count)
	for i := 0; i < int(count); i++ {
		idx, err := c.u2()
		if err != nil {
			return err
		}
		name, err := pool.ClassName(idx)
		if err != nil {
			return err
		}
		entry.InterfaceNames = append(entry.InterfaceNames, name)
	}
	return nil
}
