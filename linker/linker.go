/*
 * Jacobin-lineage JVM core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package linker implements linking and resolution: verifying a parsed
// class, preparing its static fields, resolving its super chain, and later
// resolving symbolic constant-pool references to direct Class/Field/Method
// pointers.
package linker

import (
	"jvmcore/class"
	"jvmcore/methodarea"
	"jvmcore/types"
	"jvmcore/vmerrors"
	"jvmcore/vmlog"
)

// ClassResolver parses and registers a named class from raw bytes,
// returning the existing method-area entry if one is already present.
// *loader.Loader satisfies this without the linker package importing
// loader directly. LinkClass and ResolveClass do not use it: they take a
// loadSuper func instead.
type ClassResolver interface {
	DefineClass(name string, data []byte) (*class.ClassEntry, error)
}

// Linker links classes registered in a method-area store.
type Linker struct {
	Store *methodarea.Store
}

// New builds a Linker over the given method-area store.
func New(store *methodarea.Store) *Linker {
	return &Linker{Store: store}
}

// LinkClass transitions a class LOADED -> LINKING -> LINKED.
// loadSuper is called only when the super class isn't already present in
// the method area (callers pass a loader-backed func such as jvm.VM's
// loadSuper; it is kept abstract here as a func so tests don't need a real
// filesystem loader).
func (l *Linker) LinkClass(c *class.ClassEntry, loadSuper func(name string) (*class.ClassEntry, error)) error {
	if c.State != class.LOADED {
		return vmerrors.Newf(vmerrors.LinkageError, "cannot link class %s from state %s", c.Name, c.State)
	}

	if err := verify(c); err != nil {
		c.State.AdvanceTo(class.BAD)
		return err
	}

	if err := prepareStaticFields(c); err != nil {
		c.State.AdvanceTo(class.BAD)
		return err
	}

	c.State.AdvanceTo(class.LINKING)

	if c.SuperName != "" {
		super, err := l.resolveSuper(c, loadSuper)
		if err != nil {
			c.State.AdvanceTo(class.BAD)
			return err
		}
		c.Super = super
	}

	c.State.AdvanceTo(class.LINKED)
	vmlog.Trace("linked class", "class", c.Name)
	return nil
}

// verify performs structural checks: code length, exception handler
// ranges, and max_stack/max_locals bounds. This is explicitly not bytecode
// type-safety verification.
func verify(c *class.ClassEntry) error {
	for i := range c.Methods {
		m := &c.Methods[i]
		if m.IsAbstractOrNative() {
			continue
		}
		if m.CodeLength > 65535 {
			return vmerrors.Newf(vmerrors.LinkageError, "method %s%s: code_length %d exceeds 65535", m.Name, m.Descriptor, m.CodeLength)
		}
		if m.MaxStack > 65535 || m.MaxLocals > 65535 {
			return vmerrors.Newf(vmerrors.LinkageError, "method %s%s: max_stack/max_locals out of 16-bit range", m.Name, m.Descriptor)
		}
		for _, et := range m.ExceptionTable {
			if et.StartPC < 0 || et.EndPC > m.CodeLength || et.StartPC > et.EndPC || et.HandlerPC < 0 || et.HandlerPC >= m.CodeLength {
				return vmerrors.Newf(vmerrors.LinkageError,
					"method %s%s: exception handler range [%d,%d) handler %d out of code bounds [0,%d)",
					m.Name, m.Descriptor, et.StartPC, et.EndPC, et.HandlerPC, m.CodeLength)
			}
		}
	}
	return nil
}

// prepareStaticFields allocates zero-valued storage for every static field.
// ConstantValue is honored at initialization, not here.
func prepareStaticFields(c *class.ClassEntry) error {
	if c.StaticFields == nil {
		c.StaticFields = make(map[string]interface{})
	}
	for i := range c.Fields {
		f := &c.Fields[i]
		if !f.Access.Has(class.FieldStatic) {
			continue
		}
		if f.Descriptor == "" {
			return vmerrors.Newf(vmerrors.MalformedClassFile, "field %s: empty descriptor", f.Name)
		}
		if types.IsReferenceDescriptor(f.Descriptor[0]) {
			c.StaticFields[f.Name] = nil
		} else {
			c.StaticFields[f.Name] = zeroPrimitive(f.Descriptor[0])
		}
	}
	return nil
}

func zeroPrimitive(lead byte) interface{} {
	switch lead {
	case types.DescDouble, types.DescFloat:
		return float64(0)
	default:
		return int64(0)
	}
}

// resolveSuper looks up (or loads) the super class and refuses a cycle
// where the super is already LINKING, meaning it's an ancestor currently
// under construction in this same synchronous link.
func (l *Linker) resolveSuper(c *class.ClassEntry, loadSuper func(name string) (*class.ClassEntry, error)) (*class.ClassEntry, error) {
	super := l.Store.Lookup(c.SuperName)
	if super == nil {
		loaded, err := loadSuper(c.SuperName)
		if err != nil {
			return nil, vmerrors.Wrap(vmerrors.NoSuchClass, err, "loading super class "+c.SuperName+" of "+c.Name)
		}
		super = loaded
	}

	if super.State == class.LINKING {
		return nil, vmerrors.Newf(vmerrors.ClassCircularity, "class circularity: %s and its ancestor %s reference each other", c.Name, super.Name)
	}

	if super.State == class.LOADED {
		if err := l.LinkClass(super, loadSuper); err != nil {
			return nil, err
		}
	}
	return super, nil
}
