/*
 * Jacobin-lineage JVM core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package linker

import (
	"jvmcore/class"
	"jvmcore/constpool"
	"jvmcore/vmerrors"
	"jvmcore/vmlog"
)

// ResolveClass transitions a class LINKED -> RESOLVING -> RESOLVED by
// walking its constant pool and resolving every Class/Fieldref/Methodref/
// InterfaceMethodref entry to a direct pointer. Resolution is idempotent:
// entries already resolved (Pool.Resolved[i] != nil) are skipped, so
// ResolveClass(c) called twice is a no-op the second time. Each declared
// interface is recorded in c.InterfaceClasses once the pool walk is done.
func (l *Linker) ResolveClass(c *class.ClassEntry, loadSuper func(name string) (*class.ClassEntry, error)) error {
	if c.State.AtLeast(class.RESOLVED) {
		return nil
	}
	if c.State != class.LINKED && c.State != class.RESOLVING {
		return vmerrors.Newf(vmerrors.LinkageError, "cannot resolve class %s from state %s", c.Name, c.State)
	}
	if c.State == class.LINKED {
		c.State.AdvanceTo(class.RESOLVING)
	}

	pool := c.Pool
	for i := 1; i < pool.Len(); i++ {
		if pool.Resolved[i] != nil {
			continue
		}
		idx := uint16(i)
		tag := pool.Entries[i].Tag
		var resolved interface{}
		var err error
		switch tag {
		case constpool.ClassRef:
			resolved, err = l.resolveClassRef(c, pool, idx, loadSuper)
		case constpool.FieldRef:
			resolved, err = l.resolveFieldRef(c, pool, idx, loadSuper)
		case constpool.MethodRef:
			resolved, err = l.resolveMethodRef(c, pool, idx, loadSuper)
		case constpool.InterfaceMethodRef:
			resolved, err = l.resolveInterfaceMethodRef(c, pool, idx, loadSuper)
		default:
			continue
		}
		if err != nil {
			return err
		}
		pool.Resolved[i] = resolved
	}

	if len(c.InterfaceClasses) != len(c.InterfaceNames) {
		c.InterfaceClasses = make([]*class.ClassEntry, len(c.InterfaceNames))
	}
	for i, name := range c.InterfaceNames {
		iface, err := l.resolveTargetClass(name, loadSuper)
		if err != nil {
			return err
		}
		c.InterfaceClasses[i] = iface
	}

	if c.State == class.RESOLVING {
		c.State.AdvanceTo(class.RESOLVED)
	}
	vmlog.Trace("resolved class", "class", c.Name)
	return nil
}

func (l *Linker) resolveClassRef(c *class.ClassEntry, pool *constpool.Pool, idx uint16, loadSuper func(name string) (*class.ClassEntry, error)) (*class.ClassEntry, error) {
	name, err := pool.ClassName(idx)
	if err != nil {
		return nil, err
	}
	return l.resolveTargetClass(name, loadSuper)
}

func (l *Linker) resolveFieldRef(c *class.ClassEntry, pool *constpool.Pool, idx uint16, loadSuper func(name string) (*class.ClassEntry, error)) (*class.FieldEntry, error) {
	className, name, desc, err := pool.RefInfo(idx)
	if err != nil {
		return nil, err
	}
	target, err := l.resolveTargetClass(className, loadSuper)
	if err != nil {
		return nil, err
	}
	field := FindField(target, name, desc)
	if field == nil {
		return nil, vmerrors.Newf(vmerrors.NoSuchField, "no such field %s.%s:%s", className, name, desc)
	}
	return field, nil
}

func (l *Linker) resolveMethodRef(c *class.ClassEntry, pool *constpool.Pool, idx uint16, loadSuper func(name string) (*class.ClassEntry, error)) (*class.MethodEntry, error) {
	className, name, desc, err := pool.RefInfo(idx)
	if err != nil {
		return nil, err
	}
	target, err := l.resolveTargetClass(className, loadSuper)
	if err != nil {
		return nil, err
	}
	if target.Access.Has(class.ClassInterface) {
		return nil, vmerrors.Newf(vmerrors.IncompatibleClassChange, "methodref %s.%s:%s resolved to an interface, expected a class", className, name, desc)
	}
	method := FindMethod(target, name, desc)
	if method == nil {
		return nil, vmerrors.Newf(vmerrors.NoSuchMethod, "no such method %s.%s:%s", className, name, desc)
	}
	return method, nil
}

func (l *Linker) resolveInterfaceMethodRef(c *class.ClassEntry, pool *constpool.Pool, idx uint16, loadSuper func(name string) (*class.ClassEntry, error)) (*class.MethodEntry, error) {
	className, name, desc, err := pool.RefInfo(idx)
	if err != nil {
		return nil, err
	}
	target, err := l.resolveTargetClass(className, loadSuper)
	if err != nil {
		return nil, err
	}
	if !target.Access.Has(class.ClassInterface) {
		return nil, vmerrors.Newf(vmerrors.IncompatibleClassChange, "interface methodref %s.%s:%s resolved to a class, expected an interface", className, name, desc)
	}
	method := FindMethod(target, name, desc)
	if method == nil {
		return nil, vmerrors.Newf(vmerrors.NoSuchMethod, "no such interface method %s.%s:%s", className, name, desc)
	}
	return method, nil
}

// resolveTargetClass returns a class at least LINKED, loading and linking
// it first if necessary, the shared step every Class/Fieldref/Methodref
// resolution depends on.
func (l *Linker) resolveTargetClass(name string, loadSuper func(name string) (*class.ClassEntry, error)) (*class.ClassEntry, error) {
	target := l.Store.Lookup(name)
	if target == nil {
		loaded, err := loadSuper(name)
		if err != nil {
			return nil, vmerrors.Wrap(vmerrors.NoSuchClass, err, "loading "+name)
		}
		target = loaded
	}
	if target.State == class.LOADED {
		if err := l.LinkClass(target, loadSuper); err != nil {
			return nil, err
		}
	}
	return target, nil
}
