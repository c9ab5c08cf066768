/*
 * Jacobin-lineage JVM core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package linker

import "jvmcore/class"

// FindField scans this class's own fields, then walks super, then walks
// interfaces breadth-first, returning the first exact (name, descriptor)
// match.
func FindField(cls *class.ClassEntry, name, descriptor string) *class.FieldEntry {
	for c := cls; c != nil; c = c.Super {
		if f := c.FindFieldDirect(name, descriptor); f != nil {
			return f
		}
	}
	// breadth-first walk of the interface graph, starting from the
	// original class's own declared interfaces.
	queue := append([]*class.ClassEntry{}, cls.InterfaceClasses...)
	seen := make(map[*class.ClassEntry]bool)
	for len(queue) > 0 {
		iface := queue[0]
		queue = queue[1:]
		if iface == nil || seen[iface] {
			continue
		}
		seen[iface] = true
		if f := iface.FindFieldDirect(name, descriptor); f != nil {
			return f
		}
		queue = append(queue, iface.InterfaceClasses...)
	}
	return nil
}

// FindMethod scans this class's own methods, then walks super only;
// interfaces are not searched (LookupVirtualMethod also walks only the
// super chain).
func FindMethod(cls *class.ClassEntry, name, descriptor string) *class.MethodEntry {
	for c := cls; c != nil; c = c.Super {
		if m := c.FindMethodDirect(name, descriptor); m != nil {
			return m
		}
	}
	return nil
}

// LookupVirtualMethod implements dynamic dispatch: starting at
// the receiver's concrete class, walk up the super chain and return the
// first non-private, non-static match — the method invokevirtual and
// invokeinterface use to resolve the actual method to run.
func LookupVirtualMethod(receiverClass *class.ClassEntry, name, descriptor string) *class.MethodEntry {
	for c := receiverClass; c != nil; c = c.Super {
		m := c.FindMethodDirect(name, descriptor)
		if m == nil {
			continue
		}
		if m.Access.Has(class.MethodPrivate) || m.Access.Has(class.MethodStatic) {
			continue
		}
		return m
	}
	return nil
}
