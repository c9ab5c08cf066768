/*
 * Jacobin-lineage JVM core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package jvm holds the one piece of "consumer" logic this core keeps next
// to the loader, linker, and method area: instantiating a class. It exists
// to exercise class/object/loader/linker/methodarea together the way a real
// interpreter's NEW bytecode handler would, without pulling in the
// interpreter loop itself — the interpreter consumes the frames described
// here but lives outside this core.
package jvm

import (
	"jvmcore/class"
	"jvmcore/linker"
	"jvmcore/loader"
	"jvmcore/methodarea"
	"jvmcore/object"
	"jvmcore/vmconfig"
	"jvmcore/vmerrors"
	"jvmcore/vmstack"
)

// VM bundles the method area, loader, and linker needed to instantiate
// classes into one explicit, non-global value so multiple VM instances in
// the same process don't share state. It also owns the execution-stack
// pools sized by Config, so a future interpreter loop has somewhere to
// obtain StackFrames from instead of allocating its own.
type VM struct {
	Store  *methodarea.Store
	Loader *loader.Loader
	Linker *linker.Linker
	Config *vmconfig.Config

	SlotBuffers *vmstack.SlotBufferPool
	StackFrames *vmstack.StackFramePool
	RefHandles  *vmstack.RefHandlePool
	Stack       *vmstack.JavaStack
}

// NewWithConfig builds a VM with a fresh method area, a bootstrap loader
// over it, a linker over the same store, and the three execution-stack
// pools plus the per-thread JavaStack sized by cfg.
func NewWithConfig(cfg *vmconfig.Config) (*VM, error) {
	store := methodarea.New()
	slotBuffers := vmstack.NewSlotBufferPool(cfg.SlotBufferPoolCapacity, cfg.MaxStackDepth)
	stackFrames, err := vmstack.NewStackFramePool(cfg.StackFramePoolCapacity, slotBuffers)
	if err != nil {
		return nil, err
	}
	return &VM{
		Store:       store,
		Loader:      loader.New("bootstrap", store),
		Linker:      linker.New(store),
		Config:      cfg,
		SlotBuffers: slotBuffers,
		StackFrames: stackFrames,
		RefHandles:  vmstack.NewRefHandlePool(cfg.RefHandlePoolCapacity),
		Stack:       vmstack.NewJavaStack(cfg.MaxStackDepth),
	}, nil
}

// New builds a VM from vmconfig.Default(). Default's capacities are
// internally consistent (StackFramePoolCapacity*2 comfortably under
// SlotBufferPoolCapacity), so construction cannot fail.
func New() *VM {
	vm, err := NewWithConfig(vmconfig.Default())
	if err != nil {
		panic(err)
	}
	return vm
}

// loadSuper is the func(name) (*class.ClassEntry, error) contract the
// linker needs to pull in a super/interface class on demand, implemented
// here by asking the bootstrap loader's underlying store, then falling back
// to loading name + ".class" as a file path (relative to the current
// working directory; the loader has no search path).
func (vm *VM) loadSuper(name string) (*class.ClassEntry, error) {
	if existing := vm.Store.Lookup(name); existing != nil {
		return existing, nil
	}
	return vm.Loader.LoadClassFromFile(name)
}

// InstantiateClass implements the "instantiate a class" flow: the class is
// loaded if it isn't already (cycle-safe via methodarea.LoadOnce), linked if
// it isn't already linked, resolved, and then an Instance is allocated with
// its declared instance fields defaulted to zero values (object.NewInstance
// does that last step). source is either a canonical name already present
// in the method area, or a .class file path to load — this core has no
// classpath/search-path concept, so a path is the only way to name a class
// not yet loaded.
func (vm *VM) InstantiateClass(source string) (*object.Instance, error) {
	entry := vm.Store.Lookup(source)
	if entry == nil {
		loaded, err := vm.Loader.LoadClassFromFile(source)
		if err != nil {
			return nil, vmerrors.Wrap(vmerrors.NoSuchClass, err, "loading class "+source)
		}
		entry = loaded
	}

	if entry.State == class.LOADED {
		if err := vm.Linker.LinkClass(entry, vm.loadSuper); err != nil {
			return nil, err
		}
	}

	if entry.State == class.LINKED {
		if err := vm.Linker.ResolveClass(entry, vm.loadSuper); err != nil {
			return nil, err
		}
	}

	cls := object.NewClass(entry)
	return object.NewInstance(cls), nil
}
