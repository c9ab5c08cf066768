/*
 * Jacobin-lineage JVM core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package gfunction demonstrates the native-method dispatch boundary this
// core places out of scope ("native-method dispatch" is an external
// collaborator). It does not implement a dispatch engine — that belongs to
// the interpreter — only the registry shape a Go-native method table would
// have: an explicit, non-global Registry so multiple VM instances don't
// share native tables.
package gfunction

import (
	"sync"

	"jvmcore/vmstack"
)

// NativeFunc is the uniform shape every registered native method has: it
// operates on tagged vmstack.Slot arguments and returns an error instead of
// a sentinel error value.
type NativeFunc func(args []vmstack.Slot) (vmstack.Slot, error)

// Entry pairs a native function with the number of operand-stack slots the
// interpreter must pop to build its argument list.
type Entry struct {
	ParamSlots int
	Fn         NativeFunc
}

// Registry maps a fully qualified method signature ("class.name(desc)ret")
// to its native implementation.
type Registry struct {
	mu      sync.RWMutex
	methods map[string]Entry
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{methods: make(map[string]Entry)}
}

// Register adds or replaces the native implementation for a signature.
func (r *Registry) Register(signature string, e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.methods[signature] = e
}

// Lookup returns the native implementation for a signature, if any.
func (r *Registry) Lookup(signature string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.methods[signature]
	return e, ok
}

// LoadBootstrap registers the small set of native methods this core ships
// as a worked example of the dispatch boundary: a registry needs at least
// one entry to demonstrate lookup.
func LoadBootstrap(r *Registry) {
	r.Register("java/lang/Object.hashCode()I", Entry{ParamSlots: 1, Fn: objectHashCode})
	r.Register("java/lang/Thread.sleep(J)V", Entry{ParamSlots: 1, Fn: threadSleep})
	r.Register("java/lang/StringBuilder.isLatin1()Z", Entry{ParamSlots: 1, Fn: stringBuilderIsLatin1})
}
