/*
 * Jacobin-lineage JVM core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package gfunction

import (
	"testing"

	"jvmcore/object"
	"jvmcore/vmstack"

	"github.com/stretchr/testify/require"
)

func TestLookupMissingSignature(t *testing.T) {
	r := New()
	_, ok := r.Lookup("java/lang/Foo.bar()V")
	require.False(t, ok)
}

func TestBootstrapThreadSleepDispatch(t *testing.T) {
	r := New()
	LoadBootstrap(r)

	e, ok := r.Lookup("java/lang/Thread.sleep(J)V")
	require.True(t, ok)
	require.Equal(t, 1, e.ParamSlots)

	_, err := e.Fn([]vmstack.Slot{vmstack.LongSlot(1)})
	require.NoError(t, err)
}

func TestBootstrapObjectHashCodeUsesHeader(t *testing.T) {
	r := New()
	LoadBootstrap(r)
	e, ok := r.Lookup("java/lang/Object.hashCode()I")
	require.True(t, ok)

	inst := &object.Instance{}
	result, err := e.Fn([]vmstack.Slot{vmstack.ReferenceSlot(inst)})
	require.NoError(t, err)
	require.Equal(t, vmstack.TagInt, result.Tag)

	again, err := e.Fn([]vmstack.Slot{vmstack.ReferenceSlot(inst)})
	require.NoError(t, err)
	require.Equal(t, result.Int(), again.Int(), "identity hash must be stable across calls")
}

func TestBootstrapObjectHashCodeRejectsNonReference(t *testing.T) {
	r := New()
	LoadBootstrap(r)
	e, _ := r.Lookup("java/lang/Object.hashCode()I")
	_, err := e.Fn([]vmstack.Slot{vmstack.IntSlot(1)})
	require.Error(t, err)
}
