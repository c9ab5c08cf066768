/*
 * Jacobin-lineage JVM core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package gfunction

import (
	"time"

	"jvmcore/object"
	"jvmcore/vmerrors"
	"jvmcore/vmstack"
)

// threadSleep implements "java/lang/Thread.sleep(J)V": guards against a
// non-long argument, then sleeps for the given number of milliseconds.
func threadSleep(args []vmstack.Slot) (vmstack.Slot, error) {
	if len(args) != 1 || args[0].Tag != vmstack.TagLong {
		return vmstack.Slot{}, vmerrors.New(vmerrors.LinkageError, "Thread.sleep: argument must be a long")
	}
	time.Sleep(time.Duration(args[0].Long()) * time.Millisecond)
	return vmstack.Slot{}, nil
}

// stringBuilderIsLatin1 implements "java/lang/StringBuilder.isLatin1()Z".
// This core has no String/StringBuilder runtime of its own, so the native
// always reports Latin1.
// TODO: discern StringLatin1 from StringUTF16 once a String runtime exists.
func stringBuilderIsLatin1(_ []vmstack.Slot) (vmstack.Slot, error) {
	return vmstack.IntSlot(1), nil
}

// objectHashCode implements "java/lang/Object.hashCode()I" by reading the
// identity hash out of the receiver's uniform object header.
func objectHashCode(args []vmstack.Slot) (vmstack.Slot, error) {
	if len(args) != 1 || args[0].Tag != vmstack.TagReference {
		return vmstack.Slot{}, vmerrors.New(vmerrors.LinkageError, "Object.hashCode: receiver must be a reference")
	}
	switch recv := args[0].Ref.(type) {
	case *object.Instance:
		return vmstack.IntSlot(int32(recv.IdentityHash(uint64(time.Now().UnixNano())))), nil
	case *object.Class:
		return vmstack.IntSlot(int32(recv.IdentityHash(uint64(time.Now().UnixNano())))), nil
	default:
		return vmstack.Slot{}, vmerrors.New(vmerrors.LinkageError, "Object.hashCode: receiver has no object header")
	}
}
