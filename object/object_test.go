/*
 * Jacobin-lineage JVM core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package object

import (
	"testing"

	"jvmcore/class"
)

func TestNewInstanceDefaultsFields(t *testing.T) {
	entry := &class.ClassEntry{
		Name: "madeUpClass",
		Fields: []class.FieldEntry{
			{Name: "myInt", Descriptor: "I"},
			{Name: "myDouble", Descriptor: "D"},
			{Name: "myRef", Descriptor: "Ljava/lang/String;"},
			{Name: "myStatic", Descriptor: "I", Access: class.FieldStatic},
		},
	}
	cls := NewClass(entry)
	inst := NewInstance(cls)

	if got := inst.Fields["myInt"].Fvalue; got != int64(0) {
		t.Errorf("myInt default = %v, want 0", got)
	}
	if got := inst.Fields["myDouble"].Fvalue; got != float64(0) {
		t.Errorf("myDouble default = %v, want 0.0", got)
	}
	if got := inst.Fields["myRef"].Fvalue; got != nil {
		t.Errorf("myRef default = %v, want nil", got)
	}
	if _, present := inst.Fields["myStatic"]; present {
		t.Errorf("static field myStatic should not be allocated on the instance")
	}
}

func TestHeaderClassPointerNilForClassMetaObject(t *testing.T) {
	cls := NewClass(&class.ClassEntry{Name: "A"})
	if cls.Class != nil {
		t.Errorf("a Class meta-object's own Class pointer must be nil, got %v", cls.Class)
	}
}

func TestInstanceHeaderPointsAtItsClass(t *testing.T) {
	cls := NewClass(&class.ClassEntry{Name: "A"})
	inst := NewInstance(cls)
	if inst.Class != cls {
		t.Errorf("instance header does not point at its class")
	}
}

func TestIdentityHashStableAcrossCalls(t *testing.T) {
	cls := NewClass(&class.ClassEntry{Name: "A"})
	inst := NewInstance(cls)

	h1 := inst.IdentityHash(12345)
	h2 := inst.IdentityHash(99999)
	if h1 != h2 {
		t.Errorf("identity hash changed across calls: %d vs %d", h1, h2)
	}
}
