package constpool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLongOccupiesTwoSlots(t *testing.T) {
	// {Long, <unused>, Utf8 "x"}: pool.length == 4, entry 2 unused.
	pool := New(4)
	pool.Entries[1] = Entry{Tag: Long, LongValue: 42}
	pool.Entries[2] = Entry{Tag: Unused}
	pool.Entries[3] = Entry{Tag: Utf8, Utf8Value: "x"}

	require.Equal(t, 4, pool.Len())
	assert.Equal(t, Unused, pool.Entries[2].Tag)

	s, err := pool.Utf8At(3)
	require.NoError(t, err)
	assert.Equal(t, "x", s)
}

func TestAtOutOfRange(t *testing.T) {
	pool := New(2)
	pool.Entries[1] = Entry{Tag: Utf8, Utf8Value: "A"}

	_, err := pool.At(0)
	assert.Error(t, err)

	_, err = pool.At(2)
	assert.Error(t, err)
}

func TestExpectWrongTag(t *testing.T) {
	pool := New(2)
	pool.Entries[1] = Entry{Tag: Utf8, Utf8Value: "A"}

	_, err := pool.Expect(1, ClassRef)
	assert.Error(t, err)
}

func TestClassNameResolution(t *testing.T) {
	pool := New(3)
	pool.Entries[1] = Entry{Tag: Utf8, Utf8Value: "A"}
	pool.Entries[2] = Entry{Tag: ClassRef, NameIndex: 1}

	name, err := pool.ClassName(2)
	require.NoError(t, err)
	assert.Equal(t, "A", name)
}

func TestRefInfoResolution(t *testing.T) {
	pool := New(7)
	pool.Entries[1] = Entry{Tag: Utf8, Utf8Value: "A"}
	pool.Entries[2] = Entry{Tag: ClassRef, NameIndex: 1}
	pool.Entries[3] = Entry{Tag: Utf8, Utf8Value: "foo"}
	pool.Entries[4] = Entry{Tag: Utf8, Utf8Value: "()V"}
	pool.Entries[5] = Entry{Tag: NameAndType, NameIndex: 3, DescIndex: 4}
	pool.Entries[6] = Entry{Tag: MethodRef, ClassIndex: 2, NameTypeIndex: 5}

	cls, name, desc, err := pool.RefInfo(6)
	require.NoError(t, err)
	assert.Equal(t, "A", cls)
	assert.Equal(t, "foo", name)
	assert.Equal(t, "()V", desc)
}

func TestValidateCatchesDanglingIndex(t *testing.T) {
	pool := New(3)
	pool.Entries[1] = Entry{Tag: Utf8, Utf8Value: "A"}
	pool.Entries[2] = Entry{Tag: ClassRef, NameIndex: 9} // dangling

	err := pool.Validate()
	assert.Error(t, err)
}

func TestValidateAcceptsWellFormedPool(t *testing.T) {
	pool := New(3)
	pool.Entries[1] = Entry{Tag: Utf8, Utf8Value: "A"}
	pool.Entries[2] = Entry{Tag: ClassRef, NameIndex: 1}

	assert.NoError(t, pool.Validate())
}
