/*
 * Jacobin-lineage JVM core
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package vmstack

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlotBufferPushPopRoundTrip(t *testing.T) {
	b := newSlotBuffer(4)
	in := IntSlot(42)
	require.NoError(t, b.Push(in))
	out, err := b.Pop()
	require.NoError(t, err)
	require.Equal(t, in, out)
	require.Equal(t, 0, b.Len())
}

func TestSlotBufferPushOverflow(t *testing.T) {
	b := newSlotBuffer(1)
	require.NoError(t, b.Push(IntSlot(1)))
	err := b.Push(IntSlot(2))
	require.Error(t, err)
}

func TestSlotBufferPopUnderflow(t *testing.T) {
	b := newSlotBuffer(1)
	_, err := b.Pop()
	require.Error(t, err)
}

func TestSlotBufferLocalsRandomAccess(t *testing.T) {
	b := newSlotBuffer(4)
	b.Set(2, LongSlot(7))
	require.Equal(t, int64(7), b.Get(2).Long())
}

func TestSlotBufferPoolObtainRecycleRoundTrip(t *testing.T) {
	p := NewSlotBufferPool(2, 8)
	a, err := p.Obtain()
	require.NoError(t, err)
	require.NoError(t, a.Push(IntSlot(1)))

	b, err := p.Obtain()
	require.NoError(t, err)

	_, err = p.Obtain()
	require.Error(t, err, "pool should be exhausted after obtaining both buffers")

	p.Recycle(a)
	p.Recycle(b)

	c, err := p.Obtain()
	require.NoError(t, err)
	require.Equal(t, 0, c.Len(), "recycled buffer must come back empty")
}

func TestSlotBufferPoolLoopLeavesSameFreeSet(t *testing.T) {
	p := NewSlotBufferPool(3, 4)
	for i := 0; i < 50; i++ {
		b, err := p.Obtain()
		require.NoError(t, err)
		p.Recycle(b)
	}
	// after N obtain/recycle cycles, all 3 should still be obtainable.
	got := make([]*SlotBuffer, 0, 3)
	for i := 0; i < 3; i++ {
		b, err := p.Obtain()
		require.NoError(t, err)
		got = append(got, b)
	}
	_, err := p.Obtain()
	require.Error(t, err)
}

func TestRefHandlePoolObtainRecycle(t *testing.T) {
	p := NewRefHandlePool(1)
	h, err := p.Obtain()
	require.NoError(t, err)
	h.Ref = "x"

	_, err = p.Obtain()
	require.Error(t, err)

	p.Recycle(h)
	require.Nil(t, h.Ref)

	h2, err := p.Obtain()
	require.NoError(t, err)
	require.Same(t, h, h2)
}

func TestStackFramePoolRecycleResetsUseAndPC(t *testing.T) {
	buffers := NewSlotBufferPool(4, 8)
	pool, err := NewStackFramePool(2, buffers)
	require.NoError(t, err)

	f, err := pool.Obtain()
	require.NoError(t, err)
	f.PC = 10
	require.NoError(t, f.OperandStack.Push(IntSlot(1)))

	pool.Recycle(f)
	require.False(t, f.use)
	require.Equal(t, -1, f.PC)
	require.Equal(t, 0, f.OperandStack.Len())
}

func TestStackFramePoolExhaustion(t *testing.T) {
	buffers := NewSlotBufferPool(2, 8)
	pool, err := NewStackFramePool(1, buffers)
	require.NoError(t, err)

	_, err = pool.Obtain()
	require.NoError(t, err)
	_, err = pool.Obtain()
	require.Error(t, err)
}

func TestJavaStackPushPopOrder(t *testing.T) {
	s := NewJavaStack(2)
	f1 := &StackFrame{PC: -1}
	f2 := &StackFrame{PC: -1}
	require.NoError(t, s.Push(f1))
	require.NoError(t, s.Push(f2))

	top, err := s.Peek()
	require.NoError(t, err)
	require.Same(t, f2, top)

	popped, err := s.Pop()
	require.NoError(t, err)
	require.Same(t, f2, popped)
	require.Equal(t, 1, s.Len())
}

func TestJavaStackOverflowThenRecovers(t *testing.T) {
	s := NewJavaStack(256)
	for i := 0; i < 256; i++ {
		require.NoError(t, s.Push(&StackFrame{PC: -1}))
	}
	err := s.Push(&StackFrame{PC: -1})
	require.Error(t, err, "the 257th push must fail")

	_, err = s.Pop()
	require.NoError(t, err)
	require.NoError(t, s.Push(&StackFrame{PC: -1}), "after popping one, a push must succeed again")
}

func TestJavaStackPopEmptyIsError(t *testing.T) {
	s := NewJavaStack(4)
	_, err := s.Pop()
	require.Error(t, err)
}
