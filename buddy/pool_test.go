package buddy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkPoolFull asserts a pool is in its just-initialized state: every
// order below the top is an empty sentinel, and the top order holds
// exactly one available block at the pool's base.
func checkPoolFull(t *testing.T, p *Pool) {
	t.Helper()
	for i := uint(0); i < p.order; i++ {
		head := &p.avail[i]
		assert.Same(t, head, head.next, "avail[%d].next is not the sentinel", i)
		assert.Same(t, head, head.prev, "avail[%d].prev is not the sentinel", i)
		assert.Equal(t, tagUnused, head.tag, "avail[%d] tag", i)
		assert.Equal(t, uint8(i), head.kval, "avail[%d] kval", i)
	}

	top := &p.avail[p.order]
	require.Equal(t, tagAvailable, top.next.tag)
	assert.Same(t, top, top.next.next)
	assert.Same(t, top, top.prev.prev)
	assert.Same(t, top.next, p.headerAt(0))
}

// checkPoolEmpty asserts every order, including the top, is an empty
// sentinel — the state while a single exact-fit allocation holds the
// whole region.
func checkPoolEmpty(t *testing.T, p *Pool) {
	t.Helper()
	for i := uint(0); i <= p.order; i++ {
		head := &p.avail[i]
		assert.Same(t, head, head.next, "avail[%d].next is not the sentinel", i)
		assert.Same(t, head, head.prev, "avail[%d].prev is not the sentinel", i)
	}
}

func TestNewPool_everyOrder(t *testing.T) {
	for order := MinOrder; order <= DefaultOrder; order++ {
		size := uintptr(1) << order
		p, err := NewPool(size)
		require.NoError(t, err)
		checkPoolFull(t, p)
		require.NoError(t, p.Destroy())
	}
}

func TestNewPool_zeroSizeUsesDefault(t *testing.T) {
	p, err := NewPool(0)
	require.NoError(t, err)
	defer p.Destroy()

	assert.Equal(t, DefaultOrder, p.order)
}

func TestNewPool_clampsBelowMin(t *testing.T) {
	p, err := NewPool(1)
	require.NoError(t, err)
	defer p.Destroy()

	assert.Equal(t, MinOrder, p.order)
}

func TestNewPoolWithOrders_invalidBounds(t *testing.T) {
	_, err := NewPoolWithOrders(1<<20, 10, 10, 10)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestDestroy_isIdempotent(t *testing.T) {
	p, err := NewPool(1 << MinOrder)
	require.NoError(t, err)
	require.NoError(t, p.Destroy())
	require.NoError(t, p.Destroy())
}

func TestBuddyOf_involution(t *testing.T) {
	p, err := NewPool(1 << 12)
	require.NoError(t, err)
	defer p.Destroy()

	for k := uint(0); k < p.order; k++ {
		for _, offset := range []uintptr{0, uintptr(1) << k} {
			b := p.buddyOf(offset, k)
			bb := p.buddyOf(p.offsetOf(b), k)
			assert.Equal(t, offset, p.offsetOf(bb), "buddy(buddy(L)) != L at order %d", k)
		}
	}
}

func TestOrderOf(t *testing.T) {
	cases := []struct {
		n    uintptr
		want uint
	}{
		{1, 0},
		{2, 1},
		{3, 2},
		{4, 2},
		{5, 3},
		{1024, 10},
		{1025, 11},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, orderOf(c.n), "orderOf(%d)", c.n)
	}
}
