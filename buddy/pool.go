package buddy

import (
	"fmt"
	"math/bits"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Order bounds, fixed at compile time.
const (
	// MinOrder is the smallest representable order. 2^MinOrder must be
	// large enough to hold a header plus at least one payload byte.
	MinOrder uint = 6

	// MaxOrder is one larger than the largest usable order: the avail
	// array holds MaxOrder sentinels, indexed 0..MaxOrder-1, and the
	// usable pool order is capped at MaxOrder-1.
	MaxOrder uint = 48

	// DefaultOrder is the order used when a pool is created with size 0.
	DefaultOrder uint = 30
)

// tag identifies the role of a block header.
type tag uint8

const (
	tagUnused    tag = iota // sentinel slots only; never interpreted algorithmically
	tagAvailable            // block sits on avail[kval]'s free list
	tagReserved             // block has been handed to a caller
)

// header sits at the first bytes of every block, both free and
// allocated, and doubles as the sentinel node for its order's free
// list. In a block, next/prev are meaningful only while tag ==
// tagAvailable; for a tagReserved block they are stale and never
// consulted. A sentinel (tagUnused) always has live next/prev.
type header struct {
	tag  tag
	kval uint8
	next *header
	prev *header
}

const headerSize = unsafe.Sizeof(header{})

// Pool manages one contiguous backing region of 2^m bytes.
//
// A Pool is not safe for concurrent use; see the package doc.
type Pool struct {
	order    uint             // m: the region's order, size is 2^order bytes
	minOrder uint             // floor for allocate()'s requested order and for init's region sizing
	maxOrder uint             // ceiling (exclusive) for the region's order
	base     uintptr          // address of the first byte of the backing region
	region   []byte           // retained so Destroy can hand the exact slice back to Munmap
	avail    [MaxOrder]header // sentinel list heads, one per order in [0, MaxOrder)
	closed   bool
}

// orderOf returns the smallest k such that 2^k >= n. The caller must
// never pass n == 0; the result is undefined for n == 0.
func orderOf(n uintptr) uint {
	return uint(bits.Len(uint(n - 1)))
}

// NewPool creates a pool managing a backing region of size bytes,
// rounded up to the nearest power of two and clamped to
// [MinOrder, MaxOrder-1]. size == 0 selects DefaultOrder.
func NewPool(size uintptr) (*Pool, error) {
	return NewPoolWithOrders(size, MinOrder, MaxOrder, DefaultOrder)
}

// NewPoolWithOrders is NewPool with explicit override of the order
// bounds otherwise fixed at MinOrder/MaxOrder/DefaultOrder. minOrder and
// maxOrder are further clamped into [MinOrder, MaxOrder] so that the
// fixed-size avail array is never indexed out of bounds.
func NewPoolWithOrders(size uintptr, minOrder, maxOrder, defaultOrder uint) (*Pool, error) {
	if minOrder < MinOrder {
		minOrder = MinOrder
	}
	if maxOrder > MaxOrder {
		maxOrder = MaxOrder
	}
	if minOrder >= maxOrder {
		return nil, fmt.Errorf("%w: minOrder %d must be < maxOrder %d", ErrInvalidSize, minOrder, maxOrder)
	}
	if defaultOrder < minOrder || defaultOrder >= maxOrder {
		defaultOrder = maxOrder - 1
	}

	var order uint
	if size == 0 {
		order = defaultOrder
	} else {
		order = orderOf(size)
	}
	if order < minOrder {
		order = minOrder
	}
	if order > maxOrder-1 {
		order = maxOrder - 1
	}

	p := &Pool{
		order:    order,
		minOrder: minOrder,
		maxOrder: maxOrder,
	}

	numBytes := uintptr(1) << order
	region, err := unix.Mmap(-1, 0, int(numBytes), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, fmt.Errorf("buddy: mmap backing region: %w", err)
	}
	p.region = region
	p.base = uintptr(unsafe.Pointer(&region[0]))

	for i := range p.avail {
		p.avail[i].next = &p.avail[i]
		p.avail[i].prev = &p.avail[i]
		p.avail[i].kval = uint8(i)
		p.avail[i].tag = tagUnused
	}

	first := p.headerAt(0)
	first.tag = tagAvailable
	first.kval = uint8(order)
	insertHead(&p.avail[order], first)

	return p, nil
}

// Destroy releases the backing region back to the host and zeroes the
// pool record. Calling Destroy again on a destroyed Pool returns nil,
// and Allocate on it returns ErrPoolClosed; Release, FreeListSummary
// and String do not check for a destroyed Pool.
func (p *Pool) Destroy() error {
	if p.closed {
		return nil
	}
	if err := unix.Munmap(p.region); err != nil {
		return fmt.Errorf("buddy: munmap backing region: %w", err)
	}
	*p = Pool{closed: true}
	return nil
}

// headerAt views the bytes at the given offset from base as a block
// header. This is the single primitive through which the backing
// region's raw bytes are reinterpreted as a header, free or reserved.
func (p *Pool) headerAt(offset uintptr) *header {
	return (*header)(unsafe.Pointer(p.base + offset))
}

// offsetOf returns a header's distance from the pool's base address.
func (p *Pool) offsetOf(h *header) uintptr {
	return uintptr(unsafe.Pointer(h)) - p.base
}

// buddyOf returns the buddy of a block at the given offset and order:
// the unique same-order block it would merge with, found by flipping
// the single bit at position k of the offset (Knuth's XOR trick).
func (p *Pool) buddyOf(offset uintptr, k uint) *header {
	return p.headerAt(offset ^ (uintptr(1) << k))
}
