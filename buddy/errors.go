package buddy

import "errors"

// Sentinel errors returned by Pool operations. Contract violations on
// Release (foreign pointers, double free) are not represented here:
// those are undefined behavior, not an error kind. Allocate does check
// for a zero size and for a destroyed pool, and reports them as
// ErrInvalidSize and ErrPoolClosed.
var (
	// ErrOutOfMemory is returned by Allocate when no free list from the
	// requested order up to the pool's top order holds a block. Pool
	// state is unchanged.
	ErrOutOfMemory = errors.New("buddy: out of memory")

	// ErrInvalidSize is returned by Allocate when n is zero, and by
	// NewPool/NewPoolWithOrders when the computed order bounds are
	// inconsistent (minOrder >= maxOrder).
	ErrInvalidSize = errors.New("buddy: invalid size")

	// ErrPoolClosed is returned by Allocate when called on a pool that
	// has already been destroyed.
	ErrPoolClosed = errors.New("buddy: pool is closed")
)
