package buddy

import "unsafe"

// Release reabsorbs a block previously returned by Allocate on this
// pool, coalescing it with its buddy for as long as the buddy is a
// same-order available block, then inserting the (possibly merged)
// block at the head of its order's free list.
//
// Behavior is undefined for a pointer not previously returned by
// Allocate on this pool, for a pointer already released, or for a
// closed pool — these are contract violations (undefined behavior),
// not in the recoverable-error taxonomy, so Release does not defend
// against them.
func (p *Pool) Release(ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}

	block := (*header)(unsafe.Add(ptr, -int(headerSize)))
	k := uint(block.kval)
	offset := p.offsetOf(block)

	for k < p.order {
		buddyOffset := offset ^ (uintptr(1) << k)
		buddy := p.headerAt(buddyOffset)
		if buddy.tag != tagAvailable || uint(buddy.kval) != k {
			break
		}

		unlink(buddy)
		if buddyOffset < offset {
			offset = buddyOffset
		}
		k++
	}

	merged := p.headerAt(offset)
	merged.tag = tagAvailable
	merged.kval = uint8(k)
	insertHead(&p.avail[k], merged)
}
