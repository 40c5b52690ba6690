package buddy

// Free-list directory primitives. Every operation here is O(1); none of
// them ever walk a list. The sentinel at head is never unlinked and its
// tag/kval are never interpreted by these operations.

// empty reports whether the list headed by head holds no blocks.
func empty(head *header) bool {
	return head.next == head
}

// insertHead splices b in immediately after head, making it the first
// block a subsequent allocation from this order would take.
func insertHead(head, b *header) {
	b.next = head.next
	b.prev = head
	head.next.prev = b
	head.next = b
}

// unlink removes b from whatever list it currently sits in. b's own
// next/prev are left dangling; callers overwrite them before reuse.
func unlink(b *header) {
	b.prev.next = b.next
	b.next.prev = b.prev
}

// removeHead unlinks and returns the first block in head's list, or nil
// if the list is empty.
func removeHead(head *header) *header {
	if empty(head) {
		return nil
	}
	b := head.next
	unlink(b)
	return b
}
