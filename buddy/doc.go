// Package buddy implements a binary buddy memory allocator over a single
// mmap'd region of anonymous memory (Knuth's Algorithm R for allocation,
// Algorithm S for release).
//
// A Pool owns one contiguous region of size 2^m bytes. Free blocks are
// tracked by an array of per-order sentinel-headed doubly linked
// circular lists; allocation finds the smallest sufficient order and
// splits down, release coalesces a freed block with its buddy for as
// long as the buddy is free and of equal order.
//
// A Pool is not safe for concurrent use. Every exported method must be
// externally serialized by the caller; the package performs no locking
// of its own.
package buddy
