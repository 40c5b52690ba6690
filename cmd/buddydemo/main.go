// Command buddydemo drives a single buddy.Pool through a short sequence
// of allocations and frees and prints the free-list shape after each
// successful allocation and once after everything is freed. It exists to exercise the package end to end; it is not part of
// the allocator's contract.
package main

import (
	"flag"
	"log"
	"math/rand"
	"unsafe"

	"github.com/alewtschuk/buddyalloc/buddy"
)

func main() {
	poolSize := flag.Uint64("size", 1<<20, "backing region size in bytes (rounded up to a power of two)")
	requests := flag.Int("requests", 32, "number of allocations to make before freeing them all")
	maxAlloc := flag.Uint64("max-alloc", 4096, "largest single allocation size in bytes")
	seed := flag.Int64("seed", 1, "PRNG seed for request sizes")
	flag.Parse()

	p, err := buddy.NewPool(uintptr(*poolSize))
	if err != nil {
		log.Fatalf("buddydemo: could not create pool: %v", err)
	}
	defer func() {
		if err := p.Destroy(); err != nil {
			log.Fatalf("buddydemo: could not destroy pool: %v", err)
		}
	}()

	log.Printf("pool ready: %s", p)

	rng := rand.New(rand.NewSource(*seed))
	live := make([]unsafe.Pointer, 0, *requests)

	for i := 0; i < *requests; i++ {
		size := uintptr(rng.Uint64()%*maxAlloc + 1)
		ptr, err := p.Allocate(size)
		if err != nil {
			log.Printf("request %d: allocate(%d) failed: %v", i, size, err)
			continue
		}
		live = append(live, ptr)
		log.Printf("request %d: allocated %d bytes; %s", i, size, p)
	}

	// Free everything in reverse so the demo ends on a fully coalesced
	// pool, matching the invariant the test suite checks: after
	// releasing every outstanding pointer, exactly one block remains at
	// the pool's top order.
	for i := len(live) - 1; i >= 0; i-- {
		p.Release(live[i])
	}
	log.Printf("after releasing everything: %s", p)
}
