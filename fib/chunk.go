package fib

import "unsafe"

// chunk is one raw region drawn from the Host. The engine chains chunks
// on an ordinary Go linked list, rather than a pointer written into the
// raw arena bytes, so the garbage collector keeps every chunk's backing
// array reachable for the Engine's lifetime.
type chunk struct {
	mem  []byte
	next *chunk
}

// acquireChunk asks the host for a region sized to hold one n-block
// Fibonacci term, formats it as {reserved link word | block | fake right
// sentinel}, registers it on the chunk list, and returns the block.
func (e *Engine) acquireChunk(n uintptr) unsafe.Pointer {
	total := int(n)*blockSize + 2*wordSize
	mem := e.host.Acquire(total)
	if len(mem) < total {
		panic("fib: host allocator returned an undersized region")
	}

	e.chunks = &chunk{mem: mem, next: e.chunks}

	base := unsafe.Pointer(&mem[0])
	blk := unsafe.Add(base, wordSize)
	fakeRight := unsafe.Add(blk, int(n)*blockSize)

	setSize(fakeRight, 0)
	setLR(fakeRight, sideRight)
	setInUse(fakeRight, true)
	setInh(fakeRight, sideLeft)

	setSize(blk, n)
	setLR(blk, sideLeft)
	setInUse(blk, false)
	setInh(blk, sideLeft)

	return blk
}

// releaseAll returns every chunk to the host and drops the chunk list.
func (e *Engine) releaseAll() {
	for c := e.chunks; c != nil; {
		next := c.next
		e.host.Release(c.mem)
		c = next
	}
	e.chunks = nil
}
