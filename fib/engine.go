// Package fib implements a dynamic memory sub-allocator over a generalized
// Fibonacci sequence a(n) = a(n-1) + a(n-4): requests are satisfied by
// repeatedly splitting a free block into two unequal buddies whose sizes
// are two ladder terms summing to the parent's, and released blocks are
// recursively coalesced with their buddy when it is free and whole.
//
// The engine draws large chunks from a Host and sub-allocates from them;
// it is single-threaded by design (see SyncEngine for a wrapping concern
// that adds mutual exclusion).
package fib

import "unsafe"

// Engine is a single Fibonacci-buddy heap. The zero value is not usable;
// construct one with NewEngine.
type Engine struct {
	host   Host
	chunks *chunk
	ladder ladder
}

// NewEngine creates an Engine drawing its backing chunks from host. A nil
// host defaults to HeapHost.
func NewEngine(host Host) *Engine {
	if host == nil {
		host = HeapHost{}
	}
	e := &Engine{host: host}
	e.bootstrapLadder()
	return e
}

// bootstrapLadder builds the initial, architecture-seeded ladder terms and
// gives the ladder's own cell array a home in a dedicated engine block.
// That block is consumed whole and never split: splitting it would require
// inserting its leftover half into a free list that does not exist yet,
// since the ladder itself is what's being built. It stays in use until
// ladderExtendByOne relocates the cells and frees it.
func (e *Engine) bootstrapLadder() {
	seed := currentSeed()
	terms := make([]uintptr, seed.initialTerms)
	terms[0] = seed.minSize
	terms[1] = seed.size1
	terms[2] = seed.size2
	terms[3] = seed.size3
	for i := 4; i < len(terms); i++ {
		terms[i] = terms[i-1] + terms[i-4]
	}

	capacityBytes := seed.initialCapacity * int(cellSize)
	needed := blocksForBytes(capacityBytes + headerSize)
	idx := 0
	for terms[idx] < needed {
		idx++
	}

	blk := e.acquireChunk(terms[idx])
	setInUse(blk, true)

	e.ladder = ladder{
		base:     areaOf(blk),
		block:    blk,
		capacity: seed.initialCapacity,
	}
	for i, t := range terms {
		c := e.ladder.cellAt(i)
		c.size = t
		c.head = 0
		e.ladder.length = i + 1
	}
}

// Alloc returns a byte slice of at least x bytes, uninitialized, stable
// until its Free. Non-positive x is treated as 1.
func (e *Engine) Alloc(x int) []byte {
	if x <= 0 {
		x = 1
	}
	n := blocksForBytes(x + headerSize)
	blk := e.allocBlock(n)
	area := areaOf(blk)
	capacity := int(getSize(blk))*blockSize - wordSize
	return unsafe.Slice((*byte)(area), capacity)[:x]
}

// Free returns a region previously returned by Alloc. Double-free and
// foreign slices are undefined behavior: this engine performs no
// defensive validation of the pointer.
func (e *Engine) Free(area []byte) {
	if len(area) == 0 {
		return
	}
	dataPtr := *(*uintptr)(unsafe.Pointer(&area))
	blk := unsafe.Pointer(dataPtr - uintptr(wordSize))
	e.freeBlock(blk)
}

// Finalize releases every chunk held by the engine back to the host. No
// further Alloc/Free is valid until a new Engine is constructed.
func (e *Engine) Finalize() {
	e.ladder = ladder{}
	e.releaseAll()
}

// Available returns the total bytes currently sitting free across every
// ladder cell's list, for use by tests that need to observe leak freedom
// or steady-state memory reuse.
func (e *Engine) Available() int {
	total := 0
	for i := 0; i < e.ladder.length; i++ {
		for b := e.ladder.headBlock(i); b != nil; b = blockNext(b) {
			total += int(getSize(b))*blockSize - wordSize
		}
	}
	return total
}

// allocBlock finds or creates a block covering n blocks and returns it
// marked in-use. It searches the ladder for the smallest cell that is
// both large enough and non-empty; only if none exists does it extend the
// ladder (possibly multiple terms) and draw a fresh chunk, in that order,
// so the fresh chunk's size is always already a ladder term.
func (e *Engine) allocBlock(n uintptr) unsafe.Pointer {
	found := -1
	for k := 0; k < e.ladder.length; k++ {
		if e.ladder.size(k) >= n && e.ladder.headBlock(k) != nil {
			found = k
			break
		}
	}

	var blk unsafe.Pointer
	var i int
	if found >= 0 {
		i = found
		blk = e.listTakeFirst(i)
	} else {
		for e.ladder.size(e.ladder.length-1) < n {
			e.ladderExtendByOne()
		}
		i = 0
		for e.ladder.size(i) < n {
			i++
		}
		blk = e.acquireChunk(e.ladder.size(i))
	}

	i, blk = e.split(i, blk, n)
	setInUse(blk, true)
	return blk
}

// freeBlock returns blk to its cell's free list and coalesces it with its
// buddy while possible.
func (e *Engine) freeBlock(blk unsafe.Pointer) {
	size := getSize(blk)
	i := e.indexForSize(size)
	setInUse(blk, false)
	e.listInsert(i, blk)
	e.coalesce(i)
}

// indexForSize finds the ladder cell whose size exactly matches size.
// Sizes are unique and strictly increasing, so a linear scan from 0
// suffices (mirrored from the original mem_free).
func (e *Engine) indexForSize(size uintptr) int {
	for i := 0; i < e.ladder.length; i++ {
		if e.ladder.size(i) == size {
			return i
		}
	}
	panic("fib: block size not present in ladder")
}
