package fib

import "unsafe"

// cell is one slot of the size ladder: a Fibonacci-sequence term and the
// head of the free list of blocks of exactly that size. head is a raw
// block-pointer bit pattern (0 meaning empty), for the same GC-visibility
// reason documented in freelist.go.
type cell struct {
	size uintptr
	head uintptr
}

var cellSize = unsafe.Sizeof(cell{})

// ladder is the dynamic array of cells. Its backing storage is itself an
// engine block (see Engine.bootstrapLadder and Engine.ladderExtendByOne):
// the array has to be able to describe blocks as large as itself, so it
// cannot be a fixed external object once the workload grows.
type ladder struct {
	base     unsafe.Pointer // first cell, inside block's area
	block    unsafe.Pointer // the block backing base, in use until a relocation frees it
	length   int
	capacity int
}

func (l *ladder) cellAt(i int) *cell {
	return (*cell)(unsafe.Add(l.base, uintptr(i)*cellSize))
}

func (l *ladder) size(i int) uintptr {
	return l.cellAt(i).size
}

func (l *ladder) headBlock(i int) unsafe.Pointer {
	return unsafe.Pointer(l.cellAt(i).head)
}

func (l *ladder) setHead(i int, b unsafe.Pointer) {
	l.cellAt(i).head = uintptr(b)
}

// ladderExtendByOne appends one cell whose size is ladder[-1]+ladder[-4],
// relocating the array through the engine's own alloc/free path if its
// capacity is exhausted. Callers must only call this once the ladder has
// at least 4 populated cells (true from bootstrap onward).
func (e *Engine) ladderExtendByOne() {
	l := &e.ladder
	if l.length == l.capacity {
		newCapacity := l.capacity * 2
		newBytes := newCapacity * int(cellSize)
		newBlock := e.allocBlock(blocksForBytes(newBytes + headerSize))
		newBase := areaOf(newBlock)

		oldBytes := l.length * int(cellSize)
		dst := unsafe.Slice((*byte)(newBase), oldBytes)
		src := unsafe.Slice((*byte)(l.base), oldBytes)
		copy(dst, src)

		oldBlock := l.block
		l.base = newBase
		l.block = newBlock
		l.capacity = newCapacity
		e.freeBlock(oldBlock)
	}

	last := l.cellAt(l.length - 1)
	priorThird := l.cellAt(l.length - 4)
	next := l.cellAt(l.length)
	next.size = last.size + priorThird.size
	next.head = 0
	l.length++
}
