package fib

import "unsafe"

// While a block is free, the first two machine words of its area hold the
// prev/next pointers of its cell's doubly-linked list. Both are stored as
// raw uintptr bit patterns rather than unsafe.Pointer fields: the memory
// backing a block is a plain []byte from the host, which the Go runtime's
// allocator records as pointer-free, so the garbage collector's scanner
// never looks inside it. Writing a live unsafe.Pointer there would be
// invisible to the GC; encoding addresses as integers and converting with
// unsafe.Pointer(uintptr(x)) only at the point of use avoids that hazard.

func blockPrev(b unsafe.Pointer) unsafe.Pointer {
	return unsafe.Pointer(*(*uintptr)(areaOf(b)))
}

func setBlockPrev(b, prev unsafe.Pointer) {
	*(*uintptr)(areaOf(b)) = uintptr(prev)
}

func blockNext(b unsafe.Pointer) unsafe.Pointer {
	return unsafe.Pointer(*(*uintptr)(unsafe.Add(areaOf(b), wordSize)))
}

func setBlockNext(b, next unsafe.Pointer) {
	*(*uintptr)(unsafe.Add(areaOf(b), wordSize)) = uintptr(next)
}

// listInsert pushes b at the head of cell i's free list. It does not touch
// b's in_use flag; callers decide that before inserting.
func (e *Engine) listInsert(i int, b unsafe.Pointer) {
	head := e.ladder.headBlock(i)
	setBlockNext(b, head)
	if head != nil {
		setBlockPrev(head, b)
	}
	setBlockPrev(b, nil)
	e.ladder.setHead(i, b)
}

// listTakeFirst detaches and returns the head of cell i's free list, or
// nil if the list is empty.
func (e *Engine) listTakeFirst(i int) unsafe.Pointer {
	b := e.ladder.headBlock(i)
	if b == nil {
		return nil
	}
	next := blockNext(b)
	if next != nil {
		setBlockPrev(next, nil)
	}
	e.ladder.setHead(i, next)
	return b
}

// listDelete removes b from cell i's free list by identity. Cell lists
// stay short in steady state because coalescing drains them, so a linear
// scan is cheap; unlinking b directly through its own prev/next links
// would make this O(1) if profiling ever showed otherwise.
func (e *Engine) listDelete(i int, b unsafe.Pointer) {
	cur := e.ladder.headBlock(i)
	for cur != nil && cur != b {
		cur = blockNext(cur)
	}
	if cur == nil {
		return
	}
	prev := blockPrev(cur)
	next := blockNext(cur)
	if prev != nil {
		setBlockNext(prev, next)
	}
	if next != nil {
		setBlockPrev(next, prev)
	}
	if cur == e.ladder.headBlock(i) {
		e.ladder.setHead(i, next)
	}
}
