package fib

import "unsafe"

// buddyOf locates the sibling produced by the same split as blk, and the
// ladder index that sibling's cell would live in were it free and whole.
// A left child's buddy sits immediately after it; a right child's buddy
// sits immediately before it, at the sibling cell three positions back.
func (e *Engine) buddyOf(blk unsafe.Pointer, i int) (unsafe.Pointer, int) {
	if getLR(blk) == sideLeft {
		j := i + 3
		return unsafe.Add(blk, int(getSize(blk))*blockSize), j
	}
	j := i - 3
	buddySize := e.ladder.size(j)
	return unsafe.Add(blk, -int(buddySize)*blockSize), j
}

// coalesce walks upward from the block just inserted at cell i, merging
// with its buddy while that buddy is free and exactly cell-sized. The
// chunk's fake-right sentinel (in_use permanently set) guarantees this
// terminates no later than the chunk boundary.
func (e *Engine) coalesce(i int) {
	blk := e.ladder.headBlock(i)
	if blk == nil {
		return
	}
	buddy, j := e.buddyOf(blk, i)
	for !getInUse(buddy) && j >= 0 && j < e.ladder.length && e.ladder.size(j) == getSize(buddy) {
		e.listDelete(i, blk)
		e.listDelete(j, buddy)

		var left, right unsafe.Pointer
		var newIndex int
		if getLR(blk) == sideLeft {
			left, right = blk, buddy
			newIndex = i + 4
		} else {
			left, right = buddy, blk
			newIndex = i + 1
		}

		newSize := e.ladder.size(newIndex)
		lr := getInh(left)
		inh := getInh(right)
		setLR(left, lr)
		setInh(left, inh)
		setSize(left, newSize)
		setInUse(left, false)

		blk = left
		i = newIndex
		e.listInsert(i, blk)
		buddy, j = e.buddyOf(blk, i)
	}
}
