package fib

import "unsafe"

// split carves a block at ladder index i into left/right Fibonacci buddies
// while the right child would still cover n blocks and further splitting
// is still defined (i > 4), enqueuing the unused side each time. It
// returns the final ladder index and block that together cover n.
func (e *Engine) split(i int, blk unsafe.Pointer, n uintptr) (int, unsafe.Pointer) {
	l := &e.ladder
	for i > 4 && l.size(i-1) >= n {
		szl := l.size(i - 4)
		szr := l.size(i - 1)
		curLR := getLR(blk)
		curInh := getInh(blk)

		left := blk
		right := unsafe.Add(blk, int(szl)*blockSize)

		setSize(left, szl)
		setLR(left, sideLeft)
		setInUse(left, false)
		setInh(left, curLR)

		setSize(right, szr)
		setLR(right, sideRight)
		setInUse(right, false)
		setInh(right, curInh)

		if szl >= n {
			e.listInsert(i-1, right)
			i -= 4
			blk = left
		} else {
			e.listInsert(i-4, left)
			i--
			blk = right
		}
	}
	return i, blk
}
