package fib

import "unsafe"

// blockSize is the unit of account for every cell and header size field,
// fixed across architectures per the layout this package targets.
const blockSize = 8

// wordSize is the width of a machine word: the block header, and the
// header reserved at the front of every chunk, are exactly one word.
var wordSize = int(unsafe.Sizeof(uintptr(0)))

// headerSize is the per-block header cost charged against every alloc request.
var headerSize = wordSize

// archSeed holds the architecture-dependent constants from the external
// interfaces table: the first four ladder terms and the ladder's starting
// shape. There is no 16-bit GOARCH, so only the 64-bit and 32-bit rows
// are represented.
type archSeed struct {
	minSize, size1, size2, size3 uintptr
	initialTerms                 int
	initialCapacity              int
}

var seed64 = archSeed{minSize: 3, size1: 4, size2: 5, size3: 7, initialTerms: 11, initialCapacity: 16}
var seed32 = archSeed{minSize: 2, size1: 3, size2: 4, size3: 5, initialTerms: 10, initialCapacity: 16}

func currentSeed() archSeed {
	if wordSize >= 8 {
		return seed64
	}
	return seed32
}

// blocksForBytes rounds a byte count up to whole blocks, as BLOCKS(n) does
// in the original source.
func blocksForBytes(n int) uintptr {
	if n <= 0 {
		return 0
	}
	return uintptr((n + blockSize - 1) / blockSize)
}
