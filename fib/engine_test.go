package fib

import (
	"math/rand"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func overlap(a, b []byte) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	aStart := uintptr(unsafe.Pointer(&a[0]))
	aEnd := aStart + uintptr(len(a))
	bStart := uintptr(unsafe.Pointer(&b[0]))
	bEnd := bStart + uintptr(len(b))
	return !(aEnd <= bStart || bEnd <= aStart)
}

func TestAllocReturnsRequestedLength(t *testing.T) {
	e := NewEngine(nil)
	for _, x := range []int{1, 100, 1024, 8192, 65536} {
		b := e.Alloc(x)
		require.Len(t, b, x, "x=%d", x)
	}
}

func TestAllocZeroAndNegativeTreatedAsOne(t *testing.T) {
	e := NewEngine(nil)
	assert.Len(t, e.Alloc(0), 1)
	assert.Len(t, e.Alloc(-5), 1)
}

func TestAllocNoOverlap(t *testing.T) {
	e := NewEngine(nil)
	a := e.Alloc(100)
	b := e.Alloc(40)
	c := e.Alloc(4000)
	assert.False(t, overlap(a, b))
	assert.False(t, overlap(a, c))
	assert.False(t, overlap(b, c))
}

func TestAllocRoundTripPreservesContents(t *testing.T) {
	e := NewEngine(nil)
	b := e.Alloc(256)
	for i := range b {
		b[i] = byte(i)
	}
	for i := range b {
		assert.Equal(t, byte(i), b[i])
	}
}

func TestFreeThenReallocReusesSpace(t *testing.T) {
	e := NewEngine(nil)
	before := e.Available()

	a := e.Alloc(1000)
	e.Free(a)

	assert.Equal(t, before, e.Available())

	b := e.Alloc(1000)
	e.Free(b)
	assert.Equal(t, before, e.Available())
}

func TestFreeNilOrEmptyIsNoop(t *testing.T) {
	e := NewEngine(nil)
	assert.NotPanics(t, func() { e.Free(nil) })
	assert.NotPanics(t, func() { e.Free([]byte{}) })
}

func TestFinalizeReleasesAllChunks(t *testing.T) {
	e := NewEngine(nil)
	e.Alloc(100)
	e.Alloc(100000)
	require.NotNil(t, e.chunks)

	e.Finalize()
	assert.Nil(t, e.chunks)
}

func TestEveryFreeListBlockMatchesItsCellSizeAndIsFree(t *testing.T) {
	e := NewEngine(nil)
	blocks := make([][]byte, 0, 64)
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 64; i++ {
		blocks = append(blocks, e.Alloc(1+rng.Intn(5000)))
	}
	for _, b := range blocks {
		e.Free(b)
	}

	for i := 0; i < e.ladder.length; i++ {
		for cur := e.ladder.headBlock(i); cur != nil; cur = blockNext(cur) {
			assert.Equal(t, e.ladder.size(i), getSize(cur), "cell %d", i)
			assert.False(t, getInUse(cur), "cell %d", i)
		}
	}
}

func TestAllocGrowsLadderAsNeeded(t *testing.T) {
	e := NewEngine(nil)
	for _, k := range []int{1, 10, 100, 1000, 10000, 100000} {
		b := e.Alloc(k)
		need := blocksForBytes(k + headerSize)
		last := e.ladder.size(e.ladder.length - 1)
		assert.GreaterOrEqual(t, last, need, "k=%d", k)
		e.Free(b)
	}
}
