package fib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingHost struct {
	acquires int
	releases int
}

func (c *countingHost) Acquire(n int) []byte {
	c.acquires++
	return make([]byte, n)
}

func (c *countingHost) Release([]byte) {
	c.releases++
}

func TestPooledHostReusesSameClass(t *testing.T) {
	upstream := &countingHost{}
	p := &PooledHost{Upstream: upstream}

	a := p.Acquire(1000)
	p.Release(a)
	b := p.Acquire(1000)

	assert.Equal(t, 1, upstream.acquires, "second acquire of the same class should come from the pool, not upstream")
	assert.GreaterOrEqual(t, len(b), 1000)
}

func TestPooledHostGrowsForLargerClass(t *testing.T) {
	upstream := &countingHost{}
	p := &PooledHost{Upstream: upstream}

	p.Acquire(1000)
	p.Acquire(1 << 20)

	assert.Equal(t, 2, upstream.acquires)
}

func TestPooledHostDefaultsToHeapHost(t *testing.T) {
	p := &PooledHost{}
	mem := p.Acquire(64)
	require.Len(t, mem, 64)
	assert.NotPanics(t, func() { p.Release(mem) })
}

func TestEngineOverPooledHost(t *testing.T) {
	upstream := &countingHost{}
	host := &PooledHost{Upstream: upstream}

	e := NewEngine(host)
	b := e.Alloc(4096)
	e.Free(b)
	e.Finalize()

	e2 := NewEngine(host)
	c := e2.Alloc(4096)
	e2.Free(c)
	e2.Finalize()

	assert.Less(t, upstream.acquires, 4, "repeated engine lifetimes over the same PooledHost should reuse regions across Finalize/NewEngine cycles")
}
