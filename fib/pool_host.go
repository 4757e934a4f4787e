package fib

import (
	"math/bits"
	"sync"
)

// PooledHost wraps another Host and reuses same-size-class regions across
// repeated acquire/release cycles instead of asking the underlying Host
// every time. It keeps one sync.Pool per power-of-two size class and maps
// a request to a class with bits.Len.
type PooledHost struct {
	Upstream Host

	once  sync.Once
	pools [64]sync.Pool
}

const pooledHostMinClass = 12 // 2^12 = 4KB smallest pooled class

func (p *PooledHost) classFor(n int) int {
	if n <= 1<<pooledHostMinClass {
		return pooledHostMinClass
	}
	return bits.Len(uint(n - 1))
}

func (p *PooledHost) init() {
	for class := range p.pools {
		class := class
		p.pools[class].New = func() interface{} {
			return p.host().Acquire(1 << class)
		}
	}
}

// Acquire returns a region of at least n bytes, reused from the pool for
// its size class when available.
func (p *PooledHost) Acquire(n int) []byte {
	p.once.Do(p.init)
	class := p.classFor(n)
	mem := p.pools[class].Get().([]byte)
	if len(mem) < n {
		// pool was seeded by a smaller ask for the same class; grow once.
		mem = p.host().Acquire(1 << class)
	}
	return mem[:n]
}

// Release parks mem back in the pool for its size class for reuse by a
// later Acquire, rather than returning it to Upstream immediately.
func (p *PooledHost) Release(mem []byte) {
	class := p.classFor(cap(mem))
	p.pools[class].Put(mem[:cap(mem)])
}

func (p *PooledHost) host() Host {
	if p.Upstream != nil {
		return p.Upstream
	}
	return HeapHost{}
}
