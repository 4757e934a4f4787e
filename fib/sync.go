package fib

import "sync"

// SyncEngine adds mutual exclusion around an Engine. The engine itself is
// single-threaded cooperative, with no internal suspension and no
// reentrance; SyncEngine is the wrapping concern for callers who share one
// heap across goroutines instead of serializing access themselves.
type SyncEngine struct {
	mu     sync.Mutex
	engine *Engine
}

// NewSyncEngine wraps engine with a mutex. engine must not be used
// directly afterward.
func NewSyncEngine(engine *Engine) *SyncEngine {
	return &SyncEngine{engine: engine}
}

func (s *SyncEngine) Alloc(x int) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Alloc(x)
}

func (s *SyncEngine) Free(area []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.Free(area)
}

func (s *SyncEngine) Finalize() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.Finalize()
}

func (s *SyncEngine) Available() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Available()
}
