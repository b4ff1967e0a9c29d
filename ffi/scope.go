package ffi

import (
	"sync"

	lotus "github.com/lotus-sim/lotus-script-go"
)

// Scope collects the buffers encoded for one host call so they can be released together
// once the call returns.
type Scope struct {
	objects []*Object
}

var scopePool = sync.Pool{
	New: func() any {
		return &Scope{objects: make([]*Object, 0, 4)}
	},
}

// NewScope returns an empty scope from the pool.
func NewScope() *Scope {
	return scopePool.Get().(*Scope)
}

const maxPooledScopeCapacity = 32

// Encode encodes v into mem and records the buffer.
func (s *Scope) Encode(mem lotus.Memory, v any) Handle {
	o := Encode(mem, v)
	s.objects = append(s.objects, o)
	return o.Handle()
}

// Add records an existing buffer.
func (s *Scope) Add(o *Object) {
	s.objects = append(s.objects, o)
}

// Count returns the number of recorded buffers.
func (s *Scope) Count() int {
	return len(s.objects)
}

// Release frees every recorded buffer and returns the scope to the pool.
// The scope is invalid after Release.
func (s *Scope) Release() {
	for _, o := range s.objects {
		o.Release()
	}
	clear(s.objects)
	s.objects = s.objects[:0]
	if cap(s.objects) > maxPooledScopeCapacity {
		return
	}
	scopePool.Put(s)
}
