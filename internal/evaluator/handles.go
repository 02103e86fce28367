package evaluator

import (
	"database/sql"
	"os"
	"sync"

	"google.golang.org/grpc"
)

// registry associates an opaque native resource with the ObjectMut handle
// value the interpreter hands back to Ruchy code (spec.md §3.4 "File
// handles"), keyed by pointer identity so closing the handle value closes
// exactly the matching resource.
type registry[T any] struct {
	mu    sync.Mutex
	items map[*ObjectMut]T
}

func newRegistry[T any]() *registry[T] { return &registry[T]{items: make(map[*ObjectMut]T)} }

func (r *registry[T]) Set(h *ObjectMut, v T) {
	r.mu.Lock()
	r.items[h] = v
	r.mu.Unlock()
}

func (r *registry[T]) Get(h *ObjectMut) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.items[h]
	return v, ok
}

func (r *registry[T]) Delete(h *ObjectMut) {
	r.mu.Lock()
	delete(r.items, h)
	r.mu.Unlock()
}

var (
	fileHandles = newRegistry[*os.File]()
	dbHandles   = newRegistry[*sql.DB]()
	grpcHandles = newRegistry[*grpc.ClientConn]()
)
