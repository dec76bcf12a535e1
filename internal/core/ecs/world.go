package ecs

import "sync"

// World owns the entity pool, the store registry and the deferred
// destruction queue. Systems mark entities while iterating and the queue is
// flushed once iteration has finished.
type World struct {
	pool     *EntityPool
	registry *Registry

	mu           sync.Mutex // guards destroyQueue; systems may run in parallel batches
	destroyQueue []EntityID
}

func NewWorld() *World {
	return &World{
		pool:         NewEntityPool(),
		registry:     NewRegistry(),
		destroyQueue: make([]EntityID, 0, 64),
	}
}

func (w *World) Pool() *EntityPool   { return w.pool }
func (w *World) Registry() *Registry { return w.registry }

func (w *World) CreateEntity() EntityID {
	return w.pool.Create()
}

func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// Register adds a component store and returns it for chained construction.
func Register[T any](w *World, s *Store[T]) *Store[T] {
	w.registry.Register(s)
	return s
}

// MarkForDestruction queues id for the next FlushDestroyQueue.
func (w *World) MarkForDestruction(id EntityID) {
	w.mu.Lock()
	w.destroyQueue = append(w.destroyQueue, id)
	w.mu.Unlock()
}

// Pending reports how many entities are queued for destruction.
func (w *World) Pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.destroyQueue)
}

// FlushDestroyQueue destroys every queued entity and strips its components.
// Duplicate and stale entries are ignored. Returns the number destroyed.
func (w *World) FlushDestroyQueue() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	n := 0
	for _, id := range w.destroyQueue {
		if !w.pool.Alive(id) {
			continue
		}
		w.registry.RemoveAll(id)
		w.pool.Destroy(id)
		n++
	}
	w.destroyQueue = w.destroyQueue[:0]
	return n
}
