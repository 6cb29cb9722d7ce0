package fifoqueue

import (
	"sync"

	"github.com/gammazero/deque"
	"go.uber.org/atomic"
)

// FIFOQueue implements variable size synchronized FIFO queue.
// Writes never block: with a limit set, elements which do not fit are dropped and counted
type FIFOQueue[T any] struct {
	d       *deque.Deque[T]
	mutex   sync.Mutex
	cond    *sync.Cond
	closing bool
	closed  bool
	limit   int
	dropped atomic.Uint64
}

// New creates unbounded queue
func New[T any]() *FIFOQueue[T] {
	return NewBounded[T](0)
}

// NewBounded creates queue which buffers at most limit elements. 0 means no limit
func NewBounded[T any](limit int) *FIFOQueue[T] {
	ret := &FIFOQueue[T]{
		d:     new(deque.Deque[T]),
		limit: limit,
	}
	ret.cond = sync.NewCond(&ret.mutex)
	return ret
}

// Write pushes element
func (q *FIFOQueue[T]) Write(elem T) {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	if q.closing {
		panic("attempt to write to the closed FIFOQueue")
	}
	if q.limit > 0 && q.d.Len() >= q.limit {
		q.dropped.Inc()
		return
	}
	q.d.PushBack(elem)
	q.cond.Signal()
}

// CloseNow closes FIFOQueue immediately. The elements in the buffer are lost
func (q *FIFOQueue[T]) CloseNow() {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	q.closing = true
	q.closed = true
	q.cond.Broadcast()
}

// Close closes FIFOQueue deferred until all elements are read
func (q *FIFOQueue[T]) Close() {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	q.closing = true
	q.cond.Broadcast()
}

// read blocks until an element is available or the queue is closed
func (q *FIFOQueue[T]) read() (T, bool) {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	for q.d.Len() == 0 && !q.closing {
		q.cond.Wait()
	}
	if q.closed || q.d.Len() == 0 {
		var nothing T
		return nothing, false
	}
	return q.d.PopFront(), true
}

// Consume reads all elements of the queue until it is closed
func (q *FIFOQueue[T]) Consume(fun func(elem T)) {
	for {
		e, ok := q.read()
		if !ok {
			break
		}
		fun(e)
	}
}

// Len returns number of elements in the queue. Non-deterministic
func (q *FIFOQueue[T]) Len() int {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	return q.d.Len()
}

// Dropped returns number of elements rejected because the queue was full
func (q *FIFOQueue[T]) Dropped() uint64 {
	return q.dropped.Load()
}
