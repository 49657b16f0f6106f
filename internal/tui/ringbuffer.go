package tui

// RingBuffer keeps the last cap values pushed into it.
type RingBuffer[T any] struct {
	items []T
	next  int
	size  int
	cap   int
}

// NewRingBuffer creates a buffer holding at least one value.
func NewRingBuffer[T any](capacity int) *RingBuffer[T] {
	capacity = max(1, capacity)
	return &RingBuffer[T]{items: make([]T, capacity), cap: capacity}
}

// Push appends v, dropping the oldest value when full.
func (r *RingBuffer[T]) Push(v T) {
	r.items[r.next] = v
	r.next = (r.next + 1) % r.cap
	r.size = min(r.size+1, r.cap)
}

// Items returns the buffered values from oldest to newest.
func (r *RingBuffer[T]) Items() []T {
	if r.size == 0 {
		return nil
	}
	out := make([]T, 0, r.size)
	start := (r.next - r.size + r.cap) % r.cap
	for i := 0; i < r.size; i++ {
		out = append(out, r.items[(start+i)%r.cap])
	}
	return out
}

func (r *RingBuffer[T]) Len() int { return r.size }

func (r *RingBuffer[T]) Clear() {
	clear(r.items)
	r.next = 0
	r.size = 0
}
