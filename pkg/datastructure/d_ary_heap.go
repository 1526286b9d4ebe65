package datastructure

import (
	"errors"
)

var ErrEmptyHeap = errors.New("heap is empty")

type PriorityQueueNode[T any] struct {
	rank float64
	seq  uint64 // insertion order, breaks ties between equal ranks
	item T
}

func (p PriorityQueueNode[T]) GetItem() T {
	return p.item
}

// MinHeap is a push-only d-ary min heap. there is no decrease-key: a better label is pushed as a new
// entry and the caller discards stale entries when they are extracted. entries with equal rank are
// extracted in insertion order.
type MinHeap[T any] struct {
	heap    []PriorityQueueNode[T]
	d       int
	nextSeq uint64
}

func NewdAryHeap[T any](d int) *MinHeap[T] {
	if d < 2 {
		d = 2
	}
	return &MinHeap[T]{
		heap: make([]PriorityQueueNode[T], 0),
		d:    d,
	}
}

func (h *MinHeap[T]) Preallocate(maxSearchSize int) {
	h.heap = make([]PriorityQueueNode[T], 0, maxSearchSize)
	h.nextSeq = 0
}

func (h *MinHeap[T]) less(i, j int) bool {
	if h.heap[i].rank != h.heap[j].rank {
		return h.heap[i].rank < h.heap[j].rank
	}
	return h.heap[i].seq < h.heap[j].seq
}

// parent get index dari parent
func (h *MinHeap[T]) parent(index int) int {
	return (index - 1) / h.d
}

// heapifyUp restores the heap property from index towards the root. O(log_d N).
func (h *MinHeap[T]) heapifyUp(index int) {
	for index != 0 && h.less(index, h.parent(index)) {
		h.swap(index, h.parent(index))
		index = h.parent(index)
	}
}

// heapifyDown restores the heap property from index towards the leaves. O(d log_d N).
func (h *MinHeap[T]) heapifyDown(index int) {
	for {
		leftMostChild := index*h.d + 1
		if leftMostChild >= len(h.heap) {
			return
		}

		sentinel := leftMostChild + h.d
		if sentinel > len(h.heap) {
			sentinel = len(h.heap)
		}

		smallest := leftMostChild
		for i := leftMostChild + 1; i < sentinel; i++ {
			if h.less(i, smallest) {
				smallest = i
			}
		}

		if !h.less(smallest, index) {
			return
		}
		h.swap(index, smallest)
		index = smallest
	}
}

func (h *MinHeap[T]) swap(i, j int) {
	h.heap[i], h.heap[j] = h.heap[j], h.heap[i]
}

func (h *MinHeap[T]) IsEmpty() bool {
	return len(h.heap) == 0
}

func (h *MinHeap[T]) Clear() {
	h.heap = h.heap[:0]
	h.nextSeq = 0
}

// Insert pushes item with the given rank. O(log_d N).
func (h *MinHeap[T]) Insert(rank float64, item T) {
	h.heap = append(h.heap, PriorityQueueNode[T]{rank: rank, seq: h.nextSeq, item: item})
	h.nextSeq++
	h.heapifyUp(len(h.heap) - 1)
}

// ExtractMin removes and returns the minimum entry. O(d log_d N).
func (h *MinHeap[T]) ExtractMin() (PriorityQueueNode[T], error) {
	if h.IsEmpty() {
		return PriorityQueueNode[T]{}, ErrEmptyHeap
	}
	root := h.heap[0]

	last := len(h.heap) - 1
	h.swap(0, last)
	h.heap = h.heap[:last]
	if len(h.heap) > 0 {
		h.heapifyDown(0)
	}

	return root, nil
}
