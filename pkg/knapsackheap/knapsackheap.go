package knapsackheap

import (
	"container/heap"

	"github.com/LambdaTest/knapsack/pkg/core"
)

// Heap is a min-heap of knapsacks ordered by their total duration.
type Heap []*core.Knapsack

// New returns an initialized heap of n empty knapsacks indexed 0..n-1.
func New(n int) Heap {
	h := make(Heap, n)
	for i := 0; i < n; i++ {
		h[i] = &core.Knapsack{Index: i}
	}
	heap.Init(&h)
	return h
}

// Len returns the length of the heap
func (h Heap) Len() int {
	return len(h)
}

// Less orders by total, knapsacks with equal totals by index.
func (h Heap) Less(i, j int) bool {
	if h[i].Total != h[j].Total {
		return h[i].Total < h[j].Total
	}
	return h[i].Index < h[j].Index
}

// Swap swaps the values of two knapsacks
func (h Heap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

// Push adds a new knapsack to the heap
func (h *Heap) Push(x interface{}) {
	item := x.(*core.Knapsack)
	*h = append(*h, item)
}

// Pop removes the lightest knapsack from the heap
func (h *Heap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil // avoid memory leak
	*h = old[0 : n-1]
	return x
}

// UpdateHead packs the test class into the lightest knapsack and returns it.
func (h *Heap) UpdateHead(tc *core.TestClass) *core.Knapsack {
	head := (*h)[0]
	head.Add(tc)
	// heapify after updating the knapsack
	heap.Fix(h, 0)
	return head
}
