// Chain spreads its keys across independently locked shards, and each shard produces its own sorted stream of keys.
// Listing keys in order means merging those streams without collecting them into one big slice first.
//
// This module implements a heap-based multi-way iterator that lazily yields from multiple underneath iterators.
// Pairs pulled from the sequences are ordered by key and then by sequence priority; pairs pulled from lower priority
// sequences are discarded in case their key was already yielded.

package scan

import (
	"container/heap"
	"errors"
	"iter"

	"github.com/nobletooth/chain/pkg/utils"
)

// heapElement is a pair pulled from one of the merged sequences.
type heapElement[K any, V any] struct {
	pair   utils.Pair[K, V]
	seqIdx int // Index of the sequence that produced the pair; lower means higher priority.
}

// iterHeap is a min-heap over the latest pair pulled from each sequence.
type iterHeap[K any, V any] struct { // Implements heap.Interface.
	compare  utils.CompareFn[K]
	elements []*heapElement[K, V]
}

var _ heap.Interface = (*iterHeap[int, int])(nil)

func (ih *iterHeap[K, V]) Len() int {
	return len(ih.elements)
}

// Less orders by key; equal keys are ordered by sequence priority.
func (ih *iterHeap[K, V]) Less(i, j int) bool {
	e1, e2 := ih.elements[i], ih.elements[j]
	if order := ih.compare(e1.pair.Key, e2.pair.Key); order != 0 {
		return order < 0
	}
	return e1.seqIdx < e2.seqIdx
}

func (ih *iterHeap[K, V]) Swap(i, j int) {
	ih.elements[i], ih.elements[j] = ih.elements[j], ih.elements[i]
}

// Push adds `x` to the heap if it is a non-nil *heapElement.
func (ih *iterHeap[K, V]) Push(x any) {
	element, ok := x.(*heapElement[K, V])
	if !ok || element == nil {
		utils.RaiseInvariant("merged_iterator", "pushed_invalid_element",
			"An invalid element was pushed to the iteration heap.", "isHeapElement", ok)
		return
	}
	ih.elements = append(ih.elements, element)
}

// Pop returns and removes the last element in the heap.
func (ih *iterHeap[K, V]) Pop() any {
	lastElement := ih.elements[len(ih.elements)-1]
	ih.elements = ih.elements[:len(ih.elements)-1]
	return lastElement
}

// MultiHead merges increasing `sequences` into one increasing sequence. When several sequences hold the same key,
// only the pair of the first of them (in `sequences` order) is yielded. Sequences are pulled only while the result
// is being iterated, and each iteration starts over from the beginning of every sequence.
func MultiHead[Seq iter.Seq[utils.Pair[K, V]], K any, V any](compare utils.CompareFn[K], sequences []Seq) (Seq, error) {
	if compare == nil {
		return nil, errors.New("expected a non-nil comparison function")
	}
	if len(sequences) == 0 {
		return nil, errors.New("expected a non-empty sequences")
	}

	return func(yield func(utils.Pair[K, V]) bool) {
		ih := &iterHeap[K, V]{compare: compare, elements: make([]*heapElement[K, V], 0, len(sequences))}
		pulls := make([]func() (utils.Pair[K, V], bool), len(sequences))
		for seqIdx, seq := range sequences {
			next, stop := iter.Pull(iter.Seq[utils.Pair[K, V]](seq))
			defer stop()
			pulls[seqIdx] = next
			if pair, ok := next(); ok {
				heap.Push(ih, &heapElement[K, V]{pair: pair, seqIdx: seqIdx})
			}
		}

		var lastKey K
		yielded := false
		for ih.Len() > 0 {
			top := heap.Pop(ih).(*heapElement[K, V])
			if pair, ok := pulls[top.seqIdx](); ok { // The next pair of the same sequence enters the heap.
				heap.Push(ih, &heapElement[K, V]{pair: pair, seqIdx: top.seqIdx})
			}
			if yielded && compare(top.pair.Key, lastKey) == 0 { // Lower priority pair of a yielded key.
				continue
			}
			lastKey, yielded = top.pair.Key, true
			if !yield(top.pair) {
				return
			}
		}
	}, nil
}
