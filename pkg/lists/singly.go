// Package lists implements a family of node based sequence containers: a singly linked list and its ordered,
// double-ended and circular specializations, plus an independent doubly linked list.
//
// Each variant guards its own structural invariant (sortedness, tail correctness, ring closure, back references)
// while sharing most of the operation surface. The size of a list is never stored: Len walks the chain, so it costs
// O(n) on every variant.
//
// Lists are not safe for concurrent use. Callers sharing a list must serialize access to it.
package lists

import (
	"fmt"
	"iter"
)

// SinglyLinkedList is a forward-only chain of nodes. The zero value is an empty list ready to use.
type SinglyLinkedList[T any] struct {
	head *Node[T]
}

// NewSinglyLinkedList returns an empty singly linked list.
func NewSinglyLinkedList[T any]() *SinglyLinkedList[T] {
	return &SinglyLinkedList[T]{}
}

// IsEmpty reports whether the list has no nodes.
func (l *SinglyLinkedList[T]) IsEmpty() bool {
	return l.head == nil
}

// Head returns the first node of the list or nil if the list is empty.
func (l *SinglyLinkedList[T]) Head() *Node[T] {
	return l.head
}

// Insert adds `value` to the front of the list.
func (l *SinglyLinkedList[T]) Insert(value T) {
	l.head = &Node[T]{Value: value, next: l.head}
}

// Append adds `value` to the end of the list. The last node is found by scanning, so this is O(n).
func (l *SinglyLinkedList[T]) Append(value T) {
	node := &Node[T]{Value: value}
	if last := lastNode(l.head, endsAtNil[T]); last != nil {
		last.next = node
	} else {
		l.head = node
	}
}

// InsertAt splices `value` right after the first node matching `match`.
func (l *SinglyLinkedList[T]) InsertAt(value T, match Matcher[T]) error {
	if l.IsEmpty() {
		return fmt.Errorf("%w: nothing to insert after", ErrEmptyList)
	}
	_, at := search(l.head, endsAtNil[T], match)
	if at == nil {
		return ErrKeyNotFound
	}
	at.next = &Node[T]{Value: value, next: at.next}
	return nil
}

// Find returns the first node matching `match` or nil.
func (l *SinglyLinkedList[T]) Find(match Matcher[T]) *Node[T] {
	_, found := search(l.head, endsAtNil[T], match)
	return found
}

// Delete unlinks the first node matching `match`.
func (l *SinglyLinkedList[T]) Delete(match Matcher[T]) error {
	if l.IsEmpty() {
		return fmt.Errorf("%w: nothing to delete", ErrEmptyList)
	}
	prev, found := search(l.head, endsAtNil[T], match)
	if found == nil {
		return ErrKeyNotFound
	}
	if prev == nil {
		l.head = found.next
	} else {
		prev.next = found.next
	}
	found.next = nil
	return nil
}

// Reverse flips the order of the list in place.
func (l *SinglyLinkedList[T]) Reverse() error {
	if l.IsEmpty() {
		return fmt.Errorf("%w: nothing to reverse", ErrEmptyList)
	}
	l.head = reverseChain(l.head, endsAtNil[T])
	return nil
}

// Clear drops every node of the list.
func (l *SinglyLinkedList[T]) Clear() {
	l.head = nil
}

// Len returns the number of values in the list. The complexity is O(n).
func (l *SinglyLinkedList[T]) Len() int {
	return count(l.head, endsAtNil[T])
}

// All returns an iterator over the values from head to tail.
func (l *SinglyLinkedList[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		walk(l.head, endsAtNil[T], func(_, cur *Node[T]) bool { return yield(cur.Value) })
	}
}

// String renders the list as "v1 -> v2 -> v3".
func (l *SinglyLinkedList[T]) String() string {
	return format(l.All(), " -> ")
}
