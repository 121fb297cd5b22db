package lists

import (
	"fmt"
	"iter"

	"github.com/nobletooth/chain/pkg/utils"
)

// DoublyLinkedList is a chain of nodes linked in both directions. It keeps no tail reference; for every adjacent pair
// with a.next == b, b.prev == a holds after every mutation. The zero value is an empty list ready to use.
type DoublyLinkedList[T any] struct {
	head *DoublyNode[T]
}

// NewDoublyLinkedList returns an empty doubly linked list.
func NewDoublyLinkedList[T any]() *DoublyLinkedList[T] {
	return &DoublyLinkedList[T]{}
}

// IsEmpty reports whether the list has no nodes.
func (l *DoublyLinkedList[T]) IsEmpty() bool {
	return l.head == nil
}

// Head returns the first node of the list or nil if the list is empty.
func (l *DoublyLinkedList[T]) Head() *DoublyNode[T] {
	return l.head
}

// last returns the final node of the list or nil if the list is empty.
func (l *DoublyLinkedList[T]) last() *DoublyNode[T] {
	node := l.head
	for node != nil && node.next != nil {
		node = node.next
	}
	return node
}

// Insert adds `value` to the front of the list.
func (l *DoublyLinkedList[T]) Insert(value T) {
	node := &DoublyNode[T]{Value: value, next: l.head}
	if l.head != nil {
		l.head.prev = node
	}
	l.head = node
}

// Append adds `value` to the end of the list. The last node is found by scanning, so this is O(n).
func (l *DoublyLinkedList[T]) Append(value T) {
	node := &DoublyNode[T]{Value: value}
	if last := l.last(); last != nil {
		last.next = node
		node.prev = last
	} else { // List was empty.
		l.head = node
	}
}

// InsertAt splices `value` right after the first node matching `match`.
func (l *DoublyLinkedList[T]) InsertAt(value T, match Matcher[T]) error {
	if l.IsEmpty() {
		return fmt.Errorf("%w: nothing to insert after", ErrEmptyList)
	}
	at := l.Find(match)
	if at == nil {
		return ErrKeyNotFound
	}
	node := &DoublyNode[T]{Value: value, next: at.next, prev: at}
	if at.next != nil {
		at.next.prev = node
	}
	at.next = node
	return nil
}

// Find returns the first node matching `match` or nil.
func (l *DoublyLinkedList[T]) Find(match Matcher[T]) *DoublyNode[T] {
	for node := l.head; node != nil; node = node.next {
		if match(node.Value) {
			return node
		}
	}
	return nil
}

// Delete unlinks the first node matching `match`. The node following the deleted one gets its back reference pointed
// at the deleted node's predecessor.
func (l *DoublyLinkedList[T]) Delete(match Matcher[T]) error {
	if l.IsEmpty() {
		return fmt.Errorf("%w: nothing to delete", ErrEmptyList)
	}
	var trailing *DoublyNode[T]
	for cur := l.head; cur != nil; trailing, cur = cur, cur.next {
		if cur.prev != trailing {
			utils.RaiseInvariant("lists", "stale_back_reference",
				"Doubly linked node doesn't point back to its predecessor.")
		}
		if !match(cur.Value) {
			continue
		}
		if trailing == nil {
			l.head = cur.next
		} else {
			trailing.next = cur.next
		}
		if cur.next != nil {
			cur.next.prev = trailing
		}
		// Clean up the removed node's pointers.
		cur.next, cur.prev = nil, nil
		return nil
	}
	return ErrKeyNotFound
}

// Reverse flips the order of the list in place by swapping the links of every node.
func (l *DoublyLinkedList[T]) Reverse() error {
	if l.IsEmpty() {
		return fmt.Errorf("%w: nothing to reverse", ErrEmptyList)
	}
	var prev *DoublyNode[T]
	for cur := l.head; cur != nil; {
		next := cur.next
		cur.next, cur.prev = prev, next
		prev, cur = cur, next
	}
	l.head = prev
	return nil
}

// Clear drops every node of the list.
func (l *DoublyLinkedList[T]) Clear() {
	l.head = nil
}

// Len returns the number of values in the list. The complexity is O(n).
func (l *DoublyLinkedList[T]) Len() int {
	nodes := 0
	for node := l.head; node != nil; node = node.next {
		nodes++
	}
	return nodes
}

// All returns an iterator over the values from head to tail.
func (l *DoublyLinkedList[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for node := l.head; node != nil; node = node.next {
			if !yield(node.Value) {
				return
			}
		}
	}
}

// Backward returns an iterator over the values from tail to head, following the back references.
func (l *DoublyLinkedList[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		for node := l.last(); node != nil; node = node.prev {
			if !yield(node.Value) {
				return
			}
		}
	}
}

// String renders the list as "v1 <-> v2 <-> v3".
func (l *DoublyLinkedList[T]) String() string {
	return format(l.All(), " <-> ")
}
