package lists

import "fmt"

// DoubleEndedLinkedList is a singly linked list that also tracks its last node, making Append O(1).
// The tail is a position cache: it always equals the node reached by following successors from the head.
type DoubleEndedLinkedList[T any] struct {
	SinglyLinkedList[T]
	tail *Node[T]
}

// NewDoubleEndedLinkedList returns an empty double-ended list.
func NewDoubleEndedLinkedList[T any]() *DoubleEndedLinkedList[T] {
	return &DoubleEndedLinkedList[T]{}
}

// Tail returns the last node of the list or nil if the list is empty.
func (d *DoubleEndedLinkedList[T]) Tail() *Node[T] {
	return d.tail
}

// Insert adds `value` to the front of the list.
func (d *DoubleEndedLinkedList[T]) Insert(value T) {
	d.SinglyLinkedList.Insert(value)
	if d.tail == nil { // List was empty.
		d.tail = d.head
	}
}

// Append adds `value` after the tail.
func (d *DoubleEndedLinkedList[T]) Append(value T) {
	node := &Node[T]{Value: value}
	if d.tail == nil { // List was empty.
		d.head = node
	} else {
		d.tail.next = node
	}
	d.tail = node
}

// InsertAt splices `value` right after the first node matching `match`, advancing the tail if needed.
func (d *DoubleEndedLinkedList[T]) InsertAt(value T, match Matcher[T]) error {
	if d.IsEmpty() {
		return fmt.Errorf("%w: nothing to insert after", ErrEmptyList)
	}
	_, at := search(d.head, endsAtNil[T], match)
	if at == nil {
		return ErrKeyNotFound
	}
	at.next = &Node[T]{Value: value, next: at.next}
	if at == d.tail {
		d.tail = at.next
	}
	return nil
}

// Delete unlinks the first node matching `match`. Deleting the tail moves the tail to its predecessor.
func (d *DoubleEndedLinkedList[T]) Delete(match Matcher[T]) error {
	if d.IsEmpty() {
		return fmt.Errorf("%w: nothing to delete", ErrEmptyList)
	}
	prev, found := search(d.head, endsAtNil[T], match)
	if found == nil {
		return ErrKeyNotFound
	}
	if prev == nil {
		d.head = found.next
	} else {
		prev.next = found.next
	}
	if found == d.tail { // Nil when the list became empty.
		d.tail = prev
	}
	found.next = nil
	return nil
}

// Reverse flips the order of the list in place; head and tail swap roles.
func (d *DoubleEndedLinkedList[T]) Reverse() error {
	oldHead := d.head
	if err := d.SinglyLinkedList.Reverse(); err != nil {
		return err
	}
	d.tail = oldHead
	return nil
}

// Clear drops every node of the list.
func (d *DoubleEndedLinkedList[T]) Clear() {
	d.head, d.tail = nil, nil
}
