package lists

import (
	"cmp"
	"iter"
)

// OrderedLinkedList keeps its values sorted by a key function fixed at construction. For every adjacent pair (a, b),
// key(a) <= key(b) holds; values with equal keys keep their insertion order.
//
// Appending, reversing and positional inserts would break the ordering, so the type doesn't offer them; the
// capability helpers (Append, Reverse, InsertAt) return ErrUnsupportedOperation for it.
type OrderedLinkedList[T any, K cmp.Ordered] struct {
	list SinglyLinkedList[T]
	key  KeyFunc[T, K]
}

// NewOrderedLinkedList returns an empty list sorted by `key`. Panics if `key` is nil.
func NewOrderedLinkedList[T any, K cmp.Ordered](key KeyFunc[T, K]) *OrderedLinkedList[T, K] {
	if key == nil {
		panic("lists: ordered list requires a non-nil key function")
	}
	return &OrderedLinkedList[T, K]{key: key}
}

// NewOrderedLinkedListOf returns an empty list sorted by the values themselves.
func NewOrderedLinkedListOf[T cmp.Ordered]() *OrderedLinkedList[T, T] {
	return NewOrderedLinkedList[T, T](Identity[T])
}

// Insert puts `value` before the first node whose key is greater than the key of `value`.
func (o *OrderedLinkedList[T, K]) Insert(value T) {
	key := o.key(value)
	head := o.list.head
	if head == nil || cmp.Less(key, o.key(head.Value)) {
		o.list.Insert(value)
		return
	}
	// Find the last node whose key doesn't exceed `key`.
	var at *Node[T]
	walk(head, endsAtNil[T], func(_, cur *Node[T]) bool {
		at = cur
		return cur.next != nil && !cmp.Less(key, o.key(cur.next.Value))
	})
	at.next = &Node[T]{Value: value, next: at.next}
}

// Find returns the first node whose key equals `goal`. The list's own key function is always used.
func (o *OrderedLinkedList[T, K]) Find(goal K) *Node[T] {
	return o.list.Find(KeyEqual(o.key, goal))
}

// Delete unlinks the first node whose key equals `goal`. Removing a node never breaks the ordering.
func (o *OrderedLinkedList[T, K]) Delete(goal K) error {
	return o.list.Delete(KeyEqual(o.key, goal))
}

// Contains reports whether a value with key `goal` is in the list.
func (o *OrderedLinkedList[T, K]) Contains(goal K) bool {
	return o.Find(goal) != nil
}

// ownKey matches values whose key, boxed, equals `goal`. A goal of another type than K matches nothing.
func (o *OrderedLinkedList[T, K]) ownKey(goal any) Matcher[T] {
	return func(value T) bool { return any(o.key(value)) == goal }
}

// findKey is Find for goals whose type is only known at runtime.
func (o *OrderedLinkedList[T, K]) findKey(goal any) *Node[T] {
	return o.list.Find(o.ownKey(goal))
}

// deleteKey is Delete for goals whose type is only known at runtime.
func (o *OrderedLinkedList[T, K]) deleteKey(goal any) error {
	return o.list.Delete(o.ownKey(goal))
}

// IsEmpty reports whether the list has no nodes.
func (o *OrderedLinkedList[T, K]) IsEmpty() bool { return o.list.IsEmpty() }

// Head returns the node with the smallest key or nil if the list is empty.
func (o *OrderedLinkedList[T, K]) Head() *Node[T] { return o.list.Head() }

// Clear drops every node of the list.
func (o *OrderedLinkedList[T, K]) Clear() { o.list.Clear() }

// Len returns the number of values in the list. The complexity is O(n).
func (o *OrderedLinkedList[T, K]) Len() int { return o.list.Len() }

// All returns an iterator over the values in key order.
func (o *OrderedLinkedList[T, K]) All() iter.Seq[T] { return o.list.All() }

// String renders the list as "v1 -> v2 -> v3".
func (o *OrderedLinkedList[T, K]) String() string { return o.list.String() }
