package lists

// Node is a cell of the singly linked family. A node is owned by its predecessor (or by the list for the head).
type Node[T any] struct {
	next  *Node[T]
	Value T
}

// Next returns the successor of the node. On a circular list the tail's successor is the head.
func (n *Node[T]) Next() *Node[T] {
	return n.next
}

// DoublyNode is a cell of DoublyLinkedList. Only `next` owns; `prev` is a back reference kept for neighbor lookups.
type DoublyNode[T any] struct {
	next  *DoublyNode[T]
	prev  *DoublyNode[T]
	Value T
}

// Next returns the next node in the list.
func (n *DoublyNode[T]) Next() *DoublyNode[T] {
	return n.next
}

// Prev returns the previous node in the list.
func (n *DoublyNode[T]) Prev() *DoublyNode[T] {
	return n.prev
}
