package lists

import (
	"fmt"
	"iter"

	"github.com/nobletooth/chain/pkg/utils"
)

// CircularLinkedList is a double-ended list whose tail links back to its head. There is no nil terminator on a
// non-empty ring, so every scan stops after visiting the tail.
type CircularLinkedList[T any] struct {
	DoubleEndedLinkedList[T]
}

// NewCircularLinkedList returns an empty circular list.
func NewCircularLinkedList[T any]() *CircularLinkedList[T] {
	return &CircularLinkedList[T]{}
}

// atTail is the lastFunc of the ring.
func (c *CircularLinkedList[T]) atTail(n *Node[T]) bool {
	return n == c.tail
}

// checkRing raises an invariant if the ring isn't closed: an empty ring has neither head nor tail, a non-empty one
// has tail.next == head.
func (c *CircularLinkedList[T]) checkRing() {
	if (c.head == nil) != (c.tail == nil) {
		utils.RaiseInvariant("lists", "ring_half_empty", "Circular list has only one of head and tail.",
			"hasHead", c.head != nil, "hasTail", c.tail != nil)
		return
	}
	if c.tail != nil && c.tail.next != c.head {
		utils.RaiseInvariant("lists", "ring_not_closed", "Circular list tail doesn't link back to its head.")
	}
}

// Insert adds `value` in front of the head and closes the ring over it.
func (c *CircularLinkedList[T]) Insert(value T) {
	node := &Node[T]{Value: value}
	if c.IsEmpty() {
		node.next = node
		c.head, c.tail = node, node
	} else {
		node.next = c.head
		c.head = node
		c.tail.next = node
	}
	c.checkRing()
}

// Append adds `value` after the tail and closes the ring over it.
func (c *CircularLinkedList[T]) Append(value T) {
	node := &Node[T]{Value: value}
	if c.IsEmpty() {
		node.next = node
		c.head, c.tail = node, node
	} else {
		node.next = c.head
		c.tail.next = node
		c.tail = node
	}
	c.checkRing()
}

// InsertAt splices `value` right after the first node matching `match`. The scan fails with ErrKeyNotFound once the
// tail was checked without a match.
func (c *CircularLinkedList[T]) InsertAt(value T, match Matcher[T]) error {
	if c.IsEmpty() {
		return fmt.Errorf("%w: nothing to insert after", ErrEmptyList)
	}
	_, at := search(c.head, c.atTail, match)
	if at == nil {
		return ErrKeyNotFound
	}
	at.next = &Node[T]{Value: value, next: at.next}
	if at == c.tail {
		c.tail = at.next
	}
	c.checkRing()
	return nil
}

// Find returns the first node matching `match` or nil.
func (c *CircularLinkedList[T]) Find(match Matcher[T]) *Node[T] {
	_, found := search(c.head, c.atTail, match)
	return found
}

// Delete unlinks the first node matching `match` and closes the ring around the gap.
func (c *CircularLinkedList[T]) Delete(match Matcher[T]) error {
	if c.IsEmpty() {
		return fmt.Errorf("%w: nothing to delete", ErrEmptyList)
	}
	prev, found := search(c.head, c.atTail, match)
	if found == nil {
		return ErrKeyNotFound
	}
	switch {
	case c.head == c.tail: // Sole node.
		c.head, c.tail = nil, nil
	case prev == nil: // Head.
		c.head = found.next
		c.tail.next = c.head
	default:
		prev.next = found.next
		if found == c.tail {
			c.tail = prev
		}
	}
	found.next = nil
	c.checkRing()
	return nil
}

// Reverse flips the direction of the ring; head and tail swap roles.
func (c *CircularLinkedList[T]) Reverse() error {
	if c.IsEmpty() {
		return fmt.Errorf("%w: nothing to reverse", ErrEmptyList)
	}
	oldHead := c.head
	c.head = reverseChain(c.head, c.atTail)
	c.tail = oldHead
	c.tail.next = c.head
	c.checkRing()
	return nil
}

// Len returns the number of values in the ring. The complexity is O(n).
func (c *CircularLinkedList[T]) Len() int {
	return count(c.head, c.atTail)
}

// All returns an iterator yielding every value once, from head to tail.
func (c *CircularLinkedList[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		walk(c.head, c.atTail, func(_, cur *Node[T]) bool { return yield(cur.Value) })
	}
}

// String renders the ring as "v1 -> v2 -> v3".
func (c *CircularLinkedList[T]) String() string {
	return format(c.All(), " -> ")
}
