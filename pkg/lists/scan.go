// Every list of the singly linked family walks its chain through the helpers below. A chain doesn't necessarily end
// with a nil successor (rings close back on their head), so each helper takes a lastFunc telling it where to stop.

package lists

import (
	"fmt"
	"iter"
	"strings"
)

// lastFunc reports whether `n` is the final node of a chain.
type lastFunc[T any] func(n *Node[T]) bool

// endsAtNil is the lastFunc of non-circular chains.
func endsAtNil[T any](n *Node[T]) bool {
	return n.next == nil
}

// walk visits the chain starting at `head` in forward order. Each node is passed along with its predecessor (nil for
// the head). Walking stops once `visit` returns false or the last node has been visited.
func walk[T any](head *Node[T], last lastFunc[T], visit func(prev, cur *Node[T]) bool) {
	var prev *Node[T]
	for cur := head; cur != nil; prev, cur = cur, cur.next {
		if !visit(prev, cur) || last(cur) {
			return
		}
	}
}

// search returns the first node matching `match` and its predecessor. Both are nil when nothing matched.
func search[T any](head *Node[T], last lastFunc[T], match Matcher[T]) (prev, found *Node[T]) {
	walk(head, last, func(p, cur *Node[T]) bool {
		if match(cur.Value) {
			prev, found = p, cur
			return false
		}
		return true
	})
	return prev, found
}

// lastNode returns the final node of the chain or nil for an empty chain.
func lastNode[T any](head *Node[T], last lastFunc[T]) *Node[T] {
	var tail *Node[T]
	walk(head, last, func(_, cur *Node[T]) bool {
		tail = cur
		return true
	})
	return tail
}

// count returns the number of nodes in the chain.
func count[T any](head *Node[T], last lastFunc[T]) int {
	nodes := 0
	walk(head, last, func(_, _ *Node[T]) bool {
		nodes++
		return true
	})
	return nodes
}

// reverseChain flips every link of the chain and returns its new head. The old head ends up with a nil successor;
// rings have to be closed again by the caller.
func reverseChain[T any](head *Node[T], last lastFunc[T]) *Node[T] {
	var prev *Node[T]
	for cur := head; cur != nil; {
		isLast := last(cur) // Must be evaluated before `cur.next` is rewritten.
		next := cur.next
		cur.next = prev
		prev, cur = cur, next
		if isLast {
			break
		}
	}
	return prev
}

// format renders the values of `seq` joined by `sep`.
func format[T any](seq iter.Seq[T], sep string) string {
	var sb strings.Builder
	first := true
	for value := range seq {
		if !first {
			sb.WriteString(sep)
		}
		first = false
		_, _ = fmt.Fprint(&sb, value)
	}
	return sb.String()
}
