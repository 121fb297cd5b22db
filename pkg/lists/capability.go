// Lists share most of their operations, but not all of them: an ordered list can't append or reverse without
// breaking its ordering. Instead of a common supertype whose methods may fail, each capability is an interface of its
// own and every list implements only what it supports. The helpers in this file let callers holding a Container ask
// for a capability and get ErrUnsupportedOperation when it's missing.

package lists

import (
	"fmt"
	"iter"
)

// Container is the capability set every list supports.
type Container[T any] interface {
	Insert(value T)
	Len() int
	IsEmpty() bool
	Clear()
	All() iter.Seq[T]
}

// Appender is implemented by lists that can add a value after their last one.
type Appender[T any] interface {
	Append(value T)
}

// Reverser is implemented by lists that can flip their order in place.
type Reverser interface {
	Reverse() error
}

// PositionalInserter is implemented by lists that can splice a value after a matching one.
type PositionalInserter[T any] interface {
	InsertAt(value T, match Matcher[T]) error
}

// Searcher is implemented by lists looked up with a caller supplied Matcher. N is the node type of the list.
type Searcher[T any, N any] interface {
	Find(match Matcher[T]) N
}

// Deleter is implemented by lists that delete with a caller supplied Matcher.
type Deleter[T any] interface {
	Delete(match Matcher[T]) error
}

// keyedList is implemented by lists that own their key function, i.e. OrderedLinkedList. Goals of another type
// than the list's key never match.
type keyedList[T any] interface {
	findKey(goal any) *Node[T]
	deleteKey(goal any) error
}

var (
	_ Container[int]                  = (*SinglyLinkedList[int])(nil)
	_ Appender[int]                   = (*SinglyLinkedList[int])(nil)
	_ Reverser                        = (*SinglyLinkedList[int])(nil)
	_ PositionalInserter[int]         = (*SinglyLinkedList[int])(nil)
	_ Searcher[int, *Node[int]]       = (*SinglyLinkedList[int])(nil)
	_ Deleter[int]                    = (*SinglyLinkedList[int])(nil)
	_ Container[int]                  = (*OrderedLinkedList[int, int])(nil)
	_ keyedList[int]                  = (*OrderedLinkedList[int, int])(nil)
	_ Container[int]                  = (*DoubleEndedLinkedList[int])(nil)
	_ Appender[int]                   = (*DoubleEndedLinkedList[int])(nil)
	_ Reverser                        = (*DoubleEndedLinkedList[int])(nil)
	_ PositionalInserter[int]         = (*DoubleEndedLinkedList[int])(nil)
	_ Deleter[int]                    = (*DoubleEndedLinkedList[int])(nil)
	_ Container[int]                  = (*CircularLinkedList[int])(nil)
	_ Appender[int]                   = (*CircularLinkedList[int])(nil)
	_ Reverser                        = (*CircularLinkedList[int])(nil)
	_ PositionalInserter[int]         = (*CircularLinkedList[int])(nil)
	_ Searcher[int, *Node[int]]       = (*CircularLinkedList[int])(nil)
	_ Deleter[int]                    = (*CircularLinkedList[int])(nil)
	_ Container[int]                  = (*DoublyLinkedList[int])(nil)
	_ Appender[int]                   = (*DoublyLinkedList[int])(nil)
	_ Reverser                        = (*DoublyLinkedList[int])(nil)
	_ PositionalInserter[int]         = (*DoublyLinkedList[int])(nil)
	_ Searcher[int, *DoublyNode[int]] = (*DoublyLinkedList[int])(nil)
	_ Deleter[int]                    = (*DoublyLinkedList[int])(nil)
)

// Append adds `value` after the last value of `list`.
func Append[T any](list Container[T], value T) error {
	appender, ok := list.(Appender[T])
	if !ok {
		return fmt.Errorf("%w: append on %T", ErrUnsupportedOperation, list)
	}
	appender.Append(value)
	return nil
}

// Reverse flips the order of `list` in place.
func Reverse[T any](list Container[T]) error {
	reverser, ok := list.(Reverser)
	if !ok {
		return fmt.Errorf("%w: reverse on %T", ErrUnsupportedOperation, list)
	}
	return reverser.Reverse()
}

// InsertAt splices `value` after the first value of `list` matching `match`.
func InsertAt[T any](list Container[T], value T, match Matcher[T]) error {
	inserter, ok := list.(PositionalInserter[T])
	if !ok {
		return fmt.Errorf("%w: positional insert on %T", ErrUnsupportedOperation, list)
	}
	return inserter.InsertAt(value, match)
}

// FindBy returns the first value of `list` whose key equals `goal`. Lists owning a key function, such as
// OrderedLinkedList, are always searched with their own key and `key` is ignored.
func FindBy[T any, K comparable](list Container[T], goal K, key KeyFunc[T, K]) (T, bool) {
	switch l := list.(type) {
	case keyedList[T]:
		if node := l.findKey(goal); node != nil {
			return node.Value, true
		}
	case Searcher[T, *Node[T]]:
		if node := l.Find(KeyEqual(key, goal)); node != nil {
			return node.Value, true
		}
	case Searcher[T, *DoublyNode[T]]:
		if node := l.Find(KeyEqual(key, goal)); node != nil {
			return node.Value, true
		}
	default:
		for value := range list.All() {
			if key(value) == goal {
				return value, true
			}
		}
	}
	var zero T
	return zero, false
}

// DeleteBy deletes the first value of `list` whose key equals `goal`. Like FindBy, lists owning a key function use
// their own key.
func DeleteBy[T any, K comparable](list Container[T], goal K, key KeyFunc[T, K]) error {
	switch l := list.(type) {
	case keyedList[T]:
		return l.deleteKey(goal)
	case Deleter[T]:
		return l.Delete(KeyEqual(key, goal))
	default:
		return fmt.Errorf("%w: delete on %T", ErrUnsupportedOperation, list)
	}
}

// Contains reports whether `item` is in `list`.
func Contains[T comparable](list Container[T], item T) bool {
	_, found := FindBy(list, item, Identity[T])
	return found
}

// Remove deletes the first occurrence of `item` from `list`.
func Remove[T comparable](list Container[T], item T) error {
	return DeleteBy(list, item, Identity[T])
}
