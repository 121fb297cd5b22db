package store

import (
	"errors"
	"fmt"

	"github.com/nobletooth/chain/pkg/lists"
)

// ErrUnknownKind is returned for list kinds that don't name one of the list variants.
var ErrUnknownKind = errors.New("unknown list kind")

// Kind selects which list variant backs the keys of a keyspace.
type Kind string

const (
	KindSingly      Kind = "singly"
	KindOrdered     Kind = "ordered"
	KindDoubleEnded Kind = "double_ended"
	KindCircular    Kind = "circular"
	KindDoubly      Kind = "doubly"
)

// AllKinds lists every supported kind.
var AllKinds = []Kind{KindSingly, KindOrdered, KindDoubleEnded, KindCircular, KindDoubly}

// NewList creates an empty list of the given kind. Ordered lists sort their values lexicographically.
func NewList(kind Kind) (lists.Container[string], error) {
	switch kind {
	case KindSingly:
		return lists.NewSinglyLinkedList[string](), nil
	case KindOrdered:
		return lists.NewOrderedLinkedListOf[string](), nil
	case KindDoubleEnded:
		return lists.NewDoubleEndedLinkedList[string](), nil
	case KindCircular:
		return lists.NewCircularLinkedList[string](), nil
	case KindDoubly:
		return lists.NewDoublyLinkedList[string](), nil
	default:
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownKind, kind)
	}
}
