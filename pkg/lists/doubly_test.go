package lists

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertLinks checks that every back reference points at the node's predecessor.
func assertLinks[T any](t *testing.T, list *DoublyLinkedList[T]) {
	t.Helper()
	if head := list.Head(); head != nil {
		assert.Nil(t, head.Prev())
	}
	for node := list.Head(); node != nil && node.Next() != nil; node = node.Next() {
		assert.Same(t, node, node.Next().Prev())
	}
	// Walking backward yields the forward order reversed.
	backward := slices.Collect(list.Backward())
	slices.Reverse(backward)
	assert.Equal(t, slices.Collect(list.All()), backward)
}

func doublyOf[T any](values ...T) *DoublyLinkedList[T] {
	list := NewDoublyLinkedList[T]()
	for _, value := range values {
		list.Append(value)
	}
	return list
}

func TestDoublyLinkedList_InsertAndAppend(t *testing.T) {
	list := NewDoublyLinkedList[int]()
	assert.True(t, list.IsEmpty())
	list.Append(2)
	list.Insert(1)
	list.Append(3)
	assert.Equal(t, []int{1, 2, 3}, slices.Collect(list.All()))
	assert.Equal(t, []int{3, 2, 1}, slices.Collect(list.Backward()))
	assert.Equal(t, "1 <-> 2 <-> 3", list.String())
	assertLinks(t, list)
}

func TestDoublyLinkedList_Delete(t *testing.T) {
	t.Run("head", func(t *testing.T) {
		list := doublyOf(1, 2, 3)
		require.NoError(t, list.Delete(Equal(1)))
		assert.Equal(t, 2, list.Head().Value)
		assert.Nil(t, list.Head().Prev())
		assert.Equal(t, []int{2, 3}, slices.Collect(list.All()))
		assertLinks(t, list)
	})

	t.Run("middle", func(t *testing.T) {
		list := doublyOf(1, 2, 3)
		node := list.Find(Equal(2))
		require.NoError(t, list.Delete(Equal(2)))
		assert.Equal(t, []int{1, 3}, slices.Collect(list.All()))
		assertLinks(t, list)
		// The removed node is detached.
		assert.Nil(t, node.Next())
		assert.Nil(t, node.Prev())
	})

	t.Run("last", func(t *testing.T) {
		list := doublyOf(1, 2, 3)
		require.NoError(t, list.Delete(Equal(3)))
		assert.Equal(t, []int{1, 2}, slices.Collect(list.All()))
		assertLinks(t, list)
	})

	t.Run("sole", func(t *testing.T) {
		list := doublyOf(1)
		require.NoError(t, list.Delete(Equal(1)))
		assert.True(t, list.IsEmpty())
		assert.ErrorIs(t, list.Delete(Equal(1)), ErrEmptyList)
	})

	t.Run("not_found", func(t *testing.T) {
		list := doublyOf(1, 2)
		assert.ErrorIs(t, list.Delete(Equal(5)), ErrKeyNotFound)
		assert.Equal(t, []int{1, 2}, slices.Collect(list.All()))
		assertLinks(t, list)
	})
}

func TestDoublyLinkedList_InsertAt(t *testing.T) {
	list := NewDoublyLinkedList[string]()
	assert.ErrorIs(t, list.InsertAt("x", Equal("a")), ErrEmptyList)

	list = doublyOf("a", "c")
	require.NoError(t, list.InsertAt("b", Equal("a")))
	require.NoError(t, list.InsertAt("d", Equal("c")))
	assert.Equal(t, []string{"a", "b", "c", "d"}, slices.Collect(list.All()))
	assertLinks(t, list)
	assert.ErrorIs(t, list.InsertAt("z", Equal("y")), ErrKeyNotFound)
}

func TestDoublyLinkedList_Reverse(t *testing.T) {
	list := NewDoublyLinkedList[int]()
	assert.ErrorIs(t, list.Reverse(), ErrEmptyList)

	list = doublyOf(1, 2, 3, 4)
	require.NoError(t, list.Reverse())
	assert.Equal(t, []int{4, 3, 2, 1}, slices.Collect(list.All()))
	assertLinks(t, list)

	require.NoError(t, list.Reverse())
	assert.Equal(t, []int{1, 2, 3, 4}, slices.Collect(list.All()))
	assertLinks(t, list)
}

func TestDoublyLinkedList_Find(t *testing.T) {
	list := doublyOf("x", "y", "z")
	node := list.Find(Equal("y"))
	require.NotNil(t, node)
	assert.Equal(t, "x", node.Prev().Value)
	assert.Equal(t, "z", node.Next().Value)
	assert.Nil(t, list.Find(Equal("w")))
}

func TestDoublyLinkedList_Clear(t *testing.T) {
	list := doublyOf(1, 2, 3)
	assert.Equal(t, 3, list.Len())
	list.Clear()
	assert.Zero(t, list.Len())
	assert.Empty(t, slices.Collect(list.Backward()))
}

func TestDoublyLinkedList_DeleteHead(t *testing.T) {
	list := NewDoublyLinkedList[int]()
	list.Insert(1)
	list.Insert(2)
	assert.Equal(t, 2, list.Head().Value)
	require.NoError(t, list.Delete(Equal(2)))
	assert.Equal(t, 1, list.Head().Value)
	assert.Nil(t, list.Head().Prev())
}
