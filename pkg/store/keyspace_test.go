package store

import (
	"fmt"
	"slices"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nobletooth/chain/pkg/lists"
	"github.com/nobletooth/chain/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKeyspace(t *testing.T, kind Kind) *Keyspace {
	t.Helper()
	keyspace, err := NewKeyspace(kind, 4 /*shardCount*/)
	require.NoError(t, err)
	return keyspace
}

// values returns the values of the list at `key` or nil if it doesn't exist.
func values(t *testing.T, keyspace *Keyspace, key string) []string {
	t.Helper()
	var got []string
	_ = keyspace.View(key, func(list lists.Container[string]) error {
		got = slices.Collect(list.All())
		return nil
	})
	return got
}

func TestNewKeyspace(t *testing.T) {
	_, err := NewKeyspace("unknown", 1 /*shardCount*/)
	assert.ErrorIs(t, err, ErrUnknownKind)

	keyspace, err := NewKeyspace(KindCircular, 8 /*shardCount*/)
	require.NoError(t, err)
	assert.Equal(t, KindCircular, keyspace.Kind())
	assert.Len(t, keyspace.shards, 8)
	assert.Zero(t, keyspace.Len())
}

func TestNewKeyspace_NonPositiveShards(t *testing.T) {
	testMode := utils.IsTestMode
	utils.IsTestMode = false
	t.Cleanup(func() { utils.IsTestMode = testMode })

	keyspace, err := NewKeyspace(KindSingly, 0 /*shardCount*/)
	require.NoError(t, err)
	assert.Len(t, keyspace.shards, 1)
}

func TestNewKeyspaceFromFlags(t *testing.T) {
	utils.SetTestFlag(t, "list_kind", "DOUBLY")
	utils.SetTestFlag(t, "keyspace_shard_count", "3")
	keyspace, err := NewKeyspaceFromFlags()
	require.NoError(t, err)
	assert.Equal(t, KindDoubly, keyspace.Kind())
	assert.Len(t, keyspace.shards, 3)

	utils.SetTestFlag(t, "list_kind", "skip")
	_, err = NewKeyspaceFromFlags()
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestKeyspace_Update(t *testing.T) {
	keyspace := newTestKeyspace(t, KindDoubleEnded)

	err := keyspace.Update("missing", false /*create*/, func(lists.Container[string]) error {
		t.Fatal("must not be called for a missing key")
		return nil
	})
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, keyspace.Update("fruits", true /*create*/, func(list lists.Container[string]) error {
		return lists.Append(list, "apple")
	}))
	require.NoError(t, keyspace.Update("fruits", false /*create*/, func(list lists.Container[string]) error {
		return lists.Append(list, "pear")
	}))
	assert.Equal(t, []string{"apple", "pear"}, values(t, keyspace, "fruits"))
	assert.Equal(t, 1, keyspace.Len())
}

func TestKeyspace_UpdateDropsEmptyLists(t *testing.T) {
	keyspace := newTestKeyspace(t, KindSingly)

	// A created list that stays empty is never stored.
	require.NoError(t, keyspace.Update("empty", true /*create*/, func(lists.Container[string]) error { return nil }))
	assert.Zero(t, keyspace.Len())

	require.NoError(t, keyspace.Update("key", true /*create*/, func(list lists.Container[string]) error {
		list.Insert("v")
		return nil
	}))
	assert.Equal(t, 1, keyspace.Len())

	require.NoError(t, keyspace.Update("key", false /*create*/, func(list lists.Container[string]) error {
		return lists.Remove(list, "v")
	}))
	assert.Zero(t, keyspace.Len())
	assert.ErrorIs(t, keyspace.View("key", func(lists.Container[string]) error { return nil }), ErrKeyNotFound)
}

func TestKeyspace_UpdateReturnsError(t *testing.T) {
	keyspace := newTestKeyspace(t, KindOrdered)
	err := keyspace.Update("key", true /*create*/, func(list lists.Container[string]) error {
		return lists.Reverse(list)
	})
	assert.ErrorIs(t, err, lists.ErrUnsupportedOperation)
	assert.Zero(t, keyspace.Len())
}

func TestKeyspace_Delete(t *testing.T) {
	keyspace := newTestKeyspace(t, KindCircular)
	for _, key := range []string{"a", "b", "c"} {
		require.NoError(t, keyspace.Update(key, true /*create*/, func(list lists.Container[string]) error {
			list.Insert(key)
			return nil
		}))
	}
	assert.Equal(t, 2, keyspace.Delete("a", "c", "z"))
	assert.Equal(t, 1, keyspace.Len())
	assert.Equal(t, []string{"b"}, values(t, keyspace, "b"))
	assert.Zero(t, keyspace.Delete("a"))
}

func TestKeyspace_Keys(t *testing.T) {
	keyspace := newTestKeyspace(t, KindDoubly)
	for i, key := range []string{"delta", "alpha", "charlie", "bravo"} {
		require.NoError(t, keyspace.Update(key, true /*create*/, func(list lists.Container[string]) error {
			for j := range i + 1 {
				list.Insert(fmt.Sprint(j))
			}
			return nil
		}))
	}

	got := slices.Collect(keyspace.Keys())
	want := []utils.Pair[string, int]{
		{Key: "alpha", Value: 2}, {Key: "bravo", Value: 4}, {Key: "charlie", Value: 3}, {Key: "delta", Value: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected keys (-want +got):\n%s", diff)
	}

	assert.Empty(t, slices.Collect(newTestKeyspace(t, KindSingly).Keys()))
}

func TestKeyspace_Concurrent(t *testing.T) {
	keyspace := newTestKeyspace(t, KindDoubleEnded)
	const writers, pushes = 8, 100

	var wg sync.WaitGroup
	for writer := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for push := range pushes {
				key := fmt.Sprintf("key-%d", push%5)
				err := keyspace.Update(key, true /*create*/, func(list lists.Container[string]) error {
					return lists.Append(list, fmt.Sprintf("%d-%d", writer, push))
				})
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	total := 0
	for pair := range keyspace.Keys() {
		total += pair.Value
	}
	assert.Equal(t, writers*pushes, total)
	assert.Equal(t, 5, keyspace.Len())
}
