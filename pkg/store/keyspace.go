// The keyspace holds the named lists served by chain. Lists are not safe for concurrent use, so the keyspace
// serializes every access to them: keys are distributed across shards by their hash, and each shard owns one mutex
// guarding all of its lists. Goroutines working on keys of different shards never wait on each other.

package store

import (
	"errors"
	"flag"
	"fmt"
	"iter"
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/nobletooth/chain/pkg/lists"
	"github.com/nobletooth/chain/pkg/scan"
	"github.com/nobletooth/chain/pkg/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ErrKeyNotFound is returned when an operation needs an existing list but the key holds none.
var ErrKeyNotFound = errors.New("key was not found")

var (
	listKind = flag.String("list_kind", string(KindDoubleEnded),
		"The list variant backing every key: singly/ordered/double_ended/circular/doubly.")
	keyspaceShardCount = flag.Int("keyspace_shard_count", runtime.NumCPU(),
		"The number of lock shards in the keyspace; values below 1 fall back to a single shard.")

	keyspaceKeys = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "keyspace_keys",
		Help: "The number of non-empty lists currently held in the keyspace.",
	})
)

// shard is a set of lists guarded by a single lock.
type shard struct {
	mux   sync.Mutex
	lists map[string]lists.Container[string]
}

// Keyspace maps keys to lists of a single Kind. It's safe for concurrent use.
type Keyspace struct {
	kind   Kind
	shards []*shard
}

// NewKeyspace creates an empty keyspace whose lists are of the given `kind`, spread over `shardCount` shards.
func NewKeyspace(kind Kind, shardCount int) (*Keyspace, error) {
	if _, err := NewList(kind); err != nil {
		return nil, err
	}
	// Ensure there is at least one shard.
	if shardCount <= 0 {
		utils.RaiseInvariant("keyspace", "non_positive_shard_count",
			"Invalid shard count has been given to the keyspace.", "shardCount", shardCount)
		shardCount = 1
	}
	keyspace := &Keyspace{kind: kind, shards: make([]*shard, shardCount)}
	for i := range shardCount {
		keyspace.shards[i] = &shard{lists: make(map[string]lists.Container[string])}
	}
	return keyspace, nil
}

// NewKeyspaceFromFlags creates the keyspace configured by --list_kind and --keyspace_shard_count.
func NewKeyspaceFromFlags() (*Keyspace, error) {
	return NewKeyspace(Kind(strings.ToLower(*listKind)), *keyspaceShardCount)
}

// Kind returns the list variant backing the keys of this keyspace.
func (k *Keyspace) Kind() Kind {
	return k.kind
}

// getShard picks the shard owning `key`.
func (k *Keyspace) getShard(key string) *shard {
	return k.shards[xxhash.Sum64String(key)%uint64(len(k.shards))]
}

// Update runs `fn` on the list stored at `key` while holding the lock of its shard. A missing key gets a fresh empty
// list if `create` is set; otherwise `fn` isn't called and ErrKeyNotFound is returned. Lists that `fn` leaves empty
// are dropped from the keyspace. The error of `fn` is returned as is.
func (k *Keyspace) Update(key string, create bool, fn func(list lists.Container[string]) error) error {
	s := k.getShard(key)
	s.mux.Lock()
	defer s.mux.Unlock()

	list, exists := s.lists[key]
	if !exists {
		if !create {
			return fmt.Errorf("%w: %s", ErrKeyNotFound, key)
		}
		var err error
		if list, err = NewList(k.kind); err != nil {
			return err
		}
	}

	err := fn(list)
	switch empty := list.IsEmpty(); {
	case empty && exists:
		delete(s.lists, key)
		keyspaceKeys.Dec()
	case !empty && !exists:
		s.lists[key] = list
		keyspaceKeys.Inc()
	}
	return err
}

// View runs `fn` on the list stored at `key` while holding the lock of its shard. `fn` must not mutate the list.
func (k *Keyspace) View(key string, fn func(list lists.Container[string]) error) error {
	s := k.getShard(key)
	s.mux.Lock()
	defer s.mux.Unlock()

	list, exists := s.lists[key]
	if !exists {
		return fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	return fn(list)
}

// Delete drops the given keys and returns how many of them existed.
func (k *Keyspace) Delete(keys ...string) int {
	deleted := 0
	for _, key := range keys {
		s := k.getShard(key)
		s.mux.Lock()
		if _, exists := s.lists[key]; exists {
			delete(s.lists, key)
			keyspaceKeys.Dec()
			deleted++
		}
		s.mux.Unlock()
	}
	return deleted
}

// Len returns the number of keys in the keyspace.
func (k *Keyspace) Len() int {
	keys := 0
	for _, s := range k.shards {
		s.mux.Lock()
		keys += len(s.lists)
		s.mux.Unlock()
	}
	return keys
}

// Keys returns every key along with the length of its list, sorted by key. Each shard is snapshotted under its lock,
// so keys written while iterating may or may not show up.
func (k *Keyspace) Keys() iter.Seq[utils.Pair[string, int]] {
	snapshots := make([]iter.Seq[utils.Pair[string, int]], 0, len(k.shards))
	for _, s := range k.shards {
		s.mux.Lock()
		pairs := make([]utils.Pair[string, int], 0, len(s.lists))
		for key, list := range s.lists {
			pairs = append(pairs, utils.Pair[string, int]{Key: key, Value: list.Len()})
		}
		s.mux.Unlock()
		slices.SortFunc(pairs, func(a, b utils.Pair[string, int]) int { return strings.Compare(a.Key, b.Key) })
		snapshots = append(snapshots, slices.Values(pairs))
	}

	merged, err := scan.MultiHead(strings.Compare, snapshots)
	if err != nil {
		utils.RaiseInvariant("keyspace", "merge_keys_failed", "Failed to merge keys of the keyspace shards.",
			"error", err)
		return func(yield func(utils.Pair[string, int]) bool) {}
	}
	return merged
}
