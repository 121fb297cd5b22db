// Clients list keys with a glob pattern (`KEYS tasks:*`); the following module filters a key stream by such a pattern.

package scan

import (
	"iter"

	"github.com/nobletooth/chain/pkg/utils"
	"v.io/v23/glob"
)

// MatchGlob keeps the pairs of `pairs` whose key matches the glob `pattern`. An invalid pattern matches nothing.
func MatchGlob[V any](pattern string, pairs iter.Seq[utils.Pair[string, V]]) iter.Seq[utils.Pair[string, V]] {
	parsedPattern, err := glob.Parse(pattern)
	if err != nil {
		return func(yield func(utils.Pair[string, V]) bool) {}
	}
	return func(yield func(utils.Pair[string, V]) bool) {
		for pair := range pairs {
			if parsedPattern.Head().Match(pair.Key) {
				if !yield(pair) {
					return
				}
			}
		}
	}
}
