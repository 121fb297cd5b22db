package scan

import (
	"cmp"
	"iter"
	"slices"
	"testing"

	"github.com/nobletooth/chain/pkg/utils"
	"github.com/stretchr/testify/assert"
)

func TestMultiHead(t *testing.T) {
	s1 := slices.Values([]utils.Pair[string, int]{{Key: "k1", Value: 11}, {Key: "k2", Value: 21}, {Key: "k3", Value: 31}, {Key: "k4", Value: 41}})
	s2 := slices.Values([]utils.Pair[string, int]{{Key: "k1", Value: 12}, {Key: "k2", Value: 22}, {Key: "k5", Value: 52}, {Key: "k6", Value: 62}})
	s3 := slices.Values([]utils.Pair[string, int]{{Key: "k1", Value: 13}, {Key: "k2", Value: 23}, {Key: "k4", Value: 43}, {Key: "k5", Value: 53}})
	s4 := slices.Values([]utils.Pair[string, int]{{Key: "k3", Value: 34}})
	merged, err := MultiHead(cmp.Compare[string], []iter.Seq[utils.Pair[string, int]]{s1, s2, s3, s4})
	assert.NoError(t, err)

	expected := []utils.Pair[string, int]{{Key: "k1", Value: 11}, {Key: "k2", Value: 21}, {Key: "k3", Value: 31}, {Key: "k4", Value: 41}, {Key: "k5", Value: 52}, {Key: "k6", Value: 62}}
	assert.Equal(t, expected, slices.Collect(merged))
	// Iterating again starts over.
	assert.Equal(t, expected, slices.Collect(merged))
}

func TestMultiHead_EarlyStop(t *testing.T) {
	s1 := slices.Values([]utils.Pair[int, string]{{Key: 1, Value: "a"}, {Key: 3, Value: "c"}})
	s2 := slices.Values([]utils.Pair[int, string]{{Key: 2, Value: "b"}, {Key: 4, Value: "d"}})
	merged, err := MultiHead(cmp.Compare[int], []iter.Seq[utils.Pair[int, string]]{s1, s2})
	assert.NoError(t, err)

	var got []int
	for pair := range merged {
		got = append(got, pair.Key)
		if len(got) == 3 {
			break
		}
	}
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestMultiHead_EmptySequences(t *testing.T) {
	empty := slices.Values([]utils.Pair[int, int]{})
	merged, err := MultiHead(cmp.Compare[int], []iter.Seq[utils.Pair[int, int]]{empty, empty})
	assert.NoError(t, err)
	assert.Empty(t, slices.Collect(merged))
}

func TestMultiHead_InvalidArguments(t *testing.T) {
	_, err := MultiHead[iter.Seq[utils.Pair[int, int]]](nil, []iter.Seq[utils.Pair[int, int]]{})
	assert.Error(t, err)
	_, err = MultiHead(cmp.Compare[int], []iter.Seq[utils.Pair[int, int]]{})
	assert.Error(t, err)
}
