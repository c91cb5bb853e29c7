package ijson

import (
	"io"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drainItems(t *testing.T, it *ItemIterator) ([]interface{}, error) {
	t.Helper()
	var out []interface{}
	for {
		v, err := it.Next()
		if err != nil {
			return out, err
		}
		out = append(out, v)
	}
}

func TestItemsTopLevelArray(t *testing.T) {
	it := Items(strings.NewReader(`[1,2,3]`), "item")
	vals, err := drainItems(t, it)
	require.ErrorIs(t, err, io.EOF)
	require.Len(t, vals, 3)
	for i, v := range vals {
		n, ok := v.(*big.Int)
		require.True(t, ok)
		assert.Equal(t, int64(i+1), n.Int64())
	}
}

func TestItemsNestedPrefix(t *testing.T) {
	it := Items(strings.NewReader(`{"docs":[{"a":1},{"a":2}]}`), "docs.item.a")
	vals, err := drainItems(t, it)
	require.ErrorIs(t, err, io.EOF)
	require.Len(t, vals, 2)
}

func TestItemsMaterializesWholeSubtree(t *testing.T) {
	it := Items(strings.NewReader(`{"a":{"x":1,"y":[1,2]},"b":1}`), "a")
	vals, err := drainItems(t, it)
	require.ErrorIs(t, err, io.EOF)
	require.Len(t, vals, 1)

	m, ok := vals[0].(*OrderedMap)
	require.True(t, ok)
	assert.Equal(t, []string{"x", "y"}, m.Keys())
}

func TestItemsDoesNotReenterMatchedSubtree(t *testing.T) {
	// A nested occurrence of the same key inside an already-matched
	// "a" subtree must not be yielded again as a separate item.
	it := Items(strings.NewReader(`{"a":{"a":1}}`), "a")
	vals, err := drainItems(t, it)
	require.ErrorIs(t, err, io.EOF)
	require.Len(t, vals, 1)
}

func TestKVItemsYieldsDirectChildren(t *testing.T) {
	kvit := KVItems(strings.NewReader(`{"a":1,"b":[1,2],"c":"x"}`), "")
	var got []KV
	for {
		kv, err := kvit.Next()
		if err != nil {
			require.ErrorIs(t, err, io.EOF)
			break
		}
		got = append(got, kv)
	}

	require.Len(t, got, 3)
	assert.Equal(t, "a", got[0].Key)
	assert.Equal(t, "b", got[1].Key)
	arr, ok := got[1].Value.([]interface{})
	require.True(t, ok)
	assert.Len(t, arr, 2)
	assert.Equal(t, "c", got[2].Key)
	assert.Equal(t, "x", got[2].Value)
}

func TestKVItemsSkipsNonMapOccurrences(t *testing.T) {
	kvit := KVItems(strings.NewReader(`{"m":[1,2,3]}`), "m")
	_, err := kvit.Next()
	require.ErrorIs(t, err, io.EOF)
}
