package method

import (
	"encoding/binary"
	"fmt"
	"slices"

	"github.com/minio/highwayhash"
)

// Grouping holds items sharing a key, in first-seen order
type Grouping[K comparable, T any] struct {
	Key   K
	Items []T
}

// GroupBy groups items by key and returns groups sorted with compare
func GroupBy[T any, K comparable](items []T, key func(T) (K, error), compare func(a, b K) int) ([]Grouping[K, T], error) {
	index := make(map[K]int)
	var result []Grouping[K, T]
	for i, item := range items {
		k, err := key(item)
		if err != nil {
			return nil, fmt.Errorf("failed to compute key for item %d: %w", i, err)
		}
		pos, ok := index[k]
		if !ok {
			pos = len(result)
			index[k] = pos
			result = append(result, Grouping[K, T]{Key: k})
		}
		result[pos].Items = append(result[pos].Items, item)
	}
	slices.SortStableFunc(result, func(a, b Grouping[K, T]) int {
		return compare(a.Key, b.Key)
	})
	return result, nil
}

var hashKey = []byte("methodoc-group-location-hash-key")

// Group represents implementations sharing a defining location
type Group struct {
	Location Location
	Records  []*Record
}

// First returns the representative record
func (g *Group) First() *Record {
	if len(g.Records) == 0 {
		return nil
	}
	return g.Records[0]
}

// ID returns a stable fingerprint of the group location, usable as a document anchor
func (g *Group) ID() string {
	data := make([]byte, 0, len(g.Location.File)+8)
	data = append(data, g.Location.File...)
	data = binary.BigEndian.AppendUint64(data, uint64(g.Location.Line))
	return fmt.Sprintf("%016x", highwayhash.Sum64(data, hashKey))
}
