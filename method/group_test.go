package method_test

import (
	"cmp"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/methodoc/method"
)

func TestGroupBy(t *testing.T) {
	words := []string{"pear", "apple", "plum", "avocado", "fig", "peach"}
	groups, err := method.GroupBy(words, func(s string) (byte, error) {
		return s[0], nil
	}, cmp.Compare[byte])
	require.NoError(t, err)
	require.Len(t, groups, 3)
	assert.Equal(t, byte('a'), groups[0].Key)
	assert.Equal(t, []string{"apple", "avocado"}, groups[0].Items)
	assert.Equal(t, byte('f'), groups[1].Key)
	assert.Equal(t, []string{"fig"}, groups[1].Items)
	assert.Equal(t, byte('p'), groups[2].Key)
	assert.Equal(t, []string{"pear", "plum", "peach"}, groups[2].Items)
}

func TestGroupBy_KeyError(t *testing.T) {
	errUndefined := errors.New("undefined key")
	_, err := method.GroupBy([]int{1, 2, -1}, func(i int) (int, error) {
		if i < 0 {
			return 0, errUndefined
		}
		return i, nil
	}, cmp.Compare[int])
	assert.ErrorIs(t, err, errUndefined)
}

func TestGroupBy_Empty(t *testing.T) {
	groups, err := method.GroupBy([]int{}, func(i int) (int, error) { return i, nil }, cmp.Compare[int])
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestGroup_ID(t *testing.T) {
	a := &method.Group{Location: method.Location{File: "mod/a.go", Line: 3}}
	b := &method.Group{Location: method.Location{File: "mod/a.go", Line: 3}}
	c := &method.Group{Location: method.Location{File: "mod/a.go", Line: 4}}
	assert.Equal(t, a.ID(), b.ID())
	assert.NotEqual(t, a.ID(), c.ID())
	assert.Len(t, a.ID(), 16)
	assert.Nil(t, a.First())
}
