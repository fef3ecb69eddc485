package method_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/methodoc/method"
)

func groupingFixture() *method.Table {
	return method.NewTable([]*method.Record{
		{Name: "f", File: "mod/a.src", Line: 10, Module: "M", Signature: method.Signature{"func", "int"}},
		{Name: "f", File: "mod/b.src", Line: 1, Module: "N", Signature: method.Signature{"func", "int"}},
		{Name: "f", File: "mod/a.src", Line: 3, Module: "M", Signature: method.Signature{"func", "string"}},
		{Name: "f", File: "mod/a.src", Line: 3, Module: "M", Signature: method.Signature{"func", "bool"}},
		{Name: "f", File: "mod/c.src", Line: 7, Module: "M", Signature: method.Signature{"func", "float64"}},
	})
}

func locations(groups []*method.Group) []method.Location {
	var result []method.Location
	for _, group := range groups {
		result = append(result, group.Location)
	}
	return result
}

func TestGroups_ModuleFilter(t *testing.T) {
	groups, err := method.Groups(groupingFixture(), "f", method.All(), "M", false)
	require.NoError(t, err)
	assert.Equal(t, []method.Location{
		{File: "mod/a.src", Line: 3},
		{File: "mod/a.src", Line: 10},
		{File: "mod/c.src", Line: 7},
	}, locations(groups))
	require.Len(t, groups[0].Records, 2)
	assert.Equal(t, method.Signature{"func", "string"}, groups[0].Records[0].Signature)
	assert.Equal(t, method.Signature{"func", "bool"}, groups[0].Records[1].Signature)
	for _, group := range groups {
		for _, record := range group.Records {
			assert.Equal(t, "M", record.Module)
		}
	}
}

func TestGroups_Exact(t *testing.T) {
	testCases := []struct {
		description string
		class       method.Class
		exact       bool
		module      string
		expect      []method.Location
		expectSizes []int
	}{
		{
			description: "exact single",
			class:       method.Of("int"),
			exact:       true,
			module:      "M",
			expect:      []method.Location{{File: "mod/a.src", Line: 10}},
			expectSizes: []int{1},
		},
		{
			description: "exact union narrows shared location",
			class:       method.Union(method.Of("string"), method.Of("float64")),
			exact:       true,
			module:      "M",
			expect:      []method.Location{{File: "mod/a.src", Line: 3}, {File: "mod/c.src", Line: 7}},
			expectSizes: []int{1, 1},
		},
		{
			description: "other module",
			class:       method.Of("int"),
			exact:       true,
			module:      "N",
			expect:      []method.Location{{File: "mod/b.src", Line: 1}},
			expectSizes: []int{1},
		},
		{
			description: "unknown module yields nothing",
			class:       method.All(),
			exact:       false,
			module:      "X",
			expect:      nil,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			groups, err := method.Groups(groupingFixture(), "f", testCase.class, testCase.module, testCase.exact)
			require.NoError(t, err)
			assert.NotNil(t, groups)
			assert.Equal(t, testCase.expect, locations(groups))
			for i, group := range groups {
				assert.Len(t, group.Records, testCase.expectSizes[i])
				for _, record := range group.Records {
					assert.Equal(t, testCase.module, record.Module)
					if testCase.exact {
						assert.True(t, testCase.class.Matches(record.Signature.Arguments(), true))
					}
				}
			}
		})
	}
}

func TestGroups_Invariants(t *testing.T) {
	table := groupingFixture()
	classes := []method.Class{
		method.All(),
		method.Of("int"),
		method.Union(method.Of("int"), method.Of("string"), method.Of("bool")),
	}
	for _, class := range classes {
		for _, exact := range []bool{true, false} {
			groups, err := method.Groups(table, "f", class, "M", exact)
			require.NoError(t, err)
			seen := map[method.Location]bool{}
			for i, group := range groups {
				assert.NotEmpty(t, group.Records)
				assert.False(t, seen[group.Location], "duplicate group %v", group.Location)
				seen[group.Location] = true
				if i > 0 {
					assert.Negative(t, groups[i-1].Location.Compare(group.Location))
				}
				for _, record := range group.Records {
					assert.Equal(t, group.Location, record.Location())
				}
			}
			again, err := method.Groups(table, "f", class, "M", exact)
			require.NoError(t, err)
			assert.Equal(t, groups, again)
		}
	}
}

func TestGroups_UnknownCallable(t *testing.T) {
	_, err := method.Groups(groupingFixture(), "g", method.All(), "M", false)
	assert.ErrorIs(t, err, method.ErrUnknownCallable)
}

func TestGroups_NilRecord(t *testing.T) {
	src := &staticSource{records: []*method.Record{nil}}
	_, err := method.Groups(src, "f", method.All(), "M", false)
	assert.Error(t, err)
}

func TestCatalog_Groups(t *testing.T) {
	buffer := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buffer, &slog.HandlerOptions{Level: slog.LevelDebug}))
	catalog := method.NewCatalog(groupingFixture(), method.WithLogger(logger))
	groups, err := catalog.Groups("f", method.All(), "N", false)
	require.NoError(t, err)
	assert.Len(t, groups, 1)
	assert.Contains(t, buffer.String(), "callable=f")
	assert.Contains(t, buffer.String(), "groups=1")
}

type staticSource struct {
	records []*method.Record
}

func (s *staticSource) All(callable string) ([]*method.Record, error) {
	return s.records, nil
}

func (s *staticSource) Matching(callable string, shape method.Signature) ([]*method.Record, error) {
	return s.records, nil
}
