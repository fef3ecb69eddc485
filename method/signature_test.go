package method_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/methodoc/method"
)

func TestClass_Expand(t *testing.T) {
	testCases := []struct {
		description string
		class       method.Class
		expect      []method.Signature
	}{
		{
			description: "match all expands to nothing",
			class:       method.All(),
			expect:      nil,
		},
		{
			description: "single shape",
			class:       method.Of("int"),
			expect:      []method.Signature{{"int"}},
		},
		{
			description: "union of shapes",
			class:       method.Union(method.Of("int"), method.Of("string", "bool")),
			expect:      []method.Signature{{"int"}, {"string", "bool"}},
		},
		{
			description: "nested union flattens",
			class:       method.Union(method.Union(method.Of("int"), method.Of("float64")), method.Of("string")),
			expect:      []method.Signature{{"int"}, {"float64"}, {"string"}},
		},
		{
			description: "empty union is match all",
			class:       method.Union(),
			expect:      nil,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			assert.EqualValues(t, testCase.expect, testCase.class.Expand())
		})
	}
}

func TestClass_Matches(t *testing.T) {
	union := method.Union(method.Of("int"), method.Of("string"))
	testCases := []struct {
		description string
		class       method.Class
		candidate   method.Signature
		exact       bool
		expect      bool
	}{
		{description: "exact member", class: union, candidate: method.Signature{"string"}, exact: true, expect: true},
		{description: "exact non member", class: union, candidate: method.Signature{"bool"}, exact: true, expect: false},
		{description: "exact arity differs", class: union, candidate: method.Signature{"int", "int"}, exact: true, expect: false},
		{description: "loose accepts any shape", class: union, candidate: method.Signature{"bool"}, exact: false, expect: true},
		{description: "match all with exact", class: method.All(), candidate: method.Signature{"bool"}, exact: true, expect: true},
		{description: "empty candidate vs empty shape", class: method.Of(), candidate: method.Signature{}, exact: true, expect: true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			assert.Equal(t, testCase.expect, testCase.class.Matches(testCase.candidate, testCase.exact))
		})
	}
}

func TestSignature_Arguments(t *testing.T) {
	assert.Equal(t, method.Signature{"int", "string"}, method.Signature{"*Stack", "int", "string"}.Arguments())
	assert.Empty(t, method.Signature{}.Arguments())
	assert.Equal(t, "(int, string)", method.Signature{"int", "string"}.String())
}
