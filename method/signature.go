package method

import (
	"slices"
	"strings"
)

// Signature represents an ordered list of parameter types
type Signature []string

// Arguments returns the signature with the callable's leading slot stripped
func (s Signature) Arguments() Signature {
	if len(s) == 0 {
		return s
	}
	return s[1:]
}

// Equal reports structural equality
func (s Signature) Equal(other Signature) bool {
	return slices.Equal(s, other)
}

func (s Signature) String() string {
	return "(" + strings.Join(s, ", ") + ")"
}

// ClassKind identifies the Class variant
type ClassKind int

const (
	// MatchAll matches every implementation regardless of shape
	MatchAll ClassKind = iota
	// Single holds one shape
	Single
	// AnyOf holds a union of alternative shapes
	AnyOf
)

func (k ClassKind) String() string {
	switch k {
	case Single:
		return "single"
	case AnyOf:
		return "anyOf"
	default:
		return "matchAll"
	}
}

// Class represents the set of shapes a query is willing to match
type Class struct {
	Kind   ClassKind
	Shapes []Signature
}

// All returns the match everything class
func All() Class {
	return Class{Kind: MatchAll}
}

// Of returns a single shape class
func Of(shape ...string) Class {
	return Class{Kind: Single, Shapes: []Signature{Signature(shape)}}
}

// Union returns a class matching any of the supplied classes; nested unions are flattened,
// an empty union or one containing MatchAll is MatchAll
func Union(classes ...Class) Class {
	var shapes []Signature
	for _, class := range classes {
		if class.Kind == MatchAll {
			return All()
		}
		shapes = append(shapes, class.Shapes...)
	}
	switch len(shapes) {
	case 0:
		return All()
	case 1:
		return Class{Kind: Single, Shapes: shapes}
	}
	return Class{Kind: AnyOf, Shapes: shapes}
}

// IsAll reports whether class matches everything
func (c Class) IsAll() bool {
	return c.Kind == MatchAll
}

// Expand returns the atomic shapes of the class
func (c Class) Expand() []Signature {
	if c.Kind == MatchAll {
		return nil
	}
	return c.Shapes
}

// Matches reports whether candidate belongs to the class. Exact matching requires structural
// equality with one of the expanded shapes; loose matching accepts every candidate and leaves
// inclusion to the module filter.
func (c Class) Matches(candidate Signature, exact bool) bool {
	if !exact || c.Kind == MatchAll {
		return true
	}
	for _, shape := range c.Expand() {
		if shape.Equal(candidate) {
			return true
		}
	}
	return false
}

func (c Class) String() string {
	switch c.Kind {
	case MatchAll:
		return "*"
	}
	parts := make([]string, 0, len(c.Shapes))
	for _, shape := range c.Shapes {
		parts = append(parts, shape.String())
	}
	return strings.Join(parts, " | ")
}
