package method

import (
	"fmt"
	"strings"
)

// SubtypeFn reports whether sub can be passed where super is expected
type SubtypeFn func(sub, super string) bool

// Table is an in-memory Source, suitable for adapting a host runtime registry
type Table struct {
	records map[string][]*Record
	subtype SubtypeFn
}

// TableOption configures a Table
type TableOption func(t *Table)

// WithSubtype sets the relation used to resolve shapes against implementations
func WithSubtype(fn SubtypeFn) TableOption {
	return func(t *Table) {
		t.subtype = fn
	}
}

// NewTable creates a table indexed by callable name, records keep their insertion order
func NewTable(records []*Record, opts ...TableOption) *Table {
	ret := &Table{records: make(map[string][]*Record), subtype: DefaultSubtype}
	for _, opt := range opts {
		opt(ret)
	}
	for _, record := range records {
		if record == nil {
			continue
		}
		ret.records[record.Name] = append(ret.records[record.Name], record)
	}
	return ret
}

// DefaultSubtype accepts identical types and anything passed to an empty interface
func DefaultSubtype(sub, super string) bool {
	if sub == super {
		return true
	}
	switch super {
	case "any", "interface{}":
		return true
	}
	return false
}

// All returns every implementation of callable
func (t *Table) All(callable string) ([]*Record, error) {
	records, ok := t.records[callable]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCallable, callable)
	}
	return append([]*Record(nil), records...), nil
}

// Matching returns implementations whose arguments accept shape
func (t *Table) Matching(callable string, shape Signature) ([]*Record, error) {
	records, err := t.All(callable)
	if err != nil {
		return nil, err
	}
	var result []*Record
	for _, record := range records {
		if accepts(record.Signature.Arguments(), shape, t.subtype) {
			result = append(result, record)
		}
	}
	return result, nil
}

// accepts reports whether params can be called with shape; a trailing "...T" parameter
// absorbs zero or more T arguments
func accepts(params, shape Signature, subtype SubtypeFn) bool {
	variadic := len(params) > 0 && strings.HasPrefix(params[len(params)-1], "...")
	fixed := params
	if variadic {
		fixed = params[:len(params)-1]
		if len(shape) < len(fixed) {
			return false
		}
	} else if len(shape) != len(fixed) {
		return false
	}
	for i, param := range fixed {
		if !subtype(shape[i], param) {
			return false
		}
	}
	if !variadic {
		return true
	}
	last := params[len(params)-1]
	rest := shape[len(fixed):]
	if len(rest) == 1 && rest[0] == last {
		return true
	}
	elem := strings.TrimPrefix(last, "...")
	for _, arg := range rest {
		if !subtype(arg, elem) {
			return false
		}
	}
	return true
}
