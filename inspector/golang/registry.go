package golang

import (
	"fmt"
	"go/token"
	"go/types"

	"github.com/viant/methodoc/method"
)

type implementation struct {
	record    *method.Record
	fset      *token.FileSet
	pkg       *types.Package
	signature *types.Signature
}

// Registry is a method.Source over type-checked Go declarations; callables are identified
// by function or method name
type Registry struct {
	index map[string][]*implementation
	names []string
}

func newRegistry() *Registry {
	return &Registry{index: make(map[string][]*implementation)}
}

func (r *Registry) add(implementations []*implementation) {
	for _, impl := range implementations {
		name := impl.record.Name
		if _, ok := r.index[name]; !ok {
			r.names = append(r.names, name)
		}
		r.index[name] = append(r.index[name], impl)
	}
}

// Merge adds the implementations of other registries; merging r into itself is a no-op
func (r *Registry) Merge(others ...*Registry) *Registry {
	for _, other := range others {
		if other == nil || other == r {
			continue
		}
		for _, name := range other.names {
			r.add(other.index[name])
		}
	}
	return r
}

// Callables returns the known callable names in first-seen order
func (r *Registry) Callables() []string {
	return append([]string(nil), r.names...)
}

// All returns every implementation of callable
func (r *Registry) All(callable string) ([]*method.Record, error) {
	implementations, ok := r.index[callable]
	if !ok {
		return nil, fmt.Errorf("%w: %s", method.ErrUnknownCallable, callable)
	}
	result := make([]*method.Record, 0, len(implementations))
	for _, impl := range implementations {
		result = append(result, impl.record)
	}
	return result, nil
}

// Matching returns implementations of callable that can be called with arguments of the shape types
func (r *Registry) Matching(callable string, shape method.Signature) ([]*method.Record, error) {
	implementations, ok := r.index[callable]
	if !ok {
		return nil, fmt.Errorf("%w: %s", method.ErrUnknownCallable, callable)
	}
	result := []*method.Record{}
	for _, impl := range implementations {
		if impl.accepts(shape) {
			result = append(result, impl.record)
		}
	}
	return result, nil
}

// accepts reports whether a call with argument types shape resolves to the implementation
func (i *implementation) accepts(shape method.Signature) bool {
	params := i.signature.Params()
	arguments := i.record.Signature.Arguments()
	fixed := params.Len()
	if i.signature.Variadic() {
		fixed--
		if len(shape) < fixed {
			return false
		}
	} else if len(shape) != fixed {
		return false
	}
	for k := 0; k < fixed; k++ {
		if !i.assignable(shape[k], params.At(k).Type(), arguments[k]) {
			return false
		}
	}
	if !i.signature.Variadic() {
		return true
	}
	rest := shape[fixed:]
	if len(rest) == 1 && rest[0] == arguments[fixed] {
		return true
	}
	slice, ok := params.At(fixed).Type().(*types.Slice)
	if !ok {
		return false
	}
	elemString := types.TypeString(slice.Elem(), types.RelativeTo(i.pkg))
	for _, arg := range rest {
		if !i.assignable(arg, slice.Elem(), elemString) {
			return false
		}
	}
	return true
}

// assignable evaluates expr in the implementation package scope and checks assignability to
// target; expressions that cannot be evaluated only match the target by name
func (i *implementation) assignable(expr string, target types.Type, targetString string) bool {
	if expr == targetString {
		return true
	}
	if i.pkg == nil {
		return false
	}
	tv, err := types.Eval(i.fset, i.pkg, token.NoPos, expr)
	if err != nil || !tv.IsType() {
		return false
	}
	if param, ok := target.(*types.TypeParam); ok {
		constraint, ok := param.Constraint().Underlying().(*types.Interface)
		return ok && types.Satisfies(tv.Type, constraint)
	}
	return types.AssignableTo(tv.Type, target)
}
