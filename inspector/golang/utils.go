package golang

import (
	"go/types"

	"github.com/viant/methodoc/method"
)

// funcSlot is the leading signature slot of functions without a receiver
const funcSlot = "func"

// newRecord builds an implementation record; slot 0 holds the receiver type or funcSlot
func newRecord(name string, sig *types.Signature, pkg *types.Package) *method.Record {
	qualifier := types.RelativeTo(pkg)
	slot := funcSlot
	if recv := sig.Recv(); recv != nil {
		slot = types.TypeString(recv.Type(), qualifier)
	}
	params := sig.Params()
	signature := make(method.Signature, 0, params.Len()+1)
	signature = append(signature, slot)
	arguments := make([]string, 0, params.Len())
	for k := 0; k < params.Len(); k++ {
		param := params.At(k)
		signature = append(signature, paramString(param.Type(), sig.Variadic() && k == params.Len()-1, qualifier))
		arguments = append(arguments, param.Name())
	}
	record := &method.Record{
		Name:      name,
		Signature: signature,
		Arguments: arguments,
	}
	if pkg != nil {
		record.Module = pkg.Path()
	}
	return record
}

// paramString formats a parameter type, variadic parameters as ...T
func paramString(typ types.Type, variadic bool, qualifier types.Qualifier) string {
	if variadic {
		if slice, ok := typ.(*types.Slice); ok {
			return "..." + types.TypeString(slice.Elem(), qualifier)
		}
	}
	return types.TypeString(typ, qualifier)
}
