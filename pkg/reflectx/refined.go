package reflectx

import (
	"reflect"
)

// IsRefinedType reports whether value is exactly the type R. Unlike comparing
// against reflect.TypeOf of a zero value, this also works when R is an interface
// type such as context.Context.
func IsRefinedType[R any](value reflect.Type) bool {
	return value == reflect.TypeFor[R]()
}
