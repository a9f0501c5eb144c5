package reflectx

import "reflect"

// IsNil reports whether v is nil or a typed nil (pointer, interface, map, slice, func, chan).
// Zero values of other kinds are not nil.
func IsNil(v any) bool {
	if v == nil {
		return true
	}

	val := reflect.ValueOf(v)
	switch val.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return val.IsNil()
	}
	return false
}
